package types

import (
	"github.com/palemoky/belote/internal/protocol"
)

// ServerInterface 定义服务器接口（用于打破循环依赖）
type ServerInterface interface {
	GetOnlineCount() int
	GetClientByID(id string) ClientInterface
	RegisterClient(id string, client ClientInterface)
	UnregisterClient(id string)
	IsMaintenanceMode() bool
}

// ClientInterface 定义客户端接口
type ClientInterface interface {
	GetID() string
	GetName() string
	GetRoom() string
	SetRoom(code string)
	// SetIdentity 重连时沿用旧会话的身份（新连接会生成新 ID，需要换回来）
	SetIdentity(id, name string)
	SendMessage(msg *protocol.Message)
	Close()
}
