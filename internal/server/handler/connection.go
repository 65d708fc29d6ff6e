package handler

import (
	"log"
	"time"

	"github.com/palemoky/belote/internal/protocol"
	"github.com/palemoky/belote/internal/server/session"
	"github.com/palemoky/belote/internal/types"
)

// handlePing 处理心跳消息
func (h *Handler) handlePing(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.PingPayload](msg)
	if err != nil {
		return
	}

	client.SendMessage(protocol.MustNewMessage(protocol.MsgPong, protocol.PongPayload{
		ClientTimestamp: payload.Timestamp,
		ServerTimestamp: time.Now().UnixMilli(),
	}))
}

// handleReconnect 处理断线重连
// 新连接先验证令牌，再沿用旧会话的身份，最后恢复牌桌和牌局状态
func (h *Handler) handleReconnect(client types.ClientInterface, msg *protocol.Message) {
	payload, err := protocol.ParsePayload[protocol.ReconnectPayload](msg)
	if err != nil {
		client.SendMessage(protocol.NewErrorMessage(protocol.ErrCodeInvalidMsg))
		return
	}

	if !h.sessionManager.CanReconnect(payload.Token, payload.PlayerID) {
		client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, "重连令牌无效或已过期"))
		return
	}

	playerSession := h.sessionManager.GetSession(payload.PlayerID)
	if playerSession == nil {
		client.SendMessage(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, "会话不存在"))
		return
	}

	// 新连接换上旧身份：注销临时 ID，按玩家 ID 重新注册
	h.server.UnregisterClient(client.GetID())
	client.SetIdentity(playerSession.PlayerID, playerSession.PlayerName)
	h.server.RegisterClient(playerSession.PlayerID, client)
	h.sessionManager.SetOnline(playerSession.PlayerID)

	reconnected := protocol.ReconnectedPayload{
		PlayerID:   playerSession.PlayerID,
		PlayerName: playerSession.PlayerName,
	}

	if playerSession.RoomCode != "" && h.restoreRoomState(client, playerSession) {
		// 牌局进行中：会话已经下发带完整快照的重连消息，不再重复发送
		log.Printf("🔄 玩家 %s (%s) 重连回牌局", playerSession.PlayerName, playerSession.PlayerID)
		return
	}

	reconnected.RoomCode = client.GetRoom()
	client.SendMessage(protocol.MustNewMessage(protocol.MsgReconnected, reconnected))

	log.Printf("🔄 玩家 %s (%s) 重连成功", playerSession.PlayerName, playerSession.PlayerID)
}

// restoreRoomState 把重连玩家挂回原牌桌
// 返回 true 表示牌局进行中、会话已经推送了完整快照
func (h *Handler) restoreRoomState(client types.ClientInterface, playerSession *session.PlayerSession) bool {
	room := h.roomManager.GetRoom(playerSession.RoomCode)
	if room == nil {
		// 牌桌已不存在，只恢复身份
		h.sessionManager.SetRoom(playerSession.PlayerID, "")
		return false
	}

	client.SetRoom(playerSession.RoomCode)
	if err := h.roomManager.ReconnectPlayer(client, client); err != nil {
		log.Printf("重连到牌桌失败: %v", err)
		client.SetRoom("")
		return false
	}

	return room.GetGameSession() != nil
}
