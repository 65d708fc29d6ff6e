//go:build !production

// Package testutil 提供测试用的客户端和服务器替身
package testutil

import (
	"sync"

	"github.com/palemoky/belote/internal/protocol"
)

// SimpleClient 实现 types.ClientInterface 的测试客户端
// 消息记录并发安全，房间层的广播可能来自多个协程
type SimpleClient struct {
	ID       string
	Name     string
	RoomCode string

	mu       sync.Mutex
	messages []*protocol.Message
}

// NewSimpleClient 创建测试客户端
func NewSimpleClient(id, name string) *SimpleClient {
	return &SimpleClient{ID: id, Name: name}
}

func (m *SimpleClient) GetID() string       { return m.ID }
func (m *SimpleClient) GetName() string     { return m.Name }
func (m *SimpleClient) GetRoom() string     { return m.RoomCode }
func (m *SimpleClient) SetRoom(code string) { m.RoomCode = code }
func (m *SimpleClient) Close()              {}

func (m *SimpleClient) SetIdentity(id, name string) {
	m.ID = id
	m.Name = name
}

func (m *SimpleClient) SendMessage(msg *protocol.Message) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}

// SentMessages 返回已发送消息的副本
func (m *SimpleClient) SentMessages() []*protocol.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]*protocol.Message, len(m.messages))
	copy(out, m.messages)
	return out
}

// LastMessageOfType 返回最后一条指定类型的消息，没有则返回 nil
func (m *SimpleClient) LastMessageOfType(msgType protocol.MessageType) *protocol.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.messages) - 1; i >= 0; i-- {
		if m.messages[i].Type == msgType {
			return m.messages[i]
		}
	}
	return nil
}
