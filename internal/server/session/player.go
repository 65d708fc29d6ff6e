// Package session 管理玩家连接会话与断线重连令牌
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"sync"
	"time"

	"github.com/palemoky/belote/internal/server/storage"
)

const (
	// 断线后允许重连的时限
	reconnectTimeout = 2 * time.Minute
	// 离线会话的保留时间，超过后彻底清除
	sessionExpireTime = 10 * time.Minute
)

// PlayerSession 玩家会话，断线期间保留身份和所在牌桌
type PlayerSession struct {
	PlayerID       string
	PlayerName     string
	ReconnectToken string
	RoomCode       string

	DisconnectedAt time.Time
	IsOnline       bool

	mu sync.RWMutex
}

// SessionManager 会话管理器
// 内存中的会话为准，Redis 中的副本仅用于展示和故障排查
type SessionManager struct {
	store    *storage.RedisStore
	sessions map[string]*PlayerSession // playerID -> session
	tokens   map[string]string         // token -> playerID
	mu       sync.RWMutex
}

// NewSessionManager 创建会话管理器并启动过期清理协程
func NewSessionManager(store *storage.RedisStore) *SessionManager {
	sm := &SessionManager{
		store:    store,
		sessions: make(map[string]*PlayerSession),
		tokens:   make(map[string]string),
	}

	go sm.cleanupLoop()

	return sm
}

// CreateSession 为新连接创建会话，返回值携带重连令牌
func (sm *SessionManager) CreateSession(playerID, playerName string) *PlayerSession {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	token := generateToken()
	session := &PlayerSession{
		PlayerID:       playerID,
		PlayerName:     playerName,
		ReconnectToken: token,
		IsOnline:       true,
	}

	sm.sessions[playerID] = session
	sm.tokens[token] = playerID

	go func() { _ = sm.store.SaveSession(context.Background(), snapshot(session)) }()

	return session
}

// GetSession 获取会话，不存在返回 nil
func (sm *SessionManager) GetSession(playerID string) *PlayerSession {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.sessions[playerID]
}

// GetSessionByToken 通过重连令牌获取会话
func (sm *SessionManager) GetSessionByToken(token string) *PlayerSession {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	playerID, ok := sm.tokens[token]
	if !ok {
		return nil
	}
	return sm.sessions[playerID]
}

// withSession 对已存在的会话执行写操作并同步 Redis 副本
func (sm *SessionManager) withSession(playerID string, fn func(s *PlayerSession)) {
	sm.mu.RLock()
	session, ok := sm.sessions[playerID]
	sm.mu.RUnlock()
	if !ok {
		return
	}

	session.mu.Lock()
	fn(session)
	data := snapshotLocked(session)
	session.mu.Unlock()

	go func() { _ = sm.store.SaveSession(context.Background(), data) }()
}

// SetOffline 标记玩家离线并记录断线时间
func (sm *SessionManager) SetOffline(playerID string) {
	sm.withSession(playerID, func(s *PlayerSession) {
		s.IsOnline = false
		s.DisconnectedAt = time.Now()
	})
}

// SetOnline 标记玩家重新上线
func (sm *SessionManager) SetOnline(playerID string) {
	sm.withSession(playerID, func(s *PlayerSession) {
		s.IsOnline = true
		s.DisconnectedAt = time.Time{}
	})
}

// SetRoom 记录玩家所在牌桌
func (sm *SessionManager) SetRoom(playerID, roomCode string) {
	sm.withSession(playerID, func(s *PlayerSession) {
		s.RoomCode = roomCode
	})
}

// DeleteSession 删除会话及其令牌
func (sm *SessionManager) DeleteSession(playerID string) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if session, ok := sm.sessions[playerID]; ok {
		delete(sm.tokens, session.ReconnectToken)
		delete(sm.sessions, playerID)
		go func() { _ = sm.store.DeleteSession(context.Background(), playerID) }()
	}
}

// CanReconnect 校验令牌归属并检查是否在重连时限内
func (sm *SessionManager) CanReconnect(token, playerID string) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	storedID, ok := sm.tokens[token]
	if !ok || storedID != playerID {
		return false
	}

	session, ok := sm.sessions[playerID]
	if !ok {
		return false
	}

	session.mu.RLock()
	defer session.mu.RUnlock()

	if !session.IsOnline && time.Since(session.DisconnectedAt) > reconnectTimeout {
		return false
	}
	return true
}

// IsOnline 检查玩家是否在线
func (sm *SessionManager) IsOnline(playerID string) bool {
	sm.mu.RLock()
	session, ok := sm.sessions[playerID]
	sm.mu.RUnlock()
	if !ok {
		return false
	}

	session.mu.RLock()
	defer session.mu.RUnlock()
	return session.IsOnline
}

// cleanupLoop 定期清理过期会话
func (sm *SessionManager) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		sm.cleanup()
	}
}

func (sm *SessionManager) cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	now := time.Now()
	for playerID, session := range sm.sessions {
		session.mu.RLock()
		expired := !session.IsOnline && now.Sub(session.DisconnectedAt) > sessionExpireTime
		session.mu.RUnlock()
		if expired {
			delete(sm.tokens, session.ReconnectToken)
			delete(sm.sessions, playerID)
			go func(id string) { _ = sm.store.DeleteSession(context.Background(), id) }(playerID)
		}
	}
}

// snapshot 取会话的 Redis 副本
func snapshot(s *PlayerSession) *storage.PlayerSessionData {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return snapshotLocked(s)
}

// snapshotLocked 同上，调用方已持有 s.mu
func snapshotLocked(s *PlayerSession) *storage.PlayerSessionData {
	data := &storage.PlayerSessionData{
		PlayerID:       s.PlayerID,
		PlayerName:     s.PlayerName,
		ReconnectToken: s.ReconnectToken,
		RoomCode:       s.RoomCode,
		IsOnline:       s.IsOnline,
	}
	if !s.DisconnectedAt.IsZero() {
		data.DisconnectedAt = s.DisconnectedAt.Unix()
	}
	return data
}

// generateToken 生成 256 位随机令牌
func generateToken() string {
	bytes := make([]byte, 32)
	_, _ = rand.Read(bytes)
	return hex.EncodeToString(bytes)
}
