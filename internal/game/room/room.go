package room

import (
	"sync"
	"time"

	"github.com/palemoky/belote/internal/game/session"
	"github.com/palemoky/belote/internal/protocol"
	"github.com/palemoky/belote/internal/server/storage"
	"github.com/palemoky/belote/internal/types"
)

const (
	maxPlayers     = 4            // 一张牌桌固定四人
	roomCodeLength = 6            // 牌桌号长度
	roomCodeChars  = "0123456789" // 牌桌号字符集
)

// RoomPlayer 牌桌中的玩家
type RoomPlayer struct {
	Client types.ClientInterface
	Seat   int  // 座位号 0-3
	Ready  bool // 是否准备
}

// Room 牌桌
type Room struct {
	Code        string                 // 牌桌号
	State       RoomState              // 牌桌状态
	Players     map[string]*RoomPlayer // 玩家列表
	PlayerOrder []string               // 玩家顺序（按座位）
	CreatedAt   time.Time              // 创建时间

	game *session.GameSession

	mu sync.RWMutex
}

// RoomManager 牌桌管理器
type RoomManager struct {
	redisStore  *storage.RedisStore
	roomTimeout time.Duration
	timeouts    session.Timeouts

	// 一局结束时的回调，注入排行榜持久化
	OnRoundEnd func(summary session.RoundSummary)

	rooms map[string]*Room
	mu    sync.RWMutex
}

// NewRoomManager 创建牌桌管理器
func NewRoomManager(rs *storage.RedisStore, roomTimeout time.Duration, timeouts session.Timeouts) *RoomManager {
	rm := &RoomManager{
		redisStore:  rs,
		roomTimeout: roomTimeout,
		timeouts:    timeouts,
		rooms:       make(map[string]*Room),
	}

	// 启动牌桌清理协程
	go rm.cleanupLoop()

	return rm
}

// --- Room 对 session.RoomInterface 的实现 ---

// GetCode 返回牌桌号
func (r *Room) GetCode() string {
	return r.Code
}

// GetPlayerOrder 返回按座位排列的玩家 ID
func (r *Room) GetPlayerOrder() []string {
	return r.PlayerOrder
}

// GetPlayerName 返回玩家昵称
func (r *Room) GetPlayerName(id string) string {
	if p, ok := r.Players[id]; ok && p.Client != nil {
		return p.Client.GetName()
	}
	return ""
}

// Broadcast 广播消息给牌桌内所有在线玩家
func (r *Room) Broadcast(msg *protocol.Message) {
	for _, player := range r.Players {
		if player.Client != nil {
			player.Client.SendMessage(msg)
		}
	}
}

// BroadcastExcept 广播消息给除指定玩家外的所有在线玩家
func (r *Room) BroadcastExcept(excludeID string, msg *protocol.Message) {
	for id, player := range r.Players {
		if id != excludeID && player.Client != nil {
			player.Client.SendMessage(msg)
		}
	}
}

// SendTo 发送私有消息给指定玩家
func (r *Room) SendTo(playerID string, msg *protocol.Message) {
	if p, ok := r.Players[playerID]; ok && p.Client != nil {
		p.Client.SendMessage(msg)
	}
}

// --- 玩家信息 ---

// GetPlayerInfo 获取玩家信息
func (r *Room) GetPlayerInfo(playerID string) protocol.PlayerInfo {
	player := r.Players[playerID]
	return protocol.PlayerInfo{
		ID:    player.Client.GetID(),
		Name:  player.Client.GetName(),
		Seat:  player.Seat,
		Ready: player.Ready,
		Team:  player.Seat % 2, // 默认分队，开局后以会话内的分队为准
	}
}

// GetAllPlayersInfo 获取所有玩家信息
func (r *Room) GetAllPlayersInfo() []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, 0, len(r.Players))
	for _, id := range r.PlayerOrder {
		infos = append(infos, r.GetPlayerInfo(id))
	}
	return infos
}

// checkAllReady 检查四人是否都已准备
func (r *Room) checkAllReady() bool {
	if len(r.Players) < maxPlayers {
		return false
	}
	for _, player := range r.Players {
		if !player.Ready {
			return false
		}
	}
	return true
}

// GetGameSession 获取牌局会话
func (r *Room) GetGameSession() *session.GameSession {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.game
}

// SetAllPlayersReady 设置所有玩家准备状态
func (r *Room) SetAllPlayersReady() {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, player := range r.Players {
		player.Ready = true
	}
}
