package room

import (
	"log"
	"math/rand/v2"
	"time"

	"github.com/palemoky/belote/internal/apperrors"
	"github.com/palemoky/belote/internal/protocol"
	"github.com/palemoky/belote/internal/types"
)

// NotifyPlayerOffline 标记玩家掉线并通知牌桌内其他玩家
func (rm *RoomManager) NotifyPlayerOffline(client types.ClientInterface) {
	roomCode := client.GetRoom()
	if roomCode == "" {
		return
	}

	rm.mu.RLock()
	room, exists := rm.rooms[roomCode]
	rm.mu.RUnlock()
	if !exists {
		return
	}

	room.mu.Lock()

	// 标记当前玩家为离线
	if player, exists := room.Players[client.GetID()]; exists {
		player.Client = nil
	}

	// 检查所有玩家是否都离线
	allOffline := true
	for _, player := range room.Players {
		if player.Client != nil {
			allOffline = false
			break
		}
	}

	// 如果所有玩家都离线，清理牌桌
	if allOffline {
		log.Printf("🧹 牌桌 %s 所有玩家已断开连接，清理牌桌", roomCode)
		if room.game != nil {
			room.game.Stop()
			room.game = nil
		}
		room.State = RoomStateEnded
		room.mu.Unlock()

		rm.mu.Lock()
		delete(rm.rooms, roomCode)
		rm.mu.Unlock()
		return
	}

	game := room.game
	room.mu.Unlock()

	// 牌局进行中交给会话处理：广播掉线、暂停该座位的计时器
	if game != nil {
		game.PlayerOffline(client.GetID())
	} else {
		room.BroadcastExcept(client.GetID(), protocol.MustNewMessage(protocol.MsgPlayerOffline, protocol.PlayerOfflinePayload{
			PlayerID:   client.GetID(),
			PlayerName: client.GetName(),
			Timeout:    20,
		}))
	}

	log.Printf("📴 玩家 %s 在牌桌 %s 中掉线", client.GetName(), roomCode)
}

// ReconnectPlayer 玩家重连到牌桌
func (rm *RoomManager) ReconnectPlayer(oldClient, newClient types.ClientInterface) error {
	roomCode := oldClient.GetRoom()
	if roomCode == "" {
		return nil // 不在牌桌中，无需重连
	}

	rm.mu.RLock()
	room, exists := rm.rooms[roomCode]
	rm.mu.RUnlock()
	if !exists {
		return apperrors.ErrRoomNotFound
	}

	room.mu.Lock()

	player, exists := room.Players[oldClient.GetID()]
	if !exists {
		room.mu.Unlock()
		return apperrors.ErrNotInRoom
	}

	// 更新客户端引用
	player.Client = newClient
	newClient.SetRoom(roomCode)

	game := room.game
	room.mu.Unlock()

	// 牌局进行中交给会话处理：广播上线、下发快照、恢复计时器
	if game != nil {
		game.PlayerReconnected(newClient.GetID())
	} else {
		room.BroadcastExcept(newClient.GetID(), protocol.MustNewMessage(protocol.MsgPlayerOnline, protocol.PlayerOnlinePayload{
			PlayerID:   newClient.GetID(),
			PlayerName: newClient.GetName(),
		}))
	}

	log.Printf("📶 玩家 %s 重连到牌桌 %s", newClient.GetName(), roomCode)

	return nil
}

// generateRoomCode 生成牌桌号
func (rm *RoomManager) generateRoomCode() string {
	for {
		code := make([]byte, roomCodeLength)
		for i := range code {
			code[i] = roomCodeChars[rand.IntN(len(roomCodeChars))]
		}
		codeStr := string(code)
		if _, exists := rm.rooms[codeStr]; !exists {
			return codeStr
		}
	}
}

// cleanupLoop 定期清理超时牌桌
func (rm *RoomManager) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		rm.cleanup()
	}
}

// cleanup 清理超时牌桌
func (rm *RoomManager) cleanup() {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	now := time.Now()

	for code, room := range rm.rooms {
		room.mu.RLock()
		// 只清理等待状态且超时的牌桌
		if room.State == RoomStateWaiting && now.Sub(room.CreatedAt) > rm.roomTimeout {
			room.mu.RUnlock()
			// 通知所有玩家牌桌已关闭
			room.Broadcast(protocol.NewErrorMessageWithText(protocol.ErrCodeUnknown, "牌桌超时已关闭"))
			// 清理玩家状态
			for _, p := range room.Players {
				if p.Client != nil {
					p.Client.SetRoom("")
				}
			}
			delete(rm.rooms, code)
			log.Printf("🏠 牌桌 %s 超时已清理", code)
		} else {
			room.mu.RUnlock()
		}
	}
}
