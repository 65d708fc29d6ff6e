package session

import (
	"log"
	"time"

	"github.com/palemoky/belote/internal/game/rule"
	"github.com/palemoky/belote/internal/protocol"
)

// 超时策略：叫牌超时视为过牌，出牌超时自动打出最小的合法牌，
// 保证一个掉线或发呆的玩家不会卡死整张牌桌

// startBidTimer 启动叫牌计时器（需持有 gs.mu）
func (gs *GameSession) startBidTimer() {
	if gs.bidTimeout <= 0 {
		return
	}
	gs.scheduleTimer(gs.bidTimeout, gs.forceBid)
}

// startPlayTimer 启动出牌计时器（需持有 gs.mu）
func (gs *GameSession) startPlayTimer() {
	if gs.turnTimeout <= 0 {
		return
	}
	gs.scheduleTimer(gs.turnTimeout, gs.forcePlay)
}

// scheduleTimer 设置计时器并登记代号，旧计时器一律作废
func (gs *GameSession) scheduleTimer(d time.Duration, onExpire func(gen uint64)) {
	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()

	if gs.turnTimer != nil {
		gs.turnTimer.Stop()
	}
	gs.timerGen++
	gen := gs.timerGen
	gs.remainingTime = d
	gs.timerStartTime = time.Now()
	gs.timerPaused = false
	gs.turnTimer = time.AfterFunc(d, func() { onExpire(gen) })
}

// stopTimer 停止所有计时器并作废未触发的回调（需持有 gs.mu）
func (gs *GameSession) stopTimer() {
	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()

	if gs.turnTimer != nil {
		gs.turnTimer.Stop()
		gs.turnTimer = nil
	}
	if gs.offlineWaitTimer != nil {
		gs.offlineWaitTimer.Stop()
		gs.offlineWaitTimer = nil
	}
	gs.timerGen++
	gs.timerPaused = false
}

// timerAlive 回调入场校验：代号不符说明该计时器已被取消
func (gs *GameSession) timerAlive(gen uint64) bool {
	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()
	return gen == gs.timerGen && !gs.timerPaused
}

// forceBid 叫牌超时：替当前座位过牌
func (gs *GameSession) forceBid(gen uint64) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if !gs.timerAlive(gen) {
		return
	}

	seat := gs.bidderSeat
	log.Printf("⏰ 牌桌 %s 座位 %d 叫牌超时，自动过牌", gs.room.GetCode(), seat)

	switch gs.phase {
	case PhaseBiddingRound1:
		gs.passRound1(seat)
	case PhaseBiddingRound2:
		gs.passRound2(seat)
	}
}

// forcePlay 出牌超时：替当前座位打出最小的合法牌
func (gs *GameSession) forcePlay(gen uint64) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if !gs.timerAlive(gen) {
		return
	}
	if gs.phase != PhasePlaying {
		return
	}

	seat := gs.currentSeat
	idx := rule.LowestLegalIndex(gs.players[seat].Hand, gs.trick, gs.trump)
	if idx < 0 {
		return
	}

	log.Printf("⏰ 牌桌 %s 座位 %d 出牌超时，自动打出最小合法牌", gs.room.GetCode(), seat)

	gs.stopTimer()
	gs.playCard(seat, idx)
}

// PlayerOffline 标记玩家掉线。轮到掉线玩家时暂停回合计时器等待重连，
// 同时启动离线等待计时器：时限内没回来就替他自动行动，牌桌不会被卡死
func (gs *GameSession) PlayerOffline(playerID string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	seat := gs.seatOf(playerID)
	if seat < 0 {
		return
	}
	gs.players[seat].Offline = true

	gs.room.Broadcast(protocol.MustNewMessage(protocol.MsgPlayerOffline, protocol.PlayerOfflinePayload{
		PlayerID:   playerID,
		PlayerName: gs.players[seat].Name,
		Timeout:    int(gs.offlineTimeout.Seconds()),
	}))

	if gs.activeSeat() == seat {
		gs.pauseTimer()
		gs.startOfflineWait(seat)
	}
}

// PlayerReconnected 玩家重连：恢复计时器并推送完整牌局状态
func (gs *GameSession) PlayerReconnected(playerID string) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	seat := gs.seatOf(playerID)
	if seat < 0 {
		return
	}
	gs.players[seat].Offline = false

	gs.room.Broadcast(protocol.MustNewMessage(protocol.MsgPlayerOnline, protocol.PlayerOnlinePayload{
		PlayerID:   playerID,
		PlayerName: gs.players[seat].Name,
	}))

	state := gs.buildStateDTO(seat)
	gs.room.SendTo(playerID, protocol.MustNewMessage(protocol.MsgReconnected, protocol.ReconnectedPayload{
		PlayerID:   playerID,
		PlayerName: gs.players[seat].Name,
		RoomCode:   gs.room.GetCode(),
		GameState:  &state,
	}))

	if gs.activeSeat() == seat {
		gs.cancelOfflineWait()
		gs.resumeTimer()
	}
}

// startOfflineWait 为掉线的行动座位启动离线等待计时器（需持有 gs.mu）
func (gs *GameSession) startOfflineWait(seat int) {
	if gs.offlineTimeout <= 0 {
		return
	}

	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()

	if gs.offlineWaitTimer != nil {
		gs.offlineWaitTimer.Stop()
	}
	gen := gs.timerGen
	gs.offlineWaitTimer = time.AfterFunc(gs.offlineTimeout, func() { gs.offlineExpired(seat, gen) })
}

// cancelOfflineWait 取消离线等待计时器（需持有 gs.mu）
func (gs *GameSession) cancelOfflineWait() {
	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()

	if gs.offlineWaitTimer != nil {
		gs.offlineWaitTimer.Stop()
		gs.offlineWaitTimer = nil
	}
}

// offlineExpired 离线等待到期：该座位仍未重连则替他自动行动
func (gs *GameSession) offlineExpired(seat int, gen uint64) {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.timerMu.Lock()
	if gen != gs.timerGen {
		gs.timerMu.Unlock()
		return
	}
	gs.offlineWaitTimer = nil
	gs.timerMu.Unlock()

	if !gs.players[seat].Offline || gs.activeSeat() != seat {
		return
	}

	log.Printf("⏰ 牌桌 %s 座位 %d 离线超时未重连，自动替他行动", gs.room.GetCode(), seat)

	switch gs.phase {
	case PhaseBiddingRound1:
		gs.passRound1(seat)
	case PhaseBiddingRound2:
		gs.passRound2(seat)
	case PhasePlaying:
		idx := rule.LowestLegalIndex(gs.players[seat].Hand, gs.trick, gs.trump)
		if idx < 0 {
			return
		}
		gs.stopTimer()
		gs.playCard(seat, idx)
	}
}

// activeSeat 当前等待行动的座位，非叫牌/出牌阶段返回 -1（需持有锁）
func (gs *GameSession) activeSeat() int {
	switch gs.phase {
	case PhaseBiddingRound1, PhaseBiddingRound2:
		return gs.bidderSeat
	case PhasePlaying:
		return gs.currentSeat
	default:
		return -1
	}
}

// pauseTimer 暂停计时器并记录剩余时间（需持有 gs.mu）
func (gs *GameSession) pauseTimer() {
	gs.timerMu.Lock()
	defer gs.timerMu.Unlock()

	if gs.turnTimer == nil || gs.timerPaused {
		return
	}
	gs.turnTimer.Stop()
	elapsed := time.Since(gs.timerStartTime)
	gs.remainingTime -= elapsed
	if gs.remainingTime < 0 {
		gs.remainingTime = 0
	}
	gs.timerPaused = true
}

// resumeTimer 以剩余时间续跑计时器（需持有 gs.mu）
func (gs *GameSession) resumeTimer() {
	gs.timerMu.Lock()

	if !gs.timerPaused {
		gs.timerMu.Unlock()
		return
	}
	gs.timerPaused = false
	gs.timerGen++
	gen := gs.timerGen
	d := gs.remainingTime
	if d <= 0 {
		d = time.Second
	}
	gs.timerStartTime = time.Now()

	var onExpire func(uint64)
	switch gs.phase {
	case PhaseBiddingRound1, PhaseBiddingRound2:
		onExpire = gs.forceBid
	case PhasePlaying:
		onExpire = gs.forcePlay
	default:
		gs.timerMu.Unlock()
		return
	}
	gs.turnTimer = time.AfterFunc(d, func() { onExpire(gen) })
	gs.timerMu.Unlock()
}
