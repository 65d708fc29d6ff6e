package session

import (
	"log"
	"time"

	"github.com/palemoky/belote/internal/apperrors"
	"github.com/palemoky/belote/internal/protocol"
	"github.com/palemoky/belote/internal/protocol/convert"
)

// Timeouts 会话的超时配置
type Timeouts struct {
	Bid     time.Duration
	Turn    time.Duration
	Offline time.Duration
}

// NewGameSession 创建牌局会话，座位顺序取自房间的玩家顺序
// 默认按座位奇偶分队：偶数座位一队，奇数座位一队
func NewGameSession(room RoomInterface, timeouts Timeouts) *GameSession {
	order := room.GetPlayerOrder()
	if len(order) != 4 {
		panic("session: a belote table needs exactly 4 players")
	}

	gs := &GameSession{
		room:           room,
		phase:          PhaseChooseDealer,
		bidTimeout:     timeouts.Bid,
		turnTimeout:    timeouts.Turn,
		offlineTimeout: timeouts.Offline,
		takerSeat:      -1,
	}
	for i, id := range order {
		gs.players[i] = &TablePlayer{
			ID:   id,
			Name: room.GetPlayerName(id),
			Seat: i,
		}
		gs.teams[i] = i % 2
	}
	return gs
}

// Start 通知四人到齐，等待指定庄家
func (gs *GameSession) Start() {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.room.Broadcast(protocol.MustNewMessage(protocol.MsgTableFormed, protocol.TableFormedPayload{
		Players: gs.playerInfos(),
	}))
	gs.broadcastChooseDealer()
}

// HandleSetTeams 指定分队，覆盖默认的座位奇偶分队
// 两队必须各两人，且恰好覆盖桌上的四名玩家
func (gs *GameSession) HandleSetTeams(playerID string, teamA, teamB []string) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if err := gs.guard(CmdSetTeams); err != nil {
		return err
	}
	if gs.seatOf(playerID) < 0 {
		return apperrors.ErrNotInRoom
	}
	if len(teamA) != 2 || len(teamB) != 2 {
		return apperrors.ErrInvalidTeams
	}

	// 检查分队是否恰好是四名玩家的不相交划分
	var teams [4]int
	assigned := [4]bool{}
	for _, id := range teamA {
		seat := gs.seatOf(id)
		if seat < 0 || assigned[seat] {
			return apperrors.ErrInvalidTeams
		}
		assigned[seat] = true
		teams[seat] = 0
	}
	for _, id := range teamB {
		seat := gs.seatOf(id)
		if seat < 0 || assigned[seat] {
			return apperrors.ErrInvalidTeams
		}
		assigned[seat] = true
		teams[seat] = 1
	}

	gs.teams = teams

	gs.room.Broadcast(protocol.MustNewMessage(protocol.MsgTeamsSet, protocol.TeamsSetPayload{
		TeamA: teamA,
		TeamB: teamB,
	}))

	log.Printf("🤝 牌桌 %s 分队确定: %v vs %v", gs.room.GetCode(), teamA, teamB)
	return nil
}

// HandleSetDealer 指定庄家并开始新一局
func (gs *GameSession) HandleSetDealer(playerID string, dealerSeat int) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if err := gs.guard(CmdSetDealer); err != nil {
		return err
	}
	if gs.seatOf(playerID) < 0 {
		return apperrors.ErrNotInRoom
	}
	if dealerSeat < 0 || dealerSeat > 3 {
		return apperrors.ErrInvalidSeat
	}

	gs.dealerSeat = dealerSeat
	gs.startDeal(false)
	return nil
}

// HandleRequestHand 重发玩家自己的手牌
func (gs *GameSession) HandleRequestHand(playerID string) error {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	seat := gs.seatOf(playerID)
	if seat < 0 {
		return apperrors.ErrNotInRoom
	}

	gs.room.SendTo(playerID, protocol.MustNewMessage(protocol.MsgHand, protocol.HandPayload{
		Cards: convert.CardsToInfos(gs.players[seat].Hand),
	}))
	return nil
}

// Stop 结束会话，停止所有计时器
func (gs *GameSession) Stop() {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	gs.phase = PhaseEnded
	gs.stopTimer()
}

// Phase 返回当前阶段
func (gs *GameSession) Phase() Phase {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.phase
}

// TeamScores 返回两队累计分数
func (gs *GameSession) TeamScores() [2]int {
	gs.mu.RLock()
	defer gs.mu.RUnlock()
	return gs.teamScores
}

// playerInfos 按座位顺序生成玩家信息（需持有锁）
func (gs *GameSession) playerInfos() []protocol.PlayerInfo {
	infos := make([]protocol.PlayerInfo, 4)
	for i, p := range gs.players {
		infos[i] = protocol.PlayerInfo{
			ID:    p.ID,
			Name:  p.Name,
			Seat:  p.Seat,
			Ready: true,
			Team:  gs.teams[i],
		}
	}
	return infos
}

// broadcastChooseDealer 广播等待指定庄家（需持有锁）
func (gs *GameSession) broadcastChooseDealer() {
	gs.room.Broadcast(protocol.MustNewMessage(protocol.MsgChooseDealer, protocol.ChooseDealerPayload{
		Players:        gs.playerInfos(),
		SuggestedSeat:  gs.dealerSeat,
		TeamScores:     gs.teamScores,
		RoundsFinished: gs.roundsFinished,
	}))
}
