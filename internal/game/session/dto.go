package session

import (
	"github.com/palemoky/belote/internal/protocol"
	"github.com/palemoky/belote/internal/protocol/convert"
	"github.com/palemoky/belote/internal/server/storage"
)

// buildStateDTO 为重连玩家组装完整牌局快照（需持有锁）
// 只包含该玩家自己的手牌，其他座位的手牌不下发
func (gs *GameSession) buildStateDTO(seat int) protocol.GameStateDTO {
	dto := protocol.GameStateDTO{
		Phase:       gs.phase.String(),
		Players:     gs.playerInfos(),
		Hand:        convert.CardsToInfos(gs.players[seat].Hand),
		Trump:       -1,
		DealerSeat:  gs.dealerSeat,
		CurrentSeat: gs.activeSeat(),
		Trick:       convert.PlaysToInfos(gs.trick),
		TeamScores:  gs.teamScores,
	}
	if gs.trumpFixed {
		dto.Trump = int(gs.trump)
	}
	if gs.phase == PhaseBiddingRound1 || gs.phase == PhaseBiddingRound2 {
		info := convert.CardToInfo(gs.turnedCard)
		dto.TurnedCard = &info
	}
	return dto
}

// BuildGameStateDTO 对外暴露的快照入口（供重连处理器调用）
func (gs *GameSession) BuildGameStateDTO(playerID string) (protocol.GameStateDTO, bool) {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	seat := gs.seatOf(playerID)
	if seat < 0 {
		return protocol.GameStateDTO{}, false
	}
	return gs.buildStateDTO(seat), true
}

// Snapshot 牌局的 Redis 快照（不含手牌）
func (gs *GameSession) Snapshot() *storage.GameSessionData {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	trump := -1
	if gs.trumpFixed {
		trump = int(gs.trump)
	}
	return &storage.GameSessionData{
		Phase:          gs.phase.String(),
		Trump:          trump,
		DealerSeat:     gs.dealerSeat,
		CurrentSeat:    gs.activeSeat(),
		TeamScores:     gs.teamScores,
		RoundsFinished: gs.roundsFinished,
	}
}
