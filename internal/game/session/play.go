package session

import (
	"log"

	"github.com/palemoky/belote/internal/apperrors"
	"github.com/palemoky/belote/internal/game/card"
	"github.com/palemoky/belote/internal/game/rule"
	"github.com/palemoky/belote/internal/protocol"
	"github.com/palemoky/belote/internal/protocol/convert"
)

const beloteBonus = 20

// HandlePlay 处理出牌：校验回合与合法性，满四张结墩，手牌打空结局
func (gs *GameSession) HandlePlay(playerID string, cardIndex int) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if err := gs.guard(CmdPlayCard); err != nil {
		return err
	}
	seat := gs.seatOf(playerID)
	if seat != gs.currentSeat {
		return apperrors.ErrNotYourTurn
	}

	player := gs.players[seat]
	if cardIndex < 0 || cardIndex >= len(player.Hand) {
		return apperrors.ErrIllegalCardIndex
	}
	if !rule.IsLegalPlay(player.Hand, gs.trick, gs.trump, cardIndex) {
		return apperrors.ErrIllegalPlay
	}

	gs.stopTimer()
	gs.playCard(seat, cardIndex)
	return nil
}

// playCard 执行一次出牌（需持有锁，调用方已完成校验）
func (gs *GameSession) playCard(seat, cardIndex int) {
	player := gs.players[seat]
	hand, played := card.RemoveAt(player.Hand, cardIndex)
	player.Hand = hand

	gs.checkBelote(seat, played)

	gs.trick = append(gs.trick, rule.Play{Seat: seat, Card: played})

	gs.room.Broadcast(protocol.MustNewMessage(protocol.MsgCardPlayed, protocol.CardPlayedPayload{
		Seat:      seat,
		Card:      convert.CardToInfo(played),
		CardsLeft: len(player.Hand),
	}))
	gs.room.SendTo(player.ID, protocol.MustNewMessage(protocol.MsgHand, protocol.HandPayload{
		Cards: convert.CardsToInfos(player.Hand),
	}))

	if len(gs.trick) == 4 {
		gs.resolveTrick()
		return
	}

	gs.currentSeat = (seat + 1) % 4
	gs.notifyPlayTurn()
}

// checkBelote 贝洛特记账：王牌 K 和 Q 先后打出，第二张落地时加 20 分
// 出牌顺序不限，资格在王牌确定时已按座位登记
func (gs *GameSession) checkBelote(seat int, played card.Card) {
	bc := &gs.beloteCandidates[seat]
	if !bc.hasBoth || bc.declared {
		return
	}
	if played.Suit != gs.trump || (played.Rank != card.RankK && played.Rank != card.RankQ) {
		return
	}

	if bc.firstRank == 0 {
		bc.firstRank = played.Rank
		return
	}
	if bc.firstRank == played.Rank {
		return
	}

	bc.declared = true
	team := gs.teamOfSeat(seat)
	gs.teamScores[team] += beloteBonus
	gs.roundPoints[team] += beloteBonus

	gs.room.Broadcast(protocol.MustNewMessage(protocol.MsgBeloteDeclared, protocol.BeloteDeclaredPayload{
		Seat:       seat,
		Team:       team,
		TeamScores: gs.teamScores,
	}))

	log.Printf("✨ 牌桌 %s 座位 %d 贝洛特成立，%d 队 +%d 分", gs.room.GetCode(), seat, team, beloteBonus)
}

// resolveTrick 结算一墩：判定赢家、累加分数、赢家先出下一墩（需持有锁）
func (gs *GameSession) resolveTrick() {
	winner := gs.trick[rule.TrickWinner(gs.trick, gs.trump)].Seat
	points := rule.TrickPoints(gs.trick, gs.trump)
	team := gs.teamOfSeat(winner)

	gs.teamScores[team] += points
	gs.roundPoints[team] += points
	gs.trickHistory = append(gs.trickHistory, protocol.TrickRecord{
		WinnerSeat: winner,
		Points:     points,
		Cards:      convert.PlaysToInfos(gs.trick),
	})

	gs.room.Broadcast(protocol.MustNewMessage(protocol.MsgTrickWon, protocol.TrickWonPayload{
		WinnerSeat: winner,
		Points:     points,
		Cards:      convert.PlaysToInfos(gs.trick),
		TeamScores: gs.teamScores,
	}))

	gs.trick = nil

	if len(gs.players[winner].Hand) == 0 {
		gs.finishRound()
		return
	}

	gs.currentSeat = winner
	gs.notifyPlayTurn()
}

// finishRound 一局打完：广播结算、庄家轮转、回到等待开局阶段（需持有锁）
func (gs *GameSession) finishRound() {
	nextDealer := (gs.dealerSeat + 1) % 4
	gs.roundsFinished++

	gs.room.Broadcast(protocol.MustNewMessage(protocol.MsgRoundEnd, protocol.RoundEndPayload{
		TeamScores:   gs.teamScores,
		RoundPoints:  gs.roundPoints,
		TrickHistory: gs.trickHistory,
		NextDealer:   nextDealer,
	}))

	log.Printf("🏁 牌桌 %s 第 %d 局结束，本局 %d:%d，总分 %d:%d",
		gs.room.GetCode(), gs.roundsFinished,
		gs.roundPoints[0], gs.roundPoints[1],
		gs.teamScores[0], gs.teamScores[1])

	if gs.OnRoundEnd != nil {
		gs.OnRoundEnd(RoundSummary{
			RoomCode:    gs.room.GetCode(),
			Players:     gs.players,
			Teams:       gs.teams,
			RoundPoints: gs.roundPoints,
			TeamScores:  gs.teamScores,
			TakerSeat:   gs.takerSeat,
		})
	}

	gs.dealerSeat = nextDealer
	gs.phase = PhaseChooseDealer
	gs.broadcastChooseDealer()
}

// notifyPlayTurn 通知当前出牌座位并启动出牌计时器（需持有锁）
func (gs *GameSession) notifyPlayTurn() {
	gs.room.Broadcast(protocol.MustNewMessage(protocol.MsgTurn, protocol.TurnPayload{
		Seat:    gs.currentSeat,
		Timeout: int(gs.turnTimeout.Seconds()),
	}))
	gs.startPlayTimer()
}
