package session

import (
	"log"

	"github.com/palemoky/belote/internal/apperrors"
	"github.com/palemoky/belote/internal/game/card"
	"github.com/palemoky/belote/internal/protocol"
	"github.com/palemoky/belote/internal/protocol/convert"
)

// HandleBidRound1 处理第一轮叫牌：要亮牌花色为王牌，或过
func (gs *GameSession) HandleBidRound1(playerID string, take bool) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if err := gs.guard(CmdBidRound1); err != nil {
		return err
	}
	seat := gs.seatOf(playerID)
	if seat != gs.bidderSeat {
		return apperrors.ErrNotYourTurn
	}

	if take {
		// 第一轮只能要亮牌花色
		gs.stopTimer()
		gs.fixTrump(seat, gs.turnedCard.Suit)
		return nil
	}

	gs.passRound1(seat)
	return nil
}

// HandleBidRound2 处理第二轮叫牌：除亮牌花色外任选王牌，或过
// 四人再次全过则重新发牌（庄家不变）
func (gs *GameSession) HandleBidRound2(playerID string, take bool, suit int) error {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if err := gs.guard(CmdBidRound2); err != nil {
		return err
	}
	seat := gs.seatOf(playerID)
	if seat != gs.bidderSeat {
		return apperrors.ErrNotYourTurn
	}

	if take {
		if suit < int(card.Spade) || suit > int(card.Club) {
			return apperrors.ErrSuitOutOfRange
		}
		if card.Suit(suit) == gs.turnedCard.Suit {
			return apperrors.ErrSuitIsTurned
		}
		gs.stopTimer()
		gs.fixTrump(seat, card.Suit(suit))
		return nil
	}

	gs.passRound2(seat)
	return nil
}

// passRound1 第一轮过牌：玩家主动过或超时代过共用此转移（需持有锁）
// 转满一圈无人要牌，从同一起叫座位进入第二轮
func (gs *GameSession) passRound1(seat int) {
	gs.stopTimer()

	gs.passCount++
	next := (gs.bidderSeat + 1) % 4
	gs.bidderSeat = next

	gs.room.Broadcast(protocol.MustNewMessage(protocol.MsgBidPassed, protocol.BidPassedPayload{
		Seat:     seat,
		NextSeat: next,
		Round:    1,
	}))

	if gs.passCount >= 4 {
		gs.bidRound = 2
		gs.passCount = 0
		gs.bidderSeat = (gs.dealerSeat + 1) % 4
		gs.phase = PhaseBiddingRound2

		gs.room.Broadcast(protocol.MustNewMessage(protocol.MsgBiddingRound2, protocol.BiddingRound2Payload{
			BidderSeat: gs.bidderSeat,
			TurnedSuit: int(gs.turnedCard.Suit),
		}))
	}

	gs.notifyBidTurn()
}

// passRound2 第二轮过牌（需持有锁）
// 两轮流局：重新洗牌发牌，庄家保持不变
func (gs *GameSession) passRound2(seat int) {
	gs.stopTimer()

	gs.passCount++
	next := (gs.bidderSeat + 1) % 4
	gs.bidderSeat = next

	gs.room.Broadcast(protocol.MustNewMessage(protocol.MsgBidPassed, protocol.BidPassedPayload{
		Seat:     seat,
		NextSeat: next,
		Round:    2,
	}))

	if gs.passCount >= 4 {
		log.Printf("🔄 牌桌 %s 两轮无人要牌，重新发牌", gs.room.GetCode())
		gs.room.Broadcast(protocol.MustNewMessage(protocol.MsgRedeal, nil))
		gs.startDeal(true)
		return
	}

	gs.notifyBidTurn()
}

// fixTrump 王牌确定：补满 8 张手牌、登记贝洛特候选、进入出牌阶段
// 需持有锁
func (gs *GameSession) fixTrump(takerSeat int, trump card.Suit) {
	gs.trump = trump
	gs.trumpFixed = true
	gs.takerSeat = takerSeat

	gs.finalDistribution()

	// 以补满后的 8 张手牌登记贝洛特候选（按座位，一局有效）
	for i, p := range gs.players {
		hasK := card.Contains(p.Hand, card.Card{Suit: trump, Rank: card.RankK})
		hasQ := card.Contains(p.Hand, card.Card{Suit: trump, Rank: card.RankQ})
		gs.beloteCandidates[i] = beloteCandidate{hasBoth: hasK && hasQ}
	}

	gs.currentSeat = (gs.dealerSeat + 1) % 4
	gs.phase = PhasePlaying

	for _, p := range gs.players {
		gs.room.SendTo(p.ID, protocol.MustNewMessage(protocol.MsgHand, protocol.HandPayload{
			Cards: convert.CardsToInfos(p.Hand),
		}))
	}
	gs.room.Broadcast(protocol.MustNewMessage(protocol.MsgTrumpFixed, protocol.TrumpFixedPayload{
		TakerSeat:  takerSeat,
		Trump:      int(trump),
		Round:      gs.bidRound,
		DealerSeat: gs.dealerSeat,
		FirstSeat:  gs.currentSeat,
	}))

	log.Printf("👑 牌桌 %s 王牌确定为 %s（座位 %d 在第 %d 轮叫定）", gs.room.GetCode(), trump, takerSeat, gs.bidRound)

	gs.notifyPlayTurn()
}

// notifyBidTurn 通知当前叫牌座位并启动叫牌计时器（需持有锁）
func (gs *GameSession) notifyBidTurn() {
	gs.room.Broadcast(protocol.MustNewMessage(protocol.MsgBidTurn, protocol.BidTurnPayload{
		Seat:    gs.bidderSeat,
		Round:   gs.bidRound,
		Timeout: int(gs.bidTimeout.Seconds()),
	}))
	gs.startBidTimer()
}
