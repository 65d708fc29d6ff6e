package session

import (
	"fmt"
	"log"

	"github.com/palemoky/belote/internal/game/card"
	"github.com/palemoky/belote/internal/protocol"
	"github.com/palemoky/belote/internal/protocol/convert"
)

// 发牌布局：前 20 张按座位各发 5 张，第 21 张（下标 20）为亮牌，
// 余下 11 张加上亮牌组成 12 张的补牌池，王牌确定后各补 3 张
const (
	initialHandSize = 5
	turnedCardIndex = 20
	finalChunkSize  = 3
)

// startDeal 洗新牌开始一局：发 5 张手牌、翻亮牌、进入第一轮叫牌
// redeal 为 true 表示两轮无人要牌后的重发（庄家不变）
// 需持有锁
func (gs *GameSession) startDeal(redeal bool) {
	deck := card.NewDeck()
	deck.Shuffle()
	gs.deck = deck

	for i := 0; i < 4; i++ {
		seat := (gs.dealerSeat + 1 + i) % 4
		hand := make([]card.Card, initialHandSize)
		copy(hand, deck[i*initialHandSize:(i+1)*initialHandSize])
		gs.players[seat].Hand = hand
	}
	gs.turnedCard = deck[turnedCardIndex]

	gs.trumpFixed = false
	gs.takerSeat = -1
	gs.bidRound = 1
	gs.passCount = 0
	gs.bidderSeat = (gs.dealerSeat + 1) % 4
	gs.currentSeat = gs.bidderSeat
	gs.trick = nil
	gs.trickHistory = nil
	gs.roundPoints = [2]int{}
	gs.beloteCandidates = [4]beloteCandidate{}
	gs.phase = PhaseBiddingRound1

	gs.assertDeckPartition()

	// 私发手牌，广播开局信息
	for _, p := range gs.players {
		gs.room.SendTo(p.ID, protocol.MustNewMessage(protocol.MsgHand, protocol.HandPayload{
			Cards: convert.CardsToInfos(p.Hand),
		}))
	}
	gs.room.Broadcast(protocol.MustNewMessage(protocol.MsgDealStarted, protocol.DealStartedPayload{
		Players:    gs.playerInfos(),
		TurnedCard: convert.CardToInfo(gs.turnedCard),
		DealerSeat: gs.dealerSeat,
		BidderSeat: gs.bidderSeat,
		Redeal:     redeal,
	}))

	log.Printf("🃏 牌桌 %s 开始发牌，庄家座位 %d，亮牌 %s", gs.room.GetCode(), gs.dealerSeat, gs.turnedCard)

	gs.notifyBidTurn()
}

// finalDistribution 王牌确定后的补牌：剩余 11 张加亮牌组成 12 张池，
// 从庄家下家起每人补 3 张，最终每人 8 张
// 需持有锁
func (gs *GameSession) finalDistribution() {
	pool := make([]card.Card, 0, 12)
	pool = append(pool, gs.deck[turnedCardIndex+1:]...)
	pool = append(pool, gs.turnedCard)

	for i := 0; i < 4; i++ {
		seat := (gs.dealerSeat + 1 + i) % 4
		gs.players[seat].Hand = append(gs.players[seat].Hand, pool[i*finalChunkSize:(i+1)*finalChunkSize]...)
	}

	gs.assertHandsComplete()
}

// assertDeckPartition 校验初始发牌后 32 张牌不重不漏：
// 四手 5 张 + 亮牌 + 未发的 11 张恰好构成整副牌
// 违反说明发牌逻辑有 bug，直接 panic
func (gs *GameSession) assertDeckPartition() {
	seen := make(map[card.Card]int, 32)
	for _, p := range gs.players {
		for _, c := range p.Hand {
			seen[c]++
		}
	}
	seen[gs.turnedCard]++
	for _, c := range gs.deck[turnedCardIndex+1:] {
		seen[c]++
	}

	if len(seen) != 32 {
		panic(fmt.Sprintf("session: deck partition broken, %d distinct cards", len(seen)))
	}
	for c, n := range seen {
		if n != 1 {
			panic(fmt.Sprintf("session: card %s appears %d times after deal", c, n))
		}
	}
}

// assertHandsComplete 校验补牌后四手牌恰好瓜分整副 32 张牌
func (gs *GameSession) assertHandsComplete() {
	seen := make(map[card.Card]int, 32)
	total := 0
	for _, p := range gs.players {
		total += len(p.Hand)
		for _, c := range p.Hand {
			seen[c]++
		}
	}

	if total != 32 || len(seen) != 32 {
		panic(fmt.Sprintf("session: final distribution broken, %d cards in %d distinct", total, len(seen)))
	}
}
