package rule

import (
	"github.com/palemoky/belote/internal/game/card"
)

// TrickWinner 返回一墩中获胜的出牌下标
// 首攻花色取第一张牌的花色；同一墩内 (花色, 点数) 唯一，不可能平局
func TrickWinner(trick []Play, trump card.Suit) int {
	lead := trick[0].Card.Suit
	best := 0
	for i := 1; i < len(trick); i++ {
		if card.Compare(trick[i].Card, trick[best].Card, lead, trump) > 0 {
			best = i
		}
	}
	return best
}

// TrickPoints 统计一墩的总分值
func TrickPoints(trick []Play, trump card.Suit) int {
	sum := 0
	for _, p := range trick {
		sum += p.Card.Points(trump)
	}
	return sum
}

// LowestLegalIndex 在合法出牌集合中找出强度最低的一张（用于超时自动出牌）
func LowestLegalIndex(hand []card.Card, trick []Play, trump card.Suit) int {
	legal := LegalPlayIndices(hand, trick, trump)
	lowest := legal[0]
	for _, i := range legal[1:] {
		if weaker(hand[i], hand[lowest], trump) {
			lowest = i
		}
	}
	return lowest
}

// weaker 判断 a 是否弱于 b（王牌永远强于非王牌）
func weaker(a, b card.Card, trump card.Suit) bool {
	aIsTrump := a.Suit == trump
	bIsTrump := b.Suit == trump
	if aIsTrump != bIsTrump {
		return bIsTrump
	}
	if aIsTrump {
		return card.TrumpStrength(a.Rank) < card.TrumpStrength(b.Rank)
	}
	return card.PlainStrength(a.Rank) < card.PlainStrength(b.Rank)
}
