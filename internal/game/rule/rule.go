package rule

import (
	"github.com/palemoky/belote/internal/game/card"
)

// Play 一次出牌：座位和牌
type Play struct {
	Seat int
	Card card.Card
}

// LegalPlayIndices 计算在当前墩和王牌花色下，手牌中可以合法打出的下标集合
// 规则依次为：首攻任意出；有首攻花色必须跟；无法跟牌且无王牌任意垫；
// 墩内没有王牌时必须用王牌切入；墩内已有王牌时能压必须压，不能压也要出王牌
func LegalPlayIndices(hand []card.Card, trick []Play, trump card.Suit) []int {
	if len(trick) == 0 {
		return allIndices(hand)
	}

	lead := trick[0].Card.Suit
	if card.HasSuit(hand, lead) {
		return suitIndices(hand, lead)
	}

	if !card.HasSuit(hand, trump) {
		return allIndices(hand)
	}

	best, hasTrump := highestTrumpInTrick(trick, trump)
	if !hasTrump {
		return suitIndices(hand, trump)
	}

	// 必须压过墩内最大的王牌；压不过时仍然只能出王牌
	over := make([]int, 0, len(hand))
	for i, c := range hand {
		if c.Suit == trump && card.TrumpStrength(c.Rank) > card.TrumpStrength(best.Rank) {
			over = append(over, i)
		}
	}
	if len(over) > 0 {
		return over
	}
	return suitIndices(hand, trump)
}

// IsLegalPlay 判断指定下标是否在合法出牌集合中
func IsLegalPlay(hand []card.Card, trick []Play, trump card.Suit, idx int) bool {
	for _, i := range LegalPlayIndices(hand, trick, trump) {
		if i == idx {
			return true
		}
	}
	return false
}

// highestTrumpInTrick 找出墩内已打出的最大王牌
func highestTrumpInTrick(trick []Play, trump card.Suit) (card.Card, bool) {
	var best card.Card
	found := false
	for _, p := range trick {
		if p.Card.Suit != trump {
			continue
		}
		if !found || card.TrumpStrength(p.Card.Rank) > card.TrumpStrength(best.Rank) {
			best = p.Card
			found = true
		}
	}
	return best, found
}

func allIndices(hand []card.Card) []int {
	indices := make([]int, len(hand))
	for i := range hand {
		indices[i] = i
	}
	return indices
}

func suitIndices(hand []card.Card, s card.Suit) []int {
	indices := make([]int, 0, len(hand))
	for i, c := range hand {
		if c.Suit == s {
			indices = append(indices, i)
		}
	}
	return indices
}
