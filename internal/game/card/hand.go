package card

import "sort"

// HasSuit 判断手牌中是否持有指定花色
func HasSuit(hand []Card, s Suit) bool {
	for _, c := range hand {
		if c.Suit == s {
			return true
		}
	}
	return false
}

// Contains 判断手牌中是否持有指定的牌
func Contains(hand []Card, target Card) bool {
	for _, c := range hand {
		if c == target {
			return true
		}
	}
	return false
}

// RemoveAt 移除手牌中指定下标的牌，返回新手牌和被移除的牌
func RemoveAt(hand []Card, i int) ([]Card, Card) {
	removed := hand[i]
	result := make([]Card, 0, len(hand)-1)
	result = append(result, hand[:i]...)
	result = append(result, hand[i+1:]...)
	return result, removed
}

// SortHand 按花色分组排序手牌，组内按普通强度从高到低（仅用于展示）
func SortHand(hand []Card) {
	sort.Slice(hand, func(i, j int) bool {
		if hand[i].Suit != hand[j].Suit {
			return hand[i].Suit < hand[j].Suit
		}
		return PlainStrength(hand[i].Rank) > PlainStrength(hand[j].Rank)
	})
}
