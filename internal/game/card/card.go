package card

import (
	"math/rand/v2"
	"strconv"
)

// Suit 定义花色
type Suit int

// Rank 定义点数
type Rank int

const (
	Spade   Suit = iota // 黑桃
	Heart               // 红心
	Diamond             // 方块
	Club                // 梅花
)

// suitSymbols 花色符号映射表
var suitSymbols = map[Suit]string{
	Spade:   "♠",
	Heart:   "♥",
	Diamond: "♦",
	Club:    "♣",
}

func (s Suit) String() string {
	if symbol, ok := suitSymbols[s]; ok {
		return symbol
	}
	return ""
}

// 贝洛特使用 32 张牌，每个花色只有 7 到 A
const (
	Rank7 Rank = iota + 7
	Rank8
	Rank9
	Rank10
	RankJ // Jack
	RankQ // Queen
	RankK // King
	RankA // Ace
)

// rankNames 牌面值字符串映射表
var rankNames = map[Rank]string{
	Rank7:  "7",
	Rank8:  "8",
	Rank9:  "9",
	Rank10: "10",
	RankJ:  "J",
	RankQ:  "Q",
	RankK:  "K",
	RankA:  "A",
}

func (r Rank) String() string {
	if name, ok := rankNames[r]; ok {
		return name
	}
	return strconv.Itoa(int(r))
}

// Card 定义一张牌
type Card struct {
	Suit Suit
	Rank Rank
}

func (c Card) String() string {
	return c.Suit.String() + c.Rank.String()
}

// trumpOrder 王牌花色的强度表（值越大越强）：7 8 Q K 10 A 9 J
var trumpOrder = map[Rank]int{
	Rank7:  1,
	Rank8:  2,
	RankQ:  3,
	RankK:  4,
	Rank10: 5,
	RankA:  6,
	Rank9:  7,
	RankJ:  8,
}

// plainOrder 非王牌花色的强度表：7 8 9 J Q K 10 A
var plainOrder = map[Rank]int{
	Rank7:  1,
	Rank8:  2,
	Rank9:  3,
	RankJ:  4,
	RankQ:  5,
	RankK:  6,
	Rank10: 7,
	RankA:  8,
}

// trumpPoints 王牌花色的分值表（9 和 J 价值最高）
var trumpPoints = map[Rank]int{
	Rank7:  0,
	Rank8:  0,
	Rank9:  14,
	RankJ:  20,
	RankQ:  3,
	RankK:  4,
	Rank10: 10,
	RankA:  11,
}

// plainPoints 非王牌花色的分值表
var plainPoints = map[Rank]int{
	Rank7:  0,
	Rank8:  0,
	Rank9:  0,
	RankJ:  2,
	RankQ:  3,
	RankK:  4,
	Rank10: 10,
	RankA:  11,
}

// TrumpStrength 返回 rank 在王牌强度表中的位置
func TrumpStrength(r Rank) int {
	return trumpOrder[r]
}

// PlainStrength 返回 rank 在普通强度表中的位置
func PlainStrength(r Rank) int {
	return plainOrder[r]
}

// Points 返回这张牌在给定王牌花色下的分值
func (c Card) Points(trump Suit) int {
	if c.Suit == trump {
		return trumpPoints[c.Rank]
	}
	return plainPoints[c.Rank]
}

// Compare 在给定首攻花色和王牌花色下比较两张牌
// 返回正数表示 a 强于 b，负数表示 b 强于 a
// 王牌无条件压过非王牌；同花色按对应强度表比较；
// 两张不同的非王牌花色时，跟首攻花色的压过垫牌；
// 都不跟首攻时按普通强度表比较（仅用于归属计分，不影响合法性判断）
func Compare(a, b Card, leadSuit, trump Suit) int {
	aIsTrump := a.Suit == trump
	bIsTrump := b.Suit == trump
	if aIsTrump && !bIsTrump {
		return 1
	}
	if !aIsTrump && bIsTrump {
		return -1
	}
	if a.Suit == b.Suit {
		if aIsTrump {
			return TrumpStrength(a.Rank) - TrumpStrength(b.Rank)
		}
		return PlainStrength(a.Rank) - PlainStrength(b.Rank)
	}
	if a.Suit == leadSuit {
		return 1
	}
	if b.Suit == leadSuit {
		return -1
	}
	return PlainStrength(a.Rank) - PlainStrength(b.Rank)
}

// Deck 定义一副牌
type Deck []Card

// NewDeck 按固定顺序生成 32 张牌
func NewDeck() Deck {
	deck := make(Deck, 0, 32)
	for s := Spade; s <= Club; s++ {
		for r := Rank7; r <= RankA; r++ {
			deck = append(deck, Card{Suit: s, Rank: r})
		}
	}
	return deck
}

// Shuffle 均匀随机打乱整副牌（Fisher-Yates）
func (d Deck) Shuffle() {
	rand.Shuffle(len(d), func(i, j int) {
		d[i], d[j] = d[j], d[i]
	})
}
