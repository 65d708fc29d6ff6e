package convert

import (
	"github.com/palemoky/belote/internal/game/card"
	"github.com/palemoky/belote/internal/game/rule"
	"github.com/palemoky/belote/internal/protocol"
)

// CardToInfo 将 card.Card 转换为 protocol.CardInfo
func CardToInfo(c card.Card) protocol.CardInfo {
	return protocol.CardInfo{
		Suit: int(c.Suit),
		Rank: int(c.Rank),
	}
}

// CardsToInfos 将 []card.Card 转换为 []protocol.CardInfo
func CardsToInfos(cards []card.Card) []protocol.CardInfo {
	infos := make([]protocol.CardInfo, len(cards))
	for i, c := range cards {
		infos[i] = CardToInfo(c)
	}
	return infos
}

// InfoToCard 将 protocol.CardInfo 转换为 card.Card
func InfoToCard(info protocol.CardInfo) card.Card {
	return card.Card{
		Suit: card.Suit(info.Suit),
		Rank: card.Rank(info.Rank),
	}
}

// InfosToCards 将 []protocol.CardInfo 转换为 []card.Card
func InfosToCards(infos []protocol.CardInfo) []card.Card {
	cards := make([]card.Card, len(infos))
	for i, info := range infos {
		cards[i] = InfoToCard(info)
	}
	return cards
}

// PlayToInfo 将 rule.Play 转换为 protocol.PlayInfo
func PlayToInfo(p rule.Play) protocol.PlayInfo {
	return protocol.PlayInfo{
		Seat: p.Seat,
		Card: CardToInfo(p.Card),
	}
}

// PlaysToInfos 将 []rule.Play 转换为 []protocol.PlayInfo
func PlaysToInfos(plays []rule.Play) []protocol.PlayInfo {
	infos := make([]protocol.PlayInfo, len(plays))
	for i, p := range plays {
		infos[i] = PlayToInfo(p)
	}
	return infos
}
