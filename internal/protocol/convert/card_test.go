package convert

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/belote/internal/game/card"
	"github.com/palemoky/belote/internal/game/rule"
	"github.com/palemoky/belote/internal/protocol"
)

func TestCardRoundTrip(t *testing.T) {
	t.Parallel()

	original := card.Card{
		Suit: card.Spade,
		Rank: card.RankJ,
	}

	// Card -> Info -> Card
	info := CardToInfo(original)
	result := InfoToCard(info)

	assert.Equal(t, original, result)
}

func TestPlaysToInfos(t *testing.T) {
	t.Parallel()

	plays := []rule.Play{
		{Seat: 0, Card: card.Card{Suit: card.Heart, Rank: card.Rank7}},
		{Seat: 3, Card: card.Card{Suit: card.Spade, Rank: card.RankA}},
	}

	infos := PlaysToInfos(plays)

	require.Len(t, infos, 2)
	assert.Equal(t, 0, infos[0].Seat)
	assert.Equal(t, int(card.Heart), infos[0].Card.Suit)
	assert.Equal(t, 3, infos[1].Seat)
	assert.Equal(t, int(card.RankA), infos[1].Card.Rank)
}

func TestEmptyCards(t *testing.T) {
	t.Parallel()

	// Empty slice should work
	infos := CardsToInfos([]card.Card{})
	assert.Empty(t, infos)

	cards := InfosToCards([]protocol.CardInfo{})
	assert.Empty(t, cards)
}
