package rule

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/palemoky/belote/internal/game/card"
)

func TestLegalPlayIndices_Lead(t *testing.T) {
	t.Parallel()

	hand := []card.Card{
		{Suit: card.Spade, Rank: card.Rank7},
		{Suit: card.Heart, Rank: card.RankA},
		{Suit: card.Club, Rank: card.RankJ},
	}

	// Leading a trick: every card is legal
	assert.Equal(t, []int{0, 1, 2}, LegalPlayIndices(hand, nil, card.Diamond))
}

func TestLegalPlayIndices_MustFollowSuit(t *testing.T) {
	t.Parallel()

	hand := []card.Card{
		{Suit: card.Spade, Rank: card.Rank7},
		{Suit: card.Heart, Rank: card.RankA},
		{Suit: card.Heart, Rank: card.Rank8},
	}
	trick := []Play{{Seat: 0, Card: card.Card{Suit: card.Heart, Rank: card.Rank10}}}

	// Holding the lead suit: only hearts are legal, even with trump in hand
	assert.Equal(t, []int{1, 2}, LegalPlayIndices(hand, trick, card.Spade))
}

func TestLegalPlayIndices_NoLeadNoTrump(t *testing.T) {
	t.Parallel()

	hand := []card.Card{
		{Suit: card.Diamond, Rank: card.Rank7},
		{Suit: card.Club, Rank: card.RankA},
	}
	trick := []Play{{Seat: 0, Card: card.Card{Suit: card.Heart, Rank: card.Rank10}}}

	// Void in lead suit and holding no trump: any discard is legal
	assert.Equal(t, []int{0, 1}, LegalPlayIndices(hand, trick, card.Spade))
}

func TestLegalPlayIndices_MustTrumpIn(t *testing.T) {
	t.Parallel()

	hand := []card.Card{
		{Suit: card.Diamond, Rank: card.Rank7},
		{Suit: card.Spade, Rank: card.Rank8},
		{Suit: card.Spade, Rank: card.RankQ},
	}
	trick := []Play{{Seat: 0, Card: card.Card{Suit: card.Heart, Rank: card.Rank10}}}

	// Void in lead suit, no trump yet in the trick: any trump is legal
	assert.Equal(t, []int{1, 2}, LegalPlayIndices(hand, trick, card.Spade))
}

func TestLegalPlayIndices_MustOvertrump(t *testing.T) {
	t.Parallel()

	hand := []card.Card{
		{Suit: card.Spade, Rank: card.Rank8},
		{Suit: card.Spade, Rank: card.Rank9},
		{Suit: card.Diamond, Rank: card.RankA},
	}
	trick := []Play{
		{Seat: 0, Card: card.Card{Suit: card.Heart, Rank: card.Rank10}},
		{Seat: 1, Card: card.Card{Suit: card.Spade, Rank: card.RankK}},
	}

	// A trump is already in the trick: only the strictly higher ♠9 is legal
	assert.Equal(t, []int{1}, LegalPlayIndices(hand, trick, card.Spade))
}

func TestLegalPlayIndices_CannotOvertrump(t *testing.T) {
	t.Parallel()

	hand := []card.Card{
		{Suit: card.Spade, Rank: card.Rank7},
		{Suit: card.Spade, Rank: card.Rank8},
		{Suit: card.Diamond, Rank: card.RankA},
	}
	trick := []Play{
		{Seat: 0, Card: card.Card{Suit: card.Heart, Rank: card.Rank10}},
		{Seat: 1, Card: card.Card{Suit: card.Spade, Rank: card.RankJ}},
	}

	// Cannot beat the trump jack, but must still play a trump
	assert.Equal(t, []int{0, 1}, LegalPlayIndices(hand, trick, card.Spade))
}

func TestLegalPlayIndices_NeverEmpty(t *testing.T) {
	t.Parallel()

	// Any non-empty hand must always have at least one legal play
	deck := card.NewDeck()
	trick := []Play{
		{Seat: 0, Card: card.Card{Suit: card.Heart, Rank: card.Rank7}},
		{Seat: 1, Card: card.Card{Suit: card.Spade, Rank: card.RankJ}},
	}
	for i := 0; i < len(deck); i += 4 {
		hand := deck[i : i+4]
		assert.NotEmpty(t, LegalPlayIndices(hand, trick, card.Spade))
	}
}

func TestTrickWinner_TrumpBeatsAll(t *testing.T) {
	t.Parallel()

	// Lead ♥7, then ♥A, a small trump ♠7, ♥Q: the trump wins regardless of rank
	trick := []Play{
		{Seat: 0, Card: card.Card{Suit: card.Heart, Rank: card.Rank7}},
		{Seat: 1, Card: card.Card{Suit: card.Heart, Rank: card.RankA}},
		{Seat: 2, Card: card.Card{Suit: card.Spade, Rank: card.Rank7}},
		{Seat: 3, Card: card.Card{Suit: card.Heart, Rank: card.RankQ}},
	}

	assert.Equal(t, 2, TrickWinner(trick, card.Spade))
}

func TestTrickWinner_NoTrump(t *testing.T) {
	t.Parallel()

	// No trump played: highest card of the lead suit wins; discards never win
	trick := []Play{
		{Seat: 0, Card: card.Card{Suit: card.Heart, Rank: card.RankK}},
		{Seat: 1, Card: card.Card{Suit: card.Heart, Rank: card.Rank10}},
		{Seat: 2, Card: card.Card{Suit: card.Diamond, Rank: card.RankA}},
		{Seat: 3, Card: card.Card{Suit: card.Heart, Rank: card.Rank9}},
	}

	assert.Equal(t, 1, TrickWinner(trick, card.Spade))
}

func TestTrickWinner_HighestTrump(t *testing.T) {
	t.Parallel()

	// Several trumps in the trick: the trump jack outranks everything
	trick := []Play{
		{Seat: 0, Card: card.Card{Suit: card.Spade, Rank: card.RankA}},
		{Seat: 1, Card: card.Card{Suit: card.Spade, Rank: card.Rank9}},
		{Seat: 2, Card: card.Card{Suit: card.Spade, Rank: card.RankJ}},
		{Seat: 3, Card: card.Card{Suit: card.Spade, Rank: card.Rank7}},
	}

	assert.Equal(t, 2, TrickWinner(trick, card.Spade))
}

func TestTrickPoints(t *testing.T) {
	t.Parallel()

	trick := []Play{
		{Seat: 0, Card: card.Card{Suit: card.Spade, Rank: card.RankJ}},  // 20 (trump)
		{Seat: 1, Card: card.Card{Suit: card.Spade, Rank: card.Rank9}},  // 14 (trump)
		{Seat: 2, Card: card.Card{Suit: card.Heart, Rank: card.RankA}},  // 11
		{Seat: 3, Card: card.Card{Suit: card.Heart, Rank: card.RankJ}},  // 2
	}

	assert.Equal(t, 47, TrickPoints(trick, card.Spade))
}

func TestLowestLegalIndex(t *testing.T) {
	t.Parallel()

	hand := []card.Card{
		{Suit: card.Heart, Rank: card.RankA},
		{Suit: card.Heart, Rank: card.Rank8},
		{Suit: card.Spade, Rank: card.RankJ},
	}
	trick := []Play{{Seat: 0, Card: card.Card{Suit: card.Heart, Rank: card.Rank10}}}

	// Must follow hearts; the weakest heart is picked
	idx := LowestLegalIndex(hand, trick, card.Spade)
	require.Equal(t, 1, idx)

	// Leading: the weakest card overall, trumps counted as strongest
	idx = LowestLegalIndex(hand, nil, card.Spade)
	assert.Equal(t, 1, idx)
}
