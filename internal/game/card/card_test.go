package card

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeck(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	require.Len(t, deck, 32)

	// Every (suit, rank) pair appears exactly once
	seen := make(map[Card]int)
	for _, c := range deck {
		seen[c]++
	}
	assert.Len(t, seen, 32)
	for c, n := range seen {
		assert.Equal(t, 1, n, "card %s duplicated", c)
	}
}

func TestDeck_Shuffle(t *testing.T) {
	t.Parallel()

	deck := NewDeck()
	deck.Shuffle()

	// Shuffle must be a permutation: same 32 distinct cards
	require.Len(t, deck, 32)
	seen := make(map[Card]bool)
	for _, c := range deck {
		assert.False(t, seen[c], "card %s duplicated after shuffle", c)
		seen[c] = true
	}
	assert.Len(t, seen, 32)
}

func TestCard_Points(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		card     Card
		trump    Suit
		expected int
	}{
		{"trump jack is worth 20", Card{Spade, RankJ}, Spade, 20},
		{"trump nine is worth 14", Card{Spade, Rank9}, Spade, 14},
		{"plain jack is worth 2", Card{Heart, RankJ}, Spade, 2},
		{"plain nine is worth 0", Card{Heart, Rank9}, Spade, 0},
		{"ace is worth 11 either way", Card{Heart, RankA}, Spade, 11},
		{"ten is worth 10 either way", Card{Spade, Rank10}, Spade, 10},
		{"seven is worth 0", Card{Club, Rank7}, Spade, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, tt.card.Points(tt.trump))
		})
	}
}

func TestCard_PointsTotal(t *testing.T) {
	t.Parallel()

	// A full deck is always worth 152 points regardless of the trump suit
	for trump := Spade; trump <= Club; trump++ {
		total := 0
		for _, c := range NewDeck() {
			total += c.Points(trump)
		}
		assert.Equal(t, 152, total, "trump %s", trump)
	}
}

func TestCompare(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		a, b     Card
		lead     Suit
		trump    Suit
		stronger bool // a strictly stronger than b
	}{
		{"trump beats any plain card", Card{Spade, Rank7}, Card{Heart, RankA}, Heart, Spade, true},
		{"plain loses to trump", Card{Heart, RankA}, Card{Spade, Rank7}, Heart, Spade, false},
		{"trump jack beats trump nine", Card{Spade, RankJ}, Card{Spade, Rank9}, Spade, Spade, true},
		{"trump nine beats trump ace", Card{Spade, Rank9}, Card{Spade, RankA}, Spade, Spade, true},
		{"trump queen loses to trump king", Card{Spade, RankQ}, Card{Spade, RankK}, Spade, Spade, false},
		{"plain ace beats plain ten", Card{Heart, RankA}, Card{Heart, Rank10}, Heart, Spade, true},
		{"plain ten beats plain king", Card{Heart, Rank10}, Card{Heart, RankK}, Heart, Spade, true},
		{"lead suit beats discard", Card{Heart, Rank7}, Card{Diamond, RankA}, Heart, Spade, true},
		{"discard loses to lead suit", Card{Diamond, RankA}, Card{Heart, Rank7}, Heart, Spade, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := Compare(tt.a, tt.b, tt.lead, tt.trump)
			if tt.stronger {
				assert.Positive(t, got)
			} else {
				assert.Negative(t, got)
			}
		})
	}
}
