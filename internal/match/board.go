// Package match implements the Zen Break memory game: sixteen face down
// cards, eight cafe symbols each appearing twice.
//
// A second flip does not resolve the pair immediately. Flip returns a
// Resolution that the host schedules after Resolution.Delay and hands back
// to Resolve. Until then the selection is full and further flips are
// rejected.
package match

import (
	"math/rand/v2"
	"time"
)

// Symbols are the eight card faces
var Symbols = []string{"☕", "🥐", "🥯", "🍰", "🍪", "🍩", "🥛", "🍵"}

// BoardSize is the number of cards on the table
const BoardSize = 16

// Card is a single tile
type Card struct {
	ID      int
	Symbol  string
	Flipped bool
	Matched bool
}

// FaceUp reports whether the symbol is visible
func (c Card) FaceUp() bool {
	return c.Flipped || c.Matched
}

// Pacing holds how long a completed pair stays visible before it resolves
type Pacing struct {
	Match    time.Duration
	Mismatch time.Duration
}

// DefaultPacing shows matches for half a second and mismatches for one
var DefaultPacing = Pacing{
	Match:    500 * time.Millisecond,
	Mismatch: 1000 * time.Millisecond,
}

// Shuffler permutes n elements through swap. *rand.Rand satisfies it.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// NewSeeded returns a deterministic shuffler
func NewSeeded(seed uint64) Shuffler {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

type globalShuffler struct{}

func (globalShuffler) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// Resolution is a pending pair comparison
type Resolution struct {
	Token  uint64
	First  int
	Second int
	Match  bool
	Delay  time.Duration
}

// Board is one game. It is not safe for concurrent use; the host serializes
// flips and resolutions on its event loop.
type Board struct {
	shuffler Shuffler
	pacing   Pacing

	cards     []Card
	selection []int
	moves     int
	won       bool

	// pending is the token of the unresolved pair, 0 when none
	pending uint64
	next    uint64
	closed  bool
}

// NewBoard creates a shuffled board. A nil shuffler uses the global source.
func NewBoard(s Shuffler, pacing Pacing) *Board {
	if s == nil {
		s = globalShuffler{}
	}
	if pacing.Match <= 0 {
		pacing.Match = DefaultPacing.Match
	}
	if pacing.Mismatch <= 0 {
		pacing.Mismatch = DefaultPacing.Mismatch
	}
	b := &Board{shuffler: s, pacing: pacing}
	b.Restart()
	return b
}

// Restart deals a fresh shuffled deck and clears all progress. Any
// outstanding Resolution becomes stale.
func (b *Board) Restart() {
	deck := make([]string, 0, BoardSize)
	deck = append(deck, Symbols...)
	deck = append(deck, Symbols...)
	b.shuffler.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})

	b.cards = make([]Card, len(deck))
	for i, sym := range deck {
		b.cards[i] = Card{ID: i, Symbol: sym}
	}
	b.selection = b.selection[:0]
	b.moves = 0
	b.won = false
	b.pending = 0
	b.closed = false
}

// Flip turns card id face up. It returns false and changes nothing when the
// selection is full, the card is already face up or matched, the id is out
// of range, or the game is over. Completing a pair counts a move and returns
// the Resolution to schedule.
func (b *Board) Flip(id int) (*Resolution, bool) {
	if b.closed || b.won || len(b.selection) >= 2 {
		return nil, false
	}
	if id < 0 || id >= len(b.cards) {
		return nil, false
	}
	if b.cards[id].Flipped || b.cards[id].Matched {
		return nil, false
	}

	b.cards[id].Flipped = true
	b.selection = append(b.selection, id)
	if len(b.selection) < 2 {
		return nil, true
	}

	b.moves++
	first, second := b.selection[0], b.selection[1]
	res := &Resolution{
		First:  first,
		Second: second,
		Match:  b.cards[first].Symbol == b.cards[second].Symbol,
	}
	if res.Match {
		res.Delay = b.pacing.Match
	} else {
		res.Delay = b.pacing.Mismatch
	}
	b.next++
	b.pending = b.next
	res.Token = b.pending
	return res, true
}

// Resolve applies the pending pair identified by token. Stale tokens from a
// previous deal, repeated tokens and tokens delivered after Close are
// ignored.
func (b *Board) Resolve(token uint64) bool {
	if b.closed || token == 0 || token != b.pending || len(b.selection) != 2 {
		return false
	}

	first, second := b.selection[0], b.selection[1]
	if b.cards[first].Symbol == b.cards[second].Symbol {
		b.cards[first].Matched = true
		b.cards[second].Matched = true
	} else {
		b.cards[first].Flipped = false
		b.cards[second].Flipped = false
	}
	b.selection = b.selection[:0]
	b.pending = 0
	b.updateWon()
	return true
}

func (b *Board) updateWon() {
	for _, c := range b.cards {
		if !c.Matched {
			return
		}
	}
	b.won = true
}

// Close detaches the board from its host. Pending resolutions will not fire.
func (b *Board) Close() {
	b.closed = true
	b.pending = 0
}

// Cards returns a copy of the table in position order
func (b *Board) Cards() []Card {
	out := make([]Card, len(b.cards))
	copy(out, b.cards)
	return out
}

// Card returns the card at id
func (b *Board) Card(id int) (Card, bool) {
	if id < 0 || id >= len(b.cards) {
		return Card{}, false
	}
	return b.cards[id], true
}

// Selection returns the ids flipped but not yet resolved
func (b *Board) Selection() []int {
	out := make([]int, len(b.selection))
	copy(out, b.selection)
	return out
}

// Pending reports whether a pair is waiting for Resolve
func (b *Board) Pending() bool { return b.pending != 0 }

// Moves returns the number of completed pair comparisons
func (b *Board) Moves() int { return b.moves }

// Won reports whether every card is matched
func (b *Board) Won() bool { return b.won }

// MatchedPairs counts resolved matches
func (b *Board) MatchedPairs() int {
	n := 0
	for _, c := range b.cards {
		if c.Matched {
			n++
		}
	}
	return n / 2
}
