package tiles

import (
	"testing"

	"github.com/matryer/is"
)

func TestNewRejectsBadInput(t *testing.T) {
	is := is.New(t)
	_, err := New(Red, 0)
	is.True(err != nil)
	_, err = New(Red, 14)
	is.True(err != nil)
	_, err = New(JokerColor, 5)
	is.True(err != nil)
}

func TestValueEqualityVsIdentity(t *testing.T) {
	is := is.New(t)
	a := MustNew(Red, 4)
	b := MustNew(Red, 4)
	is.True(a.EqualValue(b))   // same face value
	is.True(!a.Same(b))        // different physical tiles
	is.True(a.Same(a))
	is.True(!a.EqualValue(MustNew(Blue, 4)))
	is.True(!a.EqualValue(NewJoker()))
}

func TestOrdering(t *testing.T) {
	is := is.New(t)
	ts := []Tile{MustNew(Black, 9), NewJoker(), MustNew(Red, 9), MustNew(Blue, 2)}
	Sort(ts)
	is.Equal(ts[0].Rank(), 2)
	is.Equal(ts[1].Color(), Red)   // rank ties break by color
	is.Equal(ts[2].Color(), Black)
	is.True(ts[3].IsJoker()) // jokers sort last
}

func TestPoints(t *testing.T) {
	is := is.New(t)
	is.Equal(MustNew(Orange, 11).Points(), 11)
	is.Equal(NewJoker().Points(), JokerRank)
	is.Equal(Points([]Tile{MustNew(Red, 1), MustNew(Blue, 2), NewJoker()}), 33)
}

func TestString(t *testing.T) {
	is := is.New(t)
	is.Equal(MustNew(Red, 10).String(), "R10")
	is.Equal(MustNew(Black, 7).String(), "K7")
	is.Equal(NewJoker().String(), "JOKER")
}
