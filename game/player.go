package game

import (
	"fmt"

	"github.com/joerivera/rummage/tiles"
)

// Player is one seat at the table.
type Player struct {
	Name string
	Rack *Rack
	// Opened is set once the player has laid their initial meld(s)
	// worth at least the opening threshold from the rack alone.
	Opened bool
}

func NewPlayer(name string) *Player {
	return &Player{Name: name, Rack: NewRack(nil)}
}

// DrawFrom moves one tile from the bag onto the player's rack. It returns
// false once the bag is empty.
func (p *Player) DrawFrom(bag *tiles.Bag) bool {
	t, ok := bag.Draw()
	if !ok {
		return false
	}
	p.Rack.Add(t)
	return true
}

func (p *Player) String() string {
	opened := "no"
	if p.Opened {
		opened = "yes"
	}
	return fmt.Sprintf("Player(%s, %d tiles, opened: %s)", p.Name, p.Rack.Len(), opened)
}
