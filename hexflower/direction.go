package hexflower

import (
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Direction is the cardinal direction the flower's North slot is rotated to.
type Direction int

const (
	North Direction = iota + 1
	Northeast
	Southeast
	South
	Southwest
	Northwest
)

var directionNames = map[string]Direction{
	"north":     North,
	"n":         North,
	"northeast": Northeast,
	"ne":        Northeast,
	"southeast": Southeast,
	"se":        Southeast,
	"south":     South,
	"s":         South,
	"southwest": Southwest,
	"sw":        Southwest,
	"northwest": Northwest,
	"nw":        Northwest,
}

// String returns the string representation of a Direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case Northeast:
		return "Northeast"
	case Southeast:
		return "Southeast"
	case South:
		return "South"
	case Southwest:
		return "Southwest"
	case Northwest:
		return "Northwest"
	default:
		return "Unknown"
	}
}

// Steps returns the number of 60 degree clockwise turns from North, wrapped
// into 0..5 so out-of-range values never fail.
func (d Direction) Steps() int {
	s := (int(d) - 1) % 6
	if s < 0 {
		s += 6
	}
	return s
}

// Valid reports whether d is one of the six named directions.
func (d Direction) Valid() bool {
	return d >= North && d <= Northwest
}

// ParseDirection accepts a direction name, its abbreviation or a number 1-6.
func ParseDirection(s string) (Direction, error) {
	key := cases.Fold().String(strings.TrimSpace(s))
	if d, ok := directionNames[key]; ok {
		return d, nil
	}
	if n, err := strconv.Atoi(key); err == nil && Direction(n).Valid() {
		return Direction(n), nil
	}
	return 0, fmt.Errorf("unknown flower direction %q", s)
}
