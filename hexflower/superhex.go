package hexflower

import (
	"strconv"
	"strings"

	"textmapper/geometry"
)

// Letters lists the super-hexes: A is the centre, B-G the inner ring and
// H-S the outer ring, in slot order.
const Letters = "ABCDEFGHIJKLMNOPQRS"

// OpenBorder is returned for a side of an outer super-hex that faces no
// other super-hex.
const OpenBorder = "-"

// adjacency lists the neighbours of each super-hex clockwise from North.
var adjacency = map[string][6]string{
	"A": {"B", "C", "D", "E", "F", "G"},
	"B": {"I", "J", "C", "A", "G", "H"},
	"C": {"J", "K", "L", "D", "A", "B"},
	"D": {"C", "L", "M", "N", "E", "A"},
	"E": {"A", "D", "N", "O", "P", "F"},
	"F": {"G", "A", "E", "P", "Q", "R"},
	"G": {"H", "B", "A", "F", "R", "S"},
	"H": {OpenBorder, "I", "B", "G", "S", OpenBorder},
	"I": {OpenBorder, OpenBorder, "J", "B", "H", OpenBorder},
	"J": {OpenBorder, OpenBorder, "K", "C", "B", "I"},
	"K": {OpenBorder, OpenBorder, OpenBorder, "L", "C", "J"},
	"L": {"K", OpenBorder, OpenBorder, "M", "D", "C"},
	"M": {"L", OpenBorder, OpenBorder, OpenBorder, "N", "D"},
	"N": {"D", "M", OpenBorder, OpenBorder, "O", "E"},
	"O": {"E", "N", OpenBorder, OpenBorder, OpenBorder, "P"},
	"P": {"F", "E", "O", OpenBorder, OpenBorder, "Q"},
	"Q": {"R", "F", "P", OpenBorder, OpenBorder, OpenBorder},
	"R": {"S", "G", "F", "Q", OpenBorder, OpenBorder},
	"S": {OpenBorder, "H", "G", "R", OpenBorder, OpenBorder},
}

// LetterIndex returns the position of letter in Letters, or -1.
func LetterIndex(letter string) int {
	if len(letter) != 1 {
		return -1
	}
	return strings.Index(Letters, letter)
}

// LetterAt returns the letter at index, wrapping around in both directions.
func LetterAt(index int) string {
	i := geometry.Mod(index, len(Letters))
	return Letters[i : i+1]
}

// Neighbors returns the six neighbours of a super-hex clockwise from North.
func Neighbors(letter string) ([6]string, bool) {
	n, ok := adjacency[letter]
	return n, ok
}

// ConnectedLetter returns the super-hex that connector position (0-5, wrapped)
// of base's flower borders, once the flower is turned to startDir and
// mirrored for counterclockwise traversal. Sides facing nothing return
// OpenBorder; an unknown base returns base followed by the position.
func ConnectedLetter(base string, position int, counterclockwise bool, startDir Direction) string {
	n, ok := neighbor(base, position, counterclockwise, startDir)
	if !ok {
		return base + strconv.Itoa(position)
	}
	return n
}

func neighbor(base string, position int, counterclockwise bool, startDir Direction) (string, bool) {
	adj, ok := adjacency[base]
	if !ok {
		return "", false
	}
	s := startDir.Steps()
	// Connector p sits in the same physical direction as inner slot p.
	d := geometry.Mod(position+s, 6)
	if counterclockwise {
		d = geometry.Mod(s-position, 6)
	}
	return adj[d], true
}
