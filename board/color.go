package board

import "fmt"

// Color identifies a piece color. The zero value None marks an empty cell.
type Color uint8

const (
	None Color = iota
	Red
	Blue
	Green
	Yellow
	Purple
)

// DefaultPalette is the four-color set used by a standard game.
var DefaultPalette = []Color{Red, Blue, Green, Yellow}

var colorNames = map[Color]string{
	None:   "none",
	Red:    "red",
	Blue:   "blue",
	Green:  "green",
	Yellow: "yellow",
	Purple: "purple",
}

func (c Color) String() string {
	if name, ok := colorNames[c]; ok {
		return name
	}
	return fmt.Sprintf("color(%d)", uint8(c))
}

// ParseColor returns the Color with the given lowercase name.
func ParseColor(name string) (Color, error) {
	for c, n := range colorNames {
		if n == name && c != None {
			return c, nil
		}
	}
	return None, fmt.Errorf("unknown color %q", name)
}
