package pad

import (
	"math/rand"
	"strings"
	"time"
)

// Color identifies one of the four pads.
type Color string

const (
	Red    Color = "red"
	Green  Color = "green"
	Blue   Color = "blue"
	Yellow Color = "yellow"
)

// Pad is a fixed input/output zone. Cue names the sound played when the pad lights up.
type Pad struct {
	Color Color
	Cue   string
}

var pads = []Pad{
	{Color: Red, Cue: "simon-says-sound-1"},
	{Color: Green, Cue: "simon-says-sound-2"},
	{Color: Blue, Cue: "simon-says-sound-3"},
	{Color: Yellow, Cue: "simon-says-sound-4"},
}

// All returns the pad set in display order.
func All() []Pad {
	out := make([]Pad, len(pads))
	copy(out, pads)
	return out
}

// Lookup returns the pad tagged with the given color.
func Lookup(c Color) (Pad, bool) {
	for _, p := range pads {
		if p.Color == c {
			return p, true
		}
	}
	return Pad{}, false
}

// Parse maps a zone tag such as "Red" or " blue " to a pad color.
func Parse(s string) (Color, bool) {
	c := Color(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := Lookup(c); !ok {
		return "", false
	}
	return c, true
}

func (c Color) Valid() bool {
	_, ok := Lookup(c)
	return ok
}

func (c Color) String() string {
	return string(c)
}

// Generator draws pads uniformly with replacement.
type Generator struct {
	rng *rand.Rand
}

// NewGenerator returns a generator seeded with seed. A zero seed uses the current time.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rng: rand.New(rand.NewSource(seed))}
}

// Next returns the color of a randomly chosen pad.
func (g *Generator) Next() Color {
	return pads[g.rng.Intn(len(pads))].Color
}
