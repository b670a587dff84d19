package ui

import (
	"fmt"
	"io"

	"color-tango/internal/pad"

	"github.com/rs/zerolog"
)

// Speaker plays pad cues by ringing the terminal bell. The ambient track has
// no terminal equivalent; its state is kept so the rest of the program can
// treat it like the real thing.
type Speaker struct {
	Enabled       bool
	AmbientVolume float64

	out     io.Writer
	ambient bool
	cues    int
	logger  zerolog.Logger
}

func NewSpeaker(out io.Writer, enabled bool, ambientVolume float64, logger zerolog.Logger) *Speaker {
	return &Speaker{
		Enabled:       enabled,
		AmbientVolume: ambientVolume,
		out:           out,
		logger:        logger.With().Str("component", "audio").Logger(),
	}
}

// StartAmbient starts the background track. It runs for the whole session.
func (s *Speaker) StartAmbient() {
	if s.ambient {
		return
	}
	s.ambient = true
	s.logger.Info().Float64("volume", s.AmbientVolume).Msg("Ambient track started")
}

func (s *Speaker) AmbientPlaying() bool {
	return s.ambient
}

// Cue plays the sound attached to the pad.
func (s *Speaker) Cue(c pad.Color) {
	p, ok := pad.Lookup(c)
	if !ok {
		return
	}
	s.cues++
	s.logger.Debug().Str("pad", c.String()).Str("cue", p.Cue).Msg("Cue")
	if s.Enabled && s.out != nil {
		fmt.Fprint(s.out, "\a")
	}
}

// CuesPlayed counts cues since start, muted or not.
func (s *Speaker) CuesPlayed() int {
	return s.cues
}
