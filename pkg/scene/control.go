package scene

import (
	"math"
	"math/rand/v2"

	"github.com/taigrr/engine3d/pkg/math3d"
	"github.com/taigrr/engine3d/pkg/render"
)

// Command is a user action shared by the interactive frontends.
type Command int

const (
	CmdNone Command = iota
	CmdNextEffect
	CmdImpulse
	CmdReset
	CmdCloser
	CmdFarther
	CmdQuit
)

const (
	distanceStep = 0.5
	maxDistance  = 20
	impulse      = 0.05 // radians per frame
)

// Apply performs c on the scene. It reports false for CmdQuit so input
// loops can stop.
func (s *Scene) Apply(c Command) bool {
	switch c {
	case CmdNextEffect:
		kind := s.NextEffect()
		render.Logger().Debug("effect changed", "effect", kind)
	case CmdImpulse:
		s.spinner.Impulse(math3d.V3(
			(rand.Float64()-0.5)*2*impulse,
			(rand.Float64()-0.5)*2*impulse,
			(rand.Float64()-0.5)*2*impulse,
		))
	case CmdReset:
		s.spinner.Reset()
		s.SetDistance(s.cfg.Distance)
	case CmdCloser:
		s.SetDistance(math.Max(s.distance-distanceStep, s.minDistance()))
	case CmdFarther:
		s.SetDistance(math.Min(maxDistance, s.distance+distanceStep))
	case CmdQuit:
		return false
	}
	return true
}
