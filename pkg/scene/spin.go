package scene

import (
	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/engine3d/pkg/math3d"
)

// axis tracks the angle about one axis. The constant spin rate is added
// every frame; impulses add to a boost that a critically damped spring
// pulls back to zero.
type axis struct {
	angle  float64
	rate   float64 // radians per frame
	boost  float64 // radians per frame, decaying
	accel  float64 // spring velocity of boost
	spring harmonica.Spring
}

func newAxis(fps int, rate float64) axis {
	return axis{
		rate: rate,
		// Frequency 4.0 = moderate speed, damping 1.0 = critically damped (no overshoot)
		spring: harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

func (a *axis) update() {
	a.angle += a.rate + a.boost
	a.boost, a.accel = a.spring.Update(a.boost, a.accel, 0)
}

// Spinner owns the object's rotation angles and advances them one frame at
// a time.
type Spinner struct {
	x, y, z axis

	fps   int
	start math3d.Vec3
}

// NewSpinner creates a spinner stepped fps times per second with a constant
// spin in radians per second, starting at the given angles.
func NewSpinner(fps int, spin, start math3d.Vec3) *Spinner {
	s := &Spinner{fps: fps, start: start}
	s.setRates(spin)
	s.Reset()
	return s
}

func (s *Spinner) setRates(spin math3d.Vec3) {
	perFrame := spin.Div(float64(s.fps))
	s.x = newAxis(s.fps, perFrame.X)
	s.y = newAxis(s.fps, perFrame.Y)
	s.z = newAxis(s.fps, perFrame.Z)
}

// Update advances one frame.
func (s *Spinner) Update() {
	s.x.update()
	s.y.update()
	s.z.update()
}

// Impulse adds a decaying boost to each axis, in radians per frame.
func (s *Spinner) Impulse(v math3d.Vec3) {
	s.x.boost += v.X
	s.y.boost += v.Y
	s.z.boost += v.Z
}

// Reset returns to the starting angles and drops any boost.
func (s *Spinner) Reset() {
	s.x = newAxis(s.fps, s.x.rate)
	s.y = newAxis(s.fps, s.y.rate)
	s.z = newAxis(s.fps, s.z.rate)
	s.x.angle, s.y.angle, s.z.angle = s.start.X, s.start.Y, s.start.Z
}

// Angles returns the current angles.
func (s *Spinner) Angles() math3d.Vec3 {
	return math3d.V3(s.x.angle, s.y.angle, s.z.angle)
}

// Rotation returns the object rotation: about Y first, then X, then Z.
func (s *Spinner) Rotation() math3d.Mat3 {
	return math3d.RotateY(s.y.angle).
		Mul(math3d.RotateX(s.x.angle)).
		Mul(math3d.RotateZ(s.z.angle))
}
