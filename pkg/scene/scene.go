// Package scene assembles a renderable scene from a Config: one mesh, one
// effect, a light, a camera and the spinner that animates the mesh.
// Frontends (terminal, window, PNG export) step and render it.
package scene

import (
	"fmt"

	"github.com/taigrr/engine3d/pkg/effect"
	"github.com/taigrr/engine3d/pkg/math3d"
	"github.com/taigrr/engine3d/pkg/models"
	"github.com/taigrr/engine3d/pkg/render"
)

// Near is the closest distance to the camera geometry may reach.
const Near = 0.1

// startAngle is where the classic demo's rotation begins.
const startAngle = 0.1

// FrameStats describes the last rendered frame.
type FrameStats struct {
	render.Stats
	Lines int // Wireframe segments drawn
	// Visible is false when part of the mesh left the view volume.
	Visible bool
}

// Scene is a single mesh in front of a camera.
type Scene struct {
	cfg        Config
	mesh       *models.Mesh
	texture    *render.Texture
	light      effect.Light
	background render.Color

	camera   *render.Camera
	frustum  render.Frustum
	spinner  *Spinner
	distance float64

	fb     *render.Framebuffer
	kind   Effect
	drawer drawer
	stats  FrameStats
}

// New builds a scene from cfg, loading the mesh and texture it names.
func New(cfg Config) (*Scene, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	mesh, err := loadMesh(cfg)
	if err != nil {
		return nil, err
	}

	tex := mesh.Texture
	if cfg.Texture != "" {
		if tex, err = render.LoadTexture(cfg.Texture); err != nil {
			return nil, fmt.Errorf("load texture: %w", err)
		}
	}
	if tex == nil {
		tex = render.NewCheckerTexture(64, 64, 8, render.RGB(200, 200, 200), render.RGB(100, 100, 100))
	}

	// Validate has already checked both colors.
	lightColor, _ := ParseColor(cfg.Light.Color)
	background, _ := ParseColor(cfg.Background)
	kind, _ := ParseEffect(cfg.Effect)

	d := cfg.Light.Direction
	s := &Scene{
		cfg:        cfg,
		mesh:       mesh,
		texture:    tex,
		light:      effect.NewLight(math3d.V3(d[0], d[1], d[2]), cfg.Light.Ambient, lightColor),
		background: background,
		camera:     render.NewCamera(),
		frustum:    render.ViewFrustum(Near),
		spinner: NewSpinner(cfg.FPS, cfg.Spin.Vec(),
			math3d.V3(2*startAngle, startAngle/2, startAngle)),
		kind:  kind,
		stats: FrameStats{Visible: true},
	}
	s.SetDistance(cfg.Distance)
	s.Resize(cfg.Width, cfg.Height)
	return s, nil
}

func loadMesh(cfg Config) (*models.Mesh, error) {
	switch cfg.Mesh {
	case "cube":
		return models.Cube(1), nil
	case "sphere":
		return models.Sphere(1, cfg.SphereDivisions), nil
	default:
		mesh, err := models.LoadGLTF(cfg.Mesh)
		if err != nil {
			return nil, fmt.Errorf("load mesh: %w", err)
		}
		return mesh, nil
	}
}

// Resize replaces the framebuffer and rebuilds the pipeline for it.
func (s *Scene) Resize(width, height int) {
	s.fb = render.NewFramebuffer(width, height)
	s.rebuild()
}

func (s *Scene) rebuild() {
	var opts []render.Option
	if s.cfg.Workers > 1 {
		opts = append(opts, render.WithBands(s.cfg.Workers))
	}
	s.drawer = newDrawer(s.kind, s.mesh, s.texture, s.light, s.fb, s.fb.Width, s.fb.Height, opts...)
}

// Framebuffer returns the target of Render. It changes on Resize.
func (s *Scene) Framebuffer() *render.Framebuffer {
	return s.fb
}

// Mesh returns the drawn mesh.
func (s *Scene) Mesh() *models.Mesh {
	return s.mesh
}

// Spinner returns the animation state.
func (s *Scene) Spinner() *Spinner {
	return s.spinner
}

// Effect returns the current effect.
func (s *Scene) Effect() Effect {
	return s.kind
}

// SetEffect switches to the named effect.
func (s *Scene) SetEffect(name string) error {
	kind, err := ParseEffect(name)
	if err != nil {
		return err
	}
	s.kind = kind
	s.rebuild()
	return nil
}

// NextEffect cycles to the next effect and returns it.
func (s *Scene) NextEffect() Effect {
	s.kind = s.kind.Next()
	s.rebuild()
	return s.kind
}

// Distance returns the distance from the camera to the mesh center.
func (s *Scene) Distance() float64 {
	return s.distance
}

// SetDistance moves the mesh. Distances that would let any part of the
// mesh leave the view at some orientation are raised to the closest that
// fits.
func (s *Scene) SetDistance(d float64) {
	minDist := s.minDistance()
	if d < minDist {
		render.Logger().Warn("distance too small for mesh, moving it back",
			"requested", d, "distance", minDist)
		d = minDist
	}
	s.distance = d
}

func (s *Scene) minDistance() float64 {
	return render.FitDistance(s.mesh.Radius(), Near)
}

// Step advances the animation one frame.
func (s *Scene) Step() {
	s.spinner.Update()
}

// Render clears the framebuffer and draws the mesh at the current
// rotation.
func (s *Scene) Render() *render.Framebuffer {
	rot := s.spinner.Rotation()
	trans := math3d.V3(0, 0, s.distance)

	visible := s.checkVisible(rot, trans)

	s.fb.Clear(s.background)
	s.camera.Bind(s.drawer, rot, trans)
	s.stats = s.drawer.draw()
	s.stats.Visible = visible
	return s.fb
}

// checkVisible reports whether the mesh lies inside the view volume,
// logging when it stops doing so. The bounding sphere is tried first; the
// rotated bounding box is tighter for flat meshes.
func (s *Scene) checkVisible(rot math3d.Mat3, trans math3d.Vec3) bool {
	r, t := s.camera.Compose(rot, trans)
	box := s.mesh.Bounds().Transform(r, t)
	visible := s.frustum.ContainsSphere(t, s.mesh.Radius()) || s.frustum.ContainsAABB(box)

	if !visible && s.stats.Visible {
		render.Logger().Warn("mesh bounds leave the view volume",
			"min", box.Min, "max", box.Max)
	}
	return visible
}

// Stats returns the statistics of the last Render.
func (s *Scene) Stats() FrameStats {
	return s.stats
}
