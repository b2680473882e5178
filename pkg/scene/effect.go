package scene

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/taigrr/engine3d/pkg/effect"
	"github.com/taigrr/engine3d/pkg/math3d"
	"github.com/taigrr/engine3d/pkg/models"
	"github.com/taigrr/engine3d/pkg/render"
)

// ErrUnknownEffect is returned for an effect name ParseEffect does not know.
var ErrUnknownEffect = errors.New("unknown effect")

// Effect names a shading model a Scene can draw with.
type Effect string

const (
	EffectFlat      Effect = "flat"
	EffectGouraud   Effect = "gouraud"
	EffectTexture   Effect = "texture"
	EffectColor     Effect = "color"
	EffectWireframe Effect = "wireframe"
)

// Effects lists every effect in cycling order.
var Effects = []Effect{EffectTexture, EffectFlat, EffectGouraud, EffectColor, EffectWireframe}

// ParseEffect looks up an effect by name, ignoring case.
func ParseEffect(name string) (Effect, error) {
	e := Effect(strings.ToLower(strings.TrimSpace(name)))
	if !slices.Contains(Effects, e) {
		return "", fmt.Errorf("%w %q", ErrUnknownEffect, name)
	}
	return e, nil
}

// Next returns the effect after e in Effects.
func (e Effect) Next() Effect {
	i := slices.Index(Effects, e)
	return Effects[(i+1)%len(Effects)]
}

// drawer draws one mesh with one effect into the scene's framebuffer.
type drawer interface {
	render.TransformBinder
	draw() FrameStats
}

// meshDrawer pairs a triangle pipeline with the vertex list its effect
// consumes.
type meshDrawer[In any, VS render.Vertex[VS], GS render.Vertex[GS]] struct {
	render.TransformBinder
	pipeline *render.Pipeline[In, VS, GS]
	list     render.IndexedTriangleList[In]
}

func (d *meshDrawer[In, VS, GS]) draw() FrameStats {
	d.pipeline.Draw(d.list)
	return FrameStats{Stats: d.pipeline.Stats()}
}

type wireDrawer struct {
	*render.WireframePipeline
	list  render.IndexedLineList
	color render.Color
}

func (d *wireDrawer) draw() FrameStats {
	d.Draw(d.list, d.color)
	return FrameStats{Lines: d.Lines()}
}

// surfaceColor is the material color of the untextured effects.
const surfaceColor = render.ColorWhite

// newDrawer builds the pipeline for kind drawing mesh into sink.
func newDrawer(kind Effect, mesh *models.Mesh, tex *render.Texture, light effect.Light,
	sink render.PixelSink, width, height int, opts ...render.Option,
) drawer {
	switch kind {
	case EffectFlat:
		e := effect.NewFlat(surfaceColor, light)
		return &meshDrawer[math3d.Vec3, effect.FlatVertex, effect.FlatVertex]{
			TransformBinder: e,
			pipeline:        effect.NewFlatPipeline(e, sink, width, height, opts...),
			list:            mesh.FlatList(),
		}
	case EffectGouraud:
		e := effect.NewGouraud(surfaceColor, light)
		return &meshDrawer[effect.NormalVertex, effect.GouraudVertex, effect.GouraudVertex]{
			TransformBinder: e,
			pipeline:        effect.NewGouraudPipeline(e, sink, width, height, opts...),
			list:            mesh.GouraudList(),
		}
	case EffectColor:
		e := effect.NewVertexColor()
		return &meshDrawer[effect.ColorVertex, effect.ColorVertex, effect.ColorVertex]{
			TransformBinder: e,
			pipeline:        effect.NewVertexColorPipeline(e, sink, width, height, opts...),
			list:            mesh.ColorList(),
		}
	case EffectWireframe:
		return &wireDrawer{
			WireframePipeline: render.NewWireframePipeline(sink, width, height),
			list:              mesh.LineList(),
			color:             light.Tint(surfaceColor),
		}
	default:
		e := effect.NewTexture(tex, light)
		return &meshDrawer[effect.UVVertex, effect.TextureVertex, effect.TextureVertex]{
			TransformBinder: e,
			pipeline:        effect.NewTexturePipeline(e, sink, width, height, opts...),
			list:            mesh.TextureList(),
		}
	}
}
