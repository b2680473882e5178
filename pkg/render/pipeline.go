package render

import (
	"context"
	"log/slog"

	"github.com/taigrr/engine3d/pkg/math3d"
)

// Effect bundles the three shader stages of one shading model.
//
// In is the object-space vertex the mesh provides, VSOut is what the vertex
// shader produces, and GSOut is what the geometry shader hands to the
// rasterizer and, after interpolation, to the pixel shader.
type Effect[In any, VSOut Vertex[VSOut], GSOut Vertex[GSOut]] interface {
	// VertexShader runs once per input vertex.
	VertexShader(in In) VSOut
	// GeometryShader runs once per triangle that survives culling.
	GeometryShader(tri Triangle[VSOut]) Triangle[GSOut]
	// PixelShader runs once per covered pixel. The vertex has its attributes
	// recovered from the 1/z weighting; its position holds the pixel
	// center in screen space and the view depth in z.
	PixelShader(v GSOut) Color
}

// TransformBinder is implemented by effects whose vertex shader places the
// mesh in camera space. Callers rebind both every frame before Draw.
type TransformBinder interface {
	BindRotation(m math3d.Mat3)
	BindTranslation(t math3d.Vec3)
}

// Stats counts what the last Draw call did.
type Stats struct {
	Triangles  int // Submitted
	Culled     int // Back-facing or degenerate
	Rasterized int
	Pixels     int // PutPixel calls
}

type options struct {
	bands int
}

// Option configures a Pipeline.
type Option func(*options)

// WithBands splits rasterization into n horizontal bands drawn concurrently.
// Output is identical to the sequential path. The sink must tolerate
// concurrent writes to different rows and the pixel shader must be safe for
// concurrent use. n <= 1 keeps rasterization on the calling goroutine.
func WithBands(n int) Option {
	return func(o *options) {
		o.bands = n
	}
}

// Pipeline drives an indexed triangle list through an Effect and into a
// PixelSink.
type Pipeline[In any, VSOut Vertex[VSOut], GSOut Vertex[GSOut]] struct {
	effect Effect[In, VSOut, GSOut]
	sink   PixelSink
	screen ScreenTransform
	height int
	bands  int

	// Per-draw scratch, reset at the start of every Draw.
	transformed []VSOut
	queue       []Triangle[GSOut]
	stats       Stats
}

// NewPipeline creates a pipeline that renders e into a width x height sink.
func NewPipeline[In any, VSOut Vertex[VSOut], GSOut Vertex[GSOut]](
	e Effect[In, VSOut, GSOut], sink PixelSink, width, height int, opts ...Option,
) *Pipeline[In, VSOut, GSOut] {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return &Pipeline[In, VSOut, GSOut]{
		effect: e,
		sink:   sink,
		screen: NewScreenTransform(width, height),
		height: height,
		bands:  o.bands,
	}
}

// Effect returns the effect the pipeline draws with.
func (p *Pipeline[In, VSOut, GSOut]) Effect() Effect[In, VSOut, GSOut] {
	return p.effect
}

// Stats returns the counters of the last Draw.
func (p *Pipeline[In, VSOut, GSOut]) Stats() Stats {
	return p.stats
}

// Draw shades and rasterizes every triangle of list, in order.
//
// An index outside list.Vertices panics. Triangles facing away from the
// camera, including zero-area ones, are dropped. Later triangles paint over
// earlier ones; there is no depth test.
func (p *Pipeline[In, VSOut, GSOut]) Draw(list IndexedTriangleList[In]) {
	p.stats = Stats{Triangles: len(list.Triangles)}
	p.processVertices(list.Vertices)

	n := len(p.transformed)
	for i, t := range list.Triangles {
		mustIndex("triangle", i, t[0], n)
		mustIndex("triangle", i, t[1], n)
		mustIndex("triangle", i, t[2], n)
		p.assembleTriangle(p.transformed[t[0]], p.transformed[t[1]], p.transformed[t[2]])
	}

	if p.bands > 1 {
		p.stats.Pixels = p.rasterizeBands(p.queue)
		clear(p.queue)
		p.queue = p.queue[:0]
	}

	log := Logger()
	if log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("draw",
			"triangles", p.stats.Triangles,
			"culled", p.stats.Culled,
			"rasterized", p.stats.Rasterized,
			"pixels", p.stats.Pixels)
	}
}

// processVertices runs the vertex shader once per vertex. Results share the
// indices of the input list.
func (p *Pipeline[In, VSOut, GSOut]) processVertices(in []In) {
	p.transformed = p.transformed[:0]
	for _, v := range in {
		p.transformed = append(p.transformed, p.effect.VertexShader(v))
	}
}

// assembleTriangle culls a triangle and sends survivors through the
// geometry shader.
func (p *Pipeline[In, VSOut, GSOut]) assembleTriangle(v0, v1, v2 VSOut) {
	if BackFacing(v0.Position(), v1.Position(), v2.Position()) {
		p.stats.Culled++
		return
	}
	p.postProcessTriangle(p.effect.GeometryShader(Triangle[VSOut]{v0, v1, v2}))
}

// postProcessTriangle projects a triangle to the screen and rasterizes it,
// or queues it when drawing in bands.
func (p *Pipeline[In, VSOut, GSOut]) postProcessTriangle(tri Triangle[GSOut]) {
	tri.V0 = Project(p.screen, tri.V0)
	tri.V1 = Project(p.screen, tri.V1)
	tri.V2 = Project(p.screen, tri.V2)
	p.stats.Rasterized++

	if p.bands > 1 {
		p.queue = append(p.queue, tri)
		return
	}

	s := newScanliner(p.effect.PixelShader, p.sink)
	s.triangle(tri.V0, tri.V1, tri.V2)
	p.stats.Pixels += s.pixels
}

// BackFacing reports whether the camera at the origin sees the back of the
// triangle v0 v1 v2. The unnormalized face normal is enough for the sign
// test. A zero-area triangle has a zero normal and counts as back-facing.
func BackFacing(v0, v1, v2 math3d.Vec3) bool {
	n := v1.Sub(v0).Cross(v2.Sub(v0))
	return n.Dot(v0) >= 0
}
