package models

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/qmuntal/gltf/modeler"

	"github.com/taigrr/engine3d/pkg/math3d"
	"github.com/taigrr/engine3d/pkg/render"
)

// ErrNoMeshes is returned when a glTF file holds no triangle geometry.
var ErrNoMeshes = errors.New("no triangle meshes")

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// Normalize centers the mesh and scales it to unit radius.
	Normalize bool
	// CalculateNormals fills in smooth normals when the file has none.
	CalculateNormals bool
	// LoadTexture decodes the first image in the file into Mesh.Texture.
	LoadTexture bool
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		Normalize:        true,
		CalculateNormals: true,
		LoadTexture:      true,
	}
}

// LoadGLTF loads a .gltf or .glb file with the default options.
func LoadGLTF(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh.
//
// glTF is right-handed while engine3d's camera space is left-handed, so Z
// is negated and every triangle's winding reversed. The model's front then
// faces a camera looking down +Z, unmirrored.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gltf: %w", err)
	}

	mesh := NewMesh(filepath.Base(path))
	hasNormals := true

	for _, m := range doc.Meshes {
		normals, err := l.processMesh(doc, m, mesh)
		if err != nil {
			return nil, fmt.Errorf("process mesh %q: %w", m.Name, err)
		}
		hasNormals = hasNormals && normals
	}
	if len(mesh.Triangles) == 0 {
		return nil, fmt.Errorf("load %s: %w", path, ErrNoMeshes)
	}
	if err := mesh.Validate(); err != nil {
		return nil, fmt.Errorf("load %s: %w", path, err)
	}

	if l.CalculateNormals && !hasNormals {
		mesh.CalculateSmoothNormals()
	}
	for i := range mesh.Vertices {
		mesh.Vertices[i].Color = normalColor(mesh.Vertices[i].Normal)
	}

	if l.Normalize {
		mesh.Normalize()
	} else {
		mesh.CalculateBounds()
	}

	if l.LoadTexture {
		tex, err := firstImage(doc, filepath.Dir(path))
		if err != nil {
			return nil, fmt.Errorf("load %s: %w", path, err)
		}
		mesh.Texture = tex
	}

	render.Logger().Debug("gltf loaded", "path", path,
		"vertices", mesh.VertexCount(), "triangles", mesh.TriangleCount(),
		"textured", mesh.Texture != nil)
	return mesh, nil
}

// processMesh appends every triangle primitive of m to mesh. It reports
// whether all of them carried normals.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) (bool, error) {
	hasNormals := true

	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := modeler.ReadPosition(doc, doc.Accessors[posIdx], nil)
		if err != nil {
			return false, fmt.Errorf("read positions: %w", err)
		}

		var normals [][3]float32
		if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
			normals, err = modeler.ReadNormal(doc, doc.Accessors[idx], nil)
			if err != nil {
				return false, fmt.Errorf("read normals: %w", err)
			}
		}
		hasNormals = hasNormals && len(normals) == len(positions)

		var uvs [][2]float32
		if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			uvs, err = modeler.ReadTextureCoord(doc, doc.Accessors[idx], nil)
			if err != nil {
				return false, fmt.Errorf("read uvs: %w", err)
			}
		}

		var indices []uint32
		if prim.Indices != nil {
			indices, err = modeler.ReadIndices(doc, doc.Accessors[*prim.Indices], nil)
			if err != nil {
				return false, fmt.Errorf("read indices: %w", err)
			}
		} else {
			// No indices, assume sequential triangles
			indices = make([]uint32, len(positions)-len(positions)%3)
			for i := range indices {
				indices[i] = uint32(i)
			}
		}

		base := len(mesh.Vertices)
		for i, p := range positions {
			v := Vertex{Position: flipZ(p)}
			if i < len(normals) {
				v.Normal = flipZ(normals[i]).Normalize()
			}
			if i < len(uvs) {
				// glTF puts v = 0 at the top of the image, as Texture does.
				v.UV = math3d.V2(float64(uvs[i][0]), float64(uvs[i][1]))
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		for i := 0; i+2 < len(indices); i += 3 {
			a, b, c := int(indices[i]), int(indices[i+1]), int(indices[i+2])
			if a == b || b == c || a == c {
				render.Logger().Debug("skipping degenerate triangle",
					"mesh", m.Name, "triangle", i/3, "indices", [3]int{a, b, c})
				continue
			}
			mesh.Triangles = append(mesh.Triangles, [3]int{base + a, base + c, base + b})
		}
	}

	return hasNormals, nil
}

func flipZ(v [3]float32) math3d.Vec3 {
	return math3d.V3(float64(v[0]), float64(v[1]), -float64(v[2]))
}

// firstImage decodes the first image of doc, embedded or stored next to the
// file. It returns nil if the document has no images.
func firstImage(doc *gltf.Document, dir string) (*render.Texture, error) {
	if len(doc.Images) == 0 {
		return nil, nil
	}
	img := doc.Images[0]

	var data []byte
	switch {
	case img.BufferView != nil:
		bv := doc.BufferViews[*img.BufferView]
		buf := doc.Buffers[bv.Buffer].Data
		if bv.ByteOffset+bv.ByteLength > len(buf) {
			return nil, fmt.Errorf("image buffer view %d exceeds its buffer", *img.BufferView)
		}
		data = buf[bv.ByteOffset : bv.ByteOffset+bv.ByteLength]
	case img.IsEmbeddedResource():
		var err error
		if data, err = img.MarshalData(); err != nil {
			return nil, fmt.Errorf("decode embedded image: %w", err)
		}
	case img.URI != "":
		var err error
		if data, err = os.ReadFile(filepath.Join(dir, img.URI)); err != nil {
			return nil, fmt.Errorf("read image: %w", err)
		}
	default:
		return nil, nil
	}

	decoded, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return render.TextureFromImage(decoded), nil
}
