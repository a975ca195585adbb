// Package export writes mesh geometries to interchange formats.
package export

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
	"os"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/trellis/pkg/mesh"
)

// stlHeaderSize is the fixed binary STL header length in bytes.
const stlHeaderSize = 80

// stlTriangle mirrors the 50-byte binary STL triangle record.
type stlTriangle struct {
	Normal   [3]float32
	Vertices [3][3]float32
	Attr     uint16
}

// WriteSTL writes the geometry to w in binary STL format. Normals are
// recomputed from face winding; STL has no notion of per-vertex normals.
func WriteSTL(w io.Writer, g mesh.Geometry) error {
	bw := bufio.NewWriter(w)

	var header [stlHeaderSize]byte
	copy(header[:], "trellis mesh")
	if _, err := bw.Write(header[:]); err != nil {
		return err
	}

	count := uint32(g.TriangleFacesLen())
	if err := binary.Write(bw, binary.LittleEndian, count); err != nil {
		return err
	}

	vertices := g.Vertices()
	for f := range g.TriangleFaces() {
		a := vertices[f.Vertices[0]]
		b := vertices[f.Vertices[1]]
		c := vertices[f.Vertices[2]]

		n := b.Sub(a).Cross(c.Sub(a))
		if n.Length() > 0 {
			n = n.Normalize()
		}

		rec := stlTriangle{
			Normal:   toFloat32(n),
			Vertices: [3][3]float32{toFloat32(a), toFloat32(b), toFloat32(c)},
		}
		if err := binary.Write(bw, binary.LittleEndian, rec); err != nil {
			return err
		}
	}

	return bw.Flush()
}

// SaveSTL writes the geometry to a binary STL file at path.
func SaveSTL(path string, g mesh.Geometry) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}
	if err := WriteSTL(f, g); err != nil {
		f.Close()
		return fmt.Errorf("export: writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("export: %w", err)
	}
	return nil
}

func toFloat32(v v3.Vec) [3]float32 {
	return [3]float32{float32(v.X), float32(v.Y), float32(v.Z)}
}
