package export

import (
	"bytes"
	"encoding/binary"
	"math"
	"testing"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/trellis/pkg/mesh"
)

func TestWriteSTLRecordLayout(t *testing.T) {
	g := mesh.Cube(v3.Vec{}, 1)

	var buf bytes.Buffer
	if err := WriteSTL(&buf, g); err != nil {
		t.Fatalf("WriteSTL failed: %v", err)
	}

	// 80-byte header + 4-byte count + 50 bytes per triangle.
	want := 80 + 4 + 50*len(g.Faces())
	if buf.Len() != want {
		t.Fatalf("wrote %d bytes, want %d", buf.Len(), want)
	}

	count := binary.LittleEndian.Uint32(buf.Bytes()[80:84])
	if int(count) != len(g.Faces()) {
		t.Errorf("triangle count = %d, want %d", count, len(g.Faces()))
	}
}

func TestWriteSTLNormalsAreUnitLength(t *testing.T) {
	g := mesh.Cube(v3.Vec{}, 2)

	var buf bytes.Buffer
	if err := WriteSTL(&buf, g); err != nil {
		t.Fatalf("WriteSTL failed: %v", err)
	}

	data := buf.Bytes()[84:]
	for i := 0; i < len(g.Faces()); i++ {
		rec := data[i*50:]
		var n [3]float32
		for j := range n {
			n[j] = float32FromLE(rec[j*4:])
		}
		length := float64(n[0]*n[0] + n[1]*n[1] + n[2]*n[2])
		if length < 0.99 || length > 1.01 {
			t.Fatalf("triangle %d has non-unit normal %v", i, n)
		}
	}
}

func TestWriteSTLEmptyGeometry(t *testing.T) {
	var g mesh.Geometry

	var buf bytes.Buffer
	if err := WriteSTL(&buf, g); err != nil {
		t.Fatalf("WriteSTL failed: %v", err)
	}
	if buf.Len() != 84 {
		t.Errorf("empty mesh should produce header and zero count, got %d bytes", buf.Len())
	}
}

func TestSaveSTLRoundTrip(t *testing.T) {
	path := t.TempDir() + "/cube.stl"
	if err := SaveSTL(path, mesh.Cube(v3.Vec{}, 1)); err != nil {
		t.Fatalf("SaveSTL failed: %v", err)
	}
}

func float32FromLE(b []byte) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b))
}
