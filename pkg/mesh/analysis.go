package mesh

import (
	v3 "github.com/deadsy/sdfx/vec/v3"
)

// Near reports whether two points lie within tolerance of each other on
// every axis.
func Near(a, b v3.Vec, tolerance float64) bool {
	return a.Equals(b, tolerance)
}

// Centroid returns the average position of all vertices across the given
// geometries. The zero vector is returned when there are no vertices.
func Centroid(geometries ...Geometry) v3.Vec {
	var sum v3.Vec
	count := 0
	for _, g := range geometries {
		for _, v := range g.Vertices() {
			sum = sum.Add(v)
			count++
		}
	}
	if count == 0 {
		return v3.Vec{}
	}
	return sum.MulScalar(1.0 / float64(count))
}

// BoundingSphere returns the centroid of the given geometries and the
// radius of the smallest centroid-centered sphere containing every vertex.
func BoundingSphere(geometries ...Geometry) (v3.Vec, float64) {
	centroid := Centroid(geometries...)
	maxDistance := 0.0
	for _, g := range geometries {
		for _, v := range g.Vertices() {
			if d := v.Sub(centroid).Length(); d > maxDistance {
				maxDistance = d
			}
		}
	}
	return centroid, maxDistance
}

// resolvedFace is a triangle face with its indices resolved to concrete
// positions and normals, used for content comparison.
type resolvedFace struct {
	positions [3]v3.Vec
	normals   [3]v3.Vec
	smooth    bool
}

func resolveFaces(g Geometry) []resolvedFace {
	resolved := make([]resolvedFace, 0, g.TriangleFacesLen())
	for t := range g.TriangleFaces() {
		var r resolvedFace
		for i := 0; i < 3; i++ {
			r.positions[i] = g.Vertices()[t.Vertices[i]]
			if t.HasNormals {
				r.normals[i] = g.Normals()[t.Normals[i]]
				r.smooth = true
			}
		}
		resolved = append(resolved, r)
	}
	return resolved
}

// matches reports whether other describes the same triangle with the same
// winding, allowing any cyclic rotation of the corner order.
func (r resolvedFace) matches(other resolvedFace, tolerance float64) bool {
	if r.smooth != other.smooth {
		return false
	}
	for shift := 0; shift < 3; shift++ {
		ok := true
		for i := 0; i < 3; i++ {
			j := (i + shift) % 3
			if !Near(r.positions[i], other.positions[j], tolerance) {
				ok = false
				break
			}
			if r.smooth && !Near(r.normals[i], other.normals[j], tolerance) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// Similar reports whether two geometries describe the same mesh by content:
// equal face counts and a one-to-one pairing of faces whose resolved
// positions (and normals, when present) match within tolerance. Face and
// vertex ordering is ignored, so results of order-unspecified operations
// can be compared against fixtures.
func Similar(a, b Geometry, tolerance float64) bool {
	facesA := resolveFaces(a)
	facesB := resolveFaces(b)
	if len(facesA) != len(facesB) {
		return false
	}
	used := make([]bool, len(facesB))
	for _, fa := range facesA {
		found := false
		for i, fb := range facesB {
			if used[i] {
				continue
			}
			if fa.matches(fb, tolerance) {
				used[i] = true
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
