// Package voxel provides the voxel-grid boundary of the engine: a Geometry
// can be rasterized into a Cloud, transformed volumetrically (grow, fill),
// and converted back into a welded Geometry. The cloud itself is a value
// type; grow and fill return new clouds.
package voxel

import (
	"math"

	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/trellis/pkg/mesh"
	"github.com/chazu/trellis/pkg/repair"
)

// Cloud is a dense boolean voxel grid. A voxel at grid coordinate (x,y,z)
// covers the axis-aligned box [coord*dim, (coord+1)*dim) in model space.
type Cloud struct {
	dims   v3.Vec // edge lengths of one voxel
	origin [3]int // absolute grid coordinate of the first cell
	size   [3]int
	filled []bool
}

// FromMesh rasterizes a geometry into a voxel cloud with the given voxel
// dimensions. A voxel is set when its center lies within half a voxel
// diagonal of any triangle, which marks every cell the surface passes
// through. Panics if any voxel dimension is not positive; validating user
// input is the operator layer's job.
func FromMesh(g mesh.Geometry, dims v3.Vec) Cloud {
	if dims.X <= 0 || dims.Y <= 0 || dims.Z <= 0 {
		panic("voxel: voxel dimensions must be positive")
	}
	c := Cloud{dims: dims}
	if len(g.Vertices()) == 0 {
		return c
	}

	lo, hi := meshCellBounds(g, dims)
	c.origin = lo
	for axis := 0; axis < 3; axis++ {
		c.size[axis] = hi[axis] - lo[axis] + 1
	}
	c.filled = make([]bool, c.size[0]*c.size[1]*c.size[2])

	halfDiagonal := dims.MulScalar(0.5).Length()
	for t := range g.TriangleFaces() {
		a := g.Vertices()[t.Vertices[0]]
		b := g.Vertices()[t.Vertices[1]]
		cc := g.Vertices()[t.Vertices[2]]
		tlo, thi := triangleCellBounds(a, b, cc, dims)
		for z := tlo[2]; z <= thi[2]; z++ {
			for y := tlo[1]; y <= thi[1]; y++ {
				for x := tlo[0]; x <= thi[0]; x++ {
					center := v3.Vec{
						X: (float64(x) + 0.5) * dims.X,
						Y: (float64(y) + 0.5) * dims.Y,
						Z: (float64(z) + 0.5) * dims.Z,
					}
					closest := closestPointOnTriangle(center, a, b, cc)
					if closest.Sub(center).Length() <= halfDiagonal {
						c.set(x, y, z)
					}
				}
			}
		}
	}
	return c
}

// ContainsVoxels reports whether any voxel is set.
func (c Cloud) ContainsVoxels() bool {
	for _, f := range c.filled {
		if f {
			return true
		}
	}
	return false
}

// VoxelCount returns the number of set voxels.
func (c Cloud) VoxelCount() int {
	n := 0
	for _, f := range c.filled {
		if f {
			n++
		}
	}
	return n
}

// Dims returns the voxel dimensions of the cloud.
func (c Cloud) Dims() v3.Vec {
	return c.dims
}

// Grow returns a cloud dilated by one voxel: every empty cell sharing a
// side with a set voxel becomes set. The grid expands by one cell in every
// direction to make room.
func (c Cloud) Grow() Cloud {
	if !c.ContainsVoxels() {
		return c
	}
	grown := Cloud{
		dims:   c.dims,
		origin: [3]int{c.origin[0] - 1, c.origin[1] - 1, c.origin[2] - 1},
		size:   [3]int{c.size[0] + 2, c.size[1] + 2, c.size[2] + 2},
	}
	grown.filled = make([]bool, grown.size[0]*grown.size[1]*grown.size[2])

	c.each(func(x, y, z int) {
		grown.set(x, y, z)
		for _, d := range neighborOffsets {
			grown.set(x+d[0], y+d[1], z+d[2])
		}
	})
	return grown
}

// Fill returns a cloud with all enclosed volumes filled. Empty cells are
// flood-filled from outside the grid; whatever the outside flood cannot
// reach is interior and becomes set.
func (c Cloud) Fill() Cloud {
	if !c.ContainsVoxels() {
		return c
	}
	// Work in a one-cell margin around the grid so the outside is a single
	// connected region regardless of voxels touching the grid boundary.
	msize := [3]int{c.size[0] + 2, c.size[1] + 2, c.size[2] + 2}
	outside := make([]bool, msize[0]*msize[1]*msize[2])
	index := func(x, y, z int) int { return x + y*msize[0] + z*msize[0]*msize[1] }

	stack := [][3]int{{0, 0, 0}}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if p[0] < 0 || p[1] < 0 || p[2] < 0 ||
			p[0] >= msize[0] || p[1] >= msize[1] || p[2] >= msize[2] {
			continue
		}
		if outside[index(p[0], p[1], p[2])] {
			continue
		}
		// Margin coordinates are grid coordinates shifted by one.
		if c.get(c.origin[0]+p[0]-1, c.origin[1]+p[1]-1, c.origin[2]+p[2]-1) {
			continue
		}
		outside[index(p[0], p[1], p[2])] = true
		for _, d := range neighborOffsets {
			stack = append(stack, [3]int{p[0] + d[0], p[1] + d[1], p[2] + d[2]})
		}
	}

	result := Cloud{dims: c.dims, origin: c.origin, size: c.size}
	result.filled = make([]bool, len(c.filled))
	for z := 0; z < c.size[2]; z++ {
		for y := 0; y < c.size[1]; y++ {
			for x := 0; x < c.size[0]; x++ {
				if !outside[index(x+1, y+1, z+1)] {
					result.set(c.origin[0]+x, c.origin[1]+y, c.origin[2]+z)
				}
			}
		}
	}
	return result
}

// ToMesh reconstructs a geometry from the cloud: every voxel side not
// shared with another voxel becomes a quad, and the resulting per-face
// triangle soup is welded into shared vertices. The boolean result is false
// when no geometry can be produced, either because the cloud is empty or
// because welding the reconstructed faces failed.
func (c Cloud) ToMesh() (mesh.Geometry, bool) {
	if !c.ContainsVoxels() {
		return mesh.Geometry{}, false
	}

	var vertices, normals []v3.Vec
	var faces []mesh.TriangleFace
	c.each(func(x, y, z int) {
		for fi, d := range neighborOffsets {
			if c.get(x+d[0], y+d[1], z+d[2]) {
				continue
			}
			base := uint32(len(vertices))
			for _, ci := range boundaryFaceCorners[fi] {
				offset := cornerOffsets[ci]
				vertices = append(vertices, v3.Vec{
					X: float64(x+offset[0]) * c.dims.X,
					Y: float64(y+offset[1]) * c.dims.Y,
					Z: float64(z+offset[2]) * c.dims.Z,
				})
				normals = append(normals, v3.Vec{
					X: float64(d[0]),
					Y: float64(d[1]),
					Z: float64(d[2]),
				})
			}
			faces = append(faces,
				mesh.NewTriangleFaceWithNormals(base, base+1, base+2),
				mesh.NewTriangleFaceWithNormals(base+2, base+3, base),
			)
		}
	})

	soup := mesh.FromTriangleFacesWithVerticesAndNormals(faces, vertices, normals)
	tolerance := math.Min(c.dims.X, math.Min(c.dims.Y, c.dims.Z)) / 1000.0
	welded := repair.Weld(soup, tolerance)
	if welded.TriangleFacesLen() == 0 {
		return mesh.Geometry{}, false
	}
	return welded, true
}

func (c Cloud) index(x, y, z int) (int, bool) {
	gx, gy, gz := x-c.origin[0], y-c.origin[1], z-c.origin[2]
	if gx < 0 || gy < 0 || gz < 0 || gx >= c.size[0] || gy >= c.size[1] || gz >= c.size[2] {
		return 0, false
	}
	return gx + gy*c.size[0] + gz*c.size[0]*c.size[1], true
}

func (c Cloud) get(x, y, z int) bool {
	i, ok := c.index(x, y, z)
	return ok && c.filled[i]
}

func (c *Cloud) set(x, y, z int) {
	if i, ok := c.index(x, y, z); ok {
		c.filled[i] = true
	}
}

// each visits every set voxel in absolute grid coordinates.
func (c Cloud) each(visit func(x, y, z int)) {
	for z := 0; z < c.size[2]; z++ {
		for y := 0; y < c.size[1]; y++ {
			for x := 0; x < c.size[0]; x++ {
				if c.filled[x+y*c.size[0]+z*c.size[0]*c.size[1]] {
					visit(c.origin[0]+x, c.origin[1]+y, c.origin[2]+z)
				}
			}
		}
	}
}

var neighborOffsets = [6][3]int{
	{0, 0, -1},
	{0, 0, 1},
	{0, -1, 0},
	{0, 1, 0},
	{-1, 0, 0},
	{1, 0, 0},
}

// cornerOffsets are the eight corners of a unit cell.
var cornerOffsets = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

// boundaryFaceCorners lists, per entry of neighborOffsets, the cell corners
// of the facing quad in outward counter-clockwise order.
var boundaryFaceCorners = [6][4]int{
	{0, 3, 2, 1}, // -Z
	{4, 5, 6, 7}, // +Z
	{0, 1, 5, 4}, // -Y
	{2, 3, 7, 6}, // +Y
	{0, 4, 7, 3}, // -X
	{1, 2, 6, 5}, // +X
}

func meshCellBounds(g mesh.Geometry, dims v3.Vec) (lo, hi [3]int) {
	first := true
	for _, v := range g.Vertices() {
		cell := cellOf(v, dims)
		if first {
			lo, hi = cell, cell
			first = false
			continue
		}
		for axis := 0; axis < 3; axis++ {
			if cell[axis] < lo[axis] {
				lo[axis] = cell[axis]
			}
			if cell[axis] > hi[axis] {
				hi[axis] = cell[axis]
			}
		}
	}
	return lo, hi
}

func triangleCellBounds(a, b, c v3.Vec, dims v3.Vec) (lo, hi [3]int) {
	lo = cellOf(a, dims)
	hi = lo
	for _, v := range []v3.Vec{b, c} {
		cell := cellOf(v, dims)
		for axis := 0; axis < 3; axis++ {
			if cell[axis] < lo[axis] {
				lo[axis] = cell[axis]
			}
			if cell[axis] > hi[axis] {
				hi[axis] = cell[axis]
			}
		}
	}
	return lo, hi
}

func cellOf(v v3.Vec, dims v3.Vec) [3]int {
	return [3]int{
		int(math.Floor(v.X / dims.X)),
		int(math.Floor(v.Y / dims.Y)),
		int(math.Floor(v.Z / dims.Z)),
	}
}

// closestPointOnTriangle returns the point of triangle abc closest to p.
func closestPointOnTriangle(p, a, b, c v3.Vec) v3.Vec {
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.MulScalar(v))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.MulScalar(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && d4-d3 >= 0 && d5-d6 >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).MulScalar(w))
	}

	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.MulScalar(v)).Add(ac.MulScalar(w))
}
