/*
 * geometric.go, part of gomask.
 *
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 *
 */

package mask

import (
	"fmt"
	"math"

	v3 "github.com/rmera/gomask/v3"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"
)

const appzero = 1e-9 //used as zero for geometric comparisons

// Box is a simulation box given by its edge lengths (A) and angles (degrees).
// Alpha is the angle between b and c, Beta between a and c, Gamma between a and b.
// Zero angles are taken as 90 degrees, so Box{X: 10, Y: 10, Z: 10} is a cube.
type Box struct {
	X, Y, Z            float64
	Alpha, Beta, Gamma float64
}

func (B *Box) angles() (alpha, beta, gamma float64) {
	deg := func(a float64) float64 {
		if a == 0 {
			a = 90
		}
		return a * math.Pi / 180
	}
	return deg(B.Alpha), deg(B.Beta), deg(B.Gamma)
}

// Vectors returns the box vectors a, b and c, one per row, with a along
// the x axis and b in the xy plane.
func (B *Box) Vectors() *v3.Matrix {
	alpha, beta, gamma := B.angles()
	ret := v3.Zeros(3)
	ret.SetPosition(0, B.X, 0, 0)
	sg := math.Sin(gamma)
	if math.Abs(sg) < appzero {
		sg = appzero
	}
	ret.SetPosition(1, B.Y*math.Cos(gamma), B.Y*sg, 0)
	cx := math.Cos(beta)
	cy := (math.Cos(alpha) - math.Cos(beta)*math.Cos(gamma)) / sg
	cz := 1 - cx*cx - cy*cy
	if cz < 0 {
		cz = 0
	}
	ret.SetPosition(2, B.Z*cx, B.Z*cy, B.Z*math.Sqrt(cz))
	return ret
}

// Center returns the geometric center of the box, (a+b+c)/2.
func (B *Box) Center() (x, y, z float64) {
	vecs := B.Vectors()
	c := make([]float64, 3)
	for i := 0; i < 3; i++ {
		floats.Add(c, vecs.RawRowView(i))
	}
	floats.Scale(0.5, c)
	return c[0], c[1], c[2]
}

// IsZero returns true if the box has no volume, which trajectory
// readers use to mean that no box was present.
func (B *Box) IsZero() bool {
	return B == nil || B.X*B.Y*B.Z <= appzero
}

// BoxFromVectors builds a Box from the 9 components of the a, b and c
// box vectors, as filled by Traj.Next. It returns an error if there are not
// 9 components or if any vector has zero length.
func BoxFromVectors(vecs []float64) (*Box, error) {
	if len(vecs) != 9 {
		return nil, fmt.Errorf("mask: box needs 9 vector components, got %d", len(vecs))
	}
	a, b, c := vecs[0:3], vecs[3:6], vecs[6:9]
	la, lb, lc := floats.Norm(a, 2), floats.Norm(b, 2), floats.Norm(c, 2)
	if la <= appzero || lb <= appzero || lc <= appzero {
		return nil, fmt.Errorf("mask: zero-length box vector")
	}
	angle := func(u, v []float64, lu, lv float64) float64 {
		cos := floats.Dot(u, v) / (lu * lv)
		cos = math.Max(-1, math.Min(1, cos))
		return math.Acos(cos) * 180 / math.Pi
	}
	return &Box{
		X:     la,
		Y:     lb,
		Z:     lc,
		Alpha: angle(b, c, lb, lc),
		Beta:  angle(a, c, la, lc),
		Gamma: angle(a, b, la, lb),
	}, nil
}

// CenterOfMass returns the mass-weighted centroid of the coordinates in
// geometry. If mass is nil, all atoms weight the same and the geometric
// center is returned.
func CenterOfMass(geometry *v3.Matrix, mass []float64) (*v3.Matrix, error) {
	if geometry == nil || geometry.NVecs() == 0 {
		return nil, fmt.Errorf("mask: no coordinates to get the center of mass")
	}
	gr := geometry.NVecs()
	if mass == nil {
		mass = make([]float64, gr)
		floats.AddConst(1, mass)
	}
	if len(mass) != gr {
		return nil, fmt.Errorf("mask: inconsistent coordinates(%d)/masses(%d)", gr, len(mass))
	}
	total := floats.Sum(mass)
	if total <= appzero {
		return nil, &DegenerateGeometryError{Reference: "COM", Reason: "the selected atoms have no mass"}
	}
	ret := v3.Zeros(1)
	col := make([]float64, gr)
	for j := 0; j < 3; j++ {
		mat.Col(col, j, geometry)
		ret.Set(0, j, stat.Mean(col, mass))
	}
	return ret, nil
}

// MomentTensor returns the moment tensor of the coordinates in A, relative
// to their center of mass. A nil mass gives all atoms the same weight.
func MomentTensor(A *v3.Matrix, mass []float64) (*mat.SymDense, error) {
	ar := A.NVecs()
	if mass == nil {
		mass = make([]float64, ar)
		floats.AddConst(1, mass)
	}
	com, err := CenterOfMass(A, mass)
	if err != nil {
		return nil, err
	}
	centered := v3.Zeros(ar)
	centered.SubVec(A, com)
	sqrmass := make([]float64, ar)
	for i, m := range mass {
		sqrmass[i] = math.Sqrt(m)
	}
	centered.ScaleByCol(centered, sqrmass)
	moment := mat.NewSymDense(3, nil)
	moment.SymOuterK(1, centered.T())
	return moment, nil
}

// BestPlane returns the unit normal of the plane that best fits the
// coordinates, and the point the plane goes through (their centroid).
// All atoms have the same weight. It fails with a *DegenerateGeometryError
// for fewer than 3 atoms, or atoms that are (nearly) collinear.
func BestPlane(coords *v3.Matrix) (normal, center *v3.Matrix, err error) {
	if coords.NVecs() < 3 {
		return nil, nil, &DegenerateGeometryError{Reference: "PLANE", Reason: fmt.Sprintf("%d atoms selected, at least 3 are needed", coords.NVecs())}
	}
	moment, err := MomentTensor(coords, nil)
	if err != nil {
		return nil, nil, err
	}
	var es mat.EigenSym
	if ok := es.Factorize(moment, true); !ok {
		return nil, nil, &DegenerateGeometryError{Reference: "PLANE", Reason: "the moment tensor could not be diagonalized"}
	}
	evals := es.Values(nil) //ascending order
	if evals[1] <= appzero*math.Max(evals[2], 1) {
		return nil, nil, &DegenerateGeometryError{Reference: "PLANE", Reason: "the selected atoms are collinear"}
	}
	var evecs mat.Dense
	es.VectorsTo(&evecs)
	normal = v3.Zeros(1)
	normal.SetPosition(0, evecs.At(0, 0), evecs.At(1, 0), evecs.At(2, 0))
	normal.Unit(normal)
	center, err = CenterOfMass(coords, nil)
	return normal, center, err
}

// distanceFunc gives the distance from a point to a resolved reference.
type distanceFunc func(x, y, z float64) float64

func pointDistance(px, py, pz float64) distanceFunc {
	return func(x, y, z float64) float64 {
		dx, dy, dz := x-px, y-py, z-pz
		return math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
}

// planeDistance returns the absolute perpendicular distance to the plane
// with the given unit normal that passes through center.
func planeDistance(normal, center *v3.Matrix) distanceFunc {
	n := normal.RawRowView(0)
	c := center.RawRowView(0)
	return func(x, y, z float64) float64 {
		return math.Abs(n[0]*(x-c[0]) + n[1]*(y-c[1]) + n[2]*(z-c[2]))
	}
}

// listDistance returns the distance to the closest of the given points.
func listDistance(points *v3.Matrix) distanceFunc {
	n := points.NVecs()
	return func(x, y, z float64) float64 {
		min := math.Inf(1)
		for i := 0; i < n; i++ {
			if d := points.VecDistance(i, x, y, z); d < min {
				min = d
			}
		}
		return min
	}
}

// frameBox returns the box of the frame, if it carries one, or else the
// box of the topology.
func frameBox(top TopologyProvider, frame CoordinateFrame) (*Box, bool) {
	if b, ok := frame.(Boxer); ok {
		if box, ok := b.BoxDimensions(); ok && !box.IsZero() {
			return box, true
		}
	}
	box, ok := top.BoxDimensions()
	if !ok || box.IsZero() {
		return nil, false
	}
	return box, true
}

// gather copies the coordinates of the atoms in indexes from frame.
func gather(frame CoordinateFrame, indexes []int) *v3.Matrix {
	ret := v3.Zeros(len(indexes))
	if m, ok := frame.(*v3.Matrix); ok {
		ret.SomeVecs(m, indexes)
		return ret
	}
	for k, i := range indexes {
		x, y, z := frame.Position(i)
		ret.SetPosition(k, x, y, z)
	}
	return ret
}
