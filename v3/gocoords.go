/*
 * gocoords.go, part of gomask.
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
 */

package v3

import (
	"fmt"
	"math"
	"strings"

	"gonum.org/v1/gonum/floats"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

// SubVec subtracts the vector vec from each vector of A, putting
// the result on the receiver. Panics if matrices are mismatched.
func (F *Matrix) SubVec(A, vec *Matrix) {
	ar, _ := A.Dims()
	vr, _ := vec.Dims()
	fr, _ := F.Dims()
	if vr != 1 || ar != fr {
		panic(ErrShape)
	}
	v := vec.RawRowView(0)
	for i := 0; i < ar; i++ {
		a := A.RawRowView(i)
		f := F.RawRowView(i)
		for k := 0; k < cols; k++ {
			f[k] = a[k] - v[k]
		}
	}
}

// SomeVecs puts in the receiver the vectors of A with indexes in clist.
// The vectors are in the same order as clist.
func (F *Matrix) SomeVecs(A *Matrix, clist []int) {
	if F.NVecs() != len(clist) {
		panic(ErrShape)
	}
	ar := A.NVecs()
	for key, val := range clist {
		if val >= ar || val < 0 {
			panic(ErrIndexOutOfRange)
		}
		copy(F.RawRowView(key), A.RawRowView(val))
	}
}

// ScaleByCol scales each column of matrix A by the column vector col, putting the result
// in the receiver. col must have as many elements as A has vectors.
func (F *Matrix) ScaleByCol(A *Matrix, col []float64) {
	ar := A.NVecs()
	if ar != len(col) || F.NVecs() != ar {
		panic(ErrShape)
	}
	for i := 0; i < ar; i++ {
		a := A.RawRowView(i)
		f := F.RawRowView(i)
		for k := 0; k < cols; k++ {
			f[k] = a[k] * col[i]
		}
	}
}

// Unit puts in the receiver the first vector of A normalized to length 1.
// It leaves a zero vector untouched.
func (F *Matrix) Unit(A *Matrix) {
	f := F.RawRowView(0)
	if A.Dense != F.Dense {
		copy(f, A.RawRowView(0))
	}
	norm := floats.Norm(f, 2)
	if norm <= appzero {
		return
	}
	floats.Scale(1.0/norm, f)
}

// VecDistance returns the euclidean distance between the ith vector of F
// and the point x, y, z.
func (F *Matrix) VecDistance(i int, x, y, z float64) float64 {
	r := F.RawRowView(i)
	dx := r[0] - x
	dy := r[1] - y
	dz := r[2] - z
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}

// String returns a neat string representation of a Matrix
func (F *Matrix) String() string {
	r, _ := F.Dims()
	v := make([]string, 0, r+2)
	v = append(v, "\n[")
	for i := 0; i < r; i++ {
		row := F.RawRowView(i)
		lead := " "
		if i == 0 {
			lead = ""
		}
		v = append(v, fmt.Sprintf("%s%6.2f %6.2f %6.2f", lead, row[0], row[1], row[2]))
		if i < r-1 {
			v = append(v, "\n")
		}
	}
	v = append(v, " ]")
	return strings.Join(v, "")
}
