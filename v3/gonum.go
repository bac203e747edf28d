/*
 * gonum.go, part of gomask.
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

	"gonum.org/v1/gonum/mat"
)

const cols int = 3

// Matrix is a set of vectors in 3D space. Within the package it is understood
// that a "vector" is a row vector, i.e. the cartesian coordinates of a point
// in 3D space.
type Matrix struct {
	*mat.Dense
}

// NewMatrix generates and returns a Matrix with 3 columns from data.
// data is used directly, not copied.
func NewMatrix(data []float64) (*Matrix, error) {
	l := len(data)
	if l%cols != 0 || l == 0 {
		return nil, Error{fmt.Sprintf("input slice length %d not a positive multiple of %d", l, cols), true}
	}
	return &Matrix{mat.NewDense(l/cols, cols, data)}, nil
}

// Zeros returns a zero-filled Matrix with vecs vectors.
func Zeros(vecs int) *Matrix {
	f := make([]float64, cols*vecs)
	return &Matrix{mat.NewDense(vecs, cols, f)}
}

// NVecs returns the number of vectors in F.
func (F *Matrix) NVecs() int {
	r, c := F.Dims()
	if c != cols {
		panic(ErrNotXx3Matrix)
	}
	return r
}

// Len is the same as NVecs, except that it returns 0 for a nil Matrix.
// It allows a Matrix to report how many atoms it holds coordinates for.
func (F *Matrix) Len() int {
	if F == nil || F.Dense == nil {
		return 0
	}
	return F.NVecs()
}

// Position returns the cartesian coordinates of the ith vector.
func (F *Matrix) Position(i int) (x, y, z float64) {
	r := F.RawRowView(i)
	return r[0], r[1], r[2]
}

// SetPosition sets the ith vector of F to x, y, z.
func (F *Matrix) SetPosition(i int, x, y, z float64) {
	r := F.RawRowView(i)
	r[0], r[1], r[2] = x, y, z
}

// Errors

// Error is the error type returned by functions of this package.
type Error struct {
	message  string
	critical bool
}

// Error returns a string with an error message.
func (err Error) Error() string {
	return "goMask/v3: " + err.message
}

// Critical returns whether the error is critical or it can be ignored.
func (err Error) Critical() bool { return err.critical }

// PanicMsg is a message used for panics, even though it does satisfy the error interface.
// for errors use Error.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNotXx3Matrix    = PanicMsg("goMask/v3: A Matrix should have 3 columns")
	ErrShape           = PanicMsg("goMask/v3: Dimension mismatch")
	ErrIndexOutOfRange = PanicMsg("goMask/v3: index out of range")
)
