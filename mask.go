/*
 * mask.go, part of gomask.
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
	"strings"
)

// Mask is a selection over all the atoms of a topology. A Mask doesn't change
// after it is created.
type Mask struct {
	sel []bool
	n   int //number of selected atoms
}

// newMask wraps sel, which the caller must not modify afterwards.
// Masks are only built by evaluating a CompiledMask.
func newMask(sel []bool) *Mask {
	return &Mask{sel: sel, n: count(sel)}
}

func count(sel []bool) int {
	n := 0
	for _, s := range sel {
		if s {
			n++
		}
	}
	return n
}

// Len returns the number of atoms the mask covers, selected or not.
func (M *Mask) Len() int {
	return len(M.sel)
}

// Selected returns true if the ith (0-based) atom is selected.
func (M *Mask) Selected(i int) bool {
	return M.sel[i]
}

// NSelected returns the number of selected atoms.
func (M *Mask) NSelected() int {
	return M.n
}

// Indices returns the 0-based indexes of the selected atoms, in increasing order.
// The result can be used with v3.Matrix.SomeVecs.
func (M *Mask) Indices() []int {
	ret := make([]int, 0, M.n)
	for i, s := range M.sel {
		if s {
			ret = append(ret, i)
		}
	}
	return ret
}

// Bools returns a copy of the selection.
func (M *Mask) Bools() []bool {
	ret := make([]bool, len(M.sel))
	copy(ret, M.sel)
	return ret
}

// Equal returns true if both masks have the same length and select the same atoms.
func (M *Mask) Equal(o *Mask) bool {
	if o == nil || len(M.sel) != len(o.sel) || M.n != o.n {
		return false
	}
	for i, s := range M.sel {
		if s != o.sel[i] {
			return false
		}
	}
	return true
}

// Residues returns the 0-based indexes of the residues in top that contain
// at least one selected atom.
func (M *Mask) Residues(top TopologyProvider) []int {
	var ret []int
	for r := 0; r < top.ResidueCount(); r++ {
		ra := top.ResidueAttributes(r)
		for i := ra.FirstAtom; i <= ra.LastAtom && i < len(M.sel); i++ {
			if i >= 0 && M.sel[i] {
				ret = append(ret, r)
				break
			}
		}
	}
	return ret
}

// String returns the selection as mask text using 1-based atom numbers
// and ranges, i.e. "@1-9,12". Compiling that text against a topology with the
// same number of atoms gives back the same selection. An empty selection
// is "!@*".
func (M *Mask) String() string {
	if M.n == 0 {
		return "!@*"
	}
	items := make([]string, 0, 4)
	for i := 0; i < len(M.sel); i++ {
		if !M.sel[i] {
			continue
		}
		j := i
		for j+1 < len(M.sel) && M.sel[j+1] {
			j++
		}
		if j == i {
			items = append(items, fmt.Sprint(i+1))
		} else {
			items = append(items, fmt.Sprintf("%d-%d", i+1, j+1))
		}
		i = j
	}
	return "@" + strings.Join(items, ",")
}
