/*
 * chem.go, part of gomask.
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

// Package chem provides an in-memory atom/residue topology that can be queried
// by the mask evaluator. It does not read any file format; callers build the
// topology from whatever reader they use.
package chem

import (
	"fmt"
	"strings"

	mask "github.com/rmera/gomask"
	v3 "github.com/rmera/gomask/v3"
)

// Atom contains the information about an atom that is not expected to change
// from frame to frame.
type Atom struct {
	Name    string
	ID      int
	MolName string //residue name
	MolID   int    //residue number, as read from the structure
	Chain   string
	Symbol  string
	Type    string  //force-field type, if any. Symbol is used when empty.
	Mass    float64 //if zero, the mass is taken from the symbol
	Charge  float64
}

// Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	ret := *A
	return &ret
}

// residue is a maximal run of contiguous atoms sharing MolID and Chain.
type residue struct {
	name        string
	first, last int
}

// Topology contains information about a molecule which is not expected to change in time (i.e. everything except for coordinates).
// It satisfies mask.TopologyProvider. A Topology must not be modified while masks are being evaluated against it.
type Topology struct {
	Atoms    []*Atom
	residues []residue
	atres    []int
	masses   []float64
	box      *mask.Box
}

// NewTopology returns a topology with the given atoms and box (which can be nil).
// Residues are assigned from runs of contiguous atoms with the same MolID and Chain.
// It returns an error if any atom is nil or has no mass and no known symbol.
func NewTopology(ats []*Atom, box *mask.Box) (*Topology, error) {
	T := &Topology{Atoms: ats, box: box}
	if err := T.index(); err != nil {
		return nil, err
	}
	return T, nil
}

// index builds the residue and mass tables.
func (T *Topology) index() error {
	T.residues = T.residues[:0]
	T.atres = make([]int, len(T.Atoms))
	T.masses = make([]float64, len(T.Atoms))
	for i, at := range T.Atoms {
		if at == nil {
			return fmt.Errorf("chem: nil atom at position %d", i)
		}
		m := at.Mass
		if m == 0 {
			var ok bool
			m, ok = symbolMass[strings.TrimSpace(at.Symbol)]
			if !ok {
				return fmt.Errorf("chem: atom %d (%s) has no mass and unknown symbol %q", i, at.Name, at.Symbol)
			}
		}
		T.masses[i] = m
		if i == 0 || at.MolID != T.Atoms[i-1].MolID || at.Chain != T.Atoms[i-1].Chain {
			T.residues = append(T.residues, residue{name: at.MolName, first: i, last: i})
		} else {
			T.residues[len(T.residues)-1].last = i
		}
		T.atres[i] = len(T.residues) - 1
	}
	return nil
}

// Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Atoms)
}

// Atom returns the Atom corresponding to the index i
// of the Atom slice in the Topology. Panics if
// out of range.
func (T *Topology) Atom(i int) *Atom {
	if i >= T.Len() || i < 0 {
		panic("Topology: Requested Atom out of bounds")
	}
	return T.Atoms[i]
}

// Masses returns a slice with the masses of all atoms.
func (T *Topology) Masses() []float64 {
	ret := make([]float64, len(T.masses))
	copy(ret, T.masses)
	return ret
}

// SetBox sets the simulation box. A nil box means no box.
func (T *Topology) SetBox(box *mask.Box) {
	T.box = box
}

// The mask.TopologyProvider methods

// AtomCount returns the number of atoms.
func (T *Topology) AtomCount() int {
	return len(T.Atoms)
}

// AtomAttributes returns the name, residue index and type of the ith atom.
func (T *Topology) AtomAttributes(i int) mask.AtomAttributes {
	at := T.Atom(i)
	typ := at.Type
	if typ == "" {
		typ = at.Symbol
	}
	return mask.AtomAttributes{Name: at.Name, ResidueIndex: T.atres[i], Type: typ}
}

// ResidueCount returns the number of residues.
func (T *Topology) ResidueCount() int {
	return len(T.residues)
}

// ResidueAttributes returns the name and atom span of the ith residue.
func (T *Topology) ResidueAttributes(i int) mask.ResidueAttributes {
	r := T.residues[i]
	return mask.ResidueAttributes{Name: r.name, FirstAtom: r.first, LastAtom: r.last}
}

// BoxDimensions returns the simulation box, if any.
func (T *Topology) BoxDimensions() (*mask.Box, bool) {
	return T.box, T.box != nil
}

// Mass returns the mass of the ith atom.
func (T *Topology) Mass(i int) float64 {
	return T.masses[i]
}

// Select returns the 0-based indexes of the atoms selected by the mask text.
// coords can be nil if the mask has no distance selections.
func (T *Topology) Select(text string, coords *v3.Matrix) ([]int, error) {
	m, err := mask.Compile(text)
	if err != nil {
		return nil, err
	}
	sel, err := m.Evaluate(T, coords)
	if err != nil {
		return nil, err
	}
	return sel.Indices(), nil
}
