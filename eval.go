/*
 * eval.go, part of gomask.
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

	v3 "github.com/rmera/gomask/v3"
)

// evaluator holds the read-only inputs of one evaluation.
type evaluator struct {
	top    TopologyProvider
	frame  CoordinateFrame //can be nil
	natoms int
}

func evaluate(root Node, top TopologyProvider, frame CoordinateFrame) ([]bool, error) {
	e := &evaluator{top: top, frame: frame, natoms: top.AtomCount()}
	return e.eval(root)
}

func (e *evaluator) eval(n Node) ([]bool, error) {
	switch n := n.(type) {
	case *Not:
		x, err := e.eval(n.X)
		if err != nil {
			return nil, err
		}
		for i := range x {
			x[i] = !x[i]
		}
		return x, nil
	case *And:
		l, r, err := e.pair(n.L, n.R)
		if err != nil {
			return nil, err
		}
		for i := range l {
			l[i] = l[i] && r[i]
		}
		return l, nil
	case *Or:
		l, r, err := e.pair(n.L, n.R)
		if err != nil {
			return nil, err
		}
		for i := range l {
			l[i] = l[i] || r[i]
		}
		return l, nil
	case *ResidueSelector:
		return e.residues(n)
	case *AtomSelector:
		ret := make([]bool, e.natoms)
		for i := range ret {
			ret[i] = matchItems(n.Items, i+1, e.top.AtomAttributes(i).Name)
		}
		return ret, nil
	case *TypeSelector:
		ret := make([]bool, e.natoms)
		for i := range ret {
			ret[i] = matchItems(n.Items, 0, e.top.AtomAttributes(i).Type)
		}
		return ret, nil
	case *DistancePredicate:
		return e.distance(n)
	}
	return nil, evalErr(n.Pos(), fmt.Errorf("mask: unknown node type %T", n))
}

func (e *evaluator) pair(l, r Node) ([]bool, []bool, error) {
	lv, err := e.eval(l)
	if err != nil {
		return nil, nil, err
	}
	rv, err := e.eval(r)
	if err != nil {
		return nil, nil, err
	}
	return lv, rv, nil
}

// residueAtoms returns the atom range of the ith residue, checking it
// against the atom count.
func (e *evaluator) residueAtoms(i, pos int) (ResidueAttributes, error) {
	ra := e.top.ResidueAttributes(i)
	if ra.FirstAtom < 0 || ra.LastAtom >= e.natoms || ra.FirstAtom > ra.LastAtom {
		return ra, evalErr(pos, fmt.Errorf("mask: residue %d spans atoms %d-%d, but the topology has %d atoms", i+1, ra.FirstAtom+1, ra.LastAtom+1, e.natoms))
	}
	return ra, nil
}

func (e *evaluator) residues(n *ResidueSelector) ([]bool, error) {
	ret := make([]bool, e.natoms)
	for r := 0; r < e.top.ResidueCount(); r++ {
		ra, err := e.residueAtoms(r, n.At)
		if err != nil {
			return nil, err
		}
		if !matchItems(n.Items, r+1, ra.Name) {
			continue
		}
		for i := ra.FirstAtom; i <= ra.LastAtom; i++ {
			ret[i] = true
		}
	}
	return ret, nil
}

func (e *evaluator) checkFrame(pos int) error {
	if e.frame == nil {
		return evalErr(pos, &MissingCoordinatesError{})
	}
	if m, ok := e.frame.(*v3.Matrix); ok && (m == nil || m.Dense == nil) {
		return evalErr(pos, &MissingCoordinatesError{})
	}
	if l, ok := e.frame.(lener); ok && l.Len() < e.natoms {
		return evalErr(pos, fmt.Errorf("mask: the coordinate frame has %d atoms, but the topology has %d", l.Len(), e.natoms))
	}
	return nil
}

func (e *evaluator) distance(n *DistancePredicate) ([]bool, error) {
	cand, err := e.eval(n.Candidates)
	if err != nil {
		return nil, err
	}
	if err := e.checkFrame(n.At); err != nil {
		return nil, err
	}
	dist, err := e.resolve(n.Ref)
	if err != nil {
		return nil, err
	}
	passes := func(d float64) bool {
		if n.Op == Greater {
			return d > n.Cutoff
		}
		return d < n.Cutoff
	}
	//Both scopes filter the candidate atoms one by one.
	ret := make([]bool, e.natoms)
	for i, c := range cand {
		if c && passes(dist(e.frame.Position(i))) {
			ret[i] = true
		}
	}
	return ret, nil
}

// resolve builds the distance function for a reference. Sub-selections are
// evaluated against the same topology and frame.
func (e *evaluator) resolve(r Reference) (distanceFunc, error) {
	switch r.Kind {
	case RefOrigin:
		return pointDistance(0, 0, 0), nil
	case RefCBox:
		box, ok := frameBox(e.top, e.frame)
		if !ok {
			return nil, evalErr(r.At, &MissingBoxError{})
		}
		return pointDistance(box.Center()), nil
	}
	sel, err := e.eval(r.Sub)
	if err != nil {
		return nil, err
	}
	var indexes []int
	for i, s := range sel {
		if s {
			indexes = append(indexes, i)
		}
	}
	if len(indexes) == 0 {
		return nil, evalErr(r.At, &EmptySelectionError{Reference: r.Kind.String()})
	}
	coords := gather(e.frame, indexes)
	switch r.Kind {
	case RefCOM:
		masses := make([]float64, len(indexes))
		for k, i := range indexes {
			masses[k] = e.top.Mass(i)
		}
		com, err := CenterOfMass(coords, masses)
		if err != nil {
			return nil, evalErr(r.At, err)
		}
		return pointDistance(com.Position(0)), nil
	case RefPlane:
		normal, center, err := BestPlane(coords)
		if err != nil {
			return nil, evalErr(r.At, err)
		}
		return planeDistance(normal, center), nil
	case RefList:
		return listDistance(coords), nil
	}
	return nil, evalErr(r.At, fmt.Errorf("mask: unknown reference %s", r.Kind))
}
