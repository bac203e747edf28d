/*
 * interfaces.go, part of gomask.
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

import v3 "github.com/rmera/gomask/v3"

// AtomAttributes are the per-atom data a mask can select on.
type AtomAttributes struct {
	Name         string
	ResidueIndex int //0-based index of the residue containing the atom
	Type         string
}

// ResidueAttributes are the per-residue data a mask can select on.
// FirstAtom and LastAtom are 0-based and inclusive.
type ResidueAttributes struct {
	Name      string
	FirstAtom int
	LastAtom  int
}

// TopologyProvider is the read-only view of a molecular topology used to
// evaluate masks. Implementations must be safe for concurrent reads.
type TopologyProvider interface {
	//AtomCount returns the number of atoms. Every Mask evaluated
	//against the provider has this length.
	AtomCount() int

	AtomAttributes(i int) AtomAttributes

	ResidueCount() int

	ResidueAttributes(i int) ResidueAttributes

	//BoxDimensions returns the simulation box and true, or nil, false
	//if the system has no box.
	BoxDimensions() (*Box, bool)

	//Mass returns the mass of the ith atom. It is only needed for COM references.
	Mass(i int) float64
}

// CoordinateFrame gives the cartesian coordinates of each atom for one snapshot.
// *v3.Matrix implements it.
type CoordinateFrame interface {
	Position(i int) (x, y, z float64)
}

// Boxer can be implemented by a CoordinateFrame that carries its own box,
// which then takes precedence over the box of the topology.
type Boxer interface {
	BoxDimensions() (*Box, bool)
}

// lener is implemented by frames that know how many atoms they hold.
type lener interface {
	Len() int
}

// Traj is an interface for any trajectory object. Masks can be evaluated
// against each of its frames.
type Traj interface {

	//Is the trajectory ready to be read?
	Readable() bool

	//reads the next frame and puts it in output, or discards it if output is nil.
	//it can also fill the (optional) box with the 9 box vector components, if present in the frame.
	Next(output *v3.Matrix, box ...[]float64) error

	//Returns the number of atoms per frame
	Len() int
}

// LastFrameError has a useless function to distinguish the harmless errors (i.e. last frame) so they can be
// filtered in a typeswitch that looks for this interface.
type LastFrameError interface {
	error
	NormalLastFrameTermination() //does nothing, just to separate this interface from other errors
}
