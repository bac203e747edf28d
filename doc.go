/*
 * doc.go, part of gomask.
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

/*
Package mask implements atom masks, a small language to select atoms in a
molecular system, as in

	:1-10 & !@H*
	(:LIG < 5.0 COM(:LIG)) | %Na+

A mask is compiled once and can then be evaluated against any number of
topologies and coordinate frames, concurrently if needed.

	**The mask language**

    :items   selects residues, by 1-based number, range or name.
    @items   selects atoms, by 1-based number, range or name.
    %items   selects atoms by type.

Items are separated by commas. A number (12), an inclusive range (1-10), a
name (CA), a name with a trailing wildcard (CA*, matching CA, CA1, CA2...) or a
lone * (everything). Double quotes make a name literal ("C*"). Names are
case-sensitive and compared without surrounding blanks.

Selections are combined with ! (not), & (and) and | (or), in order of
decreasing precedence. Parentheses group.

A selector can be followed by a distance clause, '<' or '>' and a cutoff in A,
and then a reference:

    ORIGIN        the point (0,0,0)
    CBOX          the center of the simulation box
    COM(mask)     the center of mass of the atoms selected by mask
    PLANE(mask)   the plane that best fits the atoms selected by mask
    LIST(mask)    the closest of the atoms selected by mask

The clause keeps the atoms of the selection whose distance to the reference
passes the comparison, so ":1 < 5.0 COM(:2-3)" selects the atoms of residue 1
closer than 5 A to the center of mass of residues 2 and 3. The comparisons
are strict. The keywords are case-insensitive.

Masks are evaluated against anything implementing TopologyProvider (see the
chem subpackage) and, for distance clauses, a CoordinateFrame, such as a v3.Matrix.
*/
package mask
