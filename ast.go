/*
 * ast.go, part of gomask.
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
	"strconv"
	"strings"
)

// Node is a node of the selection tree. The set of nodes is closed: Not, And,
// Or, ResidueSelector, AtomSelector, TypeSelector and DistancePredicate.
// Nodes are never modified after parsing, so a tree can be shared by
// concurrent evaluations.
type Node interface {
	//Pos returns the offset in the mask text where the node starts.
	Pos() int
	node()
}

// Not is the complement of X.
type Not struct {
	At int
	X  Node
}

// And is the intersection of L and R. At is the position of the operator.
type And struct {
	At   int
	L, R Node
}

// Or is the union of L and R. At is the position of the operator.
type Or struct {
	At   int
	L, R Node
}

// ItemKind is the kind of a match item.
type ItemKind uint8

const (
	IndexItem ItemKind = iota // a single 1-based number
	RangeItem                 // an inclusive range of 1-based numbers
	NameItem                  // a name, possibly with a trailing wildcard
)

// Item is one element of the comma-separated list of a selector.
type Item struct {
	Kind ItemKind
	Lo   int    //IndexItem, RangeItem. For IndexItem Lo==Hi.
	Hi   int    //IndexItem, RangeItem
	Name string //NameItem, without the wildcard
	//NameItem. If true, Name is a prefix (the item was written with a trailing '*').
	Prefix bool
	At     int
}

func (I Item) String() string {
	switch I.Kind {
	case IndexItem:
		return strconv.Itoa(I.Lo)
	case RangeItem:
		return fmt.Sprintf("%d-%d", I.Lo, I.Hi)
	}
	if I.Prefix {
		return I.Name + "*"
	}
	if bareName(I.Name) {
		return I.Name
	}
	//Quoted names are read verbatim up to the closing quote.
	return `"` + I.Name + `"`
}

// bareName reports whether name re-scans as a plain literal name.
func bareName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		if !isWordChar(name[i]) || name[i] == '*' {
			return false
		}
	}
	k := classifyWord(name)
	return k == STRING || k.IsKeyword()
}

// ResidueSelector selects whole residues by number or name.
type ResidueSelector struct {
	At    int
	Items []Item
}

// AtomSelector selects atoms by number or name.
type AtomSelector struct {
	At    int
	Items []Item
}

// TypeSelector selects atoms by type. Its items are all NameItems.
type TypeSelector struct {
	At    int
	Items []Item
}

// Scope is the selector a distance predicate was written after. Either way
// the candidate atoms are filtered one by one.
type Scope uint8

const (
	AtomScope Scope = iota
	ResidueScope
)

// Op is the comparison of a distance predicate. Both are strict.
type Op uint8

const (
	Less    Op = iota // <
	Greater           // >
)

func (o Op) String() string {
	if o == Greater {
		return ">"
	}
	return "<"
}

// RefKind is the kind of reference a distance is measured from.
type RefKind uint8

const (
	RefOrigin RefKind = iota
	RefCBox
	RefCOM
	RefPlane
	RefList
)

func (r RefKind) String() string {
	switch r {
	case RefOrigin:
		return "ORIGIN"
	case RefCBox:
		return "CBOX"
	case RefCOM:
		return "COM"
	case RefPlane:
		return "PLANE"
	case RefList:
		return "LIST"
	}
	return fmt.Sprintf("RefKind(%d)", r)
}

// Reference is the anchor of a distance predicate. Sub is nil for ORIGIN and CBOX.
// The atoms Sub selects are used only to build the reference.
type Reference struct {
	Kind RefKind
	Sub  Node
	At   int
}

// DistancePredicate selects, among the atoms (or residues) selected by Candidates,
// those closer than (Less) or farther than (Greater) Cutoff from Ref.
type DistancePredicate struct {
	At         int
	Scope      Scope
	Candidates Node //a ResidueSelector, AtomSelector or TypeSelector
	Op         Op
	Cutoff     float64
	Ref        Reference
}

func (n *Not) Pos() int               { return n.At }
func (n *And) Pos() int               { return n.At }
func (n *Or) Pos() int                { return n.At }
func (n *ResidueSelector) Pos() int   { return n.At }
func (n *AtomSelector) Pos() int      { return n.At }
func (n *TypeSelector) Pos() int      { return n.At }
func (n *DistancePredicate) Pos() int { return n.At }

func (*Not) node()               {}
func (*And) node()               {}
func (*Or) node()                {}
func (*ResidueSelector) node()   {}
func (*AtomSelector) node()      {}
func (*TypeSelector) node()      {}
func (*DistancePredicate) node() {}

// Walk traverses the tree rooted at n in pre-order, including the
// sub-selections of references. If f returns false, the children of
// the current node are skipped.
func Walk(n Node, f func(Node) bool) {
	if n == nil || !f(n) {
		return
	}
	switch n := n.(type) {
	case *Not:
		Walk(n.X, f)
	case *And:
		Walk(n.L, f)
		Walk(n.R, f)
	case *Or:
		Walk(n.L, f)
		Walk(n.R, f)
	case *DistancePredicate:
		Walk(n.Candidates, f)
		Walk(n.Ref.Sub, f)
	}
}

// Format returns mask text for the tree rooted at n. Binary operations
// are fully parenthesized, so the text compiles back to an equivalent tree.
func Format(n Node) string {
	var b strings.Builder
	format(&b, n)
	return b.String()
}

func format(b *strings.Builder, n Node) {
	switch n := n.(type) {
	case *Not:
		b.WriteString("!")
		format(b, n.X)
	case *And:
		b.WriteString("(")
		format(b, n.L)
		b.WriteString(" & ")
		format(b, n.R)
		b.WriteString(")")
	case *Or:
		b.WriteString("(")
		format(b, n.L)
		b.WriteString(" | ")
		format(b, n.R)
		b.WriteString(")")
	case *ResidueSelector:
		formatItems(b, ":", n.Items)
	case *AtomSelector:
		formatItems(b, "@", n.Items)
	case *TypeSelector:
		formatItems(b, "%", n.Items)
	case *DistancePredicate:
		format(b, n.Candidates)
		fmt.Fprintf(b, " %s %s %s", n.Op, strconv.FormatFloat(n.Cutoff, 'f', -1, 64), n.Ref.Kind)
		if n.Ref.Sub != nil {
			b.WriteString("(")
			format(b, n.Ref.Sub)
			b.WriteString(")")
		}
	default:
		panic(fmt.Sprintf("mask: unknown node type %T", n))
	}
}

func formatItems(b *strings.Builder, prefix string, items []Item) {
	b.WriteString(prefix)
	for i, it := range items {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(it.String())
	}
}
