/*
 * compile.go, part of gomask.
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
)

// CompiledMask is a parsed mask, ready to be evaluated against any number
// of topologies and frames. It is safe for concurrent use.
type CompiledMask struct {
	text   string
	root   Node
	coords bool
}

// Compile tokenizes and parses the mask text. The error, if any, is
// a *LexError or a *SyntaxError.
func Compile(text string) (*CompiledMask, error) {
	toks, err := Tokenize(text)
	if err != nil {
		return nil, err
	}
	root, err := Parse(toks)
	if err != nil {
		return nil, err
	}
	C := &CompiledMask{text: text, root: root}
	Walk(root, func(n Node) bool {
		if _, ok := n.(*DistancePredicate); ok {
			C.coords = true
		}
		return !C.coords
	})
	return C, nil
}

// MustCompile is like Compile but panics if the mask can't be compiled.
// It is meant for masks hard-coded in programs.
func MustCompile(text string) *CompiledMask {
	C, err := Compile(text)
	if err != nil {
		panic(Diagnostic(text, err))
	}
	return C
}

// Evaluate returns the Mask selected by C in top. frame gives the atomic coordinates,
// and can be nil if the mask has no distance selections (see NeedsCoordinates).
// Any error is returned as an *EvaluationError, wrapping the cause.
func (C *CompiledMask) Evaluate(top TopologyProvider, frame CoordinateFrame) (*Mask, error) {
	if top == nil {
		return nil, evalErr(0, fmt.Errorf("mask: nil topology"))
	}
	sel, err := evaluate(C.root, top, frame)
	if err != nil {
		return nil, err
	}
	return newMask(sel), nil
}

// NeedsCoordinates returns true if evaluating the mask requires a coordinate frame.
func (C *CompiledMask) NeedsCoordinates() bool {
	return C.coords
}

// Text returns the text the mask was compiled from.
func (C *CompiledMask) Text() string {
	return C.text
}

// String returns the mask in canonical form, with every binary operation
// in parentheses.
func (C *CompiledMask) String() string {
	return Format(C.root)
}

// Root returns the root of the selection tree. It must not be modified.
func (C *CompiledMask) Root() Node {
	return C.root
}
