/*
 * errors.go, part of gomask.
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
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

// LexError is returned when the mask text contains a character that
// does not start any token.
type LexError struct {
	Pos  int //0-based byte offset in the mask text
	Char rune
	Msg  string //optional detail
}

func (err *LexError) Error() string {
	if err.Msg != "" {
		return fmt.Sprintf("mask: position %d: %s", err.Pos, err.Msg)
	}
	return fmt.Sprintf("mask: position %d: unexpected character %q", err.Pos, err.Char)
}

// SyntaxError is returned when the tokens don't follow the mask grammar.
type SyntaxError struct {
	Pos      int    //0-based byte offset of the offending token
	Expected string //what the parser wanted
	Found    string //what it got
	Msg      string //optional detail, replaces the expected/found message
}

func (err *SyntaxError) Error() string {
	if err.Msg != "" {
		return fmt.Sprintf("mask: position %d: %s", err.Pos, err.Msg)
	}
	return fmt.Sprintf("mask: position %d: expected %s, found %s", err.Pos, err.Expected, err.Found)
}

// MissingBoxError is returned when a CBOX reference is used with a system without a box.
type MissingBoxError struct{}

func (err *MissingBoxError) Error() string {
	return "mask: CBOX reference requires a simulation box, but none is available"
}

// DegenerateGeometryError is returned when a reference can't be built from the
// atoms selected for it, e.g. a plane through collinear atoms.
type DegenerateGeometryError struct {
	Reference string
	Reason    string
}

func (err *DegenerateGeometryError) Error() string {
	return fmt.Sprintf("mask: degenerate %s reference: %s", err.Reference, err.Reason)
}

// EmptySelectionError is returned when the sub-selection of a reference selects no atoms.
type EmptySelectionError struct {
	Reference string
}

func (err *EmptySelectionError) Error() string {
	return fmt.Sprintf("mask: the %s reference selection matched no atoms", err.Reference)
}

// MissingCoordinatesError is returned when a distance predicate is evaluated without a coordinate frame.
type MissingCoordinatesError struct{}

func (err *MissingCoordinatesError) Error() string {
	return "mask: distance selections require coordinates, but no frame was given"
}

// EvaluationError wraps any error found while evaluating a compiled mask.
// Pos points to the mask element that was being evaluated.
type EvaluationError struct {
	Pos   int
	Frame int //index of the frame for trajectory evaluations, -1 otherwise
	Err   error
}

func (err *EvaluationError) Error() string {
	if err.Frame >= 0 {
		return fmt.Sprintf("mask: frame %d: evaluating element at position %d: %s", err.Frame, err.Pos, strings.TrimPrefix(err.Err.Error(), "mask: "))
	}
	return fmt.Sprintf("mask: evaluating element at position %d: %s", err.Pos, strings.TrimPrefix(err.Err.Error(), "mask: "))
}

// Unwrap returns the underlying error.
func (err *EvaluationError) Unwrap() error {
	return err.Err
}

// evalErr wraps err in an EvaluationError for the element at pos, unless it
// already is one.
func evalErr(pos int, err error) error {
	var e *EvaluationError
	if errors.As(err, &e) {
		return err
	}
	return &EvaluationError{Pos: pos, Frame: -1, Err: err}
}

// errorPos returns the position in the mask text pointed to by err,
// and whether err carries one.
func errorPos(err error) (int, bool) {
	var lerr *LexError
	var serr *SyntaxError
	var eerr *EvaluationError
	switch {
	case errors.As(err, &lerr):
		return lerr.Pos, true
	case errors.As(err, &serr):
		return serr.Pos, true
	case errors.As(err, &eerr):
		return eerr.Pos, true
	}
	return 0, false
}

// Diagnostic renders the error err, produced for the mask text, with a caret
// pointing at the offending position, e.g.
//
//	:1-10 & $CA
//	        ^
//	mask: position 8: unexpected character '$'
//
// Errors without a position are returned as their message.
func Diagnostic(text string, err error) string {
	if err == nil {
		return ""
	}
	pos, ok := errorPos(err)
	if !ok {
		return err.Error()
	}
	if pos > len(text) {
		pos = len(text)
	}
	//pos is a byte offset, the caret goes under the character.
	col := utf8.RuneCountInString(text[:pos])
	return fmt.Sprintf("%s\n%s^\n%s", text, strings.Repeat(" ", col), err.Error())
}
