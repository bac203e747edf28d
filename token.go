/*
 * token.go, part of gomask.
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

// Kind is the type of a lexical token.
type Kind uint8

const (
	ILLEGAL Kind = iota
	EOF

	// Literals
	STRING  // name or quoted name
	INTEGER // 12
	REAL    // 5.0
	STAR    // *

	// Delimiters
	COMMA  // ,
	RANGE  // -
	LPAREN // (
	RPAREN // )

	// Selector prefixes
	RESIDUE // :
	ATOM    // @
	TYPE    // %

	// Distance operators, scoped by the last selector prefix
	RES_LT  // < after a residue selector
	RES_GT  // > after a residue selector
	ATOM_LT // < after an atom or type selector
	ATOM_GT // > after an atom or type selector

	// Logical operators
	NOT // !
	AND // &
	OR  // |

	// Reference keywords
	keywordStart
	ORIGIN
	CBOX
	LIST
	COM
	PLANE
	keywordEnd
)

var kindNames = [...]string{
	ILLEGAL: "illegal character",
	EOF:     "end of mask",
	STRING:  "name",
	INTEGER: "integer",
	REAL:    "real number",
	STAR:    "'*'",
	COMMA:   "','",
	RANGE:   "'-'",
	LPAREN:  "'('",
	RPAREN:  "')'",
	RESIDUE: "':'",
	ATOM:    "'@'",
	TYPE:    "'%'",
	RES_LT:  "'<'",
	RES_GT:  "'>'",
	ATOM_LT: "'<'",
	ATOM_GT: "'>'",
	NOT:     "'!'",
	AND:     "'&'",
	OR:      "'|'",
	ORIGIN:  "ORIGIN",
	CBOX:    "CBOX",
	LIST:    "LIST",
	COM:     "COM",
	PLANE:   "PLANE",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return fmt.Sprintf("token(%d)", k)
}

// IsKeyword returns true for the reference keywords.
func (k Kind) IsKeyword() bool {
	return k > keywordStart && k < keywordEnd
}

// IsDistance returns true for the scoped '<' and '>' operators.
func (k Kind) IsDistance() bool {
	return k == RES_LT || k == RES_GT || k == ATOM_LT || k == ATOM_GT
}

// IsSelector returns true for the ':', '@' and '%' prefixes.
func (k Kind) IsSelector() bool {
	return k == RESIDUE || k == ATOM || k == TYPE
}

// keywords maps the upper-case spelling of the reference keywords to their kinds.
var keywords = map[string]Kind{
	"ORIGIN": ORIGIN,
	"CBOX":   CBOX,
	"LIST":   LIST,
	"COM":    COM,
	"PLANE":  PLANE,
}

// lookupKeyword returns the keyword kind for word, matched case-insensitively,
// or STRING.
func lookupKeyword(word string) Kind {
	if k, ok := keywords[strings.ToUpper(word)]; ok {
		return k
	}
	return STRING
}

// Token is a scanned token. Tokens are immutable once produced.
type Token struct {
	Kind   Kind
	Lit    string //the lexeme. For quoted strings, without the quotes.
	Pos    int    //0-based byte offset in the mask text
	Quoted bool
}

func (t Token) String() string {
	switch t.Kind {
	case EOF:
		return t.Kind.String()
	case STRING, INTEGER, REAL:
		if t.Quoted {
			return fmt.Sprintf("%s %q", t.Kind, t.Lit)
		}
		return fmt.Sprintf("%s '%s'", t.Kind, t.Lit)
	}
	if t.Kind.IsKeyword() {
		return fmt.Sprintf("keyword %s", t.Lit)
	}
	return t.Kind.String()
}
