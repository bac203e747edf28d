/*
 * lexer.go, part of gomask.
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
	"strings"
	"unicode/utf8"
)

// Lexer tokenizes mask text.
type Lexer struct {
	src    string
	offset int
	scope  Kind //last selector prefix seen, decides the scope of '<' and '>'
	err    *LexError
}

// NewLexer creates a new Lexer for the given mask text.
func NewLexer(src string) *Lexer {
	return &Lexer{src: src, scope: ATOM}
}

// Err returns the error that made the lexer emit an ILLEGAL token, if any.
func (l *Lexer) Err() error {
	if l.err == nil {
		return nil
	}
	return l.err
}

// Scan scans and returns the next token. At the end of the text it returns
// an EOF token, and keeps doing so. On an unrecognized character it returns
// an ILLEGAL token and Err reports why.
func (l *Lexer) Scan() Token {
	l.skipWhitespace()
	pos := l.offset
	if l.offset >= len(l.src) {
		return Token{Kind: EOF, Pos: pos}
	}
	ch := l.src[l.offset]
	switch ch {
	case ':':
		l.scope = RESIDUE
		return l.single(RESIDUE)
	case '@':
		l.scope = ATOM
		return l.single(ATOM)
	case '%':
		l.scope = TYPE
		return l.single(TYPE)
	case '<':
		if l.scope == RESIDUE {
			return l.single(RES_LT)
		}
		return l.single(ATOM_LT)
	case '>':
		if l.scope == RESIDUE {
			return l.single(RES_GT)
		}
		return l.single(ATOM_GT)
	case ',':
		return l.single(COMMA)
	case '-':
		return l.single(RANGE)
	case '(':
		return l.single(LPAREN)
	case ')':
		return l.single(RPAREN)
	case '!':
		return l.single(NOT)
	case '&':
		return l.single(AND)
	case '|':
		return l.single(OR)
	case '"':
		return l.scanQuoted()
	}
	if isWordChar(ch) {
		return l.scanWord()
	}
	r, _ := utf8.DecodeRuneInString(l.src[l.offset:])
	l.err = &LexError{Pos: pos, Char: r}
	return Token{Kind: ILLEGAL, Lit: string(r), Pos: pos}
}

func (l *Lexer) single(k Kind) Token {
	t := Token{Kind: k, Lit: l.src[l.offset : l.offset+1], Pos: l.offset}
	l.offset++
	return t
}

func (l *Lexer) skipWhitespace() {
	for l.offset < len(l.src) {
		switch l.src[l.offset] {
		case ' ', '\t', '\n', '\r':
			l.offset++
		default:
			return
		}
	}
}

// scanQuoted scans a double-quoted name. Quoted names are always literal.
func (l *Lexer) scanQuoted() Token {
	pos := l.offset
	end := strings.IndexByte(l.src[pos+1:], '"')
	if end < 0 {
		l.err = &LexError{Pos: pos, Char: '"', Msg: "unterminated quoted name"}
		l.offset = len(l.src)
		return Token{Kind: ILLEGAL, Lit: l.src[pos:], Pos: pos}
	}
	lit := l.src[pos+1 : pos+1+end]
	l.offset = pos + end + 2
	return Token{Kind: STRING, Lit: lit, Pos: pos, Quoted: true}
}

// scanWord scans a bare word and classifies it.
func (l *Lexer) scanWord() Token {
	pos := l.offset
	for l.offset < len(l.src) && isWordChar(l.src[l.offset]) {
		l.offset++
	}
	lit := l.src[pos:l.offset]
	return Token{Kind: classifyWord(lit), Lit: lit, Pos: pos}
}

func classifyWord(w string) Kind {
	if w == "*" {
		return STAR
	}
	digits, dots, other := 0, 0, 0
	for i := 0; i < len(w); i++ {
		switch c := w[i]; {
		case isDigit(c):
			digits++
		case c == '.':
			dots++
		default:
			other++
		}
	}
	switch {
	case other == 0 && dots == 0:
		return INTEGER
	case other == 0 && dots == 1 && digits > 0:
		return REAL
	case strings.ContainsRune(w, '*'):
		return STRING
	}
	return lookupKeyword(w)
}

func isDigit(c byte) bool {
	return '0' <= c && c <= '9'
}

func isLetter(c byte) bool {
	return ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z')
}

// isWordChar reports whether c can be part of a bare name or number.
// Primes and '+' appear in nucleotide and ion names (O5', NA+).
func isWordChar(c byte) bool {
	return isLetter(c) || isDigit(c) || c == '_' || c == '\'' || c == '+' || c == '.' || c == '*'
}

// Tokenize scans the whole mask text. The last token is always EOF.
// It fails with a *LexError on the first unrecognized character.
func Tokenize(text string) ([]Token, error) {
	l := NewLexer(text)
	var toks []Token
	for {
		t := l.Scan()
		if t.Kind == ILLEGAL {
			return nil, l.Err()
		}
		toks = append(toks, t)
		if t.Kind == EOF {
			return toks, nil
		}
	}
}
