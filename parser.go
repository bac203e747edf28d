/*
 * parser.go, part of gomask.
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
	"strconv"
	"strings"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

// The grammar, from lowest to highest precedence:
//
//	selection := orExpr
//	orExpr    := andExpr ( '|' andExpr )*
//	andExpr   := notExpr ( '&' notExpr )*
//	notExpr   := '!' notExpr | atomExpr
//	atomExpr  := '(' selection ')' | selector
//	selector  := (':' | '@' | '%') item ( ',' item )* [ distance ]
//	item      := INTEGER | INTEGER '-' INTEGER | name
//	distance  := ('<' | '>') [ '-' ] ( REAL | INTEGER ) reference
//	reference := ORIGIN | CBOX | ( COM | PLANE | LIST ) '(' selection ')'

type parser struct {
	toks []Token
	p    int
	tok  Token
}

// Parse builds the selection tree from the tokens produced by Tokenize.
// It stops at the first error, which is always a *SyntaxError.
func Parse(tokens []Token) (Node, error) {
	p := &parser{toks: tokens}
	p.next()
	return p.parse()
}

func (p *parser) parse() (n Node, err error) {
	defer func() {
		if r := recover(); r != nil {
			serr, ok := r.(*SyntaxError)
			if !ok {
				panic(r)
			}
			n, err = nil, serr
		}
	}()
	n = p.or()
	if p.tok.Kind != EOF {
		p.fail("'&', '|' or end of mask")
	}
	return n, nil
}

// next advances to the next token. Past the end of the slice it keeps
// returning EOF, so callers don't need to terminate the slice themselves.
func (p *parser) next() {
	if p.p < len(p.toks) {
		p.tok = p.toks[p.p]
		p.p++
		return
	}
	end := 0
	if n := len(p.toks); n > 0 {
		last := p.toks[n-1]
		end = last.Pos + len(last.Lit)
	}
	p.tok = Token{Kind: EOF, Pos: end}
}

// fail aborts the parse with a syntax error at the current token.
func (p *parser) fail(expected string) {
	panic(&SyntaxError{Pos: p.tok.Pos, Expected: expected, Found: p.tok.String()})
}

func (p *parser) failMsg(pos int, msg string) {
	panic(&SyntaxError{Pos: pos, Found: p.tok.String(), Msg: msg})
}

func (p *parser) expect(k Kind) Token {
	t := p.tok
	if t.Kind != k {
		p.fail(k.String())
	}
	p.next()
	return t
}

func (p *parser) or() Node {
	l := p.and()
	for p.tok.Kind == OR {
		at := p.tok.Pos
		p.next()
		l = &Or{At: at, L: l, R: p.and()}
	}
	return l
}

func (p *parser) and() Node {
	l := p.not()
	for p.tok.Kind == AND {
		at := p.tok.Pos
		p.next()
		l = &And{At: at, L: l, R: p.not()}
	}
	return l
}

func (p *parser) not() Node {
	if p.tok.Kind == NOT {
		at := p.tok.Pos
		p.next()
		return &Not{At: at, X: p.not()}
	}
	return p.atom()
}

func (p *parser) atom() Node {
	switch p.tok.Kind {
	case LPAREN:
		p.next()
		n := p.or()
		p.expect(RPAREN)
		return n
	case RESIDUE, ATOM, TYPE:
		return p.selector()
	}
	p.fail("'(', '!', ':', '@' or '%'")
	return nil
}

func (p *parser) selector() Node {
	prefix := p.tok
	p.next()
	items := []Item{p.item(prefix.Kind)}
	for p.tok.Kind == COMMA {
		p.next()
		items = append(items, p.item(prefix.Kind))
	}
	var sel Node
	switch prefix.Kind {
	case RESIDUE:
		sel = &ResidueSelector{At: prefix.Pos, Items: items}
	case ATOM:
		sel = &AtomSelector{At: prefix.Pos, Items: items}
	default:
		sel = &TypeSelector{At: prefix.Pos, Items: items}
	}
	if p.tok.Kind.IsDistance() {
		return p.distance(sel)
	}
	return sel
}

func (p *parser) item(scope Kind) Item {
	t := p.tok
	switch {
	case t.Kind == INTEGER && scope == TYPE:
		p.next()
		if p.tok.Kind == RANGE {
			p.failMsg(p.tok.Pos, "ranges are not allowed in type selections")
		}
		return Item{Kind: NameItem, Name: t.Lit, At: t.Pos}
	case t.Kind == INTEGER:
		lo := p.integer(t)
		p.next()
		if p.tok.Kind != RANGE {
			return Item{Kind: IndexItem, Lo: lo, Hi: lo, At: t.Pos}
		}
		p.next()
		ht := p.expect(INTEGER)
		hi := p.integer(ht)
		if lo > hi {
			p.failMsg(t.Pos, "invalid range "+t.Lit+"-"+ht.Lit+": the lower bound is larger than the upper one")
		}
		return Item{Kind: RangeItem, Lo: lo, Hi: hi, At: t.Pos}
	case t.Kind == STAR:
		p.next()
		return Item{Kind: NameItem, Prefix: true, At: t.Pos}
	case t.Kind == STRING && t.Quoted:
		if strings.TrimSpace(t.Lit) == "" {
			p.failMsg(t.Pos, "empty quoted name")
		}
		p.next()
		return Item{Kind: NameItem, Name: t.Lit, At: t.Pos}
	case t.Kind == STRING:
		if off, ok := ValidatePattern(t.Lit); !ok {
			p.failMsg(t.Pos+off, "invalid wildcard in "+strconv.Quote(t.Lit)+": only a single trailing '*' is allowed")
		}
		p.next()
		if name, found := strings.CutSuffix(t.Lit, "*"); found {
			return Item{Kind: NameItem, Name: name, Prefix: true, At: t.Pos}
		}
		return Item{Kind: NameItem, Name: t.Lit, At: t.Pos}
	case t.Kind.IsKeyword():
		//A keyword in item position is just a name, i.e. an atom called COM.
		p.next()
		return Item{Kind: NameItem, Name: t.Lit, At: t.Pos}
	}
	p.fail("number, range or name")
	return Item{}
}

func (p *parser) integer(t Token) int {
	n, err := strconv.Atoi(t.Lit)
	if err != nil {
		p.failMsg(t.Pos, "number "+t.Lit+" out of range")
	}
	return n
}

func (p *parser) distance(sel Node) Node {
	d := &DistancePredicate{At: sel.Pos(), Candidates: sel}
	switch p.tok.Kind {
	case RES_LT, RES_GT:
		d.Scope = ResidueScope
	}
	if p.tok.Kind == RES_GT || p.tok.Kind == ATOM_GT {
		d.Op = Greater
	}
	p.next()
	sign := 1.0
	if p.tok.Kind == RANGE {
		sign = -1
		p.next()
	}
	if p.tok.Kind != INTEGER && p.tok.Kind != REAL {
		p.fail("distance cutoff")
	}
	c, err := strconv.ParseFloat(p.tok.Lit, 64)
	if err != nil {
		p.failMsg(p.tok.Pos, "invalid distance cutoff "+p.tok.Lit)
	}
	d.Cutoff = sign * c
	p.next()
	d.Ref = p.reference()
	return d
}

func (p *parser) reference() Reference {
	t := p.tok
	r := Reference{At: t.Pos}
	switch t.Kind {
	case ORIGIN:
		r.Kind = RefOrigin
		p.next()
		return r
	case CBOX:
		r.Kind = RefCBox
		p.next()
		return r
	case COM:
		r.Kind = RefCOM
	case PLANE:
		r.Kind = RefPlane
	case LIST:
		r.Kind = RefList
	default:
		p.fail("one of " + strings.Join(referenceKeywords(), ", "))
	}
	p.next()
	p.expect(LPAREN)
	r.Sub = p.or()
	p.expect(RPAREN)
	return r
}

// referenceKeywords returns the reference keywords in alphabetical order.
func referenceKeywords() []string {
	k := maps.Keys(keywords)
	slices.Sort(k)
	return k
}
