/*
 * match.go, part of gomask.
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

import "strings"

// MatchIndex returns true if lo <= candidate <= hi.
func MatchIndex(candidate, lo, hi int) bool {
	return lo <= candidate && candidate <= hi
}

// MatchName returns true if candidate matches pattern. Both are trimmed of
// surrounding whitespace first, since names in most topology formats are
// fixed-width. A pattern ending in a single '*' matches every name starting
// with the rest of the pattern, so "CA*" matches CA, CA1 and CA2 but not XCA1.
// Any other pattern must be equal to the candidate. The comparison is
// case-sensitive (CA is a carbon, Ca is calcium).
// Patterns that ValidatePattern rejects never match.
func MatchName(candidate, pattern string) bool {
	candidate = strings.TrimSpace(candidate)
	pattern = strings.TrimSpace(pattern)
	if _, ok := ValidatePattern(pattern); !ok {
		return false
	}
	if p, found := strings.CutSuffix(pattern, "*"); found {
		return strings.HasPrefix(candidate, p)
	}
	return candidate == pattern
}

// ValidatePattern checks that pattern has at most one '*' and that, if present,
// it is the last character. If not, it returns the offset of the first offending
// '*' and false.
func ValidatePattern(pattern string) (int, bool) {
	last := len(pattern) - 1
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == '*' && i != last {
			return i, false
		}
	}
	return -1, true
}

// matchIndex returns true if the 1-based number n is covered by an
// index or range item.
func (I Item) matchIndex(n int) bool {
	if I.Kind == NameItem {
		return false
	}
	return MatchIndex(n, I.Lo, I.Hi)
}

// matchName returns true if name is matched by a name item.
func (I Item) matchName(name string) bool {
	if I.Kind != NameItem {
		return false
	}
	name = strings.TrimSpace(name)
	if I.Prefix {
		return strings.HasPrefix(name, I.Name)
	}
	return name == strings.TrimSpace(I.Name)
}

// matchItems returns true if any of the items matches the element with
// the given 1-based number and name.
func matchItems(items []Item, number int, name string) bool {
	for _, it := range items {
		if it.matchIndex(number) || it.matchName(name) {
			return true
		}
	}
	return false
}
