/*
 * eval_test.go, part of gomask.
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

package mask_test

import (
	"errors"
	"strings"
	"testing"

	mask "github.com/rmera/gomask"
	"github.com/rmera/gomask/chem"
	v3 "github.com/rmera/gomask/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testSystem returns a small system: an alanine, a glycine and a serine
// along the x axis and in the z=0 plane, and a water molecule at z=20.
//
//	res  atoms (1-based)   positions
//	ALA  1 N  2 CA 3 CB    (0,0,0)   (1,0,0)   (2,0,0)
//	GLY  4 N  5 CA 6 C     (10,0,0)  (11,0,0)  (12,0,0)
//	SER  7 N  8 CA 9 OG    (10,10,0) (11,10,0) (12,10,0)
//	WAT 10 O 11 H1 12 H2   (0,0,20)  (1,0,20)  (0,1,20)
func testSystem(Te *testing.T) (*chem.Topology, *v3.Matrix) {
	Te.Helper()
	type at struct {
		name, res string
		molid     int
		symbol    string
		x, y, z   float64
	}
	ats := []at{
		{"N", "ALA", 1, "N", 0, 0, 0},
		{"CA", "ALA", 1, "C", 1, 0, 0},
		{"CB", "ALA", 1, "C", 2, 0, 0},
		{"N", "GLY", 2, "N", 10, 0, 0},
		{"CA", "GLY", 2, "C", 11, 0, 0},
		{"C", "GLY", 2, "C", 12, 0, 0},
		{"N", "SER", 3, "N", 10, 10, 0},
		{"CA", "SER", 3, "C", 11, 10, 0},
		{"OG", "SER", 3, "O", 12, 10, 0},
		{"O", "WAT", 4, "O", 0, 0, 20},
		{"H1", "WAT", 4, "H", 1, 0, 20},
		{"H2", "WAT", 4, "H", 0, 1, 20},
	}
	atoms := make([]*chem.Atom, len(ats))
	data := make([]float64, 0, 3*len(ats))
	for i, a := range ats {
		atoms[i] = &chem.Atom{Name: a.name, ID: i + 1, MolName: a.res, MolID: a.molid, Chain: "A", Symbol: a.symbol}
		data = append(data, a.x, a.y, a.z)
	}
	top, err := chem.NewTopology(atoms, &mask.Box{X: 20, Y: 20, Z: 20})
	require.NoError(Te, err)
	coords, err := v3.NewMatrix(data)
	require.NoError(Te, err)
	return top, coords
}

func eval(Te *testing.T, text string, top mask.TopologyProvider, frame mask.CoordinateFrame) *mask.Mask {
	Te.Helper()
	m, err := mask.Compile(text)
	require.NoError(Te, err, text)
	sel, err := m.Evaluate(top, frame)
	require.NoError(Te, err, text)
	require.Equal(Te, top.AtomCount(), sel.Len())
	return sel
}

func TestSelectors(Te *testing.T) {
	top, coords := testSystem(Te)
	tests := []struct {
		text string
		want []int //0-based
	}{
		{":1-3", []int{0, 1, 2, 3, 4, 5, 6, 7, 8}},
		{"@1,5,10", []int{0, 4, 9}},
		{":2", []int{3, 4, 5}},
		{":GLY,WAT", []int{3, 4, 5, 9, 10, 11}},
		{":S*", []int{6, 7, 8}},
		{"@CA", []int{1, 4, 7}},
		{"@C*", []int{1, 2, 4, 5, 7}},
		{"@H*", []int{10, 11}},
		{"%O", []int{8, 9}},
		{"%H*", []int{10, 11}},
		{"@*", []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
		{":4-100", []int{9, 10, 11}},
		{"@0", []int{}},
		{":5", []int{}},
		{"!@*", []int{}},
		{"@CA & :2-3", []int{4, 7}},
		{"@N | %O", []int{0, 3, 6, 8, 9}},
		{"!:1-3", []int{9, 10, 11}},
		{"!!@CA", []int{1, 4, 7}},
		{":1-2 & @CA | :4", []int{1, 4, 9, 10, 11}},
		{":1-2 & (@CA | :4)", []int{1, 4}},
		{"(:1-2 & @CA) | :4", []int{1, 4, 9, 10, 11}},
		{`@"C*"`, []int{}},
		{"@com", []int{}},
	}
	for _, tt := range tests {
		sel := eval(Te, tt.text, top, nil)
		assert.Equal(Te, tt.want, sel.Indices(), tt.text)
		//selectors never need coordinates
		withCoords := eval(Te, tt.text, top, coords)
		assert.True(Te, sel.Equal(withCoords), tt.text)
	}
}

func TestBooleanAlgebra(Te *testing.T) {
	top, coords := testSystem(Te)
	masks := []string{":1", "@CA", "%C*", "@*", "!@*", ":2-4 & @N*", "@* < 5 ORIGIN", ":* > 9 COM(:1)"}
	for _, x := range masks {
		X := eval(Te, x, top, coords)
		notX := eval(Te, "!("+x+")", top, coords)
		for i := 0; i < X.Len(); i++ {
			assert.NotEqual(Te, X.Selected(i), notX.Selected(i), "!(%s) atom %d", x, i)
		}
		for _, y := range masks {
			Y := eval(Te, y, top, coords)
			and := eval(Te, "("+x+") & ("+y+")", top, coords)
			or := eval(Te, "("+x+") | ("+y+")", top, coords)
			for i := 0; i < X.Len(); i++ {
				assert.Equal(Te, X.Selected(i) && Y.Selected(i), and.Selected(i), "%s & %s atom %d", x, y, i)
				assert.Equal(Te, X.Selected(i) || Y.Selected(i), or.Selected(i), "%s | %s atom %d", x, y, i)
			}
		}
	}
}

func TestDeterministic(Te *testing.T) {
	top, coords := testSystem(Te)
	text := "(:1-3 & !@N) | %H* < 2 LIST(@O)"
	first := eval(Te, text, top, coords)
	for i := 0; i < 5; i++ {
		assert.True(Te, first.Equal(eval(Te, text, top, coords)))
	}
}

func TestDistances(Te *testing.T) {
	top, coords := testSystem(Te)
	tests := []struct {
		text string
		want []int
	}{
		//COM of :2 is at x=10.947, so N, CA and CB are 10.947, 9.947 and 8.947 away
		{":1 < 9 COM(:2)", []int{2}},
		{":1 < 10 COM(:2)", []int{1, 2}},
		{":1 > 9 COM(:2)", []int{0, 1}},
		{":1 < 8.9 COM(:2)", []int{}},
		{"@* < 9 COM(:2)", []int{2, 3, 4, 5}},
		//COM of :2-3 is 10.42 from CB, 11.29 from CA and 12.19 from N.
		//Residue selections are filtered atom by atom.
		{":1 < 11 COM(:2-3)", []int{2}},
		{":1 < 12 COM(:2-3)", []int{1, 2}},
		{":1 < 13 COM(:2-3)", []int{0, 1, 2}},
		{":1 < 10 COM(:2-3)", []int{}},
		{":1 < 5.0 COM(:2-3)", []int{}},
		//distances are strict
		{"@* < 1 ORIGIN", []int{0}},
		{"@* > 1 ORIGIN", []int{2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
		{"@CA < 1.0 ORIGIN", []int{}},
		{":* < 3 ORIGIN", []int{0, 1, 2}},
		{":* > 9 ORIGIN", []int{3, 4, 5, 6, 7, 8, 9, 10, 11}},
		{":* > 10 ORIGIN", []int{4, 5, 6, 7, 8, 9, 10, 11}},
		{":2 < 11.5 ORIGIN", []int{3, 4}},
		{"@* < -1 ORIGIN", []int{}},
		{"@* > -1 ORIGIN", []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
		//the candidates are restricted to the selector's own atoms
		{"@N < 11 ORIGIN", []int{0, 3}},
		{"%O > 16 ORIGIN", []int{9}},
		{"@* < 1.5 LIST(@1)", []int{0, 1}},
		{"@* < 1.5 LIST(@1 | @OG)", []int{0, 1, 7, 8}},
		{"@CA < 0.5 LIST(:2-3)", []int{4, 7}},
		{"@* < 0.5 PLANE(:1-3)", []int{0, 1, 2, 3, 4, 5, 6, 7, 8}},
		{"@* > 0.5 PLANE(:1-3)", []int{9, 10, 11}},
		{":* > 19.5 PLANE(:1-3)", []int{9, 10, 11}},
		{"@* < 0.5 PLANE(:4)", []int{9, 10, 11}},
		//box center is (10,10,10)
		{"@* < 10.01 CBOX", []int{6}},
		{"@* < 10.1 CBOX", []int{6, 7}},
		{"@* < 14.2 CBOX", []int{3, 4, 6, 7, 8}},
		//the reference selection doesn't leak into the result
		{"@CA < 100 COM(@N)", []int{1, 4, 7}},
		{"@CA < 3 COM(@CA) & !:3", []int{}},
		{"(@CA < 3 COM(:1)) | @H1", []int{1, 10}},
	}
	for _, tt := range tests {
		sel := eval(Te, tt.text, top, coords)
		assert.Equal(Te, tt.want, sel.Indices(), tt.text)
	}
}

func TestTopologyAndCoordinatesUnchanged(Te *testing.T) {
	top, coords := testSystem(Te)
	before := v3.Zeros(coords.NVecs())
	before.Copy(coords)
	eval(Te, "@* < 3 PLANE(:1-3) | :1 > 2 COM(@*) | @* < 2 LIST(:4)", top, coords)
	assert.True(Te, mat3Equal(before, coords))
	assert.Equal(Te, 12, top.AtomCount())
	assert.Equal(Te, 4, top.ResidueCount())
}

func mat3Equal(a, b *v3.Matrix) bool {
	if a.NVecs() != b.NVecs() {
		return false
	}
	for i := 0; i < a.NVecs(); i++ {
		ax, ay, az := a.Position(i)
		bx, by, bz := b.Position(i)
		if ax != bx || ay != by || az != bz {
			return false
		}
	}
	return true
}

func TestMissingCoordinates(Te *testing.T) {
	top, _ := testSystem(Te)
	for _, text := range []string{":1 < 5.0 COM(:2-3)", "@CA | (:3 > 2 ORIGIN)", "@* < 1 LIST(@* < 2 ORIGIN)"} {
		m := mask.MustCompile(text)
		assert.True(Te, m.NeedsCoordinates(), text)
		sel, err := m.Evaluate(top, nil)
		assert.Nil(Te, sel)
		var merr *mask.MissingCoordinatesError
		assert.True(Te, errors.As(err, &merr), "%s: %v", text, err)
		var eerr *mask.EvaluationError
		require.True(Te, errors.As(err, &eerr), text)
		assert.Equal(Te, -1, eerr.Frame)
	}
	assert.False(Te, mask.MustCompile(":1 & !@CA").NeedsCoordinates())

	//a nil matrix is no frame either
	var coords *v3.Matrix
	for _, frame := range []mask.CoordinateFrame{coords, boxFrame{box: &mask.Box{X: 1, Y: 1, Z: 1}}} {
		_, err := mask.MustCompile("@* < 3 ORIGIN").Evaluate(top, frame)
		var eerr *mask.EvaluationError
		require.True(Te, errors.As(err, &eerr), "%v", err)
	}
	_, err := mask.MustCompile("@* < 3 ORIGIN").Evaluate(top, coords)
	var merr *mask.MissingCoordinatesError
	assert.True(Te, errors.As(err, &merr), "%v", err)
}

func TestEvaluationErrors(Te *testing.T) {
	top, coords := testSystem(Te)
	nobox, err := chem.NewTopology(top.Atoms, nil)
	require.NoError(Te, err)
	tests := []struct {
		text  string
		top   mask.TopologyProvider
		frame mask.CoordinateFrame
		pos   int
		check func(error) bool
	}{
		{"@* < 1.0 PLANE(:1-2)", top, coords, 9, isDegenerate},
		{"@* < 1.0 PLANE(@1,5)", top, coords, 9, isDegenerate},
		{"@* < 1.0 PLANE(@1,1-3)", top, coords, 9, isDegenerate},
		{"@* < 3 COM(@FOO)", top, coords, 7, isEmpty},
		{"@* < 3 LIST(:10)", top, coords, 7, isEmpty},
		{"@* < 3 PLANE(!@*)", top, coords, 7, isEmpty},
		{"@CA | :1 < 3 CBOX", nobox, coords, 13, isMissingBox},
		{"@* < 3 ORIGIN", top, v3.Zeros(5), 0, func(error) bool { return true }},
		{"@* < 3 COM(@* < 1 PLANE(@1,2))", top, coords, 18, isDegenerate},
	}
	for _, tt := range tests {
		m := mask.MustCompile(tt.text)
		sel, err := m.Evaluate(tt.top, tt.frame)
		assert.Nil(Te, sel, tt.text)
		var eerr *mask.EvaluationError
		require.True(Te, errors.As(err, &eerr), "%s: %v", tt.text, err)
		assert.Equal(Te, tt.pos, eerr.Pos, tt.text)
		assert.True(Te, tt.check(err), "%s: %v", tt.text, err)
	}
}

func isDegenerate(err error) bool {
	var e *mask.DegenerateGeometryError
	return errors.As(err, &e)
}

func isEmpty(err error) bool {
	var e *mask.EmptySelectionError
	return errors.As(err, &e)
}

func isMissingBox(err error) bool {
	var e *mask.MissingBoxError
	return errors.As(err, &e)
}

// mockTopology is a TopologyProvider that is not a chem.Topology.
type mockTopology struct {
	names    []string
	types    []string
	masses   []float64
	residues []mask.ResidueAttributes
	box      *mask.Box
}

func (m *mockTopology) AtomCount() int { return len(m.names) }

func (m *mockTopology) AtomAttributes(i int) mask.AtomAttributes {
	res := 0
	for r, ra := range m.residues {
		if i >= ra.FirstAtom && i <= ra.LastAtom {
			res = r
		}
	}
	return mask.AtomAttributes{Name: m.names[i], ResidueIndex: res, Type: m.types[i]}
}

func (m *mockTopology) ResidueCount() int { return len(m.residues) }

func (m *mockTopology) ResidueAttributes(i int) mask.ResidueAttributes { return m.residues[i] }

func (m *mockTopology) BoxDimensions() (*mask.Box, bool) { return m.box, m.box != nil }

func (m *mockTopology) Mass(i int) float64 { return m.masses[i] }

// frame is a CoordinateFrame that is not a v3.Matrix.
type frame [][3]float64

func (f frame) Position(i int) (x, y, z float64) { return f[i][0], f[i][1], f[i][2] }

func TestMockProvider(Te *testing.T) {
	top := &mockTopology{
		names:    []string{"CA  ", " CB", "EP1", "EP2"},
		types:    []string{"CT", "CT", "EP", "EP"},
		masses:   []float64{12, 12, 0, 0},
		residues: []mask.ResidueAttributes{{Name: "LIG ", FirstAtom: 0, LastAtom: 1}, {Name: "VS", FirstAtom: 2, LastAtom: 3}},
	}
	f := frame{{0, 0, 0}, {2, 0, 0}, {5, 0, 0}, {6, 0, 0}}
	//padded names are trimmed before matching
	assert.Equal(Te, []int{0, 1}, eval(Te, ":LIG", top, nil).Indices())
	assert.Equal(Te, []int{0}, eval(Te, "@CA", top, nil).Indices())
	assert.Equal(Te, []int{1}, eval(Te, "@CB*", top, nil).Indices())
	assert.Equal(Te, []int{2, 3}, eval(Te, "%EP", top, nil).Indices())
	assert.Equal(Te, []int{0, 1}, eval(Te, "@* < 1.5 COM(:1)", top, f).Indices())

	_, err := mask.MustCompile("@* < 3 COM(:VS)").Evaluate(top, f)
	assert.True(Te, isDegenerate(err), "%v", err)
	_, err = mask.MustCompile("@* < 3 CBOX").Evaluate(top, f)
	assert.True(Te, isMissingBox(err), "%v", err)

	//a triclinic box
	top.box = &mask.Box{X: 10, Y: 10, Z: 10, Alpha: 90, Beta: 90, Gamma: 60}
	//center at (7.5, 4.33, 5)
	assert.Equal(Te, []int{}, eval(Te, "@* < 5 CBOX", top, f).Indices())
	assert.Equal(Te, []int{2, 3}, eval(Te, "@* < 7.2 CBOX", top, f).Indices())

	//residues pointing past the atoms are an error, not a panic
	top.residues = append(top.residues, mask.ResidueAttributes{Name: "BAD", FirstAtom: 3, LastAtom: 7})
	_, err = mask.MustCompile(":BAD").Evaluate(top, nil)
	var eerr *mask.EvaluationError
	require.True(Te, errors.As(err, &eerr), "%v", err)
	assert.Equal(Te, 0, eerr.Pos)
}

func TestFrameBoxTakesPrecedence(Te *testing.T) {
	top, coords := testSystem(Te)
	f := boxFrame{Matrix: coords, box: &mask.Box{X: 2, Y: 2, Z: 2}}
	assert.Equal(Te, []int{0, 1, 2}, eval(Te, "@* < 1.8 CBOX", top, f).Indices())
	//a frame without a box falls back to the topology's
	f.box = nil
	assert.Equal(Te, []int{6}, eval(Te, "@* < 10.01 CBOX", top, f).Indices())
}

type boxFrame struct {
	*v3.Matrix
	box *mask.Box
}

func (f boxFrame) BoxDimensions() (*mask.Box, bool) { return f.box, f.box != nil }

func TestDiagnostic(Te *testing.T) {
	_, err := mask.Compile(":1-10 & $CA")
	require.Error(Te, err)
	want := ":1-10 & $CA\n        ^\nmask: position 8: unexpected character '$'"
	assert.Equal(Te, want, mask.Diagnostic(":1-10 & $CA", err))

	//the caret counts characters, not bytes
	text := `@"Cα" & $`
	_, err = mask.Compile(text)
	require.Error(Te, err)
	want = text + "\n        ^\nmask: position 9: unexpected character '$'"
	assert.Equal(Te, want, mask.Diagnostic(text, err))

	top, _ := testSystem(Te)
	text = ":1 & @* < 2 COM(@FOO)"
	_, err = mask.MustCompile(text).Evaluate(top, v3.Zeros(12))
	d := mask.Diagnostic(text, err)
	assert.Contains(Te, d, "\n"+strings.Repeat(" ", 12)+"^\n")
	assert.Contains(Te, d, "COM reference selection matched no atoms")

	assert.Equal(Te, "", mask.Diagnostic(text, nil))
	assert.Equal(Te, "mask: CBOX reference requires a simulation box, but none is available", mask.Diagnostic(text, &mask.MissingBoxError{}))
}

func TestMustCompilePanics(Te *testing.T) {
	assert.Panics(Te, func() { mask.MustCompile(":1 &") })
	assert.NotPanics(Te, func() { mask.MustCompile(":1 & @CA") })
}

func TestCompiledMaskAccessors(Te *testing.T) {
	m, err := mask.Compile(":1-10 & @CA | :20")
	require.NoError(Te, err)
	assert.Equal(Te, ":1-10 & @CA | :20", m.Text())
	assert.Equal(Te, "((:1-10 & @CA) | :20)", m.String())
	_, ok := m.Root().(*mask.Or)
	assert.True(Te, ok)

	_, err = m.Evaluate(nil, nil)
	var eerr *mask.EvaluationError
	assert.True(Te, errors.As(err, &eerr))
}

func TestTopologySelect(Te *testing.T) {
	top, coords := testSystem(Te)
	idx, err := top.Select("@CA", nil)
	require.NoError(Te, err)
	assert.Equal(Te, []int{1, 4, 7}, idx)
	idx, err = top.Select("@* < 1 ORIGIN", coords)
	require.NoError(Te, err)
	assert.Equal(Te, []int{0}, idx)
	_, err = top.Select("@* < 1 ORIGIN", nil)
	var merr *mask.MissingCoordinatesError
	assert.True(Te, errors.As(err, &merr))
	_, err = top.Select("@C**", nil)
	var serr *mask.SyntaxError
	assert.True(Te, errors.As(err, &serr))
}
