/*
 * collection_test.go, part of gocorrel.
 *
 * Copyright 2021 Raul Mera <rmera{at}usachDOTcl>
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
 * goCorrel is currently developed at the Universidad de Santiago de Chile
 * (USACH)
 *
 */

package correl

import (
	"fmt"
	"testing"

	chem "github.com/rmera/gochem"
	"gonum.org/v1/gonum/mat"
)

//seqEngine is a deterministic fake Correlator: it fills the buffer with
//the running row-major index, so every test can predict each element.
type seqEngine struct {
	frames int
	fail   bool
	calls  int
	lastQ  *Query
}

func (E *seqEngine) Correl(q *Query, start, stop, skip int) (*mat.Dense, error) {
	E.calls++
	E.lastQ = q
	if E.fail {
		return nil, fmt.Errorf("engine failure")
	}
	if q.DataSize == 0 {
		return nil, nil
	}
	data := make([]float64, q.DataSize*E.frames)
	for i := range data {
		data[i] = float64(i)
	}
	return mat.NewDense(q.DataSize, E.frames, data), nil
}

//testAtoms returns n atoms with 1-based identifiers and carbon masses,
//except the second atom, which is a hydrogen.
func testAtoms(n int) []*chem.Atom {
	ret := make([]*chem.Atom, n)
	for i := range ret {
		ret[i] = &chem.Atom{Name: "C", ID: i + 1, Mass: 12.01}
	}
	if n > 1 {
		ret[1].Name = "H"
		ret[1].Mass = 1.008
	}
	return ret
}

func TestQueryAssembly(Te *testing.T) {
	atoms := testAtoms(5)
	coll := New()
	bond, err := NewBond(atoms[:2])
	if err != nil {
		Te.Fatal(err)
	}
	vec, err := NewAtom("v", atoms[2:5])
	if err != nil {
		Te.Fatal(err)
	}
	com, err := NewCenterOfMass(atoms[:2])
	if err != nil {
		Te.Fatal(err)
	}
	if err := coll.Add(bond, vec, com); err != nil {
		Te.Fatal(err)
	}
	if f := coll.Format(); f != "rvvvm" {
		Te.Errorf("Wrong combined format: %s", f)
	}
	if d := coll.DataSize(); d != 1+9+3 {
		Te.Errorf("Wrong combined data size: %d", d)
	}
	wantatoms := []int{1, 2, 3, 4, 5, 1, 2}
	for i, v := range coll.AtomList() {
		if v != wantatoms[i] {
			Te.Errorf("Wrong atom list: %v", coll.AtomList())
			break
		}
	}
	wantcounts := []int{2, 1, 1, 1, 2}
	counts := coll.AtomCounts()
	if len(counts) != len(wantcounts) {
		Te.Fatalf("Wrong atom counts: %v", counts)
	}
	for i, v := range counts {
		if v != wantcounts[i] {
			Te.Errorf("Wrong atom counts: %v", counts)
			break
		}
	}
	//2 zeros for the bond, 3 for the coordinates, then the 2 masses.
	aux := coll.AuxData()
	wantaux := []float64{0, 0, 0, 0, 0, 12.01, 1.008}
	if len(aux) != len(wantaux) {
		Te.Fatalf("Wrong aux data: %v", aux)
	}
	for i, v := range aux {
		if v != wantaux[i] {
			Te.Errorf("Wrong aux data: %v", aux)
			break
		}
	}
	if lo, up := coll.Bounds(); lo != 1 || up != 5 {
		Te.Errorf("Wrong bounds: %d %d", lo, up)
	}
	//The total data size must be exactly what sizes the engine call.
	total := 0
	for i := 0; i < coll.Len(); i++ {
		total += coll.At(i).DataSize()
	}
	if total != coll.Query().DataSize {
		Te.Errorf("Query data size %d doesn't match the sum over series %d", coll.Query().DataSize, total)
	}
}

func TestComputeRemap(Te *testing.T) {
	const frames = 4
	atoms := testAtoms(5)
	coll := New()
	bond, _ := NewBond(atoms[:2])
	vec, _ := NewAtom("v", atoms[2:5])
	com, _ := NewCenterOfMass(atoms[:2])
	coll.Add(bond, vec, com)
	eng := &seqEngine{frames: frames}
	if err := coll.Compute(eng, 0, -1, 1); err != nil {
		Te.Fatal(err)
	}
	//Bond: one scalar row.
	if s := bond.Shape(); len(s) != 2 || s[0] != 1 || s[1] != frames {
		Te.Errorf("Wrong bond shape: %v", s)
	}
	//Atom("v") over 3 atoms: per-atom axis recovered.
	if s := vec.Shape(); len(s) != 3 || s[0] != 3 || s[1] != 3 || s[2] != frames {
		Te.Errorf("Wrong vector shape: %v", s)
	}
	//Center of mass: single unit, left flat.
	if s := com.Shape(); len(s) != 2 || s[0] != 3 || s[1] != frames {
		Te.Errorf("Wrong center of mass shape: %v", s)
	}
	//The concatenated views must reproduce the flat buffer exactly,
	//and they must be views, not copies.
	data := coll.Data()
	offset := 0
	for i := 0; i < coll.Len(); i++ {
		r := coll.At(i).Data()
		for u := 0; u < r.Units(); u++ {
			for row := 0; row < r.Rows(); row++ {
				for f := 0; f < frames; f++ {
					want := data.At(offset+u*r.Rows()+row, f)
					if got := r.At(u, row, f); got != want {
						Te.Fatalf("View %d doesn't match buffer at unit %d row %d frame %d: %f vs %f", i, u, row, f, got, want)
					}
				}
			}
		}
		offset += coll.At(i).DataSize()
	}
	//The fake engine fills rows sequentially, so the second unit of
	//the vector series starts 1 (bond) + 3 (first unit) rows in.
	if v := vec.Data().At(1, 0, 0); v != float64((1+3)*frames) {
		Te.Errorf("Wrong value at second unit of the vector series: %f", v)
	}
	//Idempotence: recomputing with the same deterministic engine must
	//give bit-identical views.
	first := mat.DenseCopyOf(coll.Data())
	if err := coll.Compute(eng, 0, -1, 1); err != nil {
		Te.Fatal(err)
	}
	if !mat.Equal(first, coll.Data()) {
		Te.Error("Recomputing with a deterministic engine changed the data")
	}
	if eng.calls != 2 {
		Te.Errorf("Engine called %d times, 2 expected", eng.calls)
	}
}

func TestComputeAllOrNothing(Te *testing.T) {
	atoms := testAtoms(3)
	coll := New()
	ang, _ := NewAngle(atoms)
	coll.Add(ang)
	good := &seqEngine{frames: 2}
	if err := coll.Compute(good, 0, -1, 1); err != nil {
		Te.Fatal(err)
	}
	olddata := ang.Data()
	if olddata == nil {
		Te.Fatal("No data bound after a successful Compute")
	}
	bad := &seqEngine{frames: 2, fail: true}
	err := coll.Compute(bad, 0, -1, 1)
	if err == nil {
		Te.Fatal("Engine failure not propagated")
	}
	if err.Error() != "engine failure" {
		Te.Errorf("Engine error was modified: %v", err)
	}
	if ang.Data() != olddata {
		Te.Error("A failed Compute touched the previous binding")
	}
}

func TestEmptyAndClear(Te *testing.T) {
	coll := New()
	if lo, up := coll.Bounds(); lo != 0 || up != 0 {
		Te.Errorf("Wrong bounds for empty collection: %d %d", lo, up)
	}
	if coll.DataSize() != 0 || coll.Format() != "" {
		Te.Error("Empty collection assembles a non-empty query")
	}
	eng := &seqEngine{frames: 3}
	if err := coll.Compute(eng, 0, -1, 1); err != nil {
		Te.Errorf("Compute on an empty collection failed: %v", err)
	}
	atoms := testAtoms(2)
	bond, _ := NewBond(atoms)
	coll.Add(bond)
	if err := coll.Compute(eng, 0, -1, 1); err != nil {
		Te.Fatal(err)
	}
	coll.Clear()
	if coll.Len() != 0 {
		Te.Errorf("Clear left %d series registered", coll.Len())
	}
	if coll.Data() != nil {
		Te.Error("Clear left the shared buffer alive")
	}
	if bond.Data() != nil || bond.Shape() != nil {
		Te.Error("Clear left a stale binding on a series")
	}
}

func TestAddNilAndEngineShape(Te *testing.T) {
	coll := New()
	if err := coll.Add(nil); err == nil {
		Te.Error("Adding a nil Timeseries did not fail")
	}
	atoms := testAtoms(2)
	bond, _ := NewBond(atoms)
	coll.Add(bond)
	if err := coll.Compute(nil, 0, -1, 1); err == nil {
		Te.Error("Compute with a nil engine did not fail")
	}
	//An engine breaching the row-count contract must not bind anything.
	short := &shortEngine{}
	if err := coll.Compute(short, 0, -1, 1); err == nil {
		Te.Error("Wrong-shaped engine buffer not detected")
	}
	if bond.Data() != nil {
		Te.Error("A rejected buffer got bound anyway")
	}
}

//shortEngine always returns one row too few.
type shortEngine struct{}

func (E *shortEngine) Correl(q *Query, start, stop, skip int) (*mat.Dense, error) {
	if q.DataSize < 1 {
		return nil, nil
	}
	return mat.NewDense(q.DataSize+1, 2, nil), nil
}
