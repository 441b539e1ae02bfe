/*
 * timeseries.go, part of gocorrel.
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
	"strings"

	chem "github.com/rmera/gochem"
)

//Timeseries is one measurement to be extracted from a trajectory.
//It describes its atoms, the per-unit format code the engine understands,
//and the number of scalar rows it will occupy in the combined buffer.
//The set of implementations is closed: the unexported bind method keeps
//outside packages from adding their own, so the remap step in Compute
//only ever deals with the variants defined here.
type Timeseries interface {

	//FormatCode returns the format string for the series. Its length
	//is the number of reshape units the series occupies in the result.
	FormatCode() string

	//DataSize returns the number of scalar rows the series contributes
	//to the combined buffer. It is always divisible by len(FormatCode()).
	DataSize() int

	//AtomList returns the identifiers of the atoms measured, in order.
	AtomList() []int

	//NumAtoms returns the number of atoms in the series.
	NumAtoms() int

	//AtomCounts returns the grouping hint consumed by the engine.
	AtomCounts() []int

	//AuxData returns one weight per atom. Only the mass/geometry
	//weighted aggregates return anything but zeros.
	AuxData() []float64

	//Data returns the view bound by the last Compute, or nil.
	Data() *Result

	//Shape returns the dimensions of the bound view, or nil if the
	//series has not been computed.
	Shape() []int

	bind(*Result)
}

//series carries everything common to all Timeseries variants.
//Variants embed it and override only what differs.
type series struct {
	code  string
	atoms []*chem.Atom
	dsize int
	data  *Result
}

func (S *series) FormatCode() string { return S.code }

func (S *series) DataSize() int { return S.dsize }

func (S *series) NumAtoms() int { return len(S.atoms) }

//AtomList returns the engine-side identifiers of the atoms in the series.
func (S *series) AtomList() []int {
	ret := make([]int, len(S.atoms))
	for i, v := range S.atoms {
		ret[i] = v.ID
	}
	return ret
}

func (S *series) AtomCounts() []int { return []int{len(S.atoms)} }

func (S *series) AuxData() []float64 { return make([]float64, len(S.atoms)) }

func (S *series) Data() *Result { return S.data }

func (S *series) Shape() []int {
	if S.data == nil {
		return nil
	}
	return S.data.Shape()
}

func (S *series) bind(r *Result) { S.data = r }

//atomSlice normalizes the atom argument given to a Timeseries constructor
//into a canonical, ordered []*chem.Atom. It accepts a single atom, a slice
//of atoms or anything implementing chem.Atomer. Every other type, and the
//empty selection, are rejected.
func atomSlice(sel interface{}, caller string) ([]*chem.Atom, error) {
	var atoms []*chem.Atom
	switch s := sel.(type) {
	case *chem.Atom:
		if s == nil {
			return nil, Error{ErrInvalidSelection, []string{caller}, true}
		}
		atoms = []*chem.Atom{s}
	case []*chem.Atom:
		atoms = s
	case chem.Atomer:
		atoms = make([]*chem.Atom, s.Len())
		for i := 0; i < s.Len(); i++ {
			atoms[i] = s.Atom(i)
		}
	default:
		return nil, Error{ErrInvalidSelection, []string{caller}, true}
	}
	if len(atoms) == 0 {
		return nil, Error{fmt.Sprintf("%s: the selection is empty", ErrInvalidSelection), []string{caller}, true}
	}
	return atoms, nil
}

//arityCheck rejects selections whose size doesn't match the fixed
//arity of a variant.
func arityCheck(atoms []*chem.Atom, want int, caller string) error {
	if len(atoms) != want {
		return Error{fmt.Sprintf("%s: %d needed, %d given", ErrArity, want, len(atoms)), []string{caller}, true}
	}
	return nil
}

//Atom is a timeseries of coordinate data for one or more atoms.
type Atom struct {
	*series
}

//NewAtom creates a coordinate timeseries over the given selection.
//code must be one of "x", "y", "z" or "v"; "v" extracts all three
//components per atom, the others a single one. The format code of the
//resulting series repeats the symbol once per atom, so a multi-atom
//Atom series is remapped with a per-atom axis (see Result).
func NewAtom(code string, sel interface{}) (*Atom, error) {
	atoms, err := atomSlice(sel, "NewAtom")
	if err != nil {
		return nil, err
	}
	var size int
	switch code {
	case "v":
		size = 3
	case "x", "y", "z":
		size = 1
	default:
		return nil, Error{fmt.Sprintf("%s: %q", ErrBadCode, code), []string{"NewAtom"}, true}
	}
	return &Atom{&series{code: strings.Repeat(code, len(atoms)), atoms: atoms, dsize: size * len(atoms)}}, nil
}

//AtomCounts returns a 1 for each atom: the engine treats every atom of
//an Atom series as its own group.
func (A *Atom) AtomCounts() []int {
	ret := make([]int, len(A.atoms))
	for i := range ret {
		ret[i] = 1
	}
	return ret
}

//Bond is a timeseries of the length of the bond between 2 atoms.
type Bond struct {
	*series
}

//NewBond creates a bond-length timeseries. The selection must
//contain exactly 2 atoms.
func NewBond(sel interface{}) (*Bond, error) {
	atoms, err := atomSlice(sel, "NewBond")
	if err != nil {
		return nil, err
	}
	if err := arityCheck(atoms, 2, "NewBond"); err != nil {
		return nil, err
	}
	return &Bond{&series{code: "r", atoms: atoms, dsize: 1}}, nil
}

//Angle is a timeseries of the angle defined by 3 atoms.
type Angle struct {
	*series
}

//NewAngle creates an angle timeseries. The selection must
//contain exactly 3 atoms.
func NewAngle(sel interface{}) (*Angle, error) {
	atoms, err := atomSlice(sel, "NewAngle")
	if err != nil {
		return nil, err
	}
	if err := arityCheck(atoms, 3, "NewAngle"); err != nil {
		return nil, err
	}
	return &Angle{&series{code: "a", atoms: atoms, dsize: 1}}, nil
}

//Dihedral is a timeseries of the dihedral angle defined by 4 atoms.
type Dihedral struct {
	*series
}

//NewDihedral creates a dihedral timeseries. The selection must
//contain exactly 4 atoms.
func NewDihedral(sel interface{}) (*Dihedral, error) {
	atoms, err := atomSlice(sel, "NewDihedral")
	if err != nil {
		return nil, err
	}
	if err := arityCheck(atoms, 4, "NewDihedral"); err != nil {
		return nil, err
	}
	return &Dihedral{&series{code: "h", atoms: atoms, dsize: 1}}, nil
}

//Distance is a timeseries of the distance between 2 atoms, either as a
//scalar or as the full distance vector.
type Distance struct {
	*series
}

//NewDistance creates a distance timeseries between exactly 2 atoms.
//code must be "r" for the scalar distance or "d" for the 3-component
//distance vector.
func NewDistance(code string, sel interface{}) (*Distance, error) {
	atoms, err := atomSlice(sel, "NewDistance")
	if err != nil {
		return nil, err
	}
	var size int
	switch code {
	case "d":
		size = 3
	case "r":
		size = 1
	default:
		return nil, Error{fmt.Sprintf("%s: %q", ErrBadCode, code), []string{"NewDistance"}, true}
	}
	if err := arityCheck(atoms, 2, "NewDistance"); err != nil {
		return nil, err
	}
	return &Distance{&series{code: code, atoms: atoms, dsize: size}}, nil
}

//CenterOfGeometry is a timeseries of the geometric center of a group
//of atoms.
type CenterOfGeometry struct {
	*series
}

//NewCenterOfGeometry creates a center-of-geometry timeseries over the
//given selection.
func NewCenterOfGeometry(sel interface{}) (*CenterOfGeometry, error) {
	atoms, err := atomSlice(sel, "NewCenterOfGeometry")
	if err != nil {
		return nil, err
	}
	return &CenterOfGeometry{&series{code: "m", atoms: atoms, dsize: 3}}, nil
}

//AuxData returns a unit weight per atom, so the engine averages
//coordinates without mass weighting.
func (C *CenterOfGeometry) AuxData() []float64 {
	ret := make([]float64, len(C.atoms))
	for i := range ret {
		ret[i] = 1.0
	}
	return ret
}

//CenterOfMass is a timeseries of the center of mass of a group of atoms.
type CenterOfMass struct {
	*series
}

//NewCenterOfMass creates a center-of-mass timeseries over the given
//selection. It fails if any atom in the selection has no mass assigned,
//as a zero weight would silently corrupt the engine-side average.
func NewCenterOfMass(sel interface{}) (*CenterOfMass, error) {
	atoms, err := atomSlice(sel, "NewCenterOfMass")
	if err != nil {
		return nil, err
	}
	for i, v := range atoms {
		if v.Mass == 0 {
			return nil, Error{fmt.Sprintf("%s: atom %d (%s)", ErrNoMass, i, v.Name), []string{"NewCenterOfMass"}, true}
		}
	}
	return &CenterOfMass{&series{code: "m", atoms: atoms, dsize: 3}}, nil
}

//AuxData returns the mass of each atom in the selection, in order.
func (C *CenterOfMass) AuxData() []float64 {
	ret := make([]float64, len(C.atoms))
	for i, v := range C.atoms {
		ret[i] = v.Mass
	}
	return ret
}
