/*
 * result.go, part of gocorrel.
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
	"gonum.org/v1/gonum/mat"
)

//Result is the view a Timeseries gets over the shared buffer returned by
//the engine. It is a window, not a copy: the Collection owns the single
//underlying allocation, and every Result of one Compute call points into
//it. A Result stays valid until the next Compute or Clear on its
//Collection.
//
//The block covers DataSize rows and one column per frame. When the format
//code of the series has more than one symbol, the rows are additionally
//grouped into len(code) units of DataSize/len(code) rows each, recovering
//a per-atom axis: an Atom("v", ...) series over N atoms exposes the shape
//(N, 3, frames). With a single symbol the block is left as is, so a
//one-atom "v" series stays (3, frames), matching the layout the engine
//produced.
type Result struct {
	block  *mat.Dense
	units  int
	rows   int //rows per unit
	frames int
}

//Shape returns the dimensions of the bound view: (units, rows, frames)
//when the series has more than one unit, (rows, frames) otherwise.
func (R *Result) Shape() []int {
	if R.units > 1 {
		return []int{R.units, R.rows, R.frames}
	}
	return []int{R.rows, R.frames}
}

//Units returns the number of reshape units in the view.
func (R *Result) Units() int { return R.units }

//Rows returns the number of scalar rows per unit.
func (R *Result) Rows() int { return R.rows }

//Frames returns the number of trajectory frames covered.
func (R *Result) Frames() int { return R.frames }

//Matrix returns the whole (DataSize, frames) block as a matrix view.
//Modifying it modifies the shared buffer.
func (R *Result) Matrix() *mat.Dense {
	return R.block
}

//Unit returns a view over the i-th unit of the series, with
//Rows() rows and one column per frame. Panics if i is out of range.
func (R *Result) Unit(i int) *mat.Dense {
	if i < 0 || i >= R.units {
		panic("goCorrel: Requested unit out of bounds")
	}
	if R.units == 1 {
		return R.block
	}
	return R.block.Slice(i*R.rows, (i+1)*R.rows, 0, R.frames).(*mat.Dense)
}

//Row returns a copy of one scalar row of the view across all frames.
//Panics if unit or row are out of range.
func (R *Result) Row(unit, row int) []float64 {
	if unit < 0 || unit >= R.units || row < 0 || row >= R.rows {
		panic("goCorrel: Requested row out of bounds")
	}
	return mat.Row(nil, unit*R.rows+row, R.block)
}

//At returns the value at the given unit, row and frame.
func (R *Result) At(unit, row, frame int) float64 {
	if unit < 0 || unit >= R.units || row < 0 || row >= R.rows {
		panic("goCorrel: Requested element out of bounds")
	}
	return R.block.At(unit*R.rows+row, frame)
}
