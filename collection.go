/*
 * collection.go, part of gocorrel.
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

	"gonum.org/v1/gonum/mat"
)

//Collection is an ordered registry of Timeseries which are computed from
//a trajectory in one go, instead of iterating the trajectory once per
//series. Registration order is the layout contract: it fixes both how the
//combined query is assembled and how the buffer the engine returns is
//sliced back into per-series views.
//
//A Collection is not safe for concurrent use. Both the query assembly and
//the offset walk in Compute depend on the registration order staying
//unmodified for the duration of the call.
type Collection struct {
	series []Timeseries
	data   *mat.Dense
	frames int
}

//New returns a new, empty Collection.
func New() *Collection {
	return new(Collection)
}

//Add appends the given series, in order, to the collection. Series
//added after a Compute are not bound until the next Compute.
func (C *Collection) Add(series ...Timeseries) error {
	for _, v := range series {
		if v == nil {
			return Error{ErrNilTimeseries, []string{"Add"}, true}
		}
	}
	C.series = append(C.series, series...)
	return nil
}

//Len returns the number of series registered.
func (C *Collection) Len() int {
	return len(C.series)
}

//At returns the i-th registered series. Panics if out of range.
func (C *Collection) At(i int) Timeseries {
	if i < 0 || i >= len(C.series) {
		panic("goCorrel: Requested Timeseries out of bounds")
	}
	return C.series[i]
}

//Slice returns the registered series in [i, j), in registration order.
//The returned slice shares storage with the collection, so the caller
//must not reorder it. Panics if out of range.
func (C *Collection) Slice(i, j int) []Timeseries {
	return C.series[i:j]
}

//Clear resets the collection to empty, dropping every registered series
//and unbinding their results. Views obtained before the call must not
//be used afterwards.
func (C *Collection) Clear() {
	for _, v := range C.series {
		v.bind(nil)
	}
	C.series = nil
	C.data = nil
	C.frames = 0
}

//AtomList returns the concatenated atom identifiers of every registered
//series, in registration order.
func (C *Collection) AtomList() []int {
	ret := make([]int, 0, len(C.series))
	for _, v := range C.series {
		ret = append(ret, v.AtomList()...)
	}
	return ret
}

//Format returns the concatenated format codes of every registered series.
func (C *Collection) Format() string {
	f := ""
	for _, v := range C.series {
		f += v.FormatCode()
	}
	return f
}

//Bounds returns the lowest and highest atom identifier over all
//registered series, or (0, 0) for an empty atom list.
func (C *Collection) Bounds() (int, int) {
	atoms := C.AtomList()
	if len(atoms) == 0 {
		return 0, 0
	}
	lower, upper := atoms[0], atoms[0]
	for _, v := range atoms[1:] {
		if v < lower {
			lower = v
		}
		if v > upper {
			upper = v
		}
	}
	return lower, upper
}

//DataSize returns the total number of scalar rows the registered series
//will occupy in the combined buffer.
func (C *Collection) DataSize() int {
	total := 0
	for _, v := range C.series {
		total += v.DataSize()
	}
	return total
}

//AtomCounts returns the concatenated grouping hints of every registered
//series.
func (C *Collection) AtomCounts() []int {
	ret := make([]int, 0, len(C.series))
	for _, v := range C.series {
		ret = append(ret, v.AtomCounts()...)
	}
	return ret
}

//AuxData returns the concatenated auxiliary weights of every registered
//series, one per atom.
func (C *Collection) AuxData() []float64 {
	ret := make([]float64, 0, len(C.series))
	for _, v := range C.series {
		ret = append(ret, v.AuxData()...)
	}
	return ret
}

//Query assembles the combined query for the registered series. It is a
//pure function of the registration sequence and performs no engine call.
func (C *Collection) Query() *Query {
	q := &Query{
		Atoms:      C.AtomList(),
		Format:     C.Format(),
		AtomCounts: C.AtomCounts(),
		AuxData:    C.AuxData(),
		DataSize:   C.DataSize(),
	}
	q.Lower, q.Upper = C.Bounds()
	return q
}

//Compute runs every registered series through the engine in a single
//pass over the frame range [start, stop] (stop inclusive, stop < 0
//meaning the last frame) with the given stride, and binds a view over
//the returned buffer to each series.
//
//Binding is all or nothing: if the engine fails, or the buffer does not
//match the query, no binding is touched and any previously computed
//views stay valid. On success every previous binding is replaced.
//Engine errors are returned unmodified.
func (C *Collection) Compute(eng Correlator, start, stop, skip int) error {
	if eng == nil {
		return Error{ErrNilEngine, []string{"Compute"}, true}
	}
	q := C.Query()
	data, err := eng.Correl(q, start, stop, skip)
	if err != nil {
		return err
	}
	var rows, frames int
	if data != nil {
		rows, frames = data.Dims()
	}
	if rows != q.DataSize {
		return Error{fmt.Sprintf("%s: %d needed, %d given", ErrEngineShape, q.DataSize, rows), []string{"Compute"}, true}
	}
	//The offset walk. Each series takes DataSize rows of the buffer,
	//as a view, in registration order.
	bound := make([]*Result, len(C.series))
	offset := 0
	for i, v := range C.series {
		dsize := v.DataSize()
		units := len(v.FormatCode())
		//Can only happen if a Timeseries variant breaks its own
		//size/code invariant, so it is surfaced, never truncated.
		if units == 0 || dsize%units != 0 {
			return Error{fmt.Sprintf("%s: series %d: size %d, code %q", ErrReshape, i, dsize, v.FormatCode()), []string{"Compute"}, true}
		}
		block := data.Slice(offset, offset+dsize, 0, frames).(*mat.Dense)
		bound[i] = &Result{block: block, units: units, rows: dsize / units, frames: frames}
		offset += dsize
	}
	for i, v := range C.series {
		v.bind(bound[i])
	}
	C.data = data
	C.frames = frames
	return nil
}

//Data returns the single buffer shared by all views bound in the last
//Compute, or nil if the collection has not been computed.
func (C *Collection) Data() *mat.Dense {
	return C.data
}

//Frames returns the number of frames covered by the last Compute.
func (C *Collection) Frames() int {
	return C.frames
}

func (C *Collection) String() string {
	suffix := "s"
	if len(C.series) == 1 {
		suffix = ""
	}
	return fmt.Sprintf("<Collection with %d timeseries object%s>", len(C.series), suffix)
}
