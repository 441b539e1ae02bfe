/*
 * engine.go, part of gocorrel.
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

//Query is the combined, flattened form of every series registered in a
//Collection, in registration order. It is what a Correlator consumes.
type Query struct {
	//Engine-side identifiers of every atom of every series, concatenated.
	Atoms []int
	//The format codes of every series, concatenated.
	Format string
	//The grouping hints of every series, concatenated.
	AtomCounts []int
	//One auxiliary weight per atom, concatenated. Zero except for the
	//mass/geometry weighted aggregates.
	AuxData []float64
	//Total number of scalar rows the engine must produce.
	DataSize int
	//Lowest and highest atom identifier in Atoms, both 0 if Atoms is empty.
	Lower, Upper int
}

//Correlator is the engine that actually walks the trajectory. goCorrel
//does not provide one: the numerics (distances, angles, weighted centers)
//and the frame iteration belong to the engine, which may live in-process
//or wrap an external program.
//
//Correl receives the combined query and the frame range: start and stop
//are inclusive frame indices (stop < 0 meaning the last frame) and skip
//is the stride. It must return a (q.DataSize, frames) matrix of float64,
//whose rows follow exactly the concatenation order of the query. Any
//error it returns is propagated to the caller of Compute unmodified;
//frame-range and trajectory problems are its competence, not goCorrel's.
type Correlator interface {
	Correl(q *Query, start, stop, skip int) (*mat.Dense, error)
}
