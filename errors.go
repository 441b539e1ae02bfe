/*
 * errors.go, part of gocorrel.
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
	chem "github.com/rmera/gochem"
)

//Error is the general error type for the correl package.
//It fulfills chem.Error, so it can be decorated as it travels
//up a goChem-based calling stack.
type Error struct {
	message  string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return err.message
}

//Decorate adds the deco string to the decoration slice of the error,
//and returns the resulting slice. If deco is empty, the current
//slice is returned unchanged.
func (err Error) Decorate(deco string) []string {
	if deco != "" {
		err.deco = append(err.deco, deco)
	}
	return err.deco
}

//Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }

//errDecorate asserts that err implements chem.Error and decorates it
//with the caller's name before returning it. Calling it on any other
//error type will panic.
func errDecorate(err error, caller string) error {
	err2 := err.(chem.Error)
	err2.Decorate(caller)
	return err2
}

//The errors here signal bugs in the caller (or in a Timeseries
//implementation), not transient conditions, so no retry logic makes
//sense on any of them.
const (
	ErrInvalidSelection = "goCorrel: Invalid atom selection: must be a *chem.Atom, a []*chem.Atom or a chem.Atomer"
	ErrArity            = "goCorrel: Wrong number of atoms in selection"
	ErrBadCode          = "goCorrel: Unsupported format code for this timeseries"
	ErrNilTimeseries    = "goCorrel: Given a nil Timeseries"
	ErrNilEngine        = "goCorrel: Given a nil Correlator engine"
	ErrReshape          = "goCorrel: Timeseries data size not divisible by its format-code length"
	ErrEngineShape      = "goCorrel: Engine returned a buffer with the wrong number of rows"
	ErrNoMass           = "goCorrel: Not all atoms in the selection have masses assigned"
	ErrNotComputed      = "goCorrel: Timeseries has no data bound: Compute the collection first"
)
