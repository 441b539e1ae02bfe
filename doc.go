/*
 * doc.go, part of gocorrel.
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

/*Package correl batches heterogeneous measurements over a molecular dynamics
trajectory so they can all be extracted in a single pass, in the spirit of
CHARMM's correl facility.

The user builds Timeseries objects (single-atom coordinates, bond lengths,
angles, dihedrals, distances, centers of mass or geometry), registers them
into a Collection, and calls Compute once. The Collection flattens every
registered series into one combined query (atom list, format string, atom
counts and auxiliary weights), hands it to a Correlator engine, and slices
the single buffer the engine returns back into one view per series. The
engine is an external collaborator: this package defines only the query it
consumes and the buffer layout it must produce.

The order in which series are added to a Collection is significant: it fixes
both the layout of the combined query and the offsets used to remap the
returned buffer. All views bound after a Compute share that one buffer and
stay valid until the next Compute or Clear.

goCorrel uses the goChem (github.com/rmera/gochem) structure types as its
source of atoms and masses, and gonum matrices for the result buffer.
*/
package correl
