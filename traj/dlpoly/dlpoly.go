/*
 * dlpoly.go, part of gocorrel.
 *
 * Copyright 2021 Raul Mera <rmera{at}usachDOTcl>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License  as published by
 * the Free Software Foundation; either version 2.1 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General Public License
 * along with this program; if not, write to the Free Software
 * Foundation, Inc., 51 Franklin Street, Fifth Floor, Boston,
 * MA 02110-1301, USA.
 */

//Package dlpoly reads DL_Poly simulation files: HISTORY trajectories,
//sequentially, and single-frame CONFIG files. HISTORY files may be
//compressed with gzip, deflate, lzw or zstd.
package dlpoly

import (
	"bufio"
	"compress/flate"
	"compress/gzip"
	"compress/lzw"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	chem "github.com/rmera/gochem"
	v3 "github.com/rmera/gochem/v3"
)

const lzwLitwidth int = 8

//HistoryObj is a handle for a DL_Poly HISTORY trajectory file.
//It implements chem.Traj.
type HistoryObj struct {
	natoms   int
	levcfg   int //0: positions, 1: also velocities, 2: also forces
	imcon    int //0 means no periodic cell in the file
	title    string
	filename string
	readable bool
	f        *os.File
	zip      io.ReadCloser //nil for uncompressed files
	h        *bufio.Reader
}

//zstd.Decoder.Close returns nothing, so it doesn't fulfill
//io.ReadCloser by itself.
type zstdql struct {
	closeql func()
	*zstd.Decoder
}

func (z zstdql) Close() error {
	z.closeql()
	return nil
}

//prepSource opens fname and, depending on its extension, wraps it in the
//corresponding decompressor. Anything but .gz, .z, .lzw, .zst and .zstd
//is assumed to be an uncompressed HISTORY file.
func prepSource(fname string, f *os.File) (io.ReadCloser, error) {
	temp := strings.Split(fname, ".")
	switch strings.ToLower(temp[len(temp)-1]) {
	case "gz":
		return gzip.NewReader(bufio.NewReader(f))
	case "z":
		return flate.NewReader(bufio.NewReader(f)), nil
	case "lzw":
		return lzw.NewReader(bufio.NewReader(f), lzw.MSB, lzwLitwidth), nil
	case "zst", "zstd":
		r, err := zstd.NewReader(bufio.NewReader(f))
		if err != nil {
			return nil, err
		}
		return zstdql{r.Close, r}, nil
	}
	return nil, nil
}

//New opens a HISTORY trajectory for reading and parses its 2-line header.
func New(filename string) (*HistoryObj, error) {
	var err error
	H := new(HistoryObj)
	H.filename = filename
	H.f, err = os.Open(filename)
	if err != nil {
		return nil, Error{UnableToOpen, filename, []string{"New"}, true}
	}
	H.zip, err = prepSource(filename, H.f)
	if err != nil {
		H.f.Close()
		return nil, Error{fmt.Sprintf("%s: %s", UnableToOpen, err.Error()), filename, []string{"New"}, true}
	}
	if H.zip != nil {
		H.h = bufio.NewReader(H.zip)
	} else {
		H.h = bufio.NewReader(H.f)
	}
	title, err := H.h.ReadString('\n')
	if err != nil {
		H.Close()
		return nil, Error{fmt.Sprintf("%s: %s", WrongFormat, err.Error()), filename, []string{"New"}, true}
	}
	H.title = strings.TrimSpace(title)
	line, err := H.h.ReadString('\n')
	if err != nil {
		H.Close()
		return nil, Error{fmt.Sprintf("%s: %s", WrongFormat, err.Error()), filename, []string{"New"}, true}
	}
	fields := strings.Fields(line)
	if len(fields) < 3 {
		H.Close()
		return nil, Error{fmt.Sprintf("%s: header needs levcfg, imcon and the atom number", WrongFormat), filename, []string{"New"}, true}
	}
	header := make([]int, 3)
	for i := 0; i < 3; i++ {
		header[i], err = strconv.Atoi(fields[i])
		if err != nil {
			H.Close()
			return nil, Error{fmt.Sprintf("%s: %s", WrongFormat, err.Error()), filename, []string{"New"}, true}
		}
	}
	H.levcfg, H.imcon, H.natoms = header[0], header[1], header[2]
	H.readable = true
	return H, nil
}

//Title returns the title line of the HISTORY file.
func (H *HistoryObj) Title() string {
	return H.title
}

//Readable returns true if the handle is ready for Next to be called on it.
func (H *HistoryObj) Readable() bool {
	return H.readable
}

//Len returns the number of atoms per frame.
func (H *HistoryObj) Len() int {
	return H.natoms
}

//Close closes the underlying file. The object can not be read after
//this call.
func (H *HistoryObj) Close() {
	if H == nil {
		return
	}
	if H.zip != nil {
		H.zip.Close()
		H.zip = nil
	}
	if H.f != nil {
		H.f.Close()
		H.f = nil
	}
	H.readable = false
}

//Next reads the next frame of the trajectory into keep, or discards it
//if keep is nil. If box is given, it is filled with as many of the 9
//cell-matrix components present in the frame as it has room for.
//At the end of the trajectory a chem.LastFrameError is returned.
func (H *HistoryObj) Next(keep *v3.Matrix, box ...[]float64) error {
	if !H.readable {
		return Error{TrajUnIni, H.filename, []string{"Next"}, true}
	}
	line, err := H.h.ReadString('\n')
	if err != nil {
		//EOF at the timestep record is the normal end of the trajectory.
		H.Close()
		return newlastFrameError(H.filename, "Next")
	}
	if !strings.HasPrefix(strings.TrimSpace(line), "timestep") {
		return Error{fmt.Sprintf("%s: expected a timestep record, got %q", WrongFormat, strings.TrimSpace(line)), H.filename, []string{"Next"}, true}
	}
	if H.imcon != 0 {
		if err := H.nextCell(box...); err != nil {
			return errDecorate(err, "Next")
		}
	}
	for i := 0; i < H.natoms; i++ {
		record, err := H.h.ReadString('\n')
		if err != nil {
			H.readable = false
			return Error{fmt.Sprintf("%s: frame truncated at atom %d", ReadError, i), H.filename, []string{"Next"}, true}
		}
		//atom record: name, index and, unused here, mass and charge.
		//When records carry an index, coordinates land in the row it
		//names, so a file with permuted records still matches the
		//topology order. DL_Poly classic carries no index.
		row := i
		if f := strings.Fields(record); len(f) >= 2 {
			if id, err2 := strconv.Atoi(f[1]); err2 == nil && id >= 1 && id <= H.natoms {
				row = id - 1
			}
		}
		if err := H.readVector(keep, row); err != nil {
			return errDecorate(err, "Next")
		}
		//velocities and forces, per levcfg, are checked but not kept.
		for skip := 0; skip < H.levcfg; skip++ {
			if _, err := H.h.ReadString('\n'); err != nil {
				H.readable = false
				return Error{fmt.Sprintf("%s: frame truncated at atom %d", ReadError, i), H.filename, []string{"Next"}, true}
			}
		}
	}
	return nil
}

//readVector parses one 3-component line into the given row of keep,
//or discards it if keep is nil.
func (H *HistoryObj) readVector(keep *v3.Matrix, row int) error {
	line, err := H.h.ReadString('\n')
	if err != nil {
		H.readable = false
		return Error{ReadError, H.filename, []string{"readVector"}, true}
	}
	if keep == nil {
		return nil
	}
	fields := strings.Fields(line)
	if len(fields) < 3 {
		return Error{fmt.Sprintf("%s: 3 components needed, %d given", WrongFormat, len(fields)), H.filename, []string{"readVector"}, true}
	}
	for j := 0; j < 3; j++ {
		val, err := strconv.ParseFloat(fields[j], 64)
		if err != nil {
			return Error{fmt.Sprintf("%s: %s", WrongFormat, err.Error()), H.filename, []string{"strconv.ParseFloat", "readVector"}, true}
		}
		keep.Set(row, j, val)
	}
	return nil
}

//nextCell reads the 3 cell-vector lines of a frame and, if given,
//fills box with up to 9 components, row-major.
func (H *HistoryObj) nextCell(box ...[]float64) error {
	var dst []float64
	if len(box) > 0 {
		dst = box[0]
	}
	for i := 0; i < 3; i++ {
		line, err := H.h.ReadString('\n')
		if err != nil {
			H.readable = false
			return Error{fmt.Sprintf("%s: cell truncated", ReadError), H.filename, []string{"nextCell"}, true}
		}
		fields := strings.Fields(line)
		if len(fields) < 3 {
			return Error{fmt.Sprintf("%s: 3 cell components needed, %d given", WrongFormat, len(fields)), H.filename, []string{"nextCell"}, true}
		}
		for j := 0; j < 3; j++ {
			val, err := strconv.ParseFloat(fields[j], 64)
			if err != nil {
				return Error{fmt.Sprintf("%s: %s", WrongFormat, err.Error()), H.filename, []string{"strconv.ParseFloat", "nextCell"}, true}
			}
			if dst != nil && 3*i+j < len(dst) {
				dst[3*i+j] = val
			}
		}
	}
	return nil
}

//Errors

//errDecorate asserts that err implements chem.Error and decorates it
//with the caller's name before returning it. Calling it on any other
//error type will panic.
func errDecorate(err error, caller string) error {
	err2 := err.(chem.Error)
	err2.Decorate(caller)
	return err2
}

//Error is the general structure for DL_Poly file errors. It fulfills
//chem.Error and chem.TrajError.
type Error struct {
	message  string
	filename string //the input file that has problems, or an empty string
	deco     []string
	critical bool
}

func (err Error) Error() string {
	return fmt.Sprintf("DL_Poly file %s error: %s", err.filename, err.message)
}

//Decorate adds new information to the error.
func (E Error) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file to which the failing trajectory was associated.
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file associated to the error (always "DL_Poly").
func (err Error) Format() string { return "DL_Poly" }

//Critical returns true if the error is critical, false otherwise.
func (err Error) Critical() bool { return err.critical }

const (
	TrajUnIni    = "Traj object uninitialized to read"
	ReadError    = "Error reading frame"
	UnableToOpen = "Unable to open file"
	WrongFormat  = "Wrong format in the DL_Poly file or frame"
	EOF          = "EOF"
)

//lastFrameError implements chem.LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

//NormalLastFrameTermination does nothing, it only marks the harmless
//end-of-trajectory condition.
func (E lastFrameError) NormalLastFrameTermination() {}

func (E lastFrameError) FileName() string { return E.fileName }

func (E lastFrameError) Error() string { return "EOF" }

func (E lastFrameError) Critical() bool { return false }

func (E lastFrameError) Format() string { return "DL_Poly" }

func (E lastFrameError) Decorate(deco string) []string {
	//Even though this method does not use a pointer as a receiver, and tries to alter the receiver,
	//it should work, since E.deco is a slice, and hence a pointer itself.
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
