/*
 * config.go, part of gocorrel.
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

package dlpoly

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	chem "github.com/rmera/gochem"
	v3 "github.com/rmera/gochem/v3"
)

//CONFIG records carry no masses, so they are assigned per element.
//Only common "bio-elements" are present.
var symbolMass = map[string]float64{
	"H":  1.0,
	"C":  12.01,
	"O":  16.00,
	"N":  14.01,
	"P":  30.97,
	"S":  32.06,
	"K":  39.1,
	"Ca": 40.08,
	"Mg": 24.30,
	"Cl": 35.45,
	"Na": 22.99,
	"Zn": 65.38,
	"Fe": 55.84,
	"F":  18.998,
	"Br": 79.904,
	"I":  126.90,
}

//symbolFromName extracts the leading letters of a DL_Poly atom label
//and normalizes their case, so "OW1" gives "Ow"... which is not an
//element, while "CA" gives "Ca" and "na+" gives "Na".
func symbolFromName(name string) string {
	letters := make([]rune, 0, 2)
	for _, r := range name {
		if (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z') {
			letters = append(letters, r)
			if len(letters) == 2 {
				break
			}
		} else {
			break
		}
	}
	if len(letters) == 0 {
		return ""
	}
	s := strings.ToUpper(string(letters[:1])) + strings.ToLower(string(letters[1:]))
	if _, ok := symbolMass[s]; !ok && len(s) == 2 {
		//2-letter labels are mostly 1-letter elements with a role
		//suffix, like OW for water oxygen.
		s = s[:1]
	}
	return s
}

type configRecord struct {
	atom  *chem.Atom
	coord [3]float64
}

//ConfigRead reads a DL_Poly CONFIG (or REVCON) file and returns its
//topology and coordinates. Velocities and forces, when present, are
//checked and discarded. Masses are assigned per element from the atom
//labels; atoms whose label matches no known element get a zero mass.
func ConfigRead(filename string) (*chem.Topology, *v3.Matrix, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, nil, Error{UnableToOpen, filename, []string{"ConfigRead"}, true}
	}
	defer f.Close()
	h := bufio.NewReader(f)
	if _, err := h.ReadString('\n'); err != nil { //title
		return nil, nil, Error{fmt.Sprintf("%s: %s", WrongFormat, err.Error()), filename, []string{"ConfigRead"}, true}
	}
	line, err := h.ReadString('\n')
	if err != nil {
		return nil, nil, Error{fmt.Sprintf("%s: %s", WrongFormat, err.Error()), filename, []string{"ConfigRead"}, true}
	}
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return nil, nil, Error{fmt.Sprintf("%s: header needs levcfg and imcon", WrongFormat), filename, []string{"ConfigRead"}, true}
	}
	levcfg, err := strconv.Atoi(fields[0])
	if err != nil {
		return nil, nil, Error{fmt.Sprintf("%s: %s", WrongFormat, err.Error()), filename, []string{"ConfigRead"}, true}
	}
	imcon, err := strconv.Atoi(fields[1])
	if err != nil {
		return nil, nil, Error{fmt.Sprintf("%s: %s", WrongFormat, err.Error()), filename, []string{"ConfigRead"}, true}
	}
	if imcon != 0 {
		for i := 0; i < 3; i++ {
			if _, err := h.ReadString('\n'); err != nil {
				return nil, nil, Error{fmt.Sprintf("%s: cell truncated", WrongFormat), filename, []string{"ConfigRead"}, true}
			}
		}
	}
	records := make([]*configRecord, 0, 100)
	sorted := true
	for i := 0; ; i++ {
		record, err := h.ReadString('\n')
		if err == io.EOF || (err == nil && strings.TrimSpace(record) == "") {
			break
		}
		if err != nil {
			return nil, nil, Error{fmt.Sprintf("%s: %s", ReadError, err.Error()), filename, []string{"ConfigRead"}, true}
		}
		rfields := strings.Fields(record)
		if len(rfields) < 1 {
			break
		}
		name := rfields[0]
		id := i + 1
		//dl_poly classic doesn't carry the index
		if len(rfields) >= 2 {
			if parsed, err2 := strconv.Atoi(rfields[1]); err2 == nil {
				id = parsed
			}
		}
		if id != i+1 {
			sorted = false
		}
		symbol := symbolFromName(name)
		at := &chem.Atom{Name: name, ID: id, Symbol: symbol, Mass: symbolMass[symbol]}
		rec := &configRecord{atom: at}
		cline, err := h.ReadString('\n')
		if err != nil {
			return nil, nil, Error{fmt.Sprintf("%s: record %d truncated", WrongFormat, i), filename, []string{"ConfigRead"}, true}
		}
		cfields := strings.Fields(cline)
		if len(cfields) < 3 {
			return nil, nil, Error{fmt.Sprintf("%s: 3 components needed, %d given", WrongFormat, len(cfields)), filename, []string{"ConfigRead"}, true}
		}
		for j := 0; j < 3; j++ {
			rec.coord[j], err = strconv.ParseFloat(cfields[j], 64)
			if err != nil {
				return nil, nil, Error{fmt.Sprintf("%s: %s", WrongFormat, err.Error()), filename, []string{"strconv.ParseFloat", "ConfigRead"}, true}
			}
		}
		for skip := 0; skip < levcfg; skip++ {
			if _, err := h.ReadString('\n'); err != nil {
				return nil, nil, Error{fmt.Sprintf("%s: record %d truncated", WrongFormat, i), filename, []string{"ConfigRead"}, true}
			}
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return nil, nil, Error{fmt.Sprintf("%s: no atom records found", WrongFormat), filename, []string{"ConfigRead"}, true}
	}
	if !sorted {
		sort.Slice(records, func(i, j int) bool { return records[i].atom.ID < records[j].atom.ID })
	}
	ats := make([]*chem.Atom, len(records))
	data := make([]float64, 0, 3*len(records))
	for i, v := range records {
		ats[i] = v.atom
		data = append(data, v.coord[0], v.coord[1], v.coord[2])
	}
	top := chem.NewTopology(0, 0, ats)
	coords, err := v3.NewMatrix(data)
	if err != nil {
		return nil, nil, errDecorate(err, "ConfigRead")
	}
	return top, coords, nil
}
