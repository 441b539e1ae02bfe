/*
 * tsplot.go, part of gocorrel.
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

//Package tsplot draws computed measurement series, one line per scalar
//row against the frame index.
package tsplot

import (
	"fmt"

	correl "github.com/rmera/correl"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

func basicPlot(title, ylabel string) *plot.Plot {
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Frame"
	p.Y.Label.Text = ylabel
	p.Add(plotter.NewGrid())
	return p
}

func addLine(p *plot.Plot, row []float64, index int) error {
	pts := make(plotter.XYs, len(row))
	for i, v := range row {
		pts[i].X = float64(i)
		pts[i].Y = v
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = plotutil.Color(index)
	p.Add(line)
	return nil
}

//Series plots every scalar row of a bound Result against the frame
//index and saves the plot as a PNG file. It fails if r carries no data.
func Series(r *correl.Result, title, filename string) error {
	if r == nil {
		return fmt.Errorf("tsplot: Given a nil Result: compute the collection first")
	}
	p := basicPlot(title, "Value")
	n := 0
	for u := 0; u < r.Units(); u++ {
		for row := 0; row < r.Rows(); row++ {
			if err := addLine(p, r.Row(u, row), n); err != nil {
				return err
			}
			n++
		}
	}
	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, filename)
}

//Lines plots each of the given rows (e.g. correlation functions from
//tcorr) against its index and saves the plot as a PNG file.
func Lines(data [][]float64, title, filename string) error {
	if data == nil {
		panic("Given nil data")
	}
	p := basicPlot(title, "Value")
	for i, row := range data {
		if err := addLine(p, row, i); err != nil {
			return err
		}
	}
	return p.Save(15*vg.Centimeter, 10*vg.Centimeter, filename)
}
