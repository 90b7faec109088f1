/*
 * plot.go, part of godefect.
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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
 */

/*Package defectplot renders the per-site diagnostics of a finite-size
correction: the DFT and model potentials, and their residual, against
the distance of each atom from the defect. The core packages do not
depend on it; it only consumes their side outputs.*/
package defectplot

import (
	"fmt"
	"image/color"

	"github.com/rmera/godefect/correction"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//SitePotentials plots, for each site, the DFT potential difference,
//the point-charge model potential and their residual against the
//site's distance from the defect, with a vertical line marking the
//interaction-sphere radius outside which the residuals are averaged.
//The output format follows the filename extension, as understood by
//gonum/plot (png, pdf, svg, eps...).
func SitePotentials(sites []correction.Site, threshold float64, filename string) error {
	if len(sites) == 0 {
		return fmt.Errorf("godefect/defectplot: no sites to plot")
	}
	p := plot.New()
	p.Title.Text = "Site potentials vs distance from the defect"
	p.X.Label.Text = "Distance (A)"
	p.Y.Label.Text = "Potential (V)"
	dft := make(plotter.XYs, len(sites))
	model := make(plotter.XYs, len(sites))
	res := make(plotter.XYs, len(sites))
	miny, maxy := sites[0].RelPot, sites[0].RelPot
	for i, s := range sites {
		dft[i] = plotter.XY{X: s.Distance, Y: s.RelPot}
		model[i] = plotter.XY{X: s.Distance, Y: s.ModelPot}
		res[i] = plotter.XY{X: s.Distance, Y: s.RelPot - s.ModelPot}
		for _, y := range []float64{s.RelPot, s.ModelPot, s.RelPot - s.ModelPot} {
			if y < miny {
				miny = y
			}
			if y > maxy {
				maxy = y
			}
		}
	}
	sdft, err := plotter.NewScatter(dft)
	if err != nil {
		return fmt.Errorf("godefect/defectplot: %w", err)
	}
	sdft.GlyphStyle.Color = color.RGBA{B: 255, A: 255}
	smodel, err := plotter.NewScatter(model)
	if err != nil {
		return fmt.Errorf("godefect/defectplot: %w", err)
	}
	smodel.GlyphStyle.Color = color.RGBA{R: 255, A: 255}
	sres, err := plotter.NewScatter(res)
	if err != nil {
		return fmt.Errorf("godefect/defectplot: %w", err)
	}
	sres.GlyphStyle.Color = color.RGBA{G: 180, A: 255}
	cut, err := plotter.NewLine(plotter.XYs{{X: threshold, Y: miny}, {X: threshold, Y: maxy}})
	if err != nil {
		return fmt.Errorf("godefect/defectplot: %w", err)
	}
	cut.LineStyle.Color = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	cut.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(4)}
	p.Add(sdft, smodel, sres, cut)
	p.Legend.Add("DFT", sdft)
	p.Legend.Add("model", smodel)
	p.Legend.Add("residual", sres)
	p.Legend.Top = true
	if err := p.Save(6*vg.Inch, 4*vg.Inch, filename); err != nil {
		return fmt.Errorf("godefect/defectplot: saving %s: %w", filename, err)
	}
	return nil
}
