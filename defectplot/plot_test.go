/*
 * plot_test.go, part of godefect.
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

package defectplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/godefect/correction"
)

func TestSitePotentials(Te *testing.T) {
	sites := []correction.Site{
		{Index: 3, Distance: 1.8, RelPot: -0.35, ModelPot: -0.21},
		{Index: 1, Distance: 2.83, RelPot: -0.32, ModelPot: -0.30},
		{Index: 2, Distance: 2.83, RelPot: -0.38, ModelPot: -0.30},
		{Index: 4, Distance: 3.46, RelPot: -0.29, ModelPot: -0.28},
	}
	name := filepath.Join(Te.TempDir(), "sites.png")
	if err := SitePotentials(sites, 2.0, name); err != nil {
		Te.Fatal(err)
	}
	if fi, err := os.Stat(name); err != nil || fi.Size() == 0 {
		Te.Errorf("plot file not written: %v", err)
	}
	if err := SitePotentials(nil, 2.0, name); err == nil {
		Te.Error("empty site list accepted")
	}
}
