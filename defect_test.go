/*
 * defect_test.go, part of godefect.
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

package defect

import (
	"math"
	"testing"
)

//a 4 Angstrom cubic cell, used all over the tests.
func cubicCell(Te *testing.T) *Cell {
	cell, err := NewCell([]float64{4, 0, 0, 0, 4, 0, 0, 0, 4})
	if err != nil {
		Te.Fatal(err)
	}
	return cell
}

func TestCellBasics(Te *testing.T) {
	cell := cubicCell(Te)
	if math.Abs(cell.Volume()-64.0) > 1e-12 {
		Te.Errorf("wrong volume for the 4 A cube: %f", cell.Volume())
	}
	//reciprocal of a cube is a cube of side 2pi/a
	rec := cell.Reciprocal()
	want := 2 * math.Pi / 4.0
	if math.Abs(rec[0]-want) > 1e-12 || math.Abs(rec[4]-want) > 1e-12 || math.Abs(rec[8]-want) > 1e-12 {
		Te.Errorf("wrong reciprocal diagonal: %v", rec)
	}
	if math.Abs(rec[1]) > 1e-12 || math.Abs(rec[3]) > 1e-12 {
		Te.Errorf("reciprocal of a cube should be diagonal: %v", rec)
	}
	if r := cell.InscribedRadius(); math.Abs(r-2.0) > 1e-12 {
		Te.Errorf("inscribed radius of the 4 A cube should be 2, got %f", r)
	}
	lengths := cell.AxisLengths()
	for _, l := range lengths {
		if math.Abs(l-4.0) > 1e-12 {
			Te.Errorf("wrong axis lengths %v", lengths)
		}
	}
}

//A lattice matrix with a zero row must be rejected before any vector
//enumeration can happen.
func TestCellDegenerate(Te *testing.T) {
	_, err := NewCell([]float64{4, 0, 0, 0, 0, 0, 0, 0, 4})
	if err == nil {
		Te.Fatal("degenerate lattice accepted")
	}
	if _, ok := err.(*InvalidGeometryError); !ok {
		Te.Errorf("expected InvalidGeometryError, got %T: %v", err, err)
	}
}

func TestCellBadAngles(Te *testing.T) {
	//first two vectors at ~26 deg
	_, err := NewCell([]float64{4, 0, 0, 3.6, 1.8, 0, 0, 0, 4})
	if err == nil {
		Te.Fatal("cell with a 26 deg inter-axis angle accepted")
	}
	if _, ok := err.(*InvalidGeometryError); !ok {
		Te.Errorf("expected InvalidGeometryError, got %T: %v", err, err)
	}
	//a 90 deg cell with a mild tilt is fine
	if _, err := NewCell([]float64{4, 0, 0, 1, 4, 0, 0, 0, 4}); err != nil {
		Te.Errorf("mildly tilted cell rejected: %v", err)
	}
}

func TestMinImageDistance(Te *testing.T) {
	cell := cubicCell(Te)
	//0.9 fractional is 0.1 away through the boundary: 0.4 A
	d := cell.MinImageDistance([]float64{0, 0, 0}, []float64{0.9, 0, 0})
	if math.Abs(d-0.4) > 1e-10 {
		Te.Errorf("wrong minimum-image distance: %f", d)
	}
	d = cell.MinImageDistance([]float64{0.5, 0.5, 0.5}, []float64{0.5, 0.5, 0.5})
	if d > 1e-12 {
		Te.Errorf("distance of a point to itself is %f", d)
	}
}

func TestDielectric(Te *testing.T) {
	eps, err := NewDielectric([]float64{3, 0, 0, 0, 3, 0, 0, 0, 3})
	if err != nil {
		Te.Fatal(err)
	}
	if math.Abs(eps.Det()-27.0) > 1e-10 {
		Te.Errorf("wrong determinant %f", eps.Det())
	}
	v := []float64{1, 2, 3}
	if q := eps.Quadratic(v); math.Abs(q-3*14) > 1e-10 {
		Te.Errorf("wrong quadratic form %f", q)
	}
	if q := eps.InvQuadratic(v); math.Abs(q-14.0/3) > 1e-10 {
		Te.Errorf("wrong inverse quadratic form %f", q)
	}
}

func TestDielectricInvalid(Te *testing.T) {
	//not symmetric
	_, err := NewDielectric([]float64{3, 1, 0, 0, 3, 0, 0, 0, 3})
	if err == nil {
		Te.Fatal("asymmetric tensor accepted")
	}
	if _, ok := err.(*InvalidDielectricTensorError); !ok {
		Te.Errorf("expected InvalidDielectricTensorError, got %T", err)
	}
	//negative eigenvalue
	_, err = NewDielectric([]float64{3, 0, 0, 0, -3, 0, 0, 0, 3})
	if err == nil {
		Te.Fatal("non-positive-definite tensor accepted")
	}
	if _, ok := err.(*InvalidDielectricTensorError); !ok {
		Te.Errorf("expected InvalidDielectricTensorError, got %T", err)
	}
}

func TestDefectCenterFrom(Te *testing.T) {
	center := DefectCenterFrom([][]float64{{0, 0, 0}, {0.5, 0.5, 0}})
	want := []float64{0.25, 0.25, 0}
	for i := range want {
		if math.Abs(center[i]-want[i]) > 1e-12 {
			Te.Errorf("wrong defect center %v", center)
		}
	}
}

func testGeometry(Te *testing.T) *Geometry {
	//a vacancy at the origin of a 4-atom reference cell: atom 0 removed,
	//the rest map shifted by one.
	return &Geometry{
		Charge:          -2,
		Center:          []float64{0, 0, 0},
		Mapping:         []int{1, 2, 3},
		DefectPotential: []float64{-10.1, -10.3, -10.2},
		RefPotential:    []float64{-9.0, -10.0, -10.0, -10.0},
		RefPositions:    [][]float64{{0, 0, 0}, {0.5, 0.5, 0}, {0.5, 0, 0.5}, {0, 0.5, 0.5}},
		Cell:            cubicCell(Te),
	}
}

func TestGeometry(Te *testing.T) {
	g := testGeometry(Te)
	if err := g.Check(); err != nil {
		Te.Fatal(err)
	}
	rel, err := g.RelativePotentials()
	if err != nil {
		Te.Fatal(err)
	}
	want := []float64{-0.1, -0.3, -0.2}
	for i := range want {
		if math.Abs(rel[i]-want[i]) > 1e-10 {
			Te.Errorf("wrong relative potentials %v", rel)
		}
	}
	dist, err := g.Distances()
	if err != nil {
		Te.Fatal(err)
	}
	//all 3 mapped atoms sit at face-diagonal/2 positions: 4*sqrt(2)/2
	wantd := 4 * math.Sqrt(2) / 2
	for _, d := range dist {
		if math.Abs(d-wantd) > 1e-10 {
			Te.Errorf("wrong distances from the defect %v", dist)
		}
	}
	disp, err := g.Displacements()
	if err != nil {
		Te.Fatal(err)
	}
	if len(disp) != 3 || math.Abs(disp[0][0]-2.0) > 1e-12 || math.Abs(disp[0][1]-2.0) > 1e-12 {
		Te.Errorf("wrong displacements %v", disp)
	}
}

func TestGeometryMappingErrors(Te *testing.T) {
	g := testGeometry(Te)
	g.Mapping = []int{1, 2} //one entry short
	if err := g.Check(); err == nil {
		Te.Error("short mapping accepted")
	} else if _, ok := err.(*InconsistentMappingError); !ok {
		Te.Errorf("expected InconsistentMappingError, got %T", err)
	}
	g = testGeometry(Te)
	g.Mapping = []int{1, 2, 17} //out of range
	if err := g.Check(); err == nil {
		Te.Error("out-of-range mapping accepted")
	} else if _, ok := err.(*InconsistentMappingError); !ok {
		Te.Errorf("expected InconsistentMappingError, got %T", err)
	}
	//inserted atoms are fine
	g = testGeometry(Te)
	g.Mapping = []int{1, InsertedAtom, 3}
	if err := g.Check(); err != nil {
		Te.Errorf("mapping with an inserted atom rejected: %v", err)
	}
	if rel, _ := g.RelativePotentials(); len(rel) != 2 {
		Te.Errorf("inserted atom not skipped: %v", rel)
	}
}
