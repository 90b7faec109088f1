/*
 * cell.go, part of godefect.
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

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

const appzero float64 = 0.000000000001 //used to correct floating point
//errors. Everything equal or less than this is considered zero.

//angleTol absorbs rounding in the 60-120 degree inter-axis check, so a
//perfectly hexagonal cell is not rejected over the last bit.
const angleTol float64 = 1e-8

const rad2deg float64 = 180 / math.Pi

//Cell is a periodic lattice: a 3x3 matrix whose rows are the lattice
//vectors, in Angstrom, plus its reciprocal basis (2*pi convention) and
//volume. A Cell is immutable once constructed.
type Cell struct {
	vecs *mat.Dense
	rec  *mat.Dense
	vol  float64
}

//NewCell builds a Cell from the 9 row-major components of the lattice
//matrix. It returns an InvalidGeometryError if the basis is degenerate
//or if any inter-axis angle falls outside 60-120 degrees, the range
//assumed by the lattice-vector search of the ewald package. Panics if
//vectors doesn't have exactly 9 elements.
func NewCell(vectors []float64) (*Cell, error) {
	if len(vectors) != 9 {
		panic(ErrNot3x3Matrix)
	}
	v := mat.NewDense(3, 3, append([]float64{}, vectors...))
	det := mat.Det(v)
	if math.Abs(det) <= appzero {
		return nil, NewInvalidGeometry("godefect: degenerate lattice basis, volume %.3e", det)
	}
	for i := 0; i < 3; i++ {
		a := v.RawRowView(i)
		b := v.RawRowView((i + 1) % 3)
		cosang := floats.Dot(a, b) / (floats.Norm(a, 2) * floats.Norm(b, 2))
		ang := math.Acos(cosang) * rad2deg
		if ang < 60-angleTol || ang > 120+angleTol {
			return nil, NewInvalidGeometry("godefect: angle between lattice vectors %d and %d is %.2f deg, outside the supported 60-120 deg range", i, (i+1)%3, ang)
		}
	}
	var inv mat.Dense
	if err := inv.Inverse(v); err != nil {
		return nil, NewInvalidGeometry("godefect: lattice basis is singular: %s", err.Error())
	}
	rec := mat.NewDense(3, 3, nil)
	rec.Scale(2*math.Pi, inv.T())
	return &Cell{vecs: v, rec: rec, vol: math.Abs(det)}, nil
}

//Volume returns the cell volume in cubic Angstrom.
func (C *Cell) Volume() float64 { return C.vol }

//Vector returns a copy of the ith lattice vector, Cartesian, Angstrom.
func (C *Cell) Vector(i int) []float64 {
	return append([]float64{}, C.vecs.RawRowView(i)...)
}

//Vectors returns the 9 row-major components of the lattice matrix.
func (C *Cell) Vectors() []float64 {
	ret := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		ret = append(ret, C.vecs.RawRowView(i)...)
	}
	return ret
}

//Reciprocal returns the 9 row-major components of the reciprocal
//lattice matrix, 2*pi convention, in 1/Angstrom.
func (C *Cell) Reciprocal() []float64 {
	ret := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		ret = append(ret, C.rec.RawRowView(i)...)
	}
	return ret
}

//ReciprocalCell returns the reciprocal lattice as a Cell of its own,
//re-validated, so it can feed the same vector enumeration as the real
//lattice. A real cell within the 60-120 degree assumption can still
//have a reciprocal basis outside it, hence the error.
func (C *Cell) ReciprocalCell() (*Cell, error) {
	ret, err := NewCell(C.Reciprocal())
	if err != nil {
		return nil, errDecorate(err, "ReciprocalCell")
	}
	return ret, nil
}

//AxisLengths returns the norms of the 3 lattice vectors.
func (C *Cell) AxisLengths() []float64 {
	ret := make([]float64, 3)
	for i := 0; i < 3; i++ {
		ret[i] = floats.Norm(C.vecs.RawRowView(i), 2)
	}
	return ret
}

//Cart converts fractional coordinates to Cartesian, in Angstrom.
//Panics if frac doesn't have exactly 3 components.
func (C *Cell) Cart(frac []float64) []float64 {
	if len(frac) != 3 {
		panic(ErrNotLen3Vector)
	}
	cart := make([]float64, 3)
	for j := 0; j < 3; j++ {
		for i := 0; i < 3; i++ {
			cart[j] += frac[i] * C.vecs.At(i, j)
		}
	}
	return cart
}

//cross puts the cross product of the len-3 vectors a and b in dest.
func cross(dest, a, b []float64) {
	dest[0] = a[1]*b[2] - a[2]*b[1]
	dest[1] = a[2]*b[0] - a[0]*b[2]
	dest[2] = a[0]*b[1] - a[1]*b[0]
}

//PlaneDistances returns, for each lattice vector, the distance between
//the two lattice planes spanned by the other two vectors:
//|(a_i x a_j) . a_k| / |a_i x a_j|.
func (C *Cell) PlaneDistances() []float64 {
	ret := make([]float64, 3)
	prod := make([]float64, 3)
	for i := 0; i < 3; i++ {
		cross(prod, C.vecs.RawRowView((i+1)%3), C.vecs.RawRowView((i+2)%3))
		ret[i] = math.Abs(floats.Dot(prod, C.vecs.RawRowView(i))) / floats.Norm(prod, 2)
	}
	return ret
}

//InscribedRadius returns the radius of the largest sphere that fits
//inside the cell, i.e. half the shortest inter-plane distance. The
//alignment step uses it to exclude atoms inside the defect's
//short-range perturbation zone.
func (C *Cell) InscribedRadius() float64 {
	d := C.PlaneDistances()
	return floats.Min(d) / 2.0
}

//MinImageDistance returns the shortest Cartesian distance between two
//points given in fractional coordinates, under periodic boundary
//conditions, searching over the 27 neighboring images.
func (C *Cell) MinImageDistance(frac1, frac2 []float64) float64 {
	if len(frac1) != 3 || len(frac2) != 3 {
		panic(ErrNotLen3Vector)
	}
	diff := make([]float64, 3)
	floats.SubTo(diff, frac2, frac1)
	base := C.Cart(diff)
	shifted := make([]float64, 3)
	min := math.Inf(1)
	for i := -1.0; i <= 1; i++ {
		for j := -1.0; j <= 1; j++ {
			for k := -1.0; k <= 1; k++ {
				delta := C.Cart([]float64{i, j, k})
				floats.AddTo(shifted, base, delta)
				if d := floats.Norm(shifted, 2); d < min {
					min = d
				}
			}
		}
	}
	return min
}
