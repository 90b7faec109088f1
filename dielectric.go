/*
 * dielectric.go, part of godefect.
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

	"gonum.org/v1/gonum/mat"
)

//symTol is the absolute tolerance for the symmetry check of the
//dielectric tensor. Tensors from response calculations carry numerical
//noise well below this.
const symTol float64 = 1e-6

//Dielectric is the total (static plus ionic, summed by the caller)
//dielectric tensor of the host: a 3x3 symmetric positive-definite
//matrix, dimensionless. The Ewald sums use both the tensor itself (in
//the reciprocal-space exponent) and its inverse (as the real-space
//metric), so positive-definiteness is verified once, here, and the
//inverse and determinant are cached. Immutable once constructed.
type Dielectric struct {
	tensor *mat.SymDense
	inv    *mat.Dense
	det    float64
}

//NewDielectric builds a Dielectric from the 9 row-major components of
//the tensor. It returns an InvalidDielectricTensorError if the matrix
//is not symmetric or not positive-definite. Panics if values doesn't
//have exactly 9 elements.
func NewDielectric(values []float64) (*Dielectric, error) {
	if len(values) != 9 {
		panic(ErrNot3x3Matrix)
	}
	d := mat.NewDense(3, 3, values)
	for i := 0; i < 3; i++ {
		for j := i + 1; j < 3; j++ {
			if math.Abs(d.At(i, j)-d.At(j, i)) > symTol {
				return nil, NewInvalidDielectricTensor("godefect: dielectric tensor is not symmetric: e[%d][%d]=%.6f but e[%d][%d]=%.6f", i, j, d.At(i, j), j, i, d.At(j, i))
			}
		}
	}
	sym := mat.NewSymDense(3, nil)
	for i := 0; i < 3; i++ {
		for j := i; j < 3; j++ {
			sym.SetSym(i, j, d.At(i, j))
		}
	}
	var chol mat.Cholesky
	if ok := chol.Factorize(sym); !ok {
		return nil, NewInvalidDielectricTensor("godefect: dielectric tensor is not positive-definite")
	}
	det := mat.Det(sym)
	if det <= appzero {
		return nil, NewInvalidDielectricTensor("godefect: dielectric tensor determinant %.3e is not positive", det)
	}
	inv := mat.NewDense(3, 3, nil)
	if err := inv.Inverse(sym); err != nil {
		return nil, NewInvalidDielectricTensor("godefect: dielectric tensor could not be inverted: %s", err.Error())
	}
	return &Dielectric{tensor: sym, inv: inv, det: det}, nil
}

//Det returns the determinant of the tensor.
func (D *Dielectric) Det() float64 { return D.det }

//RootDet returns the square root of the determinant.
func (D *Dielectric) RootDet() float64 { return math.Sqrt(D.det) }

//Values returns the 9 row-major components of the tensor.
func (D *Dielectric) Values() []float64 {
	ret := make([]float64, 0, 9)
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			ret = append(ret, D.tensor.At(i, j))
		}
	}
	return ret
}

//Quadratic returns v^T e v for the len-3 vector v.
func (D *Dielectric) Quadratic(v []float64) float64 {
	return quadratic(D.tensor, v)
}

//InvQuadratic returns v^T e^-1 v for the len-3 vector v, the
//anisotropic metric of the real-space Ewald sum.
func (D *Dielectric) InvQuadratic(v []float64) float64 {
	return quadratic(D.inv, v)
}

func quadratic(m mat.Matrix, v []float64) float64 {
	if len(v) != 3 {
		panic(ErrNotLen3Vector)
	}
	sum := 0.0
	for i := 0; i < 3; i++ {
		for j := 0; j < 3; j++ {
			sum += v[i] * m.At(i, j) * v[j]
		}
	}
	return sum
}
