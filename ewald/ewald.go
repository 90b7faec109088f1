/*
 * ewald.go, part of godefect.
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

/*Package ewald sums the long-range electrostatic interaction of a
periodic array of point charges embedded in an anisotropic dielectric.

The 1/r series converges too slowly to be summed directly, so it is
split with a Gaussian of width parameter sigma into a real-space part,
summed over lattice vectors up to P/sigma, and a reciprocal-space part,
summed over reciprocal vectors up to 2*sigma*P, where P is the accuracy
parameter. Optimize balances sigma so both sums carry a similar number
of terms, and the Ewald type evaluates the model potential those sums
produce at any site of the supercell.*/
package ewald

import (
	"fmt"

	"github.com/rmera/godefect"
	"gonum.org/v1/gonum/floats"
)

//errBadParam is the message of the panic raised when a non-positive
//splitting parameter reaches New, which would make the real-space
//cutoff infinite.
const errBadParam = defect.PanicMsg("godefect/ewald: splitting parameter must be positive")

//Ewald holds a converged (or restored) set of summation parameters:
//the lattice, its reciprocal, the dielectric tensor, the splitting
//parameter sigma in 1/Angstrom, the accuracy parameter P, and the
//memoized number of vectors each sum runs over. It is immutable; each
//correction computation owns its own Ewald and nothing is shared.
type Ewald struct {
	cell     *defect.Cell
	rec      *defect.Cell
	eps      *defect.Dielectric
	param    float64
	accuracy float64
	nReal    int
	nRecip   int
}

//New builds an Ewald for the given lattice, dielectric tensor and
//splitting parameter, counting the contributing vectors in both
//domains by draining the generator. Options are read for the accuracy
//parameter only; the rest concern Optimize. Use Optimize instead of
//calling New with a guessed parameter, unless the parameter comes from
//a previous optimization.
func New(cell *defect.Cell, eps *defect.Dielectric, param float64, options ...*Options) (*Ewald, error) {
	o := optionsOrDefault(options)
	if cell == nil || eps == nil {
		panic(defect.ErrNilData)
	}
	if param <= 0 {
		panic(errBadParam)
	}
	rec, err := cell.ReciprocalCell()
	if err != nil {
		return nil, err
	}
	ret := &Ewald{cell: cell, rec: rec, eps: eps, param: param, accuracy: o.accuracy}
	ret.nReal = ret.RealVectors(nil).Count()
	ret.nRecip = ret.RecipVectors().Count()
	return ret, nil
}

//Restore rebuilds an Ewald from previously stored numbers, taking the
//vector counts as given instead of recounting them, so a serialized
//state can be brought back without re-optimization.
func Restore(lattice, dielectric []float64, param, accuracy float64, nReal, nRecip int) (*Ewald, error) {
	if param <= 0 || accuracy <= 0 {
		return nil, fmt.Errorf("godefect/ewald: stored splitting parameter %.4g and accuracy %.4g must be positive", param, accuracy)
	}
	cell, err := defect.NewCell(lattice)
	if err != nil {
		return nil, err
	}
	eps, err := defect.NewDielectric(dielectric)
	if err != nil {
		return nil, err
	}
	rec, err := cell.ReciprocalCell()
	if err != nil {
		return nil, err
	}
	return &Ewald{cell: cell, rec: rec, eps: eps, param: param, accuracy: accuracy, nReal: nReal, nRecip: nRecip}, nil
}

//Cell returns the real-space lattice.
func (E *Ewald) Cell() *defect.Cell { return E.cell }

//Dielectric returns the dielectric tensor.
func (E *Ewald) Dielectric() *defect.Dielectric { return E.eps }

//Param returns the splitting parameter sigma, in 1/Angstrom.
func (E *Ewald) Param() float64 { return E.param }

//Accuracy returns the accuracy parameter P, the product of cutoff
//radius and Gaussian width. Larger is more accurate and slower.
func (E *Ewald) Accuracy() float64 { return E.accuracy }

//RealCutoff returns the real-space cutoff radius P/sigma, in Angstrom.
func (E *Ewald) RealCutoff() float64 { return E.accuracy / E.param }

//RecipCutoff returns the reciprocal-space cutoff radius 2*sigma*P,
//in 1/Angstrom.
func (E *Ewald) RecipCutoff() float64 { return 2 * E.param * E.accuracy }

//NReal returns the number of real-space lattice vectors within the
//cutoff, origin included.
func (E *Ewald) NReal() int { return E.nReal }

//NRecip returns the number of reciprocal-space lattice vectors within
//the cutoff, origin excluded.
func (E *Ewald) NRecip() int { return E.nRecip }

//RealVectors returns the sequence of real-space lattice vectors within
//the cutoff, each shifted by the Cartesian vector shift (pass nil for
//no shift). The origin is included.
func (E *Ewald) RealVectors(shift []float64) *Vectors {
	return NewVectors(E.cell, E.RealCutoff(), true, shift)
}

//RecipVectors returns the sequence of non-zero reciprocal-space
//lattice vectors within the cutoff.
func (E *Ewald) RecipVectors() *Vectors {
	return NewVectors(E.rec, E.RecipCutoff(), false, nil)
}

//Vectors enumerates the lattice vectors basis*n + shift, for integer
//triples n, whose Cartesian norm lies strictly below a cutoff. The
//sequence is finite, produced lazily and restartable with Reset; it
//holds no external state. The per-axis search range is
//ceil(cutoff/|basis_i|)+1, which covers every candidate only while the
//inter-axis angles stay within 60-120 degrees; defect.NewCell enforces
//that precondition, it is not re-checked here.
type Vectors struct {
	rows        [3][]float64
	maxNorm     float64
	includeSelf bool
	shift       []float64
	rng         [3]int
	n           [3]int
	done        bool
}

//NewVectors returns the sequence of vectors of the given cell's
//lattice with Cartesian norm (after adding shift, if any) strictly
//below maxNorm. The zero triple is skipped unless includeSelf.
func NewVectors(cell *defect.Cell, maxNorm float64, includeSelf bool, shift []float64) *Vectors {
	if cell == nil {
		panic(defect.ErrNilData)
	}
	if shift != nil && len(shift) != 3 {
		panic(defect.ErrNotLen3Vector)
	}
	V := &Vectors{maxNorm: maxNorm, includeSelf: includeSelf, shift: shift}
	lengths := cell.AxisLengths()
	for i := 0; i < 3; i++ {
		V.rows[i] = cell.Vector(i)
		V.rng[i] = int(maxNorm/lengths[i]) + 1
	}
	V.Reset()
	return V
}

//Reset rewinds the sequence to its beginning.
func (V *Vectors) Reset() {
	V.n = [3]int{-V.rng[0], -V.rng[1], -V.rng[2]}
	V.done = false
}

//advance moves the integer triple to the next candidate, odometer
//style, flagging exhaustion after the last one.
func (V *Vectors) advance() {
	for i := 2; i >= 0; i-- {
		V.n[i]++
		if V.n[i] <= V.rng[i] {
			return
		}
		V.n[i] = -V.rng[i]
	}
	V.done = true
}

//Next writes the next vector of the sequence into v (len 3) and
//returns true, or returns false if the sequence is exhausted.
func (V *Vectors) Next(v []float64) bool {
	if len(v) != 3 {
		panic(defect.ErrNotLen3Vector)
	}
	for !V.done {
		n := V.n
		V.advance()
		if !V.includeSelf && n[0] == 0 && n[1] == 0 && n[2] == 0 {
			continue
		}
		for j := 0; j < 3; j++ {
			v[j] = float64(n[0])*V.rows[0][j] + float64(n[1])*V.rows[1][j] + float64(n[2])*V.rows[2][j]
			if V.shift != nil {
				v[j] += V.shift[j]
			}
		}
		if floats.Norm(v, 2) < V.maxNorm {
			return true
		}
	}
	return false
}

//Count drains the sequence and returns the number of vectors it
//produces, leaving it rewound.
func (V *Vectors) Count() int {
	V.Reset()
	v := make([]float64, 3)
	n := 0
	for V.Next(v) {
		n++
	}
	V.Reset()
	return n
}
