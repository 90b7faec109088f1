/*
 * ewald_test.go, part of godefect.
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

package ewald

import (
	"math"
	"testing"

	"github.com/rmera/godefect"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cubicSetup(t *testing.T) (*defect.Cell, *defect.Dielectric) {
	cell, err := defect.NewCell([]float64{4, 0, 0, 0, 4, 0, 0, 0, 4})
	require.NoError(t, err)
	eps, err := defect.NewDielectric([]float64{3, 0, 0, 0, 3, 0, 0, 0, 3})
	require.NoError(t, err)
	return cell, eps
}

func TestVectorsStrictCutoff(t *testing.T) {
	cell, _ := cubicSetup(t)
	//norm 4 is not strictly below 4, so only the origin survives
	assert.Equal(t, 1, NewVectors(cell, 4.0, true, nil).Count())
	assert.Equal(t, 0, NewVectors(cell, 4.0, false, nil).Count())
	//the six nearest neighbors come in at 4 < 4.1
	assert.Equal(t, 7, NewVectors(cell, 4.1, true, nil).Count())
	assert.Equal(t, 6, NewVectors(cell, 4.1, false, nil).Count())
}

//The count within a given radius cannot depend on how the cubic basis
//is oriented in Cartesian space.
func TestVectorsRotationInvariance(t *testing.T) {
	aligned, err := defect.NewCell([]float64{4, 0, 0, 0, 4, 0, 0, 0, 4})
	require.NoError(t, err)
	//the same cube rotated 90 deg around z
	rotated, err := defect.NewCell([]float64{0, 4, 0, -4, 0, 0, 0, 0, 4})
	require.NoError(t, err)
	for _, r := range []float64{4.1, 9.0, 14.7} {
		na := NewVectors(aligned, r, true, nil).Count()
		nr := NewVectors(rotated, r, true, nil).Count()
		assert.Equal(t, na, nr, "count differs at radius %.1f", r)
	}
}

func TestVectorsShift(t *testing.T) {
	cell, _ := cubicSetup(t)
	//with a (2,0,0) shift, the images at (0,0,0) and (-4,0,0) both land
	//on norm 2, everything else is too far
	v := make([]float64, 3)
	seq := NewVectors(cell, 2.5, true, []float64{2, 0, 0})
	n := 0
	for seq.Next(v) {
		n++
		assert.Less(t, v[0]*v[0]+v[1]*v[1]+v[2]*v[2], 2.5*2.5)
	}
	assert.Equal(t, 2, n)
	//restartable: a second drain gives the same count
	assert.Equal(t, 2, seq.Count())
}

func TestOptimizeCubic(t *testing.T) {
	cell, eps := cubicSetup(t)
	o := DefaultOptions()
	o.MaxIterations(50)
	ew, err := Optimize(cell, eps, o)
	require.NoError(t, err)
	assert.Greater(t, ew.NReal(), 0)
	assert.Greater(t, ew.NRecip(), 0)
	ratio := float64(ew.NReal()) / float64(ew.NRecip())
	assert.Greater(t, ratio, 1/DefaultConvergence)
	assert.Less(t, ratio, DefaultConvergence)
	//the stored counts must be the real ones
	assert.Equal(t, ew.NReal(), ew.RealVectors(nil).Count())
	assert.Equal(t, ew.NRecip(), ew.RecipVectors().Count())
	//and the cutoff invariants must hold on the converged state
	assert.InDelta(t, ew.Accuracy()/ew.Param(), ew.RealCutoff(), 1e-12)
	assert.InDelta(t, 2*ew.Param()*ew.Accuracy(), ew.RecipCutoff(), 1e-12)
}

//A converged parameter fed back as the initial guess must converge
//immediately.
func TestOptimizeFromInitialGuess(t *testing.T) {
	cell, eps := cubicSetup(t)
	ref, err := Optimize(cell, eps)
	require.NoError(t, err)
	//the loop works with the volume- and dielectric-scaled parameter,
	//undo that scaling for the guess
	guess := ref.Param() / eps.RootDet() * math.Cbrt(cell.Volume())
	o := DefaultOptions()
	o.Initial(guess)
	o.MaxIterations(2)
	ew, err := Optimize(cell, eps, o)
	require.NoError(t, err)
	assert.InDelta(t, ref.Param(), ew.Param(), 1e-10)
	assert.Equal(t, ref.NReal(), ew.NReal())
	assert.Equal(t, ref.NRecip(), ew.NRecip())
}

func TestOptimizeConvergenceError(t *testing.T) {
	cell, eps := cubicSetup(t)
	o := DefaultOptions()
	//with the rescaling damped to nothing the parameter never moves,
	//and at accuracy 2 the starting counts (7 real, 6 reciprocal) sit
	//outside the band, so the loop must exhaust its budget
	o.Accuracy(2.0)
	o.Damping(1e-12)
	o.MaxIterations(5)
	_, err := Optimize(cell, eps, o)
	require.Error(t, err)
	cerr, ok := err.(*defect.ConvergenceError)
	require.True(t, ok, "expected *defect.ConvergenceError, got %T", err)
	assert.Equal(t, 5, cerr.Iterations)
	assert.Greater(t, cerr.Param, 0.0)
}

func TestRestore(t *testing.T) {
	cell, eps := cubicSetup(t)
	ref, err := Optimize(cell, eps)
	require.NoError(t, err)
	ew, err := Restore(cell.Vectors(), eps.Values(), ref.Param(), ref.Accuracy(), ref.NReal(), ref.NRecip())
	require.NoError(t, err)
	assert.Equal(t, ref.NReal(), ew.NReal())
	assert.Equal(t, ref.NRecip(), ew.NRecip())
	assert.Equal(t, ref.Param(), ew.Param())
	assert.Equal(t, ref.Accuracy(), ew.Accuracy())
	//restoring with nonsense counts keeps them: no silent recounting
	ew2, err := Restore(cell.Vectors(), eps.Values(), ref.Param(), ref.Accuracy(), 123, 456)
	require.NoError(t, err)
	assert.Equal(t, 123, ew2.NReal())
	assert.Equal(t, 456, ew2.NRecip())
}

//For zero charge everything must be exactly zero, not just small.
func TestZeroCharge(t *testing.T) {
	cell, eps := cubicSetup(t)
	ew, err := Optimize(cell, eps)
	require.NoError(t, err)
	assert.Equal(t, 0.0, ew.SitePotential(0, []float64{1.3, 0.2, -0.7}))
	assert.Equal(t, 0.0, ew.DefectSitePotential(0))
	assert.Equal(t, 0.0, ew.LatticeEnergy(0))
}

//The self-energy term is proportional to the splitting parameter, so
//it must grow monotonically with it.
func TestSelfEnergyMonotonic(t *testing.T) {
	cell, eps := cubicSetup(t)
	var last float64
	for i, sigma := range []float64{0.2, 0.4, 0.8, 1.6} {
		ew, err := New(cell, eps, sigma)
		require.NoError(t, err)
		s := ew.selfPot()
		if i > 0 {
			assert.Greater(t, s, last)
		}
		last = s
	}
}

//The whole point of the Ewald split: away from the defect site, the
//total potential cannot depend on the splitting parameter.
func TestPotentialSigmaIndependence(t *testing.T) {
	cell, eps := cubicSetup(t)
	ew1, err := New(cell, eps, 0.35)
	require.NoError(t, err)
	ew2, err := New(cell, eps, 0.6)
	require.NoError(t, err)
	rc := []float64{2.0, 2.0, 0.0}
	p1 := ew1.SitePotential(-2, rc)
	p2 := ew2.SitePotential(-2, rc)
	assert.InDelta(t, p1, p2, 1e-4)
}

//The model potential is even in the displacement.
func TestPotentialSymmetry(t *testing.T) {
	cell, eps := cubicSetup(t)
	ew, err := Optimize(cell, eps)
	require.NoError(t, err)
	rc := []float64{1.0, -0.5, 0.25}
	neg := []float64{-1.0, 0.5, -0.25}
	assert.InDelta(t, ew.SitePotential(-2, rc), ew.SitePotential(-2, neg), 1e-9)
}

func TestSitePotentialsBatch(t *testing.T) {
	cell, eps := cubicSetup(t)
	ew, err := Optimize(cell, eps)
	require.NoError(t, err)
	disp := [][]float64{{2, 0, 0}, {0, 2, 0}, {2, 2, 0}}
	pots, onsite := ew.SitePotentials(-2, disp)
	require.Len(t, pots, 3)
	//cubic symmetry: the first two sites are equivalent
	assert.InDelta(t, pots[0], pots[1], 1e-9)
	assert.InDelta(t, ew.DefectSitePotential(-2), onsite, 1e-12)
	//lattice energy is q/2 times the on-site potential
	assert.InDelta(t, onsite*(-2)/2, ew.LatticeEnergy(-2), 1e-12)
}
