/*
 * optimize.go, part of godefect.
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

	"github.com/rmera/godefect"
	"gonum.org/v1/gonum/stat"
)

const (
	//DefaultAccuracy is the default accuracy parameter P, the product
	//of the cutoff radius and the Gaussian FWHM.
	DefaultAccuracy float64 = 25.0
	//DefaultConvergence is the default half-width of the band the
	//real/reciprocal count ratio must fall in.
	DefaultConvergence float64 = 1.05
	//DefaultDamping is the exponent damping the rescaling of the
	//splitting parameter between iterations. It is an empirical value
	//with no derivation behind it; it avoids oscillation on the usual
	//dielectric tensors but convergence is not proven for pathological
	//ones, which is why the iteration budget exists.
	DefaultDamping float64 = 0.17
	//DefaultMaxIterations bounds the optimization loop.
	DefaultMaxIterations int = 100
)

//Options holds the controls of the splitting-parameter optimization.
//The zero value of each field means "use the default".
type Options struct {
	initial     float64
	convergence float64
	accuracy    float64
	damping     float64
	maxiter     int
}

//DefaultOptions returns an Options with every control at its default.
func DefaultOptions() *Options {
	ret := new(Options)
	ret.initial = 0 //derive from the lattice
	ret.convergence = DefaultConvergence
	ret.accuracy = DefaultAccuracy
	ret.damping = DefaultDamping
	ret.maxiter = DefaultMaxIterations
	return ret
}

//Initial returns the initial guess for the splitting parameter (zero
//meaning it will be derived from the lattice) and sets it, if a
//positive value is given.
func (o *Options) Initial(initial ...float64) float64 {
	ret := o.initial
	if len(initial) > 0 && initial[0] > 0 {
		o.initial = initial[0]
	}
	return ret
}

//Convergence returns the convergence band half-width and sets it, if a
//value greater than 1 is given.
func (o *Options) Convergence(convergence ...float64) float64 {
	ret := o.convergence
	if len(convergence) > 0 && convergence[0] > 1 {
		o.convergence = convergence[0]
	}
	return ret
}

//Accuracy returns the accuracy parameter P and sets it, if a positive
//value is given.
func (o *Options) Accuracy(accuracy ...float64) float64 {
	ret := o.accuracy
	if len(accuracy) > 0 && accuracy[0] > 0 {
		o.accuracy = accuracy[0]
	}
	return ret
}

//Damping returns the rescaling damping exponent and sets it, if a
//positive value is given. There is rarely a reason to touch it.
func (o *Options) Damping(damping ...float64) float64 {
	ret := o.damping
	if len(damping) > 0 && damping[0] > 0 {
		o.damping = damping[0]
	}
	return ret
}

//MaxIterations returns the iteration budget of the optimization and
//sets it, if a positive value is given.
func (o *Options) MaxIterations(maxiter ...int) int {
	ret := o.maxiter
	if len(maxiter) > 0 && maxiter[0] > 0 {
		o.maxiter = maxiter[0]
	}
	return ret
}

func optionsOrDefault(options []*Options) *Options {
	if len(options) > 0 && options[0] != nil {
		return options[0]
	}
	return DefaultOptions()
}

/*Optimize finds the splitting parameter sigma that balances the work
of the real- and reciprocal-space sums, and returns the converged
Ewald. It starts from the given initial guess, or derives one from the
geometric means of the real and reciprocal axis lengths (which
equalizes the leading-order vector counts of the two domains), then
iteratively rescales sigma by ratio^damping until the count ratio
N_real/N_reciprocal falls within [1/convergence, convergence]. If the
iteration budget runs out first it returns a
*defect.ConvergenceError carrying the last parameter tried, from which
a retry with a wider band can restart.*/
func Optimize(cell *defect.Cell, eps *defect.Dielectric, options ...*Options) (*Ewald, error) {
	if cell == nil || eps == nil {
		panic(defect.ErrNilData)
	}
	o := optionsOrDefault(options)
	rec, err := cell.ReciprocalCell()
	if err != nil {
		return nil, err
	}
	rootDet := eps.RootDet()
	cubeRootVol := math.Cbrt(cell.Volume())
	param := o.initial
	if param <= 0 {
		lr := stat.GeometricMean(cell.AxisLengths(), nil)
		lg := stat.GeometricMean(rec.AxisLengths(), nil)
		param = math.Sqrt(lg/lr/2) * cubeRootVol / rootDet
	}
	var sigma, ratio float64
	for i := 0; i < o.maxiter; i++ {
		sigma = param / cubeRootVol * rootDet
		nReal := NewVectors(cell, o.accuracy/sigma, true, nil).Count()
		nRecip := NewVectors(rec, 2*sigma*o.accuracy, false, nil).Count()
		if nRecip == 0 {
			//sigma is far too small, every reciprocal vector fell
			//outside the cutoff. Grow it and try again.
			ratio = math.Max(float64(nReal), 2)
			param *= math.Pow(ratio, o.damping)
			continue
		}
		ratio = float64(nReal) / float64(nRecip)
		if 1/o.convergence < ratio && ratio < o.convergence {
			return &Ewald{cell: cell, rec: rec, eps: eps, param: sigma,
				accuracy: o.accuracy, nReal: nReal, nRecip: nRecip}, nil
		}
		param *= math.Pow(ratio, o.damping)
	}
	return nil, defect.NewConvergence(o.maxiter, ratio, sigma)
}
