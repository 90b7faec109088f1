/*
 * potential.go, part of godefect.
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
)

const (
	elementaryCharge   float64 = 1.602176634e-19  //C
	vacuumPermittivity float64 = 8.8541878128e-12 //F/m
)

//selfRadius: image vectors shorter than this are the defect's own
//charge, whose raw Coulomb term is excluded from the real-space sum.
const selfRadius float64 = 1e-8

//coeff returns the prefactor turning the geometric sums, in 1/Angstrom,
//into a potential in volt for a defect of the given charge (in units of
//the elementary charge). The 1e10 converts the Angstrom length scale to
//meters.
func coeff(charge int) float64 {
	return float64(charge) * elementaryCharge * 1.0e10 / vacuumPermittivity
}

//realSum is the real-space part of the Ewald potential at a site
//displaced rc (Cartesian, Angstrom) from the defect:
//sum over images v=R+rc of erfc(sigma*sqrt(v e^-1 v))/sqrt(v e^-1 v),
//over 4*pi*sqrt(det(e)). In 1/Angstrom.
func (E *Ewald) realSum(rc []float64) float64 {
	sum := 0.0
	v := make([]float64, 3)
	vecs := E.RealVectors(rc)
	for vecs.Next(v) {
		if math.Hypot(math.Hypot(v[0], v[1]), v[2]) < selfRadius {
			continue
		}
		x := math.Sqrt(E.eps.InvQuadratic(v))
		sum += math.Erfc(E.param*x) / x
	}
	return sum / (4 * math.Pi * E.eps.RootDet())
}

//recipSum is the reciprocal-space part at displacement rc:
//sum over non-zero g of exp(-g e g/(4 sigma^2))/(g e g) * cos(g.rc),
//over the cell volume. In 1/Angstrom.
func (E *Ewald) recipSum(rc []float64) float64 {
	sum := 0.0
	g := make([]float64, 3)
	vecs := E.RecipVectors()
	for vecs.Next(g) {
		geg := E.eps.Quadratic(g)
		gr := g[0]*rc[0] + g[1]*rc[1] + g[2]*rc[2]
		sum += math.Exp(-geg/(4*E.param*E.param)) / geg * math.Cos(gr)
	}
	return sum / E.cell.Volume()
}

//backgroundPot is the uniform compensating-background term that
//removes the k=0 divergence: -1/(4 V sigma^2). In 1/Angstrom.
func (E *Ewald) backgroundPot() float64 {
	return -0.25 / (E.cell.Volume() * E.param * E.param)
}

//selfPot is the interaction of the defect charge with its own
//Gaussian: sigma/(2 pi sqrt(pi det(e))). Added at the defect site
//only. In 1/Angstrom.
func (E *Ewald) selfPot() float64 {
	return E.param / (2 * math.Pi * math.Sqrt(math.Pi*E.eps.Det()))
}

//SitePotential returns the model potential, in volt, that an atom
//displaced rc (Cartesian, Angstrom) from a defect of the given charge
//feels from the defect's periodic images under the anisotropic
//screening of the dielectric tensor.
func (E *Ewald) SitePotential(charge int, rc []float64) float64 {
	if len(rc) != 3 {
		panic(defect.ErrNotLen3Vector)
	}
	return (E.realSum(rc) + E.recipSum(rc) + E.backgroundPot()) * coeff(charge)
}

//DefectSitePotential returns the model potential, in volt, at the
//defect site itself, self-energy term included.
func (E *Ewald) DefectSitePotential(charge int) float64 {
	zero := []float64{0, 0, 0}
	return (E.realSum(zero) + E.recipSum(zero) + E.backgroundPot() + E.selfPot()) * coeff(charge)
}

//SitePotentials evaluates the model potential at each of the given
//displacements from the defect center and at the defect site itself.
//It returns the per-site potentials, in the order given, and the
//defect-site potential, all in volt.
func (E *Ewald) SitePotentials(charge int, displacements [][]float64) ([]float64, float64) {
	pots := make([]float64, len(displacements))
	for i, rc := range displacements {
		pots[i] = E.SitePotential(charge, rc)
	}
	return pots, E.DefectSitePotential(charge)
}

//LatticeEnergy returns the point-charge lattice energy
//q*potential(0)/2, in eV: the spurious interaction of the defect with
//its own image lattice and background, which the correction removes
//from the formation energy.
func (E *Ewald) LatticeEnergy(charge int) float64 {
	return E.DefectSitePotential(charge) * float64(charge) / 2
}
