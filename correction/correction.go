/*
 * correction.go, part of godefect.
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

/*Package correction assembles the finite-size correction to the
formation energy of a charged defect: the point-charge lattice energy
from the Ewald sums plus the potential-alignment term of the extended
FNV scheme.

The alignment term reconciles the potential difference actually
observed between the defect and reference supercells with the one the
point-charge model predicts. Close to the defect that difference is
contaminated by short-range chemistry the model knows nothing about, so
only atoms outside the largest sphere fitting in the cell are averaged.*/
package correction

import (
	"log"

	"github.com/rmera/godefect"
	"github.com/rmera/godefect/ewald"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
)

//MethodExtendedFNV tags corrections computed with the extended
//Freysoldt-Neugebauer-Van de Walle scheme, the only one implemented.
const MethodExtendedFNV string = "Extended FNV"

//Site carries the per-atom diagnostic values of one correction: the
//atom's index in the defect supercell, its minimum-image distance from
//the defect center, and the DFT and model potentials there. Sites are
//a side output for logging and plotting; the stored Correction does
//not depend on them.
type Site struct {
	Index    int     //index in the defect supercell
	Distance float64 //from the defect center, Angstrom
	RelPot   float64 //DFT potential difference, defect minus reference, V
	ModelPot float64 //point-charge model potential, V
}

//Correction is the finite-size correction record for one
//defect/charge combination. It is an immutable value except for the
//manual override, and owns its Ewald exclusively.
type Correction struct {
	Method        string       //correction scheme tag
	Ewald         *ewald.Ewald //the converged summation parameters used
	AvePotDiff    float64      //average (DFT - model) potential outside the interaction sphere, V
	Alignment     float64      //-AvePotDiff * charge, eV
	LatticeEnergy float64      //point-charge lattice energy, eV
	manual        *float64     //optional manually-set correction energy, eV
}

//Energy returns the correction's energy contribution, lattice energy
//plus alignment, unless a manual override was set, in which case the
//override wins.
func (C *Correction) Energy() float64 {
	if C.manual != nil {
		return *C.manual
	}
	return C.LatticeEnergy + C.Alignment
}

//ManualEnergy returns the manual override and whether one is set, and
//sets it, if a value is given.
func (C *Correction) ManualEnergy(energy ...float64) (float64, bool) {
	if len(energy) > 0 {
		e := energy[0]
		C.manual = &e
	}
	if C.manual == nil {
		return 0, false
	}
	return *C.manual, true
}

//ClearManualEnergy removes the manual override.
func (C *Correction) ClearManualEnergy() { C.manual = nil }

/*ExtendedFNV computes the extended-FNV correction for the defect
described by geom, using the converged Ewald summation parameters ew.
It evaluates the point-charge model potential at every mapped atomic
site and at the defect site, averages the residual (DFT minus model)
potential over the atoms outside the interaction sphere (the largest
sphere fitting inside the reference cell), and returns the correction
record together with the per-site diagnostics, sorted by distance from
the defect.

It returns an InconsistentMappingError if geom doesn't check out and a
NoAtomsOutsideCutoffError if every mapped atom sits inside the
interaction sphere.*/
func ExtendedFNV(geom *defect.Geometry, ew *ewald.Ewald) (*Correction, []Site, error) {
	if geom == nil || ew == nil {
		panic(defect.ErrNilData)
	}
	rel, err := geom.RelativePotentials()
	if err != nil {
		return nil, nil, errDecorate(err, "ExtendedFNV")
	}
	disp, err := geom.Displacements()
	if err != nil {
		return nil, nil, errDecorate(err, "ExtendedFNV")
	}
	dist, err := geom.Distances()
	if err != nil {
		return nil, nil, errDecorate(err, "ExtendedFNV")
	}
	indices := geom.MappedIndices()
	pots, onsite := ew.SitePotentials(geom.Charge, disp)
	latticeEnergy := onsite * float64(geom.Charge) / 2
	threshold := geom.Cell.InscribedRadius()
	outside := make([]float64, 0, len(pots))
	for i := range pots {
		if dist[i] > threshold {
			outside = append(outside, rel[i]-pots[i])
		}
	}
	if len(outside) == 0 {
		err := defect.NewNoAtomsOutsideCutoff(threshold)
		err.Decorate("ExtendedFNV")
		return nil, nil, err
	}
	ave := stat.Mean(outside, nil)
	alignment := -1.0 * ave * float64(geom.Charge)
	log.Printf("godefect: model potential at the defect site = %.6f V", onsite)
	log.Printf("godefect: lattice energy = %.6f eV", latticeEnergy)
	log.Printf("godefect: average potential difference = %.6f V over %d of %d sites", ave, len(outside), len(pots))
	log.Printf("godefect: alignment-like term = %.6f eV", alignment)
	sites := make([]Site, len(pots))
	for i := range pots {
		sites[i] = Site{Index: indices[i], Distance: dist[i], RelPot: rel[i], ModelPot: pots[i]}
	}
	slices.SortFunc(sites, func(a, b Site) int {
		switch {
		case a.Distance < b.Distance:
			return -1
		case a.Distance > b.Distance:
			return 1
		}
		return 0
	})
	ret := &Correction{Method: MethodExtendedFNV, Ewald: ew, AvePotDiff: ave,
		Alignment: alignment, LatticeEnergy: latticeEnergy}
	return ret, sites, nil
}

//Compute is the one-call entry point: it optimizes the Ewald splitting
//parameter for the reference cell and dielectric tensor (honoring the
//given options, if any) and then runs ExtendedFNV with the converged
//parameters.
func Compute(geom *defect.Geometry, eps *defect.Dielectric, options ...*ewald.Options) (*Correction, []Site, error) {
	if geom == nil {
		panic(defect.ErrNilData)
	}
	ew, err := ewald.Optimize(geom.Cell, eps, options...)
	if err != nil {
		return nil, nil, errDecorate(err, "Compute")
	}
	return ExtendedFNV(geom, ew)
}

//errDecorate asserts that err implements defect.Error and decorates it
//with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	err2 := err.(defect.Error)
	err2.Decorate(caller)
	return err2
}
