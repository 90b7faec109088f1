/*
 * geometry.go, part of godefect.
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
	"gonum.org/v1/gonum/floats"
)

//InsertedAtom marks, in Geometry.Mapping, an atom of the defect
//supercell with no counterpart in the reference supercell.
const InsertedAtom int = -1

//Geometry is the plain record describing one charged defect: the
//defect charge and center, the mapping between the defect and
//reference supercells, the electrostatic potential at every atomic
//site of both, and the reference lattice. All coordinates are
//fractional, all potentials in volt. How these numbers were obtained
//(and from which program's output) is the caller's business.
type Geometry struct {
	Charge          int         //defect charge, signed
	Center          []float64   //fractional coordinates of the defect center
	Mapping         []int       //defect-supercell index -> reference-supercell index, InsertedAtom for atoms with no counterpart
	DefectPotential []float64   //site potentials of the defect supercell, V
	RefPotential    []float64   //site potentials of the reference supercell, V
	RefPositions    [][]float64 //fractional coordinates of the reference supercell atoms
	Cell            *Cell       //the reference supercell lattice
}

//DefectCenterFrom returns the fractional center of a defect built from
//several sites (say, a vacancy pair) as the arithmetic mean of their
//fractional coordinates. For a single site it returns that site.
func DefectCenterFrom(coords [][]float64) []float64 {
	if len(coords) == 0 {
		panic(ErrNilData)
	}
	ret := make([]float64, 3)
	for _, c := range coords {
		if len(c) != 3 {
			panic(ErrNotLen3Vector)
		}
		floats.Add(ret, c)
	}
	floats.Scale(1/float64(len(coords)), ret)
	return ret
}

//Check validates the record: the mapping must cover exactly the
//defect-supercell atoms, every mapped index must exist in the
//reference supercell, and the reference potentials and positions must
//be consistent with each other. Returns an InconsistentMappingError
//otherwise. Panics on nil cell or center, which are programmer errors.
func (G *Geometry) Check() error {
	if G.Cell == nil || G.Center == nil {
		panic(ErrNilData)
	}
	if len(G.Center) != 3 {
		panic(ErrNotLen3Vector)
	}
	if len(G.Mapping) != len(G.DefectPotential) {
		return NewInconsistentMapping("godefect: mapping has %d entries but the defect supercell has %d atoms", len(G.Mapping), len(G.DefectPotential))
	}
	if len(G.RefPotential) != len(G.RefPositions) {
		return NewInconsistentMapping("godefect: reference supercell has %d potentials but %d positions", len(G.RefPotential), len(G.RefPositions))
	}
	for d, p := range G.Mapping {
		if p == InsertedAtom {
			continue
		}
		if p < 0 || p >= len(G.RefPotential) {
			return NewInconsistentMapping("godefect: atom %d maps to reference index %d, out of range for %d reference atoms", d, p, len(G.RefPotential))
		}
	}
	return nil
}

//MappedIndices returns the defect-supercell indices of the atoms that
//have a counterpart in the reference supercell, in order.
func (G *Geometry) MappedIndices() []int {
	ret := make([]int, 0, len(G.Mapping))
	for d, p := range G.Mapping {
		if p != InsertedAtom {
			ret = append(ret, d)
		}
	}
	return ret
}

//RelativePotentials returns the potential difference, defect supercell
//minus reference supercell, at each mapped atom, in the order of
//MappedIndices. Inserted atoms are skipped, as they have nothing to be
//compared against.
func (G *Geometry) RelativePotentials() ([]float64, error) {
	if err := G.Check(); err != nil {
		return nil, errDecorate(err, "RelativePotentials")
	}
	ret := make([]float64, 0, len(G.Mapping))
	for d, p := range G.Mapping {
		if p == InsertedAtom {
			continue
		}
		ret = append(ret, G.DefectPotential[d]-G.RefPotential[p])
	}
	return ret, nil
}

//Positions returns the reference-supercell fractional coordinates of
//each mapped atom, in the order of MappedIndices.
func (G *Geometry) Positions() ([][]float64, error) {
	if err := G.Check(); err != nil {
		return nil, errDecorate(err, "Positions")
	}
	ret := make([][]float64, 0, len(G.Mapping))
	for _, p := range G.Mapping {
		if p == InsertedAtom {
			continue
		}
		if len(G.RefPositions[p]) != 3 {
			panic(ErrNotLen3Vector)
		}
		ret = append(ret, append([]float64{}, G.RefPositions[p]...))
	}
	return ret, nil
}

//Displacements returns the Cartesian displacement, in Angstrom, of
//each mapped atom from the defect center, in the order of
//MappedIndices. These are the direct differences, not minimum-image
//reduced: the Ewald sums run over all periodic images anyway.
func (G *Geometry) Displacements() ([][]float64, error) {
	pos, err := G.Positions()
	if err != nil {
		return nil, errDecorate(err, "Displacements")
	}
	ret := make([][]float64, len(pos))
	diff := make([]float64, 3)
	for i, p := range pos {
		floats.SubTo(diff, p, G.Center)
		ret[i] = G.Cell.Cart(diff)
	}
	return ret, nil
}

//Distances returns the minimum-image distance, in Angstrom, of each
//mapped atom from the defect center, in the order of MappedIndices.
func (G *Geometry) Distances() ([]float64, error) {
	pos, err := G.Positions()
	if err != nil {
		return nil, errDecorate(err, "Distances")
	}
	ret := make([]float64, len(pos))
	for i, p := range pos {
		ret[i] = G.Cell.MinImageDistance(G.Center, p)
	}
	return ret, nil
}
