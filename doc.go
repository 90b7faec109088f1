/*
 * doc.go, part of godefect.
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

/*Package defect provides the data model for finite-size electrostatic
corrections to the formation energy of charged point defects computed in
periodic supercells.

A charged defect in a finite periodic cell interacts with its own
periodic images, which adds a spurious electrostatic energy and a
potential offset with respect to the isolated-defect limit. This
library removes both: the ewald subpackage performs the anisotropic
Ewald lattice summations and optimizes the Gaussian splitting
parameter, and the correction subpackage derives the point-charge
lattice energy and the potential-alignment term (extended FNV scheme).

This root package holds what those engines consume: the lattice cell
with its reciprocal basis, the dielectric tensor, the defect geometry
record (charge, center, atom mapping and site potentials of the defect
and reference supercells) and the periodic-boundary distance helpers.

The library does not read any electronic-structure program's output.
Lattices, dielectric tensors and site potentials enter as plain
records; how they were parsed is the caller's business.*/
package defect
