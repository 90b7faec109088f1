/*
 * errors.go, part of godefect.
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

import "fmt"

//Error is the interface for errors that all packages in this library
//implement. The Decorate method allows adding information to an error
//as it is passed up the call stack, and retrieving the information
//collected so far. If passed an empty string, Decorate only returns the
//current decoration slice, without adding to it.
type Error interface {
	Error() string
	Decorate(string) []string
}

//InvalidGeometryError signals a degenerate lattice basis (zero or
//negative volume) or inter-axis angles outside the 60-120 degree range
//assumed by the lattice-vector search heuristic.
type InvalidGeometryError struct {
	message string
	deco    []string
}

func (err *InvalidGeometryError) Error() string { return err.message }

//Decorate adds dec to the decoration slice, unless it's empty, and returns the slice.
func (err *InvalidGeometryError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//NewInvalidGeometry returns an InvalidGeometryError with the formatted message.
func NewInvalidGeometry(format string, a ...interface{}) *InvalidGeometryError {
	return &InvalidGeometryError{message: fmt.Sprintf(format, a...)}
}

//InvalidDielectricTensorError signals a dielectric tensor that is not
//symmetric positive-definite, so its inverse and root-determinant,
//which the Ewald sums use unchecked, are not defined.
type InvalidDielectricTensorError struct {
	message string
	deco    []string
}

func (err *InvalidDielectricTensorError) Error() string { return err.message }

//Decorate adds dec to the decoration slice, unless it's empty, and returns the slice.
func (err *InvalidDielectricTensorError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//NewInvalidDielectricTensor returns an InvalidDielectricTensorError with the formatted message.
func NewInvalidDielectricTensor(format string, a ...interface{}) *InvalidDielectricTensorError {
	return &InvalidDielectricTensorError{message: fmt.Sprintf(format, a...)}
}

//ConvergenceError signals that the Ewald splitting-parameter optimizer
//ran out of its iteration budget before the real/reciprocal vector
//counts balanced. Param holds the last splitting parameter tried, so a
//caller retrying with a wider band can restart from it.
type ConvergenceError struct {
	Iterations int     //iterations spent
	Ratio      float64 //last real/reciprocal count ratio
	Param      float64 //last splitting parameter tried
	deco       []string
}

func (err *ConvergenceError) Error() string {
	return fmt.Sprintf("godefect: Ewald parameter optimization did not converge after %d iterations, last ratio %.4f", err.Iterations, err.Ratio)
}

//Decorate adds dec to the decoration slice, unless it's empty, and returns the slice.
func (err *ConvergenceError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//NewConvergence returns a ConvergenceError for the given final state.
func NewConvergence(iterations int, ratio, param float64) *ConvergenceError {
	return &ConvergenceError{Iterations: iterations, Ratio: ratio, Param: param}
}

//NoAtomsOutsideCutoffError signals that every mapped atom sits inside
//the short-range interaction sphere, so the potential-alignment average
//is undefined.
type NoAtomsOutsideCutoffError struct {
	Radius float64 //the interaction-sphere radius used
	deco   []string
}

func (err *NoAtomsOutsideCutoffError) Error() string {
	return fmt.Sprintf("godefect: no atom lies farther than %.4f A from the defect, potential alignment undefined", err.Radius)
}

//Decorate adds dec to the decoration slice, unless it's empty, and returns the slice.
func (err *NoAtomsOutsideCutoffError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//NewNoAtomsOutsideCutoff returns a NoAtomsOutsideCutoffError for the given radius.
func NewNoAtomsOutsideCutoff(radius float64) *NoAtomsOutsideCutoffError {
	return &NoAtomsOutsideCutoffError{Radius: radius}
}

//InconsistentMappingError signals an atom mapping whose length does not
//match the defect-supercell atom count, or which points at a
//reference-supercell index that does not exist.
type InconsistentMappingError struct {
	message string
	deco    []string
}

func (err *InconsistentMappingError) Error() string { return err.message }

//Decorate adds dec to the decoration slice, unless it's empty, and returns the slice.
func (err *InconsistentMappingError) Decorate(dec string) []string {
	if dec != "" {
		err.deco = append(err.deco, dec)
	}
	return err.deco
}

//NewInconsistentMapping returns an InconsistentMappingError with the formatted message.
func NewInconsistentMapping(format string, a ...interface{}) *InconsistentMappingError {
	return &InconsistentMappingError{message: fmt.Sprintf(format, a...)}
}

//errDecorate asserts that err implements Error and decorates it with
//the caller's name before returning it. It panics on any other error
//type, as that is a bug in this library.
func errDecorate(err error, caller string) error {
	err2 := err.(Error)
	err2.Decorate(caller)
	return err2
}

//PanicMsg is the type used for the messages of panics raised by this
//library on programmer errors. It satisfies the error interface anyway,
//for errors use the Error interface.
type PanicMsg string

func (v PanicMsg) Error() string { return string(v) }

const (
	ErrNot3x3Matrix     = PanicMsg("godefect: lattice and dielectric matrices must be 3x3")
	ErrNotLen3Vector    = PanicMsg("godefect: fractional and Cartesian coordinates must have 3 components")
	ErrNilData          = PanicMsg("godefect: nil data given")
	ErrInconsistentData = PanicMsg("godefect: slices given have inconsistent lengths")
)
