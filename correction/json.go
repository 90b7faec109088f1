/*
 * json.go, part of godefect.
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

package correction

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/rmera/godefect/ewald"
)

//ewaldRecord is the flat serialized form of an Ewald state. Counts go
//as integers, everything else as doubles, so a round trip loses
//nothing.
type ewaldRecord struct {
	LatticeMatrix        []float64 `json:"lattice_matrix"`
	DielectricTensor     []float64 `json:"dielectric_tensor"`
	EwaldParam           float64   `json:"ewald_param"`
	ProdCutoffFWHM       float64   `json:"prod_cutoff_fwhm"`
	NumRealLattice       int       `json:"num_real_lattice"`
	NumReciprocalLattice int       `json:"num_reciprocal_lattice"`
}

func newEwaldRecord(ew *ewald.Ewald) ewaldRecord {
	return ewaldRecord{
		LatticeMatrix:        ew.Cell().Vectors(),
		DielectricTensor:     ew.Dielectric().Values(),
		EwaldParam:           ew.Param(),
		ProdCutoffFWHM:       ew.Accuracy(),
		NumRealLattice:       ew.NReal(),
		NumReciprocalLattice: ew.NRecip(),
	}
}

func (r *ewaldRecord) restore() (*ewald.Ewald, error) {
	return ewald.Restore(r.LatticeMatrix, r.DielectricTensor, r.EwaldParam,
		r.ProdCutoffFWHM, r.NumRealLattice, r.NumReciprocalLattice)
}

//correctionRecord is the flat serialized form of a Correction.
type correctionRecord struct {
	Method            string      `json:"method"`
	Ewald             ewaldRecord `json:"ewald"`
	DiffAvePot        float64     `json:"diff_ave_pot"`
	Alignment         float64     `json:"alignment"`
	LatticeEnergy     float64     `json:"lattice_energy"`
	ManuallySetEnergy *float64    `json:"manually_set_energy"`
}

//MarshalJSON serializes the correction, its Ewald state included, as a
//flat record.
func (C *Correction) MarshalJSON() ([]byte, error) {
	r := correctionRecord{
		Method:            C.Method,
		Ewald:             newEwaldRecord(C.Ewald),
		DiffAvePot:        C.AvePotDiff,
		Alignment:         C.Alignment,
		LatticeEnergy:     C.LatticeEnergy,
		ManuallySetEnergy: C.manual,
	}
	return json.Marshal(&r)
}

//UnmarshalJSON rebuilds a correction from its serialized record. The
//Ewald state comes back with its stored vector counts, nothing is
//recomputed.
func (C *Correction) UnmarshalJSON(b []byte) error {
	var r correctionRecord
	if err := json.Unmarshal(b, &r); err != nil {
		return err
	}
	ew, err := r.Ewald.restore()
	if err != nil {
		return err
	}
	C.Method = r.Method
	C.Ewald = ew
	C.AvePotDiff = r.DiffAvePot
	C.Alignment = r.Alignment
	C.LatticeEnergy = r.LatticeEnergy
	C.manual = r.ManuallySetEnergy
	return nil
}

//writeJSON encodes v into the named file, zstd-compressing when the
//name ends in ".zst", the same extension convention the trajectory
//formats use.
func writeJSON(filename string, v interface{}) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	var w io.Writer = f
	var z *zstd.Encoder
	if strings.HasSuffix(filename, ".zst") {
		if z, err = zstd.NewWriter(f); err != nil {
			f.Close()
			return err
		}
		w = z
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	err = enc.Encode(v)
	if z != nil {
		if cerr := z.Close(); err == nil {
			err = cerr
		}
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("godefect: writing %s: %w", filename, err)
	}
	return nil
}

//readJSON decodes the named file into v, transparently decompressing
//".zst" files.
func readJSON(filename string, v interface{}) error {
	f, err := os.Open(filename)
	if err != nil {
		return err
	}
	defer f.Close()
	var r io.Reader = f
	if strings.HasSuffix(filename, ".zst") {
		dec, err := zstd.NewReader(f)
		if err != nil {
			return err
		}
		defer dec.Close()
		r = dec
	}
	if err := json.NewDecoder(r).Decode(v); err != nil {
		return fmt.Errorf("godefect: reading %s: %w", filename, err)
	}
	return nil
}

//WriteFile serializes the correction to the named JSON file. A name
//ending in ".zst" gets zstd-compressed transparently.
func WriteFile(filename string, c *Correction) error {
	return writeJSON(filename, c)
}

//ReadFile deserializes a correction written by WriteFile.
func ReadFile(filename string) (*Correction, error) {
	ret := new(Correction)
	if err := readJSON(filename, ret); err != nil {
		return nil, err
	}
	return ret, nil
}

//WriteEwaldFile stores an Ewald state on its own, so a later run can
//skip the optimization. Same ".zst" convention as WriteFile.
func WriteEwaldFile(filename string, ew *ewald.Ewald) error {
	r := newEwaldRecord(ew)
	return writeJSON(filename, &r)
}

//ReadEwaldFile restores an Ewald state stored by WriteEwaldFile,
//stored vector counts and all.
func ReadEwaldFile(filename string) (*ewald.Ewald, error) {
	var r ewaldRecord
	if err := readJSON(filename, &r); err != nil {
		return nil, err
	}
	return r.restore()
}
