// Copyright 2014 Google Inc. All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package raptor

// precodeParams bundles the per-K precode shape: L total intermediate
// symbols, S LDPC rows, H Half rows, and Hp = ceil(H/2).
type precodeParams struct {
	k, l, s, h, hp int
}

func newPrecodeParams(k int) precodeParams {
	l, s, h, hp := systematicIndices(k)
	return precodeParams{k: k, l: l, s: s, h: h, hp: hp}
}

// ldpcComposition returns, for each of the S LDPC rows, the set of source
// columns (0..K) that feed into it, following the RFC 5053 section
// 5.4.2.3 cyclic assignment.
func (p precodeParams) ldpcComposition() [][]uint16 {
	comp := make([][]uint16, p.s)
	for i := 0; i < p.k; i++ {
		a := 1 + (i/p.s)%(p.s-1)
		b := i % p.s
		comp[b] = append(comp[b], uint16(i))
		b = (b + a) % p.s
		comp[b] = append(comp[b], uint16(i))
		b = (b + a) % p.s
		comp[b] = append(comp[b], uint16(i))
	}
	return comp
}

// halfComposition returns, for each of the H Half rows, the set of
// columns in [0, K+S) that feed into it, chosen from a Gray-code sequence
// of weight Hp so the rows look like a random binary fountain.
func (p precodeParams) halfComposition() [][]uint16 {
	comp := make([][]uint16, p.h)
	gray := buildGraySequence(p.k+p.s, p.hp)
	for i := 0; i < p.h; i++ {
		for j := 0; j < p.k+p.s; j++ {
			if bitSet(uint(gray[j]), uint(i)) {
				comp[i] = append(comp[i], uint16(j))
			}
		}
	}
	return comp
}

// pushRedundancyRows inserts the S LDPC rows and H Half rows into m. Both
// carry zero RHS; this half of the precode is identical on the encoder
// and decoder sides (source-identity rows are the only part that
// differs between the two, since the decoder gets source positions from
// received LT equations instead). Each row gets its own zero buffer,
// since the solver keeps the RHS slice it is given and XORs into it.
func (p precodeParams) pushRedundancyRows(m *sparseMatrix) error {
	for i, cols := range p.ldpcComposition() {
		row := append(append([]uint16(nil), cols...), uint16(p.k+i))
		if err := m.addEquation(row, make([]byte, m.t)); err != nil {
			return err
		}
	}

	for i, cols := range p.halfComposition() {
		row := append(append([]uint16(nil), cols...), uint16(p.k+p.s+i))
		if err := m.addEquation(row, make([]byte, m.t)); err != nil {
			return err
		}
	}

	return nil
}

// buildPrecode pushes the K+S+H precode equations for source symbols
// into m, in canonical order: LDPC rows, Half rows, then K source-identity
// rows. LDPC/Half rows always have zero RHS; the identity rows carry the
// source symbols themselves.
func buildPrecode(m *sparseMatrix, p precodeParams, source [][]byte) error {
	if err := p.pushRedundancyRows(m); err != nil {
		return err
	}

	for i := 0; i < p.k; i++ {
		if err := m.addEquation([]uint16{uint16(i)}, source[i]); err != nil {
			return err
		}
	}

	return nil
}
