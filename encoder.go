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

import "github.com/pkg/errors"

// SourceBlockEncoder builds the L intermediate symbols for one source
// block once, then produces an unbounded sequence of encoding symbols
// from them. ESIs 0..K-1 reproduce the source symbols verbatim
// (systematic); ESIs >= K are repair symbols.
type SourceBlockEncoder struct {
	intermediate [][]byte
	k            int
	l            int
}

// NewSourceBlockEncoder partitions sourceBlock into at most maxSourceSymbols
// equal-length symbols and solves the Raptor precode to build the L
// intermediate symbols.
func NewSourceBlockEncoder(sourceBlock []byte, maxSourceSymbols int) (*SourceBlockEncoder, error) {
	if maxSourceSymbols <= 0 || len(sourceBlock) == 0 {
		return nil, ErrInvalidParameters
	}

	k := maxSourceSymbols
	if len(sourceBlock) < k {
		k = len(sourceBlock)
	}

	source := partitionBytes(sourceBlock, k)
	t := len(source[0])

	params := newPrecodeParams(k)
	m := newSparseMatrix(params.l)
	m.ensureT(t)

	if err := buildPrecode(m, params, source); err != nil {
		return nil, err
	}
	if err := m.reduce(); err != nil {
		return nil, err
	}
	if !m.fullySpecified() {
		return nil, ErrInsufficientRank
	}

	return &SourceBlockEncoder{
		intermediate: m.intermediateSymbolsOut(),
		k:            k,
		l:            params.l,
	}, nil
}

// NumSourceSymbols returns K, the number of source symbols in the block.
func (e *SourceBlockEncoder) NumSourceSymbols() int {
	return e.k
}

// ChunkLen returns T, the common length in bytes of every symbol this
// encoder produces.
func (e *SourceBlockEncoder) ChunkLen() int {
	return len(e.intermediate[0])
}

// Fountain produces the encoding symbol for the given ESI, accumulating
// into an initially-empty buffer (xorInto grows it to match the first
// intermediate symbol XORed in, rather than pre-sizing and zero-filling
// as FountainInto does for a caller-supplied buffer).
func (e *SourceBlockEncoder) Fountain(esi uint32) []byte {
	var out []byte
	for _, idx := range findLTIndices(e.k, esi, e.l) {
		out = xorInto(out, e.intermediate[idx])
	}
	return out
}

// FountainInto writes the encoding symbol for the given ESI into output,
// which must already have length ChunkLen(). This avoids an allocation
// per symbol when generating many repair symbols in a loop.
func (e *SourceBlockEncoder) FountainInto(esi uint32, output []byte) {
	for i := range output {
		output[i] = 0
	}
	for _, idx := range findLTIndices(e.k, esi, e.l) {
		xorSlice(output, e.intermediate[idx])
	}
}

// EncodeSourceBlock encodes sourceBlock into K+repair encoding symbols,
// in ESI order 0..K+repair-1, returning them alongside K.
func EncodeSourceBlock(sourceBlock []byte, maxSourceSymbols, repair int) ([][]byte, int, error) {
	encoder, err := NewSourceBlockEncoder(sourceBlock, maxSourceSymbols)
	if err != nil {
		return nil, 0, errors.Wrap(err, "raptor: encode source block")
	}

	n := encoder.NumSourceSymbols() + repair
	output := make([][]byte, n)
	for esi := 0; esi < n; esi++ {
		output[esi] = encoder.Fountain(uint32(esi))
	}
	return output, encoder.NumSourceSymbols(), nil
}
