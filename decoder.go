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

// receivedSymbol pairs an ESI with the data received for it. Building this
// ordered list up front, rather than scanning the sparse received slice
// inline, keeps DecodeSourceBlock's insertion loop a plain range over
// concrete (esi, data) pairs.
type receivedSymbol struct {
	esi  uint32
	data []byte
}

// symbolsFromReceived collects the present entries of received into an
// ordered list of (ESI, data) pairs, verifying all present buffers share
// one common length.
func symbolsFromReceived(received [][]byte) ([]receivedSymbol, int, error) {
	out := make([]receivedSymbol, 0, len(received))
	t := 0
	for esi, data := range received {
		if data == nil {
			continue
		}
		if t == 0 {
			t = len(data)
		} else if len(data) != t {
			return nil, 0, ErrLengthMismatch
		}
		out = append(out, receivedSymbol{esi: uint32(esi), data: data})
	}
	return out, t, nil
}

// DecodeSourceBlock reconstructs the original source bytes from a sparse
// set of received encoding symbols. received[i] == nil means the symbol
// at ESI i was lost; any non-nil entry is the data received for that ESI.
func DecodeSourceBlock(received [][]byte, k int, originalLen int) ([]byte, error) {
	if k <= 0 {
		return nil, ErrInvalidParameters
	}

	symbols, t, err := symbolsFromReceived(received)
	if err != nil {
		return nil, err
	}
	if len(symbols) == 0 {
		return nil, ErrInsufficientRank
	}

	params := newPrecodeParams(k)
	m := newSparseMatrix(params.l)
	m.ensureT(t)

	if err := params.pushRedundancyRows(m); err != nil {
		return nil, errors.Wrap(err, "raptor: decode source block: precode row")
	}

	for _, sym := range symbols {
		indices := findLTIndices(k, sym.esi, params.l)
		if err := m.addEquation(indices, sym.data); err != nil {
			return nil, errors.Wrapf(err, "raptor: decode source block: esi %d", sym.esi)
		}
	}

	if err := m.reduce(); err != nil {
		return nil, errors.Wrap(err, "raptor: decode source block")
	}
	if !m.fullySpecified() {
		return nil, ErrInsufficientRank
	}

	intermediate := m.intermediateSymbolsOut()

	lenLong, lenShort, numLong, numShort := partitionSizes(originalLen, k)
	out := make([]byte, 0, originalLen)
	for i := 0; i < numLong; i++ {
		out = append(out, intermediate[i][:lenLong]...)
	}
	for i := numLong; i < numLong+numShort; i++ {
		out = append(out, intermediate[i][:lenShort]...)
	}

	return out, nil
}
