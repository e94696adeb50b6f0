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

// partitionBytes splits in into p equal-length source symbols, following
// the RFC 5053 partitioning function: the first numLong symbols are
// lenLong bytes, the rest are lenShort bytes. Every returned symbol is
// zero-padded up to the length of the longest symbol, so all p symbols
// share one common length T.
func partitionBytes(in []byte, p int) [][]byte {
	lenLong, lenShort, numLong, numShort := partitionSizes(len(in), p)

	t := lenLong
	if t == 0 {
		t = lenShort
	}

	symbols := make([][]byte, 0, p)
	cursor := 0
	take := func(n int) []byte {
		sym := make([]byte, t)
		end := cursor + n
		if end > len(in) {
			end = len(in)
		}
		copy(sym, in[cursor:end])
		cursor = end
		return sym
	}

	for i := 0; i < numLong; i++ {
		symbols = append(symbols, take(lenLong))
	}
	for i := 0; i < numShort; i++ {
		symbols = append(symbols, take(lenShort))
	}

	return symbols
}
