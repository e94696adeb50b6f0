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

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSystematicIndices(t *testing.T) {
	for _, k := range []int{1, 4, 10, 100, 1024, 8192} {
		l, s, h, hp := systematicIndices(k)
		assert.Equal(t, l, k+s+h, "L must equal K+S+H for k=%d", k)
		assert.True(t, isPrime(s), "S must be prime for k=%d", k)
		assert.GreaterOrEqual(t, centerBinomial(h), k+s, "H must satisfy choose(H,H/2) >= K+S for k=%d", k)
		assert.Equal(t, (h+1)/2, hp)
	}
}

func TestLPrimeIsPrimeAndAtLeastL(t *testing.T) {
	for _, l := range []int{1, 2, 3, 4, 10, 97, 1000} {
		p := lPrime(l)
		assert.True(t, isPrime(p))
		assert.GreaterOrEqual(t, p, l)
	}
}

func TestFindLTIndicesSystematicForSourceESIs(t *testing.T) {
	k := 10
	l, _, _, _ := systematicIndices(k)
	for esi := uint32(0); esi < uint32(k); esi++ {
		indices := findLTIndices(k, esi, l)
		assert.Equal(t, []uint16{uint16(esi)}, indices)
	}
}

func TestFindLTIndicesDeterministic(t *testing.T) {
	k := 50
	l, _, _, _ := systematicIndices(k)
	for _, esi := range []uint32{0, 5, 50, 51, 1000} {
		a := findLTIndices(k, esi, l)
		b := findLTIndices(k, esi, l)
		assert.Equal(t, a, b)
	}
}

func TestFindLTIndicesWithinRange(t *testing.T) {
	k := 40
	l, _, _, _ := systematicIndices(k)
	for esi := uint32(0); esi < 500; esi++ {
		for _, idx := range findLTIndices(k, esi, l) {
			assert.Less(t, int(idx), l)
		}
	}
}
