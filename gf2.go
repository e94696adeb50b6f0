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

// xorInto XORs src into dst, growing dst if src is longer. Returns the
// (possibly reallocated) destination slice.
func xorInto(dst, src []byte) []byte {
	if len(dst) < len(src) {
		grown := make([]byte, len(src))
		copy(grown, dst)
		dst = grown
	}
	for i := range src {
		dst[i] ^= src[i]
	}
	return dst
}

// xorSlice XORs src into dst in place. dst and src must have equal length.
func xorSlice(dst, src []byte) {
	for i := range src {
		dst[i] ^= src[i]
	}
}
