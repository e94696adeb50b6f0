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

import "sort"

// sparseRow is a strictly ascending, duplicate-free set of column indices.
// It represents one row of the sparse GF(2) equation matrix: the set of
// intermediate-symbol columns XORed together to produce the row's RHS.
type sparseRow []uint16

// search returns the index of v in the row, and whether it was found,
// following the Ok(i)/Err(i) convention of a binary search: when not
// found, i is the insertion point that keeps the row sorted.
func (r sparseRow) search(v uint16) (int, bool) {
	i := sort.Search(len(r), func(i int) bool { return r[i] >= v })
	return i, i < len(r) && r[i] == v
}

// drain removes and returns the first n entries of the row.
func (r *sparseRow) drain(n int) []uint16 {
	removed := append([]uint16(nil), (*r)[:n]...)
	*r = (*r)[n:]
	return removed
}

// swap exchanges membership of columns a and b: if exactly one of them is
// present, it becomes absent and the other becomes present; if both or
// neither are present, the row is unchanged.
func (r *sparseRow) swap(a, b uint16) {
	if a == b {
		return
	}
	if a > b {
		a, b = b, a
	}

	row := *r
	ia, foundA := func() (int, bool) {
		i, ok := sparseRow(row).search(a)
		return i, ok
	}()
	ib, foundB := func() (int, bool) {
		i, ok := sparseRow(row).search(b)
		return i, ok
	}()

	switch {
	case foundA && foundB:
		// Both present: nothing changes.
	case !foundA && !foundB:
		// Neither present: nothing changes.
	case foundA && !foundB:
		// a leaves, b arrives. a's slot shifts to where b belongs.
		copy(row[ia:ib-1], row[ia+1:ib])
		row[ib-1] = b
	case !foundA && foundB:
		// b leaves, a arrives.
		copy(row[ia+1:ib+1], row[ia:ib])
		row[ia] = a
	}
}

// remove deletes the entry at index i.
func (r *sparseRow) remove(i int) {
	copy((*r)[i:], (*r)[i+1:])
	*r = (*r)[:len(*r)-1]
}

// xorRow returns the symmetric difference of a and b: the GF(2) row sum
// a^b, i.e. the columns present in exactly one of the two rows. Both
// inputs must already be strictly ascending; the result is too.
func xorRow(a, b sparseRow) sparseRow {
	out := make(sparseRow, 0, len(a)+len(b))
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			out = append(out, a[i])
			i++
		case a[i] > b[j]:
			out = append(out, b[j])
			j++
		default:
			i++
			j++
		}
	}
	out = append(out, a[i:]...)
	out = append(out, b[j:]...)
	return out
}
