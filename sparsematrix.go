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

// sparseMatrix is the inactivation/peeling solver for the Raptor precode
// system A*C = D over GF(2). Rows and columns are addressed through
// permutation arrays (virt<->phys); nothing in A or D ever physically
// moves once inserted.
//
// Virtual row/column space is partitioned left to right into three
// regions as the solve proceeds:
//
//	[0, vStart)            resolved: row i is the unit vector e_i
//	[vStart, inactiveStart) active: still being peeled
//	[inactiveStart, l)      inactive: deferred to the dense fallback
//
// Before reduce's inactivation phase runs, inactiveStart == l.
type sparseMatrix struct {
	l int
	t int // current common RHS length

	rows sparseRow2D // rows[physRow] = sparse column set, in virtual column coords
	rhs  [][]byte     // rhs[physRow], parallel to rows

	colVirtToOrig []uint16
	colOrigToVirt []uint16

	rowVirtToPhys []int
	rowPhysToVirt []int

	vStart        int
	inactiveStart int
}

type sparseRow2D = []sparseRow

func newSparseMatrix(l int) *sparseMatrix {
	colVirtToOrig := make([]uint16, l)
	colOrigToVirt := make([]uint16, l)
	for i := range colVirtToOrig {
		colVirtToOrig[i] = uint16(i)
		colOrigToVirt[i] = uint16(i)
	}
	return &sparseMatrix{
		l:             l,
		colVirtToOrig: colVirtToOrig,
		colOrigToVirt: colOrigToVirt,
		inactiveStart: l,
	}
}

func (m *sparseMatrix) ensureT(n int) {
	if n <= m.t {
		return
	}
	for i, b := range m.rhs {
		if len(b) < n {
			grown := make([]byte, n)
			copy(grown, b)
			m.rhs[i] = grown
		}
	}
	m.t = n
}

// addEquation inserts one A-matrix row: the given original column indices
// (unsorted, possibly with duplicates) XOR together to produce rhs.
func (m *sparseMatrix) addEquation(components []uint16, rhs []byte) error {
	if len(rhs) > m.t {
		m.ensureT(len(rhs))
	} else if len(rhs) < m.t {
		grown := make([]byte, m.t)
		copy(grown, rhs)
		rhs = grown
	}

	row := m.normalizeComponents(components)

	// Eliminate resolved columns (< vStart) from the new row.
	drainUntil, _ := row.search(uint16(m.vStart))
	resolved := row.drain(drainUntil)
	for _, j := range resolved {
		phys := m.rowVirtToPhys[j]
		xorSlice(rhs, m.rhs[phys])
	}

	if len(row) == 0 {
		if isZero(rhs) {
			return nil // redundant equation, drop it.
		}
		return ErrInconsistentEquation
	}

	physIdx := len(m.rows)
	m.rows = append(m.rows, row)
	m.rhs = append(m.rhs, rhs)
	m.rowPhysToVirt = append(m.rowPhysToVirt, physIdx)
	m.rowVirtToPhys = append(m.rowVirtToPhys, physIdx)

	// Eager peeling: this new row, and anything that drops to degree 1 as
	// a consequence, resolves immediately.
	queue := []int{}
	if len(row) == 1 {
		queue = append(queue, physIdx)
	}
	for len(queue) > 0 {
		peelPhys := queue[0]
		queue = queue[1:]

		virtRow := m.rowPhysToVirt[peelPhys]
		if virtRow < m.vStart || len(m.rows[peelPhys]) != 1 {
			continue // stale queue entry
		}

		newlyDegreeOne := m.peelFrom(peelPhys)
		queue = append(queue, newlyDegreeOne...)
	}

	return nil
}

// normalizeComponents translates original column indices to current
// virtual coordinates, sorts and dedupes them.
func (m *sparseMatrix) normalizeComponents(components []uint16) sparseRow {
	seen := make(map[uint16]bool, len(components))
	row := make(sparseRow, 0, len(components))
	for _, c := range components {
		v := m.colOrigToVirt[c]
		if seen[v] {
			continue
		}
		seen[v] = true
		row = append(row, v)
	}
	sort.Slice(row, func(i, j int) bool { return row[i] < row[j] })
	return row
}

func (m *sparseMatrix) swapRows(a, b int) {
	if a == b {
		return
	}
	pa, pb := m.rowVirtToPhys[a], m.rowVirtToPhys[b]
	m.rowVirtToPhys[a], m.rowVirtToPhys[b] = pb, pa
	m.rowPhysToVirt[pa], m.rowPhysToVirt[pb] = b, a
}

func (m *sparseMatrix) swapColumns(a, b int) {
	if a == b {
		return
	}
	ua, ub := uint16(a), uint16(b)
	for i := range m.rows {
		m.rows[i].swap(ua, ub)
	}
	oa, ob := m.colVirtToOrig[a], m.colVirtToOrig[b]
	m.colVirtToOrig[a], m.colVirtToOrig[b] = ob, oa
	m.colOrigToVirt[oa], m.colOrigToVirt[ob] = uint16(b), uint16(a)
}

// fullySpecified reports whether every column has been resolved.
func (m *sparseMatrix) fullySpecified() bool {
	return m.vStart == m.l
}

// reduce finishes the solve. If pure peeling stalls before vStart
// reaches l, it inactivates columns one at a time (moving the highest
// active column of the minimum-active-degree unresolved row into the
// inactive tail) until peeling can proceed again, then finishes the
// remaining inactive block with dense Gauss-Jordan elimination and
// back-substitutes into the peeled rows.
func (m *sparseMatrix) reduce() error {
	for !m.fullySpecified() {
		if m.inactivateOneColumn() {
			continue
		}
		return m.solveDense()
	}
	return nil
}

// inactivateOneColumn attempts one step of pure peeling (a row already
// has degree 1 among the active columns) and returns true if it made
// progress. If no unresolved row is active-degree 1, it inactivates one
// column from the minimum-active-degree unresolved row and returns true,
// whether or not that creates a new degree-1 row. It returns false when
// no active column is left to inactivate, or no unresolved row has an
// active entry (the caller then falls back to the dense solve).
func (m *sparseMatrix) inactivateOneColumn() bool {
	// First, look for an already-peelable row (active degree 1).
	for vr := m.vStart; vr < len(m.rows); vr++ {
		phys := m.rowVirtToPhys[vr]
		if m.activeDegree(m.rows[phys]) == 1 {
			m.peelFrom(phys)
			return true
		}
	}

	if m.inactiveStart <= m.vStart {
		return false
	}

	// No degree-1 row: inactivate the highest-index active column of the
	// minimum-active-degree unresolved row.
	bestPhys := -1
	bestDegree := -1
	for vr := m.vStart; vr < len(m.rows); vr++ {
		phys := m.rowVirtToPhys[vr]
		d := m.activeDegree(m.rows[phys])
		if d == 0 {
			continue
		}
		if bestDegree == -1 || d < bestDegree {
			bestDegree = d
			bestPhys = phys
		}
	}
	if bestPhys == -1 {
		return false
	}

	row := m.rows[bestPhys]
	var col uint16
	for i := len(row) - 1; i >= 0; i-- {
		if int(row[i]) < m.inactiveStart {
			col = row[i]
			break
		}
	}
	m.inactiveStart--
	m.swapColumns(m.inactiveStart, int(col))
	return true
}

// activeDegree returns how many of row's entries lie in the active
// region [vStart, inactiveStart).
func (m *sparseMatrix) activeDegree(row sparseRow) int {
	n := 0
	for _, c := range row {
		if int(c) >= m.vStart && int(c) < m.inactiveStart {
			n++
		}
	}
	return n
}

// peelFrom resolves the row at physical index phys, which must have
// active degree 1: its single active column becomes the new vStart
// pivot, trailing inactive-column entries (if any) are left in place
// until the dense fallback resolves them. Returns the physical indices
// of any other unresolved row that dropped to degree 1 as a result.
func (m *sparseMatrix) peelFrom(phys int) []int {
	row := m.rows[phys]
	var pivotCol uint16
	for _, c := range row {
		if int(c) >= m.vStart && int(c) < m.inactiveStart {
			pivotCol = c
			break
		}
	}

	virtRow := m.rowPhysToVirt[phys]
	m.swapColumns(m.vStart, int(pivotCol))
	m.swapRows(m.vStart, virtRow)
	pivotPhys := m.rowVirtToPhys[m.vStart]

	// Everything in the pivot row besides the pivot column itself must,
	// by the active-degree-1 precondition, live in the inactive region
	// (the resolved region is already excluded by the solver's
	// invariants). Any row that still references the pivot column must
	// absorb that inactive tail too, not just drop the pivot column:
	// GF(2) elimination is row_p ^= pivot_row over the whole row, and
	// dropping the tail silently un-links a row from the inactive
	// columns it actually depends on.
	pivotRow := m.rows[pivotPhys]
	pivotTail := make(sparseRow, 0, len(pivotRow))
	for _, c := range pivotRow {
		if c != uint16(m.vStart) {
			pivotTail = append(pivotTail, c)
		}
	}

	var newlyDegreeOne []int
	for vr := m.vStart + 1; vr < len(m.rows); vr++ {
		p := m.rowVirtToPhys[vr]
		r := m.rows[p]
		idx, found := r.search(uint16(m.vStart))
		if !found {
			continue
		}
		r.remove(idx)
		if len(pivotTail) > 0 {
			r = xorRow(r, pivotTail)
		}
		m.rows[p] = r
		xorSlice(m.rhs[p], m.rhs[pivotPhys])
		if m.activeDegree(r) == 1 {
			newlyDegreeOne = append(newlyDegreeOne, p)
		}
	}

	m.vStart++
	return newlyDegreeOne
}

// solveDense resolves the remaining inactive tail [inactiveStart, l) by
// dense Gauss-Jordan elimination over the unresolved rows, then
// back-substitutes the result into every peeled row so the resolved
// prefix again satisfies "row i is exactly column i".
func (m *sparseMatrix) solveDense() error {
	u := m.l - m.inactiveStart
	unresolved := len(m.rows) - m.vStart
	if unresolved < u {
		return ErrInsufficientRank
	}

	// Build a dense bit-matrix over the u inactive columns for the
	// unresolved rows, and the parallel RHS buffers.
	type denseRow struct {
		bits []bool
		phys int
	}
	dense := make([]denseRow, unresolved)
	for i := 0; i < unresolved; i++ {
		phys := m.rowVirtToPhys[m.vStart+i]
		bits := make([]bool, u)
		for _, c := range m.rows[phys] {
			if int(c) >= m.inactiveStart {
				bits[int(c)-m.inactiveStart] = true
			}
		}
		dense[i] = denseRow{bits: bits, phys: phys}
	}

	pivotRowOf := make([]int, u)
	for i := range pivotRowOf {
		pivotRowOf[i] = -1
	}

	row := 0
	for col := 0; col < u && row < len(dense); col++ {
		pivot := -1
		for r := row; r < len(dense); r++ {
			if dense[r].bits[col] {
				pivot = r
				break
			}
		}
		if pivot == -1 {
			continue
		}
		dense[row], dense[pivot] = dense[pivot], dense[row]

		for r := 0; r < len(dense); r++ {
			if r == row {
				continue
			}
			if dense[r].bits[col] {
				for k := 0; k < u; k++ {
					dense[r].bits[k] = dense[r].bits[k] != dense[row].bits[k]
				}
				xorSlice(m.rhs[dense[r].phys], m.rhs[dense[row].phys])
			}
		}
		pivotRowOf[col] = row
		row++
	}

	if row < u {
		return ErrInsufficientRank
	}

	// Assign each inactive virtual column its resolved physical row and
	// place it at virtual position vStart+col, mirroring the peel loop's
	// row/column placement so virtual coordinates end up identity.
	for col := 0; col < u; col++ {
		dr := dense[pivotRowOf[col]]
		virtTarget := m.vStart + col
		m.swapRows(virtTarget, m.rowPhysToVirt[dr.phys])
		// The physical row's sparse set is no longer meaningful after the
		// dense solve; replace it with the single resolved column.
		m.rows[dr.phys] = sparseRow{uint16(m.inactiveStart + col)}
	}
	m.vStart = m.l
	m.inactiveStart = m.l

	return m.backSubstitute()
}

// backSubstitute resolves any peeled row's lingering inactive-column
// entries against the now-known inactive values, restoring the
// "row i == column i" invariant across the whole resolved prefix.
func (m *sparseMatrix) backSubstitute() error {
	for vr := m.l - 1; vr >= 0; vr-- {
		phys := m.rowVirtToPhys[vr]
		row := m.rows[phys]
		for len(row) > 1 {
			dep := row[len(row)-1]
			depPhys := m.rowVirtToPhys[dep]
			xorSlice(m.rhs[phys], m.rhs[depPhys])
			row = row[:len(row)-1]
		}
		if len(row) != 1 || row[0] != uint16(vr) {
			return ErrInconsistentEquation
		}
		m.rows[phys] = row
	}
	return nil
}

// intermediateSymbolsOut returns the L intermediate symbols in original
// column order. Must only be called once fullySpecified() is true (the
// caller is expected to have called reduce() first).
func (m *sparseMatrix) intermediateSymbolsOut() [][]byte {
	out := make([][]byte, m.l)
	for virt := 0; virt < m.l; virt++ {
		phys := m.rowVirtToPhys[virt]
		orig := m.colVirtToOrig[virt]
		out[orig] = m.rhs[phys]
	}
	return out
}

func isZero(b []byte) bool {
	for _, v := range b {
		if v != 0 {
			return false
		}
	}
	return true
}

