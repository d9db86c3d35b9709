// Copyright 2026 lightfm Project Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package dataset

import (
	"sort"

	"github.com/chewxy/math32"
)

// COO is a sparse matrix in coordinate-list form with a declared shape. Rows
// and columns are dense indices produced by an Index. Duplicate coordinates
// are permitted until Coalesce merges them by summation.
type COO struct {
	numRows int32
	numCols int32
	rows    []int32
	cols    []int32
	values  []float32
	sorted  bool
}

// NewCOO creates an empty COO matrix with the given shape.
func NewCOO(numRows, numCols int32) *COO {
	return &COO{
		numRows: numRows,
		numCols: numCols,
		rows:    make([]int32, 0),
		cols:    make([]int32, 0),
		values:  make([]float32, 0),
	}
}

// Shape returns the number of rows and columns.
func (m *COO) Shape() (int32, int32) {
	return m.numRows, m.numCols
}

// NNZ returns the number of stored entries.
func (m *COO) NNZ() int {
	return len(m.values)
}

// Append adds a new entry. The coordinate may duplicate an earlier entry.
func (m *COO) Append(row, col int32, value float32) {
	m.rows = append(m.rows, row)
	m.cols = append(m.cols, col)
	m.values = append(m.values, value)
	m.sorted = false
}

// ForEach iterates stored entries.
func (m *COO) ForEach(f func(i int, row, col int32, value float32)) {
	for i := range m.values {
		f(i, m.rows[i], m.cols[i], m.values[i])
	}
}

// Len returns the number of entries. It is a method of sort.Interface.
func (m *COO) Len() int {
	return len(m.values)
}

// Less orders entries row-major. It is a method of sort.Interface.
func (m *COO) Less(i, j int) bool {
	if m.rows[i] != m.rows[j] {
		return m.rows[i] < m.rows[j]
	}
	return m.cols[i] < m.cols[j]
}

// Swap two entries. It is a method of sort.Interface.
func (m *COO) Swap(i, j int) {
	m.rows[i], m.rows[j] = m.rows[j], m.rows[i]
	m.cols[i], m.cols[j] = m.cols[j], m.cols[i]
	m.values[i], m.values[j] = m.values[j], m.values[i]
}

// Coalesce sorts entries row-major and merges duplicate coordinates by
// summation. Repeated interactions between the same pair accumulate strength
// instead of overwriting each other.
func (m *COO) Coalesce() {
	if m.sorted {
		return
	}
	sort.Sort(m)
	if len(m.values) > 0 {
		out := 0
		for i := 1; i < len(m.values); i++ {
			if m.rows[i] == m.rows[out] && m.cols[i] == m.cols[out] {
				m.values[out] += m.values[i]
			} else {
				out++
				m.rows[out], m.cols[out], m.values[out] = m.rows[i], m.cols[i], m.values[i]
			}
		}
		m.rows = m.rows[:out+1]
		m.cols = m.cols[:out+1]
		m.values = m.values[:out+1]
	}
	m.sorted = true
}

// ToDense converts the matrix to a dense row-major layout.
func (m *COO) ToDense() [][]float32 {
	dense := make([][]float32, m.numRows)
	for i := range dense {
		dense[i] = make([]float32, m.numCols)
	}
	m.ForEach(func(_ int, row, col int32, value float32) {
		dense[row][col] += value
	})
	return dense
}

// ToCSR converts the matrix to compressed sparse row layout. The receiver is
// coalesced as a side effect.
func (m *COO) ToCSR() *CSR {
	m.Coalesce()
	csr := &CSR{
		numRows: m.numRows,
		numCols: m.numCols,
		rowPtr:  make([]int32, m.numRows+1),
		cols:    make([]int32, len(m.cols)),
		values:  make([]float32, len(m.values)),
	}
	copy(csr.cols, m.cols)
	copy(csr.values, m.values)
	for _, row := range m.rows {
		csr.rowPtr[row+1]++
	}
	for i := int32(1); i <= m.numRows; i++ {
		csr.rowPtr[i] += csr.rowPtr[i-1]
	}
	return csr
}

// CSR is a sparse matrix in compressed sparse row layout, the form most
// downstream training loops consume.
type CSR struct {
	numRows int32
	numCols int32
	rowPtr  []int32
	cols    []int32
	values  []float32
}

// Shape returns the number of rows and columns.
func (m *CSR) Shape() (int32, int32) {
	return m.numRows, m.numCols
}

// NNZ returns the number of stored entries.
func (m *CSR) NNZ() int {
	return len(m.values)
}

// Row returns the column indices and values of the i-th row.
func (m *CSR) Row(i int32) ([]int32, []float32) {
	return m.cols[m.rowPtr[i]:m.rowPtr[i+1]], m.values[m.rowPtr[i]:m.rowPtr[i+1]]
}

// UserIDF returns the IDF of users in an interaction matrix.
//
//	IDF(u) = log(I/freq(u))
//
// I is the number of items. freq(u) is the number of interactions of user u.
// Since zero IDF will cause NaN in the future, the minimum value is 1e-3.
// Users without interactions get zero.
func UserIDF(interactions *COO) []float32 {
	numRows, numCols := interactions.Shape()
	freq := make([]float32, numRows)
	interactions.ForEach(func(_ int, row, _ int32, value float32) {
		freq[row] += value
	})
	idf := make([]float32, numRows)
	for i := range idf {
		if freq[i] > 0 {
			idf[i] = max(math32.Log(float32(numCols)/freq[i]), 1e-3)
		}
	}
	return idf
}

// ItemIDF returns the IDF of items in an interaction matrix.
//
//	IDF(i) = log(U/freq(i))
//
// U is the number of users. freq(i) is the number of interactions of item i.
// Since zero IDF will cause NaN in the future, the minimum value is 1e-3.
// Items without interactions get zero.
func ItemIDF(interactions *COO) []float32 {
	numRows, numCols := interactions.Shape()
	freq := make([]float32, numCols)
	interactions.ForEach(func(_ int, _, col int32, value float32) {
		freq[col] += value
	})
	idf := make([]float32, numCols)
	for i := range idf {
		if freq[i] > 0 {
			idf[i] = max(math32.Log(float32(numRows)/freq[i]), 1e-3)
		}
	}
	return idf
}
