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
	"testing"

	"github.com/chewxy/math32"
	"github.com/stretchr/testify/assert"
)

func TestCOO(t *testing.T) {
	m := NewCOO(2, 3)
	numRows, numCols := m.Shape()
	assert.Equal(t, int32(2), numRows)
	assert.Equal(t, int32(3), numCols)
	assert.Zero(t, m.NNZ())
	m.Append(1, 2, 1)
	m.Append(0, 0, 1)
	m.Append(1, 2, 1)
	assert.Equal(t, 3, m.NNZ())
	assert.Equal(t, [][]float32{
		{1, 0, 0},
		{0, 0, 2},
	}, m.ToDense())
}

func TestCOOCoalesce(t *testing.T) {
	m := NewCOO(2, 2)
	m.Append(1, 1, 1)
	m.Append(0, 1, 2)
	m.Append(1, 1, 3)
	m.Append(1, 0, 4)
	m.Append(0, 1, 5)
	m.Coalesce()
	assert.Equal(t, 3, m.NNZ())
	var rows, cols []int32
	var values []float32
	m.ForEach(func(_ int, row, col int32, value float32) {
		rows = append(rows, row)
		cols = append(cols, col)
		values = append(values, value)
	})
	// row-major order with duplicates summed
	assert.Equal(t, []int32{0, 1, 1}, rows)
	assert.Equal(t, []int32{1, 0, 1}, cols)
	assert.Equal(t, []float32{7, 4, 4}, values)
	// idempotent
	m.Coalesce()
	assert.Equal(t, 3, m.NNZ())
}

func TestCOOToCSR(t *testing.T) {
	m := NewCOO(3, 3)
	m.Append(2, 0, 1)
	m.Append(0, 1, 2)
	m.Append(2, 2, 3)
	m.Append(2, 0, 1)
	csr := m.ToCSR()
	numRows, numCols := csr.Shape()
	assert.Equal(t, int32(3), numRows)
	assert.Equal(t, int32(3), numCols)
	assert.Equal(t, 3, csr.NNZ())
	cols, values := csr.Row(0)
	assert.Equal(t, []int32{1}, cols)
	assert.Equal(t, []float32{2}, values)
	cols, values = csr.Row(1)
	assert.Empty(t, cols)
	assert.Empty(t, values)
	cols, values = csr.Row(2)
	assert.Equal(t, []int32{0, 2}, cols)
	assert.Equal(t, []float32{2, 3}, values)
}

func TestIDF(t *testing.T) {
	m := NewCOO(2, 4)
	m.Append(0, 0, 1)
	m.Append(0, 1, 1)
	m.Append(0, 1, 1)
	m.Coalesce()
	userIDF := UserIDF(m)
	assert.Len(t, userIDF, 2)
	assert.InDelta(t, math32.Log(float32(4)/3), userIDF[0], 1e-6)
	assert.Zero(t, userIDF[1])
	itemIDF := ItemIDF(m)
	assert.Len(t, itemIDF, 4)
	assert.InDelta(t, math32.Log(2), itemIDF[0], 1e-6)
	assert.InDelta(t, float32(1e-3), itemIDF[1], 1e-6)
	assert.Zero(t, itemIDF[2])
	assert.Zero(t, itemIDF[3])
}
