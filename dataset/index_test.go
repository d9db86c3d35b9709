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

	"github.com/stretchr/testify/assert"
)

func TestIndex(t *testing.T) {
	idx := NewIndex[string]()
	assert.Zero(t, idx.Len())
	idx.Add("a", "b", "c")
	assert.Equal(t, int32(3), idx.Len())
	assert.Equal(t, int32(0), idx.ToNumber("a"))
	assert.Equal(t, int32(1), idx.ToNumber("b"))
	assert.Equal(t, int32(2), idx.ToNumber("c"))
	assert.Equal(t, NotId, idx.ToNumber("d"))
	assert.Equal(t, "a", idx.ToName(0))
	assert.Equal(t, "c", idx.ToName(2))
	assert.True(t, idx.Has("b"))
	assert.False(t, idx.Has("d"))
	assert.Equal(t, []string{"a", "b", "c"}, idx.Names())
}

func TestIndexIdempotent(t *testing.T) {
	idx := NewIndex[string]()
	idx.Add("a", "b")
	idx.Add("b", "a", "c")
	idx.Add("a", "b", "c")
	assert.Equal(t, int32(3), idx.Len())
	// first registered keeps the smallest index
	assert.Equal(t, int32(0), idx.ToNumber("a"))
	assert.Equal(t, int32(1), idx.ToNumber("b"))
	assert.Equal(t, int32(2), idx.ToNumber("c"))
}

func TestIndexContiguity(t *testing.T) {
	idx := NewIndex[int]()
	for i := 0; i < 100; i++ {
		idx.Add(i * 7)
	}
	assert.Equal(t, int32(100), idx.Len())
	seen := make(map[int32]bool)
	for i := 0; i < 100; i++ {
		number := idx.ToNumber(i * 7)
		assert.GreaterOrEqual(t, number, int32(0))
		assert.Less(t, number, int32(100))
		assert.False(t, seen[number])
		seen[number] = true
	}
}

func TestIndexStability(t *testing.T) {
	idx := NewIndex[string]()
	idx.Add("a", "b")
	assert.Equal(t, int32(1), idx.ToNumber("b"))
	idx.Add("c", "d", "b")
	assert.Equal(t, int32(1), idx.ToNumber("b"))
	assert.Equal(t, int32(3), idx.ToNumber("d"))
}

func TestIndexLookup(t *testing.T) {
	idx := NewIndex[string]()
	idx.Add("a")
	number, err := idx.Lookup("a")
	assert.NoError(t, err)
	assert.Equal(t, int32(0), number)
	number, err = idx.Lookup("b")
	assert.Equal(t, NotId, number)
	assert.ErrorIs(t, err, ErrUnknownIdentifier)
	assert.True(t, IsUnknownIdentifier(err))
}

func TestIndexNil(t *testing.T) {
	var idx *Index[string]
	assert.Zero(t, idx.Len())
}
