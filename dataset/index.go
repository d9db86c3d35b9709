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

import "github.com/juju/errors"

// NotId represents an identifier that doesn't exist.
const NotId = int32(-1)

// Index manages the map between sparse identifiers and dense indices. A sparse
// identifier is a raw user ID, item ID or feature label supplied by the caller.
// The dense index is the internal matrix coordinate optimized for faster
// parameter access and less memory usage. Indices are assigned in first-seen
// order starting at zero and are never reassigned or reordered.
type Index[T comparable] struct {
	numbers map[T]int32 // sparse identifier -> dense index
	names   []T         // dense index -> sparse identifier
}

// NewIndex creates an empty Index.
func NewIndex[T comparable]() *Index[T] {
	idx := new(Index[T])
	idx.numbers = make(map[T]int32)
	idx.names = make([]T, 0)
	return idx
}

// Len returns the number of indexed identifiers.
func (idx *Index[T]) Len() int32 {
	if idx == nil {
		return 0
	}
	return int32(len(idx.names))
}

// Add adds identifiers to the index. Identifiers already present are no-ops,
// so repeated calls with overlapping input are safe.
func (idx *Index[T]) Add(ids ...T) {
	for _, id := range ids {
		if _, exist := idx.numbers[id]; !exist {
			idx.numbers[id] = int32(len(idx.names))
			idx.names = append(idx.names, id)
		}
	}
}

// ToNumber converts a sparse identifier to a dense index. NotId is returned
// for identifiers never added to the index.
func (idx *Index[T]) ToNumber(id T) int32 {
	if number, exist := idx.numbers[id]; exist {
		return number
	}
	return NotId
}

// Lookup converts a sparse identifier to a dense index. Unlike ToNumber, an
// ErrUnknownIdentifier error is returned for unregistered identifiers.
func (idx *Index[T]) Lookup(id T) (int32, error) {
	if number, exist := idx.numbers[id]; exist {
		return number, nil
	}
	return NotId, errors.Annotatef(ErrUnknownIdentifier, "%v", id)
}

// ToName converts a dense index to a sparse identifier.
func (idx *Index[T]) ToName(number int32) T {
	return idx.names[number]
}

// Has reports whether an identifier is present in the index.
func (idx *Index[T]) Has(id T) bool {
	_, exist := idx.numbers[id]
	return exist
}

// Names returns all identifiers in dense index order.
func (idx *Index[T]) Names() []T {
	return idx.names
}
