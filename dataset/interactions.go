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
	"iter"

	"github.com/juju/errors"
)

// Feedback is a single user-item interaction record. A zero Weight means the
// record is unweighted and counts as 1.
type Feedback[U, I comparable] struct {
	User   U
	Item   I
	Weight float32
}

type coordinate struct {
	row, col int32
}

// buildInteractions materializes an interaction stream into an interaction
// matrix and a parallel weight matrix, both shaped by the current registry
// sizes. The stream is consumed in a single pass. Any record referencing an
// unregistered user or item aborts the build and no matrix is returned.
func buildInteractions[U, I comparable](records iter.Seq[Feedback[U, I]],
	users *Index[U], items *Index[I], aggregation string) (*COO, *COO, error) {
	interactions := NewCOO(users.Len(), items.Len())
	weights := NewCOO(users.Len(), items.Len())
	// Latest-wins aggregation overwrites in place, so remember where each
	// coordinate landed.
	var positions map[coordinate]int
	if aggregation == AggregateLatest {
		positions = make(map[coordinate]int)
	}
	for record := range records {
		userIndex, err := users.Lookup(record.User)
		if err != nil {
			return nil, nil, errors.Annotate(err, "user")
		}
		itemIndex, err := items.Lookup(record.Item)
		if err != nil {
			return nil, nil, errors.Annotate(err, "item")
		}
		weight := record.Weight
		if weight == 0 {
			weight = 1
		}
		interactions.Append(userIndex, itemIndex, 1)
		if positions != nil {
			if pos, exist := positions[coordinate{userIndex, itemIndex}]; exist {
				weights.values[pos] = weight
			} else {
				positions[coordinate{userIndex, itemIndex}] = weights.NNZ()
				weights.Append(userIndex, itemIndex, weight)
			}
		} else {
			weights.Append(userIndex, itemIndex, weight)
		}
	}
	interactions.Coalesce()
	weights.Coalesce()
	return interactions, weights, nil
}
