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

	"github.com/bits-and-blooms/bitset"
	"github.com/juju/errors"
	"go.uber.org/zap"

	"github.com/jubaer145/lightfm/base/log"
)

// Labels attaches explicit feature identifiers to one entity. An entity may
// appear in several records; its entries coalesce by summation.
type Labels[E, F comparable] struct {
	Entity E
	Labels []F
}

// buildFeatures materializes a feature stream into a sparse feature matrix.
// The column space is divided into | identity | fitted features |: columns
// [0, entities.Len()) hold one identity feature per entity unless disabled,
// and fitted feature columns follow at that offset. With identity columns
// enabled every entity row has at least one non-zero entry even when the
// entity never appears in the stream.
func buildFeatures[E, F comparable](records iter.Seq[Labels[E, F]],
	entities *Index[E], features *Index[F], normalize, identity bool) (*COO, error) {
	numEntities := entities.Len()
	numCols := features.Len()
	var offset int32
	if identity {
		offset = numEntities
		numCols += numEntities
	}
	matrix := NewCOO(numEntities, numCols)
	if identity {
		for index := int32(0); index < numEntities; index++ {
			matrix.Append(index, index, 1)
		}
	}
	for record := range records {
		row, err := entities.Lookup(record.Entity)
		if err != nil {
			return nil, errors.Annotate(err, "entity")
		}
		value := float32(1)
		if normalize && len(record.Labels) > 0 {
			value = 1 / float32(len(record.Labels))
		}
		for _, label := range record.Labels {
			col, err := features.Lookup(label)
			if err != nil {
				return nil, errors.Annotate(err, "feature")
			}
			matrix.Append(row, offset+col, value)
		}
	}
	matrix.Coalesce()
	if !identity {
		warnEmptyRows(matrix)
	}
	return matrix, nil
}

// warnEmptyRows reports rows without any entry. An all-zero feature row
// carries no latent signal, which only happens when identity features are
// disabled.
func warnEmptyRows(matrix *COO) {
	numRows, _ := matrix.Shape()
	filled := bitset.New(uint(numRows))
	matrix.ForEach(func(_ int, row, _ int32, _ float32) {
		filled.Set(uint(row))
	})
	if empty := int(numRows) - int(filled.Count()); empty > 0 {
		log.Logger().Warn("feature matrix contains all-zero rows",
			zap.Int("empty_rows", empty))
	}
}
