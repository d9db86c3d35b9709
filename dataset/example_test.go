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

package dataset_test

import (
	"fmt"
	"slices"

	"github.com/jubaer145/lightfm/dataset"
)

func Example() {
	d := dataset.New[string, string, string]()
	d.Fit(
		[]string{"alice", "bob"},
		[]string{"matrix", "inception", "up"},
		nil,
		[]string{"sci-fi", "animation"},
	)

	interactions, _, err := d.BuildInteractions(slices.Values([]dataset.Feedback[string, string]{
		{User: "alice", Item: "matrix"},
		{User: "alice", Item: "matrix"},
		{User: "bob", Item: "up", Weight: 4.5},
	}), nil)
	if err != nil {
		panic(err)
	}

	features, err := d.BuildItemFeatures(slices.Values([]dataset.Labels[string, string]{
		{Entity: "matrix", Labels: []string{"sci-fi"}},
		{Entity: "up", Labels: []string{"animation"}},
	}), nil)
	if err != nil {
		panic(err)
	}

	numUsers, numItems := interactions.Shape()
	numRows, numCols := features.Shape()
	fmt.Println("interactions:", numUsers, "x", numItems, "nnz:", interactions.NNZ())
	fmt.Println("item features:", numRows, "x", numCols, "nnz:", features.NNZ())
	// Output:
	// interactions: 2 x 3 nnz: 2
	// item features: 3 x 5 nnz: 5
}
