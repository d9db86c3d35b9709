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
	"github.com/juju/errors"
	"github.com/samber/lo"
)

// ConfigName is the name of a build option.
type ConfigName string

// Recognized build options.
const (
	// WeightAggregation selects the accumulation law for duplicate entries in
	// the weight matrix: AggregateSum or AggregateLatest. Defaults to
	// AggregateSum.
	WeightAggregation ConfigName = "weight_aggregation"
	// NormalizeFeatures scales explicit feature entries to 1/N so a row's
	// feature weights sum to one regardless of feature count. Defaults to false.
	NormalizeFeatures ConfigName = "normalize_features"
	// IncludeIdentityFeatures reserves one identity column per entity ahead of
	// the fitted feature columns. Defaults to true.
	IncludeIdentityFeatures ConfigName = "include_identity_features"
)

// Weight aggregation laws. Implicit feedback counts want AggregateSum while
// explicit ratings usually want AggregateLatest.
const (
	AggregateSum    = "sum"
	AggregateLatest = "latest"
)

// Config holds build options. Given by:
//
//	dataset.Config{
//	    dataset.WeightAggregation: dataset.AggregateLatest,
//	    dataset.NormalizeFeatures: true,
//	}
//
// A nil Config selects all defaults.
type Config map[ConfigName]interface{}

// GetString gets a string option.
func (config Config) GetString(name ConfigName, _default string) string {
	if val, exist := config[name]; exist {
		if str, ok := val.(string); ok {
			return str
		}
	}
	return _default
}

// GetBool gets a boolean option.
func (config Config) GetBool(name ConfigName, _default bool) bool {
	if val, exist := config[name]; exist {
		if b, ok := val.(bool); ok {
			return b
		}
	}
	return _default
}

// validate rejects unrecognized options and malformed values. It runs before
// any record is consumed so a failed build never reads its stream.
func (config Config) validate(allowed ...ConfigName) error {
	for name, value := range config {
		if !lo.Contains(allowed, name) {
			return errors.Annotatef(ErrInvalidConfig, "unrecognized option %q", name)
		}
		switch name {
		case WeightAggregation:
			str, ok := value.(string)
			if !ok {
				return errors.Annotatef(ErrInvalidConfig, "%q expects a string", name)
			}
			if str != AggregateSum && str != AggregateLatest {
				return errors.Annotatef(ErrInvalidConfig, "%q expects %q or %q, got %q",
					name, AggregateSum, AggregateLatest, str)
			}
		case NormalizeFeatures, IncludeIdentityFeatures:
			if _, ok := value.(bool); !ok {
				return errors.Annotatef(ErrInvalidConfig, "%q expects a boolean", name)
			}
		}
	}
	return nil
}
