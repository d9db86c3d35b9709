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

// Package dataset converts raw interaction and feature records into the
// sparse matrix inputs expected by latent factor recommendation models: an
// interaction matrix, a parallel weight matrix and optional user/item feature
// matrices. Identifiers are discovered incrementally through Fit passes, then
// Build passes materialize matrices whose shapes snapshot the fitted universe.
package dataset

import (
	"iter"

	"github.com/juju/errors"
)

// Dataset assigns stable dense indices to users, items, user features and
// item features, and builds sparse matrices over them. U, I and F are the
// caller's user, item and feature identifier types; the four namespaces keep
// disjoint index spaces even when identifier values overlap.
//
// A Dataset is driven through one or more Fit/FitPartial passes before any
// Build call. Builds read the registries but never grow them, so a record
// referencing an unfitted identifier fails the whole build. Concurrent use of
// one Dataset must be serialized by the caller.
type Dataset[U, I, F comparable] struct {
	userIndex        *Index[U]
	itemIndex        *Index[I]
	userFeatureIndex *Index[F]
	itemFeatureIndex *Index[F]
}

// New creates an empty Dataset.
func New[U, I, F comparable]() *Dataset[U, I, F] {
	return &Dataset[U, I, F]{
		userIndex:        NewIndex[U](),
		itemIndex:        NewIndex[I](),
		userFeatureIndex: NewIndex[F](),
		itemFeatureIndex: NewIndex[F](),
	}
}

// Fit registers identifiers in their namespaces. Purely additive: identifiers
// already fitted keep their indices and nothing is ever replaced. Nil slices
// are allowed.
func (d *Dataset[U, I, F]) Fit(users []U, items []I, userFeatures, itemFeatures []F) {
	d.userIndex.Add(users...)
	d.itemIndex.Add(items...)
	d.userFeatureIndex.Add(userFeatures...)
	d.itemFeatureIndex.Add(itemFeatures...)
}

// FitPartial is identical to Fit. It exists so call sites can spell out that
// an update is incremental.
func (d *Dataset[U, I, F]) FitPartial(users []U, items []I, userFeatures, itemFeatures []F) {
	d.Fit(users, items, userFeatures, itemFeatures)
}

// BuildInteractions consumes an interaction stream in a single pass and
// returns the interaction matrix and the parallel weight matrix, both shaped
// (CountUsers, CountItems). Interaction entries count occurrences; weight
// entries follow the WeightAggregation option. The only recognized option is
// WeightAggregation.
func (d *Dataset[U, I, F]) BuildInteractions(records iter.Seq[Feedback[U, I]], config Config) (*COO, *COO, error) {
	if err := config.validate(WeightAggregation); err != nil {
		return nil, nil, errors.Trace(err)
	}
	return buildInteractions(records, d.userIndex, d.itemIndex,
		config.GetString(WeightAggregation, AggregateSum))
}

// BuildUserFeatures consumes a user feature stream and returns a feature
// matrix shaped (CountUsers, CountUsers+CountUserFeatures) by default.
// Recognized options are NormalizeFeatures and IncludeIdentityFeatures.
func (d *Dataset[U, I, F]) BuildUserFeatures(records iter.Seq[Labels[U, F]], config Config) (*COO, error) {
	if err := config.validate(NormalizeFeatures, IncludeIdentityFeatures); err != nil {
		return nil, errors.Trace(err)
	}
	return buildFeatures(records, d.userIndex, d.userFeatureIndex,
		config.GetBool(NormalizeFeatures, false),
		config.GetBool(IncludeIdentityFeatures, true))
}

// BuildItemFeatures consumes an item feature stream and returns a feature
// matrix shaped (CountItems, CountItems+CountItemFeatures) by default.
// Recognized options are NormalizeFeatures and IncludeIdentityFeatures.
func (d *Dataset[U, I, F]) BuildItemFeatures(records iter.Seq[Labels[I, F]], config Config) (*COO, error) {
	if err := config.validate(NormalizeFeatures, IncludeIdentityFeatures); err != nil {
		return nil, errors.Trace(err)
	}
	return buildFeatures(records, d.itemIndex, d.itemFeatureIndex,
		config.GetBool(NormalizeFeatures, false),
		config.GetBool(IncludeIdentityFeatures, true))
}

// InteractionsShape returns the shape a BuildInteractions call would produce
// right now.
func (d *Dataset[U, I, F]) InteractionsShape() (int32, int32) {
	return d.userIndex.Len(), d.itemIndex.Len()
}

// UserFeaturesShape returns the default shape of the user feature matrix,
// identity columns included.
func (d *Dataset[U, I, F]) UserFeaturesShape() (int32, int32) {
	return d.userIndex.Len(), d.userIndex.Len() + d.userFeatureIndex.Len()
}

// ItemFeaturesShape returns the default shape of the item feature matrix,
// identity columns included.
func (d *Dataset[U, I, F]) ItemFeaturesShape() (int32, int32) {
	return d.itemIndex.Len(), d.itemIndex.Len() + d.itemFeatureIndex.Len()
}

// CountUsers returns the number of fitted users.
func (d *Dataset[U, I, F]) CountUsers() int {
	return int(d.userIndex.Len())
}

// CountItems returns the number of fitted items.
func (d *Dataset[U, I, F]) CountItems() int {
	return int(d.itemIndex.Len())
}

// UserIndex returns the user registry. Callers must treat it as read-only.
func (d *Dataset[U, I, F]) UserIndex() *Index[U] {
	return d.userIndex
}

// ItemIndex returns the item registry. Callers must treat it as read-only.
func (d *Dataset[U, I, F]) ItemIndex() *Index[I] {
	return d.itemIndex
}

// UserFeatureIndex returns the user feature registry.
func (d *Dataset[U, I, F]) UserFeatureIndex() *Index[F] {
	return d.userFeatureIndex
}

// ItemFeatureIndex returns the item feature registry.
func (d *Dataset[U, I, F]) ItemFeatureIndex() *Index[F] {
	return d.itemFeatureIndex
}
