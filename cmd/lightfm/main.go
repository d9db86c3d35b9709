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
package main

import (
	"fmt"
	"os"
	"slices"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jubaer145/lightfm/base/log"
	"github.com/jubaer145/lightfm/common/datautil"
	"github.com/jubaer145/lightfm/dataset"
)

var rootCommand = &cobra.Command{
	Use:   "lightfm",
	Short: "Encode raw interaction and feature records into sparse training matrices",
	Run: func(cmd *cobra.Command, args []string) {
		debug, _ := cmd.PersistentFlags().GetBool("debug")
		log.SetLogger(cmd.PersistentFlags(), debug)

		// load records
		var (
			feedback []dataset.Feedback[string, string]
			labels   []dataset.Labels[string, string]
			err      error
		)
		if movielens, _ := cmd.PersistentFlags().GetBool("movielens"); movielens {
			feedback, labels, err = datautil.LoadMovieLens100K()
			if err != nil {
				log.Logger().Fatal("failed to load MovieLens 100K", zap.Error(err))
			}
		} else {
			interactionsPath, _ := cmd.PersistentFlags().GetString("interactions")
			if interactionsPath == "" {
				log.Logger().Fatal("either --interactions or --movielens is required")
			}
			feedback, err = datautil.ReadFeedback(interactionsPath)
			if err != nil {
				log.Logger().Fatal("failed to read interactions", zap.Error(err))
			}
			if labelsPath, _ := cmd.PersistentFlags().GetString("item-features"); labelsPath != "" {
				labels, err = datautil.ReadLabels(labelsPath)
				if err != nil {
					log.Logger().Fatal("failed to read item features", zap.Error(err))
				}
			}
		}

		// discover the identifier universe in first-seen order
		var users, items, features []string
		for _, record := range feedback {
			users = append(users, record.User)
			items = append(items, record.Item)
		}
		for _, record := range labels {
			items = append(items, record.Entity)
			features = append(features, record.Labels...)
		}
		d := dataset.New[string, string, string]()
		d.Fit(lo.Uniq(users), lo.Uniq(items), nil, lo.Uniq(features))

		// build matrices
		aggregation, _ := cmd.PersistentFlags().GetString("weight-aggregation")
		interactions, weights, err := d.BuildInteractions(slices.Values(feedback),
			dataset.Config{dataset.WeightAggregation: aggregation})
		if err != nil {
			log.Logger().Fatal("failed to build interactions", zap.Error(err))
		}
		normalize, _ := cmd.PersistentFlags().GetBool("normalize-features")
		noIdentity, _ := cmd.PersistentFlags().GetBool("no-identity")
		itemFeatures, err := d.BuildItemFeatures(slices.Values(labels), dataset.Config{
			dataset.NormalizeFeatures:       normalize,
			dataset.IncludeIdentityFeatures: !noIdentity,
		})
		if err != nil {
			log.Logger().Fatal("failed to build item features", zap.Error(err))
		}

		// print report
		table := tablewriter.NewTable(os.Stdout)
		table.Header("Matrix", "Rows", "Cols", "NNZ", "Density")
		appendRow(table, "interactions", interactions)
		appendRow(table, "weights", weights)
		appendRow(table, "item features", itemFeatures)
		if err := table.Render(); err != nil {
			log.Logger().Fatal("failed to render table", zap.Error(err))
		}
	},
}

func appendRow(table *tablewriter.Table, name string, matrix *dataset.COO) {
	numRows, numCols := matrix.Shape()
	density := float64(matrix.NNZ()) / float64(numRows) / float64(numCols)
	_ = table.Append(name,
		fmt.Sprint(numRows),
		fmt.Sprint(numCols),
		fmt.Sprint(matrix.NNZ()),
		fmt.Sprintf("%.6f", density))
}

func init() {
	rootCommand.PersistentFlags().String("interactions", "", "Path of the interactions CSV file (user,item[,weight]).")
	rootCommand.PersistentFlags().String("item-features", "", "Path of the item features CSV file (item,feature).")
	rootCommand.PersistentFlags().Bool("movielens", false, "Use the built-in MovieLens 100K dataset.")
	rootCommand.PersistentFlags().String("weight-aggregation", dataset.AggregateSum, "Weight aggregation law: sum or latest.")
	rootCommand.PersistentFlags().Bool("normalize-features", false, "Scale feature rows to sum to one.")
	rootCommand.PersistentFlags().Bool("no-identity", false, "Drop per-entity identity feature columns.")
	rootCommand.PersistentFlags().Bool("debug", false, "Debug log mode.")
	log.AddFlags(rootCommand.PersistentFlags())
}

func main() {
	if err := rootCommand.Execute(); err != nil {
		log.Logger().Fatal("failed to execute command", zap.Error(err))
	}
}
