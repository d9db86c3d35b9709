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

// Package datautil turns files into the record streams consumed by the
// dataset package: CSV readers for interaction and feature files, and a
// loader for the MovieLens 100K sample dataset.
package datautil

import (
	"archive/zip"
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/juju/errors"
	"github.com/schollz/progressbar/v3"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/stat"
	"modernc.org/strutil"

	"github.com/jubaer145/lightfm/base/log"
	"github.com/jubaer145/lightfm/common/util"
	"github.com/jubaer145/lightfm/dataset"
)

var (
	tempDir    string
	datasetDir string
)

func init() {
	usr, err := user.Current()
	if err != nil {
		log.Logger().Fatal("failed to get user directory", zap.Error(err))
	}
	datasetDir = filepath.Join(usr.HomeDir, ".lightfm", "dataset")
	tempDir = filepath.Join(usr.HomeDir, ".lightfm", "temp")
}

// ReadFeedback reads interaction records from a CSV file with rows of the
// form `user,item[,weight]`. The weight column is optional per row.
func ReadFeedback(path string) ([]dataset.Feedback[string, string], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()
	reader := csv.NewReader(bufio.NewReader(f))
	reader.FieldsPerRecord = -1
	var feedback []dataset.Feedback[string, string]
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Trace(err)
		}
		if len(row) < 2 {
			return nil, errors.Errorf("expected at least 2 fields, got %d", len(row))
		}
		record := dataset.Feedback[string, string]{User: row[0], Item: row[1]}
		if len(row) > 2 {
			if record.Weight, err = util.ParseFloat[float32](row[2]); err != nil {
				return nil, errors.Trace(err)
			}
		}
		feedback = append(feedback, record)
	}
	return feedback, nil
}

// ReadLabels reads feature records from a CSV file with rows of the form
// `entity,feature`. Rows of the same entity are grouped in first-seen order.
// Repeated feature strings are interned through a shared pool.
func ReadLabels(path string) ([]dataset.Labels[string, string], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()
	reader := csv.NewReader(bufio.NewReader(f))
	pool := strutil.NewPool()
	var records []dataset.Labels[string, string]
	positions := make(map[string]int)
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		} else if err != nil {
			return nil, errors.Trace(err)
		}
		if len(row) != 2 {
			return nil, errors.Errorf("expected 2 fields, got %d", len(row))
		}
		entity, label := row[0], pool.Align(row[1])
		if pos, exist := positions[entity]; exist {
			records[pos].Labels = append(records[pos].Labels, label)
		} else {
			positions[entity] = len(records)
			records = append(records, dataset.Labels[string, string]{
				Entity: entity,
				Labels: []string{label},
			})
		}
	}
	return records, nil
}

// LoadMovieLens100K downloads the MovieLens 100K dataset if needed and
// returns its interactions (ratings as weights) and item genre features.
func LoadMovieLens100K() ([]dataset.Feedback[string, string], []dataset.Labels[string, string], error) {
	path, err := DownloadAndUnzip("ml-100k")
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	feedback, err := loadMovieLensRatings(filepath.Join(path, "u.data"))
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	genres, err := loadMovieLensGenres(filepath.Join(path, "u.genre"))
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	labels, err := loadMovieLensItems(filepath.Join(path, "u.item"), genres)
	if err != nil {
		return nil, nil, errors.Trace(err)
	}
	return feedback, labels, nil
}

// loadMovieLensRatings parses u.data: tab separated user, item, rating,
// timestamp.
func loadMovieLensRatings(path string) ([]dataset.Feedback[string, string], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()
	var feedback []dataset.Feedback[string, string]
	var ratings []float64
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "\t")
		if len(fields) < 3 {
			return nil, errors.Errorf("wrong format: %v", scanner.Text())
		}
		rating, err := util.ParseFloat[float32](fields[2])
		if err != nil {
			return nil, errors.Trace(err)
		}
		feedback = append(feedback, dataset.Feedback[string, string]{
			User:   fields[0],
			Item:   fields[1],
			Weight: rating,
		})
		ratings = append(ratings, float64(rating))
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Trace(err)
	}
	mean, std := stat.MeanStdDev(ratings, nil)
	log.Logger().Info("loaded ratings",
		zap.Int("count", len(feedback)),
		zap.Float64("mean", mean),
		zap.Float64("std", std))
	return feedback, nil
}

// loadMovieLensGenres parses u.genre: `name|id` per line, ordered by the
// genre flag position used in u.item.
func loadMovieLensGenres(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()
	var genres []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			continue
		}
		fields := strings.Split(line, "|")
		genres = append(genres, fields[0])
	}
	return genres, scanner.Err()
}

// loadMovieLensItems parses u.item: pipe separated item fields followed by
// one 0/1 flag per genre.
func loadMovieLensItems(path string, genres []string) ([]dataset.Labels[string, string], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Trace(err)
	}
	defer f.Close()
	var records []dataset.Labels[string, string]
	used := mapset.NewSet[string]()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		fields := strings.Split(scanner.Text(), "|")
		if len(fields) < 5+len(genres) {
			return nil, errors.Errorf("wrong format: %v", scanner.Text())
		}
		record := dataset.Labels[string, string]{Entity: fields[0]}
		for i, flag := range fields[len(fields)-len(genres):] {
			if flag == "1" {
				record.Labels = append(record.Labels, genres[i])
				used.Add(genres[i])
			}
		}
		records = append(records, record)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Trace(err)
	}
	log.Logger().Info("loaded items",
		zap.Int("count", len(records)),
		zap.Int("genres", used.Cardinality()))
	return records, nil
}

// DownloadAndUnzip fetches a GroupLens dataset archive unless it is cached
// already.
func DownloadAndUnzip(name string) (string, error) {
	url := fmt.Sprintf("https://files.grouplens.org/datasets/movielens/%s.zip", name)
	path := filepath.Join(datasetDir, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		zipFileName, err := downloadFromUrl(url, tempDir)
		if err != nil {
			return "", errors.Trace(err)
		}
		if _, err := unzip(zipFileName, datasetDir); err != nil {
			return "", errors.Trace(err)
		}
	}
	return path, nil
}

// downloadFromUrl downloads file from URL.
func downloadFromUrl(src, dst string) (string, error) {
	log.Logger().Info("Download dataset", zap.String("source", src), zap.String("destination", dst))
	// Extract file name
	tokens := strings.Split(src, "/")
	fileName := filepath.Join(dst, tokens[len(tokens)-1])
	// Create file
	if err := os.MkdirAll(filepath.Dir(fileName), os.ModePerm); err != nil {
		return fileName, errors.Trace(err)
	}
	output, err := os.Create(fileName)
	if err != nil {
		log.Logger().Error("failed to create file", zap.Error(err), zap.String("filename", fileName))
		return fileName, errors.Trace(err)
	}
	defer output.Close()
	// Download file
	response, err := http.Get(src)
	if err != nil {
		log.Logger().Error("failed to download", zap.Error(err), zap.String("source", src))
		return fileName, errors.Trace(err)
	}
	defer response.Body.Close()
	// Save file
	bar := progressbar.DefaultBytes(response.ContentLength, "downloading")
	_, err = io.Copy(io.MultiWriter(output, bar), response.Body)
	if err != nil {
		log.Logger().Error("failed to download", zap.Error(err), zap.String("source", src))
		return fileName, errors.Trace(err)
	}
	return fileName, nil
}

// unzip zip file.
func unzip(src, dst string) ([]string, error) {
	var fileNames []string
	// Open zip file
	r, err := zip.OpenReader(src)
	if err != nil {
		return fileNames, err
	}
	defer r.Close()
	// Extract files
	for _, f := range r.File {
		// Open file
		rc, err := f.Open()
		if err != nil {
			return fileNames, err
		}
		// Store filename/path for returning and using later on
		filePath := filepath.Join(dst, f.Name)
		// Check for ZipSlip. More Info: http://bit.ly/2MsjAWE
		if !strings.HasPrefix(filePath, filepath.Clean(dst)+string(os.PathSeparator)) {
			return fileNames, fmt.Errorf("%s: illegal file path", filePath)
		}
		// Add filename
		fileNames = append(fileNames, filePath)
		if f.FileInfo().IsDir() {
			// Create folder
			if err = os.MkdirAll(filePath, os.ModePerm); err != nil {
				return fileNames, err
			}
		} else {
			// Create all folders
			if err = os.MkdirAll(filepath.Dir(filePath), os.ModePerm); err != nil {
				return fileNames, err
			}
			// Create file
			outFile, err := os.OpenFile(filePath, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, f.Mode())
			if err != nil {
				return fileNames, err
			}
			// Save file
			_, err = io.Copy(outFile, rc)
			if err != nil {
				return nil, err
			}
			// Close the file without defer to close before next iteration of loop
			err = outFile.Close()
			if err != nil {
				return nil, err
			}
		}
		// Close file
		err = rc.Close()
		if err != nil {
			return nil, err
		}
	}
	return fileNames, nil
}
