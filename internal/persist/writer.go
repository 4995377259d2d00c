// Package persist writes assembled datasets to disk and records run history.
package persist

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"mandi/internal/config"
	"mandi/internal/models"
	"mandi/pkg/runmeta"
)

// ErrNilDataset indicates a write was attempted before assembly.
var ErrNilDataset = errors.New("dataset is nil")

// FileDataset is the on-disk JSON schema. The key set and naming mirror
// the daily crop_prices files consumed downstream.
type FileDataset struct {
	Timestamp              string                        `json:"timestamp"`
	ExecutionTimeSeconds   float64                       `json:"execution_time_seconds"`
	ExecutionTimeFormatted string                        `json:"execution_time_formatted"`
	Crops                  map[string]*models.CropResult `json:"crops"`
}

// Writer persists datasets as JSON files.
type Writer struct {
	output config.OutputConfig
}

// NewWriter creates a writer with the given output settings.
func NewWriter(output config.OutputConfig) *Writer {
	return &Writer{output: output}
}

// Write serializes the dataset to the given path (or the dated default
// path when empty), creating directories and an optional backup of an
// existing file. It fills the dataset's content hash and returns the path
// written. The hash covers the crop data only, never the timestamp or
// duration, so runs on different days with identical prices hash
// identically and the history store can flag unchanged days.
func (w *Writer) Write(dataset *models.Dataset, path string) (string, error) {
	if dataset == nil || dataset.Meta == nil {
		return "", ErrNilDataset
	}

	if path == "" {
		path = w.output.DatasetPath(dataset.Meta.Timestamp)
	}

	cropsPayload, err := json.Marshal(dataset.Crops)
	if err != nil {
		return "", fmt.Errorf("failed to hash crop data: %w", err)
	}

	dataset.Meta.Hash = runmeta.CalculateHash(cropsPayload)

	payload, err := w.encode(dataset)
	if err != nil {
		return "", err
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if w.output.CreateBackup {
		if _, statErr := os.Stat(path); statErr == nil {
			if renameErr := os.Rename(path, path+".bak"); renameErr != nil {
				return "", fmt.Errorf("failed to create backup: %w", renameErr)
			}
		}
	}

	if err := os.WriteFile(path, payload, 0644); err != nil {
		return "", fmt.Errorf("failed to write dataset: %w", err)
	}

	return path, nil
}

// encode marshals the file schema. HTML escaping is disabled so Marathi
// text stays readable in the output files.
func (w *Writer) encode(dataset *models.Dataset) ([]byte, error) {
	file := &FileDataset{
		Timestamp:              dataset.Meta.Timestamp.Format(time.RFC3339),
		ExecutionTimeSeconds:   dataset.Meta.Seconds(),
		ExecutionTimeFormatted: dataset.Meta.FormattedDuration(),
		Crops:                  dataset.Crops,
	}

	var buf bytes.Buffer

	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)

	if w.output.PrettyPrint {
		enc.SetIndent("", "  ")
	}

	if err := enc.Encode(file); err != nil {
		return nil, fmt.Errorf("failed to marshal dataset: %w", err)
	}

	return buf.Bytes(), nil
}

// ReadDataset loads a previously written dataset file.
func ReadDataset(path string) (*FileDataset, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read dataset file: %w", err)
	}

	var file FileDataset
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse dataset file: %w", err)
	}

	return &file, nil
}
