/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: metrics_writer.go
Description: Utility for writing run reports to a metrics directory.
Handles timestamped, kind-specific subdirectory naming and writes JSON files for later analysis.
*/

package utils

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// WriteRunReport writes result as JSON under <dir>/<kind>/<timestamp>_<kind>_<runID>.json
func WriteRunReport(dir, kind, runID string, result interface{}) (string, error) {
	metricsDir := filepath.Join(dir, kind)
	if err := os.MkdirAll(metricsDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create metrics directory: %w", err)
	}

	// 2024-06-11_01-30-00_dataset_<run>.json
	timestamp := time.Now().Format("2006-01-02_15-04-05")
	filename := fmt.Sprintf("%s_%s_%s.json", timestamp, kind, runID)
	filePath := filepath.Join(metricsDir, filename)

	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}

	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write metrics file: %w", err)
	}

	return filePath, nil
}
