/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: manifest.go
Description: TOML manifest describing how a dataset was produced, written next to it.
*/

package dataset

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Manifest records the parameters and outcome of a dataset run
type Manifest struct {
	Format        string    `toml:"format"`
	RunID         string    `toml:"run_id"`
	Seed          int64     `toml:"seed"`
	Created       time.Time `toml:"created"`
	Terminals     []string  `toml:"terminals"`
	Nonterminals  []string  `toml:"nonterminals"`
	Rules         int       `toml:"rules"`
	Probabilistic bool      `toml:"probabilistic"`
	TerminalBias  float64   `toml:"terminal_bias"`
	Attempts      int       `toml:"attempts"`
	Grammar       string    `toml:"grammar"`
	Sink          string    `toml:"sink"`
	Options       Options   `toml:"documents"`
	Written       int       `toml:"written"`
}

// ManifestFormat marks cfgforge manifests
const ManifestFormat = "CFGFORGE"

// WriteManifest encodes m to path
func WriteManifest(path string, m *Manifest) error {
	if m.Format == "" {
		m.Format = ManifestFormat
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(m); err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// ReadManifest decodes the manifest at path
func ReadManifest(path string) (*Manifest, error) {
	var m Manifest
	if _, err := toml.DecodeFile(path, &m); err != nil {
		return nil, fmt.Errorf("%q: decoding manifest: %w", path, err)
	}
	if m.Format != ManifestFormat {
		return nil, fmt.Errorf("%q: file does not have a 'format = %q' entry", path, ManifestFormat)
	}
	return &m, nil
}
