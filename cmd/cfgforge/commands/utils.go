/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the cfgforge commands. Provides configuration loading,
logging setup, seeding and grammar file loading used across all command implementations.
*/

package commands

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/spf13/viper"

	"github.com/kleascm/cfgforge/pkg/config"
	"github.com/kleascm/cfgforge/pkg/dataset"
	"github.com/kleascm/cfgforge/pkg/grammar"
	"github.com/kleascm/cfgforge/pkg/logging"
)

// LoadConfig loads configuration from the config file, environment and bound flags
func LoadConfig() (*config.Config, error) {
	cfg, err := config.Load(viper.GetViper())
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	return cfg, nil
}

// SetupLogging creates the logger described by cfg
func SetupLogging(cfg *config.Config) (*logging.Logger, error) {
	logger, err := logging.NewLogger(&cfg.Logging)
	if err != nil {
		return nil, fmt.Errorf("failed to setup logging: %w", err)
	}
	return logger, nil
}

// setup is the common prologue of every command
func setup() (*config.Config, *logging.Logger, error) {
	cfg, err := LoadConfig()
	if err != nil {
		return nil, nil, err
	}
	logger, err := SetupLogging(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// newSource seeds a random source; seed 0 uses the clock
func newSource(seed int64) (*rand.Rand, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}

// loadGrammar reads the grammar file named by the first argument
func loadGrammar(args []string) (*grammar.Grammar, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("grammar file is required")
	}
	return dataset.LoadGrammar(args[0])
}
