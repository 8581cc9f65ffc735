/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: logger_test.go
Description: Tests for the logging system. Tests logger creation, formats, file output,
retention and the grammar run helpers.
*/

package logging_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/cfgforge/pkg/logging"
)

func newBufferedLogger(t *testing.T, format logging.LogFormat) (*logging.Logger, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:   logging.LogLevelDebug,
		Format:  format,
		Console: &buf,
	})
	require.NoError(t, err)
	t.Cleanup(func() { logger.Close() })
	return logger, &buf
}

// TestLoggerCreation tests logger creation with default and custom configurations
func TestLoggerCreation(t *testing.T) {
	logger, err := logging.NewLogger(nil)
	require.NoError(t, err)
	assert.NotNil(t, logger)
	assert.Empty(t, logger.FilePath())
	require.NoError(t, logger.Close())

	dir := t.TempDir()
	logger, err = logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevelDebug,
		Format:    logging.LogFormatJSON,
		OutputDir: dir,
		MaxFiles:  5,
		Caller:    true,
		Console:   &bytes.Buffer{},
	})
	require.NoError(t, err)
	defer logger.Close()

	assert.Equal(t, dir, filepath.Dir(logger.FilePath()))
	_, err = os.Stat(logger.FilePath())
	assert.NoError(t, err)
}

// TestInvalidConfig tests config validation
func TestInvalidConfig(t *testing.T) {
	tests := []logging.LoggerConfig{
		{Level: logging.LogLevelInfo, Format: "xml"},
		{Level: "loud", Format: logging.LogFormatText},
		{Level: logging.LogLevelInfo, Format: logging.LogFormatText, OutputDir: "logs", MaxFiles: 0},
	}
	for _, cfg := range tests {
		_, err := logging.NewLogger(&cfg)
		assert.Error(t, err)
	}
}

// TestLogFormats tests every output format
func TestLogFormats(t *testing.T) {
	for _, format := range []logging.LogFormat{logging.LogFormatText, logging.LogFormatJSON, logging.LogFormatCustom} {
		t.Run(string(format), func(t *testing.T) {
			logger, buf := newBufferedLogger(t, format)
			logger.Info("Format check", map[string]interface{}{"key": "value"})
			assert.Contains(t, buf.String(), "Format check")
			assert.Contains(t, buf.String(), "value")
		})
	}
}

// TestLogLevels tests that entries below the level are dropped
func TestLogLevels(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:   logging.LogLevelWarning,
		Format:  logging.LogFormatText,
		Console: &buf,
	})
	require.NoError(t, err)
	defer logger.Close()

	logger.Debug("Debug message", nil)
	logger.Info("Info message", nil)
	logger.Warning("Warning message", nil)
	logger.Error("Error message", nil)

	out := buf.String()
	assert.NotContains(t, out, "Debug message")
	assert.NotContains(t, out, "Info message")
	assert.Contains(t, out, "Warning message")
	assert.Contains(t, out, "Error message")
}

// TestGrammarHelpers tests the structured helpers for grammar runs
func TestGrammarHelpers(t *testing.T) {
	logger, buf := newBufferedLogger(t, logging.LogFormatJSON)

	logger.LogGrammarAttempt("run-1", 1, errors.New("not transient"))
	logger.LogGrammarAccepted("run-1", 2, 21, true)
	logger.LogSentence("run-1", "a b c")
	logger.LogDocument("run-1", 1, 5, "documents/document_1.txt")
	logger.LogStats("run-1", 5, 25, 0)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)

	var accepted map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &accepted))
	assert.Equal(t, "Grammar accepted", accepted["msg"])
	assert.Equal(t, "run-1", accepted["run_id"])
	assert.Equal(t, float64(21), accepted["productions"])

	var rejected map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rejected))
	assert.Equal(t, "not transient", rejected["error"])
}

// TestCustomFormatterPrefixes tests the event prefixes of the custom format
func TestCustomFormatterPrefixes(t *testing.T) {
	logger, buf := newBufferedLogger(t, logging.LogFormatCustom)

	logger.LogGrammarAccepted("0123456789abcdef", 1, 3, false)
	logger.LogDocument("0123456789abcdef", 1, 1, "x")
	logger.LogStats("0123456789abcdef", 1, 1, 0)

	out := buf.String()
	assert.Contains(t, out, "[GRAMMAR]")
	assert.Contains(t, out, "[DATASET]")
	assert.Contains(t, out, "[STATS]")
	assert.Contains(t, out, "run_id=01234567 ")
	assert.NotContains(t, out, "\033[", "colors are off")
}

// TestLogRetention tests that Close prunes old log files
func TestLogRetention(t *testing.T) {
	dir := t.TempDir()
	for i := 0; i < 4; i++ {
		name := filepath.Join(dir, "cfgforge_old"+string(rune('a'+i))+".log")
		require.NoError(t, os.WriteFile(name, []byte("old"), 0644))
		past := time.Now().Add(-time.Duration(10-i) * time.Hour)
		require.NoError(t, os.Chtimes(name, past, past))
	}

	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevelInfo,
		Format:    logging.LogFormatText,
		OutputDir: dir,
		MaxFiles:  2,
		Console:   &bytes.Buffer{},
	})
	require.NoError(t, err)
	require.NoError(t, logger.Close())

	files, err := filepath.Glob(filepath.Join(dir, "cfgforge_*.log"))
	require.NoError(t, err)
	assert.Len(t, files, 2)
	assert.Contains(t, files, logger.FilePath())
}

// TestDiscard tests the discard logger
func TestDiscard(t *testing.T) {
	logger := logging.Discard()
	logger.Info("dropped")
	assert.NotNil(t, logger)
}
