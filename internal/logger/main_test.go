package logger_test

import (
	"bytes"
	"encoding/json"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portal-prestadores/portal/internal/logger"
)

func TestInit(t *testing.T) {
	tests := []struct {
		name      string
		cfg       logger.Log
		wantErr   error
		hasOutput bool
		isJSON    bool
	}{
		{
			name:    "unknown level",
			cfg:     logger.Log{LogLevel: "loud", ServiceName: "test", AppName: "test"},
			wantErr: nil,
		},
		{
			name:    "service name missing",
			cfg:     logger.Log{LogLevel: "info", AppName: "test"},
			wantErr: logger.ErrServiceNameIsEmpty,
		},
		{
			name:    "app name missing",
			cfg:     logger.Log{LogLevel: "info", ServiceName: "test"},
			wantErr: logger.ErrAppNameIsEmpty,
		},
		{
			name: "no logger enabled",
			cfg:  logger.Log{LogLevel: "", ServiceName: "test", AppName: "test"},
		},
		{
			name:      "console writer",
			cfg:       logger.Log{LogLevel: "info", ServiceName: "test", AppName: "test", Console: logger.Console{Enabled: true, UseConsoleWriter: true}},
			hasOutput: true,
		},
		{
			name:      "console json",
			cfg:       logger.Log{LogLevel: "info", ServiceName: "test", AppName: "test", Console: logger.Console{Enabled: true}},
			hasOutput: true,
			isJSON:    true,
		},
		{
			name: "console json trace with caller",
			cfg: logger.Log{
				LogLevel: "trace", ServiceName: "test", AppName: "test", LogEnv: "test",
				ReportCaller: true, Console: logger.Console{Enabled: true},
			},
			hasOutput: true,
			isJSON:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := captureInit(t, tt.cfg)

			if tt.name == "unknown level" {
				require.Error(t, err)

				return
			}

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)

				return
			}

			require.NoError(t, err)

			if !tt.hasOutput {
				assert.Empty(t, out)

				return
			}

			assert.NotEmpty(t, out)

			if tt.isJSON {
				for _, line := range strings.Split(strings.TrimSpace(out), "\n") {
					var entry map[string]any
					require.NoError(t, json.Unmarshal([]byte(line), &entry), line)
					assert.Equal(t, "test", entry["app"])
				}
			}
		})
	}
}

func TestInit_FileLogging(t *testing.T) {
	dir := t.TempDir()

	err := logger.Init(logger.Log{
		LogLevel:    "info",
		ServiceName: "test",
		AppName:     "test",
		File: logger.LogFile{
			Enabled: true,
			Path:    dir,
			Info:    logger.Rolling{File: "info.log", MaxSize: 1},
			Error:   logger.Rolling{File: "error.log", MaxSize: 1},
			Warn:    logger.Rolling{File: "warn.log", MaxSize: 1},
			Trace:   logger.Rolling{File: "trace.log", MaxSize: 1},
		},
	})
	require.NoError(t, err)

	log.Info().Msg("to the info file")
	log.Error().Msg("to the error file")

	info, err := os.ReadFile(filepath.Join(dir, "info.log"))
	require.NoError(t, err)
	assert.Contains(t, string(info), "to the info file")
	assert.NotContains(t, string(info), "to the error file")

	errLog, err := os.ReadFile(filepath.Join(dir, "error.log"))
	require.NoError(t, err)
	assert.Contains(t, string(errLog), "to the error file")
}

func TestLevelWriter(t *testing.T) {
	var info, warn, errs bytes.Buffer

	lw := &logger.LevelWriter{InfoWriter: &info, WarnWriter: &warn, ErrorWriter: &errs}

	_, _ = lw.WriteLevel(zerolog.DebugLevel, []byte("d"))
	_, _ = lw.WriteLevel(zerolog.InfoLevel, []byte("i"))
	_, _ = lw.WriteLevel(zerolog.WarnLevel, []byte("w"))
	_, _ = lw.WriteLevel(zerolog.FatalLevel, []byte("f"))

	n, err := lw.WriteLevel(zerolog.TraceLevel, []byte("t"))
	require.NoError(t, err)
	assert.Equal(t, 1, n, "missing writers swallow the entry")

	assert.Equal(t, "di", info.String())
	assert.Equal(t, "w", warn.String())
	assert.Equal(t, "f", errs.String())
}

func captureInit(t *testing.T, cfg logger.Log) (string, error) {
	t.Helper()

	stdout, stderr := os.Stdout, os.Stderr

	r, w, err := os.Pipe()
	require.NoError(t, err)

	os.Stdout, os.Stderr = w, w

	initErr := logger.Init(cfg)
	if initErr == nil {
		log.Info().Msg("this info message should be seen...")
		log.Error().Err(errors.New("a test error")).Msg("this err message should be seen...") //nolint:err113
		log.Trace().Msg("only seen on trace")
	}

	outC := make(chan string)

	go func() {
		var buf bytes.Buffer

		_, _ = io.Copy(&buf, r)
		outC <- buf.String()
	}()

	_ = w.Close()
	os.Stdout, os.Stderr = stdout, stderr

	return <-outC, initErr
}
