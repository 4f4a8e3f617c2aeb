package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		level     string
		wantDebug bool
		wantInfo  bool
	}{
		{"debug", true, true},
		{"INFO", false, true},
		{"warn", false, false},
		{"bogus", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			var buf bytes.Buffer
			log := New(&buf, tt.level)

			log.Debug().Msg("d")
			assert.Equal(t, tt.wantDebug, bytes.Contains(buf.Bytes(), []byte(`"message":"d"`)))

			buf.Reset()
			log.Info().Msg("i")
			assert.Equal(t, tt.wantInfo, bytes.Contains(buf.Bytes(), []byte(`"message":"i"`)))
		})
	}
}

func TestFileAppendsJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "quiz.log")

	log, f, err := File(path, "info")
	require.NoError(t, err)
	log.Info().Str("exam_key", "dev").Msg("hello")
	require.NoError(t, f.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "hello", entry["message"])
	assert.Equal(t, "dev", entry["exam_key"])
	assert.Contains(t, entry, "time")
}

func TestDefaultLogPath(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/tmp/state")
	p, err := DefaultLogPath()
	require.NoError(t, err)
	assert.Equal(t, "/tmp/state/cheesequiz/cheesequiz.log", p)
}
