package log

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beka-birhanu/vinom-mazegen/config"
)

func TestNew(t *testing.T) {
	t.Run("Writes prefixed entries with sorted fields", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("BATCH", config.ColorCyan, &buf)
		require.NoError(t, err)

		logger.WithFields(logrus.Fields{"seed": 7, "difficulty": "easy"}).Info("built maze")

		line := buf.String()
		assert.Contains(t, line, config.ColorCyan+"[BATCH]"+config.ColorReset)
		assert.Contains(t, line, "[INFO] built maze difficulty=easy seed=7\n")
		assert.NotContains(t, line, "component=")
	})

	t.Run("Empty component", func(t *testing.T) {
		_, err := New("", config.ColorCyan, &bytes.Buffer{})
		assert.ErrorIs(t, err, ErrEmptyComponent)
	})

	t.Run("Level filtering", func(t *testing.T) {
		var buf bytes.Buffer
		logger, err := New("APP", config.ColorGreen, &buf)
		require.NoError(t, err)

		require.NoError(t, SetLevel(logger, "warn"))
		logger.Info("hidden")
		logger.Warn("shown")
		assert.NotContains(t, buf.String(), "hidden")
		assert.Contains(t, buf.String(), "[WARNING] shown")

		assert.Error(t, SetLevel(logger, "loud"))
	})
}
