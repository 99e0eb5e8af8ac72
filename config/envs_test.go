package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		for _, key := range []string{"WORKERS", "OUTPUT_DIR", "MAX_BATCH_COUNT"} {
			t.Setenv(key, "")
			require.NoError(t, os.Unsetenv(key))
		}
		c, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 4, c.Workers)
		assert.Equal(t, "./mazes", c.OutputDir)
		assert.Equal(t, 100, c.MaxBatchCount)
	})

	t.Run("Overrides", func(t *testing.T) {
		t.Setenv("WORKERS", "9")
		t.Setenv("OUTPUT_DIR", "/tmp/out")
		t.Setenv("JWT_ISSUER", "tests")
		c, err := Load()
		require.NoError(t, err)
		assert.Equal(t, 9, c.Workers)
		assert.Equal(t, "/tmp/out", c.OutputDir)
		assert.Equal(t, "tests", c.JWTIssuer)
	})

	t.Run("Bad integer", func(t *testing.T) {
		t.Setenv("REST_PORT", "eighty")
		_, err := Load()
		assert.ErrorContains(t, err, "REST_PORT")
	})
}

func TestMongoURI(t *testing.T) {
	c := Config{DBHost: "db", DBPort: 27017}
	assert.Equal(t, "mongodb://db:27017", c.MongoURI())

	c.DBUser, c.DBPassword = "u", "p"
	assert.Equal(t, "mongodb://u:p@db:27017", c.MongoURI())
}
