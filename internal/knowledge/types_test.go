package knowledge

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestBuildSearchConfigDefaults(t *testing.T) {
	cfg := buildSearchConfig(nil)
	assert.Equal(t, 8, cfg.topK)
	assert.Equal(t, 10*time.Second, cfg.timeout)
}

func TestSearchOptions(t *testing.T) {
	cfg := buildSearchConfig([]SearchOption{WithTopK(3), WithTimeout(2 * time.Second)})
	assert.Equal(t, 3, cfg.topK)
	assert.Equal(t, 2*time.Second, cfg.timeout)
}

func TestSearchOptionsIgnoreInvalidValues(t *testing.T) {
	cfg := buildSearchConfig([]SearchOption{WithTopK(0), WithTopK(-1), WithTimeout(0)})
	assert.Equal(t, 8, cfg.topK)
	assert.Equal(t, 10*time.Second, cfg.timeout)
}
