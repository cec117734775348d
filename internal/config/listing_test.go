package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListingConfigLimit(t *testing.T) {
	cfg := DefaultListingConfig()

	assert.Equal(t, 50, cfg.Limit(0))
	assert.Equal(t, 50, cfg.Limit(-3))
	assert.Equal(t, 5, cfg.Limit(5))
	assert.Equal(t, 100, cfg.Limit(1000))
}

func TestValidateListingConfig(t *testing.T) {
	assert.NoError(t, validateListingConfig(DefaultListingConfig()))

	bad := DefaultListingConfig()
	bad.MaxLimit = 10
	assert.Error(t, validateListingConfig(bad))

	bad = DefaultListingConfig()
	bad.SearchLimit = 0
	assert.Error(t, validateListingConfig(bad))
}

func TestStaticListingConfigHolder(t *testing.T) {
	cfg := DefaultListingConfig()
	cfg.SearchLimit = 7

	holder := NewStaticListingConfigHolder(cfg)
	assert.Equal(t, 7, holder.Get().SearchLimit)
}
