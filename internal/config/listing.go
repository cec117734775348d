package config

import (
	"errors"
	"log"
	"strings"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/viper"
)

// ListingConfig bounds the page sizes used by listing endpoints.
type ListingConfig struct {
	DefaultLimit        int `mapstructure:"defaultLimit"`
	MaxLimit            int `mapstructure:"maxLimit"`
	SearchLimit         int `mapstructure:"searchLimit"`
	AccountPreviewLimit int `mapstructure:"accountPreviewLimit"`
}

func DefaultListingConfig() ListingConfig {
	return ListingConfig{
		DefaultLimit:        50,
		MaxLimit:            100,
		SearchLimit:         20,
		AccountPreviewLimit: 5,
	}
}

// Limit resolves a requested page size against the configured bounds.
func (c ListingConfig) Limit(requested int) int {
	if requested <= 0 {
		return c.DefaultLimit
	}
	if c.MaxLimit > 0 && requested > c.MaxLimit {
		return c.MaxLimit
	}
	return requested
}

type ListingConfigHolder struct {
	current atomic.Value // holds ListingConfig
}

// NewStaticListingConfigHolder returns a holder that never reloads.
func NewStaticListingConfigHolder(cfg ListingConfig) *ListingConfigHolder {
	holder := &ListingConfigHolder{}
	holder.current.Store(cfg)
	return holder
}

func NewListingConfigHolder() (*ListingConfigHolder, error) {
	v := viper.New()

	v.SetConfigName("listing")
	v.SetConfigType("yml")
	v.AddConfigPath("/etc/ratrace")
	v.AddConfigPath(".")

	v.SetEnvPrefix("RATRACE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	defaults := DefaultListingConfig()
	v.SetDefault("listing.defaultLimit", defaults.DefaultLimit)
	v.SetDefault("listing.maxLimit", defaults.MaxLimit)
	v.SetDefault("listing.searchLimit", defaults.SearchLimit)
	v.SetDefault("listing.accountPreviewLimit", defaults.AccountPreviewLimit)

	fileLoaded := true
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
		fileLoaded = false
	}

	var cfg ListingConfig
	if err := v.UnmarshalKey("listing", &cfg); err != nil {
		return nil, err
	}
	if err := validateListingConfig(cfg); err != nil {
		return nil, err
	}

	holder := NewStaticListingConfigHolder(cfg)
	if !fileLoaded {
		return holder, nil
	}

	v.WatchConfig()
	v.OnConfigChange(func(e fsnotify.Event) {
		var updated ListingConfig
		if err := v.UnmarshalKey("listing", &updated); err != nil {
			log.Printf("[listing-config] reload failed: %v", err)
			return
		}
		if err := validateListingConfig(updated); err != nil {
			log.Printf("[listing-config] invalid config ignored: %v", err)
			return
		}
		holder.current.Store(updated)
		log.Printf("[listing-config] reloaded from %s", e.Name)
	})

	return holder, nil
}

func (h *ListingConfigHolder) Get() ListingConfig {
	return h.current.Load().(ListingConfig)
}

func validateListingConfig(cfg ListingConfig) error {
	if cfg.DefaultLimit <= 0 {
		return errors.New("listing.defaultLimit must be positive")
	}
	if cfg.MaxLimit < cfg.DefaultLimit {
		return errors.New("listing.maxLimit cannot be lower than listing.defaultLimit")
	}
	if cfg.SearchLimit <= 0 {
		return errors.New("listing.searchLimit must be positive")
	}
	if cfg.AccountPreviewLimit <= 0 {
		return errors.New("listing.accountPreviewLimit must be positive")
	}
	return nil
}
