package catalog

import (
	"errors"
	"time"

	"card-catalog/core/storage"
)

// Config holds configuration for catalog loading.
type Config struct {
	// Prefix is the storage folder holding sets.json and the cards/ folder.
	Prefix string `mapstructure:"prefix" default:"catalog"`
	// Workers bounds the number of records built concurrently.
	Workers int `mapstructure:"workers" default:"8"`
	// MeldTimeoutSeconds bounds the wait for meld parts after the record stream drains.
	MeldTimeoutSeconds int `mapstructure:"meld_timeout_seconds" default:"30"`
	// LoadOnStart loads the catalog when the server starts.
	LoadOnStart bool `mapstructure:"load_on_start" default:"false"`
	// NamesObject is the card name list used by the coverage check, relative to Prefix.
	NamesObject string `mapstructure:"names_object" default:"card-names.json"`
	// Persist writes every successful load to the database.
	Persist bool `mapstructure:"persist" default:"false"`
}

// MeldTimeout returns the meld wait as a duration.
func (c Config) MeldTimeout() time.Duration {
	return time.Duration(c.MeldTimeoutSeconds) * time.Second
}

// NamesKey returns the storage key of the card name list.
func (c Config) NamesKey() string {
	return storage.Key(c.Prefix, c.NamesObject)
}

// Validate checks the settings a load depends on.
func (c Config) Validate() error {
	if c.Workers < 1 {
		return errors.New("workers must be at least 1")
	}
	if c.MeldTimeoutSeconds < 1 {
		return errors.New("meld_timeout_seconds must be at least 1")
	}
	if c.NamesObject == "" {
		return errors.New("names_object must not be empty")
	}
	return nil
}
