// Package config loads the optional TOML tuning file. Every field has a
// working default; a config file only overrides what it names.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"aeropack/converter"
)

// Config is the full tuning surface of a batch run.
type Config struct {
	Encoder Encoder `toml:"encoder"`
	Batch   Batch   `toml:"batch"`
}

// Encoder tunes how each destination raster is written.
type Encoder struct {
	JPEGQuality     int    `toml:"jpeg_quality"`
	TileSize        int    `toml:"tile_size"`
	NumThreads      int    `toml:"num_threads"`
	OverviewFactors []int  `toml:"overview_factors"`
	Resampling      string `toml:"resampling"`
	GPUBackend      string `toml:"gpu_backend"`
	GPUCachePercent int    `toml:"gpu_cache_percent"`
	CacheMaxMB      int    `toml:"cache_max_mb"`
}

// Batch tunes the scheduler.
type Batch struct {
	// MaxWorkers overrides the computed pool width when positive.
	MaxWorkers int `toml:"max_workers"`
}

// Default returns the built-in configuration.
func Default() *Config {
	enc := converter.DefaultEncodeOptions()
	return &Config{
		Encoder: Encoder{
			JPEGQuality:     enc.JPEGQuality,
			TileSize:        enc.TileSize,
			NumThreads:      enc.NumThreads,
			OverviewFactors: enc.OverviewFactors,
			Resampling:      enc.Resampling,
			GPUBackend:      enc.GPUBackend,
			GPUCachePercent: enc.GPUCachePercent,
			CacheMaxMB:      enc.CacheMaxMB,
		},
	}
}

// Load reads the TOML file at path over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("config file %s does not exist", path)
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects values the raster library would refuse at creation time.
func (c *Config) Validate() error {
	e := c.Encoder
	if e.JPEGQuality < 1 || e.JPEGQuality > 100 {
		return fmt.Errorf("encoder.jpeg_quality must be between 1 and 100, got %d", e.JPEGQuality)
	}
	if e.TileSize < 16 || e.TileSize%16 != 0 {
		return fmt.Errorf("encoder.tile_size must be a positive multiple of 16, got %d", e.TileSize)
	}
	if e.NumThreads < 1 {
		return fmt.Errorf("encoder.num_threads must be positive, got %d", e.NumThreads)
	}
	if len(e.OverviewFactors) == 0 {
		return errors.New("encoder.overview_factors must not be empty")
	}
	for _, f := range e.OverviewFactors {
		if f < 2 {
			return fmt.Errorf("encoder.overview_factors entries must be at least 2, got %d", f)
		}
	}
	if e.Resampling == "" {
		return errors.New("encoder.resampling must not be empty")
	}
	if e.GPUCachePercent < 1 || e.GPUCachePercent > 100 {
		return fmt.Errorf("encoder.gpu_cache_percent must be between 1 and 100, got %d", e.GPUCachePercent)
	}
	if e.CacheMaxMB < 1 {
		return fmt.Errorf("encoder.cache_max_mb must be positive, got %d", e.CacheMaxMB)
	}
	if c.Batch.MaxWorkers < 0 {
		return fmt.Errorf("batch.max_workers must not be negative, got %d", c.Batch.MaxWorkers)
	}
	return nil
}

// EncodeOptions maps the encoder section onto the converter's options.
func (c *Config) EncodeOptions() converter.EncodeOptions {
	e := c.Encoder
	return converter.EncodeOptions{
		JPEGQuality:     e.JPEGQuality,
		TileSize:        e.TileSize,
		NumThreads:      e.NumThreads,
		OverviewFactors: e.OverviewFactors,
		Resampling:      e.Resampling,
		GPUBackend:      e.GPUBackend,
		GPUCachePercent: e.GPUCachePercent,
		CacheMaxMB:      e.CacheMaxMB,
	}
}
