// Package clusterconfig loads the tunable parameters of a velocity-grid
// search from a JSON file, the way internal/config loads lidar tuning
// defaults in the originating repo.
package clusterconfig

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// SearchConfig is the root configuration for a grid search. Every field is
// a pointer so a partial JSON document — one that only overrides a few
// values — is safe to load; fields left nil fall back to their Get*
// default.
type SearchConfig struct {
	Algorithm      *string  `json:"algorithm,omitempty"`
	Eps            *float64 `json:"eps,omitempty"`
	MinClusterSize *int     `json:"min_cluster_size,omitempty"`
	NWorkers       *int     `json:"n_workers,omitempty"`
	VxMin          *float64 `json:"vx_min,omitempty"`
	VxMax          *float64 `json:"vx_max,omitempty"`
	VxStep         *float64 `json:"vx_step,omitempty"`
	VyMin          *float64 `json:"vy_min,omitempty"`
	VyMax          *float64 `json:"vy_max,omitempty"`
	VyStep         *float64 `json:"vy_step,omitempty"`
}

// EmptySearchConfig returns a SearchConfig with every field nil. Use
// LoadSearchConfig to populate one from a file.
func EmptySearchConfig() *SearchConfig {
	return &SearchConfig{}
}

// LoadSearchConfig loads a SearchConfig from a JSON file, validating the
// file extension and size before parsing.
func LoadSearchConfig(path string) (*SearchConfig, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return nil, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	}
	const maxFileSize = 1 * 1024 * 1024
	if fileInfo.Size() > maxFileSize {
		return nil, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := EmptySearchConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config JSON: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks the configuration values that can be checked in
// isolation, independent of any velocity grid they will be paired with.
func (c *SearchConfig) Validate() error {
	if c.Eps != nil && *c.Eps <= 0 {
		return fmt.Errorf("eps must be > 0, got %v", *c.Eps)
	}
	if c.MinClusterSize != nil && (*c.MinClusterSize < 1 || *c.MinClusterSize > 255) {
		return fmt.Errorf("min_cluster_size must be in [1, 255], got %d", *c.MinClusterSize)
	}
	if c.NWorkers != nil && *c.NWorkers < 1 {
		return fmt.Errorf("n_workers must be >= 1, got %d", *c.NWorkers)
	}
	if c.VxStep != nil && *c.VxStep <= 0 {
		return fmt.Errorf("vx_step must be > 0, got %v", *c.VxStep)
	}
	if c.VyStep != nil && *c.VyStep <= 0 {
		return fmt.Errorf("vy_step must be > 0, got %v", *c.VyStep)
	}
	if c.VxMin != nil && c.VxMax != nil && *c.VxMin > *c.VxMax {
		return fmt.Errorf("vx_min (%v) must be <= vx_max (%v)", *c.VxMin, *c.VxMax)
	}
	if c.VyMin != nil && c.VyMax != nil && *c.VyMin > *c.VyMax {
		return fmt.Errorf("vy_min (%v) must be <= vy_max (%v)", *c.VyMin, *c.VyMax)
	}
	return nil
}

// GetAlgorithm returns the configured algorithm name, or "dbscan" if unset.
func (c *SearchConfig) GetAlgorithm() string {
	if c.Algorithm == nil {
		return "dbscan"
	}
	return *c.Algorithm
}

// GetEps returns the configured eps, or 1.0 if unset.
func (c *SearchConfig) GetEps() float64 {
	if c.Eps == nil {
		return 1.0
	}
	return *c.Eps
}

// GetMinClusterSize returns the configured minimum cluster weight, or 2 if
// unset.
func (c *SearchConfig) GetMinClusterSize() int {
	if c.MinClusterSize == nil {
		return 2
	}
	return *c.MinClusterSize
}

// GetNWorkers returns the configured worker count, or 1 (serial) if unset.
func (c *SearchConfig) GetNWorkers() int {
	if c.NWorkers == nil {
		return 1
	}
	return *c.NWorkers
}

// VelocityValues expands the vx/vy min/max/step triples into explicit
// value slices, row-major vx-outer ordering left to the caller.
func (c *SearchConfig) VelocityValues() (vxs, vys []float64) {
	vxs = expandRange(valueOr(c.VxMin, 0), valueOr(c.VxMax, 0), valueOr(c.VxStep, 1))
	vys = expandRange(valueOr(c.VyMin, 0), valueOr(c.VyMax, 0), valueOr(c.VyStep, 1))
	return vxs, vys
}

func valueOr(p *float64, fallback float64) float64 {
	if p == nil {
		return fallback
	}
	return *p
}

func expandRange(min, max, step float64) []float64 {
	if step <= 0 || min > max {
		return nil
	}
	var values []float64
	for v := min; v <= max+step/2; v += step {
		values = append(values, v)
	}
	return values
}
