package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/dcreager/cobs-checksum-go/cobs"
)

const (
	formatRaw = "raw"
	formatHex = "hex"
)

type config struct {
	MaxFrameSize int
	Format       string
}

type fileConfig struct {
	MaxFrameSize int    `toml:"max_frame_size"`
	Format       string `toml:"format"`
}

func defaultConfig() config {
	return config{
		MaxFrameSize: cobs.MaxFrameSize,
		Format:       formatRaw,
	}
}

// loadConfig reads a TOML config file.  An empty path yields the defaults.
func loadConfig(path string) (config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return config{}, fmt.Errorf("load cobsframe config: %w", err)
	}

	if meta.IsDefined("max_frame_size") {
		if raw.MaxFrameSize < 1 {
			return config{}, fmt.Errorf("max_frame_size must be at least 1, got %d", raw.MaxFrameSize)
		}
		cfg.MaxFrameSize = raw.MaxFrameSize
	}

	if meta.IsDefined("format") {
		format := strings.ToLower(strings.TrimSpace(raw.Format))
		switch format {
		case formatRaw, formatHex:
			cfg.Format = format
		default:
			return config{}, fmt.Errorf("unknown format %q (want raw|hex)", raw.Format)
		}
	}

	return cfg, nil
}
