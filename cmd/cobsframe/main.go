package main

import (
	"flag"
	"os"

	"github.com/dcreager/cobs-checksum-go/internal/logging"
)

func main() {
	logger := logging.Init("cobsframe")

	mode := flag.String("mode", "encode", "operation: encode|decode")
	configPath := flag.String("config", "", "path to a TOML config file")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to load config")
	}
	logger.Debug().Int("max_frame_size", cfg.MaxFrameSize).Str("format", cfg.Format).Msg("loaded config")

	switch *mode {
	case "encode":
		err = encode(cfg, os.Stdin, os.Stdout)
	case "decode":
		err = decode(cfg, os.Stdin, os.Stdout, logger)
	default:
		logger.Fatal().Str("mode", *mode).Msg("unknown mode")
	}
	if err != nil {
		logger.Error().Err(err).Str("mode", *mode).Msg("cobsframe failed")
		os.Exit(1)
	}
}
