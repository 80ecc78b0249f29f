package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dcreager/cobs-checksum-go/cobs"
	"github.com/rs/zerolog"
)

var errNoValidFrames = errors.New("no valid frames in input")

func encode(cfg config, in io.Reader, out io.Writer) error {
	payload, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read payload: %w", err)
	}
	if err := cobs.CheckPayloadSize(payload, cfg.MaxFrameSize); err != nil {
		return err
	}

	frame := cobs.Encode(payload)
	if cfg.Format == formatHex {
		_, err = fmt.Fprintln(out, hex.EncodeToString(frame))
	} else {
		_, err = out.Write(frame)
	}
	if err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

func decode(cfg config, in io.Reader, out io.Writer, logger zerolog.Logger) error {
	data, err := io.ReadAll(in)
	if err != nil {
		return fmt.Errorf("read frames: %w", err)
	}
	if cfg.Format == formatHex {
		data, err = hex.DecodeString(strings.Join(strings.Fields(string(data)), ""))
		if err != nil {
			return fmt.Errorf("parse hex frames: %w", err)
		}
	}

	var s cobs.Scanner
	var d cobs.Decoder
	valid := 0
	s.Reset(data)
	for s.Next() {
		if err := s.Decode(&d); err != nil {
			logger.Warn().Err(err).Int("len", len(s.Frame())).Msg("dropping frame")
			continue
		}
		message := d.Message()
		if err := cobs.CheckPayloadSize(message, cfg.MaxFrameSize); err != nil {
			logger.Warn().Err(err).Msg("dropping frame")
			continue
		}

		if cfg.Format == formatHex {
			_, err = fmt.Fprintln(out, hex.EncodeToString(message))
		} else {
			_, err = out.Write(message)
		}
		if err != nil {
			return fmt.Errorf("write payload: %w", err)
		}
		valid++
		logger.Debug().Int("len", len(message)).Msg("decoded frame")
	}

	if rest := s.Remaining(); len(rest) > 0 {
		logger.Warn().Int("bytes", len(rest)).Msg("discarding unterminated frame")
	}
	if valid == 0 {
		return errNoValidFrames
	}
	return nil
}
