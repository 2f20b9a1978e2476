// Copyright (c) 2024-2026 The Decred developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package main

import (
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/decred/slog"
	"github.com/decred/threadrand"
	flags "github.com/jessevdk/go-flags"
)

func fatalf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, format, args...)
	os.Exit(1)
}

type config struct {
	Bytes  uint   `short:"b" long:"bytes" description:"number of random bytes to emit per value"`
	Format string `short:"f" long:"format" description:"output encoding for emitted bytes (one of: hex, base64, raw)"`
	Max    uint64 `short:"m" long:"max" description:"emit a uniform random integer in [0,max) instead of bytes"`
	Count  uint   `short:"c" long:"count" description:"number of values to emit"`
	Debug  bool   `short:"d" long:"debug" description:"log generator seeding activity to stderr"`
}

func main() {
	cfg := config{
		Bytes:  32,
		Format: "hex",
		Count:  1,
	}
	parser := flags.NewParser(&cfg, flags.Default)
	_, err := parser.Parse()
	if err != nil {
		var e *flags.Error
		if errors.As(err, &e) {
			if e.Type != flags.ErrHelp {
				os.Exit(1)
			}
			os.Exit(0)
		}
		os.Exit(1)
	}

	if cfg.Debug {
		backend := slog.NewBackend(os.Stderr)
		logger := backend.Logger("RAND")
		logger.SetLevel(slog.LevelTrace)
		threadrand.UseLogger(logger)
	}

	var encode func([]byte) error
	switch cfg.Format {
	case "hex":
		encode = func(b []byte) error {
			_, err := fmt.Println(hex.EncodeToString(b))
			return err
		}
	case "base64":
		encode = func(b []byte) error {
			_, err := fmt.Println(base64.StdEncoding.EncodeToString(b))
			return err
		}
	case "raw":
		encode = func(b []byte) error {
			_, err := os.Stdout.Write(b)
			return err
		}
	default:
		fmt.Fprintf(os.Stderr, "unknown format %q\n", cfg.Format)
		parser.WriteHelp(os.Stderr)
		os.Exit(2)
	}

	for i := uint(0); i < cfg.Count; i++ {
		if cfg.Max > 0 {
			fmt.Println(threadrand.Uint64N(cfg.Max))
			continue
		}

		buf := make([]byte, cfg.Bytes)
		if err := threadrand.TryRead(buf); err != nil {
			fatalf("unable to generate random bytes: %v\n", err)
		}
		if err := encode(buf); err != nil {
			fatalf("unable to write output: %v\n", err)
		}
	}
}
