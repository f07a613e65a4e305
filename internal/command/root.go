// This Source Code Form is subject to the terms of the Mozilla Public
// License, v. 2.0. If a copy of the MPL was not distributed with this
// file, You can obtain one at http://mozilla.org/MPL/2.0/.

// Package command provides the pngchunk CLI commands.
//
// It uses urfave/cli/v2 for command parsing.
package command

import (
	"fmt"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/siderolabs/go-pngchunk"
	"github.com/siderolabs/go-pngchunk/internal/config"
	"github.com/siderolabs/go-pngchunk/zstd"
)

// Build information, set via ldflags.
var (
	Version = "dev"
	Commit  = "unknown"
)

// state is shared by the commands of a single App run.
type state struct {
	logger *zap.Logger
	cfg    config.Config
}

// App creates the CLI application.
func App() *cli.App {
	st := &state{
		cfg:    config.Default(),
		logger: zap.NewNop(),
	}

	return &cli.App{
		Name:    "pngchunk",
		Usage:   "hide messages in PNG files as chunks",
		Version: fmt.Sprintf("%s (commit: %s)", Version, Commit),
		Flags:   globalFlags(),
		Before:  st.before,
		After:   st.after,
		Commands: []*cli.Command{
			encodeCommand(st),
			decodeCommand(st),
			removeCommand(st),
			printCommand(st),
		},
	}
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "path to a YAML configuration file",
			EnvVars: []string{config.EnvPrefix + "CONFIG"},
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "log level: debug, info, warn, error",
		},
		&cli.BoolFlag{
			Name:  "strict",
			Usage: "reject chunk types with the reserved bit set",
		},
	}
}

func compressFlag() cli.Flag {
	return &cli.BoolFlag{
		Name:    "compress",
		Aliases: []string{"z"},
		Usage:   "store the message zstd-compressed",
	}
}

func (st *state) before(c *cli.Context) error {
	cfg, err := config.Load(c.String("config"))
	if err != nil {
		return err
	}

	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}

	if c.IsSet("strict") {
		cfg.Strict = c.Bool("strict")
	}

	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("log level: %w", err)
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	if cfg.Log.Development {
		encoderConfig = zap.NewDevelopmentEncoderConfig()
	}

	st.cfg = cfg
	st.logger = zap.New(zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(c.App.ErrWriter),
		level,
	))

	return nil
}

func (st *state) after(*cli.Context) error {
	st.logger.Sync() //nolint:errcheck

	return nil
}

// options returns the PNG options for the current configuration.
func (st *state) options() []pngchunk.OptionFunc {
	opts := []pngchunk.OptionFunc{pngchunk.WithLogger(st.logger)}

	if st.cfg.Strict {
		opts = append(opts, pngchunk.WithStrictChunkTypes())
	}

	return opts
}

// compressor returns the text compressor, or nil if compression is disabled.
func (st *state) compressor(c *cli.Context) (pngchunk.Compressor, error) {
	enabled := st.cfg.Compress.Enabled
	if c.IsSet("compress") {
		enabled = c.Bool("compress")
	}

	if !enabled {
		return nil, nil
	}

	compressor, err := zstd.NewCompressorLevel(st.cfg.Compress.Level)
	if err != nil {
		return nil, err
	}

	return compressor, nil
}

// args checks the number of positional arguments.
func args(c *cli.Context, minArgs, maxArgs int) error {
	if n := c.NArg(); n < minArgs || n > maxArgs {
		return fmt.Errorf("%s: expected %s, got %d argument(s)", c.Command.Name, c.Command.ArgsUsage, n)
	}

	return nil
}
