package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/docker/go-units"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/meigma/gitindex"
	"github.com/meigma/gitindex/source"
)

// Configuration keys. Each is also a flag name, a GITINDEX_* environment
// variable and a key in the config file.
const (
	keyConfig       = "config"
	keyLogLevel     = "log-level"
	keyWorkTree     = "work-tree"
	keyIndex        = "index"
	keyMaxIndexSize = "max-index-size"
	keyChecksum     = "checksum"
	keyWorkers      = "workers"
)

type app struct {
	fsys   afero.Fs
	v      *viper.Viper
	logger *slog.Logger
}

func newRootCmd(fsys afero.Fs) *cobra.Command {
	a := &app{fsys: fsys, v: viper.New()}

	cmd := &cobra.Command{
		Use:           "gitindex",
		Short:         "Inspect index files",
		Long:          "gitindex decodes version-control index files and compares them with the working tree.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	flags := cmd.PersistentFlags()
	flags.String(keyConfig, "", "config file (YAML)")
	flags.String(keyLogLevel, "warn", "log level: debug, info, warn or error")
	flags.StringP(keyWorkTree, "C", ".", "work tree root")
	flags.String(keyIndex, "", "index file (default: <work tree>/.git/index)")
	flags.String(keyMaxIndexSize, units.BytesSize(float64(source.DefaultMaxSize)), "largest index accepted, e.g. 64MiB; 0 for no limit")
	flags.Bool(keyChecksum, false, "verify the index trailer checksum")
	flags.Int(keyWorkers, 0, "concurrent stat calls (default: number of CPUs)")

	cmd.AddCommand(
		newLsFilesCmd(a),
		newStatusCmd(a),
		newDecodeCmd(a),
	)
	return cmd
}

// init loads configuration from flags, environment and the config file,
// then builds the logger.
func (a *app) init(cmd *cobra.Command) error {
	a.v.SetFs(a.fsys)
	a.v.SetEnvPrefix("GITINDEX")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	if err := a.v.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	if path := a.v.GetString(keyConfig); path != "" {
		a.v.SetConfigFile(path)
		a.v.SetConfigType("yaml")
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(a.v.GetString(keyLogLevel))); err != nil {
		return fmt.Errorf("invalid %s: %w", keyLogLevel, err)
	}
	a.logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	if used := a.v.ConfigFileUsed(); used != "" {
		a.logger.Debug("config loaded", "path", used)
	}
	return nil
}

// open builds a Repository from the loaded configuration.
func (a *app) open() (*gitindex.Repository, error) {
	maxSize, err := parseSize(a.v.GetString(keyMaxIndexSize))
	if err != nil {
		return nil, fmt.Errorf("invalid %s: %w", keyMaxIndexSize, err)
	}

	opts := []gitindex.Option{
		gitindex.WithLogger(a.logger),
		gitindex.WithMaxIndexSize(maxSize),
		gitindex.WithChecksum(a.v.GetBool(keyChecksum)),
	}
	if path := a.v.GetString(keyIndex); path != "" {
		opts = append(opts, gitindex.WithIndexPath(path))
	}
	if n := a.v.GetInt(keyWorkers); n > 0 {
		opts = append(opts, gitindex.WithWorkers(n))
	}
	return gitindex.Open(a.fsys, a.v.GetString(keyWorkTree), opts...)
}

// parseSize accepts human sizes such as "64MiB" or "512k". Units are
// binary.
func parseSize(s string) (uint64, error) {
	if s == "" || s == "0" {
		return 0, nil
	}
	n, err := units.RAMInBytes(s)
	if err != nil {
		return 0, err
	}
	if n < 0 {
		return 0, fmt.Errorf("negative size %q", s)
	}
	return uint64(n), nil
}
