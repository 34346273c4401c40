package main

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spinelift/meshgen/internal/config"
	"github.com/spinelift/meshgen/internal/logger"
	"github.com/spinelift/meshgen/pkg/mesh"
)

var (
	flagConfig   string
	flagParams   string
	flagLogLevel string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "meshgen",
		Short: "Generate 2D triangle meshes from images with transparency",
		Long: `Meshgen converts raster images into triangulated 2D meshes suitable
for skeletal-animation rigging: it extracts the opaque silhouette,
simplifies it to a sparse polygon, triangulates the interior and derives
UVs and edge topology.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// Load .env file if present (ignore errors)
			_ = godotenv.Load()
		},
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "config file (default ./meshgen.yaml)")
	cmd.PersistentFlags().StringVar(&flagParams, "params", "", "mesh parameters YAML file")
	cmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "override log level (debug, info, warn, error)")

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newBatchCmd())

	return cmd
}

// setup loads configuration, builds the logger and assembles the
// generator shared by the subcommands.
func setup() (*config.Config, *zap.Logger, *mesh.Generator, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, nil, nil, err
	}

	level := cfg.Logging.Level
	if flagLogLevel != "" {
		level = flagLogLevel
	}
	log, err := logger.New(level, cfg.Logging.LogFile)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("building logger: %w", err)
	}

	params := cfg.Mesh
	if flagParams != "" {
		loaded, unknown, err := mesh.LoadParams(flagParams)
		if err != nil {
			return nil, nil, nil, err
		}
		warnUnknownKeys(log, unknown)
		params = loaded
	}

	return cfg, log, mesh.NewGenerator(params, log), nil
}

func warnUnknownKeys(log *zap.Logger, unknown []string) {
	if len(unknown) == 0 {
		return
	}
	log.Warn("ignoring unrecognized mesh parameters", zap.Strings("keys", unknown))
}
