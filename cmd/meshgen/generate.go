package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spinelift/meshgen/internal/preview"
	"github.com/spinelift/meshgen/pkg/raster"
)

func newGenerateCmd() *cobra.Command {
	var (
		output     string
		previewDir string
	)

	cmd := &cobra.Command{
		Use:   "generate <image>",
		Short: "Generate a mesh for a single image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			_, log, gen, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			path := args[0]
			result, err := gen.GenerateFile(cmd.Context(), path)
			if err != nil {
				return err
			}

			if previewDir != "" {
				img, err := raster.Load(path)
				if err != nil {
					return err
				}
				file, err := preview.Write(previewDir, img, result)
				if err != nil {
					return err
				}
				log.Info("wrote preview", zap.String("file", file))
			}

			return writeJSON(output, result)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output JSON file (default stdout)")
	cmd.Flags().StringVar(&previewDir, "preview-dir", "", "write a wireframe overlay PNG into this directory")

	return cmd
}

// writeJSON marshals v as indented JSON to the given file, or stdout
// when path is empty.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding result: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
