package main

import (
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/spinelift/meshgen/internal/preview"
	"github.com/spinelift/meshgen/pkg/mesh"
	"github.com/spinelift/meshgen/pkg/raster"
)

// batchReport is the JSON document the batch command emits.
type batchReport struct {
	Results     []*mesh.Result `json:"results"`
	Total       int            `json:"total"`
	Succeeded   int            `json:"succeeded"`
	SuccessRate float64        `json:"success_rate"`
}

func newBatchCmd() *cobra.Command {
	var (
		output     string
		previewDir string
		workers    int
	)

	cmd := &cobra.Command{
		Use:   "batch <image>...",
		Short: "Generate meshes for many images, skipping failures",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, log, gen, err := setup()
			if err != nil {
				return err
			}
			defer func() { _ = log.Sync() }()

			opts := mesh.BatchOptions{
				Workers:     cfg.Batch.Workers,
				ItemTimeout: time.Duration(cfg.Batch.ItemTimeout),
			}
			if workers > 0 {
				opts.Workers = workers
			}

			batch := gen.Batch(cmd.Context(), args, opts)

			if previewDir != "" {
				writePreviews(log, previewDir, batch.Results)
			}

			return writeJSON(output, batchReport{
				Results:     batch.Results,
				Total:       batch.Total,
				Succeeded:   batch.Succeeded,
				SuccessRate: batch.SuccessRate(),
			})
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output JSON file (default stdout)")
	cmd.Flags().StringVar(&previewDir, "preview-dir", "", "write wireframe overlay PNGs into this directory")
	cmd.Flags().IntVar(&workers, "workers", 0, "worker count (default: CPU cores)")

	return cmd
}

// writePreviews renders overlays for the successful results. Preview
// failures are logged, they never fail the batch.
func writePreviews(log *zap.Logger, dir string, results []*mesh.Result) {
	for _, r := range results {
		img, err := raster.Load(r.ImagePath)
		if err != nil {
			log.Warn("skipping preview", zap.String("image", r.ImagePath), zap.Error(err))
			continue
		}
		file, err := preview.Write(dir, img, r)
		if err != nil {
			log.Warn("skipping preview", zap.String("image", r.ImagePath), zap.Error(err))
			continue
		}
		log.Debug("wrote preview", zap.String("file", file))
	}
}
