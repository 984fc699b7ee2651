// Command rosterscan runs the extraction pipeline over local screenshots and
// prints the outcome as JSON. Nothing is written to the database.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"rosterscan/internal/bootstrap"
	"rosterscan/internal/config"
	"rosterscan/internal/domain"
	"rosterscan/internal/logging"
	"rosterscan/internal/pipeline"
)

func main() {
	if err := newRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:          "rosterscan",
		Short:        "Extract player records from roster screenshots",
		SilenceUsage: true,
	}
	root.AddCommand(newScanCmd())
	return root
}

func newScanCmd() *cobra.Command {
	var (
		backend  string
		rosterID string
		pretty   bool
	)
	cmd := &cobra.Command{
		Use:   "scan <image>...",
		Short: "Run OCR, parsing and validation over one or more screenshots",
		Args:  cobra.RangeArgs(1, 10),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}
			if backend == "" {
				backend = cfg.OCR.Backend
			}
			b, ok := domain.ParseOCRBackend(backend)
			if !ok {
				return fmt.Errorf("%w: %q", domain.ErrUnknownBackend, backend)
			}
			id := uuid.New()
			if rosterID != "" {
				if id, err = uuid.Parse(rosterID); err != nil {
					return fmt.Errorf("invalid roster id: %w", err)
				}
			}

			logger, err := logging.New(&cfg.Log)
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			pipe, err := bootstrap.Pipeline(cfg, nil, logger)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			out, err := pipe.Run(ctx, pipeline.Input{Images: args, Backend: b, RosterID: id})
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			if pretty {
				enc.SetIndent("", "  ")
			}
			if err := enc.Encode(out); err != nil {
				return err
			}
			if out.Status == domain.JobStatusFailed {
				return fmt.Errorf("scan failed: %s", out.Reason)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&backend, "backend", "b", "", "ocr backend: local-engine, cloud-text-detect or cloud-vision (default from config)")
	cmd.Flags().StringVar(&rosterID, "roster", "", "roster id to tag records with (random when empty)")
	cmd.Flags().BoolVar(&pretty, "pretty", false, "indent JSON output")
	return cmd
}
