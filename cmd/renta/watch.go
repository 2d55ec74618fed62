package main

import (
	"context"
	"encoding/json"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ilyanormand/fwn-renta/internal/engine"
	"github.com/ilyanormand/fwn-renta/internal/ingest"
	"github.com/ilyanormand/fwn-renta/internal/layout"
)

var (
	watchProfileID   string
	watchInitialScan bool
)

var watchCmd = &cobra.Command{
	Use:   "watch <directory>...",
	Short: "Watch directories and extract documents as they appear",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prof, err := loadProfile(watchProfileID)
		if err != nil {
			return err
		}

		eng := engine.New(layout.NewTabulaExtractor(logger), logger)
		queue := ingest.NewExtractorQueue(eng, printSink{}, logger,
			ingest.WithWorkers(cfg.Batch.Workers),
			ingest.WithQueueSize(cfg.Batch.QueueSize),
			ingest.WithProcessTimeout(cfg.Batch.ProcessTimeout),
		)

		events, errs, err := ingest.StartWatcher(cmd.Context(), ingest.WatchConfig{
			Roots:       args,
			InitialScan: watchInitialScan,
			Debounce:    cfg.Batch.Debounce,
		}, logger)
		if err != nil {
			return err
		}
		logger.Info("watching", "roots", args)

		for {
			select {
			case <-cmd.Context().Done():
				// The signal context is already cancelled; drain with a
				// fresh deadline so in-flight documents can finish.
				ctx, cancel := context.WithTimeout(context.Background(), cfg.Batch.ProcessTimeout)
				queue.Shutdown(ctx)
				cancel()
				return nil
			case path, ok := <-events:
				if !ok {
					queue.Shutdown(cmd.Context())
					return nil
				}
				_ = queue.Enqueue(cmd.Context(), ingest.Job{Path: path, Profile: prof, SubmittedAt: time.Now()})
			case werr, ok := <-errs:
				if ok && werr != nil {
					logger.Error("watcher error", "error", werr)
				}
			}
		}
	},
}

// printSink streams each finished extraction to stdout as one JSON line.
type printSink struct{}

func (printSink) Collect(path string, res *engine.Result, err error) {
	enc := json.NewEncoder(os.Stdout)
	if err != nil {
		_ = enc.Encode(map[string]string{"path": path, "error": err.Error()})
		return
	}
	_ = enc.Encode(res)
}

func init() {
	watchCmd.Flags().StringVarP(&watchProfileID, "profile", "p", "", "profile id (file name without .json)")
	watchCmd.Flags().BoolVar(&watchInitialScan, "initial-scan", false, "also extract documents already present")
	_ = watchCmd.MarkFlagRequired("profile")
}
