package main

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/ilyanormand/fwn-renta/internal/engine"
	"github.com/ilyanormand/fwn-renta/internal/ingest"
	"github.com/ilyanormand/fwn-renta/internal/layout"
)

var (
	batchProfileID string
	batchOut       string
)

var batchCmd = &cobra.Command{
	Use:   "batch <directory>",
	Short: "Extract every document in a directory using concurrent workers",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prof, err := loadProfile(batchProfileID)
		if err != nil {
			return err
		}

		eng := engine.New(layout.NewTabulaExtractor(logger), logger)
		sink := ingest.NewCollector()
		queue := ingest.NewExtractorQueue(eng, sink, logger,
			ingest.WithWorkers(cfg.Batch.Workers),
			ingest.WithQueueSize(cfg.Batch.QueueSize),
			ingest.WithProcessTimeout(cfg.Batch.ProcessTimeout),
		)

		queued := 0
		err = filepath.WalkDir(args[0], func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".pdf") {
				return nil
			}
			queued++
			return queue.Enqueue(cmd.Context(), ingest.Job{Path: path, Profile: prof, SubmittedAt: time.Now()})
		})
		if err != nil {
			return err
		}
		queue.Shutdown(cmd.Context())

		results := sink.Results()
		logger.Info("batch complete", "queued", queued, "extracted", len(results), "failed", len(sink.Failed()))
		for path, ferr := range sink.Failed() {
			logger.Error("document failed", "path", path, "error", ferr)
		}

		return writeResults(results, batchOut)
	},
}

func init() {
	batchCmd.Flags().StringVarP(&batchProfileID, "profile", "p", "", "profile id (file name without .json)")
	batchCmd.Flags().StringVarP(&batchOut, "out", "o", "", "write results as JSON lines to this file (default stdout)")
	_ = batchCmd.MarkFlagRequired("profile")
}

// writeResults emits one JSON document per line, the format the export
// command reads back.
func writeResults(results []*engine.Result, out string) error {
	w := os.Stdout
	if out != "" {
		f, err := os.Create(out)
		if err != nil {
			return fmt.Errorf("create %s: %w", out, err)
		}
		defer f.Close()
		w = f
	}
	enc := json.NewEncoder(w)
	for _, res := range results {
		if err := enc.Encode(res); err != nil {
			return err
		}
	}
	return nil
}
