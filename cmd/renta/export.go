package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/ilyanormand/fwn-renta/internal/engine"
	"github.com/ilyanormand/fwn-renta/internal/export"
)

var exportOut string

var exportCmd = &cobra.Command{
	Use:   "export <results.jsonl>...",
	Short: "Render extraction results (JSON lines) into an XLSX workbook",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var results []*engine.Result
		for _, path := range args {
			batch, err := readResults(path)
			if err != nil {
				return err
			}
			results = append(results, batch...)
		}

		out := exportOut
		if out == "" {
			out = cfg.Export.OutputPath
		}
		data, err := export.NewService(cfg.Export.SheetName, logger).ResultsXLSX(results)
		if err != nil {
			return err
		}
		if err := os.WriteFile(out, data, 0o644); err != nil {
			return fmt.Errorf("write %s: %w", out, err)
		}
		logger.Info("workbook written", "path", out, "documents", len(results))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportOut, "out", "o", "", "output workbook path (default $RENTA_EXPORT_PATH)")
}

func readResults(path string) ([]*engine.Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	var results []*engine.Result
	dec := json.NewDecoder(f)
	for {
		var res engine.Result
		if err := dec.Decode(&res); err != nil {
			if errors.Is(err, io.EOF) {
				return results, nil
			}
			return nil, fmt.Errorf("decode %s: %w", path, err)
		}
		results = append(results, &res)
	}
}
