package main

import (
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/ilyanormand/fwn-renta/internal/engine"
	"github.com/ilyanormand/fwn-renta/internal/layout"
)

var extractProfileID string

var extractCmd = &cobra.Command{
	Use:   "extract <document>",
	Short: "Extract one document and print the result as JSON",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prof, err := loadProfile(extractProfileID)
		if err != nil {
			return err
		}

		eng := engine.New(layout.NewTabulaExtractor(logger), logger)
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")

		res, err := eng.Extract(cmd.Context(), prof, args[0])
		if err != nil {
			// The failure replaces the whole result for this document.
			return enc.Encode(map[string]string{"error": err.Error()})
		}
		return enc.Encode(res)
	},
}

func init() {
	extractCmd.Flags().StringVarP(&extractProfileID, "profile", "p", "", "profile id (file name without .json)")
	_ = extractCmd.MarkFlagRequired("profile")
}
