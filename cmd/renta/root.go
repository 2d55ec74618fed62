package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/ilyanormand/fwn-renta/internal/common"
	"github.com/ilyanormand/fwn-renta/internal/profile"
)

var (
	cfg        *common.Config
	logger     *slog.Logger
	profileDir string
)

var rootCmd = &cobra.Command{
	Use:           "renta",
	Short:         "Configuration-driven order document extraction",
	Long:          "renta extracts vendor, line items and totals from semi-structured order documents, driven by per-vendor JSON profiles.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = common.LoadConfig()
		if profileDir != "" {
			cfg.Profiles.Dir = profileDir
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		logger = slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel(cfg.LogLevel)}))
		slog.SetDefault(logger)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&profileDir, "profile-dir", "", "directory of vendor profile JSON files (default $RENTA_PROFILE_DIR)")
	rootCmd.AddCommand(extractCmd, batchCmd, watchCmd, exportCmd)
}

func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func logLevel(name string) slog.Level {
	switch name {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func loadProfile(id string) (*profile.Profile, error) {
	store := profile.NewStore(cfg.Profiles.Dir, logger)
	if err := store.LoadAll(); err != nil {
		return nil, err
	}
	return store.Get(id)
}
