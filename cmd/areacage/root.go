package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/nvalkov/areacage/internal/config"
	"github.com/nvalkov/areacage/internal/tablet"
)

// execute builds and runs the command tree. The bare command serves; the
// tablets subcommand prints the model catalog.
func execute() error {
	var verbose bool

	root := &cobra.Command{
		Use:          "areacage",
		Short:        "AreaCage hosts a browser configurator for tablet active areas",
		Long:         "AreaCage serves a browser UI for placing a tablet's active area: drag, resize, ratio-lock, align, and switch models while the area stays caged inside the surface.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(newLogger(verbose))
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	root.AddCommand(newTabletsCmd())

	return root.Execute()
}

// newLogger creates the application logger with timestamp formatting.
func newLogger(verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		TimeFormat:      "15:04:05.00",
		Level:           level,
	})
}

// newTabletsCmd lists the tablet catalog, including any user overrides.
func newTabletsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tablets",
		Short: "List the tablet model catalog",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			models, err := tablet.LoadCatalog(cfg.CatalogPath)
			if err != nil {
				return err
			}
			for _, m := range models {
				name := m.Name
				if m.Vendor != "" {
					name = m.Vendor + " " + m.Name
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%-18s %-32s %5.0f x %.0f mm\n", m.ID, name, m.Width, m.Height)
			}
			return nil
		},
	}
}
