package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/termweb/termweb/internal/capability"
	"github.com/termweb/termweb/internal/config"
)

var doctorChromeBin string

func init() {
	doctorCmd.Flags().StringVar(&doctorChromeBin, "chrome-bin", "", "path to the browser binary (overrides config/CHROME_BIN)")
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "print capability diagnostics",
	Run: func(cmd *cobra.Command, args []string) {
		override := doctorChromeBin
		if override == "" {
			if cfg, err := config.Load(cfgFile); err == nil {
				override = cfg.ChromeBinary
			}
		}

		report := capability.RunAll(override)
		fmt.Print(capability.FormatTable(report))
		if report.AnyFailed() {
			os.Exit(1)
		}
	},
}
