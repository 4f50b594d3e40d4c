package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/termweb/termweb/internal/logging"
)

var version = "0.1.0"

var cfgFile string

var log = logging.L("main")

var rootCmd = &cobra.Command{
	Use:   "termweb",
	Short: "termweb",
	Long:  `termweb - an interactive browser streaming engine for terminals that speak an image protocol`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default searches the platform config dir and .)")

	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(doctorCmd)
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("termweb v%s\n", version)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
