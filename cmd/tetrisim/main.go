// tetrisim runs the game on the host without a window.
//
// Usage:
//
//	tetrisim run              - Play seeded games with scripted buttons
//	tetrisim frame <out.png>  - Render the panel after N ms to a PNG
//	tetrisim config           - Print the default configuration
//
// Global flags:
//
//	--config <path>  - YAML config file (default: embedded defaults)
//	--seed <value>   - Piece generator seed (0 = random)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"picotris/config"
	"picotris/internal/buildinfo"
)

var (
	flagConfig string
	flagSeed   uint32
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:     "tetrisim",
	Short:   "Headless picotris simulator",
	Version: buildinfo.Short(),
	Long: `tetrisim drives the complete game (kernel, tasks, renderer) on a
simulated clock with scripted buttons.

Examples:
  tetrisim run --games 20 --ticks 300000
  tetrisim frame --ticks 5000 board.png
  tetrisim config > picotris.yaml`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "YAML config file (default: embedded defaults)")
	rootCmd.PersistentFlags().Uint32Var(&flagSeed, "seed", 0, "Piece generator seed (0 = random)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(frameCmd)
	rootCmd.AddCommand(configCmd)
}

func loadConfig() (config.Config, error) {
	return config.Load(flagConfig)
}
