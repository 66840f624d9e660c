// Package cmd provides the command-line interface for drampower.
package cmd

import (
	"errors"
	"io/fs"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "drampower",
	Short: "drampower estimates the power consumption of DRAM devices.",
	Long: `drampower replays a DRAM command trace against a memory ` +
		`specification and reports the cycles each rank and bank spends in ` +
		`every power state, together with the resulting energy. Defaults ` +
		`for most flags can be set with DRAMPOWER_* environment variables ` +
		`or a .env file in the working directory.`,
	SilenceUsage: true,
	PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
		return loadDotEnv(".env")
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		atexit.Exit(1)
	}
}

// loadDotEnv reads environment defaults from a file. A missing file is not an
// error. Variables already present in the environment are kept.
func loadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}
