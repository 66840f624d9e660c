package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// envFlags maps the flags of the run command to the environment variables
// that provide their defaults.
var envFlags = map[string]string{
	"memspec":   "DRAMPOWER_MEMSPEC",
	"preset":    "DRAMPOWER_PRESET",
	"window":    "DRAMPOWER_WINDOW",
	"record":    "DRAMPOWER_RECORD",
	"record-db": "DRAMPOWER_RECORD_DB",
	"monitor":   "DRAMPOWER_MONITOR",
	"port":      "DRAMPOWER_MONITOR_PORT",
	"quiet":     "DRAMPOWER_QUIET",
}

// applyEnv sets every flag that was not given on the command line from its
// environment variable.
func applyEnv(cmd *cobra.Command) error {
	for flag, env := range envFlags {
		if cmd.Flags().Lookup(flag) == nil || cmd.Flags().Changed(flag) {
			continue
		}

		value, ok := os.LookupEnv(env)
		if !ok {
			continue
		}

		if err := cmd.Flags().Set(flag, value); err != nil {
			return fmt.Errorf("%s: %w", env, err)
		}
	}

	return nil
}
