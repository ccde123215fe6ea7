package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "qagen",
		Short:         "QA test asset generator: automation script archives and patient workbooks",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(serveCmd())
	rootCmd.AddCommand(scriptsCmd())
	rootCmd.AddCommand(patientsCmd())
	rootCmd.AddCommand(migrateCmd())

	if err := rootCmd.Execute(); err != nil {
		logger := newLogger(os.Getenv("ENV"))
		logger.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// newLogger writes JSON to stdout, or console output in development.
func newLogger(env string) zerolog.Logger {
	if env == "development" {
		return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	}
	return zerolog.New(os.Stdout).With().Timestamp().Logger()
}
