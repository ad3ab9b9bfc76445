package main

import (
	"log"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	logger := log.New(os.Stdout, "[sandbox] ", log.LstdFlags|log.Lmicroseconds)
	if err := newRootCmd(logger).Execute(); err != nil {
		logger.Fatalf("%v", err)
	}
}

func newRootCmd(logger *log.Logger) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:           "sandbox",
		Short:         "Traffic simulation sandbox with gameplay modes",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	opts.bind(rootCmd)

	rootCmd.AddCommand(serveCmd(opts, logger))
	rootCmd.AddCommand(playCmd(opts, logger))
	rootCmd.AddCommand(prebakeCmd(opts, logger))
	rootCmd.AddCommand(scenariosCmd(opts, logger))
	rootCmd.AddCommand(genmapCmd(opts, logger))
	return rootCmd
}
