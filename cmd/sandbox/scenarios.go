package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"trafficsandbox.ai/internal/sandbox/gameplay"
)

func scenariosCmd(opts *options, logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios [map]",
		Short: "List the scenarios that can be played on a map",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.open(cmd, logger, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			mapName := rt.flags.Load
			if len(args) == 1 {
				mapName = args[0]
			}
			names, err := rt.scenarios.List(mapName)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			for _, n := range names {
				fmt.Fprintln(out, n)
			}
			fmt.Fprintln(out, gameplay.BuiltinScenarioName(rt.flags.NumAgents))
			fmt.Fprintln(out, gameplay.JustBuses)
			return nil
		},
	}
}
