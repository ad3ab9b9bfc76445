package main

import (
	"log"

	"github.com/spf13/cobra"

	"trafficsandbox.ai/internal/sandbox/gameplay"
	"trafficsandbox.ai/internal/sim/scenario"
	"trafficsandbox.ai/internal/sim/world"
)

func genmapCmd(opts *options, logger *log.Logger) *cobra.Command {
	var (
		size   int
		seed   int64
		agents int
	)

	cmd := &cobra.Command{
		Use:   "genmap [name]",
		Short: "Generate a grid map and its typical weekday scenario",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := opts.open(cmd, logger, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			name := world.SyntheticName(size)
			if len(args) == 1 {
				name = args[0]
			}
			m := world.Synthetic(name, size, seed)
			if err := rt.maps.Save(m); err != nil {
				return err
			}
			logger.Printf("wrote %s", rt.maps.Path(name))

			typical := scenario.ScaledRun(m, agents)
			typical.Name = gameplay.TypicalScenario
			if err := rt.scenarios.Save(typical); err != nil {
				return err
			}
			logger.Printf("wrote %s", rt.scenarios.Path(name, typical.Name))
			return nil
		},
	}

	cmd.Flags().IntVar(&size, "size", 8, "grid size in blocks")
	cmd.Flags().Int64Var(&seed, "map-seed", 1, "layout seed")
	cmd.Flags().IntVar(&agents, "agents", 1000, "agents in the typical weekday scenario")
	return cmd
}
