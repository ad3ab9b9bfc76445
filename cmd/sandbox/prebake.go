package main

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"trafficsandbox.ai/internal/sandbox/gameplay"
	"trafficsandbox.ai/internal/sim/analytics"
	"trafficsandbox.ai/internal/sim/geom"
	"trafficsandbox.ai/internal/sim/timer"
	"trafficsandbox.ai/internal/ui"
)

func prebakeCmd(opts *options, logger *log.Logger) *cobra.Command {
	var (
		until float64
		step  float64
	)

	cmd := &cobra.Command{
		Use:   "prebake [scenario]",
		Short: "Run a scenario headlessly and save its analytics as the map's baseline",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := gameplay.TypicalScenario
			if len(args) == 1 {
				name = args[0]
			}
			if step <= 0 || until <= 0 {
				return fmt.Errorf("--until and --step must be > 0")
			}
			rt, err := opts.open(cmd, logger, false)
			if err != nil {
				return err
			}
			defer rt.Close()

			app, err := rt.newApp(rt.flags)
			if err != nil {
				return err
			}
			ctx := ui.NewEventCtx(ui.Input{}, logger)
			if _, err := gameplay.Initialize(ctx, gameplay.PlayScenario{Scenario: name}, app); err != nil {
				return err
			}

			pm := app.Primary
			end := geom.Time(0).Add(geom.Hours(until))
			t := timer.New("prebake "+name, logger)
			t.Start("simulate")
			for pm.Sim.Time().Before(end) {
				d := geom.Minutes(step)
				if left := end.Sub(pm.Sim.Time()); left < d {
					d = left
				}
				pm.Sim.Step(pm.Map, d)
			}
			t.Stop("simulate")

			a := analytics.Collect(pm.Sim)
			t.NoteCount(a.NumFinishedTrips(pm.Sim.Time()), "trips finished")
			if err := app.Baselines.Save(pm.Map.Name(), a); err != nil {
				return err
			}
			t.Note("wrote " + app.Baselines.Path(pm.Map.Name()))
			t.Done()
			return nil
		},
	}

	cmd.Flags().Float64Var(&until, "until", 24, "simulated hours to run")
	cmd.Flags().Float64Var(&step, "step", 1, "simulated minutes per step")
	return cmd
}
