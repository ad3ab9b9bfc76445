package main

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"trafficsandbox.ai/internal/sandbox/gameplay"
	"trafficsandbox.ai/internal/sandbox/session"
	"trafficsandbox.ai/internal/ui"
)

func playCmd(opts *options, logger *log.Logger) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play a session in the terminal",
		Long: `Reads one frame of input per line:
  <key>        press a menu hotkey or action label
  :<choice>    pick a wizard choice
  esc          abort a wizard
  +<seconds>   advance the simulation`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := opts.open(cmd, logger, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			mode, err := gameplay.ParseMode(rt.flags.InitialMode)
			if err != nil {
				return err
			}
			app, err := rt.newApp(rt.flags)
			if err != nil {
				return err
			}
			mgr, err := session.New(ui.NewEventCtx(ui.Input{}, logger), app, mode)
			if err != nil {
				return fmt.Errorf("initial mode %s: %w", mode, err)
			}
			return playLoop(mgr, cmd.InOrStdin(), cmd.OutOrStdout(), logger)
		},
	}
}

func playLoop(mgr *session.Manager, in io.Reader, out io.Writer, logger *log.Logger) error {
	draw := func() {
		var c ui.TextCanvas
		mgr.Draw(&c)
		fmt.Fprintf(out, "\n[%s]\n%s\n> ", mgr.App().Primary.Sim.Time(), c.String())
	}
	draw()

	sc := bufio.NewScanner(in)
	for !mgr.Done() && sc.Scan() {
		input, ok := parseInputLine(sc.Text())
		if !ok {
			fmt.Fprintln(out, "?")
			continue
		}
		if err := mgr.Event(ui.NewEventCtx(input, logger)); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
		if !mgr.Done() {
			draw()
		}
	}
	return sc.Err()
}

func parseInputLine(line string) (ui.Input, bool) {
	line = strings.TrimSpace(line)
	switch {
	case line == "":
		return ui.Input{}, true
	case line == "esc":
		return ui.Input{Escape: true}, true
	case strings.HasPrefix(line, ":"):
		return ui.Input{Choice: strings.TrimSpace(line[1:])}, true
	case strings.HasPrefix(line, "+"):
		secs, err := strconv.ParseFloat(line[1:], 64)
		if err != nil || secs < 0 {
			return ui.Input{}, false
		}
		return ui.Input{Step: secs}, true
	default:
		return ui.Input{Key: line}, true
	}
}
