package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"trafficsandbox.ai/internal/observability"
	"trafficsandbox.ai/internal/sandbox/gameplay"
	"trafficsandbox.ai/internal/sandbox/session"
	"trafficsandbox.ai/internal/transport/ws"
	"trafficsandbox.ai/internal/ui"
)

func serveCmd(opts *options, logger *log.Logger) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve sandbox sessions over websocket",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rt, err := opts.open(cmd, logger, true)
			if err != nil {
				return err
			}
			defer rt.Close()

			reg := prometheus.NewRegistry()
			reg.MustRegister(collectors.NewGoCollector())
			rt.metrics, err = observability.NewCollector(reg)
			if err != nil {
				return err
			}

			initial, err := gameplay.ParseMode(rt.flags.InitialMode)
			if err != nil {
				return err
			}
			newSession := func(mode gameplay.GameplayMode) (*session.Manager, error) {
				if mode == nil {
					mode = initial
				}
				app, err := rt.newApp(rt.flags)
				if err != nil {
					return nil, err
				}
				return session.New(ui.NewEventCtx(ui.Input{}, logger), app, mode)
			}

			// The configured mode has to start; there is nothing to fall back to.
			if _, err := newSession(nil); err != nil {
				return fmt.Errorf("initial mode %s: %w", initial, err)
			}

			mux := http.NewServeMux()
			mux.HandleFunc("/healthz", func(rw http.ResponseWriter, r *http.Request) {
				rw.WriteHeader(200)
				_, _ = rw.Write([]byte("ok"))
			})
			mux.Handle("/metrics", rt.metrics.Handler())
			mux.HandleFunc("/v1/ws", ws.NewServer(newSession, logger).Handler())

			srv := &http.Server{
				Addr:              addr,
				Handler:           mux,
				ReadHeaderTimeout: 5 * time.Second,
			}

			ctx, cancel := signalContext()
			defer cancel()
			go func() {
				<-ctx.Done()
				ctx2, cancel2 := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel2()
				_ = srv.Shutdown(ctx2)
			}()

			logger.Printf("listening on %s (map %s, mode %s)", addr, rt.flags.Load, initial)
			if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "http listen address")
	return cmd
}

func signalContext() (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(context.Background())
	ch := make(chan os.Signal, 2)
	signal.Notify(ch, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-ch
		cancel()
	}()
	return ctx, cancel
}
