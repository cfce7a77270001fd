package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	serveAddr    string
	serveWatch   bool
	serveNoWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the JSON API",
	Long:  "Serves /api/check, /api/search, /api/terms, /api/embedded and /api/health. SIGHUP reloads every list.",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	f := serveCmd.Flags()
	f.StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
	f.BoolVar(&serveWatch, "watch", false, "Reload lists when terms_dir changes")
	f.BoolVar(&serveNoWatch, "no-watch", false, "Disable hot reload")
}

func runServe(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	if serveAddr != "" {
		a.Config.ListenAddress = serveAddr
	}
	switch {
	case serveNoWatch:
		a.Config.Watch = false
	case serveWatch:
		a.Config.Watch = true
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Start(); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "⚡ termcheck serving at %s\n", a.WebServer.URL())

	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-hup:
			a.Reload()
			fmt.Fprintln(cmd.OutOrStdout(), "⚡ lists reloaded")
		case <-ctx.Done():
			fmt.Fprintln(cmd.OutOrStdout(), "\n⚡ shutting down...")
			return a.Stop()
		}
	}
}
