package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tideline/internal/adapters/simulator"
	"tideline/internal/logging"
	"tideline/internal/server"
)

// ServeCmd serves the local simulator over HTTP
type ServeCmd struct {
	Addr string `help:"Address to listen on (overrides $TIDELINE_SERVE_ADDR)"`
}

// Run executes the serve command
func (s *ServeCmd) Run(cli *CLI) error {
	addr := s.Addr
	if addr == "" {
		addr = cli.Config.ServeAddr
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	sim := simulator.NewSimulator(simulator.DefaultCatalog(), cli.Config.SimulatorLatency)
	srv := server.NewServer(addr, sim)

	logging.Logger.Info("Executing serve command", "address", addr)
	fmt.Printf("Simulator listening on %s\n", addr)
	return srv.Start(ctx)
}
