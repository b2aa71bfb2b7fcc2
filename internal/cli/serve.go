package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"github.com/tmahmood/envelop-budget/internal/server"
)

type ServeCmd struct {
	Host string `help:"Interface to listen on (defaults to SERVER_HOST)."`
	Port string `help:"Port to listen on (defaults to SERVER_PORT)." short:"p"`
}

func (cmd *ServeCmd) Run(ctx *kong.Context, globals *Globals, app *App) error {
	if _, err := app.Current(); err != nil {
		return err
	}

	cfg := app.Config.Server
	if cmd.Host != "" {
		cfg.Host = cmd.Host
	}
	if cmd.Port != "" {
		cfg.Port = cmd.Port
	}

	srv := server.New(cfg, app.Ledger, app.Audit, app.DB, app.Registry, app.Logger)
	printInfof(ctx.Stdout, "Serving budget API on http://%s", srv.Addr())

	runCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return srv.Run(runCtx)
}
