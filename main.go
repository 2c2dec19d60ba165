// Command cc-miner launches the turtle fleet controller: it loads the
// configured listen address, drives every agent with the stripmine
// strategy, and serves the agent-facing websocket endpoint and the
// read-only status dashboard until killed.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gorilla/mux"

	"github.com/alexfayers/cc-miner/config"
	"github.com/alexfayers/cc-miner/dashboard"
	"github.com/alexfayers/cc-miner/strategy"
	"github.com/alexfayers/cc-miner/supervisor"
)

var (
	configPath *string
	verbose    *bool
)

func init() {
	configPath = flag.String("config", "config.yml", "path to the controller's YAML config file")
	verbose = flag.Bool("verbose", false, "raise logger verbosity")
	flag.Parse()
}

func debugf(cfg *config.Config, format string, args ...interface{}) {
	if cfg.Debug.Enabled || *verbose {
		log.Printf(format, args...)
	}
}

func runApp() error {
	cfg, err := config.Load(*configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	debugf(cfg, "loaded config: %s by %s, listening on %s", cfg.Info.Name, cfg.Info.Author, cfg.Addr())

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	strat := strategy.Strategy(strategy.NewStripmineStrategy())
	super := supervisor.New(strat)

	dash := dashboard.New(super.Snapshots)

	go func() {
		for snapshots := range super.RunStatusTask(ctx) {
			debugf(cfg, "status: %d agent(s) registered", len(snapshots))
		}
	}()

	r := mux.NewRouter()
	super.Routes(r)
	dash.Routes(r.PathPrefix("/dashboard").Subrouter())

	srv := &http.Server{Addr: cfg.Addr(), Handler: r}
	go func() {
		<-ctx.Done()
		_ = srv.Close()
	}()

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func main() {
	if err := runApp(); err != nil {
		log.Fatal(err)
	}
}
