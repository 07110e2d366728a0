// Package svc implements the HTTP front-end: request routing, response
// caching, and the process lifecycle that wires config, store, cache,
// and metrics together at startup.
/*
 * Copyright (c) 2018-2020, NVIDIA CORPORATION. All rights reserved.
 */
package svc

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/pickaboo/radiobrowser-api-go/cache"
	"github.com/pickaboo/radiobrowser-api-go/click"
	"github.com/pickaboo/radiobrowser-api-go/cmn"
	"github.com/pickaboo/radiobrowser-api-go/metrics"
	"github.com/pickaboo/radiobrowser-api-go/store"
	"github.com/sirupsen/logrus"
)

const usecli = `
   Usage:
        radiobrowserd -config=</path/to/config.json> [-confcustom="key1=value1,key2=value2"]`

type cliFlags struct {
	configPath string
	confCustom string
	usage      bool
}

var cli = cliFlags{}

func init() {
	flag.StringVar(&cli.configPath, "config", "", "config filename: JSON file with server/cache/prometheus/broken_stations sections")
	flag.StringVar(&cli.confCustom, "confcustom", "",
		"\"key1=value1,key2=value2\" formatted string to override selected config entries")
	flag.BoolVar(&cli.usage, "h", false, "show usage and exit")
}

// daemon bundles the long-lived collaborators the process owns: the
// store, the response cache, the counters, the click de-duplicator and
// the HTTP server. Run starts the cache janitor alongside them.
type daemon struct {
	config *cmn.Config
	log    *logrus.Logger
	store  store.Store
	cache  *cache.ResponseCache
	access *metrics.AccessCounter
	clicks *metrics.ClickCounter
	dedup  *click.Dedup
	server *Server
}

// initDaemon parses flags, loads config, and wires every collaborator
// together without starting anything, leaving "Run it" to the caller.
func initDaemon(st store.Store) (*daemon, error) {
	flag.Parse()
	if cli.usage || len(os.Args[1:]) == 0 {
		flag.Usage()
		fmt.Fprintln(os.Stderr, usecli)
		os.Exit(2)
	}

	config, err := cmn.LoadConfig(cli.configPath, cli.confCustom)
	if err != nil {
		return nil, cmn.Wrap(err, "load config")
	}

	log := logrus.New()
	log.SetFormatter(&logrus.JSONFormatter{})

	respCache, err := cache.NewResponseCache(config.Cache)
	if err != nil {
		return nil, cmn.Wrap(err, "construct cache backend")
	}

	d := &daemon{
		config: config,
		log:    log,
		store:  st,
		cache:  respCache,
		access: metrics.NewAccessCounter(),
		clicks: &metrics.ClickCounter{},
		dedup:  click.NewDedup(config.Cache.ClickValid, 1_000_000),
	}
	d.server = NewServer(d.config, d.store, d.cache, d.access, d.clicks, d.dedup, log)
	return d, nil
}

// Run builds the daemon from st and blocks until SIGINT/SIGTERM, then
// shuts every collaborator down in turn. It returns a process exit code.
func Run(st store.Store) int {
	d, err := initDaemon(st)
	if err != nil {
		fmt.Fprintf(os.Stderr, "radiobrowserd: %v\n", err)
		return 1
	}

	ctx, cancel := context.WithCancel(context.Background())
	janitor := cache.NewJanitor(d.cache, d.config.Cache.JanitorInterval, d.log.WithField("daemon", "radiobrowserd"))
	go janitor.Run(ctx)

	serverErr := make(chan error, 1)
	go func() { serverErr <- d.server.ListenAndServe() }()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		d.log.Infof("received signal %v, shutting down", sig)
	case err := <-serverErr:
		if err != nil {
			d.log.WithError(err).Error("server exited with error")
		}
	}

	cancel()
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer shutdownCancel()
	if err := d.server.Shutdown(shutdownCtx); err != nil {
		d.log.WithError(err).Warn("graceful shutdown failed")
	}
	if err := d.cache.Close(); err != nil {
		d.log.WithError(err).Warn("cache close failed")
	}
	d.log.Info("terminated OK")
	return 0
}
