package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/suparena/storekit"
	"github.com/suparena/storekit/backend"
	"github.com/suparena/storekit/backend/memory"
	"github.com/suparena/storekit/backend/sqlite"
	"github.com/suparena/storekit/config"
	"github.com/suparena/storekit/queries"
)

var (
	versionFlag = flag.Bool("version", false, "Show version information")
	vFlag       = flag.Bool("v", false, "Show version information (short)")
	configFlag  = flag.String("config", "", "Path to YAML configuration")
	execFlag    = flag.String("exec", "", "Raw statement to execute against the configured backend")
	affectsFlag = flag.String("affects", "", "Comma-separated collections the statement affects")
)

func main() {
	// Parse flags early to catch version flag
	flag.Parse()

	// Handle version flag
	if *versionFlag || *vFlag {
		info := storekit.GetVersionInfo()
		fmt.Printf("storekit version %s\n", info.Version)
		fmt.Printf("Git commit: %s\n", info.GitCommit)
		fmt.Printf("Build date: %s\n", info.BuildDate)
		fmt.Printf("Go version: %s\n", info.GoVersion)
		os.Exit(0)
	}

	if *execFlag == "" {
		fmt.Fprintln(os.Stderr, "nothing to do: pass -exec or -version")
		flag.Usage()
		os.Exit(2)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "storekit: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()
	if *configFlag != "" {
		loaded, err := config.Load(*configFlag)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: cfg.Log.SlogLevel(),
	}))

	var be backend.Backend
	switch cfg.Database.Driver {
	case "memory":
		be = memory.New()
	default:
		opened, err := sqlite.Open(cfg.Database.Path,
			sqlite.WithLogger(logger),
			sqlite.WithBusyTimeout(cfg.Database.BusyTimeout),
		)
		if err != nil {
			return err
		}
		be = opened
	}

	store, err := storekit.New(be,
		storekit.WithLogger(logger),
		storekit.WithBusBuffer(cfg.Database.BusBuffer),
	)
	if err != nil {
		return err
	}
	defer store.Close()

	var affects []string
	if *affectsFlag != "" {
		affects = strings.Split(*affectsFlag, ",")
	}

	prepared, err := store.ExecRaw().
		WithQuery(queries.RawQuery{
			Statement:           *execFlag,
			AffectedCollections: affects,
		}).
		Prepare()
	if err != nil {
		return err
	}

	if err := prepared.ExecuteBlocking(context.Background()); err != nil {
		return err
	}
	logger.Info("statement executed", "affects", affects)
	return nil
}
