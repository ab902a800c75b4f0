package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"cmspublish/internal/config"
	"cmspublish/internal/manifest"
	"cmspublish/internal/store"
)

// cmspublish-seed loads a TOML manifest into the sqlite database served by
// cmspublish. Seeding the same manifest twice leaves the database unchanged.
func main() {
	var configPath, dbPath string
	flag.StringVar(&configPath, "config", "", "Config file (default: user config dir)")
	flag.StringVar(&dbPath, "db", "", "SQLite database to seed (default: database.path from the config)")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [-db path] [-config path] manifest.toml\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		fmt.Fprintf(os.Stderr, "Error reading .env: %v\n", err)
		os.Exit(1)
	}

	if dbPath == "" {
		cfg, err := config.NewConfigService(configPath).Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
			os.Exit(1)
		}
		dbPath = cfg.Database.Path
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, flag.Arg(0), dbPath); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, manifestPath, dbPath string) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	st, err := store.Open(dbPath)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := m.Seed(ctx, st); err != nil {
		return fmt.Errorf("failed to seed %s: %w", dbPath, err)
	}

	groups := m.Groups()
	resources := 0
	for _, g := range groups {
		resources += len(g.Resources)
	}
	fmt.Printf("Seeded %s: %d groups, %d listed resources\n", dbPath, len(groups), resources)
	return nil
}
