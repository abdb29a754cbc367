package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"surfsup-server/internal/config"
	"surfsup-server/internal/db"
	"surfsup-server/internal/logging"
	"surfsup-server/internal/migrate"
	climate "surfsup-server/internal/modules/climate"
	"surfsup-server/internal/modules/climate/service"
)

const usage = `usage: %s <command>
  migrate  apply pending schema migrations to the dataset
  pending  list migrations not yet applied
  summary  print dataset size, date span and most active station as JSON
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintf(os.Stderr, usage, os.Args[0])
		os.Exit(1)
	}

	cfg, err := config.LoadFromEnv()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logging.New(os.Stderr, cfg, "dev", "surfsup-tools"))

	cmd := os.Args[1]
	switch cmd {
	case "migrate", "pending":
		if cfg.Driver != config.DriverSQLite {
			fmt.Fprintf(os.Stderr, "%s: only supported for %s\n", cmd, config.DriverSQLite)
			os.Exit(1)
		}
		cfg.ReadOnly = false
	case "summary":
		cfg.ReadOnly = true
	default:
		fmt.Fprintf(os.Stderr, "unknown command: %s\n", cmd)
		fmt.Fprintf(os.Stderr, usage, os.Args[0])
		os.Exit(1)
	}

	if err := run(context.Background(), cmd, cfg); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", cmd, err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cmd string, cfg config.Config) error {
	conn, err := db.Open(ctx, cfg, slog.Default())
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := db.Close(conn); closeErr != nil {
			slog.Error("db close", "err", closeErr)
		}
	}()

	switch cmd {
	case "migrate":
		n, err := migrate.Run(ctx, conn)
		if err != nil {
			return err
		}
		fmt.Printf("%d migrations applied\n", n)
	case "pending":
		pending, err := migrate.Pending(ctx, conn)
		if err != nil {
			return err
		}
		for _, m := range pending {
			fmt.Printf("%s_%s\n", m.Version, m.Name)
		}
	case "summary":
		dataset, err := climate.LoadStore(ctx, conn)
		if err != nil {
			return err
		}
		summary, err := service.NewService(dataset).Summary()
		if err != nil {
			return err
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(summary)
	}
	return nil
}
