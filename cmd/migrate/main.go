// migrate runs DB migrations from embedded SQL; use with ./scripts/migrate.sh or go run ./cmd/migrate.
package main

import (
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/VictorSaf/ainvestfeed/internal/config"
	"github.com/VictorSaf/ainvestfeed/internal/db/migrate"
)

func main() {
	direction := flag.String("direction", "up", "Migration direction: up or down")
	status := flag.Bool("status", false, "Print the current schema version and exit")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	if cfg.DatabaseURL == "" {
		fmt.Fprintln(os.Stderr, "DATABASE_URL is not set; create a .env from .env.example or set DATABASE_URL")
		os.Exit(1)
	}

	if *status {
		printStatus(cfg.DatabaseURL)
		return
	}

	if err := migrate.Run(cfg.DatabaseURL, *direction); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		fmt.Fprintln(os.Stderr, "migrate:", err)
		os.Exit(1)
	}
	printStatus(cfg.DatabaseURL)
}

func printStatus(dsn string) {
	st, err := migrate.Version(dsn)
	if err != nil {
		fmt.Fprintln(os.Stderr, "migrate version:", err)
		os.Exit(1)
	}
	switch {
	case st.Empty:
		fmt.Println("schema: no migrations applied")
	case st.Dirty:
		fmt.Printf("schema: version %d (dirty)\n", st.Version)
	default:
		fmt.Printf("schema: version %d\n", st.Version)
	}
}
