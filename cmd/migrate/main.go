package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/diagnosis/gympass/pkg/config"
	"github.com/diagnosis/gympass/pkg/database"
	"github.com/diagnosis/gympass/pkg/logger"
)

const usage = `usage: migrate [-database-url URL] up|down|version`

func main() {
	cfg := config.Load()

	databaseURL := flag.String("database-url", cfg.Database.URL, "postgres connection string")
	flag.Usage = func() { fmt.Fprintln(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*databaseURL, flag.Arg(0)); err != nil {
		logger.Error("Migration failed", "command", flag.Arg(0), "error", err)
		os.Exit(1)
	}
}

func run(databaseURL, command string) error {
	mg, err := database.NewMigrator(databaseURL)
	if err != nil {
		return err
	}
	defer mg.Close()

	switch command {
	case "up":
		if err := mg.Up(); err != nil {
			return err
		}
	case "down":
		if err := mg.Down(); err != nil {
			return err
		}
	case "version":
	default:
		return fmt.Errorf("unknown command %q", command)
	}

	version, dirty, err := mg.Version()
	if err != nil {
		return err
	}
	logger.Info("Schema version", "version", version, "dirty", dirty)
	return nil
}
