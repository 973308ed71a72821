package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/jwhyun/tripnote/internal/cli"
	"github.com/jwhyun/tripnote/internal/db"
	"github.com/jwhyun/tripnote/internal/repository"
	"github.com/jwhyun/tripnote/internal/service"
	"github.com/jwhyun/tripnote/internal/tripapi"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// A .env in the working directory is a convenience for development;
	// real environment variables win.
	_ = godotenv.Load()

	// Determine cache path: env var or default ~/.tripnote/cache.db
	dbPath := os.Getenv("TRIPNOTE_DB")
	if dbPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("finding home directory: %w", err)
		}
		dbPath = filepath.Join(home, ".tripnote", "cache.db")
	}

	database, err := db.OpenDB(dbPath)
	if err != nil {
		return fmt.Errorf("opening cache database: %w", err)
	}
	defer database.Close()

	apiCfg := tripapi.LoadConfig()
	var observer tripapi.Observer = tripapi.NoopObserver{}
	var useCaseObs service.UseCaseObserver = service.NoopUseCaseObserver{}
	if apiCfg.LogCalls {
		observer = tripapi.NewLogObserver(os.Stderr)
		useCaseObs = service.NewLogUseCaseObserver(os.Stderr)
	}
	api := tripapi.NewClient(apiCfg, observer)

	snapshotRepo := repository.NewSQLiteSnapshotRepo(database)
	cityRepo := repository.NewSQLiteCityRepo(database)

	userID := int64(1)
	if v := os.Getenv("TRIPNOTE_USER_ID"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			userID = n
		}
	}

	app := &cli.App{
		Trips:  service.NewTripService(api, snapshotRepo, useCaseObs),
		Editor: service.NewEditorService(api, snapshotRepo, useCaseObs),
		Cities: service.NewCityService(api, cityRepo, useCaseObs),
		UserID: userID,
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
