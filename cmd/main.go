package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pathboard.dev/pathboard"
	"pathboard.dev/pathboard/feed"
	"pathboard.dev/pathboard/storage"
)

var rootCmd = &cobra.Command{
	Use:          "pathboard",
	Short:        "PATH departure board tool",
	Long:         "Fetches PATH departure boards and service alerts",
	SilenceUsage: true,
}

var (
	ridePathURL string
	alertsURL   string
	dbDirectory string
	verbose     bool
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&ridePathURL, "ridepath-url", "", "", "Departure feed URL override")
	rootCmd.PersistentFlags().StringVarP(&alertsURL, "alerts-url", "", "", "Alerts document URL override")
	rootCmd.PersistentFlags().StringVarP(&dbDirectory, "db", "", "", "Directory for on-disk snapshot storage (in-memory if unset)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func buildManager() (*pathboard.Manager, error) {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		With().Timestamp().Logger()
	if !verbose {
		logger = logger.Level(zerolog.WarnLevel)
	}

	var st storage.Storage
	var err error
	if dbDirectory != "" {
		st, err = storage.NewSQLiteStorage(storage.SQLiteConfig{
			OnDisk:    true,
			Directory: dbDirectory,
		})
		if err != nil {
			return nil, fmt.Errorf("opening storage: %w", err)
		}
	} else {
		st = storage.NewMemoryStorage()
	}

	manager, err := pathboard.NewManager(feed.NewClient(feed.NewHTTPSource(), st, logger))
	if err != nil {
		return nil, err
	}

	if ridePathURL != "" {
		manager.RidePathURL = ridePathURL
	}
	if alertsURL != "" {
		manager.AlertsURL = alertsURL
	}

	return manager, nil
}
