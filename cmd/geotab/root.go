// Command geotab is a small CLI around the MyGeotab query client: it runs
// list, find, and feed queries and prints the raw JSON results.
package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"telematics-hq/mygeotab-go/config"
	"telematics-hq/mygeotab-go/geotab/httpengine"
)

var (
	flagConfigPath string
	flagServer     string
	flagDatabase   string
	flagUserName   string
	flagPassword   string
	flagSessionID  string
	flagVerbose    bool
)

var rootCmd = &cobra.Command{
	Use:           "geotab",
	Short:         "Query the MyGeotab API",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigPath, "config", "", "path to a YAML config file")
	rootCmd.PersistentFlags().StringVar(&flagServer, "server", "", "MyGeotab server, e.g. my.geotab.com")
	rootCmd.PersistentFlags().StringVar(&flagDatabase, "database", "", "database name")
	rootCmd.PersistentFlags().StringVar(&flagUserName, "username", "", "user name")
	rootCmd.PersistentFlags().StringVar(&flagPassword, "password", "", "password")
	rootCmd.PersistentFlags().StringVar(&flagSessionID, "session-id", "", "session id to use instead of a password")
	rootCmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "log API calls to stderr")
}

// buildClient assembles a client from the config file, environment, and
// flags, with flags taking precedence.
func buildClient() (*httpengine.Client, error) {
	cfg, loadErr := config.Load(flagConfigPath)
	if loadErr != nil {
		return nil, loadErr
	}

	applyFlagOverrides(&cfg)

	connection, connErr := cfg.Connection()
	if connErr != nil {
		return nil, connErr
	}

	options := []httpengine.Option{httpengine.WithTimeout(cfg.Timeout())}

	if flagVerbose {
		logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
		options = append(options, httpengine.WithLogger(logger))
	}

	return httpengine.NewClient(connection, options...)
}

func applyFlagOverrides(cfg *config.Config) {
	if flagServer != "" {
		cfg.Server = flagServer
	}

	if flagDatabase != "" {
		cfg.Database = flagDatabase
	}

	if flagUserName != "" {
		cfg.UserName = flagUserName
	}

	if flagPassword != "" {
		cfg.Password = flagPassword
	}

	if flagSessionID != "" {
		cfg.SessionID = flagSessionID
	}
}
