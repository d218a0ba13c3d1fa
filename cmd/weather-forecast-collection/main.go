package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/i474232898/weather-forecast-collection/internal/config"
	"github.com/i474232898/weather-forecast-collection/internal/logger"
)

var (
	cfg *config.AppConfig
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "weather-forecast-collection",
	Short: "Collect normalized forecasts from several weather providers",
	Long: `weather-forecast-collection queries AccuWeather, the National Weather Service,
ClimaCell and OpenWeatherMap for one location and normalizes every response
into validated, typed forecasts.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		log = logger.New(os.Stderr, cfg.LogLevel)
		slog.SetDefault(log)
		return nil
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
