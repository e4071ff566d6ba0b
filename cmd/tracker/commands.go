package main

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/vinner21/water-follow/internal/assembler"
	"github.com/vinner21/water-follow/internal/cache"
	"github.com/vinner21/water-follow/internal/collector"
	"github.com/vinner21/water-follow/internal/config"
	"github.com/vinner21/water-follow/internal/discovery"
	"github.com/vinner21/water-follow/internal/leverade"
	"github.com/vinner21/water-follow/internal/metrics"
	"github.com/vinner21/water-follow/internal/site"
)

var (
	refreshRosters bool
	metricsFile    string
)

func init() {
	buildCmd.Flags().BoolVar(&refreshRosters, "refresh-rosters", false,
		"Re-fetch all team rosters from the API (expensive, one call per team)")
	buildCmd.Flags().StringVar(&metricsFile, "metrics-file", "",
		"Write Prometheus metrics to this file after the build")
	rootCmd.AddCommand(buildCmd)
	rootCmd.AddCommand(cleanCmd)
}

var buildCmd = &cobra.Command{
	Use:   "build",
	Short: "Fetch season data and generate the site",
	RunE: func(cmd *cobra.Command, args []string) error {
		log.SetFormatter(log.JSONFormatter)
		runID := uuid.New().String()
		logger := log.With("run_id", runID)
		log.SetDefault(logger)

		cfg := config.Load(configPath)
		if refreshRosters {
			log.Info("Roster refresh enabled, re-fetching all team rosters")
		} else {
			log.Info("Rosters served from cache (pass --refresh-rosters to update)")
		}

		start := time.Now()
		m := metrics.NewService()

		client := leverade.NewClient(cfg.APIBaseURL, m)
		store, err := cache.New(cfg.DataDir, m)
		if err != nil {
			return err
		}
		disc := discovery.New(client)
		coll := collector.New(client, store, m)
		asm := assembler.New(disc, coll, store)

		seasons, err := asm.Assemble(cfg.ManagerID, cfg.ClubID, assembler.Options{
			RefreshRosters: refreshRosters,
		})
		if err != nil {
			return err
		}

		err = site.WriteSite(cfg.OutputDir, seasons, site.Config{
			ClubID:        cfg.ClubID,
			ClupikBaseURL: cfg.ClupikBaseURL,
		})
		if err != nil {
			return err
		}

		m.SetBuildDuration(time.Since(start).Seconds())
		if metricsFile != "" {
			if err := metrics.WriteTextfile(metricsFile); err != nil {
				log.Warn("Could not write metrics file", "path", metricsFile, "error", err)
			}
		}

		for _, s := range seasons {
			matches := 0
			for _, cat := range s.Categories {
				matches += len(cat.Matches)
			}
			log.Info("Season built", "season", s.Label, "status", s.Status,
				"categories", len(s.Categories), "matches", matches)
		}
		log.Info("Build finished", "seasons", len(seasons), "duration", time.Since(start))
		return nil
	},
}

var cleanCmd = &cobra.Command{
	Use:   "clean-tournaments",
	Short: "Remove per-tournament cache files",
	Long: `Removes the t_*.json files that cache finished tournaments inside a
still-open season. The next build re-fetches them from the API.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Load(configPath)
		store, err := cache.New(cfg.DataDir, metrics.NewService())
		if err != nil {
			return err
		}
		return store.CleanupTournamentCaches()
	},
}
