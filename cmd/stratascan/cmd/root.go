// Package cmd holds the stratascan CLI commands.
package cmd

import (
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"StrataScan/internal/collector"
	"StrataScan/internal/config"
	"StrataScan/internal/layer"
	"StrataScan/internal/pipeline"
	"StrataScan/internal/pkg/logger"
	"StrataScan/internal/recorder"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "stratascan",
	Short: "Three-layer US stock analysis: macro environment, dynamic screening, technical confirmation",
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "path to the config file")
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(analyzeCmd)
}

// app bundles everything a command needs after wiring.
type app struct {
	cfg      *config.Config
	log      zerolog.Logger
	analyzer *pipeline.Analyzer
	macro    *layer.MacroAnalyzer
	recorder recorder.Recorder
}

// buildApp loads configuration and wires the fetchers, layers and pipeline.
func buildApp() (*app, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.Level, cfg.Log.Pretty)
	if err != nil {
		return nil, err
	}

	var market collector.MarketDataFetcher
	var macroFetcher collector.MacroFetcher
	if cfg.Data.UseMock {
		mock := &collector.MockFetcher{}
		market = mock
		macroFetcher = mock
		log.Warn().Msg("running on mock market data")
	} else {
		yahoo := collector.NewYahooFetcher(log)
		if cfg.Data.FinnhubAPIKey != "" {
			finnhub := collector.NewFinnhubClient(cfg.Data.FinnhubAPIKey, log)
			market = collector.NewEnrichedFetcher(yahoo, finnhub, log)
		} else {
			market = yahoo
			log.Warn().Msg("no finnhub key configured, fundamentals will be sparse")
		}
		macroFetcher = collector.NewMacroClient(cfg.Data.FredAPIKey, log)
	}

	policy := cfg.Policy()
	macro := layer.NewMacroAnalyzer(macroFetcher, log)
	screener := layer.NewScreener(market, policy, cfg.Data.Universe, log)
	confirmer := layer.NewConfirmer(market, policy, log)

	var rec recorder.Recorder = recorder.NewNoopRecorder()
	if cfg.Database.SQLitePath != "" {
		rec, err = recorder.NewSQLiteRecorder(cfg.Database.SQLitePath, log)
		if err != nil {
			return nil, err
		}
	}

	return &app{
		cfg:      cfg,
		log:      log,
		analyzer: pipeline.NewAnalyzer(macro, screener, confirmer, log),
		macro:    macro,
		recorder: rec,
	}, nil
}
