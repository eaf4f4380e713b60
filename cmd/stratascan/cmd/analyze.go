package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var analyzeTimeout time.Duration

var analyzeCmd = &cobra.Command{
	Use:   "analyze",
	Short: "Run one full analysis pass and print the result as JSON",
	RunE: func(_ *cobra.Command, _ []string) error {
		application, err := buildApp()
		if err != nil {
			return err
		}
		defer application.recorder.Close()

		ctx, cancel := context.WithTimeout(context.Background(), analyzeTimeout)
		defer cancel()

		result, err := application.analyzer.Run(ctx)
		if err != nil {
			return err
		}
		if err := application.recorder.RecordRun(result); err != nil {
			application.log.Error().Err(err).Msg("record run failed")
		}

		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		return nil
	},
}

func init() {
	analyzeCmd.Flags().DurationVar(&analyzeTimeout, "timeout", 10*time.Minute, "maximum time for the full run")
}
