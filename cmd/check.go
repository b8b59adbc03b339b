package cmd

import (
	"context"
	"fmt"

	"order-manager/feature/health"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Probe the store, schema, bucket and event broker",
	Long:  `Runs the same probes as GET /api/health and exits non-zero when any fails.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		rt, err := bootstrap(ctx, true)
		if err != nil {
			return err
		}
		defer rt.close()

		report := health.NewService(rt.healthDeps(), rt.logger).Run(ctx)
		for name, res := range report.Checks {
			if res.Status == health.StatusOK {
				rt.logger.Info("Check passed", zap.String("check", name))
				continue
			}
			fields := []zap.Field{zap.String("check", name), zap.String("error", res.Error)}
			if res.Schema != nil {
				fields = append(fields, zap.Any("missing_columns", res.Schema.Missing))
			}
			rt.logger.Error("Check failed", fields...)
		}

		if !report.Healthy() {
			return fmt.Errorf("health status %s", report.Status)
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
}
