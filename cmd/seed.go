package cmd

import (
	"context"

	"order-manager/feature/categories"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var seedCmd = &cobra.Command{
	Use:   "seed [slug...]",
	Short: "Create categories when none exist",
	Long: `Seeds the category collection. Without arguments the configured
CATALOG_SEED_CATEGORIES list is used. Existing categories are never touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := context.Background()

		rt, err := bootstrap(ctx, false)
		if err != nil {
			return err
		}
		defer rt.close()

		slugs := args
		if len(slugs) == 0 {
			slugs = rt.cfg.Catalog.SeedCategories
		}

		added, err := categories.NewService(rt.store, rt.logger).Seed(ctx, slugs)
		if err != nil {
			return err
		}
		if added == 0 {
			rt.logger.Info("Categories already present, nothing seeded")
			return nil
		}
		rt.logger.Info("Seed complete", zap.Int("added", added))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(seedCmd)
}
