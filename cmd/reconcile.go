package cmd

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"order-manager/core/reconcile"
	"order-manager/feature/audit"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	purgeOrphans  bool
	dryRunOrphans bool
	yesConfirm    bool
)

// reconcileCmd audits stock counters against orders.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Audit stock counters against the orders holding them",
	Long: `Lists every stock size with the quantity committed to orders, and every
order that no longer resolves to a stock size.

Examples:
  # Report only
  reconcile

  # Delete orphan orders (with interactive confirmation)
  reconcile --purge

  # Delete orphan orders without prompting
  reconcile --purge --yes`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().BoolVar(&purgeOrphans, "purge", false, "Delete orders whose stock or size no longer exists")
	reconcileCmd.Flags().BoolVar(&dryRunOrphans, "dry-run", false, "Force dry-run (no mutations even with --yes)")
	reconcileCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	rt, err := bootstrap(ctx, false)
	if err != nil {
		return err
	}
	defer rt.close()
	l := rt.logger

	svc := audit.NewService(rt.store, l)
	opts := reconcile.Options{DoPurge: purgeOrphans, DryRun: dryRunOrphans}

	plan, _, err := svc.Apply(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to plan reconciliation: %w", err)
	}
	printReconcileReport(l, plan)

	if !purgeOrphans {
		l.Info("No actions requested. Use --purge to delete orphan orders.")
		return nil
	}
	if dryRunOrphans {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if len(plan.Actions) == 0 {
		l.Info("No actions required based on current flags.")
		return nil
	}

	if !confirmDestructiveAction(cmd.InOrStdin(), cmd.OutOrStdout()) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}
	opts.Confirmed = true

	// Apply re-plans under the write lock.
	l.Info("Applying actions...")
	_, executed, err := svc.Apply(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}

	l.Info("Successfully executed actions", zap.Int("count", executed))
	return nil
}

func printReconcileReport(l *zap.Logger, report reconcile.Report) {
	s := report.Summary

	l.Info("Reconciliation report",
		zap.Int("stocks", s.Stocks),
		zap.Int("orders", s.Orders),
		zap.Int("sizes", s.Sizes),
		zap.Int("available", s.Available),
		zap.Int("committed", s.Committed),
		zap.Int("negative_counters", s.NegativeCounters),
		zap.Int("orphans", s.Orphans),
	)

	for _, line := range report.Lines {
		if !line.Negative {
			continue
		}
		l.Warn("Negative counter",
			zap.String("stock_id", line.StockID),
			zap.String("name", line.Name),
			zap.String("size", line.Size),
			zap.Int("available", line.Available),
		)
	}

	const maxShow = 5
	for i, orphan := range report.Orphans {
		if i == maxShow {
			l.Info("Additional orphans not shown", zap.Int("count", len(report.Orphans)-maxShow))
			break
		}
		l.Info("Orphan order",
			zap.String("order_id", orphan.OrderID),
			zap.String("item_id", orphan.ItemID),
			zap.String("size", orphan.Size),
			zap.String("reason", orphan.Reason),
		)
	}

	if len(report.Actions) > 0 {
		l.Info("Planned actions", zap.Int("purge_actions", s.PurgeActions))
	}
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction(in io.Reader, out io.Writer) bool {
	if yesConfirm {
		fmt.Fprintln(out, "\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprint(out, "\n⚠️  Type 'yes' to confirm destructive actions: ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}

