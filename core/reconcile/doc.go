// Package reconcile keeps stock size counters consistent with the orders that
// hold quantity against them.
//
// Everything here is pure: functions take counters and quantities and return new
// counters or an error, never touching their inputs or any store. The order
// service loads state, asks this package for a decision and persists the result
// in one store transaction.
//
// # Operations
//
//   - Reserve: take quantity out of a size, failing with *InsufficientStockError.
//   - Release: put quantity back. There is no upper bound.
//   - AdjustOnQtyChange: move an existing hold to a new quantity on the same size.
//   - TransferReservation: move a hold to another size or stock. Both legs are
//     computed before anything is returned, so a failed reserve leaves no trace.
//
// # Audit
//
// Audit builds a Report of every stock size with the quantity committed to active
// orders, plus orphan orders whose hold does not resolve. With Options.DoPurge it
// plans delete_order actions; executing them is left to the caller and requires
// Options.Confirmed without Options.DryRun.
//
//	report := reconcile.Audit(stocks, orders, reconcile.Options{DoPurge: true})
//	fmt.Println(report.Summary.Orphans)
package reconcile
