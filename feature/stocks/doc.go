// Package stocks provides CRUD for inventory line items.
//
// Direct edits replace counters outright; only the orders package moves them as a
// side effect of an order. Negative counters are rejected on both paths.
package stocks
