// Package orders implements the order lifecycle: create, update and delete, each
// reconciled against stock size counters in a single store transaction.
//
// # Lifecycle
//
//   - Create validates the request, reserves qty (default 1) of the size and saves
//     the stock and the new order together.
//   - Update overlays a Patch. Same item and size adjusts the hold by the quantity
//     difference; a new item or size transfers the hold, deciding both legs before
//     anything is saved.
//   - Delete releases the hold back to the stock. If the stock is gone the release
//     is skipped and logged.
//
// Every mutation returns the sorted stock list read after commit and publishes an
// order.created, order.updated or order.deleted event.
//
// # HTTP Endpoints
//
//   - GET /api/orders
//   - POST /api/orders
//   - PUT /api/orders/:id
//   - DELETE /api/orders/:id
package orders
