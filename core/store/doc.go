// Package store is the persistence layer for stocks, orders and categories.
//
// Callers work through Store.View and Store.Update. Each Update is a single atomic
// unit: an order and the stock counters it moved are committed together or not at
// all.
//
// # Backends
//
//   - sql: gorm over MySQL, PostgreSQL or SQLite. Update is a database transaction
//     and stocks read inside it are locked with SELECT ... FOR UPDATE.
//   - file: stocks.json, orders.json and categories.json in a directory, through afero.
//   - bucket: the same documents as objects in an S3/MinIO bucket.
//
// The document backends (file, bucket) allow one writer at a time and restore
// already written documents when a later write of the same commit fails.
package store
