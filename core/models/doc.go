// Package models defines the persisted entities: Stock, Order and Category.
//
// The same structs are written as gorm rows by the sql store and as JSON documents
// by the file and bucket stores, so JSON names follow the REST contract (camelCase)
// and size counters tolerate legacy shapes on decode.
package models
