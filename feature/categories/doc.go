// Package categories manages the product taxonomy.
//
// Deleting a category cascades to its stocks and to orders of that category or
// of those stocks, inside one store transaction.
package categories
