// Package utils holds small conversion helpers shared across packages.
//
// ToInt is what turns a persisted size counter of unknown shape (number,
// numeric string, null, garbage) into the integer the reconciliation engine
// works with.
package utils
