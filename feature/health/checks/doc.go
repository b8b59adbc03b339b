// Package checks holds the individual probes behind the health report.
package checks
