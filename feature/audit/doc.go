// Package audit exposes reconcile.Audit over HTTP and applies its purge plan.
package audit
