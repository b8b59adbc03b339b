// Package health reports whether the backend's dependencies are usable.
//
// Probes cover the order store, the sql schema when the store is sql backed, the
// object bucket when the store is bucket backed, and the event broker. They run
// concurrently and each is bounded by a short timeout. The endpoint answers 503
// when any probe fails so load balancers can act on it.
package health
