// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation (X-API-Key or Bearer token). Disabled when no key is configured.
//   - rayid: assigns every request a RayID, stores it on the context and echoes it
//     in the X-Ray-ID response header so logger.WithRayID can tag log lines.
//   - ratelimit: per-IP request limit built on fiber's limiter.
//
// The start command registers rayid first, then logging, then ratelimit and auth.
package middleware
