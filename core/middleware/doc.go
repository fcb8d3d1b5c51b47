// Package middleware groups the Fiber middleware shared by every feature.
//
//   - auth checks the X-API-Key header against the configured key.
//   - rayid assigns each request a ray id, exposed in the response headers
//     and read back by logger.WithRayID.
//
// Both are registered globally in the start command. Swagger is mounted
// before auth so the docs stay public.
package middleware
