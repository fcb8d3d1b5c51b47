// Package integrity provides health checks for the catalog's storage layout,
// its card coverage and its persisted schema.
//
// # Checks Provided
//
//   - Structure: Checks that the cards/ folder exists under the catalog prefix.
//   - Files: Verifies the presence of sets.json and the card name list.
//   - Coverage: Resolves every name of the stored card name list against the loaded catalog.
//   - Schema: Validates that the snapshot tables match the persisted models (columns, types).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/files : Runs files check.
//   - GET /integrity/coverage : Runs coverage check.
//   - GET /integrity/schema : Runs schema check.
package integrity
