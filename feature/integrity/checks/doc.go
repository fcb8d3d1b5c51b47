// Package checks holds the individual integrity checks run by the integrity
// feature. Each check is a plain function over a storage client or database
// handle so that commands and HTTP handlers can share them.
package checks
