// Package server holds the HTTP server configuration.
//
// The start command builds the fiber application; this package only defines
// the listen port and the optional API key checked by the auth middleware.
package server
