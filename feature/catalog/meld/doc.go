// Package meld joins the three records of a meld card.
//
// A meld pair is two independent "part" records whose backs combine into one
// shared "result" record. Each part becomes its own Card, and both Cards hold
// the same result Face instance in their transformed slot. The three records
// may arrive in any order from concurrent workers.
//
// Every meld record resolves a promise keyed by its own id when submitted. A
// part then parks on a goroutine of its own, outside the worker pool, until the
// result's promise resolves, and builds its card once the result is known.
// Wait blocks until every parked part has finished or the timeout expires,
// and then checks each group of parts for a shared result Face and Set.
package meld
