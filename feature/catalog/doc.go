// Package catalog implements the card catalog feature.
//
// It loads raw card records from object storage, normalizes them into a
// graph of cards, faces, printings and sets, and serves read-only queries on
// the most recent successful load.
//
// # Loading
//
// A load reads `<prefix>/sets.json` and every JSON array under
// `<prefix>/cards/`, then runs the records through the dispatch pipeline
// (layout classification, identity, meld joins). A load that fails keeps
// the previous catalog in service. With persistence enabled the snapshot is
// also written to the database before it is swapped in.
//
// # Components
//
//   - Service: Runs loads and answers queries against the current snapshot.
//   - Handler: Exposes the query surface over HTTP.
//   - Loader: Registers the feature with the application.
//
// # HTTP Endpoints
//
//   - GET  /catalog/stats : Entity counts and the last load report.
//   - POST /catalog/load : Reload from storage.
//   - GET  /catalog/sets : List sets.
//   - GET  /catalog/sets/:code/printings : Printings of a set in collector number order.
//   - GET  /catalog/sets/:code/:number : Printing by collector number.
//   - GET  /catalog/cards?name= : Card by full or face name.
//   - GET  /catalog/cards/:id : Card by id.
//   - GET  /catalog/cards/:id/printings : Printings of a card.
//   - GET  /catalog/printings/:id : Printing by id, with its variation.
package catalog
