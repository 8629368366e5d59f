// Package database provides the database abstraction layer for Grimoire.
//
// This package defines the Database interface that abstracts SurrealDB
// operations, allowing clean separation between business logic and data
// access.
//
// # Interface Design
//
// The Database interface provides three query methods:
//   - Query: Returns multiple results (for SELECT queries returning lists)
//   - QueryOne: Returns a single result (for SELECT by ID)
//   - Execute: No return value (for CREATE/UPDATE/DELETE mutations)
//
// Every write is a single-document statement; the store's atomic per-document
// replace is the only consistency guarantee the core relies on. There is no
// multi-statement transaction support: the one cross-document write in the
// system (adding a created character to its owner's character list) is an
// explicitly best-effort step in the service layer.
//
// # Error Handling
//
// Standard errors are defined for common failure cases:
//   - ErrNotFound: Record does not exist
//   - ErrDuplicate: Unique constraint violation
//   - ErrConnection: Database connection issues
//   - ErrQuery: Query execution failures
//
// Use errors.Is() to check error types:
//
//	if errors.Is(err, database.ErrNotFound) {
//	    // Handle missing record
//	}
//
// # Usage Example
//
//	db := database.NewSurrealDB(cfg)
//	db.Connect(ctx)
//	defer db.Close()
//
//	result, err := db.QueryOne(ctx, "SELECT * FROM type::record($id)", map[string]interface{}{"id": userID})
package database
