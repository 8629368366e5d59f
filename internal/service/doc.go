// Package service implements the domain logic of the Grimoire API.
//
// The service package is where every decision lives: input validation,
// referential integrity across users, classes, characters, and games,
// credential handling, and partial-update semantics. Handlers above it are
// pass-through; repositories below it are plumbing.
//
// # Service Pattern
//
// All services follow a consistent pattern:
//
//   - Constructor function (NewXxxService) accepts a config struct with repository dependencies
//   - Methods implement business operations with proper validation
//   - Context is passed through for cancellation and request-scoped values
//
// # Repository Interfaces
//
// Services define their own repository interfaces, allowing:
//
//   - Easy mocking for unit tests
//   - Decoupling from specific database implementations
//   - Clear contracts for data access requirements
//
// Repositories signal an absent record by returning (nil, nil); services
// translate that into a KindNotFound error.
//
// # Error Handling
//
// Every failure is a *service.Error carrying a Kind from the taxonomy in
// errors.go (invalid input, unauthorized, not found, conflict, dependency
// failure). Callers branch on Kind:
//
//	if service.KindOf(err) == service.KindNotFound {
//	    // 404
//	}
//
// Unexpected collaborator errors are wrapped as KindDependency with the
// message pattern "Failed to <verb> <entity>: <original message>".
package service
