// Package handler provides the HTTP layer of the Grimoire API.
//
// Handlers are thin: they decode request bodies, call a service, and
// write the result. All business decisions, including validation and
// referential checks, live in the service package. Failures arrive as
// *service.Error values and are mapped to RFC 9457 problem documents by
// MapServiceError.
package handler
