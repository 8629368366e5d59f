// Package middleware provides HTTP middleware for the Grimoire API.
//
// Middleware composes with Chain, which applies wrappers in the order
// given. The standard stack is Recovery, RequestID, Logger, CORS, and
// Compress on every route, with Auth added on routes that require a
// session token.
package middleware
