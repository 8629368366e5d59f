// Package repository provides SurrealDB-backed data access for the
// Grimoire API.
//
// Repositories implement the storage interfaces declared by the service
// package. They translate between SurrealDB's response shapes and the
// model types, and they keep the absence convention: a lookup, merge
// update, or delete that matches no record returns (nil, nil), never an
// error.
//
// Partial updates use MERGE so that only the supplied fields change;
// nested objects such as character attributes merge field by field.
package repository
