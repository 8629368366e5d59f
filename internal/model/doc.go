// Package model defines domain entities and data structures for the Grimoire API.
//
// The model package contains the struct definitions for domain objects and
// the error response types shared across layers.
//
// # Domain Entities
//
//   - User: account with credentials and the list of characters it owns
//   - Class: character class template (hit die, abilities, proficiencies)
//   - Character: a character sheet owned by a user, typed by a class
//   - Game: a campaign run by a dungeon master, grouping players and characters
//
// Relationships between entities are denormalized id lists (back-references);
// the service layer keeps the User→Character back-reference consistent on
// character creation, everything else is supplied explicitly by callers.
//
// # JSON Serialization
//
// Password hashes carry the `json:"-"` tag and are never serialized. Entity
// ids are SurrealDB record ids ("user:abc123") rendered as plain strings.
package model
