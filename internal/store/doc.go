// Package store provides SQLite-backed durable storage for the spares
// catalog.
//
// Four collections live in one on-device database file:
//   - cars: repair order roots, keyed by id
//   - parts: components of a car, keyed by id
//   - offers: supplier quotes for a part, keyed by id
//   - contacts: the derived supplier directory, keyed by normalized phone
//
// # Critical Patterns
//
// Referential integrity is enforced in code, not by the engine. The
// underlying tables declare no foreign keys; DeleteCar and DeletePart
// remove descendants strictly before the parent record so a crash
// mid-cascade can leave orphaned children but never a surviving child
// whose parent row still exists without it.
//
// SaveOffer is the single write path for offers. It persists the offer and
// the merged contact in one SQL transaction: no reader ever observes an
// offer without its directory update, or the reverse.
//
// Phone numbers are normalized to digits-only before they touch the
// offers or contacts tables. The contacts primary key is that normalized
// number.
//
// # Database Configuration
//
//   - WAL mode: concurrent reads during writes
//   - synchronous=NORMAL: balance durability/performance
//   - busy_timeout=5000: wait for locks up to 5 seconds
//
// Schema changes are additive only, gated by PRAGMA user_version.
package store
