// Package catalog defines the domain records of the spares catalog and the
// pure rules that govern them.
//
// Four record types form an ownership chain:
//   - Car: a repair order's root entity
//   - Part: a component needed for a Car
//   - Offer: a supplier's quoted price for a Part
//   - Contact: a derived supplier directory entry, keyed by phone number
//
// Contacts are not entered by hand. They accumulate as a side effect of
// saving offers: the supplier's normalized phone number is the natural key,
// and every offer for that number merges into the same directory entry.
//
// The rules here are deliberately storage-free. NormalizePhone and
// MergeContact are pure functions so the persistence layer can apply them
// inside a transaction without this package knowing about SQL.
package catalog
