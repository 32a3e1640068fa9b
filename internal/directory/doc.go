// Package directory implements reads and edits of the derived supplier
// directory: recency-ordered listing, substring search across names,
// phone numbers and vehicle tags, gallery edits and explicit deletion.
//
// Nothing here creates contacts. Entries accumulate only through the
// store's offer-save path.
package directory
