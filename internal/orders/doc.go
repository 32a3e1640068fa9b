// Package orders implements the order-intake flow and the aggregate reads
// the order screens are built from: the orders overview with part counts,
// a single car's detail with per-part offer counts, and a part's quote
// history.
package orders
