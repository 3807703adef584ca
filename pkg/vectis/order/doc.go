// Package order turns carts into order records and serves the order history.
//
// Checkout snapshots the cart, prices it with the checkout tax rate, appends
// the record to the "orders" path and clears the cart. History reads the
// same path, mirrors every new record into an Archive for lookup and search,
// and redisplays totals with the history tax convention.
//
// Two Archive implementations are provided: MemoryArchive and SQLiteArchive.
// The SQLite archive is an in-process index (":memory:" by default); orders
// are not meant to outlive the process.
package order
