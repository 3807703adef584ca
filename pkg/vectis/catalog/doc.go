// Package catalog holds the sellable menu: products, display categories and
// extra ingredients for customizable items.
//
// Lookups go through an insertion-ordered, mutex-guarded Registry so that
// listings render in the order items were loaded.
package catalog
