// Package types defines the note and item entities, the category registry,
// the Store persistence contract, and the standard errors for notekeeper.
//
// Notes and items validate their own fields. Setters never fail: invalid
// input is either ignored or replaced by a default, and each setter reports
// whether the stored value actually changed.
package types
