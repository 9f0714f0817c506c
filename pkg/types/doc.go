// Package types defines the contact field variants, the Record they compose,
// the configuration shared by the contacts CLI, and the standard error values
// used across the address book.
package types
