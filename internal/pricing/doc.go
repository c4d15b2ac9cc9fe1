// Package pricing holds the per-call model cost table used by the
// estimator. Lookups are explicit: a model missing from the table is an
// UnknownModelError, never a silent zero.
package pricing
