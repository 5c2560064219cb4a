// Package types defines the entity types, enumeration kinds, date handling,
// and standard errors for the kith relationship store.
package types
