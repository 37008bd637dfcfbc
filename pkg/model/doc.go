// Package model defines the Shelf model interface, the per-type field and
// relation descriptors, the type registry, the Store interface, shared
// configuration, and the standard errors returned by storage backends.
package model
