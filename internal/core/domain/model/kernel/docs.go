// Package kernel contains the shared value objects of the order
// coordination domain: geographic points and resolved locations, postal
// addresses, and actor identity (role + id).
//
// All types in this package are immutable value objects created through
// validating constructors. The zero value of every type is invalid and is
// rejected by its Validate method, which repositories and handlers call
// when reconstructing objects from external input.
package kernel
