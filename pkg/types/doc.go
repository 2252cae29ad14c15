// Package types defines the records and typed errors shared by every
// threadkit package.
//
// A thread is a flat list of Comment values linked by Parent ids. Top-level
// comments carry NoParent. Packages that traverse threads only look at the
// ID and Parent fields; everything else is payload for renderers.
//
// Design goals:
//   - Small, copyable identifiers (ID) instead of pointer graphs.
//   - Typed errors with stable categories (invalid/corrupt/not found/state).
//
// This package has no dependencies beyond the standard library.
package types
