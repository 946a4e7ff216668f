// Package types defines the core data model shared across linkmap:
// manifest entries, reconciliation outcomes, run reports, and the
// filesystem interface that the reconciler operates against.
//
// Keeping these in a leaf package avoids import cycles between the
// parser, the reconciler, and the output layers.
package types
