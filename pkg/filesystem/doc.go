// Package filesystem provides types.FS implementations: NewOS for the
// real filesystem and NewAferoFS for afero-backed filesystems used in
// tests.
package filesystem
