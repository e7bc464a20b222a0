// Package testutil provides test helpers: fixture builders for real
// temporary directories and an in-memory types.FS with error injection
// for exercising traversal and replace logic without touching disk.
package testutil
