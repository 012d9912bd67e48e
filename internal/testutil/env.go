// Package testutil provides helpers shared by package tests.
package testutil

import "testing"

// SetupTestEnv isolates a test from the invoking user's environment:
// HOME points at a fresh temporary directory and SHELL is cleared, so
// startup-file tests never touch real dotfiles. Returns the new home
// directory.
func SetupTestEnv(t *testing.T) string {
	t.Helper()

	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("SHELL", "")
	return home
}
