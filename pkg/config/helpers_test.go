package config_test

import (
	"os"
	"testing"
)

// unsetForTest removes variables for the rest of the test. Callers must have
// registered them with t.Setenv first so the previous values are restored.
func unsetForTest(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		if err := os.Unsetenv(k); err != nil {
			t.Fatalf("unset %s: %v", k, err)
		}
	}
}
