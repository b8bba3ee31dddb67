package mongo

import (
	"testing"
	"time"
)

// Every repository in this package bounds its calls with defaultTimeout;
// this pins the constant so a rename cannot silently orphan those usages.
func TestDefaultTimeout(t *testing.T) {
	if defaultTimeout != 10*time.Second {
		t.Fatalf("defaultTimeout = %v, want 10s", defaultTimeout)
	}
}
