// ABOUTME: Tests for mDNS discovery
// ABOUTME: Tests manager construction and lifecycle
package discovery

import (
	"testing"
)

func TestNewManager(t *testing.T) {
	config := Config{
		InstanceName: "Test Deck",
		Port:         8931,
	}

	mgr := NewManager(config)
	if mgr == nil {
		t.Fatal("expected manager to be created")
	}

	if mgr.Decks() == nil {
		t.Error("expected a non-nil decks channel")
	}

	// Stop before Advertise/Browse must be safe
	mgr.Stop()
}
