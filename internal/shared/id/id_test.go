package id

import (
	"sort"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestGenerate(t *testing.T) {
	gen := NewGenerator()

	id1 := gen.Generate()
	id2 := gen.Generate()

	if id1.String() == id2.String() {
		t.Error("Generated IDs should be unique")
	}
}

func TestGenerateAtUsesGivenTime(t *testing.T) {
	gen := NewGenerator()
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	u := gen.GenerateAt(at)

	ts, err := Timestamp(u.String())
	if err != nil {
		t.Fatalf("Failed to extract timestamp: %v", err)
	}
	if !ts.Equal(at) {
		t.Errorf("Expected timestamp %v, got %v", at, ts)
	}
}

func TestSameMillisecondSortsInCallOrder(t *testing.T) {
	at := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	ids := make([]string, 50)
	for i := range ids {
		ids[i] = string(NewNotificationID(at))
	}

	if !sort.StringsAreSorted(ids) {
		t.Error("IDs minted at the same instant should sort in creation order")
	}
}

func TestTypedIDPrefixes(t *testing.T) {
	tests := []struct {
		id     string
		prefix string
	}{
		{string(NewNotificationID(time.Now())), "ntf"},
		{string(NewRequestID()), "req"},
		{string(NewConnectionID()), "conn"},
	}

	for _, tt := range tests {
		parts := strings.Split(tt.id, "_")
		if len(parts) != 2 {
			t.Fatalf("ID should have format 'prefix_ulid', got: %s", tt.id)
		}
		if parts[0] != tt.prefix {
			t.Errorf("Expected prefix '%s', got '%s'", tt.prefix, parts[0])
		}
		if !IsValid(parts[1]) {
			t.Errorf("ULID part should be valid: %s", parts[1])
		}
	}
}

func TestIsValid(t *testing.T) {
	if !IsValid(NewGenerator().Generate().String()) {
		t.Error("Generated ULID should be valid")
	}

	for _, id := range []string{"", "invalid", "1234567890"} {
		if IsValid(id) {
			t.Errorf("ID should be invalid: %s", id)
		}
	}
}

func TestConcurrentGeneration(t *testing.T) {
	gen := NewGenerator()

	const goroutines = 20
	const perGoroutine = 50

	var wg sync.WaitGroup
	ch := make(chan string, goroutines*perGoroutine)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < perGoroutine; j++ {
				ch <- gen.Generate().String()
			}
		}()
	}
	wg.Wait()
	close(ch)

	seen := make(map[string]bool)
	for id := range ch {
		if seen[id] {
			t.Fatalf("Duplicate ID generated: %s", id)
		}
		seen[id] = true
	}
}
