package cache

import (
	"testing"
	"time"
)

func TestHashKey(t *testing.T) {
	tests := []struct {
		name  string
		parts []string
	}{
		{
			name:  "single part",
			parts: []string{"test"},
		},
		{
			name:  "multiple parts",
			parts: []string{"admin_posts", "all", "1"},
		},
		{
			name:  "empty parts",
			parts: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed1 := HashKey(tt.parts...)
			hashed2 := HashKey(tt.parts...)

			if hashed1 != hashed2 {
				t.Errorf("HashKey() should be consistent, got %s and %s", hashed1, hashed2)
			}
			if len(hashed1) != 32 {
				t.Errorf("HashKey() should return 32 character hex string, got length %d", len(hashed1))
			}
		})
	}
}

func TestHashKeyDistinguishesParts(t *testing.T) {
	// "ab"+"c" and "a"+"bc" must not collide
	if HashKey("ab", "c") == HashKey("a", "bc") {
		t.Error("HashKey() should keep part boundaries distinct")
	}
}

func TestMemory_NamespaceKey(t *testing.T) {
	m := NewMemory()

	tests := []struct {
		name     string
		key      string
		expected string
	}{
		{
			name:     "simple key",
			key:      "test",
			expected: "bytebrief:test",
		},
		{
			name:     "key with colon",
			key:      "test:key",
			expected: "bytebrief:test:key",
		},
		{
			name:     "empty key",
			key:      "",
			expected: "bytebrief:",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := m.namespaceKey(tt.key)
			if result != tt.expected {
				t.Errorf("namespaceKey() = %v, want %v", result, tt.expected)
			}
		})
	}
}

func TestMemory_GetSet(t *testing.T) {
	m := NewMemory()

	if _, err := m.Get("missing"); err != ErrCacheMiss {
		t.Errorf("Get() on missing key = %v, want ErrCacheMiss", err)
	}

	if err := m.Set("k", "v", time.Minute); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := m.Get("k")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != "v" {
		t.Errorf("Get() = %q, want %q", got, "v")
	}

	if err := m.Delete("k"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := m.Get("k"); err != ErrCacheMiss {
		t.Errorf("Get() after Delete() = %v, want ErrCacheMiss", err)
	}
}

func TestMemory_Expiry(t *testing.T) {
	m := NewMemory()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }

	if err := m.Set("k", "v", 30*time.Second); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	// Just inside the window
	now = now.Add(29 * time.Second)
	if _, err := m.Get("k"); err != nil {
		t.Errorf("Get() within TTL = %v, want nil", err)
	}

	// At the boundary the entry is stale
	now = now.Add(time.Second)
	if _, err := m.Get("k"); err != ErrCacheMiss {
		t.Errorf("Get() at expiry = %v, want ErrCacheMiss", err)
	}

	exists, err := m.Exists("k")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("Exists() after expiry = true, want false")
	}
}

func TestGetSetJSON(t *testing.T) {
	m := NewMemory()

	type payload struct {
		Titles []string `json:"titles"`
		Total  int      `json:"total"`
	}

	in := payload{Titles: []string{"a", "b"}, Total: 2}
	if err := SetJSON(m, "p", in, time.Minute); err != nil {
		t.Fatalf("SetJSON() error = %v", err)
	}

	var out payload
	if err := GetJSON(m, "p", &out); err != nil {
		t.Fatalf("GetJSON() error = %v", err)
	}
	if out.Total != in.Total || len(out.Titles) != len(in.Titles) {
		t.Errorf("GetJSON() = %+v, want %+v", out, in)
	}

	var none payload
	if err := GetJSON(m, "absent", &none); err != ErrCacheMiss {
		t.Errorf("GetJSON() on absent key = %v, want ErrCacheMiss", err)
	}

	if err := GetJSON(nil, "p", &none); err != ErrCacheDisabled {
		t.Errorf("GetJSON(nil store) = %v, want ErrCacheDisabled", err)
	}
}
