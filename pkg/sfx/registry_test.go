// ABOUTME: Tests for the clip registry
// ABOUTME: Covers lookups, sorted names and duplicate handling
package sfx

import "testing"

func TestRegistryLookup(t *testing.T) {
	reg := testRegistry("explosion", "beep")

	tests := []struct {
		name  string
		found bool
	}{
		{"explosion", true},
		{"beep", true},
		{"missing_clip", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clip, ok := reg.Lookup(tt.name)
			if ok != tt.found {
				t.Fatalf("expected found=%v, got %v", tt.found, ok)
			}
			if ok && clip.Name != tt.name {
				t.Errorf("expected clip %q, got %q", tt.name, clip.Name)
			}
		})
	}
}

func TestRegistryNames(t *testing.T) {
	reg := testRegistry("zap", "alarm", "beep")

	names := reg.Names()
	expected := []string{"alarm", "beep", "zap"}
	if len(names) != len(expected) {
		t.Fatalf("expected %d names, got %d", len(expected), len(names))
	}
	for i := range expected {
		if names[i] != expected[i] {
			t.Errorf("name %d: expected %q, got %q", i, expected[i], names[i])
		}
	}

	names[0] = "changed"
	if reg.Names()[0] != "alarm" {
		t.Error("expected Names to return a copy")
	}
}

func TestRegistryEmpty(t *testing.T) {
	for _, reg := range []*Registry{NewRegistry(), nil} {
		if reg.Len() != 0 {
			t.Errorf("expected empty registry, got %d clips", reg.Len())
		}
		if _, ok := reg.Lookup("beep"); ok {
			t.Error("expected lookup on empty registry to fail")
		}
		if len(reg.Names()) != 0 {
			t.Error("expected no names")
		}
	}
}

func TestRegistryDuplicates(t *testing.T) {
	first := testClip("beep")
	second := testClip("beep")

	b := NewRegistryBuilder()
	if b.Add(first) {
		t.Error("expected first add not to replace")
	}
	if !b.Add(second) {
		t.Error("expected second add to replace")
	}
	if b.Add(nil) {
		t.Error("expected nil clip to be ignored")
	}

	reg := b.Build()
	if reg.Len() != 1 {
		t.Fatalf("expected 1 clip, got %d", reg.Len())
	}
	if clip, _ := reg.Lookup("beep"); clip != second {
		t.Error("expected the later clip to win")
	}

	b.Add(testClip("zap"))
	if reg.Len() != 1 {
		t.Error("expected built registry to be unaffected by later adds")
	}
}

func TestClipDuration(t *testing.T) {
	if d := testClip("beep").Duration(); d.Milliseconds() != 100 {
		t.Errorf("expected 100ms, got %v", d)
	}
}
