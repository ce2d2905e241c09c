package entity

import (
	"errors"
	"testing"
)

func TestParseVerseRef(t *testing.T) {
	cases := []struct {
		in      string
		want    VerseRef
		wantErr bool
	}{
		{"2:255", VerseRef{Surah: 2, Ayah: 255}, false},
		{" 114:6 ", VerseRef{Surah: 114, Ayah: 6}, false},
		{"255", VerseRef{}, true},
		{"0:1", VerseRef{}, true},
		{"115:1", VerseRef{}, true},
		{"2:287", VerseRef{}, true},
		{"2:abc", VerseRef{}, true},
	}
	for _, tc := range cases {
		got, err := ParseVerseRef(tc.in)
		if tc.wantErr {
			if !errors.Is(err, ErrInvalidVerseRef) {
				t.Errorf("ParseVerseRef(%q) err = %v, want ErrInvalidVerseRef", tc.in, err)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseVerseRef(%q) err = %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseVerseRef(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestParseVerseRange(t *testing.T) {
	refs, err := ParseVerseRange("112:1-4")
	if err != nil {
		t.Fatal(err)
	}
	if len(refs) != 4 {
		t.Fatalf("len = %d, want 4", len(refs))
	}
	if refs[0] != (VerseRef{Surah: 112, Ayah: 1}) || refs[3] != (VerseRef{Surah: 112, Ayah: 4}) {
		t.Errorf("refs = %v", refs)
	}

	single, err := ParseVerseRange("2:255")
	if err != nil {
		t.Fatal(err)
	}
	if len(single) != 1 || single[0] != (VerseRef{Surah: 2, Ayah: 255}) {
		t.Errorf("single = %v", single)
	}

	for _, bad := range []string{"112:4-1", "112:1-300", "112:x-4"} {
		if _, err := ParseVerseRange(bad); !errors.Is(err, ErrInvalidVerseRef) {
			t.Errorf("ParseVerseRange(%q) err = %v, want ErrInvalidVerseRef", bad, err)
		}
	}
}

func TestVerseRefIDAndKey(t *testing.T) {
	ref := VerseRef{Surah: 2, Ayah: 255}
	if ref.ID() != "002255" {
		t.Errorf("ID = %q", ref.ID())
	}
	if ref.Key() != "2:255" {
		t.Errorf("Key = %q", ref.Key())
	}
}

func TestParseActivityKind(t *testing.T) {
	kind, err := ParseActivityKind(" Recitation ")
	if err != nil || kind != ActivityRecitation {
		t.Errorf("kind = %v err = %v", kind, err)
	}
	if _, err := ParseActivityKind("bonus"); !errors.Is(err, ErrInvalidActivityKind) {
		t.Errorf("err = %v, want ErrInvalidActivityKind", err)
	}
}
