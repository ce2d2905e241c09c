package versetext

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hifzhub/murajaah/internal/entity"
)

func TestVerseText(t *testing.T) {
	var gotPath, gotKey string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("x-api-key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"verse":{"text_uthmani":"قُلْ هُوَ ٱللَّهُ أَحَدٌ"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "secret", time.Second)
	text, err := c.VerseText(context.Background(), entity.VerseRef{Surah: 112, Ayah: 1})
	if err != nil {
		t.Fatal(err)
	}
	if text != "قُلْ هُوَ ٱللَّهُ أَحَدٌ" {
		t.Errorf("text = %q", text)
	}
	if gotPath != "/verses/by_key/112:1" {
		t.Errorf("path = %q", gotPath)
	}
	if gotKey != "secret" {
		t.Errorf("x-api-key = %q", gotKey)
	}
}

func TestVerseTextFailuresWrapped(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	_, err := c.VerseText(context.Background(), entity.VerseRef{Surah: 1, Ayah: 1})
	if !errors.Is(err, entity.ErrReferenceTextUnavailable) {
		t.Errorf("err = %v, want ErrReferenceTextUnavailable", err)
	}
}

func TestVerseTextEmptyBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"verse":{"text_uthmani":""}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "", time.Second)
	_, err := c.VerseText(context.Background(), entity.VerseRef{Surah: 1, Ayah: 1})
	if !errors.Is(err, entity.ErrReferenceTextUnavailable) {
		t.Errorf("err = %v, want ErrReferenceTextUnavailable", err)
	}
}

func TestVerseTextRejectsInvalidRef(t *testing.T) {
	c := NewClient("http://localhost:0", "", time.Second)
	_, err := c.VerseText(context.Background(), entity.VerseRef{Surah: 115, Ayah: 1})
	if !errors.Is(err, entity.ErrInvalidVerseRef) {
		t.Errorf("err = %v, want ErrInvalidVerseRef", err)
	}
}
