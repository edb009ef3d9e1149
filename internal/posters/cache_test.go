package posters_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"mvw/internal/posters"
)

func TestEnsureCachedDownloadsOnce(t *testing.T) {
	var hits int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		_, _ = w.Write([]byte("jpeg-bytes"))
	}))
	t.Cleanup(server.Close)

	dir := t.TempDir()
	cache, err := posters.New(dir)
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	ctx := context.Background()
	link := server.URL + "/images/tt0816692@._V1_SX300.jpg"

	first, err := cache.EnsureCached(ctx, link)
	if err != nil {
		t.Fatalf("EnsureCached returned error: %v", err)
	}
	if first != filepath.Join(dir, "tt0816692.jpg") {
		t.Fatalf("unexpected cache path: %q", first)
	}
	data, err := os.ReadFile(first)
	if err != nil || string(data) != "jpeg-bytes" {
		t.Fatalf("unexpected cached contents: %q err=%v", data, err)
	}

	second, err := cache.EnsureCached(ctx, link)
	if err != nil {
		t.Fatalf("second EnsureCached returned error: %v", err)
	}
	if second != first {
		t.Fatalf("expected same path, got %q and %q", first, second)
	}
	if hits != 1 {
		t.Fatalf("expected exactly one download, got %d", hits)
	}
}

func TestEnsureCachedSurfacesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	t.Cleanup(server.Close)

	cache, err := posters.New(t.TempDir())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := cache.EnsureCached(context.Background(), server.URL+"/gone.jpg"); err == nil {
		t.Fatal("expected error for missing poster")
	}
}

func TestEnsureCachedRejectsEmptyLink(t *testing.T) {
	cache, err := posters.New(t.TempDir())
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	if _, err := cache.EnsureCached(context.Background(), "  "); err == nil {
		t.Fatal("expected error for empty link")
	}
}
