package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/shabihhaider/waterbottle-admin/internal/config"
)

func TestLocalStorePutAndURL(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(config.StorageConfig{LocalDir: dir})
	if err != nil {
		t.Fatalf("NewLocalStore error: %v", err)
	}
	if store.Dir() != dir {
		t.Fatalf("dir want %s got %s", dir, store.Dir())
	}

	ctx := context.Background()
	if err := store.Put(ctx, "invoices/INV-1.pdf", []byte("%PDF fake"), "application/pdf"); err != nil {
		t.Fatalf("Put error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "invoices", "INV-1.pdf"))
	if err != nil {
		t.Fatalf("read written file failed: %v", err)
	}
	if string(data) != "%PDF fake" {
		t.Fatalf("unexpected file content: %q", string(data))
	}

	url, err := store.URL(ctx, "invoices/INV-1.pdf")
	if err != nil {
		t.Fatalf("URL error: %v", err)
	}
	if url != "/files/invoices/INV-1.pdf" {
		t.Fatalf("url want /files/invoices/INV-1.pdf got %s", url)
	}
}

func TestLocalStoreURLWithPublicBase(t *testing.T) {
	store, err := NewLocalStore(config.StorageConfig{
		LocalDir:      t.TempDir(),
		PublicBaseURL: "https://cdn.example.com/files/",
	})
	if err != nil {
		t.Fatalf("NewLocalStore error: %v", err)
	}

	url, err := store.URL(context.Background(), "/invoices/INV-2.pdf")
	if err != nil {
		t.Fatalf("URL error: %v", err)
	}
	if url != "https://cdn.example.com/files/invoices/INV-2.pdf" {
		t.Fatalf("unexpected url: %s", url)
	}
}
