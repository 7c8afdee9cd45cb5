package pdf

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/shabihhaider/waterbottle-admin/internal/config"
	"github.com/shabihhaider/waterbottle-admin/internal/models"

	"github.com/shopspring/decimal"
)

func newFakeGotenberg(t *testing.T, status int, payload []byte) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/health":
			w.WriteHeader(http.StatusOK)
		case "/forms/chromium/convert/html":
			if err := r.ParseMultipartForm(1 << 20); err != nil {
				t.Errorf("parse multipart failed: %v", err)
			}
			file, _, err := r.FormFile("files")
			if err != nil {
				t.Errorf("missing files part: %v", err)
				w.WriteHeader(http.StatusBadRequest)
				return
			}
			html, _ := io.ReadAll(file)
			if !strings.Contains(string(html), "<html") {
				t.Errorf("expected html payload, got %q", string(html))
			}
			w.WriteHeader(status)
			_, _ = w.Write(payload)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestRenderHTML(t *testing.T) {
	server := newFakeGotenberg(t, http.StatusOK, []byte("%PDF-1.7 fake"))
	defer server.Close()

	client := NewClient(config.PDFConfig{GotenbergURL: server.URL + "/", TimeoutSeconds: 5})

	if err := client.Ping(context.Background()); err != nil {
		t.Fatalf("Ping error: %v", err)
	}

	data, err := client.RenderHTML(context.Background(), "<html><body>hi</body></html>")
	if err != nil {
		t.Fatalf("RenderHTML error: %v", err)
	}
	if string(data) != "%PDF-1.7 fake" {
		t.Fatalf("unexpected pdf payload: %q", string(data))
	}
}

func TestRenderHTMLServerError(t *testing.T) {
	server := newFakeGotenberg(t, http.StatusInternalServerError, nil)
	defer server.Close()

	client := NewClient(config.PDFConfig{GotenbergURL: server.URL})
	if _, err := client.RenderHTML(context.Background(), "<html></html>"); err == nil {
		t.Fatalf("expected error on 500 response")
	}
}

func TestInvoiceHTML(t *testing.T) {
	due := time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)
	invoice := &models.Invoice{
		InvoiceNo: "INV20260831120000ABC123",
		Status:    "pending",
		Customer: models.Customer{
			Name:    "Gulberg Traders",
			Phone:   "0300-1110001",
			Address: "12-B Main Boulevard",
		},
		Subtotal:       models.NewMoneyFromDecimal(decimal.NewFromInt(300)),
		TaxAmount:      models.NewMoneyFromDecimal(decimal.NewFromInt(30)),
		DiscountAmount: models.MoneyZero(),
		TotalAmount:    models.NewMoneyFromDecimal(decimal.NewFromInt(330)),
		PaidAmount:     models.MoneyZero(),
		BalanceAmount:  models.NewMoneyFromDecimal(decimal.NewFromInt(330)),
		DueDate:        &due,
		Items: []models.InvoiceItem{
			{Description: "19L 桶装纯净水", UnitPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(150)), Quantity: 2, TotalPrice: models.NewMoneyFromDecimal(decimal.NewFromInt(300))},
		},
	}

	html, err := InvoiceHTML(invoice)
	if err != nil {
		t.Fatalf("InvoiceHTML error: %v", err)
	}
	for _, want := range []string{
		"INV20260831120000ABC123",
		"Gulberg Traders",
		"19L 桶装纯净水",
		"2026-09-15",
		"330",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered html missing %q", want)
		}
	}
}
