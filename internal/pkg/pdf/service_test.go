// internal/pkg/pdf/service_test.go
package pdf

import (
	"strings"
	"testing"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/order"
)

func TestGenerateHTMLRendersOrder(t *testing.T) {
	s := NewService(&config.Config{
		Company: config.CompanyConfig{
			Name:  "Storefront",
			Email: "billing@example.com",
		},
	})

	o := &order.Order{
		ID:              7,
		Status:          order.OrderStatusPending,
		CustomerName:    "Alice Example",
		CustomerPhone:   "555-0100",
		CustomerAddress: "1 Main St",
		SubtotalAmount:  100000,
		DiscountAmount:  10000,
		TotalAmount:     90000,
		CouponCode:      "SALE10",
		CreatedAt:       time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Items: []order.OrderItem{
			{Name: "Classic Cotton T-Shirt", Quantity: 2, Price: 50000, TotalPrice: 100000},
		},
	}

	data := invoiceData{
		InvoiceNumber: "INV-000007",
		InvoiceDate:   time.Now().Format("January 2, 2006"),
		OrderDate:     o.CreatedAt.Format("January 2, 2006"),
		Status:        string(o.Status),
		CustomerName:  o.CustomerName,
		CustomerPhone: o.CustomerPhone,
		CustomerAddr:  o.CustomerAddress,
		Subtotal:      formatAmount(o.SubtotalAmount),
		Discount:      formatAmount(o.DiscountAmount),
		CouponCode:    o.CouponCode,
		Total:         formatAmount(o.TotalAmount),
		Company:       companyInfo{Name: "Storefront", Email: "billing@example.com"},
		Items: []invoiceItem{
			{Name: "Classic Cotton T-Shirt", Quantity: 2, Price: formatAmount(50000), Total: formatAmount(100000)},
		},
	}

	html, err := s.generateHTML(data)
	if err != nil {
		t.Fatalf("generateHTML returned error: %v", err)
	}

	for _, want := range []string{
		"INV-000007",
		"Alice Example",
		"Classic Cotton T-Shirt",
		"$1000.00",
		"-$100.00",
		"$900.00",
		"SALE10",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered invoice missing %q", want)
		}
	}
}

func TestFormatAmount(t *testing.T) {
	tests := []struct {
		amount int64
		want   string
	}{
		{0, "0.00"},
		{899, "8.99"},
		{100000, "1000.00"},
		{90000, "900.00"},
	}

	for _, tt := range tests {
		if got := formatAmount(tt.amount); got != tt.want {
			t.Fatalf("formatAmount(%d): got %q want %q", tt.amount, got, tt.want)
		}
	}
}
