// internal/domain/coupon/entity_test.go
package coupon

import (
	"testing"
	"time"
)

func TestDiscountPercentage(t *testing.T) {
	c := Coupon{Code: "SALE10", Percent: 10}

	if got := c.Discount(100000); got != 10000 {
		t.Fatalf("discount mismatch: got %d want 10000", got)
	}

	total := int64(100000) - c.Discount(100000)
	if total != 90000 {
		t.Fatalf("total after SALE10 mismatch: got %d want 90000", total)
	}
}

func TestDiscountRoundsDown(t *testing.T) {
	c := Coupon{Code: "ODD", Percent: 3}

	// 3% of 101 minor units is 3.03; the fraction is dropped
	if got := c.Discount(101); got != 3 {
		t.Fatalf("discount mismatch: got %d want 3", got)
	}
}

func TestDiscountZeroSubtotal(t *testing.T) {
	c := Coupon{Code: "SALE10", Percent: 10}

	if got := c.Discount(0); got != 0 {
		t.Fatalf("discount on empty subtotal: got %d want 0", got)
	}
}

func TestIsExpired(t *testing.T) {
	now := time.Now().UTC()
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name      string
		expiresAt *time.Time
		want      bool
	}{
		{"no expiry never expires", nil, false},
		{"past expiry", &past, true},
		{"future expiry", &future, false},
	}

	for _, tt := range tests {
		c := Coupon{Code: "TEST", Percent: 5, ExpiresAt: tt.expiresAt}
		if got := c.IsExpired(now); got != tt.want {
			t.Fatalf("%s: got %v want %v", tt.name, got, tt.want)
		}
	}
}
