// internal/domain/cart/entity_test.go
package cart

import (
	"testing"
	"time"
)

func TestSessionCartIsExpired(t *testing.T) {
	now := time.Now().UTC()

	c := SessionCart{ExpiresAt: now.Add(-time.Minute)}
	if !c.IsExpired(now) {
		t.Fatal("cart past its expiry should be expired")
	}

	c.ExpiresAt = now.Add(time.Minute)
	if c.IsExpired(now) {
		t.Fatal("cart before its expiry should not be expired")
	}

	c.ExpiresAt = time.Time{}
	if c.IsExpired(now) {
		t.Fatal("cart without expiry should not be expired")
	}
}

func TestSessionCartQuantity(t *testing.T) {
	c := SessionCart{
		Items: []SessionCartItem{
			{ProductID: 1, Quantity: 5},
			{ProductID: 2, Quantity: 3},
		},
	}

	if got := c.Quantity(1); got != 5 {
		t.Fatalf("quantity mismatch for product 1: got %d want 5", got)
	}
	if got := c.Quantity(99); got != 0 {
		t.Fatalf("quantity for absent product: got %d want 0", got)
	}
}

func TestCalculateTotals(t *testing.T) {
	items := []CartItemResponse{
		{ProductID: 1, Quantity: 3, Price: 1999},
		{ProductID: 2, Quantity: 1, Price: 899},
	}

	totals := CalculateTotals(items)

	if totals.ItemCount != 2 {
		t.Fatalf("item count mismatch: got %d want 2", totals.ItemCount)
	}
	if totals.TotalQuantity != 4 {
		t.Fatalf("total quantity mismatch: got %d want 4", totals.TotalQuantity)
	}
	if want := int64(3*1999 + 899); totals.SubTotal != want {
		t.Fatalf("subtotal mismatch: got %d want %d", totals.SubTotal, want)
	}
}

func TestCalculateTotalsEmpty(t *testing.T) {
	totals := CalculateTotals(nil)

	if totals.ItemCount != 0 || totals.TotalQuantity != 0 || totals.SubTotal != 0 {
		t.Fatalf("empty cart should have zero totals, got %+v", totals)
	}
}
