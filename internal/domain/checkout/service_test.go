// internal/domain/checkout/service_test.go
package checkout

import (
	"context"
	"fmt"
	"testing"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/cart"
	"github.com/your-org/storefront-backend/internal/domain/coupon"
	"github.com/your-org/storefront-backend/internal/domain/product"
)

type stubCarts struct {
	claimed  *cart.ClaimedCart
	claims   int
	restores int
}

func (s *stubCarts) Claim(ctx context.Context, sessionID string) (*cart.ClaimedCart, error) {
	s.claims++
	return s.claimed, nil
}

func (s *stubCarts) Restore(ctx context.Context, claimed *cart.ClaimedCart) error {
	s.restores++
	return nil
}

type stubCoupons struct {
	coupon *coupon.Coupon
	err    error
}

func (s *stubCoupons) Validate(code string) (*coupon.Coupon, error) {
	return s.coupon, s.err
}

func claimedWithItems(items ...cart.CartItemResponse) *cart.ClaimedCart {
	return &cart.ClaimedCart{Cart: &cart.CartResponse{SessionID: "sess", Items: items}}
}

func validRequest() *CheckoutRequest {
	return &CheckoutRequest{
		CustomerName:    "Alice",
		CustomerPhone:   "555-0100",
		CustomerAddress: "1 Main St",
	}
}

// Contact validation happens before any store access, so a service with
// no backing connections is enough to exercise it.
func TestProcessCheckoutRequiresContactFields(t *testing.T) {
	carts := &stubCarts{claimed: claimedWithItems()}
	s := &Service{config: &config.Config{}, carts: carts}

	tests := []struct {
		name string
		req  CheckoutRequest
	}{
		{"missing name", CheckoutRequest{CustomerPhone: "555-0100", CustomerAddress: "1 Main St"}},
		{"missing phone", CheckoutRequest{CustomerName: "Alice", CustomerAddress: "1 Main St"}},
		{"missing address", CheckoutRequest{CustomerName: "Alice", CustomerPhone: "555-0100"}},
		{"whitespace only", CheckoutRequest{CustomerName: "  ", CustomerPhone: "\t", CustomerAddress: " "}},
	}

	for _, tt := range tests {
		if _, err := s.ProcessCheckout(context.Background(), "session-1", nil, &tt.req); err == nil {
			t.Fatalf("%s: expected error, got none", tt.name)
		}
	}

	if carts.claims != 0 {
		t.Fatal("invalid contact details must not claim the cart")
	}
}

func TestProcessCheckoutEmptyCartRejected(t *testing.T) {
	carts := &stubCarts{claimed: claimedWithItems()}
	s := &Service{config: &config.Config{}, carts: carts}

	_, err := s.ProcessCheckout(context.Background(), "sess", nil, validRequest())
	if err == nil || err.Error() != "cart is empty" {
		t.Fatalf("expected empty cart error, got %v", err)
	}
	if carts.restores != 0 {
		t.Fatal("an empty claim has nothing to restore")
	}
}

func TestProcessCheckoutInvalidCouponRestoresCart(t *testing.T) {
	carts := &stubCarts{claimed: claimedWithItems(cart.CartItemResponse{
		ProductID: 1,
		Quantity:  2,
		Price:     1999,
		Product:   &product.Product{Name: "Classic Cotton T-Shirt", Price: 1999},
	})}
	s := &Service{
		config:  &config.Config{},
		carts:   carts,
		coupons: &stubCoupons{err: fmt.Errorf("invalid coupon code")},
	}

	req := validRequest()
	req.CouponCode = "NOPE"
	_, err := s.ProcessCheckout(context.Background(), "sess", nil, req)
	if err == nil || err.Error() != "invalid coupon code" {
		t.Fatalf("expected coupon error, got %v", err)
	}

	if carts.restores != 1 {
		t.Fatalf("failed checkout must put the claimed cart back: restores %d", carts.restores)
	}
}

func TestProcessCheckoutUnpricedLineRestoresCart(t *testing.T) {
	carts := &stubCarts{claimed: claimedWithItems(cart.CartItemResponse{
		ProductID: 9,
		Quantity:  1,
	})}
	s := &Service{config: &config.Config{}, carts: carts}

	_, err := s.ProcessCheckout(context.Background(), "sess", nil, validRequest())
	if err == nil || err.Error() != "product 9 is no longer available" {
		t.Fatalf("expected unavailable product error, got %v", err)
	}

	if carts.restores != 1 {
		t.Fatalf("failed checkout must put the claimed cart back: restores %d", carts.restores)
	}
}
