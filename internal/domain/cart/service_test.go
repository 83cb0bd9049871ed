// internal/domain/cart/service_test.go
package cart

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/your-org/storefront-backend/internal/config"
	"github.com/your-org/storefront-backend/internal/domain/inventory"
	"github.com/your-org/storefront-backend/internal/domain/product"
)

// memoryCartStore is an in-process cartStore for tests
type memoryCartStore struct {
	carts map[string]SessionCart
}

func newMemoryCartStore() *memoryCartStore {
	return &memoryCartStore{carts: make(map[string]SessionCart)}
}

func (m *memoryCartStore) Read(ctx context.Context, sessionID string) (*SessionCart, error) {
	c, ok := m.carts[sessionID]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memoryCartStore) Write(ctx context.Context, sessionCart *SessionCart, ttl time.Duration) error {
	m.carts[sessionCart.SessionID] = *sessionCart
	return nil
}

func (m *memoryCartStore) Take(ctx context.Context, sessionID string) (*SessionCart, error) {
	c, ok := m.carts[sessionID]
	if !ok {
		return nil, nil
	}
	delete(m.carts, sessionID)
	return &c, nil
}

func (m *memoryCartStore) Delete(ctx context.Context, sessionID string) error {
	delete(m.carts, sessionID)
	return nil
}

func (m *memoryCartStore) Sessions(ctx context.Context) ([]string, error) {
	ids := make([]string, 0, len(m.carts))
	for id := range m.carts {
		ids = append(ids, id)
	}
	return ids, nil
}

type stockMove struct {
	productID uint
	quantity  int
}

// recordingReserver records every reserve and release; Reserve fails
// for products listed in failOn
type recordingReserver struct {
	failOn   map[uint]error
	reserves []stockMove
	releases []stockMove
}

func (r *recordingReserver) Reserve(productID uint, quantity int, sessionID string, reason inventory.MovementReason) error {
	if err, ok := r.failOn[productID]; ok {
		return err
	}
	r.reserves = append(r.reserves, stockMove{productID, quantity})
	return nil
}

func (r *recordingReserver) Release(productID uint, quantity int, sessionID string, reason inventory.MovementReason) error {
	r.releases = append(r.releases, stockMove{productID, quantity})
	return nil
}

type mapProductFinder map[uint]*product.Product

func (m mapProductFinder) FindProduct(productID uint) (*product.Product, error) {
	if prod, ok := m[productID]; ok {
		return prod, nil
	}
	return nil, fmt.Errorf("product not found")
}

func newTestService(products mapProductFinder) (*Service, *recordingReserver, *memoryCartStore) {
	reserver := &recordingReserver{failOn: make(map[uint]error)}
	store := newMemoryCartStore()
	s := &Service{
		store:     store,
		inventory: reserver,
		products:  products,
		config: &config.Config{
			Cart: config.CartConfig{Expiry: 30 * time.Minute},
		},
	}
	return s, reserver, store
}

func seedCart(store *memoryCartStore, sessionID string, expiresAt time.Time, items ...SessionCartItem) {
	now := time.Now().UTC()
	store.carts[sessionID] = SessionCart{
		SessionID: sessionID,
		Items:     items,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: expiresAt,
	}
}

func TestAddToCartReservesThenSaves(t *testing.T) {
	s, reserver, store := newTestService(mapProductFinder{1: {Name: "Mug", Price: 899}})

	resp, err := s.AddToCart(context.Background(), "sess", &AddToCartRequest{ProductID: 1, Quantity: 3})
	if err != nil {
		t.Fatalf("AddToCart returned error: %v", err)
	}

	if len(reserver.reserves) != 1 || reserver.reserves[0] != (stockMove{1, 3}) {
		t.Fatalf("expected one reservation of 3 units, got %v", reserver.reserves)
	}
	if got := store.carts["sess"].Items[0].Quantity; got != 3 {
		t.Fatalf("saved quantity: got %d want 3", got)
	}
	if resp.Totals.SubTotal != 3*899 {
		t.Fatalf("subtotal: got %d want %d", resp.Totals.SubTotal, 3*899)
	}
}

func TestAddToCartInsufficientStockMutatesNothing(t *testing.T) {
	s, reserver, store := newTestService(mapProductFinder{})
	reserver.failOn[1] = inventory.ErrInsufficientStock

	_, err := s.AddToCart(context.Background(), "sess", &AddToCartRequest{ProductID: 1, Quantity: 999})
	if !errors.Is(err, inventory.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}

	if len(store.carts) != 0 {
		t.Fatal("failed reservation must not save a cart")
	}
	if len(reserver.reserves) != 0 || len(reserver.releases) != 0 {
		t.Fatalf("failed reservation must not move stock: reserves %v releases %v", reserver.reserves, reserver.releases)
	}
}

func TestRemoveFromCartReleasesExactReservedQuantity(t *testing.T) {
	s, reserver, store := newTestService(mapProductFinder{})
	seedCart(store, "sess", time.Now().UTC().Add(time.Hour), SessionCartItem{ProductID: 1, Quantity: 5})

	if _, err := s.RemoveFromCart(context.Background(), "sess", 1); err != nil {
		t.Fatalf("RemoveFromCart returned error: %v", err)
	}

	if len(reserver.releases) != 1 || reserver.releases[0] != (stockMove{1, 5}) {
		t.Fatalf("expected one release of 5 units, got %v", reserver.releases)
	}
	if _, ok := store.carts["sess"]; ok {
		t.Fatal("emptied cart should be dropped from the store")
	}
}

func TestRemoveFromCartAbsentProductIsNoop(t *testing.T) {
	s, reserver, store := newTestService(mapProductFinder{})
	seedCart(store, "sess", time.Now().UTC().Add(time.Hour), SessionCartItem{ProductID: 1, Quantity: 2})

	if _, err := s.RemoveFromCart(context.Background(), "sess", 42); err != nil {
		t.Fatalf("RemoveFromCart returned error: %v", err)
	}

	if len(reserver.releases) != 0 {
		t.Fatalf("removing an absent product must not release stock: %v", reserver.releases)
	}
	if got := store.carts["sess"].Items[0].Quantity; got != 2 {
		t.Fatalf("cart should be untouched: got quantity %d want 2", got)
	}
}

func TestUpdateCartAppliesDeltaPerLine(t *testing.T) {
	s, reserver, store := newTestService(mapProductFinder{})
	seedCart(store, "sess", time.Now().UTC().Add(time.Hour),
		SessionCartItem{ProductID: 1, Quantity: 2},
		SessionCartItem{ProductID: 2, Quantity: 4},
	)

	_, err := s.UpdateCart(context.Background(), "sess", &UpdateCartRequest{
		Items: []ItemQuantity{
			{ProductID: 1, Quantity: 5}, // +3
			{ProductID: 2, Quantity: 1}, // -3
			{ProductID: 3, Quantity: 0}, // absent, no-op
		},
	})
	if err != nil {
		t.Fatalf("UpdateCart returned error: %v", err)
	}

	if len(reserver.reserves) != 1 || reserver.reserves[0] != (stockMove{1, 3}) {
		t.Fatalf("expected reserve of the 3 unit increase, got %v", reserver.reserves)
	}
	if len(reserver.releases) != 1 || reserver.releases[0] != (stockMove{2, 3}) {
		t.Fatalf("expected release of the 3 unit decrease, got %v", reserver.releases)
	}

	saved := store.carts["sess"]
	if got := saved.Quantity(1); got != 5 {
		t.Fatalf("product 1 quantity: got %d want 5", got)
	}
	if got := saved.Quantity(2); got != 1 {
		t.Fatalf("product 2 quantity: got %d want 1", got)
	}
}

func TestUpdateCartZeroRemovesLineAndReleasesAll(t *testing.T) {
	s, reserver, store := newTestService(mapProductFinder{})
	seedCart(store, "sess", time.Now().UTC().Add(time.Hour), SessionCartItem{ProductID: 1, Quantity: 2})

	_, err := s.UpdateCart(context.Background(), "sess", &UpdateCartRequest{
		Items: []ItemQuantity{{ProductID: 1, Quantity: 0}},
	})
	if err != nil {
		t.Fatalf("UpdateCart returned error: %v", err)
	}

	if len(reserver.releases) != 1 || reserver.releases[0] != (stockMove{1, 2}) {
		t.Fatalf("expected release of the full line, got %v", reserver.releases)
	}
	if _, ok := store.carts["sess"]; ok {
		t.Fatal("emptied cart should be dropped from the store")
	}
}

func TestUpdateCartRejectsNegativeQuantity(t *testing.T) {
	s, reserver, _ := newTestService(mapProductFinder{})

	_, err := s.UpdateCart(context.Background(), "sess", &UpdateCartRequest{
		Items: []ItemQuantity{{ProductID: 1, Quantity: -1}},
	})
	if err == nil {
		t.Fatal("negative quantity should be rejected")
	}
	if len(reserver.reserves) != 0 || len(reserver.releases) != 0 {
		t.Fatal("rejected update must not move stock")
	}
}

func TestUpdateCartMidFailureNamesProductAndKeepsAppliedLines(t *testing.T) {
	s, reserver, store := newTestService(mapProductFinder{})
	reserver.failOn[2] = inventory.ErrInsufficientStock

	_, err := s.UpdateCart(context.Background(), "sess", &UpdateCartRequest{
		Items: []ItemQuantity{
			{ProductID: 1, Quantity: 2},
			{ProductID: 2, Quantity: 3},
		},
	})
	if !errors.Is(err, inventory.ErrInsufficientStock) {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
	if !strings.Contains(err.Error(), "product 2") {
		t.Fatalf("error should name the failing product: %v", err)
	}

	// The first line's reservation already happened and must stay
	// consistent with the saved cart
	saved := store.carts["sess"]
	if got := saved.Quantity(1); got != 2 {
		t.Fatalf("applied line should be saved: got quantity %d want 2", got)
	}
	if got := saved.Quantity(2); got != 0 {
		t.Fatalf("failed line must not be saved: got quantity %d", got)
	}
}

func TestClaimTakesCartOutOfReaperReach(t *testing.T) {
	s, reserver, store := newTestService(mapProductFinder{1: {Name: "Mug", Price: 899}})
	seedCart(store, "sess", time.Now().UTC().Add(time.Hour), SessionCartItem{ProductID: 1, Quantity: 2})

	claimed, err := s.Claim(context.Background(), "sess")
	if err != nil {
		t.Fatalf("Claim returned error: %v", err)
	}
	if len(claimed.Cart.Items) != 1 {
		t.Fatalf("claimed cart items: got %d want 1", len(claimed.Cart.Items))
	}
	if _, ok := store.carts["sess"]; ok {
		t.Fatal("claimed cart must be removed from the store")
	}

	// Even if the hold lapses mid-checkout, a sweep cannot see the
	// claimed cart and must not touch its units
	s.reapExpired(context.Background())
	if len(reserver.releases) != 0 {
		t.Fatalf("sweep released stock belonging to a claimed cart: %v", reserver.releases)
	}
}

func TestRestorePutsClaimedCartBack(t *testing.T) {
	s, _, store := newTestService(mapProductFinder{1: {Name: "Mug", Price: 899}})
	seedCart(store, "sess", time.Now().UTC().Add(time.Hour), SessionCartItem{ProductID: 1, Quantity: 2})

	claimed, err := s.Claim(context.Background(), "sess")
	if err != nil {
		t.Fatalf("Claim returned error: %v", err)
	}
	if err := s.Restore(context.Background(), claimed); err != nil {
		t.Fatalf("Restore returned error: %v", err)
	}

	saved, ok := store.carts["sess"]
	if !ok {
		t.Fatal("restored cart missing from the store")
	}
	if got := saved.Quantity(1); got != 2 {
		t.Fatalf("restored quantity: got %d want 2", got)
	}
	if !saved.ExpiresAt.After(time.Now().UTC()) {
		t.Fatal("restore should extend the reservation hold")
	}
}

func TestClaimExpiredCartReleasesReservations(t *testing.T) {
	s, reserver, store := newTestService(mapProductFinder{})
	seedCart(store, "sess", time.Now().UTC().Add(-time.Minute), SessionCartItem{ProductID: 1, Quantity: 2})

	claimed, err := s.Claim(context.Background(), "sess")
	if err != nil {
		t.Fatalf("Claim returned error: %v", err)
	}

	if len(claimed.Cart.Items) != 0 {
		t.Fatal("expired cart should come back empty")
	}
	if len(reserver.releases) != 1 || reserver.releases[0] != (stockMove{1, 2}) {
		t.Fatalf("expected release of the expired reservation, got %v", reserver.releases)
	}
}

func TestExpiredCartReleasedOnLoad(t *testing.T) {
	s, reserver, store := newTestService(mapProductFinder{})
	seedCart(store, "sess", time.Now().UTC().Add(-time.Minute), SessionCartItem{ProductID: 1, Quantity: 3})

	resp, err := s.GetCart(context.Background(), "sess")
	if err != nil {
		t.Fatalf("GetCart returned error: %v", err)
	}

	if len(resp.Items) != 0 {
		t.Fatal("expired cart should be emptied on load")
	}
	if len(reserver.releases) != 1 || reserver.releases[0] != (stockMove{1, 3}) {
		t.Fatalf("expected release of the expired reservation, got %v", reserver.releases)
	}
}

func TestSetQuantityUpdatesExistingLine(t *testing.T) {
	s := &Service{}
	c := &SessionCart{
		Items: []SessionCartItem{{ProductID: 1, Quantity: 5, AddedAt: time.Now()}},
	}

	s.setQuantity(c, 1, 3)

	if got := c.Quantity(1); got != 3 {
		t.Fatalf("quantity after update: got %d want 3", got)
	}
	if len(c.Items) != 1 {
		t.Fatalf("line count after update: got %d want 1", len(c.Items))
	}
}

func TestSetQuantityZeroRemovesLine(t *testing.T) {
	s := &Service{}
	c := &SessionCart{
		Items: []SessionCartItem{
			{ProductID: 1, Quantity: 5},
			{ProductID: 2, Quantity: 2},
		},
	}

	s.setQuantity(c, 1, 0)

	if got := c.Quantity(1); got != 0 {
		t.Fatalf("quantity after removal: got %d want 0", got)
	}
	if len(c.Items) != 1 {
		t.Fatalf("line count after removal: got %d want 1", len(c.Items))
	}
	if c.Items[0].ProductID != 2 {
		t.Fatalf("wrong line removed: remaining product %d", c.Items[0].ProductID)
	}
}

func TestSetQuantityAppendsNewLine(t *testing.T) {
	s := &Service{}
	c := &SessionCart{}

	s.setQuantity(c, 7, 4)

	if got := c.Quantity(7); got != 4 {
		t.Fatalf("quantity after append: got %d want 4", got)
	}
}

func TestSetQuantityZeroOnAbsentLineIsNoop(t *testing.T) {
	s := &Service{}
	c := &SessionCart{}

	s.setQuantity(c, 7, 0)

	if len(c.Items) != 0 {
		t.Fatalf("expected no lines, got %d", len(c.Items))
	}
}
