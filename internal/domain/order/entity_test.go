// internal/domain/order/entity_test.go
package order

import "testing"

func TestIsValidStatus(t *testing.T) {
	for _, status := range ValidStatuses {
		if !IsValidStatus(status) {
			t.Fatalf("%s should be a valid status", status)
		}
	}

	if IsValidStatus("refunded") {
		t.Fatal("unknown status should not validate")
	}
	if IsValidStatus("") {
		t.Fatal("empty status should not validate")
	}
}
