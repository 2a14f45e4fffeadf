package orders

import (
	"errors"
	"testing"
)

func TestEcoPointsFlooring(t *testing.T) {
	cases := []struct {
		amount float64
		want   int
	}{
		{0, 0},
		{9.99, 0},
		{10, 1},
		{400, 40},
		{459.99, 45},
		{1000, 100},
	}
	for _, c := range cases {
		if got := EcoPoints(c.amount); got != c.want {
			t.Errorf("EcoPoints(%v) = %d, want %d", c.amount, got, c.want)
		}
	}
}

func TestUnavailableErrorNamesProduct(t *testing.T) {
	err := &UnavailableError{ProductID: 17}
	if err.Error() != "product 17 not found or not available" {
		t.Errorf("message = %q", err.Error())
	}

	var ue *UnavailableError
	var wrapped error = err
	if !errors.As(wrapped, &ue) || ue.ProductID != 17 {
		t.Error("errors.As failed to recover the product id")
	}
}

func TestDuplicateProducts(t *testing.T) {
	ok := []ItemInput{{ProductID: 1, Quantity: 1}, {ProductID: 2, Quantity: 3}}
	if DuplicateProducts(ok) {
		t.Error("distinct products flagged as duplicates")
	}
	dup := []ItemInput{{ProductID: 1, Quantity: 1}, {ProductID: 1, Quantity: 2}}
	if !DuplicateProducts(dup) {
		t.Error("repeated product id not detected")
	}
	if DuplicateProducts(nil) {
		t.Error("empty input flagged")
	}
}

func TestPartitionKey(t *testing.T) {
	if string(PartitionKey(42)) != "42" {
		t.Errorf("PartitionKey(42) = %q", PartitionKey(42))
	}
}
