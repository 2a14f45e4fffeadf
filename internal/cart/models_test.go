package cart

import "testing"

func TestClampQuantity(t *testing.T) {
	cases := []struct {
		existing, requested, want int
	}{
		{0, 1, 1},
		{3, 2, 5},
		{9, 1, 10},
		{9, 5, 10},
		{10, 1, 10},
	}
	for _, c := range cases {
		if got := ClampQuantity(c.existing, c.requested); got != c.want {
			t.Errorf("ClampQuantity(%d, %d) = %d, want %d", c.existing, c.requested, got, c.want)
		}
	}
}

func TestSummarize(t *testing.T) {
	lines := []Line{
		{Price: 19.99, Quantity: 2},
		{Price: 5, Quantity: 1},
	}
	s := Summarize(lines)
	if s.TotalItems != 3 {
		t.Errorf("TotalItems = %d, want 3", s.TotalItems)
	}
	if s.TotalAmount != 44.98 {
		t.Errorf("TotalAmount = %v, want 44.98", s.TotalAmount)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	s := Summarize(nil)
	if s.TotalItems != 0 || s.TotalAmount != 0 {
		t.Errorf("empty summary = %+v", s)
	}
}
