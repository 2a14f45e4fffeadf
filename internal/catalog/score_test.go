package catalog

import (
	"strings"
	"testing"
)

func TestSustainabilityScoreDeepDiscountGood(t *testing.T) {
	// 400 against an original 1000 with a 150-char description, condition Good.
	desc := strings.Repeat("x", 150)
	got := SustainabilityScore(400, float64p(1000), ConditionGood, desc)
	if got != 85 {
		t.Errorf("score = %d, want 85", got)
	}
}

func TestSustainabilityScoreBase(t *testing.T) {
	if got := SustainabilityScore(20, nil, ConditionPoor, ""); got != 50 {
		t.Errorf("score = %d, want 50", got)
	}
}

func TestSustainabilityScoreConditionTiers(t *testing.T) {
	cases := map[Condition]int{
		ConditionNew:     65,
		ConditionLikeNew: 65,
		ConditionGood:    60,
		ConditionFair:    50,
		ConditionPoor:    50,
	}
	for cond, want := range cases {
		if got := SustainabilityScore(10, nil, cond, ""); got != want {
			t.Errorf("score(%s) = %d, want %d", cond, got, want)
		}
	}
}

func TestSustainabilityScoreDiscountBoundary(t *testing.T) {
	// Exactly half the original price is not a deep discount.
	if got := SustainabilityScore(50, float64p(100), ConditionFair, ""); got != 50 {
		t.Errorf("score at exactly 50%% = %d, want 50", got)
	}
	if got := SustainabilityScore(49.99, float64p(100), ConditionFair, ""); got != 70 {
		t.Errorf("score just under 50%% = %d, want 70", got)
	}
}

func TestSustainabilityScoreDescriptionBoundary(t *testing.T) {
	exactly100 := strings.Repeat("a", 100)
	if got := SustainabilityScore(10, nil, ConditionFair, exactly100); got != 50 {
		t.Errorf("score at 100 chars = %d, want 50", got)
	}
	if got := SustainabilityScore(10, nil, ConditionFair, exactly100+"a"); got != 55 {
		t.Errorf("score at 101 chars = %d, want 55", got)
	}
}

func TestStatusTransitions(t *testing.T) {
	allowed := []struct{ from, to Status }{
		{StatusAvailable, StatusSold},
		{StatusAvailable, StatusDeleted},
	}
	for _, c := range allowed {
		if !CanTransition(c.from, c.to) {
			t.Errorf("CanTransition(%s, %s) = false", c.from, c.to)
		}
	}
	denied := []struct{ from, to Status }{
		{StatusSold, StatusAvailable},
		{StatusSold, StatusDeleted},
		{StatusDeleted, StatusAvailable},
		{StatusDeleted, StatusSold},
	}
	for _, c := range denied {
		if CanTransition(c.from, c.to) {
			t.Errorf("CanTransition(%s, %s) = true", c.from, c.to)
		}
	}
}

func TestConditionValid(t *testing.T) {
	for _, c := range []Condition{ConditionNew, ConditionLikeNew, ConditionGood, ConditionFair, ConditionPoor} {
		if !c.Valid() {
			t.Errorf("%q not valid", c)
		}
	}
	if Condition("Mint").Valid() {
		t.Error("unknown condition accepted")
	}
}
