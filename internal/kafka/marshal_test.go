package kafka

import (
	"encoding/json"
	"testing"
)

func TestUnwrapPayloadRoundTrip(t *testing.T) {
	type payload struct {
		BuyerID int64   `json:"buyer_id"`
		Total   float64 `json:"total"`
	}

	raw := json.RawMessage(MustMarshal(payload{BuyerID: 7, Total: 44.98}))
	got, err := UnwrapPayload[payload](raw)
	if err != nil {
		t.Fatalf("unwrap: %v", err)
	}
	if got.BuyerID != 7 || got.Total != 44.98 {
		t.Errorf("got %+v", got)
	}
}

func TestUnwrapPayloadRejectsGarbage(t *testing.T) {
	type payload struct {
		N int `json:"n"`
	}
	if _, err := UnwrapPayload[payload](json.RawMessage(`{"n": "not a number"}`)); err == nil {
		t.Error("expected decode error")
	}
}
