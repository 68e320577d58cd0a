package types

import (
	"encoding/json"
	"testing"
)

func TestAmountRoundTripFlat(t *testing.T) {
	data, err := json.Marshal(FlatAmount(450))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != "450" {
		t.Fatalf("flat amount must serialize as a number, got %s", data)
	}

	var back Amount
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !back.IsFlat() || back.Value() != 450 {
		t.Fatalf("round trip lost the flat value: %+v", back)
	}
}

func TestAmountRoundTripRaw(t *testing.T) {
	data, err := json.Marshal(RawAmount("5500 - 6000"))
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"5500 - 6000"` {
		t.Fatalf("raw amount must serialize as a string, got %s", data)
	}

	var back Amount
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if back.IsFlat() || back.Raw() != "5500 - 6000" {
		t.Fatalf("round trip lost the raw value: %+v", back)
	}
}

func TestAmountEqual(t *testing.T) {
	if !FlatAmount(100).Equal(FlatAmount(100)) {
		t.Fatalf("equal flat amounts reported unequal")
	}
	if FlatAmount(100).Equal(RawAmount("100")) {
		t.Fatalf("flat and raw must never compare equal")
	}
	if !RawAmount("bad-data").Equal(RawAmount("bad-data")) {
		t.Fatalf("equal raw amounts reported unequal")
	}
}
