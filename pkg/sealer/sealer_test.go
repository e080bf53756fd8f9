package sealer

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestTicketCodeRoundTrip(t *testing.T) {
	busID := "66b1f0a2c3d4e5f6a7b8c9d0"
	seatNumber := "A1"

	code, err := CreateTicketCode(busID, seatNumber)
	if err != nil {
		t.Fatalf("CreateTicketCode failed: %v", err)
	}
	if code == "" {
		t.Fatal("expected a non-empty ticket code")
	}
	if strings.Contains(code, busID) {
		t.Error("ticket code leaks the bus id")
	}

	gotBus, gotSeat, err := ParseTicketCode(code)
	if err != nil {
		t.Fatalf("ParseTicketCode failed: %v", err)
	}
	if gotBus != busID {
		t.Errorf("expected bus id %s, got %s", busID, gotBus)
	}
	if gotSeat != seatNumber {
		t.Errorf("expected seat %s, got %s", seatNumber, gotSeat)
	}
}

func TestTicketCodeSeatWithColon(t *testing.T) {
	// Only the first separator splits, so a colon in the seat part survives.
	code, err := CreateTicketCode("bus-1", "A:1")
	if err != nil {
		t.Fatalf("CreateTicketCode failed: %v", err)
	}

	gotBus, gotSeat, err := ParseTicketCode(code)
	if err != nil {
		t.Fatalf("ParseTicketCode failed: %v", err)
	}
	if gotBus != "bus-1" || gotSeat != "A:1" {
		t.Errorf("expected bus-1/A:1, got %s/%s", gotBus, gotSeat)
	}
}

func TestTicketCodesAreUnique(t *testing.T) {
	first, err := CreateTicketCode("bus-1", "A1")
	if err != nil {
		t.Fatalf("CreateTicketCode failed: %v", err)
	}
	second, err := CreateTicketCode("bus-1", "A1")
	if err != nil {
		t.Fatalf("CreateTicketCode failed: %v", err)
	}
	if first == second {
		t.Error("expected a fresh nonce to produce distinct codes for the same seat")
	}
}

func TestParseTicketCodeRejectsGarbage(t *testing.T) {
	tests := []struct {
		name string
		code string
	}{
		{"empty", ""},
		{"not base64url", "не-код"},
		{"shorter than a nonce", base64.RawURLEncoding.EncodeToString([]byte("tiny"))},
		{"random bytes", base64.RawURLEncoding.EncodeToString(make([]byte, 64))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := ParseTicketCode(tt.code); err == nil {
				t.Error("expected an error, got none")
			}
		})
	}
}

func TestParseTicketCodeRejectsTampering(t *testing.T) {
	code, err := CreateTicketCode("bus-1", "A1")
	if err != nil {
		t.Fatalf("CreateTicketCode failed: %v", err)
	}

	raw, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		t.Fatalf("failed to decode code: %v", err)
	}
	raw[len(raw)-1] ^= 0xff
	tampered := base64.RawURLEncoding.EncodeToString(raw)

	if _, _, err := ParseTicketCode(tampered); err == nil {
		t.Error("expected a flipped byte to fail authentication")
	}
}
