package sealer

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"io"
	"strings"
)

const (
	KEY = "cI37BxwSsI455VE3NwgESo8eeQk+YqXIfohHBX9ilJA="
)

func newGCM() (cipher.AEAD, error) {
	key, err := base64.StdEncoding.DecodeString(KEY)
	if err != nil {
		return nil, err
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, err
	}
	return cipher.NewGCM(block)
}

// CreateTicketCode seals a bus ID and seat number into an opaque ticket
// code. The code is printed on the e-ticket and can be decoded at boarding
// without a database lookup.
func CreateTicketCode(busID string, seatNumber string) (string, error) {
	aead, err := newGCM()
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	plaintext := []byte(busID + ":" + seatNumber)
	sealed := aead.Seal(nonce, nonce, plaintext, nil)

	return base64.RawURLEncoding.EncodeToString(sealed), nil
}

// ParseTicketCode reverses CreateTicketCode, returning the bus ID and seat
// number. Tampered or truncated codes fail authentication.
func ParseTicketCode(code string) (string, string, error) {
	aead, err := newGCM()
	if err != nil {
		return "", "", err
	}

	data, err := base64.RawURLEncoding.DecodeString(code)
	if err != nil {
		return "", "", err
	}
	if len(data) < aead.NonceSize() {
		return "", "", fmt.Errorf("ticket code too short")
	}

	nonce, sealed := data[:aead.NonceSize()], data[aead.NonceSize():]
	plaintext, err := aead.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", "", err
	}

	busID, seatNumber, ok := strings.Cut(string(plaintext), ":")
	if !ok {
		return "", "", fmt.Errorf("malformed ticket code payload")
	}

	return busID, seatNumber, nil
}
