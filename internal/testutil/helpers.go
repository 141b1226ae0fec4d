package testutil

import (
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"testing"
)

const nameLetters = "abcdefghijklmnopqrstuvwxyz"

// RandomName returns a random account or channel name for tests.
func RandomName(prefix string) string {
	b := make([]byte, 8)
	for i := range b {
		b[i] = nameLetters[rand.Intn(len(nameLetters))]
	}
	return fmt.Sprintf("%s-%s", prefix, b)
}

// DecodeJSON decodes a response body into v and closes the body.
func DecodeJSON(t *testing.T, resp *http.Response, v interface{}) {
	t.Helper()
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		t.Fatalf("decode response: %v", err)
	}
}
