package whatsapp

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/loopiify-next/internal/config"
)

func TestOnSendClientSendsBearerAndPayload(t *testing.T) {
	var gotAuth string
	var gotBody Message
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode body failed: %v", err)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewOnSendClient(&config.WhatsAppConfig{APIURL: server.URL})
	err := client.Send(context.Background(), "test-key", Message{
		PhoneNumber: "60123456789",
		Message:     "您好",
	})
	if err != nil {
		t.Fatalf("send failed: %v", err)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("authorization want bearer, got %q", gotAuth)
	}
	if gotBody.PhoneNumber != "60123456789" {
		t.Fatalf("phone want 60123456789 got %s", gotBody.PhoneNumber)
	}
	if gotBody.Type != "text" {
		t.Fatalf("type should default to text, got %s", gotBody.Type)
	}
}

func TestOnSendClientRejectsMissingKey(t *testing.T) {
	client := NewOnSendClient(nil)
	if err := client.Send(context.Background(), "  ", Message{PhoneNumber: "60123456789", Message: "hi"}); err != ErrAPIKeyMissing {
		t.Fatalf("want ErrAPIKeyMissing got %v", err)
	}
}

func TestOnSendClientSurfacesHTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"message":"invalid token"}`))
	}))
	defer server.Close()

	client := NewOnSendClient(&config.WhatsAppConfig{APIURL: server.URL})
	err := client.Send(context.Background(), "bad-key", Message{PhoneNumber: "60123456789", Message: "hi"})
	if err == nil {
		t.Fatalf("expect error for non-2xx response")
	}
}

func TestNormalizePhone(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"012-345 6789", "60123456789"},
		{"+60 12 345 6789", "60123456789"},
		{"60123456789", "60123456789"},
		{"(01) 2345-6789", "60123456789"},
		{"", ""},
	}
	for _, c := range cases {
		if got := NormalizePhone(c.in); got != c.want {
			t.Fatalf("normalize %q want %q got %q", c.in, c.want, got)
		}
	}
}
