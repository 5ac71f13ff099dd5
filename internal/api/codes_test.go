package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/keyfob-dev/keyfob/apiclient"
	"github.com/keyfob-dev/keyfob/internal/totp"
)

func postJSON(t *testing.T, handler http.HandlerFunc, target string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	data, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}

	req := httptest.NewRequest("POST", target, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler(w, req)
	return w
}

func TestHandleGenerateCode(t *testing.T) {
	w := postJSON(t, HandleGenerateCode, "/api/codes", apiclient.CodeRequest{
		Secret: "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ",
	})

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
	}

	response := apiclient.CodeResponse{}
	if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if len(response.Code) != 6 {
		t.Errorf("code %q is not 6 digits", response.Code)
	}
	if response.Window != totp.DefaultWindow {
		t.Errorf("window = %d, want the default", response.Window)
	}
	if response.SecondsRemaining < 1 || response.SecondsRemaining > totp.DefaultWindow {
		t.Errorf("seconds remaining %d outside [1, %d]", response.SecondsRemaining, totp.DefaultWindow)
	}
}

func TestHandleGenerateCodeUndecodableSecret(t *testing.T) {
	tests := []struct {
		name   string
		secret string
	}{
		{"empty", ""},
		{"padding only", "===="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, HandleGenerateCode, "/api/codes", apiclient.CodeRequest{Secret: tt.secret})

			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusUnprocessableEntity)
			}

			response := apiclient.CodeResponse{}
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if response.Code != totp.DisplayInvalid {
				t.Errorf("code = %q, want %q", response.Code, totp.DisplayInvalid)
			}
		})
	}
}

func TestHandleGenerateCodeBadWindow(t *testing.T) {
	w := postJSON(t, HandleGenerateCode, "/api/codes", apiclient.CodeRequest{
		Secret: "JBSWY3DP",
		Window: 100000,
	})

	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestHandleGenerateCodeRejectsUnsupportedContentType(t *testing.T) {
	req := httptest.NewRequest("POST", "/api/codes", bytes.NewReader([]byte("secret=JBSWY3DP")))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()

	HandleGenerateCode(w, req)

	if w.Code != http.StatusUnsupportedMediaType {
		t.Errorf("status = %d, want %d", w.Code, http.StatusUnsupportedMediaType)
	}
}

func TestHandleCheckSecret(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		want   bool
	}{
		{"valid secret", "JBSWY3DP", true},
		{"dashed secret rejected", "JBSW-Y3DP", false},
		{"empty rejected", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(t, HandleCheckSecret, "/api/secrets/check", apiclient.CheckSecretRequest{Secret: tt.secret})

			if w.Code != http.StatusOK {
				t.Fatalf("status = %d, want %d", w.Code, http.StatusOK)
			}

			response := apiclient.CheckSecretResponse{}
			if err := json.NewDecoder(w.Body).Decode(&response); err != nil {
				t.Fatalf("decode response: %v", err)
			}
			if response.Valid != tt.want {
				t.Errorf("valid = %v, want %v", response.Valid, tt.want)
			}
		})
	}
}

func TestHandleAdviceDisabled(t *testing.T) {
	Initialize(nil)

	w := postJSON(t, HandleAdvice, "/api/advice", apiclient.AdviceRequest{Topic: "secret storage"})

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("status = %d, want %d", w.Code, http.StatusServiceUnavailable)
	}
}
