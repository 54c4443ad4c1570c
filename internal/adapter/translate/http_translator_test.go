package translate

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"quizforge/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTranslator(serverURL string) *HTTPTranslator {
	return NewHTTPTranslator(config.TranslatorConfig{
		ServerURL: serverURL,
		Timeout:   2 * time.Second,
	}).(*HTTPTranslator)
}

func TestHTTPTranslatorTranslate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/translate", r.URL.Path)

		var req translateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "vi", req.Source)
		assert.Equal(t, "en", req.Target)

		json.NewEncoder(w).Encode(translateResponse{TranslatedText: "Paris is the capital of France."})
	}))
	defer server.Close()

	translator := newTestTranslator(server.URL)
	out, err := translator.Translate(context.Background(), "Paris là thủ đô của Pháp.", "vi", "en")

	assert.NoError(t, err)
	assert.Equal(t, "Paris is the capital of France.", out)
}

func TestHTTPTranslatorEmptyText(t *testing.T) {
	translator := newTestTranslator("http://unreachable.invalid")
	out, err := translator.Translate(context.Background(), "", "vi", "en")

	assert.NoError(t, err)
	assert.Empty(t, out)
}

func TestHTTPTranslatorServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream quota exceeded", http.StatusBadGateway)
	}))
	defer server.Close()

	translator := newTestTranslator(server.URL)
	_, err := translator.Translate(context.Background(), "text", "vi", "en")

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestHTTPTranslatorUnreachable(t *testing.T) {
	translator := newTestTranslator("http://127.0.0.1:1")
	_, err := translator.Translate(context.Background(), "text", "en", "vi")
	assert.Error(t, err)
}
