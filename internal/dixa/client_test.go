package dixa

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/dixa-voyado-bridge/internal/config"
)

func newTestClient(server *httptest.Server) *Client {
	return &Client{
		baseURL: server.URL,
		token:   "test-token",
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

func TestWithToken(t *testing.T) {
	client := NewClient(config.DixaConfig{BaseURL: "https://dev.dixa.io/v1", APIToken: "base"})
	override := client.WithToken("override")

	assert.Equal(t, "base", client.token)
	assert.Equal(t, "override", override.token)
	assert.True(t, override.HasToken())
	assert.False(t, NewClient(config.DixaConfig{}).HasToken())
}

func TestFindEndUserBuildsQueryFromPresentFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/endusers", r.URL.Path)
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		assert.Equal(t, "a@b.com", r.URL.Query().Get("email"))
		assert.Empty(t, r.URL.Query().Get("phone"))

		json.NewEncoder(w).Encode(map[string]any{
			"data": []EndUser{{ID: "eu-1", Email: "a@b.com"}},
		})
	}))
	defer server.Close()

	user, found := newTestClient(server).FindEndUser(context.Background(), Contact{Email: "a@b.com"})
	require.True(t, found)
	assert.Equal(t, "eu-1", user.ID)
}

func TestFindEndUserNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"data": []EndUser{}})
	}))
	defer server.Close()

	_, found := newTestClient(server).FindEndUser(context.Background(), Contact{Email: "a@b.com"})
	assert.False(t, found)
}

func TestCreateEndUserDisplayNameDefaults(t *testing.T) {
	tests := []struct {
		name     string
		contact  Contact
		wantName string
	}{
		{"explicit name wins", Contact{Email: "a@b.com", DisplayName: "Alice"}, "Alice"},
		{"email fallback", Contact{Email: "a@b.com", Phone: "+123"}, "a@b.com"},
		{"phone fallback", Contact{Phone: "+123"}, "+123"},
		{"generic fallback", Contact{ExternalID: "crm-1"}, "Voyado Customer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var captured createEndUserRequest
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodPost, r.Method)
				require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
				json.NewEncoder(w).Encode(map[string]any{"data": EndUser{ID: "eu-new"}})
			}))
			defer server.Close()

			user, err := newTestClient(server).CreateEndUser(context.Background(), tt.contact)
			require.NoError(t, err)
			assert.Equal(t, "eu-new", user.ID)
			assert.Equal(t, tt.wantName, captured.DisplayName)
		})
	}
}

func TestCreateEndUserOmitsAbsentFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&raw))
		assert.Contains(t, raw, "email")
		assert.NotContains(t, raw, "phoneNumber")
		assert.NotContains(t, raw, "externalId")
		json.NewEncoder(w).Encode(map[string]any{"data": EndUser{ID: "eu-new"}})
	}))
	defer server.Close()

	_, err := newTestClient(server).CreateEndUser(context.Background(), Contact{Email: "a@b.com"})
	require.NoError(t, err)
}

func TestGetOrCreateEndUserLookupHit(t *testing.T) {
	var created bool
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			created = true
		}
		json.NewEncoder(w).Encode(map[string]any{"data": []EndUser{{ID: "eu-existing"}}})
	}))
	defer server.Close()

	user, err := newTestClient(server).GetOrCreateEndUser(context.Background(), Contact{Email: "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, "eu-existing", user.ID)
	assert.False(t, created)
}

func TestGetOrCreateEndUserLookupMissCreates(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet {
			json.NewEncoder(w).Encode(map[string]any{"data": []EndUser{}})
			return
		}
		json.NewEncoder(w).Encode(map[string]any{"data": EndUser{ID: "eu-created"}})
	}))
	defer server.Close()

	user, err := newTestClient(server).GetOrCreateEndUser(context.Background(), Contact{Email: "a@b.com"})
	require.NoError(t, err)
	assert.Equal(t, "eu-created", user.ID)
}

func TestCreateConversation(t *testing.T) {
	var captured createConversationRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/conversations", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		json.NewEncoder(w).Encode(map[string]any{"data": Conversation{ID: "conv-1"}})
	}))
	defer server.Close()

	conv, err := newTestClient(server).CreateConversation(
		context.Background(), "eu-1", "integration-1", map[string]any{"rating": 4})
	require.NoError(t, err)

	assert.Equal(t, "conv-1", conv.ID)
	assert.Equal(t, "eu-1", captured.RequesterID)
	assert.Equal(t, "integration-1", captured.EmailIntegrationID)
	assert.Equal(t, "Email", captured.Type)
	assert.Equal(t, "Inbound", captured.Message.Direction)
	// Body names the rating but never embeds the full enrichment map.
	assert.Contains(t, captured.Message.Content.Value, "rating 4")
}

func TestCreateConversationUpstreamError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"message":"bad token"}`))
	}))
	defer server.Close()

	_, err := newTestClient(server).CreateConversation(context.Background(), "eu-1", "int-1", nil)
	require.Error(t, err)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusUnauthorized, apiErr.UpstreamStatus())
}
