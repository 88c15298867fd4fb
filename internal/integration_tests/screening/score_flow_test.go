// Package screening wires the real scoring stack end to end: HTTP handler,
// scoring service, analysis client against a stub analysis server, and the
// in-memory profile store.
package screening

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aegis/internal/events"
	"aegis/internal/nlp"
	"aegis/internal/platform/middleware"
	"aegis/internal/screening/handler"
	"aegis/internal/screening/service"
	"aegis/internal/screening/store"
	"aegis/pkg/testutil"
)

// stubAnalysis mimics the analysis service: risky-looking text gets risky
// signals, everything else comes back neutral.
func stubAnalysis(t *testing.T) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/analyze", r.URL.Path)

		var req struct {
			Text string `json:"text"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		w.Header().Set("Content-Type", "application/json")
		if req.Text == "" || !containsRisky(req.Text) {
			_, _ = w.Write([]byte(`{
				"sentiment": "NEUTRAL",
				"sentimentScore": {"POSITIVE": 0.2, "NEGATIVE": 0.05, "NEUTRAL": 0.7, "MIXED": 0.05}
			}`))
			return
		}
		_, _ = w.Write([]byte(`{
			"entities": [
				{"text": "OFAC", "type": "ORGANIZATION", "score": 0.98},
				{"text": "Cayman Islands", "type": "LOCATION", "score": 0.95}
			],
			"sentiment": "NEGATIVE",
			"sentimentScore": {"POSITIVE": 0.02, "NEGATIVE": 0.9, "NEUTRAL": 0.05, "MIXED": 0.03},
			"keyPhrases": [{"text": "sanctions violation", "score": 0.97}]
		}`))
	}))
	t.Cleanup(server.Close)
	return server
}

func containsRisky(text string) bool {
	lowered := strings.ToLower(text)
	for _, marker := range []string{"sanction", "laundering", "fraud"} {
		if strings.Contains(lowered, marker) {
			return true
		}
	}
	return false
}

func newRouter(t *testing.T) (*chi.Mux, *events.MemoryPublisher) {
	t.Helper()
	analysis := stubAnalysis(t)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	publisher := events.NewMemoryPublisher()

	analyzer := nlp.NewClient(analysis.URL, "stub-engine",
		nlp.WithRetryPolicy(1, time.Millisecond))
	svc, err := service.New(store.NewMemoryStore(), analyzer,
		service.WithLogger(logger),
		service.WithPublisher(publisher),
	)
	require.NoError(t, err)

	router := chi.NewRouter()
	router.Use(middleware.RequestID)
	router.Use(middleware.RequestTime)
	handler.NewHandler(svc, logger).RegisterRoutes(router)
	return router, publisher
}

func TestScoreThenScreenThenHistory(t *testing.T) {
	router, publisher := newRouter(t)

	testutil.Given(t, "a scored high-risk entity", func(t *testing.T) {
		req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/score", map[string]any{
			"records": []map[string]string{{
				"name": "Shady Holdings",
				"type": "ORGANIZATION",
				"text": "Shady Holdings was fined for a sanctions violation and money laundering through shell companies.",
			}},
		})
		rec := testutil.DoRequest(router, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var scored struct {
			Profiles []struct {
				EntityID string `json:"entityId"`
				Profile  *struct {
					RiskScore float64 `json:"riskScore"`
					Status    string  `json:"status"`
				} `json:"profile"`
			} `json:"profiles"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &scored))
		require.Len(t, scored.Profiles, 1)
		require.NotNil(t, scored.Profiles[0].Profile)
		assert.Equal(t, "organization:shady_holdings", scored.Profiles[0].EntityID)
		assert.Equal(t, "REVIEW_REQUIRED", scored.Profiles[0].Profile.Status)

		testutil.When(t, "screening the same entity", func(t *testing.T) {
			req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/screen", map[string]string{
				"entityType": "ORGANIZATION",
				"name":       "Shady Holdings",
			})
			rec := testutil.DoRequest(router, req)

			testutil.Then(t, "the stored profile is returned", func(t *testing.T) {
				require.Equal(t, http.StatusOK, rec.Code)

				var profile struct {
					EntityID  string  `json:"entityId"`
					RiskScore float64 `json:"riskScore"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
				assert.Equal(t, "organization:shady_holdings", profile.EntityID)
				assert.Greater(t, profile.RiskScore, 0.0)
			})
		})

		testutil.When(t, "requesting the entity history", func(t *testing.T) {
			req := testutil.NewRequest(t, http.MethodGet, "/v1/entities/organization:shady_holdings/history")
			rec := testutil.DoRequest(router, req)

			testutil.Then(t, "one version is listed", func(t *testing.T) {
				require.Equal(t, http.StatusOK, rec.Code)

				var history struct {
					EntityID string            `json:"entityId"`
					Count    int               `json:"count"`
					History  []json.RawMessage `json:"history"`
				}
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &history))
				assert.Equal(t, 1, history.Count)
				assert.Len(t, history.History, 1)
			})
		})

		testutil.Then(t, "a risk event was published", func(t *testing.T) {
			published := publisher.Events()
			require.Len(t, published, 1)
			assert.Equal(t, "organization:shady_holdings", published[0].EntityID)
		})
	})
}

func TestScreenUnknownEntityIsSynthetic(t *testing.T) {
	router, _ := newRouter(t)

	req := testutil.NewJSONRequest(t, http.MethodPost, "/v1/screen", map[string]string{
		"entityType": "PERSON",
		"name":       "Nobody Special",
	})
	rec := testutil.DoRequest(router, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var profile struct {
		EntityID  string         `json:"entityId"`
		RiskScore float64        `json:"riskScore"`
		Status    string         `json:"status"`
		Metadata  map[string]any `json:"metadata"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &profile))
	assert.Equal(t, "person:nobody_special", profile.EntityID)
	assert.Zero(t, profile.RiskScore)
	assert.Equal(t, "CLEAR", profile.Status)
	assert.Equal(t, true, profile.Metadata["synthetic"])
}
