package httpapi

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/brandsec/similarity-engine/internal/adapters/registry"
	"github.com/brandsec/similarity-engine/internal/application"
	"github.com/brandsec/similarity-engine/internal/domain"
	"github.com/brandsec/similarity-engine/internal/domain/generation"
)

func newTestServer(t *testing.T, store *registry.MemoryStore) *httptest.Server {
	t.Helper()
	svc := application.NewDetectionService(store, generation.NewGenerator(nil), application.Options{
		MaxVariations:   10000,
		ScanLimitPerTLD: 50000,
		LengthTolerance: 3,
	}, nil, nil)
	srv := httptest.NewServer(NewRouter(NewHandler(svc, nil)))
	t.Cleanup(srv.Close)
	return srv
}

func seen(label string) domain.DomainRecord {
	return domain.DomainRecord{
		ID:        uuid.New(),
		Label:     label,
		FQDN:      label + ".com",
		FirstSeen: time.Now().UTC(),
		LastSeen:  time.Now().UTC(),
	}
}

func post(t *testing.T, srv *httptest.Server, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	resp, err := http.Post(srv.URL+path, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	var decoded map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&decoded))
	return resp, decoded
}

func TestTyposquatEndpoint(t *testing.T) {
	store := registry.NewMemoryStore()
	store.Add("com", seen("paypal"), seen("payal"))
	srv := newTestServer(t, store)

	resp, body := post(t, srv, "/search/typosquatting",
		`{"brand":"paypal.com","algorithms":["omission"]}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "paypal.com", body["brand"])
	assert.Equal(t, float64(2), body["matchedVariations"])
	assert.Equal(t, []any{"omission"}, body["algorithmsUsed"])

	variations := body["variations"].([]any)
	var original map[string]any
	for _, raw := range variations {
		v := raw.(map[string]any)
		if v["variation"] == "paypal" {
			original = v
		}
	}
	require.NotNil(t, original)
	assert.Equal(t, true, original["isOriginal"])
	assert.Equal(t, true, original["matched"])

	meta := body["meta"].(map[string]any)
	assert.Equal(t, float64(1), meta["partitionsQueried"])
}

func TestTyposquatRejectsBareLabel(t *testing.T) {
	srv := newTestServer(t, registry.NewMemoryStore())

	resp, body := post(t, srv, "/search/typosquatting", `{"brand":"paypal"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "invalid input")
}

func TestTyposquatRejectsUnknownAlgorithm(t *testing.T) {
	srv := newTestServer(t, registry.NewMemoryStore())

	resp, _ := post(t, srv, "/search/typosquatting",
		`{"brand":"paypal.com","algorithms":["anagram"]}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestTyposquatRejectsDaysBackOutOfRange(t *testing.T) {
	srv := newTestServer(t, registry.NewMemoryStore())

	resp, _ := post(t, srv, "/search/typosquatting",
		`{"brand":"paypal.com","daysBack":400}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSimilarityEndpoint(t *testing.T) {
	store := registry.NewMemoryStore()
	store.Add("com", seen("g0ogle"), seen("gogle"))
	srv := newTestServer(t, store)

	resp, body := post(t, srv, "/search/similarity", `{"brand":"google.com"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(2), body["domainsScanned"])

	summary := body["summary"].(map[string]any)
	assert.Equal(t, float64(1), summary["homographMatches"])

	results := body["results"].(map[string]any)
	homograph := results["homograph"].([]any)
	require.Len(t, homograph, 1)
	hit := homograph[0].(map[string]any)
	assert.Equal(t, "critical", hit["riskLevel"])
	assert.Equal(t, "g0ogle", hit["record"].(map[string]any)["domain"])
}

func TestSimilarityHomographDisabledOmitsResults(t *testing.T) {
	store := registry.NewMemoryStore()
	store.Add("com", seen("g0ogle"))
	srv := newTestServer(t, store)

	resp, body := post(t, srv, "/search/similarity",
		`{"brand":"google.com","homographEnabled":false}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	results := body["results"].(map[string]any)
	_, present := results["homograph"]
	assert.False(t, present)
}

func TestSimilarityRejectsThresholdOutOfRange(t *testing.T) {
	srv := newTestServer(t, registry.NewMemoryStore())

	resp, _ := post(t, srv, "/search/similarity",
		`{"brand":"google.com","levenshteinThreshold":1.5}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestKeywordEndpoint(t *testing.T) {
	store := registry.NewMemoryStore()
	store.Add("com", seen("google-login"), seen("other"))
	srv := newTestServer(t, store)

	resp, body := post(t, srv, "/search/keyword", `{"keyword":"google"}`)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(1), body["totalMatches"])

	// Defaults are echoed back after being applied.
	params := body["searchParams"].(map[string]any)
	assert.Equal(t, float64(500), params["limit"])
}

func TestKeywordTooShort(t *testing.T) {
	srv := newTestServer(t, registry.NewMemoryStore())

	resp, body := post(t, srv, "/search/keyword", `{"keyword":"ab"}`)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, body["error"], "at least 3 characters")
}

func TestSearchUnavailableStore(t *testing.T) {
	store := registry.NewMemoryStore()
	store.Add("com", seen("paypal"))
	store.FailPartition("com")
	srv := newTestServer(t, store)

	resp, _ := post(t, srv, "/search/keyword", `{"keyword":"paypal"}`)

	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestAlgorithmsEndpoint(t *testing.T) {
	srv := newTestServer(t, registry.NewMemoryStore())

	resp, err := http.Get(srv.URL + "/algorithms")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Algorithms []application.AlgorithmInfo `json:"algorithms"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Len(t, body.Algorithms, len(generation.Names())+3)
}

func TestHealthEndpoint(t *testing.T) {
	store := registry.NewMemoryStore()
	srv := newTestServer(t, store)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	store.Close()
	resp, err = http.Get(srv.URL + "/health")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
