package handler_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tastefolio/personalization-service/internal/domain"
	"github.com/tastefolio/personalization-service/internal/handler"
	"github.com/tastefolio/personalization-service/internal/router"
	"github.com/tastefolio/personalization-service/internal/service"
)

type memStore struct {
	mu      sync.Mutex
	snaps   map[string]domain.Snapshot
	records []domain.Record
}

func (m *memStore) FindUserByEmail(_ context.Context, email string) (*domain.User, error) {
	if strings.ToLower(email) != "a@x.com" {
		return nil, domain.ErrUserNotFound
	}
	return &domain.User{ID: 1, Email: "a@x.com"}, nil
}

func (m *memStore) GetSnapshot(_ context.Context, email string, d domain.Domain) (domain.Snapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snaps[email+"|"+string(d)], nil
}

func (m *memStore) SaveSnapshot(_ context.Context, email string, d domain.Domain, snap domain.Snapshot) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.snaps[email+"|"+string(d)] = snap
	return nil
}

func (m *memStore) InsertRecord(_ context.Context, rec *domain.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records = append(m.records, *rec)
	return nil
}

func (m *memStore) LatestRecord(_ context.Context, email, dom string) (*domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i := len(m.records) - 1; i >= 0; i-- {
		if m.records[i].Email == strings.ToLower(email) && m.records[i].Domain == dom {
			r := m.records[i]
			return &r, nil
		}
	}
	return nil, nil
}

func (m *memStore) History(_ context.Context, email string, limit int) ([]domain.Record, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []domain.Record
	for i := len(m.records) - 1; i >= 0 && len(out) < limit; i-- {
		if m.records[i].Email == strings.ToLower(email) {
			out = append(out, m.records[i])
		}
	}
	return out, nil
}

type nopCache struct{}

func (nopCache) Get(context.Context, string, string) (*domain.Record, error) { return nil, nil }
func (nopCache) Set(context.Context, *domain.Record) error                  { return nil }
func (nopCache) Clear(context.Context, string, string) error                { return nil }

type staticGen struct{ text string }

func (g staticGen) Generate(context.Context, string) (string, error) { return g.text, nil }

type echoResolver struct{}

func (echoResolver) Resolve(_ context.Context, d domain.Domain, name string) (*domain.Item, error) {
	return &domain.Item{Title: name, Genres: []string{"Action"}}, nil
}

func testServer(t *testing.T, gen service.NameGenerator) (*httptest.Server, *memStore) {
	t.Helper()
	store := &memStore{snaps: map[string]domain.Snapshot{}}
	svc := service.NewService(store, nopCache{}, gen, echoResolver{}, zap.NewNop(),
		service.Config{LookupTimeout: time.Second})
	srv := httptest.NewServer(router.Setup(handler.NewHandler(svc)))
	t.Cleanup(srv.Close)
	return srv, store
}

func getJSON(t *testing.T, url string, v any) int {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(v))
	return resp.StatusCode
}

func TestGetRecommendationsEndpoint(t *testing.T) {
	srv, _ := testServer(t, staticGen{text: "Inception\nInterstellar"})

	var body handler.RecommendationResponse
	status := getJSON(t, srv.URL+"/api/recommendations/a@x.com/movies", &body)
	require.Equal(t, http.StatusOK, status)
	assert.True(t, body.Success)
	assert.Equal(t, domain.SourceNew, body.Source)
	require.Len(t, body.Recommendations, 2)
	assert.Equal(t, "movies-inception", body.Recommendations[0].ID)
}

func TestGetRecommendationsQueryForm(t *testing.T) {
	srv, _ := testServer(t, staticGen{text: "Inception"})

	var body handler.RecommendationResponse
	status := getJSON(t, srv.URL+"/api/recommendations?email=a@x.com&type=movies&explain=true", &body)
	require.Equal(t, http.StatusOK, status)
	require.NotEmpty(t, body.Recommendations)
	assert.NotEmpty(t, body.Recommendations[0].Explanation)
}

func TestGetRecommendationsInvalidType(t *testing.T) {
	srv, _ := testServer(t, staticGen{text: "x"})

	var body handler.ErrorResponse
	status := getJSON(t, srv.URL+"/api/recommendations/a@x.com/podcasts", &body)
	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, body.Success)
}

func TestGetRecommendationsUnknownUser(t *testing.T) {
	srv, _ := testServer(t, staticGen{text: "x"})

	var body handler.ErrorResponse
	status := getJSON(t, srv.URL+"/api/recommendations/nobody@x.com/movies", &body)
	assert.Equal(t, http.StatusNotFound, status)
}

func TestCrossDomainEndpointRequiresSeed(t *testing.T) {
	srv, _ := testServer(t, staticGen{text: "Movies:\n- A\nMusic:\n- B\nBooks:\n- C"})

	var errBody handler.ErrorResponse
	status := getJSON(t, srv.URL+"/api/recommendations/cross/a@x.com", &errBody)
	assert.Equal(t, http.StatusBadRequest, status)

	var body handler.CrossDomainResponse
	status = getJSON(t, srv.URL+"/api/recommendations/cross/a@x.com?query=rainy+day", &body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "rainy day", body.BaseQuery)
	assert.NotEmpty(t, body.Recommendations.Movies)
	assert.NotEmpty(t, body.Recommendations.Music)
	assert.NotEmpty(t, body.Recommendations.Books)
}

func TestHistoryEndpoint(t *testing.T) {
	srv, _ := testServer(t, staticGen{text: "Inception"})

	var rec handler.RecommendationResponse
	getJSON(t, srv.URL+"/api/recommendations/a@x.com/movies", &rec)

	var body handler.HistoryResponse
	status := getJSON(t, srv.URL+"/api/recommendations/a@x.com/history", &body)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, body.History, 1)
	assert.Equal(t, "movies", body.History[0].Domain)
}

func TestExplanationEndpoints(t *testing.T) {
	srv, _ := testServer(t, staticGen{text: "Inception"})

	var body handler.ExplanationResponse
	status := getJSON(t, srv.URL+"/api/recommendations/explain/movies-inception?email=a@x.com&type=movies", &body)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body.Explanation)
	assert.Greater(t, body.Score, 0.0)

	var missing handler.ErrorResponse
	status = getJSON(t, srv.URL+"/api/recommendations/explain/movies-nope?email=a@x.com&type=movies", &missing)
	assert.Equal(t, http.StatusNotFound, status)

	var global handler.GlobalExplanationResponse
	status = getJSON(t, srv.URL+"/api/recommendations/global-explain?type=books", &global)
	require.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, global.Importances)
}

func TestPreferencesRoundTrip(t *testing.T) {
	srv, _ := testServer(t, staticGen{text: "Inception"})

	payload := strings.NewReader(`{"genres":["Action"],"era":"Recent","favorites":["Inception"]}`)
	resp, err := http.Post(srv.URL+"/api/preferences/a@x.com/movies", "application/json", payload)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body handler.PreferencesResponse
	status := getJSON(t, srv.URL+"/api/preferences/a@x.com/movies", &body)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, []string{"Action"}, body.Data.Genres)
	assert.Equal(t, "Recent", body.Data.Era)
}
