package resolver

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/tastefolio/personalization-service/internal/domain"
)

func testResolver(t *testing.T, handler http.HandlerFunc) *HTTP {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTP("omdb-key", "", zap.NewNop()).WithEndpoints(srv.URL, srv.URL, srv.URL)
}

func TestResolveMovie(t *testing.T) {
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "Inception", req.URL.Query().Get("t"))
		require.Equal(t, "omdb-key", req.URL.Query().Get("apikey"))
		fmt.Fprint(w, `{"Response":"True","Title":"Inception","Year":"2010","Poster":"p.jpg",
			"Genre":"Action, Sci-Fi","Plot":"Dream heist.","imdbRating":"8.8"}`)
	})

	item, err := r.Resolve(context.Background(), domain.Movies, "Inception")
	require.NoError(t, err)
	require.NotNil(t, item)
	require.Equal(t, "Inception", item.Title)
	require.Equal(t, []string{"Action", "Sci-Fi"}, item.Genres)
	require.Equal(t, "8.8", item.IMDBRating)
}

func TestResolveMovieNotFound(t *testing.T) {
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"Response":"False","Error":"Movie not found!"}`)
	})

	item, err := r.Resolve(context.Background(), domain.Movies, "zzz")
	require.NoError(t, err)
	require.Nil(t, item)
}

func TestResolveBook(t *testing.T) {
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "1984", req.URL.Query().Get("q"))
		fmt.Fprint(w, `{"items":[{"volumeInfo":{"title":"1984","authors":["George Orwell"],
			"description":"Dystopia.","categories":["Fiction"],"publishedDate":"1949",
			"imageLinks":{"thumbnail":"t.jpg"}}}]}`)
	})

	item, err := r.Resolve(context.Background(), domain.Books, "1984")
	require.NoError(t, err)
	require.NotNil(t, item)
	require.Equal(t, []string{"George Orwell"}, item.Authors)
	require.Equal(t, "1949", item.PublishedDate)
}

func TestResolveBookDefaults(t *testing.T) {
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"items":[{"volumeInfo":{"title":"Obscure"}}]}`)
	})

	item, err := r.Resolve(context.Background(), domain.Books, "Obscure")
	require.NoError(t, err)
	require.Equal(t, []string{"Unknown Author"}, item.Authors)
	require.Equal(t, "No description available.", item.Description)
}

func TestResolveMusic(t *testing.T) {
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		require.Equal(t, "music", req.URL.Query().Get("media"))
		fmt.Fprint(w, `{"results":[{"trackName":"Time","artistName":"Hans Zimmer",
			"collectionName":"Inception OST","artworkUrl100":"a.jpg","previewUrl":"pv.m4a"}]}`)
	})

	item, err := r.Resolve(context.Background(), domain.Music, "Time")
	require.NoError(t, err)
	require.Equal(t, "Hans Zimmer", item.Artist)
	require.Equal(t, "Inception OST", item.Album)
}

func TestResolveMusicNoResults(t *testing.T) {
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		fmt.Fprint(w, `{"results":[]}`)
	})

	item, err := r.Resolve(context.Background(), domain.Music, "???")
	require.NoError(t, err)
	require.Nil(t, item)
}

func TestResolveUpstreamError(t *testing.T) {
	r := testResolver(t, func(w http.ResponseWriter, req *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})

	_, err := r.Resolve(context.Background(), domain.Movies, "Inception")
	require.Error(t, err)
}

func TestResolveInvalidDomain(t *testing.T) {
	r := NewHTTP("", "", zap.NewNop())
	_, err := r.Resolve(context.Background(), domain.Domain("podcasts"), "x")
	require.ErrorIs(t, err, domain.ErrInvalidDomain)
}
