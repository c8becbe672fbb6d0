package resolver

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	json "github.com/goccy/go-json"

	"github.com/tastefolio/personalization-service/internal/domain"
)

type omdbResponse struct {
	Response   string `json:"Response"`
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Poster     string `json:"Poster"`
	Genre      string `json:"Genre"`
	Plot       string `json:"Plot"`
	IMDBRating string `json:"imdbRating"`
}

func (h *HTTP) movie(ctx context.Context, title string) (*domain.Item, error) {
	params := url.Values{"apikey": {h.omdbKey}, "t": {title}}

	var out omdbResponse
	if err := h.getJSON(ctx, h.omdbURL, params, &out); err != nil {
		return nil, fmt.Errorf("omdb lookup %q: %w", title, err)
	}
	if out.Response == "False" {
		return nil, nil
	}

	item := &domain.Item{
		Title:      out.Title,
		Year:       out.Year,
		Poster:     out.Poster,
		Overview:   out.Plot,
		IMDBRating: out.IMDBRating,
	}
	if item.Title == "" {
		item.Title = title
	}
	if item.Overview == "" {
		item.Overview = "No description available."
	}
	if out.Genre != "" {
		item.Genres = strings.Split(out.Genre, ", ")
	}
	return item, nil
}

type booksResponse struct {
	Items []struct {
		VolumeInfo struct {
			Title         string   `json:"title"`
			Authors       []string `json:"authors"`
			Description   string   `json:"description"`
			Categories    []string `json:"categories"`
			PublishedDate string   `json:"publishedDate"`
			ImageLinks    struct {
				Thumbnail string `json:"thumbnail"`
			} `json:"imageLinks"`
		} `json:"volumeInfo"`
	} `json:"items"`
}

func (h *HTTP) book(ctx context.Context, title string) (*domain.Item, error) {
	params := url.Values{"q": {title}}
	if h.booksKey != "" {
		params.Set("key", h.booksKey)
	}

	var out booksResponse
	if err := h.getJSON(ctx, h.booksURL, params, &out); err != nil {
		return nil, fmt.Errorf("google books lookup %q: %w", title, err)
	}
	if len(out.Items) == 0 {
		return nil, nil
	}

	info := out.Items[0].VolumeInfo
	item := &domain.Item{
		Title:         info.Title,
		Authors:       info.Authors,
		Description:   info.Description,
		Thumbnail:     info.ImageLinks.Thumbnail,
		Categories:    info.Categories,
		PublishedDate: info.PublishedDate,
	}
	if item.Title == "" {
		item.Title = title
	}
	if len(item.Authors) == 0 {
		item.Authors = []string{"Unknown Author"}
	}
	if item.Description == "" {
		item.Description = "No description available."
	}
	return item, nil
}

type itunesResponse struct {
	Results []struct {
		TrackName      string `json:"trackName"`
		ArtistName     string `json:"artistName"`
		CollectionName string `json:"collectionName"`
		ArtworkURL100  string `json:"artworkUrl100"`
		PreviewURL     string `json:"previewUrl"`
	} `json:"results"`
}

func (h *HTTP) music(ctx context.Context, term string) (*domain.Item, error) {
	params := url.Values{"term": {term}, "media": {"music"}, "limit": {"1"}}

	var out itunesResponse
	if err := h.getJSON(ctx, h.itunesURL, params, &out); err != nil {
		return nil, fmt.Errorf("itunes lookup %q: %w", term, err)
	}
	if len(out.Results) == 0 {
		return nil, nil
	}

	res := out.Results[0]
	item := &domain.Item{
		Title:      res.TrackName,
		Artist:     res.ArtistName,
		Album:      res.CollectionName,
		Artwork:    res.ArtworkURL100,
		PreviewURL: res.PreviewURL,
	}
	if item.Title == "" {
		item.Title = term
	}
	if item.Artist == "" {
		item.Artist = "Unknown Artist"
	}
	if item.Album == "" {
		item.Album = "Unknown Album"
	}
	return item, nil
}

func (h *HTTP) getJSON(ctx context.Context, base string, params url.Values, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, base+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
