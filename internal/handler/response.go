package handler

import "github.com/tastefolio/personalization-service/internal/domain"

type RecommendationResponse struct {
	Success         bool          `json:"success"`
	Recommendations []domain.Item `json:"recommendations"`
	Source          domain.Source `json:"source"`
	Message         string        `json:"message,omitempty"`
}

type CrossDomainResponse struct {
	Success         bool              `json:"success"`
	BaseQuery       string            `json:"baseQuery"`
	Recommendations domain.CrossItems `json:"recommendations"`
	Message         string            `json:"message,omitempty"`
}

type HistoryResponse struct {
	Success bool            `json:"success"`
	History []domain.Record `json:"history"`
	Message string          `json:"message,omitempty"`
}

type ExplanationResponse struct {
	Success     bool    `json:"success"`
	ID          string  `json:"id"`
	Explanation string  `json:"explanation"`
	Score       float64 `json:"score"`
}

type GlobalExplanationResponse struct {
	Success     bool               `json:"success"`
	Domain      string             `json:"type"`
	Importances map[string]float64 `json:"importances"`
}

type PreferencesResponse struct {
	Success bool            `json:"success"`
	Data    domain.Snapshot `json:"data"`
	Message string          `json:"message,omitempty"`
}

type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
