package models

import "time"

// ModelResponse is the external view of a Model.
type ModelResponse struct {
	Id             string             `json:"id"`
	Name           string             `json:"name"`
	Description    *string            `json:"description"`
	Framework      string             `json:"framework"`
	Tags           []string           `json:"tags"`
	Status         string             `json:"status"`
	CurrentVersion *string            `json:"current_version"`
	Metrics        map[string]float64 `json:"metrics"`
	Author         *string            `json:"author"`
	CreatedAt      time.Time          `json:"created_at"`
	UpdatedAt      time.Time          `json:"updated_at"`
}

type ModelListResponse struct {
	Items []ModelResponse `json:"items"`
	Total int64           `json:"total"`
	Skip  int             `json:"skip"`
	Limit int             `json:"limit"`
}

type ModelVersionResponse struct {
	Id        string             `json:"id"`
	ModelId   string             `json:"model_id"`
	Version   string             `json:"version"`
	Metrics   map[string]float64 `json:"metrics"`
	Changelog *string            `json:"changelog"`
	CreatedAt time.Time          `json:"created_at"`
}

type DashboardStats struct {
	TotalModels       int64            `json:"total_models"`
	ModelsByStatus    map[string]int64 `json:"models_by_status"`
	ModelsByFramework map[string]int64 `json:"models_by_framework"`
	RecentModels      []ModelResponse  `json:"recent_models"`
}

type HealthResponse struct {
	Status  string `json:"status"`
	Version string `json:"version"`
}

type RootResponse struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Docs    string `json:"docs"`
	Health  string `json:"health"`
}
