package models

// Service is one entry of the cleaning catalog. Loaded once from
// catalog.yaml at startup and never mutated afterwards.
type Service struct {
	ID              string   `yaml:"id" json:"id"`
	Name            string   `yaml:"name" json:"name"`
	Description     string   `yaml:"description" json:"description"`
	Category        string   `yaml:"category" json:"category"`
	BasePrice       int64    `yaml:"base_price" json:"base_price"` // whole DKK
	DurationMinutes int      `yaml:"duration_minutes" json:"duration_minutes"`
	Features        []string `yaml:"features" json:"features,omitempty"`
	SortOrder       int64    `yaml:"sort_order" json:"sort_order"`
	IsActive        bool     `yaml:"is_active" json:"is_active"`
}

// AddOn is an optional extra bolted onto a base service.
type AddOn struct {
	ID                   string `yaml:"id" json:"id"`
	Name                 string `yaml:"name" json:"name"`
	PriceDelta           int64  `yaml:"price_delta" json:"price_delta"` // whole DKK
	DurationDeltaMinutes int    `yaml:"duration_delta_minutes" json:"duration_delta_minutes"`
	SortOrder            int64  `yaml:"sort_order" json:"sort_order"`
	IsActive             bool   `yaml:"is_active" json:"is_active"`
}
