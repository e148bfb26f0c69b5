package types

import "time"

// Album represents an album record as returned by the API server
type Album struct {
	ID        int        `json:"id"`
	Title     string     `json:"title"`
	Artist    string     `json:"artist"`
	Price     float64    `json:"price"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// CreateAlbumInput is the request body for creating an album
type CreateAlbumInput struct {
	Title  string  `json:"title"`
	Artist string  `json:"artist"`
	Price  float64 `json:"price"`
}

// UpdateAlbumInput is the request body for updating an album.
// Updates are full replacements; all three fields are required.
type UpdateAlbumInput struct {
	Title  string  `json:"title"`
	Artist string  `json:"artist"`
	Price  float64 `json:"price"`
}
