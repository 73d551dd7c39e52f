package models

import "time"

// Pokemon is the reduced view of a catalog entity returned by the remote
// catalog service. Descriptive fields are passed through to the client
// untouched.
type Pokemon struct {
	ID     int         `json:"id"`
	Name   string      `json:"name"`
	Sprite string      `json:"sprite,omitempty"`
	Types  []string    `json:"types,omitempty"`
	Height int         `json:"height,omitempty"`
	Weight int         `json:"weight,omitempty"`
	Stats  map[string]int `json:"stats,omitempty"`
}

// CacheEntry is the slimmed-down record kept in a trainer's recency cache
type CacheEntry struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Sprite string `json:"sprite,omitempty"`
}

// FavoriteEntry is one entry in a trainer's favorites list
type FavoriteEntry struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Sprite string `json:"sprite,omitempty"`
}

// CaughtPokemon is one entry in a trainer's storage
type CaughtPokemon struct {
	CaughtID string    `json:"caughtId"`
	ID       int       `json:"id"`
	Name     string    `json:"name"`
	Sprite   string    `json:"sprite,omitempty"`
	Types    []string  `json:"types,omitempty"`
	CaughtAt time.Time `json:"caughtAt"`
}

// StorageStats summarizes a trainer's storage
type StorageStats struct {
	Total         int `json:"total"`
	UniqueSpecies int `json:"uniqueSpecies"`
}

// TrainerProfile holds the presentation-facing trainer document
type TrainerProfile struct {
	TrainerName string    `json:"trainerName"`
	Avatar      string    `json:"avatar,omitempty"`
	Region      string    `json:"region,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
