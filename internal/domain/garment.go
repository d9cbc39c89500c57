// Package domain contains the core entities of the wardrobe server.
package domain

import "time"

// GarmentStatus describes the wash/wear state of a garment.
type GarmentStatus string

// Valid garment statuses.
const (
	StatusClean        GarmentStatus = "CLEAN"
	StatusDirty        GarmentStatus = "DIRTY"
	StatusWorn2x       GarmentStatus = "WORN_2X"
	StatusNeedsWashing GarmentStatus = "NEEDS_WASHING"
)

// ParseGarmentStatus converts a string to a GarmentStatus.
// Returns false if the string is not a known status.
func ParseGarmentStatus(s string) (GarmentStatus, bool) {
	switch GarmentStatus(s) {
	case StatusClean, StatusDirty, StatusWorn2x, StatusNeedsWashing:
		return GarmentStatus(s), true
	}
	return "", false
}

// String returns the wire representation of the status.
func (s GarmentStatus) String() string {
	return string(s)
}

// Garment represents a single wardrobe item owned by one user.
// Tags are attached many-to-many through garment_tags.
type Garment struct {
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	ID        string        `json:"id"`
	UserID    string        `json:"user_id"`
	Name      string        `json:"name"`
	Category  string        `json:"category"`
	Color     string        `json:"color"`
	Brand     string        `json:"brand"`
	Material  string        `json:"material"`
	Status    GarmentStatus `json:"status"`
	ImagePath string        `json:"image_path,omitempty"`
	TagIDs    []string      `json:"tag_ids"`
}

// Touch updates the UpdatedAt timestamp.
func (g *Garment) Touch() {
	g.UpdatedAt = time.Now()
}
