package domain

import "time"

// Tag is a user-scoped label with a display color.
// Tag names are unique per user; garments link to tags through garment_tags.
type Tag struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Color     string    `json:"color"`
}

// Touch updates the UpdatedAt timestamp.
func (t *Tag) Touch() {
	t.UpdatedAt = time.Now()
}

// GarmentTag represents the many-to-many relationship between garments and tags.
type GarmentTag struct {
	GarmentID string    `json:"garment_id"`
	TagID     string    `json:"tag_id"`
	CreatedAt time.Time `json:"created_at"`
}
