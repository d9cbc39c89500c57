package domain

import "time"

// Collection groups garments for one user. A collection is either manual
// (membership is an explicit set the user edits) or smart (membership is
// derived from rules and overwritten on every refresh, never edited
// directly).
type Collection struct {
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
	ID                string           `json:"id"`
	UserID            string           `json:"user_id"`
	Name              string           `json:"name"`
	Description       string           `json:"description,omitempty"`
	Color             string           `json:"color,omitempty"`
	ImagePath         string           `json:"image_path,omitempty"`
	IsSmartCollection bool             `json:"is_smart_collection"`
	Rules             []CollectionRule `json:"rules,omitempty"`
	GarmentIDs        []string         `json:"garment_ids"`
}

// Touch updates the UpdatedAt timestamp.
func (c *Collection) Touch() {
	c.UpdatedAt = time.Now()
}

// CollectionGarment is the membership row linking a garment to a collection.
// For smart collections the materializer owns these rows outright; for
// manual collections they are user-managed.
type CollectionGarment struct {
	CollectionID string    `json:"collection_id"`
	GarmentID    string    `json:"garment_id"`
	AddedAt      time.Time `json:"added_at"`
}
