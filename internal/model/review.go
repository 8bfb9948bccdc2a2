package model

import "time"

// Review is a single customer review submitted for public display.
// This is a pure domain model with no database-specific dependencies or tags.
// Rating and Image are optional: a nil Rating means the submitter gave no
// stars, a nil Image means no photo was attached. Image holds the relative
// storage locator of the attachment (or, for records written under an older
// deployment policy, an already absolute URL).
type Review struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	City      string    `json:"city"`
	Rating    *int      `json:"rating"`
	Text      string    `json:"text"`
	Image     *string   `json:"image"`
	Approved  bool      `json:"approved"`
	CreatedAt time.Time `json:"created_at"`
}
