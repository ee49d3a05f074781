package trackviews

import "time"

// TrackView records that a user viewed a listing. The (user, property)
// pair is unique; repeat views only move viewed_at forward.
type TrackView struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	PropertyID string    `json:"propertyId"`
	ViewedAt   time.Time `json:"viewedAt"`
}
