package models

import "time"

// Banner represents a document in the `banners` collection.
// Order defines the display sequence; reordering rewrites the Order field of
// every banner in one batch.
type Banner struct {
	ID        string    `json:"id" firestore:"-"`
	ImageURL  string    `json:"imageUrl" firestore:"imageUrl"`
	LinkTo    string    `json:"linkTo,omitempty" firestore:"linkTo,omitempty"`
	Order     int       `json:"order" firestore:"order"`
	IsActive  bool      `json:"isActive" firestore:"isActive"`
	CreatedAt time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
}
