package models

import "time"

// UserRole distinguishes back-office staff from customers.
type UserRole string

const (
	UserRoleAdmin    UserRole = "admin"
	UserRoleCustomer UserRole = "customer"
)

// User represents a document in the `users` collection.
// The document ID is the Firebase Auth UID.
type User struct {
	ID          string    `json:"id" firestore:"-"`
	Email       string    `json:"email" firestore:"email"`
	DisplayName string    `json:"displayName,omitempty" firestore:"displayName,omitempty"`
	PhotoURL    string    `json:"photoURL,omitempty" firestore:"photoURL,omitempty"`
	Role        UserRole  `json:"role" firestore:"role"`
	NoShowCount int64     `json:"noShowCount" firestore:"noShowCount"`
	IsRestricted bool     `json:"isRestricted" firestore:"isRestricted"`
	CreatedAt   time.Time `json:"createdAt" firestore:"createdAt,serverTimestamp"`
	UpdatedAt   time.Time `json:"updatedAt" firestore:"updatedAt,serverTimestamp"`
}
