package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ViewDedupWindow is how long a contact reveal counts as the same lead.
// Repeat reveals inside the window refresh the record instead of adding rows.
const ViewDedupWindow = time.Hour

const (
	ViewStatusPending   = "pending"
	ViewStatusContacted = "contacted"
)

// PropertyView is one recorded lead: a buyer revealing a property's contact
// details after passing the OTP gate.
type PropertyView struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	PropertyID primitive.ObjectID `bson:"propertyId" json:"propertyId"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	Phone      string             `bson:"phone" json:"phone"`
	ViewedAt   time.Time          `bson:"viewedAt" json:"viewedAt"`
	Status     string             `bson:"status" json:"status"`
	Remarks    string             `bson:"remarks,omitempty" json:"remarks,omitempty"`
}

// WithinWindow reports whether the view still falls inside the dedup window
// relative to now.
func (v *PropertyView) WithinWindow(now time.Time) bool {
	return now.Sub(v.ViewedAt) < ViewDedupWindow
}

// UserSummary is the slice of User joined onto view listings.
type UserSummary struct {
	ID             primitive.ObjectID `bson:"_id" json:"id"`
	Username       string             `bson:"username" json:"username"`
	Email          string             `bson:"email" json:"email"`
	ProfilePicture string             `bson:"profilePicture,omitempty" json:"profilePicture,omitempty"`
}

// PropertySummary is the slice of Property joined onto the all-views listing.
type PropertySummary struct {
	ID       primitive.ObjectID `bson:"_id" json:"id"`
	Name     string             `bson:"name" json:"name"`
	Location string             `bson:"location" json:"location"`
	Images   []string           `bson:"images" json:"images"`
	Price    float64            `bson:"price" json:"price"`
}

// PropertyViewDetail is a view with its display joins resolved.
type PropertyViewDetail struct {
	PropertyView
	User     *UserSummary     `json:"user,omitempty"`
	Property *PropertySummary `json:"property,omitempty"`
}
