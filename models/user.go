package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Agent-cat/Midland/apperr"
)

const (
	RoleClient = "client"
	RoleAdmin  = "admin"
)

type User struct {
	ID             primitive.ObjectID   `json:"id" bson:"_id,omitempty"`
	Username       string               `json:"username" bson:"username" validate:"required"`
	Email          string               `json:"email" bson:"email" validate:"required,email"`
	Password       string               `json:"password,omitempty" bson:"password" validate:"required,min=6"`
	Phone          string               `json:"phone" bson:"phno" validate:"required"`
	Role           string               `json:"role" bson:"role"`
	ProfilePicture string               `json:"profilePicture,omitempty" bson:"profilePicture,omitempty"`
	Cart           []primitive.ObjectID `json:"cart" bson:"cart"`
	IsActive       bool                 `json:"is_active" bson:"is_active"`
	CreatedAt      time.Time            `json:"created_at" bson:"created_at"`
	UpdatedAt      time.Time            `json:"updated_at" bson:"updated_at"`
}

// InCart reports whether the property is already saved.
func (u *User) InCart(propertyID primitive.ObjectID) bool {
	for _, id := range u.Cart {
		if id == propertyID {
			return true
		}
	}
	return false
}

// AddToCart appends the property reference, keeping the cart duplicate-free.
func (u *User) AddToCart(propertyID primitive.ObjectID) error {
	if u.InCart(propertyID) {
		return apperr.Conflict("Property already in cart")
	}
	u.Cart = append(u.Cart, propertyID)
	return nil
}

// RemoveFromCart filters the property reference out. Removing an id that is
// not present is a silent no-op.
func (u *User) RemoveFromCart(propertyID primitive.ObjectID) {
	kept := u.Cart[:0]
	for _, id := range u.Cart {
		if id != propertyID {
			kept = append(kept, id)
		}
	}
	u.Cart = kept
}

type SignupRequest struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	Password       string `json:"password"`
	Phone          string `json:"phone"`
	OTP            string `json:"otp"`
	Role           string `json:"role"`
	ProfilePicture string `json:"profilePicture"`
}

type SigninRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type SendOTPRequest struct {
	Phone   string `json:"phone"`
	Context string `json:"context"`
}

type VerifyOTPRequest struct {
	Phone string `json:"phone"`
	OTP   string `json:"otp"`
}

type CartRequest struct {
	UserID     string `json:"userId"`
	PropertyID string `json:"propertyId"`
}

type VerifyPropertyRequest struct {
	IsVerified       bool   `json:"isVerified"`
	VerificationNote string `json:"verificationNote"`
	AdminID          string `json:"adminId"`
}

type UpdateViewRequest struct {
	Status  string `json:"status"`
	Remarks string `json:"remarks"`
}
