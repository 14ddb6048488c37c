package inmo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Product is a catalog record. Code is a human-facing sequential
// number derived from the collection count at insert time; it is not a
// key and concurrent inserts can collide on it.
type Product struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Code     int                `bson:"code" json:"code"`
	Name     string             `bson:"name,omitempty" json:"name,omitempty"`
	Price    float64            `bson:"price,omitempty" json:"price,omitempty"`
	Category string             `bson:"category,omitempty" json:"category,omitempty"`
}

// ProductDraft carries the client-supplied fields for a create or a
// full replace. Fields left at their zero value are absent from the
// stored document on replace.
type ProductDraft struct {
	Name     string
	Price    float64
	Category string
}

// ProductPatch carries a partial update; nil fields keep their prior
// values.
type ProductPatch struct {
	Name     *string
	Price    *float64
	Category *string
}

// IsZero reports whether the patch changes anything.
func (p ProductPatch) IsZero() bool {
	return p.Name == nil && p.Price == nil && p.Category == nil
}

// User is the user model. The password hash never serializes to JSON.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id,omitempty"`
	Username     string             `bson:"username" json:"username"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"created_at"`
}

// RegisterUserMessage is the input for a registration.
type RegisterUserMessage struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}
