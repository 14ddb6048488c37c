package inmo

import (
	"context"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const usersCollection = "users"

// Users is the persistence surface for user records. No update or
// delete: users are created through registration only.
type Users interface {
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Create(ctx context.Context, user *User) (*User, error)
}

type users struct {
	col *mongo.Collection
}

var _ Users = (*users)(nil)

func NewUsersRepository(db *mongo.Database) Users {
	return &users{col: db.Collection(usersCollection)}
}

func (r *users) GetByUsername(ctx context.Context, username string) (*User, error) {
	return r.getOne(ctx, bson.M{"username": username})
}

func (r *users) GetByEmail(ctx context.Context, email string) (*User, error) {
	return r.getOne(ctx, bson.M{"email": email})
}

func (r *users) getOne(ctx context.Context, filter bson.M) (*User, error) {
	user := &User{}
	if err := r.col.FindOne(ctx, filter).Decode(user); err != nil {
		if goerrors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrUserNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query users")
	}
	return user, nil
}

func (r *users) Create(ctx context.Context, user *User) (*User, error) {
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}

	res, err := r.col.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, duplicateKeyConflict(err)
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to insert user")
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		user.ID = oid
	}

	return user, nil
}

// duplicateKeyConflict maps a unique-index violation back to the
// conflict the pre-insert check would have reported.
func duplicateKeyConflict(err error) error {
	if strings.Contains(err.Error(), "email") {
		return ErrEmailInUse
	}
	return ErrUsernameTaken
}
