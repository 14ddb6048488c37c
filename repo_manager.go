package inmo

import (
	"context"

	goerrors "github.com/goliatone/go-errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// RepositoryManager exposes all repositories
type RepositoryManager interface {
	Users() Users
	Products() Products
	EnsureIndexes(ctx context.Context) error
}

// Connect opens a client against the given URI and verifies the
// connection with a ping before returning it.
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to connect to mongo")
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to ping mongo")
	}

	return client, nil
}

type mngr struct {
	db       *mongo.Database
	users    Users
	products Products
}

func NewRepositoryManager(db *mongo.Database) RepositoryManager {
	return &mngr{
		db:       db,
		users:    NewUsersRepository(db),
		products: NewProductsRepository(db),
	}
}

func (m *mngr) Users() Users {
	return m.users
}

func (m *mngr) Products() Products {
	return m.products
}

// EnsureIndexes creates the unique username/email indexes. The auth
// service still checks for duplicates before inserting; the indexes
// close the window where two concurrent registrations pass that check.
func (m *mngr) EnsureIndexes(ctx context.Context) error {
	_, err := m.db.Collection(usersCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("username_unique"),
		},
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("email_unique"),
		},
	})
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to create user indexes")
	}

	return nil
}
