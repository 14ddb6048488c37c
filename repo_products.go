package inmo

import (
	"context"
	"regexp"
	"strings"

	goerrors "github.com/goliatone/go-errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const productsCollection = "products"

// Products is the persistence surface for catalog records.
type Products interface {
	List(ctx context.Context) ([]Product, error)
	GetByID(ctx context.Context, id string) (*Product, error)
	FindByNamePrefix(ctx context.Context, prefix string) ([]Product, error)
	Create(ctx context.Context, draft ProductDraft) (*Product, error)
	UpdatePartial(ctx context.Context, id string, patch ProductPatch) (*Product, error)
	Replace(ctx context.Context, id string, draft ProductDraft) (*Product, error)
	Delete(ctx context.Context, id string) error
}

type products struct {
	col *mongo.Collection
}

var _ Products = (*products)(nil)

func NewProductsRepository(db *mongo.Database) Products {
	return &products{col: db.Collection(productsCollection)}
}

func (r *products) List(ctx context.Context) ([]Product, error) {
	cursor, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to list products")
	}

	out := []Product{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to decode products")
	}

	return out, nil
}

func (r *products) GetByID(ctx context.Context, id string) (*Product, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	product := &Product{}
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(product); err != nil {
		if goerrors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to query product")
	}

	return product, nil
}

// FindByNamePrefix matches names starting with prefix, case
// insensitive. The prefix is quoted so regex metacharacters in the
// request cannot widen the match.
func (r *products) FindByNamePrefix(ctx context.Context, prefix string) ([]Product, error) {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		return nil, ErrEmptySearchTerm
	}

	filter := bson.M{"name": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(prefix),
		Options: "i",
	}}

	cursor, err := r.col.Find(ctx, filter)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to search products")
	}

	out := []Product{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to decode products")
	}

	return out, nil
}

// Create assigns code = current count + 1. The count and the insert
// are two round trips; concurrent creates can assign the same code.
func (r *products) Create(ctx context.Context, draft ProductDraft) (*Product, error) {
	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to count products")
	}

	product := &Product{
		Code:     int(total) + 1,
		Name:     draft.Name,
		Price:    draft.Price,
		Category: draft.Category,
	}

	res, err := r.col.InsertOne(ctx, product)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to insert product")
	}

	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		product.ID = oid
	}

	return product, nil
}

func (r *products) UpdatePartial(ctx context.Context, id string, patch ProductPatch) (*Product, error) {
	if patch.IsZero() {
		return r.GetByID(ctx, id)
	}

	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	product := &Product{}
	err = r.col.FindOneAndUpdate(
		ctx,
		bson.M{"_id": oid},
		bson.M{"$set": patchDocument(patch)},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(product)
	if err != nil {
		if goerrors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update product")
	}

	return product, nil
}

// Replace swaps the whole document for the draft. Fields the draft
// does not carry, the sequential code included, come back cleared;
// that is the PUT contract.
func (r *products) Replace(ctx context.Context, id string, draft ProductDraft) (*Product, error) {
	oid, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	replacement := Product{
		Name:     draft.Name,
		Price:    draft.Price,
		Category: draft.Category,
	}

	product := &Product{}
	err = r.col.FindOneAndReplace(
		ctx,
		bson.M{"_id": oid},
		replacement,
		options.FindOneAndReplace().SetReturnDocument(options.After),
	).Decode(product)
	if err != nil {
		if goerrors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to replace product")
	}

	return product, nil
}

func (r *products) Delete(ctx context.Context, id string) error {
	oid, err := parseObjectID(id)
	if err != nil {
		return err
	}

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return goerrors.Wrap(err, goerrors.CategoryInternal, "failed to delete product")
	}

	if res.DeletedCount == 0 {
		return ErrProductNotFound
	}

	return nil
}

func parseObjectID(id string) (primitive.ObjectID, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return primitive.NilObjectID, ErrInvalidProductID
	}

	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidProductID
	}

	return oid, nil
}

func patchDocument(patch ProductPatch) bson.M {
	fields := bson.M{}
	if patch.Name != nil {
		fields["name"] = *patch.Name
	}
	if patch.Price != nil {
		fields["price"] = *patch.Price
	}
	if patch.Category != nil {
		fields["category"] = *patch.Category
	}
	return fields
}
