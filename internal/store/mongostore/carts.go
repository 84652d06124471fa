package mongostore

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
)

type lineDocument struct {
	ProductID primitive.ObjectID `bson:"ProductId"`
	Quantity  int32              `bson:"Quantity"`
}

type cartDocument struct {
	ID       primitive.ObjectID `bson:"_id,omitempty"`
	Products []lineDocument     `bson:"Products"`
}

func toCartDocument(c cart.Cart) (cartDocument, error) {
	lines := make([]lineDocument, 0, len(c.Lines))
	for _, l := range c.Lines {
		pid, err := primitive.ObjectIDFromHex(l.ProductID)
		if err != nil {
			return cartDocument{}, fmt.Errorf("encode line product %q: %w", l.ProductID, err)
		}
		lines = append(lines, lineDocument{ProductID: pid, Quantity: int32(l.Quantity)})
	}
	return cartDocument{Products: lines}, nil
}

func (d cartDocument) cart() cart.Cart {
	lines := make([]cart.Line, 0, len(d.Products))
	for _, l := range d.Products {
		lines = append(lines, cart.Line{ProductID: l.ProductID.Hex(), Quantity: int(l.Quantity)})
	}
	return cart.Cart{ID: d.ID.Hex(), Lines: lines}
}

type CartRepository struct {
	coll *mongo.Collection
}

func NewCartRepository(coll *mongo.Collection) *CartRepository {
	return &CartRepository{coll: coll}
}

func (r *CartRepository) Get(ctx context.Context, id string) (cart.Cart, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return cart.Cart{}, cart.ErrNotFound
	}

	var doc cartDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return cart.Cart{}, cart.ErrNotFound
		}
		return cart.Cart{}, err
	}
	return doc.cart(), nil
}

func (r *CartRepository) List(ctx context.Context, limit int) ([]cart.Cart, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}

	var docs []cartDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]cart.Cart, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.cart())
	}
	return out, nil
}

func (r *CartRepository) Create(ctx context.Context, c cart.Cart) (string, error) {
	doc, err := toCartDocument(c)
	if err != nil {
		return "", err
	}
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID.Hex(), nil
}

// Replace swaps the whole document. The filter matches on _id only, so a
// concurrent writer's changes are overwritten.
func (r *CartRepository) Replace(ctx context.Context, id string, c cart.Cart) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return cart.ErrNotFound
	}
	doc, err := toCartDocument(c)
	if err != nil {
		return err
	}
	doc.ID = oid

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return cart.ErrNotFound
	}
	return nil
}

func (r *CartRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return cart.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return cart.ErrNotFound
	}
	return nil
}
