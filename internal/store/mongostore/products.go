package mongostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
)

type productDocument struct {
	ID          primitive.ObjectID   `bson:"_id,omitempty"`
	Name        string               `bson:"Name"`
	Description string               `bson:"Description"`
	Price       primitive.Decimal128 `bson:"Price"`
	ImageSrc    string               `bson:"ImageSrc"`
}

func toProductDocument(p catalog.Product) (productDocument, error) {
	price, err := primitive.ParseDecimal128(p.Price.String())
	if err != nil {
		return productDocument{}, fmt.Errorf("encode price %s: %w", p.Price, err)
	}
	return productDocument{
		Name:        p.Name,
		Description: p.Description,
		Price:       price,
		ImageSrc:    p.ImageSrc,
	}, nil
}

func (d productDocument) product() (catalog.Product, error) {
	price, err := decimal.NewFromString(d.Price.String())
	if err != nil {
		return catalog.Product{}, fmt.Errorf("product %s: decode price %s: %w", d.ID.Hex(), d.Price, err)
	}
	return catalog.Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Description: d.Description,
		Price:       price,
		ImageSrc:    d.ImageSrc,
	}, nil
}

type ProductRepository struct {
	coll *mongo.Collection
}

func NewProductRepository(coll *mongo.Collection) *ProductRepository {
	return &ProductRepository{coll: coll}
}

func (r *ProductRepository) Get(ctx context.Context, id string) (catalog.Product, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return catalog.Product{}, catalog.ErrNotFound
	}

	var doc productDocument
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return catalog.Product{}, catalog.ErrNotFound
		}
		return catalog.Product{}, err
	}
	return doc.product()
}

func (r *ProductRepository) List(ctx context.Context, limit int) ([]catalog.Product, error) {
	cur, err := r.coll.Find(ctx, bson.D{}, options.Find().SetLimit(int64(limit)))
	if err != nil {
		return nil, err
	}

	var docs []productDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, err
	}

	out := make([]catalog.Product, 0, len(docs))
	for _, d := range docs {
		p, err := d.product()
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *ProductRepository) Create(ctx context.Context, p catalog.Product) (string, error) {
	doc, err := toProductDocument(p)
	if err != nil {
		return "", err
	}
	doc.ID = primitive.NewObjectID()

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", err
	}
	return doc.ID.Hex(), nil
}

func (r *ProductRepository) Replace(ctx context.Context, id string, p catalog.Product) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return catalog.ErrNotFound
	}
	doc, err := toProductDocument(p)
	if err != nil {
		return err
	}
	doc.ID = oid

	res, err := r.coll.ReplaceOne(ctx, bson.M{"_id": oid}, doc)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return catalog.ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return catalog.ErrNotFound
	}
	return nil
}
