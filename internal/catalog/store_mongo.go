package catalog

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const productsCollection = "products"

// productDoc is the stored document shape; price is a plain double.
type productDoc struct {
	ID          primitive.ObjectID `bson:"_id"`
	Name        string             `bson:"name"`
	Price       float64            `bson:"price"`
	Description string             `bson:"description"`
	Image       string             `bson:"image"`
	Category    string             `bson:"category"`
	InStock     bool               `bson:"inStock"`
}

func (d productDoc) product() Product {
	return Product{
		ID:          d.ID.Hex(),
		Name:        d.Name,
		Price:       decimal.NewFromFloat(d.Price),
		Description: d.Description,
		Image:       d.Image,
		Category:    d.Category,
		InStock:     d.InStock,
	}
}

type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(productsCollection)}
}

func ConnectMongo(ctx context.Context, uri string) (*mongo.Client, error) {
	var client *mongo.Client
	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		c, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
		client = c
		return err
	})
	return client, err
}

func (s *MongoStore) Ping(ctx context.Context) error {
	return withTimeout(ctx, pingTimeout, func(ctx context.Context) error {
		return s.coll.Database().Client().Ping(ctx, readpref.Primary())
	})
}

func (s *MongoStore) List(ctx context.Context) ([]Product, error) {
	var docs []productDoc

	err := withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		cur, err := s.coll.Find(ctx, bson.D{}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
		if err != nil {
			return err
		}
		return cur.All(ctx, &docs)
	})
	if err != nil {
		return nil, err
	}

	out := make([]Product, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.product())
	}
	return out, nil
}

// Get treats ids that are not ObjectIDs as unknown.
func (s *MongoStore) Get(ctx context.Context, id string) (Product, bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Product{}, false, nil
	}

	var d productDoc
	err = withTimeout(ctx, queryTimeout, func(ctx context.Context) error {
		return s.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&d)
	})
	if errors.Is(err, mongo.ErrNoDocuments) {
		return Product{}, false, nil
	}
	if err != nil {
		return Product{}, false, err
	}
	return d.product(), true, nil
}
