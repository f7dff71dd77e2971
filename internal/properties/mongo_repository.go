package properties

import (
	"context"
	"regexp"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoRepository implements Repository backed by MongoDB. Search criteria
// translate to a single filter document so the database does the work the
// in-memory pipeline does locally.
type MongoRepository struct {
	col      *mongo.Collection
	counters *mongo.Collection
}

func NewMongoRepository(db *mongo.Database) *MongoRepository {
	return &MongoRepository{
		col:      db.Collection("properties"),
		counters: db.Collection("counters"),
	}
}

func (r *MongoRepository) nextID(ctx context.Context) (int64, error) {
	opts := options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After)
	var doc struct {
		Seq int64 `bson:"seq"`
	}
	err := r.counters.FindOneAndUpdate(ctx,
		bson.M{"_id": "properties"},
		bson.M{"$inc": bson.M{"seq": 1}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, err
	}
	return doc.Seq, nil
}

func (r *MongoRepository) Create(ctx context.Context, p *Property) (*Property, error) {
	id, err := r.nextID(ctx)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p.ID = id
	p.CreatedAt = now
	p.UpdatedAt = now
	if p.Status == "" {
		p.Status = StatusAvailable
	}
	doc := bson.M{"_id": p.ID}
	raw, err := bson.Marshal(p)
	if err != nil {
		return nil, err
	}
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	doc["_id"] = p.ID
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return nil, err
	}
	return p, nil
}

func (r *MongoRepository) GetByID(ctx context.Context, id int64) (*Property, error) {
	var p Property
	if err := r.col.FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	p.ID = id
	return &p, nil
}

func (r *MongoRepository) List(ctx context.Context, page, size int, sortBy, sortDirection string) (ListResult, error) {
	return r.query(ctx, bson.M{}, page, size, sortBy, sortDirection)
}

func (r *MongoRepository) Search(ctx context.Context, c SearchCriteria) (ListResult, error) {
	filter := bson.M{}
	if c.Keyword != "" {
		re := primitive.Regex{Pattern: regexp.QuoteMeta(c.Keyword), Options: "i"}
		filter["$or"] = bson.A{
			bson.M{"title": re},
			bson.M{"area": re},
			bson.M{"city": re},
		}
	}
	if c.City != "" && c.City != "all" {
		filter["city"] = primitive.Regex{Pattern: "^" + regexp.QuoteMeta(c.City) + "$", Options: "i"}
	}
	if c.PropertyType != "" && c.PropertyType != "all" {
		filter["propertyType"] = c.PropertyType
	}
	if c.Bedrooms != nil {
		filter["bedrooms"] = bson.M{"$gte": *c.Bedrooms}
	}
	if c.MinPrice != nil || c.MaxPrice != nil {
		price := bson.M{}
		if c.MinPrice != nil {
			price["$gte"] = *c.MinPrice
		}
		if c.MaxPrice != nil {
			price["$lte"] = *c.MaxPrice
		}
		filter["price"] = price
	}
	if len(c.Amenities) > 0 {
		filter["amenities"] = bson.M{"$all": c.Amenities}
	}
	return r.query(ctx, filter, c.Page, c.Size, c.SortBy, c.SortDirection)
}

func (r *MongoRepository) AddImage(ctx context.Context, propertyID int64, img PropertyImage) error {
	_, err := r.col.UpdateOne(ctx,
		bson.M{"_id": propertyID},
		bson.M{
			"$push": bson.M{"images": img},
			"$set":  bson.M{"updatedAt": time.Now().UTC()},
		},
	)
	return err
}

func (r *MongoRepository) query(ctx context.Context, filter bson.M, page, size int, sortBy, sortDirection string) (ListResult, error) {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 0 {
		page = 0
	}
	total, err := r.col.CountDocuments(ctx, filter)
	if err != nil {
		return ListResult{}, err
	}

	dir := -1
	if sortDirection == "ASC" || sortDirection == "asc" {
		dir = 1
	}
	field := "createdAt"
	if sortBy == "price" {
		field = "price"
	}

	opts := options.Find().
		SetSort(bson.D{{Key: field, Value: dir}}).
		SetSkip(int64(page * size)).
		SetLimit(int64(size))
	cur, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return ListResult{}, err
	}
	defer cur.Close(ctx)

	items := make([]Property, 0, size)
	if err := cur.All(ctx, &items); err != nil {
		return ListResult{}, err
	}

	return ListResult{
		Properties:      items,
		CurrentPage:     page,
		TotalPages:      int((total + int64(size) - 1) / int64(size)),
		TotalProperties: int(total),
		PageSize:        size,
	}, nil
}
