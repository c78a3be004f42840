package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smartoffice/platform/internal/core/domain"
)

const collectionAssets = "Assets"

type AssetRepository struct {
	col *mongo.Collection
}

func NewAssetRepository(db *mongo.Database) *AssetRepository {
	return &AssetRepository{col: db.Collection(collectionAssets)}
}

type assetDocument struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Type      string             `bson:"type"`
	Location  string             `bson:"location"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt time.Time          `bson:"updated_at"`
}

func (d assetDocument) toDomain() *domain.Asset {
	return &domain.Asset{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Type:      d.Type,
		Location:  d.Location,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

// EnsureIndexes creates the unique (name, type) index on the assets collection.
func (r *AssetRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "name", Value: 1}, {Key: "type", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("ux_assets_name_type"),
	})
	if err != nil {
		return fmt.Errorf("ensure assets index: %w", err)
	}
	return nil
}

// List returns all assets ordered by name.
func (r *AssetRepository) List(ctx context.Context) ([]*domain.Asset, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{}, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, storeErr("list assets", err)
	}
	defer cur.Close(ctx)

	var docs []assetDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, storeErr("decode assets", err)
	}

	out := make([]*domain.Asset, 0, len(docs))
	for _, d := range docs {
		out = append(out, d.toDomain())
	}
	return out, nil
}

// FindByID looks an asset up by its hex ObjectID. A malformed id is treated as
// not found.
func (r *AssetRepository) FindByID(ctx context.Context, id string) (*domain.Asset, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrAssetNotFound
	}
	return r.findOne(ctx, bson.M{"_id": oid})
}

func (r *AssetRepository) FindByNameAndType(ctx context.Context, name, assetType string) (*domain.Asset, error) {
	return r.findOne(ctx, bson.M{"name": name, "type": assetType})
}

func (r *AssetRepository) findOne(ctx context.Context, filter bson.M) (*domain.Asset, error) {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	var d assetDocument
	if err := r.col.FindOne(ctx, filter).Decode(&d); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrAssetNotFound
		}
		return nil, storeErr("find asset", err)
	}
	return d.toDomain(), nil
}

// Create inserts a new asset and sets its ID.
func (r *AssetRepository) Create(ctx context.Context, a *domain.Asset) error {
	ctx, cancel := withTimeout(ctx)
	defer cancel()

	doc := assetDocument{
		ID:        primitive.NewObjectID(),
		Name:      a.Name,
		Type:      a.Type,
		Location:  a.Location,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAssetExists
		}
		return storeErr("insert asset", err)
	}
	a.ID = doc.ID.Hex()
	return nil
}

// Replace overwrites the stored document with the same ID.
func (r *AssetRepository) Replace(ctx context.Context, a *domain.Asset) error {
	oid, err := primitive.ObjectIDFromHex(a.ID)
	if err != nil {
		return domain.ErrAssetNotFound
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.col.ReplaceOne(ctx, bson.M{"_id": oid}, assetDocument{
		ID:        oid,
		Name:      a.Name,
		Type:      a.Type,
		Location:  a.Location,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	})
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrAssetExists
		}
		return storeErr("replace asset", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrAssetNotFound
	}
	return nil
}

func (r *AssetRepository) Delete(ctx context.Context, id string) (bool, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	ctx, cancel := withTimeout(ctx)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return false, storeErr("delete asset", err)
	}
	return res.DeletedCount > 0, nil
}

func storeErr(op string, err error) error {
	return fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, op, err)
}
