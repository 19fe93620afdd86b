package mongo

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/contentdesk/cms/internal/core/domain"
)

const collectionMedia = "media"

type MediaRepository struct {
	col *mongo.Collection
}

func NewMediaRepository(db *mongo.Database) *MediaRepository {
	return &MediaRepository{col: db.Collection(collectionMedia)}
}

type imageSizeDocument struct {
	Name   string `bson:"name"`
	Width  int    `bson:"width"`
	Height int    `bson:"height"`
}

type mediaDocument struct {
	ID        primitive.ObjectID  `bson:"_id,omitempty"`
	Alt       string              `bson:"alt"`
	Filename  string              `bson:"filename"`
	MimeType  string              `bson:"mime_type"`
	Filesize  int64               `bson:"filesize"`
	Sizes     []imageSizeDocument `bson:"sizes"`
	CreatedAt time.Time           `bson:"created_at"`
	UpdatedAt time.Time           `bson:"updated_at"`
}

func (d *mediaDocument) toDomain() *domain.Media {
	sizes := make([]domain.ImageSize, len(d.Sizes))
	for i, s := range d.Sizes {
		sizes[i] = domain.ImageSize{Name: s.Name, Width: s.Width, Height: s.Height}
	}
	return &domain.Media{
		ID:        d.ID.Hex(),
		Alt:       d.Alt,
		Filename:  d.Filename,
		MimeType:  d.MimeType,
		Filesize:  d.Filesize,
		Sizes:     sizes,
		CreatedAt: d.CreatedAt.UTC(),
		UpdatedAt: d.UpdatedAt.UTC(),
	}
}

func (r *MediaRepository) Create(ctx context.Context, m *domain.Media) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	sizes := make([]imageSizeDocument, len(m.Sizes))
	for i, s := range m.Sizes {
		sizes[i] = imageSizeDocument{Name: s.Name, Width: s.Width, Height: s.Height}
	}
	res, err := r.col.InsertOne(ctx, mediaDocument{
		Alt:       m.Alt,
		Filename:  m.Filename,
		MimeType:  m.MimeType,
		Filesize:  m.Filesize,
		Sizes:     sizes,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	})
	if err != nil {
		return err
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		m.ID = oid.Hex()
	}
	return nil
}

func (r *MediaRepository) FindByID(ctx context.Context, id string) (*domain.Media, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMediaNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mediaDocument
	if err := r.col.FindOne(ctx, bson.M{"_id": oid}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMediaNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *MediaRepository) List(ctx context.Context, page, limit int) ([]*domain.Media, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	total, err := r.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, err
	}
	if limit == 0 {
		return []*domain.Media{}, total, nil
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(skip(page, limit)).
		SetLimit(int64(limit))
	cur, err := r.col.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	defer cur.Close(ctx)

	items := make([]*domain.Media, 0, limit)
	for cur.Next(ctx) {
		var doc mediaDocument
		if err := cur.Decode(&doc); err != nil {
			return nil, 0, err
		}
		items = append(items, doc.toDomain())
	}
	return items, total, cur.Err()
}

func (r *MediaRepository) UpdateAlt(ctx context.Context, id, alt string) (*domain.Media, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, domain.ErrMediaNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc mediaDocument
	err = r.col.FindOneAndUpdate(ctx, bson.M{"_id": oid},
		bson.M{"$set": bson.M{"alt": alt, "updated_at": time.Now().UTC()}},
		options.FindOneAndUpdate().SetReturnDocument(options.After)).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrMediaNotFound
		}
		return nil, err
	}
	return doc.toDomain(), nil
}

func (r *MediaRepository) Delete(ctx context.Context, id string) error {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return domain.ErrMediaNotFound
	}

	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	res, err := r.col.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return domain.ErrMediaNotFound
	}
	return nil
}
