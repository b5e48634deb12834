package mongostore

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/caso-enron/comments-backend/internal/models"
	"github.com/caso-enron/comments-backend/internal/store"
)

// Store persists one document per comment in a `comments` collection,
// with backend-assigned ObjectIDs. This is the shared-database variant of
// the board: creates push a single new document, deletes remove one by key,
// and no full-collection rewrite ever happens.
type Store struct {
	coll *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{coll: db.Collection("comments")}
}

type commentDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	Name      string             `bson:"name"`
	Email     string             `bson:"email"`
	Text      string             `bson:"text"`
	Date      string             `bson:"date"`
	OwnerID   string             `bson:"owner_id,omitempty"`
	Approved  bool               `bson:"approved"`
	CreatedAt time.Time          `bson:"created_at"`
	UpdatedAt *time.Time         `bson:"updated_at,omitempty"`
}

func (d commentDoc) toModel() models.Comment {
	return models.Comment{
		ID:        d.ID.Hex(),
		Name:      d.Name,
		Email:     d.Email,
		Text:      d.Text,
		Date:      d.Date,
		OwnerID:   d.OwnerID,
		Approved:  d.Approved,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// List returns all comments sorted by creation time descending (newest first).
func (s *Store) List(ctx context.Context) ([]models.Comment, error) {
	findOptions := options.Find()
	findOptions.SetSort(bson.M{"created_at": -1})

	cursor, err := s.coll.Find(ctx, bson.M{}, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var docs []commentDoc
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, err
	}

	comments := make([]models.Comment, 0, len(docs))
	for _, d := range docs {
		comments = append(comments, d.toModel())
	}
	return comments, nil
}

func (s *Store) Get(ctx context.Context, id string) (models.Comment, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Comment{}, store.ErrNotFound
	}

	var doc commentDoc
	err = s.coll.FindOne(ctx, bson.M{"_id": objectID}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Comment{}, store.ErrNotFound
	}
	if err != nil {
		return models.Comment{}, err
	}
	return doc.toModel(), nil
}

func (s *Store) Create(ctx context.Context, nc store.NewComment) (models.Comment, error) {
	now := time.Now()
	doc := commentDoc{
		ID:        primitive.NewObjectID(),
		Name:      nc.Name,
		Email:     nc.Email,
		Text:      nc.Text,
		Date:      models.DisplayDate(now),
		OwnerID:   nc.OwnerID,
		Approved:  true,
		CreatedAt: now,
	}

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return models.Comment{}, err
	}
	return doc.toModel(), nil
}

func (s *Store) Update(ctx context.Context, id, text string) (models.Comment, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return models.Comment{}, store.ErrNotFound
	}

	now := time.Now()
	updateOptions := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc commentDoc
	err = s.coll.FindOneAndUpdate(ctx,
		bson.M{"_id": objectID},
		bson.M{"$set": bson.M{"text": text, "updated_at": now}},
		updateOptions,
	).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return models.Comment{}, store.ErrNotFound
	}
	if err != nil {
		return models.Comment{}, err
	}
	return doc.toModel(), nil
}

func (s *Store) Delete(ctx context.Context, id string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return store.ErrNotFound
	}

	result, err := s.coll.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
