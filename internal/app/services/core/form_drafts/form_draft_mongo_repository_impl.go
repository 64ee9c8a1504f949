package formDrafts

import (
	"carecapture-service/internal/app/contracts"
	"carecapture-service/internal/app/models"
	"carecapture-service/internal/pkg/constvars"
	"carecapture-service/internal/pkg/exceptions"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type FormDraftMongoRepository struct {
	Collection *mongo.Collection
}

func NewFormDraftMongoRepository(db *mongo.Client, dbName string) contracts.FormDraftRepository {
	return &FormDraftMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionFormDrafts),
	}
}

// EnsureIndexes creates the TTL index that lets mongo drop abandoned drafts
// once expiresAt has passed.
func (repo *FormDraftMongoRepository) EnsureIndexes(ctx context.Context) error {
	index := mongo.IndexModel{
		Keys:    bson.D{{Key: "expiresAt", Value: 1}},
		Options: options.Index().SetExpireAfterSeconds(0).SetName("form_drafts_expires_at_ttl"),
	}
	_, err := repo.Collection.Indexes().CreateOne(ctx, index)
	if err != nil {
		return exceptions.ErrMongoDBCreateIndex(err, constvars.MongoCollectionFormDrafts)
	}
	return nil
}

func (repo *FormDraftMongoRepository) Create(ctx context.Context, draft *models.FormDraft) error {
	if err := draft.EncodeForms(); err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	_, err := repo.Collection.InsertOne(ctx, draft)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (repo *FormDraftMongoRepository) FindByID(ctx context.Context, draftID string) (*models.FormDraft, error) {
	var draft models.FormDraft
	err := repo.Collection.FindOne(ctx, bson.M{"_id": draftID}).Decode(&draft)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	if err := draft.DecodeForms(); err != nil {
		return nil, exceptions.ErrCannotParseJSON(err)
	}
	return &draft, nil
}

func (repo *FormDraftMongoRepository) Update(ctx context.Context, draft *models.FormDraft) error {
	if err := draft.EncodeForms(); err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	filter := bson.M{"_id": draft.ID}
	update := bson.M{"$set": bson.M{
		"context":   draft.Context,
		"forms":     draft.FormsPayload,
		"lastState": draft.LastState,
		"expiresAt": draft.ExpiresAt,
		"updatedAt": draft.UpdatedAt,
	}}

	result, err := repo.Collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(false))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrFormDraftNotFound(nil, draft.ID)
	}
	return nil
}

func (repo *FormDraftMongoRepository) Delete(ctx context.Context, draftID string) error {
	_, err := repo.Collection.DeleteOne(ctx, bson.M{"_id": draftID})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}
