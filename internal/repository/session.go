package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/auth-api/internal/model"
)

// SessionRepository defines the interface for session-list operations. Every
// session lives in the owning user document's tokens array, so each method is
// a single-document update and relies on per-document atomicity.
type SessionRepository interface {
	// AddSession appends a pending session to the user's token list.
	AddSession(ctx context.Context, userID string, session model.SessionToken) error

	// ExpireSession marks the session holding the given token as explicitly
	// expired and unsets its default expiry. The updated record is returned
	// with its internal id stripped. Returns mongo.ErrNoDocuments when the
	// user or token does not exist.
	ExpireSession(ctx context.Context, userID, token string) (*model.SessionToken, error)

	// ExpireAllSessions applies the explicit-expiry transition to every
	// session in the user's list and returns the updated list, ids stripped.
	ExpireAllSessions(ctx context.Context, userID string) ([]model.SessionToken, error)

	// DeleteDefaultExpired drops sessions whose default expiry has passed and
	// which were not explicitly expired. Explicitly expired records are kept.
	DeleteDefaultExpired(ctx context.Context, userID string, now time.Time) error

	// ListActiveSessions returns the sessions not marked explicitly expired,
	// in issuance order.
	ListActiveSessions(ctx context.Context, userID string) ([]model.SessionToken, error)
}

type sessionMongoRepository struct {
	db *mongo.Database
}

func NewSessionMongoRepository(db *mongo.Database) SessionRepository {
	return &sessionMongoRepository{db: db}
}

func (r *sessionMongoRepository) AddSession(
	ctx context.Context,
	userID string,
	session model.SessionToken,
) error {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	result, err := r.db.Collection(userCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$push": bson.M{"tokens": session}},
	)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func (r *sessionMongoRepository) ExpireSession(
	ctx context.Context,
	userID, token string,
) (*model.SessionToken, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(userCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID, "tokens.token": token},
		bson.M{
			"$set": bson.M{
				"tokens.$.is_expired": true,
				"tokens.$.expired_at": time.Now(),
			},
			"$unset": bson.M{"tokens.$.expires_at": ""},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	for _, t := range user.Tokens {
		if t.Token == token {
			t.ID = ""
			return &t, nil
		}
	}

	return nil, mongo.ErrNoDocuments
}

func (r *sessionMongoRepository) ExpireAllSessions(
	ctx context.Context,
	userID string,
) ([]model.SessionToken, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(userCollection).FindOneAndUpdate(
		ctx,
		bson.M{"_id": objectID},
		bson.M{
			"$set": bson.M{
				"tokens.$[].is_expired": true,
				"tokens.$[].expired_at": time.Now(),
			},
			"$unset": bson.M{"tokens.$[].expires_at": ""},
		},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	tokens := make([]model.SessionToken, 0, len(user.Tokens))
	for _, t := range user.Tokens {
		t.ID = ""
		tokens = append(tokens, t)
	}

	return tokens, nil
}

func (r *sessionMongoRepository) DeleteDefaultExpired(
	ctx context.Context,
	userID string,
	now time.Time,
) error {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return err
	}

	_, err = r.db.Collection(userCollection).UpdateOne(
		ctx,
		bson.M{"_id": objectID},
		bson.M{"$pull": bson.M{"tokens": bson.M{
			"expires_at": bson.M{"$lt": now},
			"is_expired": bson.M{"$ne": true},
		}}},
	)

	return err
}

func (r *sessionMongoRepository) ListActiveSessions(
	ctx context.Context,
	userID string,
) ([]model.SessionToken, error) {
	objectID, err := bson.ObjectIDFromHex(userID)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(userCollection).FindOne(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	active := make([]model.SessionToken, 0, len(user.Tokens))
	for _, t := range user.Tokens {
		if t.IsExpired {
			continue
		}
		t.ID = ""
		active = append(active, t)
	}

	return active, nil
}
