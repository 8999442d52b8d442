package auth

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// blacklistedToken records a revoked refresh token until its natural expiry,
// after which the TTL index reaps it.
type blacklistedToken struct {
	JTI       string    `bson:"jti"`
	UserID    string    `bson:"userId"`
	ExpiresAt time.Time `bson:"expiresAt"`
	CreatedAt time.Time `bson:"createdAt"`
}

// BlacklistRepository stores revoked refresh tokens
type BlacklistRepository struct {
	collection *mongo.Collection
}

// NewBlacklistRepository initializes the repository with a unique jti index
// and a TTL index that drops entries once the token would have expired anyway.
func NewBlacklistRepository(db *mongo.Database) *BlacklistRepository {
	collection := db.Collection("token_blacklist")

	_, _ = collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "jti", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "expiresAt", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0),
		},
	})

	return &BlacklistRepository{collection: collection}
}

// Blacklist marks a refresh token as revoked. Blacklisting the same token
// twice is not an error.
func (r *BlacklistRepository) Blacklist(ctx context.Context, jti, userID string, expiresAt time.Time) error {
	_, err := r.collection.InsertOne(ctx, blacklistedToken{
		JTI:       jti,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Now(),
	})
	if mongo.IsDuplicateKeyError(err) {
		return nil
	}
	return err
}

// IsBlacklisted reports whether a refresh token has been revoked
func (r *BlacklistRepository) IsBlacklisted(ctx context.Context, jti string) (bool, error) {
	err := r.collection.FindOne(ctx, bson.M{"jti": jti}).Err()
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
