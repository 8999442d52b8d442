package tasks

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	apperrors "github.com/xyz-asif/gotasks/pkg/errors"
)

type Repository struct {
	collection *mongo.Collection
}

func NewRepository(db *mongo.Database) *Repository {
	collection := db.Collection("tasks")

	// Create indexes
	collection.Indexes().CreateMany(context.Background(), []mongo.IndexModel{
		{Keys: bson.D{{Key: "userId", Value: 1}}},
		{Keys: bson.D{{Key: "completed", Value: 1}}},
		{Keys: bson.D{{Key: "createdAt", Value: -1}}},
	})

	return &Repository{collection: collection}
}

func (r *Repository) Create(ctx context.Context, task *Task) error {
	task.CreatedAt = time.Now()
	task.Completed = false
	task.CompletedAt = nil

	result, err := r.collection.InsertOne(ctx, task)
	if err != nil {
		return err
	}

	task.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

// GetByID fetches a task scoped to its owner. A missing task and a task
// owned by someone else are indistinguishable: both return nil, nil.
func (r *Repository) GetByID(ctx context.Context, id, userID string) (*Task, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var task Task
	err = r.collection.FindOne(ctx, bson.M{
		"_id":    objectID,
		"userId": userID,
	}).Decode(&task)

	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}

	return &task, nil
}

func (r *Repository) Update(ctx context.Context, id, userID string, update bson.M) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.ErrNotFound
	}

	set := bson.M{}
	unset := bson.M{}
	for field, value := range update {
		if value == nil {
			unset[field] = ""
		} else {
			set[field] = value
		}
	}

	doc := bson.M{}
	if len(set) > 0 {
		doc["$set"] = set
	}
	if len(unset) > 0 {
		doc["$unset"] = unset
	}
	if len(doc) == 0 {
		return nil
	}

	result, err := r.collection.UpdateOne(
		ctx,
		bson.M{"_id": objectID, "userId": userID},
		doc,
	)

	if err != nil {
		return err
	}

	if result.MatchedCount == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *Repository) Delete(ctx context.Context, id, userID string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return apperrors.ErrNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{
		"_id":    objectID,
		"userId": userID,
	})

	if err != nil {
		return err
	}

	if result.DeletedCount == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

// List runs a compiled filter query ordered by creation time descending.
// A limit of zero returns the full result set.
func (r *Repository) List(ctx context.Context, query bson.M, skip, limit int64) ([]Task, error) {
	opts := options.Find()
	opts.SetSort(bson.D{{Key: "createdAt", Value: -1}})
	if skip > 0 {
		opts.SetSkip(skip)
	}
	if limit > 0 {
		opts.SetLimit(limit)
	}

	cursor, err := r.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var tasks []Task
	if err := cursor.All(ctx, &tasks); err != nil {
		return nil, err
	}

	if tasks == nil {
		tasks = []Task{}
	}

	return tasks, nil
}

func (r *Repository) Count(ctx context.Context, query bson.M) (int64, error) {
	return r.collection.CountDocuments(ctx, query)
}

// SetCompletion persists only the completion state and its timestamp
func (r *Repository) SetCompletion(ctx context.Context, id, userID string, completed bool, completedAt *time.Time) error {
	update := bson.M{"completed": completed}
	if completedAt != nil {
		update["completedAt"] = *completedAt
	} else {
		update["completedAt"] = nil
	}
	return r.Update(ctx, id, userID, update)
}

// UnlinkCategory clears the category reference from every task pointing at
// it. Used when a category is deleted; the tasks themselves survive.
func (r *Repository) UnlinkCategory(ctx context.Context, categoryID primitive.ObjectID) (int64, error) {
	result, err := r.collection.UpdateMany(
		ctx,
		bson.M{"categoryId": categoryID},
		bson.M{"$unset": bson.M{"categoryId": "", "category": ""}},
	)
	if err != nil {
		return 0, err
	}
	return result.ModifiedCount, nil
}
