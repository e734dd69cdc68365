package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"todoapi/internal/model"
)

type todoDocument struct {
	ID         primitive.ObjectID `bson:"_id,omitempty"`
	Value      string             `bson:"value"`
	IsComplete bool               `bson:"isComplete"`
	UserID     string             `bson:"userId"`
	CreatedAt  time.Time          `bson:"createdAt"`
	UpdatedAt  time.Time          `bson:"updatedAt"`
}

func (d *todoDocument) toModel() model.Todo {
	return model.Todo{
		ID:         d.ID.Hex(),
		Value:      d.Value,
		IsComplete: d.IsComplete,
		UserID:     d.UserID,
		CreatedAt:  d.CreatedAt,
		UpdatedAt:  d.UpdatedAt,
	}
}

type mongoTodoRepository struct {
	coll *mongo.Collection
}

// NewMongoTodoRepository builds a MongoDB-backed todo repository.
func NewMongoTodoRepository(db *mongo.Database) TodoRepository {
	return &mongoTodoRepository{coll: db.Collection(todosCollection)}
}

// scopedFilter matches a todo by id and owner together. An id that is not a
// valid ObjectID cannot match anything, so it reports ErrNotFound.
func scopedFilter(id, userID string) (bson.M, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return bson.M{"_id": oid, "userId": userID}, nil
}

func (r *mongoTodoRepository) Create(ctx context.Context, todo *model.Todo) error {
	now := time.Now().UTC()
	doc := todoDocument{
		ID:         primitive.NewObjectID(),
		Value:      todo.Value,
		IsComplete: todo.IsComplete,
		UserID:     todo.UserID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	todo.ID = doc.ID.Hex()
	todo.CreatedAt = now
	todo.UpdatedAt = now
	return nil
}

func (r *mongoTodoRepository) ListByUser(ctx context.Context, userID string) ([]model.Todo, error) {
	cur, err := r.coll.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, fmt.Errorf("find todos: %w", err)
	}
	var docs []todoDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode todos: %w", err)
	}
	todos := make([]model.Todo, 0, len(docs))
	for i := range docs {
		todos = append(todos, docs[i].toModel())
	}
	return todos, nil
}

// Toggle negates isComplete server side with an aggregation pipeline update,
// so the lookup and the write happen in one round trip.
func (r *mongoTodoRepository) Toggle(ctx context.Context, id, userID string) (*model.Todo, error) {
	filter, err := scopedFilter(id, userID)
	if err != nil {
		return nil, err
	}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "isComplete", Value: bson.D{{Key: "$not", Value: bson.A{"$isComplete"}}}},
			{Key: "updatedAt", Value: time.Now().UTC()},
		}}},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc todoDocument
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("toggle todo: %w", err)
	}
	todo := doc.toModel()
	return &todo, nil
}

func (r *mongoTodoRepository) Delete(ctx context.Context, id, userID string) error {
	filter, err := scopedFilter(id, userID)
	if err != nil {
		return err
	}
	res, err := r.coll.DeleteOne(ctx, filter)
	if err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
