package repository

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"career-guide/internal/domain"
)

const (
	usersCollection          = "users"
	marksCollection          = "marks"
	questionnairesCollection = "questionnaires"
)

// EnsureMongoIndexes crea los indices que sostienen las invariantes del store:
// email unico y consultas de notas por usuario.
func EnsureMongoIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection(usersCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true).SetName(usersEmailKey),
	})
	if err != nil {
		return fmt.Errorf("users email index: %w", err)
	}
	_, err = db.Collection(marksCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
	})
	if err != nil {
		return fmt.Errorf("marks user index: %w", err)
	}
	return nil
}

// userPublicProjection excluye el hash de la contraseña en lecturas que no son de login.
var userPublicProjection = bson.D{{Key: "password_hash", Value: 0}}

// MongoUserRepository implementa UserRepository sobre una coleccion de MongoDB.
type MongoUserRepository struct {
	coll *mongo.Collection
}

func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{coll: db.Collection(usersCollection)}
}

func (r *MongoUserRepository) Create(ctx context.Context, user domain.User) error {
	_, err := r.coll.InsertOne(ctx, user)
	return translateMongoError(err)
}

func (r *MongoUserRepository) GetByID(ctx context.Context, id string) (domain.User, error) {
	opts := options.FindOne().SetProjection(userPublicProjection)
	var u domain.User
	if err := r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: id}}, opts).Decode(&u); err != nil {
		return domain.User{}, translateMongoError(err)
	}
	return u, nil
}

func (r *MongoUserRepository) GetByEmail(ctx context.Context, email string) (domain.User, error) {
	var u domain.User
	if err := r.coll.FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&u); err != nil {
		return domain.User{}, translateMongoError(err)
	}
	return u, nil
}

type MongoMarksRepository struct {
	coll *mongo.Collection
}

func NewMongoMarksRepository(db *mongo.Database) *MongoMarksRepository {
	return &MongoMarksRepository{coll: db.Collection(marksCollection)}
}

func (r *MongoMarksRepository) Create(ctx context.Context, entry domain.MarksEntry) error {
	_, err := r.coll.InsertOne(ctx, entry)
	return translateMongoError(err)
}

func (r *MongoMarksRepository) ListByUserID(ctx context.Context, userID string) ([]domain.MarksEntry, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.D{{Key: "user_id", Value: userID}}, opts)
	if err != nil {
		return nil, err
	}
	entries := make([]domain.MarksEntry, 0)
	if err := cursor.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

type MongoQuestionnaireRepository struct {
	coll *mongo.Collection
}

func NewMongoQuestionnaireRepository(db *mongo.Database) *MongoQuestionnaireRepository {
	return &MongoQuestionnaireRepository{coll: db.Collection(questionnairesCollection)}
}

func (r *MongoQuestionnaireRepository) Create(ctx context.Context, q domain.Questionnaire) error {
	_, err := r.coll.InsertOne(ctx, q)
	return translateMongoError(err)
}
