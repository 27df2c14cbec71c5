package repository

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"news-intel-service/metrics"
)

const (
	articlesCollection    = "articles"
	sourcesCollection     = "news_sources"
	submissionsCollection = "submissions"
	scoresCollection      = "country_scores"
	ratingsCollection     = "article_ratings"
	usageLogCollection    = "usage_log"
)

// Mongo bundles the concrete repository implementations around one
// database handle.
type Mongo struct {
	client *mongo.Client
	db     *mongo.Database
}

func NewMongo(client *mongo.Client, dbName string) *Mongo {
	return &Mongo{client: client, db: client.Database(dbName)}
}

// EnsureIndexes creates the uniqueness and query indexes the pipeline
// relies on. The partial index on submissions.url is what makes the
// at-most-one-credit-per-URL guarantee hold under concurrent submits:
// only non-duplicate rows participate in the constraint.
func (m *Mongo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	_, err := m.db.Collection(articlesCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "url", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "publishedAt", Value: -1}}},
		{Keys: bson.D{{Key: "country", Value: 1}, {Key: "publishedAt", Value: -1}}},
		{Keys: bson.D{{Key: "topicCategory", Value: 1}, {Key: "publishedAt", Value: -1}}},
	})
	if err != nil {
		return err
	}

	_, err = m.db.Collection(submissionsCollection).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys: bson.D{{Key: "url", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"duplicate": false}),
		},
		{Keys: bson.D{{Key: "country", Value: 1}, {Key: "submittedAt", Value: -1}}},
	})
	if err != nil {
		return err
	}

	_, err = m.db.Collection(ratingsCollection).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "articleId", Value: 1}},
	})
	if err != nil {
		return err
	}

	slog.Info("database indexes ensured")
	return nil
}

// WithinTransaction runs fn inside one MongoDB session transaction.
func (m *Mongo) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := m.client.StartSession()
	if err != nil {
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sc mongo.SessionContext) (interface{}, error) {
		return nil, fn(sc)
	})
	return err
}

// mapErr translates driver errors into the repository sentinel errors.
func mapErr(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, mongo.ErrNoDocuments):
		return ErrNotFound
	case mongo.IsDuplicateKeyError(err):
		return ErrDuplicate
	default:
		return err
	}
}

func observe(op, collection string, err error) {
	status := "ok"
	if err != nil {
		status = "error"
	}
	metrics.MongoOperationsTotal.WithLabelValues(op, collection, status).Inc()
}
