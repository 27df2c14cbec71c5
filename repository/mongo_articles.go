package repository

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"news-intel-service/model"
)

type MongoArticles struct {
	m *Mongo
}

func (m *Mongo) Articles() *MongoArticles {
	return &MongoArticles{m: m}
}

func (r *MongoArticles) FindByURL(ctx context.Context, url string) (*model.Article, error) {
	var a model.Article
	err := r.m.db.Collection(articlesCollection).FindOne(ctx, bson.M{"url": url}).Decode(&a)
	observe("findOne", articlesCollection, err)
	if err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

func (r *MongoArticles) FindByID(ctx context.Context, id string) (*model.Article, error) {
	var a model.Article
	err := r.m.db.Collection(articlesCollection).FindOne(ctx, bson.M{"_id": id}).Decode(&a)
	observe("findOne", articlesCollection, err)
	if err != nil {
		return nil, mapErr(err)
	}
	return &a, nil
}

// Save upserts by id. A clash on the unique url index (same URL inserted
// concurrently under a different id) surfaces as ErrDuplicate.
func (r *MongoArticles) Save(ctx context.Context, a *model.Article) error {
	_, err := r.m.db.Collection(articlesCollection).ReplaceOne(ctx,
		bson.M{"_id": a.ID}, a, options.Replace().SetUpsert(true))
	observe("replaceOne", articlesCollection, err)
	return mapErr(err)
}

func (r *MongoArticles) Latest(ctx context.Context, limit int) ([]model.Article, error) {
	return r.find(ctx, bson.M{}, limit)
}

func (r *MongoArticles) LatestByCountry(ctx context.Context, country string, limit int) ([]model.Article, error) {
	return r.find(ctx, bson.M{"country": country}, limit)
}

func (r *MongoArticles) find(ctx context.Context, filter bson.M, limit int) ([]model.Article, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "publishedAt", Value: -1}, {Key: "_id", Value: 1}}).
		SetLimit(int64(limit))
	cursor, err := r.m.db.Collection(articlesCollection).Find(ctx, filter, opts)
	observe("find", articlesCollection, err)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var articles []model.Article
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, err
	}
	return articles, nil
}

func (r *MongoArticles) CountByCountry(ctx context.Context, country string) (int64, error) {
	n, err := r.m.db.Collection(articlesCollection).CountDocuments(ctx, bson.M{"country": country})
	observe("count", articlesCollection, err)
	return n, err
}

func (r *MongoArticles) Stats(ctx context.Context) (*model.ArticleStats, error) {
	coll := r.m.db.Collection(articlesCollection)

	total, err := coll.EstimatedDocumentCount(ctx)
	if err != nil {
		return nil, err
	}

	sources, err := coll.Distinct(ctx, "source", bson.M{"source": bson.M{"$nin": bson.A{nil, ""}}})
	if err != nil {
		return nil, err
	}

	stats := &model.ArticleStats{
		TotalArticles:   total,
		DistinctSources: int64(len(sources)),
	}

	pipeline := []bson.M{
		{"$group": bson.M{
			"_id":    nil,
			"avgRel": bson.M{"$avg": bson.M{"$ifNull": bson.A{"$relevanceScore", 0}}},
			"avgAna": bson.M{"$avg": bson.M{"$ifNull": bson.A{"$analysisScore", 0}}},
		}},
	}
	cursor, err := coll.Aggregate(ctx, pipeline)
	observe("aggregate", articlesCollection, err)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		AvgRel *float64 `bson:"avgRel"`
		AvgAna *float64 `bson:"avgAna"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		stats.AvgRelevanceScore = rows[0].AvgRel
		stats.AvgAnalysisScore = rows[0].AvgAna
	}
	return stats, nil
}

// TrendingTopics groups window articles by topic category, excluding rows
// without one, ordered by article count then average combined score.
func (r *MongoArticles) TrendingTopics(ctx context.Context, since time.Time) ([]model.TrendingTopic, error) {
	pipeline := []bson.M{
		{"$match": bson.M{
			"topicCategory": bson.M{"$nin": bson.A{nil, ""}},
			"publishedAt":   bson.M{"$gt": since},
		}},
		{"$group": bson.M{
			"_id":          "$topicCategory",
			"articleCount": bson.M{"$sum": 1},
			"avgScore": bson.M{"$avg": bson.M{"$add": bson.A{
				bson.M{"$ifNull": bson.A{"$relevanceScore", 0}},
				bson.M{"$ifNull": bson.A{"$analysisScore", 0}},
			}}},
			"latestArticle": bson.M{"$max": "$publishedAt"},
		}},
		{"$sort": bson.D{{Key: "articleCount", Value: -1}, {Key: "avgScore", Value: -1}}},
	}

	cursor, err := r.m.db.Collection(articlesCollection).Aggregate(ctx, pipeline)
	observe("aggregate", articlesCollection, err)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var topics []model.TrendingTopic
	if err := cursor.All(ctx, &topics); err != nil {
		return nil, err
	}
	return topics, nil
}
