package repository

import (
	"context"

	"news-intel-service/model"
)

type MongoRatings struct {
	m *Mongo
}

func (m *Mongo) Ratings() *MongoRatings {
	return &MongoRatings{m: m}
}

func (r *MongoRatings) Insert(ctx context.Context, rating *model.ArticleRating) error {
	_, err := r.m.db.Collection(ratingsCollection).InsertOne(ctx, rating)
	observe("insertOne", ratingsCollection, err)
	return mapErr(err)
}

type MongoUsageLog struct {
	m *Mongo
}

func (m *Mongo) UsageLog() *MongoUsageLog {
	return &MongoUsageLog{m: m}
}

func (r *MongoUsageLog) Insert(ctx context.Context, u *model.UsageLog) error {
	_, err := r.m.db.Collection(usageLogCollection).InsertOne(ctx, u)
	observe("insertOne", usageLogCollection, err)
	return mapErr(err)
}
