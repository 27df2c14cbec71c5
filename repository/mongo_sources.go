package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"news-intel-service/model"
)

type MongoSources struct {
	m *Mongo
}

func (m *Mongo) Sources() *MongoSources {
	return &MongoSources{m: m}
}

func (r *MongoSources) FindByName(ctx context.Context, name string) (*model.NewsSource, error) {
	var s model.NewsSource
	err := r.m.db.Collection(sourcesCollection).FindOne(ctx, bson.M{"_id": name}).Decode(&s)
	observe("findOne", sourcesCollection, err)
	if err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}

func (r *MongoSources) Save(ctx context.Context, s *model.NewsSource) error {
	_, err := r.m.db.Collection(sourcesCollection).ReplaceOne(ctx,
		bson.M{"_id": s.Name}, s, options.Replace().SetUpsert(true))
	observe("replaceOne", sourcesCollection, err)
	return mapErr(err)
}
