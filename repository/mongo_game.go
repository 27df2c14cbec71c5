package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"news-intel-service/model"
)

type MongoSubmissions struct {
	m *Mongo
}

func (m *Mongo) Submissions() *MongoSubmissions {
	return &MongoSubmissions{m: m}
}

func (r *MongoSubmissions) FindByURL(ctx context.Context, url string) (*model.Submission, error) {
	var s model.Submission
	opts := options.FindOne().SetSort(bson.D{{Key: "submittedAt", Value: 1}})
	err := r.m.db.Collection(submissionsCollection).FindOne(ctx, bson.M{"url": url}, opts).Decode(&s)
	observe("findOne", submissionsCollection, err)
	if err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}

// Insert appends one submission row. Racing inserts of the same URL with
// duplicate=false collide on the partial unique index and come back as
// ErrDuplicate.
func (r *MongoSubmissions) Insert(ctx context.Context, s *model.Submission) error {
	_, err := r.m.db.Collection(submissionsCollection).InsertOne(ctx, s)
	observe("insertOne", submissionsCollection, err)
	return mapErr(err)
}

// CountDistinctUsers counts case-insensitively distinct non-empty user ids
// that ever submitted for the country.
func (r *MongoSubmissions) CountDistinctUsers(ctx context.Context, country string) (int64, error) {
	pipeline := []bson.M{
		{"$match": bson.M{
			"country": country,
			"userId":  bson.M{"$nin": bson.A{nil, ""}},
		}},
		{"$group": bson.M{"_id": bson.M{"$toLower": "$userId"}}},
		{"$count": "users"},
	}

	cursor, err := r.m.db.Collection(submissionsCollection).Aggregate(ctx, pipeline)
	observe("aggregate", submissionsCollection, err)
	if err != nil {
		return 0, err
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Users int64 `bson:"users"`
	}
	if err := cursor.All(ctx, &rows); err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		return 0, nil
	}
	return rows[0].Users, nil
}

type MongoScores struct {
	m *Mongo
}

func (m *Mongo) Scores() *MongoScores {
	return &MongoScores{m: m}
}

func (r *MongoScores) FindByCountry(ctx context.Context, country string) (*model.CountryScore, error) {
	var s model.CountryScore
	err := r.m.db.Collection(scoresCollection).FindOne(ctx, bson.M{"_id": country}).Decode(&s)
	observe("findOne", scoresCollection, err)
	if err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}

func (r *MongoScores) Save(ctx context.Context, s *model.CountryScore) error {
	_, err := r.m.db.Collection(scoresCollection).ReplaceOne(ctx,
		bson.M{"_id": s.Country}, s, options.Replace().SetUpsert(true))
	observe("replaceOne", scoresCollection, err)
	return mapErr(err)
}

func (r *MongoScores) Leaderboard(ctx context.Context, limit int) ([]model.CountryScore, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "score", Value: -1}}).
		SetLimit(int64(limit))
	cursor, err := r.m.db.Collection(scoresCollection).Find(ctx, bson.M{}, opts)
	observe("find", scoresCollection, err)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var scores []model.CountryScore
	if err := cursor.All(ctx, &scores); err != nil {
		return nil, err
	}
	return scores, nil
}
