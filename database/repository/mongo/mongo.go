package mongoRepo

import (
	"context"
	"fmt"
	"time"

	"agendamento/database/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoStore implements RecordStore with one collection per table.
type MongoStore struct {
	db      *mongo.Database
	timeout time.Duration
}

// NewMongoStore creates a store on db and ensures the id indexes exist.
func NewMongoStore(db *mongo.Database, timeout time.Duration) (*MongoStore, error) {
	s := &MongoStore{db: db, timeout: timeout}
	if err := s.ensureIndexes(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *MongoStore) newContext(parent context.Context) (context.Context, context.CancelFunc) {
	if s.timeout <= 0 {
		return context.WithCancel(parent)
	}
	return context.WithTimeout(parent, s.timeout)
}

// ensureIndexes creates indexes for fields frequently used in queries.
func (s *MongoStore) ensureIndexes() error {
	ctx, cancel := s.newContext(context.Background())
	defer cancel()

	byTable := map[string][]mongo.IndexModel{
		repository.TableUsers: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		repository.TableCompanies: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "owner_id", Value: 1}}},
		},
		repository.TableServices: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "company_id", Value: 1}}},
		},
		repository.TableAppointments: {
			{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "user_id", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		repository.TableAppointmentServices: {
			{Keys: bson.D{{Key: "appointment_id", Value: 1}, {Key: "service_id", Value: 1}}},
		},
	}
	for table, models := range byTable {
		if _, err := s.db.Collection(table).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("failed to create indexes on %s: %w", table, err)
		}
	}
	return nil
}

// Insert writes all rows with a single InsertMany.
func (s *MongoStore) Insert(ctx context.Context, table string, rows []repository.Row) ([]repository.Row, error) {
	if err := repository.CheckInsert(table, rows); err != nil {
		return nil, err
	}
	ctx, cancel := s.newContext(ctx)
	defer cancel()

	out := withIDs(rows)
	docs := make([]interface{}, 0, len(out))
	for _, r := range out {
		docs = append(docs, bson.M(r))
	}

	if _, err := s.db.Collection(table).InsertMany(ctx, docs); err != nil {
		return nil, fmt.Errorf("failed to insert into %s: %w", table, err)
	}
	return out, nil
}

func (s *MongoStore) Select(ctx context.Context, table string, filter repository.Filter) ([]repository.Row, error) {
	if err := repository.CheckTable(table); err != nil {
		return nil, err
	}
	ctx, cancel := s.newContext(ctx)
	defer cancel()

	opts := options.Find().SetProjection(bson.M{"_id": 0})
	cursor, err := s.db.Collection(table).Find(ctx, toBSON(filter), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query %s: %w", table, err)
	}
	defer cursor.Close(ctx)

	var rows []repository.Row
	for cursor.Next(ctx) {
		var doc bson.M
		if err := cursor.Decode(&doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s row: %w", table, err)
		}
		rows = append(rows, normalize(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate %s: %w", table, err)
	}
	return rows, nil
}

func (s *MongoStore) Update(ctx context.Context, table string, filter repository.Filter, fields repository.Row) (int, error) {
	if err := repository.CheckTable(table); err != nil {
		return 0, err
	}
	if len(filter) == 0 {
		return 0, repository.ErrEmptyFilter
	}
	ctx, cancel := s.newContext(ctx)
	defer cancel()

	// Wrap in $set to comply with MongoDB update syntax
	result, err := s.db.Collection(table).UpdateMany(ctx, toBSON(filter), bson.M{"$set": bson.M(fields)})
	if err != nil {
		return 0, fmt.Errorf("failed to update %s: %w", table, err)
	}
	return int(result.MatchedCount), nil
}

func (s *MongoStore) Delete(ctx context.Context, table string, filter repository.Filter) (int, error) {
	if err := repository.CheckTable(table); err != nil {
		return 0, err
	}
	if len(filter) == 0 {
		return 0, repository.ErrEmptyFilter
	}
	ctx, cancel := s.newContext(ctx)
	defer cancel()

	result, err := s.db.Collection(table).DeleteMany(ctx, toBSON(filter))
	if err != nil {
		return 0, fmt.Errorf("failed to delete from %s: %w", table, err)
	}
	return int(result.DeletedCount), nil
}

func (s *MongoStore) Ping(ctx context.Context) error {
	ctx, cancel := s.newContext(ctx)
	defer cancel()
	return s.db.Client().Ping(ctx, nil)
}

func withIDs(rows []repository.Row) []repository.Row {
	out := make([]repository.Row, 0, len(rows))
	for _, r := range rows {
		c := r.Clone()
		if c.ID() == "" {
			c["id"] = uuid.New().String()
		}
		out = append(out, c)
	}
	return out
}

func toBSON(filter repository.Filter) bson.M {
	m := bson.M{}
	for k, v := range filter {
		m[k] = v
	}
	return m
}

// normalize converts driver-specific values back to plain Go types.
func normalize(doc bson.M) repository.Row {
	row := make(repository.Row, len(doc))
	for k, v := range doc {
		switch val := v.(type) {
		case primitive.DateTime:
			row[k] = val.Time().UTC()
		case primitive.A:
			row[k] = []interface{}(val)
		default:
			row[k] = val
		}
	}
	return row
}
