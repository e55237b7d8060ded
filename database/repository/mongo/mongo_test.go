package mongoRepo

import (
	"testing"
	"time"

	"agendamento/database/repository"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestWithIDs(t *testing.T) {
	in := []repository.Row{{"name": "a"}, {"id": "keep", "name": "b"}}
	out := withIDs(in)

	assert.Len(t, out[0].ID(), 36)
	assert.Equal(t, "keep", out[1].ID())
	_, touched := in[0]["id"]
	assert.False(t, touched)
}

func TestNormalize(t *testing.T) {
	at := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	row := normalize(bson.M{
		"id":         "x",
		"created_at": primitive.NewDateTimeFromTime(at),
		"tags":       primitive.A{"a", "b"},
	})

	assert.Equal(t, "x", row.ID())
	assert.Equal(t, at, row["created_at"])
	assert.Equal(t, []interface{}{"a", "b"}, row["tags"])
}

func TestToBSON(t *testing.T) {
	assert.Equal(t, bson.M{"user_id": "u1"}, toBSON(repository.Filter{"user_id": "u1"}))
	assert.Equal(t, bson.M{}, toBSON(nil))
}
