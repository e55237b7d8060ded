package memoryRepo

import (
	"context"
	"testing"

	"agendamento/database/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_InsertAssignsIDs(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	rows, err := s.Insert(ctx, repository.TableAppointments, []repository.Row{
		{"user_id": "u1"},
		{"id": "fixed", "user_id": "u2"},
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Len(t, rows[0].ID(), 36)
	assert.Equal(t, "fixed", rows[1].ID())
	assert.Equal(t, 2, s.Count(repository.TableAppointments))
}

func TestMemoryStore_RejectsBadInput(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Insert(ctx, "nope", []repository.Row{{"a": 1}})
	assert.ErrorIs(t, err, repository.ErrUnknownTable)

	_, err = s.Insert(ctx, repository.TableUsers, nil)
	assert.ErrorIs(t, err, repository.ErrEmptyBatch)

	_, err = s.Delete(ctx, repository.TableUsers, nil)
	assert.ErrorIs(t, err, repository.ErrEmptyFilter)
}

func TestMemoryStore_SelectUpdateDelete(t *testing.T) {
	s := NewMemoryStore()
	ctx := context.Background()

	_, err := s.Insert(ctx, repository.TableUsers, []repository.Row{
		{"id": "a", "name": "Ana"},
		{"id": "b", "name": "Bia"},
	})
	require.NoError(t, err)

	got, err := s.Select(ctx, repository.TableUsers, repository.Filter{"id": "b"})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bia", got[0].String("name"))

	// Returned rows are copies.
	got[0]["name"] = "changed"
	again, _ := s.Select(ctx, repository.TableUsers, repository.Filter{"id": "b"})
	assert.Equal(t, "Bia", again[0].String("name"))

	n, err := s.Update(ctx, repository.TableUsers, repository.Filter{"id": "a"}, repository.Row{"name": "Ana Maria"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	all, err := s.Select(ctx, repository.TableUsers, nil)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	n, err = s.Delete(ctx, repository.TableUsers, repository.Filter{"id": "a"})
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 1, s.Count(repository.TableUsers))
}
