package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckInsert(t *testing.T) {
	assert.ErrorIs(t, CheckInsert("payments", []Row{{"a": 1}}), ErrUnknownTable)
	assert.ErrorIs(t, CheckInsert(TableAppointments, nil), ErrEmptyBatch)
	assert.NoError(t, CheckInsert(TableAppointments, []Row{{"status": "pending"}}))
}

func TestRowHelpers(t *testing.T) {
	row := Row{"id": 42, "name": "Ana", "phone": nil}

	assert.Equal(t, "42", row.ID())
	assert.Equal(t, "Ana", row.String("name"))
	assert.Equal(t, "", row.String("phone"))
	assert.Equal(t, []string{"id", "name", "phone"}, row.Columns())

	clone := row.Clone()
	clone["name"] = "Bia"
	assert.Equal(t, "Ana", row.String("name"))
	assert.Equal(t, "", Row{}.ID())
}
