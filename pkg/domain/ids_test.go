package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dErrors "truedial/pkg/domain-errors"
)

func TestParseUserID_Invariants(t *testing.T) {
	t.Run("rejects empty string", func(t *testing.T) {
		_, err := ParseUserID("")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects invalid format", func(t *testing.T) {
		_, err := ParseUserID("not-a-uuid")
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("rejects nil UUID", func(t *testing.T) {
		_, err := ParseUserID(uuid.Nil.String())
		require.Error(t, err)
		assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
	})

	t.Run("accepts valid UUID", func(t *testing.T) {
		valid := uuid.New()
		id, err := ParseUserID(valid.String())
		require.NoError(t, err)
		assert.Equal(t, valid.String(), id.String())
		assert.False(t, id.IsNil())
	})
}

func TestNewIDs(t *testing.T) {
	assert.False(t, NewUserID().IsNil())
	assert.False(t, NewContactID().IsNil())
	assert.False(t, NewReportID().IsNil())
	assert.False(t, NewInteractionID().IsNil())
}
