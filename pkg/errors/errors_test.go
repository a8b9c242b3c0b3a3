package errors_test

import (
	"errors"
	"fmt"
	"testing"

	pkgerrors "github.com/agentstation/locallift/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotFoundError(t *testing.T) {
	t.Run("message", func(t *testing.T) {
		err := pkgerrors.NewNotFoundError("business", "7")
		assert.Equal(t, "business with ID 7 not found", err.Error())
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("wrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("toggle favorite: %w", pkgerrors.NewNotFoundError("business", "7"))
		assert.True(t, pkgerrors.IsNotFound(wrapped))
		assert.False(t, pkgerrors.IsValidationError(wrapped))
	})
}

func TestValidationError(t *testing.T) {
	tests := []struct {
		name string
		err  *pkgerrors.ValidationError
		want string
	}{
		{
			name: "with field",
			err:  pkgerrors.NewValidationError("rating", 9, "must be between 1 and 5"),
			want: "validation failed for field rating: must be between 1 and 5",
		},
		{
			name: "without field",
			err:  pkgerrors.NewValidationError("", nil, "location is required"),
			want: "validation failed: location is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.Error())
			assert.True(t, errors.Is(tt.err, pkgerrors.ErrInvalidInput))
		})
	}
}

func TestAPIError(t *testing.T) {
	t.Run("rate limited", func(t *testing.T) {
		err := pkgerrors.NewAPIError("osm", 429, "slow down")
		assert.True(t, pkgerrors.IsRateLimited(err))
		assert.False(t, pkgerrors.IsSourceUnavailable(err))
	})

	t.Run("server error", func(t *testing.T) {
		err := pkgerrors.NewAPIError("osm", 504, "gateway timeout")
		assert.True(t, pkgerrors.IsSourceUnavailable(err))
		assert.Equal(t, "API error from osm (status 504): gateway timeout", err.Error())
	})

	t.Run("wrap keeps cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := pkgerrors.WrapAPI("yelp", 0, cause)
		require.Error(t, err)
		assert.ErrorIs(t, err, cause)
		assert.Equal(t, "API error from yelp: connection refused", err.Error())
	})
}

func TestWrapHelpers(t *testing.T) {
	assert.NoError(t, pkgerrors.WrapIO("write", "catalog.json", nil))
	assert.NoError(t, pkgerrors.WrapParse("json", "catalog.json", nil))
	assert.NoError(t, pkgerrors.WrapResource("import", "catalog", "", nil))

	cause := errors.New("disk full")
	err := pkgerrors.WrapIO("write", "catalog.json", cause)
	var ioErr *pkgerrors.IOError
	require.ErrorAs(t, err, &ioErr)
	assert.Equal(t, "catalog.json", ioErr.Path)
	assert.ErrorIs(t, err, cause)

	err = pkgerrors.WrapParse("jsonl", "dataset.json", cause)
	var parseErr *pkgerrors.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "parse error in jsonl file dataset.json: disk full", err.Error())
}

func TestNoResults(t *testing.T) {
	err := pkgerrors.WrapResource("search", "catalog", "", pkgerrors.ErrNoResults)
	assert.True(t, pkgerrors.IsNoResults(err))
	assert.Equal(t, "failed to search catalog: no results", err.Error())
}
