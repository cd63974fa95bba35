package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursorRoundTrip(t *testing.T) {
	c := Cursor{CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC), ID: 42}

	s, err := EncodeCursor(c)
	require.NoError(t, err)
	require.NotEmpty(t, s)

	got, err := DecodeCursor(s)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.True(t, c.CreatedAt.Equal(got.CreatedAt))
	assert.Equal(t, c.ID, got.ID)
}

func TestDecodeCursorEmpty(t *testing.T) {
	got, err := DecodeCursor("")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestDecodeCursorGarbage(t *testing.T) {
	_, err := DecodeCursor("%%%not-base64%%%")
	assert.ErrorIs(t, err, ErrInvalidCursor)

	// валидный base64, но не json
	_, err = DecodeCursor("bm90LWpzb24")
	assert.ErrorIs(t, err, ErrInvalidCursor)
}
