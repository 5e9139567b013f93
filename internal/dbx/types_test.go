package dbx

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringList_ValueScan(t *testing.T) {
	v, err := StringList{"a", "b"}.Value()
	require.NoError(t, err)
	assert.Equal(t, []byte(`["a","b"]`), v)

	v, err = StringList(nil).Value()
	require.NoError(t, err)
	assert.Equal(t, []byte("[]"), v)

	var l StringList
	require.NoError(t, l.Scan([]byte(`["x"]`)))
	assert.Equal(t, StringList{"x"}, l)
	require.NoError(t, l.Scan(`["y","z"]`))
	assert.Equal(t, StringList{"y", "z"}, l)
	require.NoError(t, l.Scan(nil))
	assert.Nil(t, l)
	assert.Error(t, l.Scan(42))
}

func TestNullHelpers(t *testing.T) {
	assert.Nil(t, NullString(""))
	assert.Equal(t, "x", NullString("x"))
	assert.Nil(t, NullTime(time.Time{}))
	now := time.Now()
	assert.Equal(t, now, NullTime(now))
}

func TestIsUniqueViolation(t *testing.T) {
	assert.True(t, IsUniqueViolation(fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "23505"})))
	assert.False(t, IsUniqueViolation(&pgconn.PgError{Code: "23503"}))
	assert.False(t, IsUniqueViolation(errors.New("23505")))
}

func TestIsInvalidText(t *testing.T) {
	assert.True(t, IsInvalidText(fmt.Errorf("wrap: %w", &pgconn.PgError{Code: "22P02"})))
	assert.False(t, IsInvalidText(&pgconn.PgError{Code: "23505"}))
	assert.False(t, IsInvalidText(errors.New("22P02")))
}
