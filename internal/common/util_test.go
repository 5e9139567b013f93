package common

import (
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMakeRandHexString(t *testing.T) {
	for _, size := range []int{0, 3, 16} {
		s, err := MakeRandHexString(size)
		require.NoError(t, err)
		assert.Len(t, s, size*2)
		_, err = hex.DecodeString(s)
		assert.NoError(t, err)
	}

	a, _ := MakeRandHexString(16)
	b, _ := MakeRandHexString(16)
	assert.NotEqual(t, a, b)
}

func TestWipeByteArray(t *testing.T) {
	pw := []byte("s3cret")
	WipeByteArray(pw)
	assert.Equal(t, make([]byte, 6), pw)

	assert.NotPanics(t, func() { WipeByteArray(nil) })
}

func TestCleanString(t *testing.T) {
	assert.Equal(t, "Physics", CleanString("  Physics \t"))
	assert.Equal(t, "John@Mail.COM", CleanString(" John@Mail.COM "))
	assert.Equal(t, "john@mail.com", CleanString(" John@Mail.COM ", true))
	assert.Equal(t, "", CleanString("   ", true))
}

func TestContainsFold(t *testing.T) {
	tests := []struct {
		s, sub string
		want   bool
	}{
		{"John Smith", "john", true},
		{"NEET26-JOHN1234", "john", true},
		{"Johanna", "john", false},
		{"anything", "", true},
		{"", "x", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ContainsFold(tt.s, tt.sub), "ContainsFold(%q, %q)", tt.s, tt.sub)
	}
}
