package ulidgen

import (
	"testing"

	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
)

func TestNewReturnsParsableUniqueULIDs(t *testing.T) {
	a := New()
	b := New()

	assert.NotEqual(t, a, b)
	_, err := ulid.ParseStrict(a)
	assert.NoError(t, err)
}
