package catalog

import (
	"testing"

	"github.com/alexanderramin/graphdeck/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryFor_EveryCategory(t *testing.T) {
	for _, cat := range domain.Categories {
		q, err := QueryFor(cat)
		require.NoError(t, err, cat)
		assert.Equal(t, cat, q.Field)
		assert.Contains(t, q.AllNames, cat+"(limit: 1000)")
		assert.Contains(t, q.Details, cat+"(name: $name) { name image description }")
	}
}

func TestQueryFor_RejectsUnknown(t *testing.T) {
	_, err := QueryFor("")
	assert.ErrorIs(t, err, ErrUnknownCategory)
	_, err = QueryFor("weapon { id } x")
	assert.ErrorIs(t, err, ErrUnknownCategory)
}
