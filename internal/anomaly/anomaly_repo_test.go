package anomaly

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRepository_InsertIgnoreTx_RejectsUnknownKind(t *testing.T) {
	repo := NewRepository(nil)

	// rejected before the transaction handle is touched
	ok, err := repo.InsertIgnoreTx(nil, &Record{
		UserID:     "113791012",
		Kind:       "lunch",
		AnchorTime: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
	})

	assert.False(t, ok)
	assert.ErrorContains(t, err, "unknown anomaly kind")
}

func TestValidKind(t *testing.T) {
	for _, kind := range []string{KindAbsent, KindLate, KindOvertime, KindMissingOut} {
		assert.True(t, ValidKind(kind), kind)
	}
	assert.False(t, ValidKind(""))
	assert.False(t, ValidKind("lunch"))
}
