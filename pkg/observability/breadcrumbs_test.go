package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordAndGetBreadcrumbs(t *testing.T) {
	ClearBreadcrumbs()
	defer ClearBreadcrumbs()

	RecordBreadcrumb("ui", "clicked submit", map[string]any{"id": "btn-1"})
	RecordBreadcrumb("state", "counter incremented", nil)

	got := GetBreadcrumbs()
	require.Len(t, got, 2)
	assert.Equal(t, "ui", got[0].Category)
	assert.Equal(t, "counter incremented", got[1].Message)
}

func TestBreadcrumbBufferDropsOldest(t *testing.T) {
	ClearBreadcrumbs()
	defer ClearBreadcrumbs()

	for i := 0; i < MaxBreadcrumbs+10; i++ {
		RecordBreadcrumb("ui", "tick", nil)
	}

	got := GetBreadcrumbs()
	assert.Len(t, got, MaxBreadcrumbs)
}

func TestClearBreadcrumbs(t *testing.T) {
	RecordBreadcrumb("ui", "x", nil)
	ClearBreadcrumbs()
	assert.Empty(t, GetBreadcrumbs())
}
