package cli

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/docintake/internal/core/render"
)

func TestRecentCmd_Empty(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()

	out, err := execute("recent")

	require.NoError(t, err)
	assert.Contains(t, out, render.EmptyRecentMessage)
}

func TestRecentCmd_ListsNewestFirst(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	recentService = &mockRecentService{views: []render.RecentView{
		{DocumentID: "new-doc", CategoryLabel: "Complaints", UrgencyLabel: "High", When: "Just now"},
		{DocumentID: "old-doc", CategoryLabel: "Kyc Updates", UrgencyLabel: "Low", When: "2d ago"},
	}}

	out, err := execute("recent")

	require.NoError(t, err)
	assert.Contains(t, out, "Just now")
	assert.Contains(t, out, "2d ago")
	assert.Less(t, strings.Index(out, "new-doc"), strings.Index(out, "old-doc"))
}

func TestRecentCmd_ServiceNotConfigured(t *testing.T) {
	cleanup := setupTestServices()
	defer cleanup()
	recentService = nil

	_, err := execute("recent")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "recent service not configured")
}
