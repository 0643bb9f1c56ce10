package services_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/ml-registry/model-registry/pkg/registry/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetDashboardStats_Empty(t *testing.T) {
	e := newEnv(t)

	stats, err := e.stats.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Zero(t, stats.TotalModels)
	assert.Empty(t, stats.ModelsByStatus)
	assert.Empty(t, stats.ModelsByFramework)
	assert.Empty(t, stats.RecentModels)
}

func TestGetDashboardStats(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()

	e.create(t, "one", models.FrameworkSklearn)
	two := e.create(t, "two", models.FrameworkSklearn)
	e.create(t, "three", models.FrameworkPytorch)
	_, err := e.models.UpdateDeploymentStatus(ctx, two.ID, models.StatusStaging)
	require.NoError(t, err)

	stats, err := e.stats.GetDashboardStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), stats.TotalModels)
	assert.Equal(t, map[string]int64{"development": 2, "staging": 1}, stats.ModelsByStatus)
	assert.Equal(t, map[string]int64{"sklearn": 2, "pytorch": 1}, stats.ModelsByFramework)
	require.Len(t, stats.RecentModels, 3)
	assert.Equal(t, "two", stats.RecentModels[0].Name)
}

func TestGetDashboardStats_RecentIsCapped(t *testing.T) {
	e := newEnv(t)
	for i := 0; i < 7; i++ {
		e.create(t, fmt.Sprintf("m%d", i), models.FrameworkOther)
	}

	stats, err := e.stats.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), stats.TotalModels)
	require.Len(t, stats.RecentModels, 5)
	assert.Equal(t, "m6", stats.RecentModels[0].Name)
}
