package cache

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"floodguard/internal/domain/entity"
	"floodguard/internal/domain/model"
)

func sampleAssessment(location string) *entity.RiskAssessment {
	return &entity.RiskAssessment{
		Location:    location,
		Temperature: 21.4,
		RainMM:      12.5,
		Description: "Light Rain",
		Risk:        entity.RiskLow,
		EvaluatedAt: time.Now(),
	}
}

func TestMemoryCachePutAndGet(t *testing.T) {
	ctx := context.Background()
	memCache := NewMemoryAssessmentCache(30 * time.Minute)

	_, found, err := memCache.Get(ctx, "Gilgit")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, memCache.Put(ctx, "Gilgit", sampleAssessment("Gilgit")))

	cached, found, err := memCache.Get(ctx, "Gilgit")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "Gilgit", cached.Location)
	assert.Equal(t, 12.5, cached.RainMM)

	hits, misses := memCache.Stats()
	assert.Equal(t, 1, hits)
	assert.Equal(t, 1, misses)
}

func TestMemoryCacheExpiresByAge(t *testing.T) {
	ctx := context.Background()
	memCache := NewMemoryAssessmentCache(30 * time.Minute)

	now := time.Now()
	memCache.now = func() time.Time { return now }

	require.NoError(t, memCache.Put(ctx, "Skardu", sampleAssessment("Skardu")))

	// Just inside the window
	memCache.now = func() time.Time { return now.Add(29 * time.Minute) }
	_, found, err := memCache.Get(ctx, "Skardu")
	require.NoError(t, err)
	assert.True(t, found)

	// At the window boundary the entry is stale
	memCache.now = func() time.Time { return now.Add(30 * time.Minute) }
	_, found, err = memCache.Get(ctx, "Skardu")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCacheSweep(t *testing.T) {
	ctx := context.Background()
	memCache := NewMemoryAssessmentCache(30 * time.Minute)

	now := time.Now()
	memCache.now = func() time.Time { return now }

	require.NoError(t, memCache.Put(ctx, "Gilgit", sampleAssessment("Gilgit")))

	memCache.now = func() time.Time { return now.Add(20 * time.Minute) }
	require.NoError(t, memCache.Put(ctx, "Hunza", sampleAssessment("Hunza")))

	// Only the first entry has aged out
	memCache.now = func() time.Time { return now.Add(40 * time.Minute) }
	assert.Equal(t, 1, memCache.Sweep())

	_, found, _ := memCache.Get(ctx, "Hunza")
	assert.True(t, found)
}

func TestMemoryCacheHealth(t *testing.T) {
	memCache := NewMemoryAssessmentCache(30 * time.Minute)
	require.NoError(t, memCache.Put(context.Background(), "Gilgit", sampleAssessment("Gilgit")))

	status := memCache.Health(context.Background())
	assert.Equal(t, model.StatusUp, status.Status)
	assert.Equal(t, "memory", status.Details["type"])
	assert.Equal(t, "1", status.Details["entries"])
}
