package cache

import (
	"context"

	"floodguard/internal/domain/entity"
	"floodguard/internal/domain/model"
)

// AssessmentCache stores risk assessments per location for a bounded time
// window. Entries expire by age; there is no explicit invalidation.
type AssessmentCache interface {
	// Get returns the cached assessment for a location name, or found=false
	// when absent or expired
	Get(ctx context.Context, location string) (*entity.RiskAssessment, bool, error)

	// Put stores a fresh assessment under the location name
	Put(ctx context.Context, location string, assessment *entity.RiskAssessment) error

	// Health reports the cache component health
	Health(ctx context.Context) model.ComponentHealthStatus
}
