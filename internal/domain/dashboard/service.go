package dashboard

import (
	"context"

	"github.com/sitecrew/workforce-backend/internal/domain/user"
)

// DashboardService defines the interface for dashboard operations
type DashboardService interface {
	// GetDashboardStats returns the KPI variant matching the requester's role
	GetDashboardStats(ctx context.Context, requester user.Requester) (Stats, error)
}
