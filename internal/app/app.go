// Package app wires stores and services for the API server and the CLI.
package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sitecrew/workforce-backend/internal/config"
	"github.com/sitecrew/workforce-backend/internal/domain/attendance"
	"github.com/sitecrew/workforce-backend/internal/domain/auth"
	"github.com/sitecrew/workforce-backend/internal/domain/dashboard"
	"github.com/sitecrew/workforce-backend/internal/domain/leave"
	"github.com/sitecrew/workforce-backend/internal/domain/report"
	"github.com/sitecrew/workforce-backend/internal/domain/team"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
	"github.com/sitecrew/workforce-backend/internal/fixtures"
	"github.com/sitecrew/workforce-backend/internal/pkg/clock"
	"github.com/sitecrew/workforce-backend/internal/pkg/database"
	"github.com/sitecrew/workforce-backend/internal/pkg/jwt"
	"github.com/sitecrew/workforce-backend/internal/pkg/migrate"
	"github.com/sitecrew/workforce-backend/internal/repository/memory"
	"github.com/sitecrew/workforce-backend/internal/repository/postgresql"
	accessService "github.com/sitecrew/workforce-backend/internal/service/access"
	attendanceService "github.com/sitecrew/workforce-backend/internal/service/attendance"
	authService "github.com/sitecrew/workforce-backend/internal/service/auth"
	dashboardService "github.com/sitecrew/workforce-backend/internal/service/dashboard"
	"github.com/sitecrew/workforce-backend/internal/service/hierarchy"
	leaveService "github.com/sitecrew/workforce-backend/internal/service/leave"
	reportService "github.com/sitecrew/workforce-backend/internal/service/report"
	teamService "github.com/sitecrew/workforce-backend/internal/service/team"
)

// Stores holds one repository per entity, all backed by the same store.
type Stores struct {
	Users       user.UserRepository
	Attendances attendance.AttendanceRepository
	Leaves      leave.LeaveRequestRepository
	Teams       team.TeamAssignmentRepository

	// DB is nil for the memory store.
	DB *database.DB
}

// Close releases the database pool, if any.
func (s *Stores) Close() {
	if s.DB != nil {
		s.DB.Close()
	}
}

// NewPostgresStores connects to PostgreSQL and applies pending migrations
// when migrate is set.
func NewPostgresStores(ctx context.Context, dsn string, autoMigrate bool) (*Stores, error) {
	db, err := database.NewPostgreSQLDB(ctx, dsn)
	if err != nil {
		return nil, err
	}

	if autoMigrate {
		version, err := migrate.Migrate(ctx, db)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
		slog.Info("database migrated", "version", version)
	}

	return &Stores{
		Users:       postgresql.NewUserRepository(db),
		Attendances: postgresql.NewAttendanceRepository(db),
		Leaves:      postgresql.NewLeaveRequestRepository(db),
		Teams:       postgresql.NewTeamAssignmentRepository(db),
		DB:          db,
	}, nil
}

// NewMemoryStores returns an empty in-process store.
func NewMemoryStores(clk clock.Clock) *Stores {
	store := memory.NewStore(memory.WithNow(clk.Now))
	return &Stores{
		Users:       memory.NewUserRepository(store),
		Attendances: memory.NewAttendanceRepository(store),
		Leaves:      memory.NewLeaveRequestRepository(store),
		Teams:       memory.NewTeamAssignmentRepository(store),
	}
}

// OpenStores picks the store named by cfg. The memory store is seeded with
// the demo organization so the API is usable straight away.
func OpenStores(ctx context.Context, cfg *config.Config, clk clock.Clock) (*Stores, error) {
	switch cfg.Store.Type {
	case config.StorePostgres:
		return NewPostgresStores(ctx, cfg.DatabaseURL(), cfg.Database.AutoMigrate)
	case config.StoreMemory:
		stores := NewMemoryStores(clk)
		hash, err := authService.HashPassword(cfg.Store.SeedPassword)
		if err != nil {
			return nil, fmt.Errorf("failed to hash seed password: %w", err)
		}
		seeded, err := fixtures.SeedDemoOrganization(ctx, stores.Users, stores.Teams, hash, clk.Today())
		if err != nil {
			return nil, err
		}
		slog.Info("memory store seeded", "users", len(seeded.UserIDs), "assignments", len(seeded.AssignmentIDs))
		return stores, nil
	default:
		return nil, fmt.Errorf("unsupported store type %q", cfg.Store.Type)
	}
}

type Services struct {
	Auth       auth.AuthService
	Attendance attendance.AttendanceService
	Leave      leave.LeaveService
	Team       team.TeamService
	Report     report.ReportService
	Dashboard  dashboard.DashboardService
}

func NewServices(stores *Stores, clk clock.Clock, jwtService jwt.Service) Services {
	hierarchyResolver := hierarchy.NewResolver(stores.Users, stores.Teams)
	resolver := accessService.NewResolver(hierarchyResolver)

	return Services{
		Auth:       authService.NewAuthService(stores.Users, jwtService),
		Attendance: attendanceService.NewAttendanceService(stores.Attendances, resolver, clk),
		Leave:      leaveService.NewLeaveService(stores.Leaves, stores.Users, resolver),
		Team:       teamService.NewTeamService(stores.Teams, stores.Users, hierarchyResolver, clk),
		Report:     reportService.NewReportService(stores.Attendances, stores.Leaves, stores.Users, resolver, hierarchyResolver),
		Dashboard:  dashboardService.NewDashboardService(stores.Attendances, stores.Leaves, stores.Users, clk),
	}
}
