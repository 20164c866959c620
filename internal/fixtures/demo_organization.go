package fixtures

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sitecrew/workforce-backend/internal/domain/team"
	"github.com/sitecrew/workforce-backend/internal/domain/user"
	"github.com/sitecrew/workforce-backend/internal/pkg/database"
)

// ==========================================
// HELPER FUNCTIONS
// ==========================================

func strPtr(s string) *string { return &s }

// ==========================================
// SEEDED DATA RESULT
// ==========================================

// SeededDataIDs holds the ids of the seeded demo organization
type SeededDataIDs struct {
	// User IDs by fixture key, e.g. "foreman-north" -> "uuid"
	UserIDs map[string]string

	// Team assignment IDs by laborer key
	AssignmentIDs map[string]string
}

// NewSeededDataIDs creates a new SeededDataIDs with initialized maps
func NewSeededDataIDs() *SeededDataIDs {
	return &SeededDataIDs{
		UserIDs:       make(map[string]string),
		AssignmentIDs: make(map[string]string),
	}
}

// ==========================================
// USERS
// ==========================================

// UserDefinition describes one demo account. SupervisorKey refers to an
// earlier definition.
type UserDefinition struct {
	Key            string
	Email          string
	FullName       string
	EmployeeNumber string
	Department     string
	Role           user.Role
	SupervisorKey  string
}

// GetDefaultUsers returns the demo accounts, supervisors before their reports.
func GetDefaultUsers() []UserDefinition {
	return []UserDefinition{
		{Key: "admin", Email: "admin@sitecrew.test", FullName: "Site Administrator", EmployeeNumber: "ADM-001", Department: "Operations", Role: user.RoleAdmin},
		{Key: "foreman-north", Email: "north.foreman@sitecrew.test", FullName: "Rina Hartono", EmployeeNumber: "SUP-001", Department: "Construction", Role: user.RoleSupervisor, SupervisorKey: "admin"},
		{Key: "foreman-south", Email: "south.foreman@sitecrew.test", FullName: "Dimas Prakoso", EmployeeNumber: "SUP-002", Department: "Construction", Role: user.RoleSupervisor, SupervisorKey: "admin"},
		{Key: "laborer-1", Email: "agus@sitecrew.test", FullName: "Agus Salim", EmployeeNumber: "LAB-001", Department: "Construction", Role: user.RoleLaborer, SupervisorKey: "foreman-north"},
		{Key: "laborer-2", Email: "wati@sitecrew.test", FullName: "Wati Lestari", EmployeeNumber: "LAB-002", Department: "Construction", Role: user.RoleLaborer, SupervisorKey: "foreman-north"},
		{Key: "laborer-3", Email: "joko@sitecrew.test", FullName: "Joko Susilo", EmployeeNumber: "LAB-003", Department: "Construction", Role: user.RoleLaborer, SupervisorKey: "foreman-north"},
		{Key: "laborer-4", Email: "sari@sitecrew.test", FullName: "Sari Wulandari", EmployeeNumber: "LAB-004", Department: "Construction", Role: user.RoleLaborer, SupervisorKey: "foreman-south"},
		{Key: "laborer-5", Email: "budi@sitecrew.test", FullName: "Budi Santoso", EmployeeNumber: "LAB-005", Department: "Logistics", Role: user.RoleLaborer, SupervisorKey: "foreman-south"},
	}
}

// ==========================================
// TEAMS
// ==========================================

type TeamDefinition struct {
	LaborerKey   string
	TeamName     string
	SiteLocation string // empty means no site
}

// GetDefaultTeams assigns every demo laborer to a team under their supervisor.
func GetDefaultTeams() []TeamDefinition {
	return []TeamDefinition{
		{LaborerKey: "laborer-1", TeamName: "Concrete", SiteLocation: "North Tower"},
		{LaborerKey: "laborer-2", TeamName: "Concrete", SiteLocation: "North Tower"},
		{LaborerKey: "laborer-3", TeamName: "Scaffolding", SiteLocation: "North Tower"},
		{LaborerKey: "laborer-4", TeamName: "Steel", SiteLocation: "South Yard"},
		{LaborerKey: "laborer-5", TeamName: "Logistics"},
	}
}

// ==========================================
// SEEDING
// ==========================================

// SeedDemoOrganization creates the demo accounts and team assignments. Every
// account gets passwordHash. Accounts that already exist are reused and
// laborers that already have an active assignment are left alone, so seeding
// twice is harmless.
func SeedDemoOrganization(ctx context.Context, users user.UserRepository, teams team.TeamAssignmentRepository, passwordHash string, assignedDate time.Time) (*SeededDataIDs, error) {
	seeded := NewSeededDataIDs()

	for _, def := range GetDefaultUsers() {
		u := user.User{
			Email:          def.Email,
			PasswordHash:   strPtr(passwordHash),
			FullName:       strPtr(def.FullName),
			EmployeeNumber: strPtr(def.EmployeeNumber),
			Department:     strPtr(def.Department),
			Role:           def.Role,
			IsActive:       true,
		}
		if def.SupervisorKey != "" {
			supervisorID, ok := seeded.UserIDs[def.SupervisorKey]
			if !ok {
				return nil, fmt.Errorf("fixture %q references unknown supervisor %q", def.Key, def.SupervisorKey)
			}
			u.SupervisorID = &supervisorID
		}

		created, err := users.Create(ctx, u)
		if errors.Is(err, user.ErrUserEmailExists) {
			created, err = users.GetByEmail(ctx, def.Email)
		}
		if err != nil {
			return nil, fmt.Errorf("failed to seed user %s: %w", def.Email, err)
		}
		seeded.UserIDs[def.Key] = created.ID
	}

	for _, def := range GetDefaultTeams() {
		laborerID := seeded.UserIDs[def.LaborerKey]
		laborer, err := users.GetByID(ctx, laborerID)
		if err != nil {
			return nil, fmt.Errorf("failed to load laborer %s: %w", def.LaborerKey, err)
		}
		if laborer.SupervisorID == nil {
			return nil, fmt.Errorf("laborer %s has no supervisor", def.LaborerKey)
		}

		assignment := team.TeamAssignment{
			SupervisorID: *laborer.SupervisorID,
			LaborerID:    laborerID,
			TeamName:     def.TeamName,
			AssignedDate: assignedDate,
			IsActive:     true,
		}
		if def.SiteLocation != "" {
			assignment.SiteLocation = strPtr(def.SiteLocation)
		}

		created, err := teams.Create(ctx, assignment)
		if database.IsUniqueViolation(err) {
			existing, getErr := teams.GetActiveByLaborer(ctx, laborerID)
			if getErr != nil {
				return nil, fmt.Errorf("failed to load assignment of %s: %w", def.LaborerKey, getErr)
			}
			if existing != nil {
				seeded.AssignmentIDs[def.LaborerKey] = existing.ID
			}
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to seed team assignment for %s: %w", def.LaborerKey, err)
		}
		seeded.AssignmentIDs[def.LaborerKey] = created.ID
	}

	return seeded, nil
}
