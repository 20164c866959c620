package postgresql

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/sitecrew/workforce-backend/internal/domain/team"
	"github.com/sitecrew/workforce-backend/internal/pkg/database"
	"github.com/sitecrew/workforce-backend/internal/pkg/validator"
)

type teamAssignmentRepositoryImpl struct {
	db *database.DB
}

func NewTeamAssignmentRepository(db *database.DB) team.TeamAssignmentRepository {
	return &teamAssignmentRepositoryImpl{db: db}
}

const teamAssignmentColumns = `id, supervisor_id, laborer_id, team_name, site_location,
		assigned_date, is_active, created_at, updated_at`

func scanTeamAssignment(row pgx.Row) (team.TeamAssignment, error) {
	var ta team.TeamAssignment
	err := row.Scan(
		&ta.ID, &ta.SupervisorID, &ta.LaborerID, &ta.TeamName, &ta.SiteLocation,
		&ta.AssignedDate, &ta.IsActive, &ta.CreatedAt, &ta.UpdatedAt,
	)
	return ta, err
}

// Create implements team.TeamAssignmentRepository.
func (r *teamAssignmentRepositoryImpl) Create(ctx context.Context, assignment team.TeamAssignment) (team.TeamAssignment, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		INSERT INTO team_assignments (
			supervisor_id, laborer_id, team_name, site_location, assigned_date, is_active
		) VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + teamAssignmentColumns

	created, err := scanTeamAssignment(q.QueryRow(ctx, query,
		assignment.SupervisorID,
		assignment.LaborerID,
		assignment.TeamName,
		assignment.SiteLocation,
		assignment.AssignedDate,
		assignment.IsActive,
	))
	if err != nil {
		return team.TeamAssignment{}, fmt.Errorf("failed to create team assignment: %w", err)
	}
	return created, nil
}

// GetByID implements team.TeamAssignmentRepository.
func (r *teamAssignmentRepositoryImpl) GetByID(ctx context.Context, id string) (team.TeamAssignment, error) {
	q := database.GetQuerier(ctx, r.db)

	ta, err := scanTeamAssignment(q.QueryRow(ctx, `SELECT `+teamAssignmentColumns+` FROM team_assignments WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return team.TeamAssignment{}, team.ErrTeamAssignmentNotFound
		}
		return team.TeamAssignment{}, fmt.Errorf("failed to get team assignment: %w", err)
	}
	return ta, nil
}

// GetActiveByLaborer implements team.TeamAssignmentRepository.
func (r *teamAssignmentRepositoryImpl) GetActiveByLaborer(ctx context.Context, laborerID string) (*team.TeamAssignment, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `SELECT ` + teamAssignmentColumns + ` FROM team_assignments WHERE laborer_id = $1 AND is_active LIMIT 1`

	ta, err := scanTeamAssignment(q.QueryRow(ctx, query, laborerID))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get active team assignment: %w", err)
	}
	return &ta, nil
}

// Update implements team.TeamAssignmentRepository.
func (r *teamAssignmentRepositoryImpl) Update(ctx context.Context, assignment team.TeamAssignment) (team.TeamAssignment, error) {
	q := database.GetQuerier(ctx, r.db)

	query := `
		UPDATE team_assignments
		SET team_name = $1, site_location = $2, is_active = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING ` + teamAssignmentColumns

	updated, err := scanTeamAssignment(q.QueryRow(ctx, query,
		assignment.TeamName, assignment.SiteLocation, assignment.IsActive, assignment.ID,
	))
	if err != nil {
		if isNoRows(err) {
			return team.TeamAssignment{}, team.ErrTeamAssignmentNotFound
		}
		return team.TeamAssignment{}, fmt.Errorf("failed to update team assignment: %w", err)
	}
	return updated, nil
}

// List implements team.TeamAssignmentRepository.
func (r *teamAssignmentRepositoryImpl) List(ctx context.Context, filter team.MemberFilter) ([]team.TeamAssignment, error) {
	for _, id := range []*string{filter.SupervisorID, filter.LaborerID} {
		if id != nil && !validator.IsValidUUID(*id) {
			return []team.TeamAssignment{}, nil
		}
	}
	q := database.GetQuerier(ctx, r.db)

	baseWhere := "TRUE"
	args := []interface{}{}

	if !filter.IncludeInactive {
		baseWhere += " AND is_active"
	}
	if filter.SupervisorID != nil {
		args = append(args, *filter.SupervisorID)
		baseWhere += fmt.Sprintf(" AND supervisor_id = $%d", len(args))
	}
	if filter.LaborerID != nil {
		args = append(args, *filter.LaborerID)
		baseWhere += fmt.Sprintf(" AND laborer_id = $%d", len(args))
	}
	if filter.TeamName != nil {
		args = append(args, *filter.TeamName)
		baseWhere += fmt.Sprintf(" AND team_name = $%d", len(args))
	}
	if filter.SiteLocation != nil {
		args = append(args, *filter.SiteLocation)
		baseWhere += fmt.Sprintf(" AND site_location = $%d", len(args))
	}

	query := `SELECT ` + teamAssignmentColumns + ` FROM team_assignments WHERE ` + baseWhere +
		` ORDER BY assigned_date ASC, created_at ASC, id ASC`

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list team assignments: %w", err)
	}
	defer rows.Close()

	assignments := []team.TeamAssignment{}
	for rows.Next() {
		ta, err := scanTeamAssignment(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team assignment: %w", err)
		}
		assignments = append(assignments, ta)
	}
	return assignments, rows.Err()
}
