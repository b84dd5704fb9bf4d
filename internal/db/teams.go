package db

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/team-composer/internal/types"
)

// GetTeamByID retrieves one team with its requirement set and current
// member IDs. Returns nil without error when the team does not exist.
func (db *DB) GetTeamByID(ctx context.Context, id uuid.UUID) (*types.Team, error) {
	var team types.Team
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, area, leader_id FROM teams WHERE id = $1`,
		id,
	).Scan(&team.ID, &team.Name, &team.Area, &team.LeaderID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT technology, minimum_level
		 FROM team_required_technologies WHERE team_id = $1
		 ORDER BY position ASC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load team requirements: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var req types.RequiredTechnology
		if err := rows.Scan(&req.Technology, &req.MinimumLevel); err != nil {
			return nil, fmt.Errorf("failed to scan requirement: %w", err)
		}
		team.Requirements = append(team.Requirements, req)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read requirements: %w", err)
	}

	memberRows, err := db.pool.Query(ctx,
		`SELECT id FROM employees WHERE team_id = $1 ORDER BY id ASC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load team members: %w", err)
	}
	defer memberRows.Close()

	for memberRows.Next() {
		var memberID uuid.UUID
		if err := memberRows.Scan(&memberID); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		team.MemberIDs = append(team.MemberIDs, memberID)
	}
	if err := memberRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read members: %w", err)
	}

	return &team, nil
}

// GetTeamView retrieves the member-resolved view of a team for API
// responses. Returns nil without error when the team does not exist.
func (db *DB) GetTeamView(ctx context.Context, id uuid.UUID) (*types.TeamView, error) {
	var view types.TeamView
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, area, leader_id FROM teams WHERE id = $1`,
		id,
	).Scan(&view.ID, &view.Name, &view.Area, &view.LeaderID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get team: %w", err)
	}

	rows, err := db.pool.Query(ctx,
		`SELECT id, name, area FROM employees WHERE team_id = $1 ORDER BY id ASC`,
		id,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load team members: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var member types.MemberSummary
		if err := rows.Scan(&member.ID, &member.Name, &member.Area); err != nil {
			return nil, fmt.Errorf("failed to scan member: %w", err)
		}
		view.Members = append(view.Members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read members: %w", err)
	}

	return &view, nil
}
