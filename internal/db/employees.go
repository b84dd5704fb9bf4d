package db

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/team-composer/internal/types"
)

// GetEmployeeByID retrieves one employee profile with technologies and
// role claims. Returns nil without error when the employee does not exist.
func (db *DB) GetEmployeeByID(ctx context.Context, id uuid.UUID) (*types.EmployeeProfile, error) {
	var employee types.EmployeeProfile
	err := db.pool.QueryRow(ctx,
		`SELECT id, name, area, team_id FROM employees WHERE id = $1`,
		id,
	).Scan(&employee.ID, &employee.Name, &employee.Area, &employee.TeamID)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get employee: %w", err)
	}

	if err := db.loadEmployeeSkills(ctx, &employee); err != nil {
		return nil, err
	}
	return &employee, nil
}

// EmployeeFilter narrows the candidate pool for a ranking call. Zero
// values mean "no constraint" for that dimension. Technologies restricts
// the pool to employees holding at least one of the named technologies.
// A desired role is deliberately not a pool dimension: employees who do
// not claim a role still rank (without the role bonus), they are never
// filtered out.
type EmployeeFilter struct {
	Area         string
	Level        types.ExperienceLevel
	Technologies []string
}

// ListEmployeesMatchingFilter retrieves the employee profiles matching the
// filter, technologies and role claims included, ordered by ID for
// reproducible pools.
func (db *DB) ListEmployeesMatchingFilter(ctx context.Context, filter EmployeeFilter) ([]types.EmployeeProfile, error) {
	query := `SELECT DISTINCT e.id, e.name, e.area, e.team_id FROM employees e`
	args := []any{}
	argNum := 1

	if len(filter.Technologies) > 0 {
		query += ` JOIN employee_technologies et ON et.employee_id = e.id`
	}
	if filter.Level != "" {
		query += ` JOIN employee_roles er ON er.employee_id = e.id`
	}

	query += ` WHERE 1=1`
	if filter.Area != "" {
		query += fmt.Sprintf(" AND e.area = $%d", argNum)
		args = append(args, filter.Area)
		argNum++
	}
	if len(filter.Technologies) > 0 {
		query += fmt.Sprintf(" AND LOWER(et.technology) = ANY($%d)", argNum)
		args = append(args, lowerAll(filter.Technologies))
		argNum++
	}
	if filter.Level != "" {
		query += fmt.Sprintf(" AND er.level = $%d", argNum)
		args = append(args, string(filter.Level))
		argNum++
	}

	query += " ORDER BY e.id ASC"

	rows, err := db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list employees: %w", err)
	}
	defer rows.Close()

	var employees []types.EmployeeProfile
	for rows.Next() {
		var employee types.EmployeeProfile
		if err := rows.Scan(&employee.ID, &employee.Name, &employee.Area, &employee.TeamID); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, employee)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read employees: %w", err)
	}

	for i := range employees {
		if err := db.loadEmployeeSkills(ctx, &employees[i]); err != nil {
			return nil, err
		}
	}
	return employees, nil
}

// loadEmployeeSkills fills the technology and role sets of a profile.
// Technologies keep their stored insertion order.
func (db *DB) loadEmployeeSkills(ctx context.Context, employee *types.EmployeeProfile) error {
	rows, err := db.pool.Query(ctx,
		`SELECT technology, level, years_experience
		 FROM employee_technologies WHERE employee_id = $1
		 ORDER BY position ASC`,
		employee.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to load technologies: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var skill types.TechnologySkill
		if err := rows.Scan(&skill.Technology, &skill.Level, &skill.YearsExperience); err != nil {
			return fmt.Errorf("failed to scan technology: %w", err)
		}
		employee.Technologies = append(employee.Technologies, skill)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read technologies: %w", err)
	}

	roleRows, err := db.pool.Query(ctx,
		`SELECT role, level, years FROM employee_roles WHERE employee_id = $1 ORDER BY role ASC`,
		employee.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to load roles: %w", err)
	}
	defer roleRows.Close()

	for roleRows.Next() {
		var claim types.RoleClaim
		var level string
		if err := roleRows.Scan(&claim.Role, &level, &claim.Years); err != nil {
			return fmt.Errorf("failed to scan role: %w", err)
		}
		claim.Level = types.ExperienceLevel(level)
		employee.Roles = append(employee.Roles, claim)
	}
	if err := roleRows.Err(); err != nil {
		return fmt.Errorf("failed to read roles: %w", err)
	}
	return nil
}

func lowerAll(values []string) []string {
	lowered := make([]string, len(values))
	for i, v := range values {
		lowered[i] = strings.ToLower(v)
	}
	return lowered
}
