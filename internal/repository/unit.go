package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// UnitRepository reads the local replica of the project/unit catalog. The
// catalog itself is owned by an external system; this table only answers
// whether a project/unit pair is valid.
type UnitRepository struct {
	pool *pgxpool.Pool
}

// NewUnitRepository creates a new UnitRepository.
func NewUnitRepository(pool *pgxpool.Pool) *UnitRepository {
	return &UnitRepository{pool: pool}
}

// Exists reports whether the unit belongs to the project.
func (r *UnitRepository) Exists(ctx context.Context, projectID, unitID string) (bool, error) {
	query, args, err := psql.
		Select("1").
		From("project_units").
		Where(sq.Eq{"project_id": projectID, "unit_id": unitID}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("build Exists query: %w", err)
	}

	var one int
	err = r.pool.QueryRow(ctx, query, args...).Scan(&one)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("query project unit: %w", err)
	}

	return true, nil
}

// Upsert inserts or refreshes a project/unit pair. Used by the demo seeder.
func (r *UnitRepository) Upsert(ctx context.Context, projectID, unitID, label string) error {
	query, args, err := psql.
		Insert("project_units").
		Columns("project_id", "unit_id", "label").
		Values(projectID, unitID, label).
		Suffix("ON CONFLICT (project_id, unit_id) DO UPDATE SET label = EXCLUDED.label").
		ToSql()
	if err != nil {
		return fmt.Errorf("build Upsert query: %w", err)
	}

	if _, err := r.pool.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert project unit: %w", err)
	}

	return nil
}
