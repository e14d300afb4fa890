package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/roster"
	"github.com/riskibarqy/fantasy-wrestling/internal/domain/wrestler"
	qb "github.com/riskibarqy/fantasy-wrestling/internal/platform/querybuilder"
)

// WrestlerRepository enforces the roster preconditions inside transactions
// with row locks, so two concurrent moves against the same wrestler or team
// cannot both succeed.
type WrestlerRepository struct {
	db *sqlx.DB
}

func NewWrestlerRepository(db *sqlx.DB) *WrestlerRepository {
	return &WrestlerRepository{db: db}
}

func (r *WrestlerRepository) List(ctx context.Context) ([]wrestler.Wrestler, error) {
	return r.selectWrestlers(ctx, wrestlerBaseSelectBuilder())
}

func (r *WrestlerRepository) ListAvailable(ctx context.Context) ([]wrestler.Wrestler, error) {
	return r.selectWrestlers(ctx, wrestlerBaseSelectBuilder().Where(qb.IsNull("team_id")))
}

func (r *WrestlerRepository) ListByTeam(ctx context.Context, teamID string) ([]wrestler.Wrestler, error) {
	return r.selectWrestlers(ctx, wrestlerBaseSelectBuilder().Where(qb.Eq("team_id", teamID)))
}

func (r *WrestlerRepository) GetByName(ctx context.Context, name string) (wrestler.Wrestler, bool, error) {
	query, args, err := qb.Select("*").From("wrestlers").
		Where(qb.Expr("LOWER(name) = LOWER(?)", name)).
		ToSQL()
	if err != nil {
		return wrestler.Wrestler{}, false, fmt.Errorf("build get wrestler by name query: %w", err)
	}

	var row wrestlerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return wrestler.Wrestler{}, false, nil
		}
		return wrestler.Wrestler{}, false, fmt.Errorf("get wrestler by name: %w", err)
	}

	return wrestlerFromRow(row), true, nil
}

func (r *WrestlerRepository) AssignToTeam(ctx context.Context, wrestlerID, teamID string, rules roster.Rules) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx assign wrestler: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	row, err := lockWrestlerRow(ctx, tx, wrestlerID)
	if err != nil {
		return err
	}
	if row.TeamID.Valid {
		return roster.ErrAlreadyRostered
	}

	// The team row lock serializes concurrent claims for the same roster, so
	// the count below cannot race past the cap.
	if err := lockTeamRow(ctx, tx, teamID); err != nil {
		return err
	}

	var rosterSize int
	if err := tx.GetContext(ctx, &rosterSize, `SELECT COUNT(1) FROM wrestlers WHERE team_id = $1`, teamID); err != nil {
		return fmt.Errorf("count roster for team %s: %w", teamID, err)
	}
	if !roster.CanAdd(rosterSize, rules) {
		return roster.ErrRosterFull
	}

	query, args, err := qb.Update("wrestlers").
		Set("team_id", teamID).
		Set("is_starter", false).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", wrestlerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build assign wrestler query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("assign wrestler %s to team %s: %w", wrestlerID, teamID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit assign wrestler tx: %w", err)
	}
	return nil
}

func (r *WrestlerRepository) Release(ctx context.Context, wrestlerID, teamID string) error {
	query, args, err := qb.Update("wrestlers").
		SetExpr("team_id", "NULL").
		Set("is_starter", false).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", wrestlerID),
			qb.Eq("team_id", teamID),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build release wrestler query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("release wrestler %s: %w", wrestlerID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("release wrestler %s rows affected: %w", wrestlerID, err)
	}
	if affected == 0 {
		return roster.ErrNotOnTeam
	}

	return nil
}

func (r *WrestlerRepository) SetStarter(ctx context.Context, wrestlerID string, isStarter bool, rules roster.Rules) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx set starter: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	row, err := lockWrestlerRow(ctx, tx, wrestlerID)
	if err != nil {
		return err
	}
	if !row.TeamID.Valid {
		return roster.ErrNotOnTeam
	}

	if isStarter && !row.IsStarter {
		if err := lockTeamRow(ctx, tx, row.TeamID.String); err != nil {
			return err
		}

		var starterCount int
		if err := tx.GetContext(ctx, &starterCount,
			`SELECT COUNT(1) FROM wrestlers WHERE team_id = $1 AND is_starter`, row.TeamID.String); err != nil {
			return fmt.Errorf("count starters for team %s: %w", row.TeamID.String, err)
		}
		if !roster.CanPromote(starterCount, rules) {
			return roster.ErrStarterLimitReached
		}
	}

	query, args, err := qb.Update("wrestlers").
		Set("is_starter", isStarter).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", wrestlerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set starter query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("set starter for wrestler %s: %w", wrestlerID, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit set starter tx: %w", err)
	}
	return nil
}

func (r *WrestlerRepository) SetPoints(ctx context.Context, wrestlerID string, points int) error {
	query, args, err := qb.Update("wrestlers").
		Set("points", points).
		SetExpr("updated_at", "NOW()").
		Where(qb.Eq("id", wrestlerID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build set points query: %w", err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("set points for wrestler %s: %w", wrestlerID, err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set points rows affected: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("wrestler not found: %s", wrestlerID)
	}

	return nil
}

func (r *WrestlerRepository) selectWrestlers(ctx context.Context, builder *qb.SelectBuilder) ([]wrestler.Wrestler, error) {
	query, args, err := builder.ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select wrestlers query: %w", err)
	}

	var rows []wrestlerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select wrestlers: %w", err)
	}

	out := make([]wrestler.Wrestler, 0, len(rows))
	for _, row := range rows {
		out = append(out, wrestlerFromRow(row))
	}
	return out, nil
}

func lockWrestlerRow(ctx context.Context, tx *sqlx.Tx, wrestlerID string) (wrestlerTableModel, error) {
	var row wrestlerTableModel
	err := tx.GetContext(ctx, &row, `SELECT * FROM wrestlers WHERE id = $1 FOR UPDATE`, wrestlerID)
	if err != nil {
		if isNotFound(err) {
			return wrestlerTableModel{}, fmt.Errorf("wrestler not found: %s", wrestlerID)
		}
		return wrestlerTableModel{}, fmt.Errorf("lock wrestler %s: %w", wrestlerID, err)
	}
	return row, nil
}

func lockTeamRow(ctx context.Context, tx *sqlx.Tx, teamID string) error {
	var id string
	if err := tx.GetContext(ctx, &id, `SELECT id FROM teams WHERE id = $1 FOR UPDATE`, teamID); err != nil {
		if isNotFound(err) {
			return fmt.Errorf("team not found: %s", teamID)
		}
		return fmt.Errorf("lock team %s: %w", teamID, err)
	}
	return nil
}

func wrestlerBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("wrestlers").OrderBy("LOWER(name)")
}
