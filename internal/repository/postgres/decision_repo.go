package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"

	"expertap/internal/domain"
	"expertap/internal/port"
)

const uniqueViolation = "23505"

// decisionListColumns leaves out full_text, which listings never return.
const decisionListColumns = `id, external_id, filename, title, bulletin_year, bulletin_number,
	decision_number, panel, decision_date, contest_type, criticism_codes, cpv_code, cpv_source,
	filename_outcome, ruling, rejection_reason, contestant, authority, intervenors, article_refs,
	parse_warnings, content_hash, storage_key, created_at, updated_at`

const insertDecisionQuery = `INSERT INTO decisions (
	id, external_id, filename, title, bulletin_year, bulletin_number,
	decision_number, panel, decision_date, contest_type, criticism_codes, cpv_code, cpv_source,
	filename_outcome, ruling, rejection_reason, contestant, authority, intervenors, article_refs,
	parse_warnings, full_text, content_hash, storage_key, created_at, updated_at
) VALUES (
	:id, :external_id, :filename, :title, :bulletin_year, :bulletin_number,
	:decision_number, :panel, :decision_date, :contest_type, :criticism_codes, :cpv_code, :cpv_source,
	:filename_outcome, :ruling, :rejection_reason, :contestant, :authority, :intervenors, :article_refs,
	:parse_warnings, :full_text, :content_hash, :storage_key, :created_at, :updated_at
)`

const updateDecisionQuery = `UPDATE decisions SET
	external_id = :external_id, title = :title,
	bulletin_year = :bulletin_year, bulletin_number = :bulletin_number,
	decision_number = :decision_number, panel = :panel, decision_date = :decision_date,
	contest_type = :contest_type, criticism_codes = :criticism_codes,
	cpv_code = :cpv_code, cpv_source = :cpv_source, filename_outcome = :filename_outcome,
	ruling = :ruling, rejection_reason = :rejection_reason,
	contestant = :contestant, authority = :authority, intervenors = :intervenors,
	article_refs = :article_refs, parse_warnings = :parse_warnings,
	full_text = :full_text, content_hash = :content_hash, updated_at = :updated_at
WHERE id = :id`

const insertSectionQuery = `INSERT INTO decision_sections (
	id, decision_id, kind, ordinal, start_offset, end_offset, marker, intervenor_number, text
) VALUES (
	:id, :decision_id, :kind, :ordinal, :start_offset, :end_offset, :marker, :intervenor_number, :text
)`

type decisionRepo struct {
	db *sqlx.DB
}

// NewDecisionRepo creates a new PostgreSQL-backed DecisionRepository.
func NewDecisionRepo(db *sqlx.DB) port.DecisionRepository {
	return &decisionRepo{db: db}
}

func (r *decisionRepo) Create(ctx context.Context, decision *domain.Decision, sections []domain.DecisionSection) error {
	now := time.Now().UTC()
	decision.CreatedAt = now
	decision.UpdatedAt = now

	return r.inTx(ctx, "decisionRepo.Create", func(tx *sqlx.Tx) error {
		if _, err := tx.NamedExecContext(ctx, insertDecisionQuery, decision); err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDecisionAlreadyExists
			}
			return err
		}
		return insertSections(ctx, tx, decision.ID, sections)
	})
}

func (r *decisionRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Decision, error) {
	var d domain.Decision
	err := r.db.GetContext(ctx, &d, "SELECT * FROM decisions WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDecisionNotFound
		}
		return nil, fmt.Errorf("decisionRepo.GetByID: %w", err)
	}
	return &d, nil
}

func (r *decisionRepo) GetByFilename(ctx context.Context, filename string) (*domain.Decision, error) {
	var d domain.Decision
	err := r.db.GetContext(ctx, &d, "SELECT * FROM decisions WHERE filename = $1", filename)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrDecisionNotFound
		}
		return nil, fmt.Errorf("decisionRepo.GetByFilename: %w", err)
	}
	return &d, nil
}

func (r *decisionRepo) ExistsByFilename(ctx context.Context, filename string) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists,
		"SELECT EXISTS (SELECT 1 FROM decisions WHERE filename = $1)", filename)
	if err != nil {
		return false, fmt.Errorf("decisionRepo.ExistsByFilename: %w", err)
	}
	return exists, nil
}

func (r *decisionRepo) ListSections(ctx context.Context, decisionID uuid.UUID) ([]domain.DecisionSection, error) {
	var sections []domain.DecisionSection
	err := r.db.SelectContext(ctx, &sections,
		"SELECT * FROM decision_sections WHERE decision_id = $1 ORDER BY ordinal", decisionID)
	if err != nil {
		return nil, fmt.Errorf("decisionRepo.ListSections: %w", err)
	}
	return sections, nil
}

func (r *decisionRepo) List(ctx context.Context, filter domain.DecisionFilter, offset, limit int) ([]domain.Decision, int, error) {
	where, args := buildDecisionFilter(filter)

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM decisions"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("decisionRepo.List count: %w", err)
	}

	query := fmt.Sprintf(`SELECT %s FROM decisions%s
		ORDER BY bulletin_year DESC, bulletin_number DESC, created_at DESC LIMIT $%d OFFSET $%d`,
		decisionListColumns, where, len(args)+1, len(args)+2)
	args = append(args, limit, offset)

	var decisions []domain.Decision
	if err := r.db.SelectContext(ctx, &decisions, query, args...); err != nil {
		return nil, 0, fmt.Errorf("decisionRepo.List: %w", err)
	}
	return decisions, total, nil
}

func (r *decisionRepo) ListIDs(ctx context.Context, afterID uuid.UUID, limit int) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	err := r.db.SelectContext(ctx, &ids,
		"SELECT id FROM decisions WHERE id > $1 ORDER BY id LIMIT $2", afterID, limit)
	if err != nil {
		return nil, fmt.Errorf("decisionRepo.ListIDs: %w", err)
	}
	return ids, nil
}

func (r *decisionRepo) Replace(ctx context.Context, decision *domain.Decision, sections []domain.DecisionSection) error {
	decision.UpdatedAt = time.Now().UTC()

	return r.inTx(ctx, "decisionRepo.Replace", func(tx *sqlx.Tx) error {
		result, err := tx.NamedExecContext(ctx, updateDecisionQuery, decision)
		if err != nil {
			if isUniqueViolation(err) {
				return domain.ErrDecisionAlreadyExists
			}
			return err
		}
		rows, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrDecisionNotFound
		}
		if _, err := tx.ExecContext(ctx, "DELETE FROM decision_sections WHERE decision_id = $1", decision.ID); err != nil {
			return err
		}
		return insertSections(ctx, tx, decision.ID, sections)
	})
}

func (r *decisionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM decisions WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("decisionRepo.Delete: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("decisionRepo.Delete rows affected: %w", err)
	}
	if rows == 0 {
		return domain.ErrDecisionNotFound
	}
	return nil
}

type countRow struct {
	Key   string `db:"key"`
	Count int    `db:"count"`
}

func (r *decisionRepo) Stats(ctx context.Context) (*domain.DecisionStats, error) {
	stats := &domain.DecisionStats{
		ByRuling:        map[string]int{},
		ByYear:          map[int]int{},
		ByCriticismCode: map[string]int{},
	}

	var totals struct {
		Total       int        `db:"total"`
		LastUpdated *time.Time `db:"last_updated"`
	}
	if err := r.db.GetContext(ctx, &totals,
		"SELECT COUNT(*) AS total, MAX(updated_at) AS last_updated FROM decisions"); err != nil {
		return nil, fmt.Errorf("decisionRepo.Stats totals: %w", err)
	}
	stats.Total = totals.Total
	stats.LastUpdated = totals.LastUpdated

	var rulings []countRow
	if err := r.db.SelectContext(ctx, &rulings,
		`SELECT COALESCE(NULLIF(ruling, ''), 'UNKNOWN') AS key, COUNT(*) AS count
		 FROM decisions GROUP BY 1`); err != nil {
		return nil, fmt.Errorf("decisionRepo.Stats rulings: %w", err)
	}
	for _, row := range rulings {
		stats.ByRuling[row.Key] += row.Count
	}

	var years []struct {
		Year  int `db:"year"`
		Count int `db:"count"`
	}
	if err := r.db.SelectContext(ctx, &years,
		`SELECT bulletin_year AS year, COUNT(*) AS count
		 FROM decisions WHERE bulletin_year > 0 GROUP BY bulletin_year`); err != nil {
		return nil, fmt.Errorf("decisionRepo.Stats years: %w", err)
	}
	for _, row := range years {
		stats.ByYear[row.Year] = row.Count
	}

	var codes []countRow
	if err := r.db.SelectContext(ctx, &codes,
		`SELECT code AS key, COUNT(*) AS count
		 FROM decisions, unnest(criticism_codes) AS code GROUP BY code`); err != nil {
		return nil, fmt.Errorf("decisionRepo.Stats codes: %w", err)
	}
	for _, row := range codes {
		stats.ByCriticismCode[row.Key] = row.Count
	}

	return stats, nil
}

func (r *decisionRepo) inTx(ctx context.Context, op string, fn func(tx *sqlx.Tx) error) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%s begin: %w", op, err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		if errors.Is(err, domain.ErrDecisionAlreadyExists) || errors.Is(err, domain.ErrDecisionNotFound) {
			return err
		}
		return fmt.Errorf("%s: %w", op, err)
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%s commit: %w", op, err)
	}
	return nil
}

func insertSections(ctx context.Context, tx *sqlx.Tx, decisionID uuid.UUID, sections []domain.DecisionSection) error {
	for i := range sections {
		sections[i].DecisionID = decisionID
		if sections[i].ID == uuid.Nil {
			sections[i].ID = uuid.New()
		}
		if _, err := tx.NamedExecContext(ctx, insertSectionQuery, &sections[i]); err != nil {
			return fmt.Errorf("inserting section %d: %w", sections[i].Ordinal, err)
		}
	}
	return nil
}

// buildDecisionFilter renders the WHERE clause for f with positional arguments.
func buildDecisionFilter(f domain.DecisionFilter) (string, []interface{}) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if f.Ruling != "" {
		add("ruling = $%d", f.Ruling)
	}
	if f.ContestType != "" {
		add("contest_type = $%d", f.ContestType)
	}
	if f.CriticismCode != "" {
		add("$%d = ANY(criticism_codes)", strings.ToUpper(f.CriticismCode))
	}
	if f.Year > 0 {
		add("bulletin_year = $%d", f.Year)
	}
	if f.Article != "" {
		add("article_refs @> $%d::jsonb", articleContainment(f.Article))
	}
	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// articleContainment renders the JSONB value matched by "article_refs @>".
func articleContainment(article string) string {
	b, _ := json.Marshal([]map[string]string{{"article": article}})
	return string(b)
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}
	return strings.Contains(err.Error(), "duplicate key")
}
