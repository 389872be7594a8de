package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"go-triagem-backend/internal/domain"
	"go-triagem-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

const candidateColumns = `id, registration_number, name, area, status, assigned_to, assigned_by, assigned_at, priority, data, created_at, updated_at`

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

func scanCandidate(row pgx.Row) (*domain.Candidate, error) {
	var c domain.Candidate
	var data []byte
	err := row.Scan(
		&c.ID, &c.RegistrationNumber, &c.Name, &c.Area, &c.Status,
		&c.AssignedTo, &c.AssignedBy, &c.AssignedAt, &c.Priority,
		&data, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(data) > 0 {
		if err := json.Unmarshal(data, &c.Data); err != nil {
			return nil, fmt.Errorf("failed to decode candidate payload: %w", err)
		}
	}
	return &c, nil
}

func collectCandidates(rows pgx.Rows) ([]domain.Candidate, error) {
	defer rows.Close()
	candidates := []domain.Candidate{}
	for rows.Next() {
		c, err := scanCandidate(rows)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, *c)
	}
	return candidates, rows.Err()
}

// buildFilter translates CandidateFilters into a WHERE clause. Payload
// fields are matched through the jsonb column.
func buildFilter(f domain.CandidateFilters) (string, []interface{}) {
	conds := []string{}
	args := []interface{}{}

	add := func(cond string, value interface{}) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Status != "" {
		add("status = $%d", f.Status)
	}
	if f.Area != "" {
		add("area = $%d", f.Area)
	}
	if f.Cargo != "" {
		add("data->>'cargo_pretendido' = $%d", f.Cargo)
	}
	if f.VagaPCD != "" {
		add("data->>'vaga_pcd' = $%d", f.VagaPCD)
	}
	if f.AssignedTo != "" {
		add("assigned_to = $%d", f.AssignedTo)
	}
	if f.Search != "" {
		args = append(args, "%"+f.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			`(name ILIKE $%d OR registration_number ILIKE $%d OR data->>'cpf' ILIKE $%d OR data->>'nome_social' ILIKE $%d OR data->>'cargo_pretendido' ILIKE $%d)`,
			n, n, n, n, n))
	}

	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func (r *candidateRepository) List(ctx context.Context, filters domain.CandidateFilters, page, pageSize int) ([]domain.Candidate, int64, error) {
	where, args := buildFilter(filters)

	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM candidates`+where, args...).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf(
		`SELECT %s FROM candidates%s ORDER BY created_at DESC LIMIT $%d OFFSET $%d`,
		candidateColumns, where, len(args)+1, len(args)+2)
	rows, err := r.db.Query(ctx, query, append(args, pageSize, offset)...)
	if err != nil {
		return nil, 0, err
	}

	candidates, err := collectCandidates(rows)
	if err != nil {
		return nil, 0, err
	}
	return candidates, total, nil
}

// ListUnassigned returns the open queue: higher priority first, then the
// longest-waiting candidates among equal priority.
func (r *candidateRepository) ListUnassigned(ctx context.Context, page, pageSize int) ([]domain.Candidate, int64, error) {
	var total int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM candidates WHERE assigned_to IS NULL`).Scan(&total)
	if err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	query := fmt.Sprintf(
		`SELECT %s FROM candidates WHERE assigned_to IS NULL ORDER BY priority DESC, created_at ASC LIMIT $1 OFFSET $2`,
		candidateColumns)
	rows, err := r.db.Query(ctx, query, pageSize, offset)
	if err != nil {
		return nil, 0, err
	}

	candidates, err := collectCandidates(rows)
	if err != nil {
		return nil, 0, err
	}
	return candidates, total, nil
}

func (r *candidateRepository) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE id = $1`, candidateColumns)
	c, err := scanCandidate(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *candidateRepository) GetByCPF(ctx context.Context, cpf string) (*domain.Candidate, error) {
	query := fmt.Sprintf(`SELECT %s FROM candidates WHERE data->>'cpf' = $1`, candidateColumns)
	c, err := scanCandidate(r.db.QueryRow(ctx, query, cpf))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *candidateRepository) Statistics(ctx context.Context, assignedTo string) (*domain.Statistics, error) {
	where := ""
	args := []interface{}{}
	if assignedTo != "" {
		where = " WHERE assigned_to = $1"
		args = append(args, assignedTo)
	}

	stats := &domain.Statistics{ByArea: map[string]int64{}}

	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE status = 'pendente'),
		       COUNT(*) FILTER (WHERE status = 'em_analise'),
		       COUNT(*) FILTER (WHERE status = 'concluido'),
		       COUNT(*) FILTER (WHERE data->>'vaga_pcd' = 'Sim'),
		       COUNT(*) FILTER (WHERE data->>'vaga_pcd' = 'Não')
		FROM candidates` + where
	err := r.db.QueryRow(ctx, query, args...).Scan(
		&stats.Total, &stats.Pendente, &stats.EmAnalise, &stats.Concluido,
		&stats.PCD, &stats.NaoPCD,
	)
	if err != nil {
		return nil, err
	}

	rows, err := r.db.Query(ctx, `SELECT area, COUNT(*) FROM candidates`+where+` GROUP BY area`, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var area string
		var count int64
		if err := rows.Scan(&area, &count); err != nil {
			return nil, err
		}
		stats.ByArea[area] = count
	}
	return stats, rows.Err()
}

func (r *candidateRepository) Create(ctx context.Context, c *domain.Candidate) error {
	data, err := json.Marshal(c.Data)
	if err != nil {
		return fmt.Errorf("failed to encode candidate payload: %w", err)
	}

	query := `
		INSERT INTO candidates (id, registration_number, name, area, status, assigned_to, assigned_by, assigned_at, priority, data, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING created_at, updated_at`
	return r.db.QueryRow(ctx, query,
		c.ID, c.RegistrationNumber, c.Name, c.Area, c.Status,
		c.AssignedTo, c.AssignedBy, c.AssignedAt, c.Priority, data,
	).Scan(&c.CreatedAt, &c.UpdatedAt)
}

func (r *candidateRepository) Update(ctx context.Context, id string, upd domain.CandidateUpdate) error {
	sets := []string{}
	args := []interface{}{id}

	set := func(col string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.RegistrationNumber != nil {
		set("registration_number", *upd.RegistrationNumber)
	}
	if upd.Name != nil {
		set("name", *upd.Name)
	}
	if upd.Area != nil {
		set("area", *upd.Area)
	}
	if upd.Status != nil {
		set("status", *upd.Status)
	}
	if upd.Priority != nil {
		set("priority", *upd.Priority)
	}
	if upd.Data != nil {
		data, err := json.Marshal(upd.Data)
		if err != nil {
			return fmt.Errorf("failed to encode candidate payload: %w", err)
		}
		set("data", data)
	}

	// updated_at refreshes even when only payload fields changed
	sets = append(sets, "updated_at = NOW()")

	query := fmt.Sprintf(`UPDATE candidates SET %s WHERE id = $1`, strings.Join(sets, ", "))
	tag, err := r.db.Exec(ctx, query, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Candidate not found")
	}
	return nil
}

// UpdateStatus sets the triage status; notes, when given, are merged into
// the payload without clobbering its other keys.
func (r *candidateRepository) UpdateStatus(ctx context.Context, id, status string, notes *string) error {
	var tagQuery string
	var args []interface{}
	if notes != nil {
		tagQuery = `UPDATE candidates SET status = $2, data = data || jsonb_build_object('notes', $3::text), updated_at = NOW() WHERE id = $1`
		args = []interface{}{id, status, *notes}
	} else {
		tagQuery = `UPDATE candidates SET status = $2, updated_at = NOW() WHERE id = $1`
		args = []interface{}{id, status}
	}

	tag, err := r.db.Exec(ctx, tagQuery, args...)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Candidate not found")
	}
	return nil
}

// Assign sets all assignment fields and the triage status in one update.
func (r *candidateRepository) Assign(ctx context.Context, id, analystID, adminID, status string) error {
	query := `
		UPDATE candidates
		SET assigned_to = $2, assigned_by = $3, assigned_at = NOW(), status = $4, updated_at = NOW()
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id, analystID, adminID, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Candidate not found")
	}
	return nil
}

func (r *candidateRepository) Unassign(ctx context.Context, id string) error {
	query := `
		UPDATE candidates
		SET assigned_to = NULL, assigned_by = NULL, assigned_at = NULL, status = 'pendente', updated_at = NOW()
		WHERE id = $1`
	tag, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Candidate not found")
	}
	return nil
}

func (r *candidateRepository) BulkAssign(ctx context.Context, ids []string, analystID, adminID, status string) error {
	query := `
		UPDATE candidates
		SET assigned_to = $1, assigned_by = $2, assigned_at = NOW(), status = $3, updated_at = NOW()
		WHERE id = ANY($4)`
	_, err := r.db.Exec(ctx, query, analystID, adminID, status, pq.Array(ids))
	return err
}

func (r *candidateRepository) BulkUnassign(ctx context.Context, ids []string) error {
	query := `
		UPDATE candidates
		SET assigned_to = NULL, assigned_by = NULL, assigned_at = NULL, status = 'pendente', updated_at = NOW()
		WHERE id = ANY($1)`
	_, err := r.db.Exec(ctx, query, pq.Array(ids))
	return err
}

func (r *candidateRepository) Delete(ctx context.Context, id string) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM candidates WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return apperror.NotFound("Candidate not found")
	}
	return nil
}

func (r *candidateRepository) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	pattern := "%" + query + "%"
	sqlQuery := fmt.Sprintf(`
		SELECT %s FROM candidates
		WHERE name ILIKE $1
		   OR registration_number ILIKE $1
		   OR data->>'cpf' ILIKE $1
		   OR data->>'nome_social' ILIKE $1
		   OR data->>'cargo_pretendido' ILIKE $1
		ORDER BY name
		LIMIT $2`, candidateColumns)
	rows, err := r.db.Query(ctx, sqlQuery, pattern, limit)
	if err != nil {
		return nil, err
	}
	return collectCandidates(rows)
}

func (r *candidateRepository) DistinctAreas(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, `SELECT DISTINCT area FROM candidates WHERE TRIM(area) <> '' ORDER BY area`)
}

func (r *candidateRepository) DistinctCargos(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, `SELECT DISTINCT data->>'cargo_pretendido' AS cargo FROM candidates WHERE TRIM(COALESCE(data->>'cargo_pretendido', '')) <> '' ORDER BY cargo`)
}

func (r *candidateRepository) DistinctVagaPCD(ctx context.Context) ([]string, error) {
	return r.distinct(ctx, `SELECT DISTINCT data->>'vaga_pcd' AS vaga FROM candidates WHERE TRIM(COALESCE(data->>'vaga_pcd', '')) <> '' ORDER BY vaga`)
}

func (r *candidateRepository) distinct(ctx context.Context, query string) ([]string, error) {
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	values := []string{}
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
