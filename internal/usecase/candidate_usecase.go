package usecase

import (
	"context"
	"fmt"
	"math"
	"strings"

	"go-triagem-backend/internal/domain"
	"go-triagem-backend/internal/legacy"
	"go-triagem-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	defaultPageSize = 50
	maxPageSize     = 200
)

type candidateUsecase struct {
	repo           domain.CandidateRepository
	userRepo       domain.UserRepository
	validate       *validator.Validate
	statusOnAssign string
}

func NewCandidateUsecase(repo domain.CandidateRepository, userRepo domain.UserRepository, validate *validator.Validate, statusOnAssign string) domain.CandidateUsecase {
	return &candidateUsecase{
		repo:           repo,
		userRepo:       userRepo,
		validate:       validate,
		statusOnAssign: statusOnAssign,
	}
}

func clampPaging(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = defaultPageSize
	}
	return page, pageSize
}

func paginate[T any](data []T, total int64, page, pageSize int) *domain.PaginatedResult[T] {
	return &domain.PaginatedResult[T]{
		Data:       data,
		Count:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: int(math.Ceil(float64(total) / float64(pageSize))),
	}
}

// scopeToAnalyst restricts listings to the caller's own queue. Admins see
// everything; analysts only candidates assigned to them, unless an explicit
// assignee filter was requested.
func (u *candidateUsecase) scopeToAnalyst(ctx context.Context, filters *domain.CandidateFilters) {
	if roleFrom(ctx) == domain.RoleAnalista && filters.AssignedTo == "" {
		filters.AssignedTo = userIDFrom(ctx)
	}
}

func (u *candidateUsecase) List(ctx context.Context, page, pageSize int, filters domain.CandidateFilters) (*domain.PaginatedResult[domain.Candidate], error) {
	if _, err := requireAuthenticated(ctx); err != nil {
		return nil, err
	}
	page, pageSize = clampPaging(page, pageSize)
	u.scopeToAnalyst(ctx, &filters)

	candidates, total, err := u.repo.List(ctx, filters, page, pageSize)
	if err != nil {
		return nil, err
	}
	return paginate(candidates, total, page, pageSize), nil
}

func (u *candidateUsecase) ListUnassigned(ctx context.Context, page, pageSize int) (*domain.PaginatedResult[domain.Candidate], error) {
	if _, err := requireAuthenticated(ctx); err != nil {
		return nil, err
	}
	page, pageSize = clampPaging(page, pageSize)

	candidates, total, err := u.repo.ListUnassigned(ctx, page, pageSize)
	if err != nil {
		return nil, err
	}
	return paginate(candidates, total, page, pageSize), nil
}

func (u *candidateUsecase) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	c, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.NotFound("Candidate not found")
	}
	return c, nil
}

func (u *candidateUsecase) GetByCPF(ctx context.Context, cpf string) (*domain.Candidate, error) {
	c, err := u.repo.GetByCPF(ctx, cpf)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, apperror.NotFound("Candidate not found")
	}
	return c, nil
}

func (u *candidateUsecase) Statistics(ctx context.Context) (*domain.Statistics, error) {
	if _, err := requireAuthenticated(ctx); err != nil {
		return nil, err
	}

	assignedTo := ""
	if roleFrom(ctx) == domain.RoleAnalista {
		assignedTo = userIDFrom(ctx)
	}
	return u.repo.Statistics(ctx, assignedTo)
}

func (u *candidateUsecase) Create(ctx context.Context, c *domain.Candidate) (*domain.Candidate, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}

	if c.Status == "" {
		c.Status = domain.StatusPendente
	}
	if err := u.validate.Struct(c); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	c.ID = uuid.NewString()
	c.AssignedTo = nil
	c.AssignedBy = nil
	c.AssignedAt = nil

	if err := u.repo.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

func (u *candidateUsecase) Update(ctx context.Context, id string, upd domain.CandidateUpdate) (*domain.Candidate, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if upd.IsEmpty() {
		return nil, apperror.BadRequest("No fields to update")
	}
	if err := u.validate.Struct(upd); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	if err := u.repo.Update(ctx, id, upd); err != nil {
		return nil, err
	}

	updated, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, apperror.NotFound("Candidate not found after update")
	}
	return updated, nil
}

func (u *candidateUsecase) UpdateStatus(ctx context.Context, id, status string, notes *string) error {
	if _, err := requireAuthenticated(ctx); err != nil {
		return err
	}
	if !domain.ValidStatus(status) {
		return apperror.BadRequest("Status must be 'pendente', 'em_analise' or 'concluido'")
	}
	return u.repo.UpdateStatus(ctx, id, status, notes)
}

// Assign hands the candidate to an analyst. The acting admin is recorded as
// assigned_by and the status transitions per the configured policy.
func (u *candidateUsecase) Assign(ctx context.Context, id, analystID string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	adminID, err := requireAuthenticated(ctx)
	if err != nil {
		return err
	}
	if err := u.checkAnalyst(ctx, analystID); err != nil {
		return err
	}
	return u.repo.Assign(ctx, id, analystID, adminID, u.statusOnAssign)
}

func (u *candidateUsecase) Unassign(ctx context.Context, id string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	return u.repo.Unassign(ctx, id)
}

func (u *candidateUsecase) Delete(ctx context.Context, id string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	return u.repo.Delete(ctx, id)
}

func (u *candidateUsecase) Search(ctx context.Context, query string) ([]domain.Candidate, error) {
	if _, err := requireAuthenticated(ctx); err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return []domain.Candidate{}, nil
	}
	return u.repo.Search(ctx, query, domain.SearchResultLimit)
}

func (u *candidateUsecase) Areas(ctx context.Context) ([]string, error) {
	return u.repo.DistinctAreas(ctx)
}

func (u *candidateUsecase) Cargos(ctx context.Context) ([]string, error) {
	return u.repo.DistinctCargos(ctx)
}

func (u *candidateUsecase) VagaPCDOptions(ctx context.Context) ([]string, error) {
	return u.repo.DistinctVagaPCD(ctx)
}

// Import normalizes rows from any historical schema and creates them as
// fresh candidates. The first bad row aborts the batch; the count of rows
// imported before the failure is returned alongside the error.
func (u *candidateUsecase) Import(ctx context.Context, rows [][]byte) (int, error) {
	if err := requireAdmin(ctx); err != nil {
		return 0, err
	}

	imported := 0
	for i, raw := range rows {
		c, err := legacy.Normalize(raw)
		if err != nil {
			return imported, apperror.BadRequest(fmt.Sprintf("row %d: %s", i+1, err.Error()))
		}

		if c.Status == "" {
			c.Status = domain.StatusPendente
		}
		if err := u.validate.Struct(c); err != nil {
			return imported, apperror.BadRequest(err.Error())
		}

		c.ID = uuid.NewString()
		if err := u.repo.Create(ctx, c); err != nil {
			return imported, err
		}
		imported++
	}
	return imported, nil
}

func (u *candidateUsecase) checkAnalyst(ctx context.Context, analystID string) error {
	analyst, err := u.userRepo.GetByID(ctx, analystID)
	if err != nil {
		return err
	}
	if analyst == nil || !analyst.Active {
		return apperror.BadRequest("Analyst not found or inactive")
	}
	if !analyst.IsAnalyst() {
		return apperror.BadRequest("Assignee must have the analista role")
	}
	return nil
}
