package usecase

import (
	"context"
	"strings"
	"time"

	"go-triagem-backend/internal/domain"
	"go-triagem-backend/pkg/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

const bcryptCost = 10

type userUsecase struct {
	userRepo       domain.UserRepository
	candidateRepo  domain.CandidateRepository
	validate       *validator.Validate
	statusOnAssign string
}

func NewUserUsecase(userRepo domain.UserRepository, candidateRepo domain.CandidateRepository, validate *validator.Validate, statusOnAssign string) domain.UserUsecase {
	return &userUsecase{
		userRepo:       userRepo,
		candidateRepo:  candidateRepo,
		validate:       validate,
		statusOnAssign: statusOnAssign,
	}
}

func (u *userUsecase) ListUsers(ctx context.Context) ([]domain.User, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return u.userRepo.ListActive(ctx)
}

func (u *userUsecase) ListAnalysts(ctx context.Context) ([]domain.User, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	return u.userRepo.ListAnalysts(ctx)
}

func (u *userUsecase) CreateUser(ctx context.Context, input domain.CreateUserInput) (*domain.User, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := u.validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcryptCost)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	now := time.Now()
	user := &domain.User{
		ID:           uuid.NewString(),
		Email:        strings.ToLower(strings.TrimSpace(input.Email)),
		Name:         input.Name,
		Role:         input.Role,
		Active:       true,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := u.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (u *userUsecase) UpdateUser(ctx context.Context, id string, input domain.UpdateUserInput) (*domain.User, error) {
	if err := requireAdmin(ctx); err != nil {
		return nil, err
	}
	if err := u.validate.Struct(input); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	user, err := u.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperror.NotFound("User not found")
	}

	if input.Email != nil {
		user.Email = strings.ToLower(strings.TrimSpace(*input.Email))
	}
	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Role != nil {
		user.Role = *input.Role
	}
	user.UpdatedAt = time.Now()

	if err := u.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// DeactivateUser soft-deletes: the row stays for audit and assignment
// references, but the user can no longer sign in or receive work.
func (u *userUsecase) DeactivateUser(ctx context.Context, id string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if id == userIDFrom(ctx) {
		return apperror.BadRequest("You cannot deactivate your own account")
	}
	return u.userRepo.Deactivate(ctx, id)
}

// AssignCandidates bulk-assigns all listed candidates to one analyst in a
// single update. The status applied follows the configured assignment
// policy, the same one the single-candidate path uses.
func (u *userUsecase) AssignCandidates(ctx context.Context, req domain.AssignmentRequest) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	adminID, err := requireAuthenticated(ctx)
	if err != nil {
		return err
	}
	if err := u.validate.Struct(req); err != nil {
		return apperror.BadRequest(err.Error())
	}

	analyst, err := u.userRepo.GetByID(ctx, req.AnalystID)
	if err != nil {
		return err
	}
	if analyst == nil || !analyst.Active {
		return apperror.BadRequest("Analyst not found or inactive")
	}
	if !analyst.IsAnalyst() {
		return apperror.BadRequest("Assignee must have the analista role")
	}

	return u.candidateRepo.BulkAssign(ctx, req.CandidateIDs, req.AnalystID, adminID, u.statusOnAssign)
}

func (u *userUsecase) UnassignCandidates(ctx context.Context, candidateIDs []string) error {
	if err := requireAdmin(ctx); err != nil {
		return err
	}
	if len(candidateIDs) == 0 {
		return apperror.BadRequest("candidate_ids must not be empty")
	}
	return u.candidateRepo.BulkUnassign(ctx, candidateIDs)
}
