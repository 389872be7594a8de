package usecase_test

import (
	"context"
	"testing"
	"time"

	"go-triagem-backend/internal/domain"
	"go-triagem-backend/internal/usecase"
	"go-triagem-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// Mock Repositories

type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) List(ctx context.Context, filters domain.CandidateFilters, page, pageSize int) ([]domain.Candidate, int64, error) {
	args := m.Called(ctx, filters, page, pageSize)
	return args.Get(0).([]domain.Candidate), args.Get(1).(int64), args.Error(2)
}

func (m *MockCandidateRepo) ListUnassigned(ctx context.Context, page, pageSize int) ([]domain.Candidate, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]domain.Candidate), args.Get(1).(int64), args.Error(2)
}

func (m *MockCandidateRepo) GetByID(ctx context.Context, id string) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) GetByCPF(ctx context.Context, cpf string) (*domain.Candidate, error) {
	args := m.Called(ctx, cpf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) Statistics(ctx context.Context, assignedTo string) (*domain.Statistics, error) {
	args := m.Called(ctx, assignedTo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Statistics), args.Error(1)
}

func (m *MockCandidateRepo) Create(ctx context.Context, c *domain.Candidate) error {
	return m.Called(ctx, c).Error(0)
}

func (m *MockCandidateRepo) Update(ctx context.Context, id string, upd domain.CandidateUpdate) error {
	return m.Called(ctx, id, upd).Error(0)
}

func (m *MockCandidateRepo) UpdateStatus(ctx context.Context, id, status string, notes *string) error {
	return m.Called(ctx, id, status, notes).Error(0)
}

func (m *MockCandidateRepo) Assign(ctx context.Context, id, analystID, adminID, status string) error {
	return m.Called(ctx, id, analystID, adminID, status).Error(0)
}

func (m *MockCandidateRepo) Unassign(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCandidateRepo) BulkAssign(ctx context.Context, ids []string, analystID, adminID, status string) error {
	return m.Called(ctx, ids, analystID, adminID, status).Error(0)
}

func (m *MockCandidateRepo) BulkUnassign(ctx context.Context, ids []string) error {
	return m.Called(ctx, ids).Error(0)
}

func (m *MockCandidateRepo) Delete(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockCandidateRepo) Search(ctx context.Context, query string, limit int) ([]domain.Candidate, error) {
	args := m.Called(ctx, query, limit)
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) DistinctAreas(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCandidateRepo) DistinctCargos(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockCandidateRepo) DistinctVagaPCD(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

type MockUserRepo struct {
	mock.Mock
}

func (m *MockUserRepo) Create(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepo) Update(ctx context.Context, user *domain.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepo) Deactivate(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockUserRepo) ListActive(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

func (m *MockUserRepo) ListAnalysts(ctx context.Context) ([]domain.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]domain.User), args.Error(1)
}

// Helpers

func newValidator() *validator.Validate {
	v := validator.New()
	validation.RegisterValidators(v)
	return v
}

func adminCtx(id string) context.Context {
	ctx := context.WithValue(context.Background(), domain.KeyUserID, id)
	return context.WithValue(ctx, domain.KeyUserRole, domain.RoleAdmin)
}

func analystCtx(id string) context.Context {
	ctx := context.WithValue(context.Background(), domain.KeyUserID, id)
	return context.WithValue(ctx, domain.KeyUserRole, domain.RoleAnalista)
}

func activeAnalyst(id string) *domain.User {
	return &domain.User{ID: id, Email: id + "@example.com", Name: "Analyst", Role: domain.RoleAnalista, Active: true}
}

// Candidate listing

func TestListPagination(t *testing.T) {
	mockRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(mockRepo, new(MockUserRepo), newValidator(), domain.StatusEmAnalise)

	t.Run("Clamps invalid paging and computes totalPages", func(t *testing.T) {
		mockRepo.On("List", mock.Anything, domain.CandidateFilters{}, 1, 50).
			Return([]domain.Candidate{{ID: "c1"}}, int64(95), nil).Once()

		result, err := uc.List(adminCtx("admin-1"), 0, 0, domain.CandidateFilters{})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Page)
		assert.Equal(t, 50, result.PageSize)
		assert.Equal(t, int64(95), result.Count)
		assert.Equal(t, 2, result.TotalPages)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Exact multiple of pageSize", func(t *testing.T) {
		mockRepo.On("List", mock.Anything, domain.CandidateFilters{}, 2, 10).
			Return([]domain.Candidate{}, int64(100), nil).Once()

		result, err := uc.List(adminCtx("admin-1"), 2, 10, domain.CandidateFilters{})
		require.NoError(t, err)
		assert.Equal(t, 10, result.TotalPages)
	})

	t.Run("Rejects unauthenticated callers", func(t *testing.T) {
		_, err := uc.List(context.Background(), 1, 10, domain.CandidateFilters{})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not authenticated")
	})
}

func TestAnalystScoping(t *testing.T) {
	mockRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(mockRepo, new(MockUserRepo), newValidator(), domain.StatusEmAnalise)

	t.Run("Analyst listing is scoped to own queue", func(t *testing.T) {
		mockRepo.On("List", mock.Anything, mock.MatchedBy(func(f domain.CandidateFilters) bool {
			return f.AssignedTo == "analyst-1"
		}), 1, 50).Return([]domain.Candidate{}, int64(0), nil).Once()

		_, err := uc.List(analystCtx("analyst-1"), 1, 50, domain.CandidateFilters{})
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Explicit assignee filter wins over implicit scoping", func(t *testing.T) {
		mockRepo.On("List", mock.Anything, mock.MatchedBy(func(f domain.CandidateFilters) bool {
			return f.AssignedTo == "analyst-2"
		}), 1, 50).Return([]domain.Candidate{}, int64(0), nil).Once()

		_, err := uc.List(analystCtx("analyst-1"), 1, 50, domain.CandidateFilters{AssignedTo: "analyst-2"})
		require.NoError(t, err)
	})

	t.Run("Analyst statistics are scoped to own queue", func(t *testing.T) {
		mockRepo.On("Statistics", mock.Anything, "analyst-1").
			Return(&domain.Statistics{Total: 3}, nil).Once()

		stats, err := uc.Statistics(analystCtx("analyst-1"))
		require.NoError(t, err)
		assert.Equal(t, int64(3), stats.Total)
	})

	t.Run("Admin statistics are global", func(t *testing.T) {
		mockRepo.On("Statistics", mock.Anything, "").
			Return(&domain.Statistics{Total: 10}, nil).Once()

		stats, err := uc.Statistics(adminCtx("admin-1"))
		require.NoError(t, err)
		assert.Equal(t, int64(10), stats.Total)
	})
}

func TestListUnassignedPagination(t *testing.T) {
	mockRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(mockRepo, new(MockUserRepo), newValidator(), domain.StatusEmAnalise)

	mockRepo.On("ListUnassigned", mock.Anything, 1, 3).
		Return([]domain.Candidate{{ID: "a"}, {ID: "b"}, {ID: "c"}}, int64(7), nil).Once()

	result, err := uc.ListUnassigned(adminCtx("admin-1"), 1, 3)
	require.NoError(t, err)
	assert.Len(t, result.Data, 3)
	assert.Equal(t, 3, result.TotalPages)
}

// Assignment

func TestAssign(t *testing.T) {
	t.Run("Records assignee, acting admin and triage status", func(t *testing.T) {
		mockRepo := new(MockCandidateRepo)
		mockUsers := new(MockUserRepo)
		uc := usecase.NewCandidateUsecase(mockRepo, mockUsers, newValidator(), domain.StatusEmAnalise)

		mockUsers.On("GetByID", mock.Anything, "analyst-1").Return(activeAnalyst("analyst-1"), nil).Once()
		mockRepo.On("Assign", mock.Anything, "cand-1", "analyst-1", "admin-1", domain.StatusEmAnalise).Return(nil).Once()

		err := uc.Assign(adminCtx("admin-1"), "cand-1", "analyst-1")
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Analysts cannot assign", func(t *testing.T) {
		uc := usecase.NewCandidateUsecase(new(MockCandidateRepo), new(MockUserRepo), newValidator(), domain.StatusEmAnalise)

		err := uc.Assign(analystCtx("analyst-1"), "cand-1", "analyst-1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Admin access required")
	})

	t.Run("Rejects inactive analysts", func(t *testing.T) {
		mockUsers := new(MockUserRepo)
		uc := usecase.NewCandidateUsecase(new(MockCandidateRepo), mockUsers, newValidator(), domain.StatusEmAnalise)

		inactive := activeAnalyst("analyst-1")
		inactive.Active = false
		mockUsers.On("GetByID", mock.Anything, "analyst-1").Return(inactive, nil).Once()

		err := uc.Assign(adminCtx("admin-1"), "cand-1", "analyst-1")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found or inactive")
	})

	t.Run("Rejects assignees without the analista role", func(t *testing.T) {
		mockUsers := new(MockUserRepo)
		uc := usecase.NewCandidateUsecase(new(MockCandidateRepo), mockUsers, newValidator(), domain.StatusEmAnalise)

		admin := activeAnalyst("admin-2")
		admin.Role = domain.RoleAdmin
		mockUsers.On("GetByID", mock.Anything, "admin-2").Return(admin, nil).Once()

		err := uc.Assign(adminCtx("admin-1"), "cand-1", "admin-2")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "analista role")
	})
}

func TestBulkAssignStatusPolicy(t *testing.T) {
	t.Run("Default policy moves candidates to em_analise", func(t *testing.T) {
		mockRepo := new(MockCandidateRepo)
		mockUsers := new(MockUserRepo)
		uc := usecase.NewUserUsecase(mockUsers, mockRepo, newValidator(), domain.StatusEmAnalise)

		mockUsers.On("GetByID", mock.Anything, "analyst-1").Return(activeAnalyst("analyst-1"), nil).Once()
		mockRepo.On("BulkAssign", mock.Anything, []string{"c1", "c2"}, "analyst-1", "admin-1", domain.StatusEmAnalise).Return(nil).Once()

		err := uc.AssignCandidates(adminCtx("admin-1"), domain.AssignmentRequest{
			CandidateIDs: []string{"c1", "c2"},
			AnalystID:    "analyst-1",
		})
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Configured pendente policy is honored", func(t *testing.T) {
		mockRepo := new(MockCandidateRepo)
		mockUsers := new(MockUserRepo)
		uc := usecase.NewUserUsecase(mockUsers, mockRepo, newValidator(), domain.StatusPendente)

		mockUsers.On("GetByID", mock.Anything, "analyst-1").Return(activeAnalyst("analyst-1"), nil).Once()
		mockRepo.On("BulkAssign", mock.Anything, []string{"c1"}, "analyst-1", "admin-1", domain.StatusPendente).Return(nil).Once()

		err := uc.AssignCandidates(adminCtx("admin-1"), domain.AssignmentRequest{
			CandidateIDs: []string{"c1"},
			AnalystID:    "analyst-1",
		})
		require.NoError(t, err)
	})
}

func TestUnassignCandidates(t *testing.T) {
	mockRepo := new(MockCandidateRepo)
	uc := usecase.NewUserUsecase(new(MockUserRepo), mockRepo, newValidator(), domain.StatusEmAnalise)

	t.Run("Bulk unassign clears listed candidates", func(t *testing.T) {
		mockRepo.On("BulkUnassign", mock.Anything, []string{"c1", "c2"}).Return(nil).Once()

		err := uc.UnassignCandidates(adminCtx("admin-1"), []string{"c1", "c2"})
		require.NoError(t, err)
	})

	t.Run("Empty list is rejected", func(t *testing.T) {
		err := uc.UnassignCandidates(adminCtx("admin-1"), nil)
		assert.Error(t, err)
	})

	t.Run("Requires admin", func(t *testing.T) {
		err := uc.UnassignCandidates(analystCtx("analyst-1"), []string{"c1"})
		assert.Error(t, err)
	})
}

// Candidate mutations

func TestCreateDefaults(t *testing.T) {
	mockRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(mockRepo, new(MockUserRepo), newValidator(), domain.StatusEmAnalise)

	var created *domain.Candidate
	mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Candidate")).
		Run(func(args mock.Arguments) { created = args.Get(1).(*domain.Candidate) }).
		Return(nil).Once()

	result, err := uc.Create(adminCtx("admin-1"), &domain.Candidate{
		RegistrationNumber: "2024-0001",
		Name:               "Maria Silva",
		Area:               "Assistencial",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPendente, created.Status)
	assert.Equal(t, 0, created.Priority)
	assert.NotEmpty(t, created.ID)
	assert.Nil(t, created.AssignedTo)
	assert.Same(t, created, result)
}

func TestCreateValidation(t *testing.T) {
	uc := usecase.NewCandidateUsecase(new(MockCandidateRepo), new(MockUserRepo), newValidator(), domain.StatusEmAnalise)

	t.Run("Missing required fields", func(t *testing.T) {
		_, err := uc.Create(adminCtx("admin-1"), &domain.Candidate{Name: "Maria Silva"})
		assert.Error(t, err)
	})

	t.Run("Invalid CPF in payload", func(t *testing.T) {
		_, err := uc.Create(adminCtx("admin-1"), &domain.Candidate{
			RegistrationNumber: "2024-0002",
			Name:               "Maria Silva",
			Area:               "Assistencial",
			Data:               domain.CandidateData{CPF: "111.111.111-11"},
		})
		assert.Error(t, err)
	})

	t.Run("Requires admin", func(t *testing.T) {
		_, err := uc.Create(analystCtx("analyst-1"), &domain.Candidate{
			RegistrationNumber: "2024-0003",
			Name:               "Maria Silva",
			Area:               "Assistencial",
		})
		assert.Error(t, err)
	})
}

func TestUpdateRefetch(t *testing.T) {
	t.Run("Returns the refreshed row", func(t *testing.T) {
		mockRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(mockRepo, new(MockUserRepo), newValidator(), domain.StatusEmAnalise)

		name := "Maria Souza"
		mockRepo.On("Update", mock.Anything, "cand-1", mock.Anything).Return(nil).Once()
		mockRepo.On("GetByID", mock.Anything, "cand-1").
			Return(&domain.Candidate{ID: "cand-1", Name: name, UpdatedAt: time.Now()}, nil).Once()

		updated, err := uc.Update(adminCtx("admin-1"), "cand-1", domain.CandidateUpdate{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, name, updated.Name)
	})

	t.Run("Row vanished after update", func(t *testing.T) {
		mockRepo := new(MockCandidateRepo)
		uc := usecase.NewCandidateUsecase(mockRepo, new(MockUserRepo), newValidator(), domain.StatusEmAnalise)

		name := "Maria Souza"
		mockRepo.On("Update", mock.Anything, "cand-1", mock.Anything).Return(nil).Once()
		mockRepo.On("GetByID", mock.Anything, "cand-1").Return(nil, nil).Once()

		_, err := uc.Update(adminCtx("admin-1"), "cand-1", domain.CandidateUpdate{Name: &name})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found after update")
	})

	t.Run("Empty update is rejected", func(t *testing.T) {
		uc := usecase.NewCandidateUsecase(new(MockCandidateRepo), new(MockUserRepo), newValidator(), domain.StatusEmAnalise)

		_, err := uc.Update(adminCtx("admin-1"), "cand-1", domain.CandidateUpdate{})
		assert.Error(t, err)
	})
}

func TestUpdateStatus(t *testing.T) {
	mockRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(mockRepo, new(MockUserRepo), newValidator(), domain.StatusEmAnalise)

	t.Run("Valid status with notes", func(t *testing.T) {
		notes := "documents verified"
		mockRepo.On("UpdateStatus", mock.Anything, "cand-1", domain.StatusConcluido, &notes).Return(nil).Once()

		err := uc.UpdateStatus(analystCtx("analyst-1"), "cand-1", domain.StatusConcluido, &notes)
		require.NoError(t, err)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Unknown status is rejected", func(t *testing.T) {
		err := uc.UpdateStatus(analystCtx("analyst-1"), "cand-1", "finalizado", nil)
		assert.Error(t, err)
	})
}

func TestSearch(t *testing.T) {
	mockRepo := new(MockCandidateRepo)
	uc := usecase.NewCandidateUsecase(mockRepo, new(MockUserRepo), newValidator(), domain.StatusEmAnalise)

	t.Run("Caps results at the autocomplete limit", func(t *testing.T) {
		mockRepo.On("Search", mock.Anything, "Maria", domain.SearchResultLimit).
			Return([]domain.Candidate{{Name: "Maria Silva"}, {Name: "José Maria"}}, nil).Once()

		results, err := uc.Search(analystCtx("analyst-1"), "  Maria ")
		require.NoError(t, err)
		assert.Len(t, results, 2)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Blank query short-circuits", func(t *testing.T) {
		results, err := uc.Search(analystCtx("analyst-1"), "   ")
		require.NoError(t, err)
		assert.Empty(t, results)
		mockRepo.AssertNotCalled(t, "Search", mock.Anything, "", domain.SearchResultLimit)
	})
}

// User management

func TestCreateUser(t *testing.T) {
	t.Run("Hashes the password and activates the user", func(t *testing.T) {
		mockUsers := new(MockUserRepo)
		uc := usecase.NewUserUsecase(mockUsers, new(MockCandidateRepo), newValidator(), domain.StatusEmAnalise)

		var created *domain.User
		mockUsers.On("Create", mock.Anything, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) { created = args.Get(1).(*domain.User) }).
			Return(nil).Once()

		user, err := uc.CreateUser(adminCtx("admin-1"), domain.CreateUserInput{
			Email:    "Ana.Lima@Example.com",
			Name:     "Ana Lima",
			Role:     domain.RoleAnalista,
			Password: "s3nha-forte",
		})
		require.NoError(t, err)
		assert.True(t, created.Active)
		assert.Equal(t, "ana.lima@example.com", created.Email)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.PasswordHash), []byte("s3nha-forte")))
		assert.Same(t, created, user)
	})

	t.Run("Rejects unknown roles", func(t *testing.T) {
		uc := usecase.NewUserUsecase(new(MockUserRepo), new(MockCandidateRepo), newValidator(), domain.StatusEmAnalise)

		_, err := uc.CreateUser(adminCtx("admin-1"), domain.CreateUserInput{
			Email:    "ana@example.com",
			Name:     "Ana Lima",
			Role:     "supervisor",
			Password: "s3nha-forte",
		})
		assert.Error(t, err)
	})

	t.Run("Requires admin", func(t *testing.T) {
		uc := usecase.NewUserUsecase(new(MockUserRepo), new(MockCandidateRepo), newValidator(), domain.StatusEmAnalise)

		_, err := uc.CreateUser(analystCtx("analyst-1"), domain.CreateUserInput{
			Email:    "ana@example.com",
			Name:     "Ana Lima",
			Role:     domain.RoleAnalista,
			Password: "s3nha-forte",
		})
		assert.Error(t, err)
	})
}

func TestDeactivateUser(t *testing.T) {
	t.Run("Soft-deletes through the repository", func(t *testing.T) {
		mockUsers := new(MockUserRepo)
		uc := usecase.NewUserUsecase(mockUsers, new(MockCandidateRepo), newValidator(), domain.StatusEmAnalise)

		mockUsers.On("Deactivate", mock.Anything, "user-2").Return(nil).Once()

		err := uc.DeactivateUser(adminCtx("admin-1"), "user-2")
		require.NoError(t, err)
	})

	t.Run("Admins cannot deactivate themselves", func(t *testing.T) {
		uc := usecase.NewUserUsecase(new(MockUserRepo), new(MockCandidateRepo), newValidator(), domain.StatusEmAnalise)

		err := uc.DeactivateUser(adminCtx("admin-1"), "admin-1")
		assert.Error(t, err)
	})
}

// Auth

func TestLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), 10)
	require.NoError(t, err)

	activeUser := &domain.User{
		ID:           "user-1",
		Email:        "maria@example.com",
		Name:         "Maria",
		Role:         domain.RoleAnalista,
		Active:       true,
		PasswordHash: string(hash),
	}

	t.Run("Issues a verifiable token", func(t *testing.T) {
		mockUsers := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockUsers, "test-secret", time.Hour)

		mockUsers.On("GetByEmail", mock.Anything, "maria@example.com").Return(activeUser, nil).Once()

		user, token, err := uc.Login(context.Background(), " Maria@Example.com ", "correct-horse")
		require.NoError(t, err)
		assert.Equal(t, "user-1", user.ID)

		parsed, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			return []byte("test-secret"), nil
		})
		require.NoError(t, err)
		claims := parsed.Claims.(jwt.MapClaims)
		assert.Equal(t, "user-1", claims["sub"])
		assert.Equal(t, domain.RoleAnalista, claims["role"])
	})

	t.Run("Wrong password", func(t *testing.T) {
		mockUsers := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockUsers, "test-secret", time.Hour)

		mockUsers.On("GetByEmail", mock.Anything, "maria@example.com").Return(activeUser, nil).Once()

		_, _, err := uc.Login(context.Background(), "maria@example.com", "wrong")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Invalid credentials")
	})

	t.Run("Inactive user cannot sign in even with the right password", func(t *testing.T) {
		mockUsers := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockUsers, "test-secret", time.Hour)

		inactive := *activeUser
		inactive.Active = false
		mockUsers.On("GetByEmail", mock.Anything, "maria@example.com").Return(&inactive, nil).Once()

		_, _, err := uc.Login(context.Background(), "maria@example.com", "correct-horse")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found or inactive")
	})

	t.Run("Unknown email", func(t *testing.T) {
		mockUsers := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockUsers, "test-secret", time.Hour)

		mockUsers.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, nil).Once()

		_, _, err := uc.Login(context.Background(), "ghost@example.com", "whatever")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found or inactive")
	})
}

func TestGetCurrentUser(t *testing.T) {
	t.Run("Inactive row resolves to logged out", func(t *testing.T) {
		mockUsers := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockUsers, "test-secret", time.Hour)

		inactive := &domain.User{ID: "user-1", Active: false}
		mockUsers.On("GetByID", mock.Anything, "user-1").Return(inactive, nil).Once()

		_, err := uc.GetCurrentUser(context.Background(), "user-1")
		assert.Error(t, err)
	})

	t.Run("Active row resolves", func(t *testing.T) {
		mockUsers := new(MockUserRepo)
		uc := usecase.NewAuthUsecase(mockUsers, "test-secret", time.Hour)

		active := &domain.User{ID: "user-1", Active: true, Role: domain.RoleAdmin}
		mockUsers.On("GetByID", mock.Anything, "user-1").Return(active, nil).Once()

		user, err := uc.GetCurrentUser(context.Background(), "user-1")
		require.NoError(t, err)
		assert.True(t, user.IsAdmin())
	})
}
