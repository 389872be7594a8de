package domain

import (
	"context"
	"time"
)

// Candidate statuses. A candidate moves pendente -> em_analise -> concluido
// during triage; unassignment puts it back to pendente.
const (
	StatusPendente  = "pendente"
	StatusEmAnalise = "em_analise"
	StatusConcluido = "concluido"
)

// SearchResultLimit caps autocomplete search results.
const SearchResultLimit = 10

func ValidStatus(s string) bool {
	return s == StatusPendente || s == StatusEmAnalise || s == StatusConcluido
}

type Candidate struct {
	ID                 string        `json:"id"`
	RegistrationNumber string        `json:"registration_number" validate:"required"`
	Name               string        `json:"name" validate:"required,min=2,max=200,valid_name"`
	Area               string        `json:"area" validate:"required"`
	Status             string        `json:"status" validate:"omitempty,oneof=pendente em_analise concluido"`
	AssignedTo         *string       `json:"assigned_to,omitempty"`
	AssignedBy         *string       `json:"assigned_by,omitempty"`
	AssignedAt         *time.Time    `json:"assigned_at,omitempty"`
	Priority           int           `json:"priority"`
	Data               CandidateData `json:"data"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

// CandidateFilters narrows candidate listings. Zero values mean "no filter".
type CandidateFilters struct {
	Status     string
	Area       string
	Cargo      string
	VagaPCD    string
	AssignedTo string
	Search     string
}

// CandidateUpdate is a partial update; nil fields are left untouched.
// Data, when set, replaces the whole payload.
type CandidateUpdate struct {
	RegistrationNumber *string        `json:"registration_number,omitempty"`
	Name               *string        `json:"name,omitempty" validate:"omitempty,min=2,max=200,valid_name"`
	Area               *string        `json:"area,omitempty"`
	Status             *string        `json:"status,omitempty" validate:"omitempty,oneof=pendente em_analise concluido"`
	Priority           *int           `json:"priority,omitempty"`
	Data               *CandidateData `json:"data,omitempty"`
}

func (u CandidateUpdate) IsEmpty() bool {
	return u.RegistrationNumber == nil && u.Name == nil && u.Area == nil &&
		u.Status == nil && u.Priority == nil && u.Data == nil
}

// Statistics aggregates candidate counts for the dashboard.
type Statistics struct {
	Total     int64            `json:"total"`
	Pendente  int64            `json:"pendente"`
	EmAnalise int64            `json:"em_analise"`
	Concluido int64            `json:"concluido"`
	ByArea    map[string]int64 `json:"by_area"`
	PCD       int64            `json:"pcd"`
	NaoPCD    int64            `json:"nao_pcd"`
}

type CandidateRepository interface {
	List(ctx context.Context, filters CandidateFilters, page, pageSize int) ([]Candidate, int64, error)
	ListUnassigned(ctx context.Context, page, pageSize int) ([]Candidate, int64, error)
	GetByID(ctx context.Context, id string) (*Candidate, error)
	GetByCPF(ctx context.Context, cpf string) (*Candidate, error)
	Statistics(ctx context.Context, assignedTo string) (*Statistics, error)
	Create(ctx context.Context, c *Candidate) error
	Update(ctx context.Context, id string, upd CandidateUpdate) error
	UpdateStatus(ctx context.Context, id, status string, notes *string) error
	Assign(ctx context.Context, id, analystID, adminID, status string) error
	Unassign(ctx context.Context, id string) error
	BulkAssign(ctx context.Context, ids []string, analystID, adminID, status string) error
	BulkUnassign(ctx context.Context, ids []string) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string, limit int) ([]Candidate, error)
	DistinctAreas(ctx context.Context) ([]string, error)
	DistinctCargos(ctx context.Context) ([]string, error)
	DistinctVagaPCD(ctx context.Context) ([]string, error)
}

type CandidateUsecase interface {
	List(ctx context.Context, page, pageSize int, filters CandidateFilters) (*PaginatedResult[Candidate], error)
	ListUnassigned(ctx context.Context, page, pageSize int) (*PaginatedResult[Candidate], error)
	GetByID(ctx context.Context, id string) (*Candidate, error)
	GetByCPF(ctx context.Context, cpf string) (*Candidate, error)
	Statistics(ctx context.Context) (*Statistics, error)
	Create(ctx context.Context, c *Candidate) (*Candidate, error)
	Update(ctx context.Context, id string, upd CandidateUpdate) (*Candidate, error)
	UpdateStatus(ctx context.Context, id, status string, notes *string) error
	Assign(ctx context.Context, id, analystID string) error
	Unassign(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
	Search(ctx context.Context, query string) ([]Candidate, error)
	Areas(ctx context.Context) ([]string, error)
	Cargos(ctx context.Context) ([]string, error)
	VagaPCDOptions(ctx context.Context) ([]string, error)
	Import(ctx context.Context, rows [][]byte) (int, error)
}
