package v1

import (
	"encoding/json"
	"net/http"
	"strconv"

	"go-triagem-backend/internal/delivery/http/response"
	"go-triagem-backend/internal/domain"
	"go-triagem-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type CandidateHandler struct {
	candidateUC domain.CandidateUsecase
}

func NewCandidateHandler(protected *gin.RouterGroup, candidateUC domain.CandidateUsecase) {
	handler := &CandidateHandler{candidateUC: candidateUC}

	candidates := protected.Group("/candidates")
	{
		candidates.GET("", handler.List)
		candidates.GET("/unassigned", handler.ListUnassigned)
		candidates.GET("/stats", handler.Statistics)
		candidates.GET("/search", handler.Search)
		candidates.GET("/areas", handler.Areas)
		candidates.GET("/cargos", handler.Cargos)
		candidates.GET("/pcd-options", handler.VagaPCDOptions)
		candidates.GET("/cpf/:cpf", handler.GetByCPF)
		candidates.GET("/:id", handler.GetByID)
		candidates.POST("", handler.Create)
		candidates.PUT("/:id", handler.Update)
		candidates.PATCH("/:id/status", handler.UpdateStatus)
		candidates.PATCH("/:id/assign", handler.Assign)
		candidates.PATCH("/:id/unassign", handler.Unassign)
		candidates.DELETE("/:id", handler.Delete)
	}

	admin := protected.Group("/admin")
	{
		admin.POST("/candidates/import", handler.Import)
	}
}

func paging(c *gin.Context) (int, int) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("pageSize", "50"))
	return page, pageSize
}

// List godoc
// @Summary      List candidates
// @Description  Paginated candidate listing. Analysts only see their own queue.
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Param        page       query  int     false  "Page number (1-indexed)"
// @Param        pageSize   query  int     false  "Items per page"
// @Param        status     query  string  false  "Filter by status"
// @Param        area       query  string  false  "Filter by area"
// @Param        cargo      query  string  false  "Filter by desired position"
// @Param        vagaPcd    query  string  false  "Filter by PCD flag"
// @Param        assignedTo query  string  false  "Filter by assignee"
// @Param        search     query  string  false  "Substring search on name/CPF/registration"
// @Success      200  {object}  response.Response
// @Router       /candidates [get]
func (h *CandidateHandler) List(c *gin.Context) {
	page, pageSize := paging(c)
	filters := domain.CandidateFilters{
		Status:     c.Query("status"),
		Area:       c.Query("area"),
		Cargo:      c.Query("cargo"),
		VagaPCD:    c.Query("vagaPcd"),
		AssignedTo: c.Query("assignedTo"),
		Search:     c.Query("search"),
	}

	result, err := h.candidateUC.List(c, page, pageSize, filters)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidates list", result)
}

// ListUnassigned godoc
// @Summary      List unassigned candidates
// @Description  The open queue: higher priority first, oldest first among equals
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Param        page     query  int  false  "Page number (1-indexed)"
// @Param        pageSize query  int  false  "Items per page"
// @Success      200  {object}  response.Response
// @Router       /candidates/unassigned [get]
func (h *CandidateHandler) ListUnassigned(c *gin.Context) {
	page, pageSize := paging(c)
	result, err := h.candidateUC.ListUnassigned(c, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Unassigned candidates", result)
}

// Statistics godoc
// @Summary      Candidate statistics
// @Description  Counts per status, area and PCD flag. Analysts get their own queue only.
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /candidates/stats [get]
func (h *CandidateHandler) Statistics(c *gin.Context) {
	stats, err := h.candidateUC.Statistics(c)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate statistics", stats)
}

// Search godoc
// @Summary      Search candidates
// @Description  Autocomplete search across name, CPF, cargo and registration number, capped at 10 results
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Param        q  query  string  true  "Search term"
// @Success      200  {object}  response.Response
// @Router       /candidates/search [get]
func (h *CandidateHandler) Search(c *gin.Context) {
	results, err := h.candidateUC.Search(c, c.Query("q"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Search results", results)
}

// GetByID godoc
// @Summary      Get candidate by ID
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [get]
func (h *CandidateHandler) GetByID(c *gin.Context) {
	candidate, err := h.candidateUC.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate detail", candidate)
}

// GetByCPF godoc
// @Summary      Get candidate by CPF
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Param        cpf  path  string  true  "CPF"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/cpf/{cpf} [get]
func (h *CandidateHandler) GetByCPF(c *gin.Context) {
	candidate, err := h.candidateUC.GetByCPF(c.Request.Context(), c.Param("cpf"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate detail", candidate)
}

// Create godoc
// @Summary      Create candidate
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        candidate  body  domain.Candidate  true  "Candidate"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /candidates [post]
func (h *CandidateHandler) Create(c *gin.Context) {
	var candidate domain.Candidate
	if err := c.ShouldBindJSON(&candidate); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	created, err := h.candidateUC.Create(c, &candidate)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Candidate created", created)
}

// Update godoc
// @Summary      Update candidate
// @Description  Partial update; omitted fields stay untouched, updated_at always refreshes
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id      path  string                  true  "Candidate ID"
// @Param        update  body  domain.CandidateUpdate  true  "Fields to change"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /candidates/{id} [put]
func (h *CandidateHandler) Update(c *gin.Context) {
	var upd domain.CandidateUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	updated, err := h.candidateUC.Update(c, c.Param("id"), upd)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate updated", updated)
}

type UpdateStatusRequest struct {
	Status string  `json:"status" binding:"required"`
	Notes  *string `json:"notes,omitempty"`
}

// UpdateStatus godoc
// @Summary      Update candidate status
// @Description  Moves the candidate through triage; notes merge into the payload
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string               true  "Candidate ID"
// @Param        body  body  UpdateStatusRequest  true  "New status and optional notes"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /candidates/{id}/status [patch]
func (h *CandidateHandler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.candidateUC.UpdateStatus(c, c.Param("id"), req.Status, req.Notes); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Status updated", nil)
}

type AssignRequest struct {
	AnalystID string `json:"analyst_id" binding:"required"`
}

// Assign godoc
// @Summary      Assign candidate to an analyst
// @Tags         candidates
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string         true  "Candidate ID"
// @Param        body  body  AssignRequest  true  "Analyst"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /candidates/{id}/assign [patch]
func (h *CandidateHandler) Assign(c *gin.Context) {
	var req AssignRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.candidateUC.Assign(c, c.Param("id"), req.AnalystID); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate assigned", nil)
}

// Unassign godoc
// @Summary      Unassign candidate
// @Description  Clears assignment fields and resets status to pendente
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /candidates/{id}/unassign [patch]
func (h *CandidateHandler) Unassign(c *gin.Context) {
	if err := h.candidateUC.Unassign(c, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate unassigned", nil)
}

// Delete godoc
// @Summary      Delete candidate
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  string  true  "Candidate ID"
// @Success      200  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /candidates/{id} [delete]
func (h *CandidateHandler) Delete(c *gin.Context) {
	if err := h.candidateUC.Delete(c, c.Param("id")); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Candidate deleted", nil)
}

// Areas godoc
// @Summary      Distinct areas
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /candidates/areas [get]
func (h *CandidateHandler) Areas(c *gin.Context) {
	values, err := h.candidateUC.Areas(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Areas", values)
}

// Cargos godoc
// @Summary      Distinct desired positions
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /candidates/cargos [get]
func (h *CandidateHandler) Cargos(c *gin.Context) {
	values, err := h.candidateUC.Cargos(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Cargos", values)
}

// VagaPCDOptions godoc
// @Summary      Distinct PCD options
// @Tags         candidates
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response
// @Router       /candidates/pcd-options [get]
func (h *CandidateHandler) VagaPCDOptions(c *gin.Context) {
	values, err := h.candidateUC.VagaPCDOptions(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "PCD options", values)
}

// Import godoc
// @Summary      Import candidates
// @Description  Accepts rows in any historical schema (spreadsheet export, flat, canonical) and normalizes them
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        rows  body  []object  true  "Candidate rows"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /admin/candidates/import [post]
func (h *CandidateHandler) Import(c *gin.Context) {
	var rows []json.RawMessage
	if err := c.ShouldBindJSON(&rows); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	rawRows := make([][]byte, len(rows))
	for i, row := range rows {
		rawRows[i] = row
	}

	imported, err := h.candidateUC.Import(c, rawRows)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusCreated, "Candidates imported", gin.H{"imported": imported})
}
