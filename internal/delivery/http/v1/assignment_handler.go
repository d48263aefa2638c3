package v1

import (
	"encoding/json"
	"net/http"
	"time"

	"pathbridge-backend/internal/delivery/http/response"
	"pathbridge-backend/internal/domain"
	"pathbridge-backend/pkg/apperror"
	"pathbridge-backend/pkg/cache"

	"github.com/gin-gonic/gin"
)

type AssignmentHandler struct {
	assignmentUC domain.AssignmentUsecase
	viewCache    *cache.ViewCache
}

// NewAssignmentHandler registers assignment routes. The public listing sits
// behind optional auth so ownership flags can be caller-relative.
func NewAssignmentHandler(public, protected *gin.RouterGroup, assignmentUC domain.AssignmentUsecase, viewCache *cache.ViewCache) {
	handler := &AssignmentHandler{assignmentUC: assignmentUC, viewCache: viewCache}

	public.GET("/assignments", handler.ListAssignments)

	alumni := protected.Group("/alumni")
	{
		alumni.POST("/assignments", handler.CreateAssignment)
		alumni.GET("/assignments", handler.ListMyAssignments)
	}
}

// CreateAssignmentRequest is the request payload for posting an assignment
type CreateAssignmentRequest struct {
	Title          string    `json:"title" binding:"required,min=3,max=200"`
	Description    string    `json:"description" binding:"required"`
	Deadline       time.Time `json:"deadline" binding:"required"`
	AssignmentType string    `json:"assignment_type" binding:"required,max=50"`
	SkillsRequired []string  `json:"skills_required"`
}

// CreateAssignment godoc
// @Summary      Post a job assignment
// @Description  Create an immutable assignment posting (Alumni only)
// @Tags         assignments
// @Accept       json
// @Produce      json
// @Param        body  body      CreateAssignmentRequest  true  "Assignment data"
// @Success      201   {object}  response.Response{data=domain.JobAssignment}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Router       /alumni/assignments [post]
// @Security     BearerAuth
func (h *AssignmentHandler) CreateAssignment(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleAlumni {
		c.Error(apperror.Forbidden("Only alumni can post assignments"))
		return
	}

	var req CreateAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	assignment := &domain.JobAssignment{
		Title:          req.Title,
		Description:    req.Description,
		Deadline:       req.Deadline,
		AssignmentType: req.AssignmentType,
		SkillsRequired: req.SkillsRequired,
	}

	created, err := h.assignmentUC.CreateAssignment(c.Request.Context(), assignment)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Assignment created", created)
}

// ListAssignments godoc
// @Summary      List all assignments
// @Description  Public listing with submission counts; ownership flags are caller-relative
// @Tags         assignments
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.AssignmentWithMeta}
// @Router       /assignments [get]
func (h *AssignmentHandler) ListAssignments(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	// Only the anonymous rendering is cacheable: authenticated payloads
	// carry caller-relative ownership flags.
	if userID == "" {
		if data := h.viewCache.Get(c.Request.Context(), domain.ViewJobs); data != nil {
			response.Success(c, http.StatusOK, "Assignments retrieved", json.RawMessage(data))
			return
		}
	}

	assignments, err := h.assignmentUC.ListAssignments(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	if userID == "" {
		if data, err := json.Marshal(assignments); err == nil {
			h.viewCache.Set(c.Request.Context(), domain.ViewJobs, data)
		}
	}

	response.Success(c, http.StatusOK, "Assignments retrieved", assignments)
}

// ListMyAssignments godoc
// @Summary      List my assignments
// @Description  The caller's assignments with nested submissions (Alumni only)
// @Tags         assignments
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.OwnedAssignment}
// @Failure      403  {object}  response.Response
// @Router       /alumni/assignments [get]
// @Security     BearerAuth
func (h *AssignmentHandler) ListMyAssignments(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleAlumni {
		c.Error(apperror.Forbidden("Only alumni can view their assignments"))
		return
	}

	assignments, err := h.assignmentUC.ListMyAssignments(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Assignments retrieved", assignments)
}
