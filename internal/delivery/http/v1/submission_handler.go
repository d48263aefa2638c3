package v1

import (
	"net/http"

	"pathbridge-backend/internal/delivery/http/response"
	"pathbridge-backend/internal/domain"
	"pathbridge-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type SubmissionHandler struct {
	submissionUC domain.SubmissionUsecase
}

// NewSubmissionHandler registers submission routes. Mutations carry the
// stricter per-user write rate limit.
func NewSubmissionHandler(protected *gin.RouterGroup, submissionUC domain.SubmissionUsecase, writeLimit gin.HandlerFunc) {
	handler := &SubmissionHandler{submissionUC: submissionUC}

	students := protected.Group("/students")
	{
		students.POST("/assignments/:assignmentId/submissions", writeLimit, handler.SubmitAssignment)
		students.GET("/submissions", handler.GetMySubmissions)
	}

	alumni := protected.Group("/alumni")
	{
		alumni.GET("/assignments/:assignmentId/submissions", handler.ListSubmissions)
		alumni.PATCH("/submissions/:id", writeLimit, handler.UpdateSubmissionStatus)
	}
}

// SubmitAssignmentRequest is the request payload for submitting a response
type SubmitAssignmentRequest struct {
	SubmissionText string `json:"submission_text" binding:"required"`
}

// SubmitAssignment godoc
// @Summary      Submit an assignment response
// @Description  One submission per student per assignment; duplicates are rejected
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        assignmentId  path      string                    true  "Assignment ID"
// @Param        body          body      SubmitAssignmentRequest   true  "Submission data"
// @Success      201  {object}  response.Response{data=domain.JobSubmission}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /students/assignments/{assignmentId}/submissions [post]
// @Security     BearerAuth
func (h *SubmissionHandler) SubmitAssignment(c *gin.Context) {
	assignmentID := c.Param("assignmentId")

	var req SubmitAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	submission, err := h.submissionUC.SubmitAssignment(c.Request.Context(), assignmentID, req.SubmissionText)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Submission received", submission)
}

// GetMySubmissions godoc
// @Summary      Get my submissions
// @Description  All submissions by the current student with assignment titles
// @Tags         submissions
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.StudentSubmission}
// @Failure      401  {object}  response.Response
// @Router       /students/submissions [get]
// @Security     BearerAuth
func (h *SubmissionHandler) GetMySubmissions(c *gin.Context) {
	submissions, err := h.submissionUC.GetMySubmissions(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Submissions retrieved", submissions)
}

// ListSubmissions godoc
// @Summary      List submissions for an assignment
// @Description  All submissions with student identities; assignment owner only
// @Tags         submissions
// @Produce      json
// @Param        assignmentId  path  string  true  "Assignment ID"
// @Success      200  {object}  response.Response{data=[]domain.SubmissionWithStudent}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /alumni/assignments/{assignmentId}/submissions [get]
// @Security     BearerAuth
func (h *SubmissionHandler) ListSubmissions(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleAlumni {
		c.Error(apperror.Forbidden("Only alumni can view submissions"))
		return
	}

	submissions, err := h.submissionUC.ListSubmissions(c.Request.Context(), c.Param("assignmentId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Submissions retrieved", submissions)
}

// UpdateSubmissionStatusRequest is the request payload for reviewing a
// submission
type UpdateSubmissionStatusRequest struct {
	Status          string  `json:"status" binding:"required,oneof=REVIEWED REFERRED REJECTED"`
	ReviewNotes     *string `json:"review_notes"`
	ReferralCompany *string `json:"referral_company"`
}

// UpdateSubmissionStatus godoc
// @Summary      Review a submission
// @Description  Apply a review decision (assignment owner only). A REFERRED decision with notes and company messages the student.
// @Tags         submissions
// @Accept       json
// @Produce      json
// @Param        id    path      string                         true  "Submission ID"
// @Param        body  body      UpdateSubmissionStatusRequest  true  "Review decision"
// @Success      200   {object}  response.Response{data=domain.JobSubmission}
// @Failure      400   {object}  response.Response
// @Failure      403   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Failure      409   {object}  response.Response
// @Router       /alumni/submissions/{id} [patch]
// @Security     BearerAuth
func (h *SubmissionHandler) UpdateSubmissionStatus(c *gin.Context) {
	role := c.GetString(string(domain.KeyUserRole))
	if role != domain.RoleAlumni {
		c.Error(apperror.Forbidden("Only alumni can review submissions"))
		return
	}

	var req UpdateSubmissionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	decision := domain.ReviewDecision{
		Status:          req.Status,
		ReviewNotes:     req.ReviewNotes,
		ReferralCompany: req.ReferralCompany,
	}

	submission, err := h.submissionUC.UpdateSubmissionStatus(c.Request.Context(), c.Param("id"), decision)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Submission status updated", submission)
}
