package v1

import (
	"net/http"
	"time"

	"pathbridge-backend/internal/delivery/http/response"
	"pathbridge-backend/internal/domain"
	"pathbridge-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type MentorshipHandler struct {
	mentorshipUC domain.MentorshipUsecase
}

// NewMentorshipHandler registers student-facing mentorship routes.
func NewMentorshipHandler(protected *gin.RouterGroup, mentorshipUC domain.MentorshipUsecase) {
	handler := &MentorshipHandler{mentorshipUC: mentorshipUC}

	mentorship := protected.Group("/mentorship")
	{
		mentorship.GET("/mentors", handler.GetAvailableMentors)
		mentorship.GET("/mentor", handler.GetMyMentor)
		mentorship.POST("/meetings", handler.ScheduleMeeting)
		mentorship.GET("/meetings", handler.GetMyMeetings)
	}
}

// GetAvailableMentors godoc
// @Summary      List available mentors
// @Description  Alumni at the caller's institution, students only
// @Tags         mentorship
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.User}
// @Failure      403  {object}  response.Response
// @Router       /mentorship/mentors [get]
// @Security     BearerAuth
func (h *MentorshipHandler) GetAvailableMentors(c *gin.Context) {
	mentors, err := h.mentorshipUC.GetAvailableMentors(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Mentors retrieved", mentors)
}

// GetMyMentor godoc
// @Summary      Get my current mentor
// @Description  Returns null data when no mentor is assigned
// @Tags         mentorship
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      403  {object}  response.Response
// @Router       /mentorship/mentor [get]
// @Security     BearerAuth
func (h *MentorshipHandler) GetMyMentor(c *gin.Context) {
	mentor, err := h.mentorshipUC.GetMyMentor(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Mentor retrieved", mentor)
}

// ScheduleMeetingRequest is the payload for requesting a mentorship meeting.
type ScheduleMeetingRequest struct {
	MentorID string    `json:"mentor_id" binding:"required,uuid"`
	Title    string    `json:"title" binding:"required,max=150"`
	Date     time.Time `json:"date" binding:"required"`
	Time     string    `json:"time" binding:"required"`
}

// ScheduleMeeting godoc
// @Summary      Request a mentorship meeting
// @Tags         mentorship
// @Accept       json
// @Produce      json
// @Param        body  body      ScheduleMeetingRequest  true  "Meeting details"
// @Success      201   {object}  response.Response{data=domain.Meeting}
// @Failure      400   {object}  response.Response
// @Failure      404   {object}  response.Response
// @Router       /mentorship/meetings [post]
// @Security     BearerAuth
func (h *MentorshipHandler) ScheduleMeeting(c *gin.Context) {
	var req ScheduleMeetingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	meeting, err := h.mentorshipUC.ScheduleMeeting(c.Request.Context(), req.MentorID, req.Title, req.Date, req.Time)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Meeting requested", meeting)
}

// GetMyMeetings godoc
// @Summary      List my mentorship meetings
// @Tags         mentorship
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.MeetingWithMentor}
// @Failure      401  {object}  response.Response
// @Router       /mentorship/meetings [get]
// @Security     BearerAuth
func (h *MentorshipHandler) GetMyMeetings(c *gin.Context) {
	meetings, err := h.mentorshipUC.GetMyMeetings(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Meetings retrieved", meetings)
}
