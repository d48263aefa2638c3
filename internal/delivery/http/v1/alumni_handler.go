package v1

import (
	"net/http"

	"pathbridge-backend/internal/delivery/http/response"
	"pathbridge-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type AlumniHandler struct {
	alumniUC domain.AlumniUsecase
}

// NewAlumniHandler registers the alumni-only student directory routes.
func NewAlumniHandler(protected *gin.RouterGroup, alumniUC domain.AlumniUsecase) {
	handler := &AlumniHandler{alumniUC: alumniUC}

	alumni := protected.Group("/alumni")
	{
		alumni.GET("/students", handler.GetMyStudents)
		alumni.GET("/students/:studentId", handler.GetStudentDetails)
	}
}

// GetMyStudents godoc
// @Summary      List students at my institution
// @Description  Alumni-only view of the students sharing the caller's institution
// @Tags         alumni
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.User}
// @Failure      401  {object}  response.Response
// @Failure      403  {object}  response.Response
// @Router       /alumni/students [get]
// @Security     BearerAuth
func (h *AlumniHandler) GetMyStudents(c *gin.Context) {
	students, err := h.alumniUC.GetMyStudents(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Students retrieved", students)
}

// GetStudentDetails godoc
// @Summary      Get a student's details
// @Tags         alumni
// @Produce      json
// @Param        studentId  path  string  true  "Student ID"
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /alumni/students/{studentId} [get]
// @Security     BearerAuth
func (h *AlumniHandler) GetStudentDetails(c *gin.Context) {
	student, err := h.alumniUC.GetStudentDetails(c.Request.Context(), c.Param("studentId"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Student retrieved", student)
}
