package v1

import (
	"net/http"

	"pathbridge-backend/internal/delivery/http/response"
	"pathbridge-backend/internal/domain"
	"pathbridge-backend/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUC domain.ProfileUsecase
	authUC    domain.AuthUsecase
}

// NewProfileHandler registers profile routes. Public profiles sit behind
// optional auth so the is_following flag can be caller-relative.
func NewProfileHandler(public, protected *gin.RouterGroup, profileUC domain.ProfileUsecase, authUC domain.AuthUsecase) {
	handler := &ProfileHandler{profileUC: profileUC, authUC: authUC}

	public.GET("/profiles/:username", handler.GetProfile)
	protected.GET("/me", handler.GetMe)
	protected.PUT("/me/profile", handler.UpdateProfile)
}

// GetProfile godoc
// @Summary      Get a public profile
// @Description  Profile by username with follower/following counts
// @Tags         profiles
// @Produce      json
// @Param        username  path  string  true  "Username"
// @Success      200  {object}  response.Response{data=domain.Profile}
// @Failure      404  {object}  response.Response
// @Router       /profiles/{username} [get]
func (h *ProfileHandler) GetProfile(c *gin.Context) {
	profile, err := h.profileUC.GetProfileByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile retrieved", profile)
}

// GetMe godoc
// @Summary      Get the current user
// @Tags         profiles
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.User}
// @Failure      401  {object}  response.Response
// @Router       /me [get]
// @Security     BearerAuth
func (h *ProfileHandler) GetMe(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))

	user, err := h.authUC.GetCurrentUser(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "User retrieved", user)
}

// UpdateProfileRequest is the request payload for editing the caller's
// profile
type UpdateProfileRequest struct {
	Name                string   `json:"name" binding:"required,min=2,max=100"`
	Bio                 *string  `json:"bio"`
	Image               *string  `json:"image"`
	Location            *string  `json:"location"`
	Website             *string  `json:"website"`
	Degree              *string  `json:"degree"`
	Department          *string  `json:"department"`
	YearOfStudy         *int     `json:"year_of_study"`
	GraduationYear      *int     `json:"graduation_year"`
	CurrentPosition     *string  `json:"current_position"`
	CurrentOrganization *string  `json:"current_organization"`
	Skills              []string `json:"skills"`
	Interests           []string `json:"interests"`
	LinkedinURL         *string  `json:"linkedin_url"`
	GithubURL           *string  `json:"github_url"`
	PortfolioURL        *string  `json:"portfolio_url"`
	ResumeURL           *string  `json:"resume_url"`
	MentorshipStatus    string   `json:"mentorship_status"`
}

// UpdateProfile godoc
// @Summary      Update my profile
// @Description  Edits the caller's own profile; the target user is always the caller
// @Tags         profiles
// @Accept       json
// @Produce      json
// @Param        body  body      UpdateProfileRequest  true  "Profile data"
// @Success      200   {object}  response.Response
// @Failure      400   {object}  response.Response
// @Failure      401   {object}  response.Response
// @Router       /me/profile [put]
// @Security     BearerAuth
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	user := &domain.User{
		Name:                req.Name,
		Bio:                 req.Bio,
		Image:               req.Image,
		Location:            req.Location,
		Website:             req.Website,
		Degree:              req.Degree,
		Department:          req.Department,
		YearOfStudy:         req.YearOfStudy,
		GraduationYear:      req.GraduationYear,
		CurrentPosition:     req.CurrentPosition,
		CurrentOrganization: req.CurrentOrganization,
		Skills:              req.Skills,
		Interests:           req.Interests,
		LinkedinURL:         req.LinkedinURL,
		GithubURL:           req.GithubURL,
		PortfolioURL:        req.PortfolioURL,
		ResumeURL:           req.ResumeURL,
		MentorshipStatus:    req.MentorshipStatus,
	}

	if err := h.profileUC.UpdateProfile(c.Request.Context(), user); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Profile updated", nil)
}
