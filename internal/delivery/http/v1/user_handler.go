package v1

import (
	"net/http"

	"pathbridge-backend/internal/delivery/http/response"
	"pathbridge-backend/internal/domain"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	followUC  domain.FollowUsecase
	profileUC domain.ProfileUsecase
}

// NewUserHandler registers user directory and follow-graph routes
func NewUserHandler(protected *gin.RouterGroup, followUC domain.FollowUsecase, profileUC domain.ProfileUsecase) {
	handler := &UserHandler{followUC: followUC, profileUC: profileUC}

	users := protected.Group("/users")
	{
		users.GET("", handler.ListUsers)
		users.POST("/:userId/follow", handler.ToggleFollow)
	}
	protected.GET("/network", handler.GetNetwork)
	protected.GET("/suggestions", handler.GetSuggestedUsers)
}

// ListUsers godoc
// @Summary      List users
// @Description  Every user except the caller (message recipient picker)
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.UserPreview}
// @Router       /users [get]
// @Security     BearerAuth
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.profileUC.ListUsers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Users retrieved", users)
}

// ToggleFollow godoc
// @Summary      Toggle follow
// @Description  Follows the target (with a FOLLOW notification), or unfollows when already following
// @Tags         users
// @Produce      json
// @Param        userId  path  string  true  "Target user ID"
// @Success      200  {object}  response.Response{data=bool}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /users/{userId}/follow [post]
// @Security     BearerAuth
func (h *UserHandler) ToggleFollow(c *gin.Context) {
	following, err := h.followUC.ToggleFollow(c.Request.Context(), c.Param("userId"))
	if err != nil {
		c.Error(err)
		return
	}

	message := "Unfollowed"
	if following {
		message = "Following"
	}
	response.Success(c, http.StatusOK, message, following)
}

// GetNetwork godoc
// @Summary      Get my network
// @Description  Union of followed users and followers, deduplicated
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.UserPreview}
// @Router       /network [get]
// @Security     BearerAuth
func (h *UserHandler) GetNetwork(c *gin.Context) {
	users, err := h.followUC.GetNetwork(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Network retrieved", users)
}

// GetSuggestedUsers godoc
// @Summary      Suggested users
// @Description  A few users the caller does not follow yet
// @Tags         users
// @Produce      json
// @Success      200  {object}  response.Response{data=[]domain.UserPreview}
// @Router       /suggestions [get]
// @Security     BearerAuth
func (h *UserHandler) GetSuggestedUsers(c *gin.Context) {
	users, err := h.followUC.GetSuggestedUsers(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Suggestions retrieved", users)
}
