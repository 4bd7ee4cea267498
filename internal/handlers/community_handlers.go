package handlers

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"github.com/momentumafrica/momentum-api/internal/logger"
	"github.com/momentumafrica/momentum-api/internal/realtime"
	"github.com/momentumafrica/momentum-api/internal/score"
	"github.com/momentumafrica/momentum-api/internal/services"
)

// CommunityHandler handles community and post routes
type CommunityHandler struct {
	DB        *gorm.DB
	Log       *logger.Logger
	Publisher *realtime.Publisher
}

// ListCommunities handles GET /api/communities
// @Summary List communities
// @Description List all communities ordered by name
// @Tags Communities
// @Produce json
// @Success 200 {array} models.Community
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /communities [get]
func (h *CommunityHandler) ListCommunities(c *fiber.Ctx) error {
	communities, err := services.ListCommunities(h.DB)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(communities)
}

// ListPosts handles GET /api/communities/:id/posts
// @Summary List community posts
// @Description List posts in a community, newest first
// @Tags Communities
// @Produce json
// @Param id path string true "Community ID"
// @Success 200 {array} models.Post
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /communities/{id}/posts [get]
func (h *CommunityHandler) ListPosts(c *fiber.Ctx) error {
	communityID := c.Params("id")

	if _, err := services.GetCommunity(h.DB, communityID); err != nil {
		return err
	}
	posts, err := services.ListCommunityPosts(h.DB, communityID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(posts)
}

// CreatePost handles POST /api/communities/:id/posts
// @Summary Create a post
// @Description Share an idea in a community. Awards contribution points asynchronously.
// @Tags Communities
// @Accept json
// @Produce json
// @Param id path string true "Community ID"
// @Param body body services.NewPost true "Post content"
// @Success 201 {object} models.Post
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /communities/{id}/posts [post]
func (h *CommunityHandler) CreatePost(c *fiber.Ctx) error {
	communityID := c.Params("id")

	author, err := requireProfile(c, h.DB)
	if err != nil {
		return err
	}

	var in services.NewPost
	if err := c.BodyParser(&in); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	post, err := services.CreatePost(h.DB, communityID, author, in)
	if err != nil {
		return err
	}

	// Points land after the response; a dropped award never fails the post.
	go services.AwardScore(h.Log, h.DB, author.ID, score.ReasonCreatePost)

	h.Publisher.Publish(c.UserContext(), feedEvent(communityID, realtime.EventPostCreated, post))

	return c.Status(fiber.StatusCreated).JSON(post)
}
