package handlers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/momentumafrica/momentum-api/internal/logger"
	"github.com/momentumafrica/momentum-api/internal/realtime"
	"github.com/momentumafrica/momentum-api/internal/score"
	"github.com/momentumafrica/momentum-api/internal/services"
	"github.com/momentumafrica/momentum-api/internal/types"
)

// PostHandler handles reply and collaboration routes
type PostHandler struct {
	DB        *gorm.DB
	Log       *logger.Logger
	Publisher *realtime.Publisher
	Blob      *services.BlobService
}

type newReplyBody struct {
	Text string `json:"text"`
}

// ListReplies handles GET /api/posts/:id/replies
// @Summary List replies
// @Description List replies to a post, oldest first
// @Tags Posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {array} models.Reply
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /posts/{id}/replies [get]
func (h *PostHandler) ListReplies(c *fiber.Ctx) error {
	postID := c.Params("id")

	if _, err := services.GetPost(h.DB, postID); err != nil {
		return err
	}
	replies, err := services.ListReplies(h.DB, postID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(replies)
}

// AddReply handles POST /api/posts/:id/replies
// @Summary Add a reply
// @Description Reply to a post. Awards contribution points asynchronously.
// @Tags Posts
// @Accept json
// @Produce json
// @Param id path string true "Post ID"
// @Param body body newReplyBody true "Reply text"
// @Success 201 {object} models.Reply
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /posts/{id}/replies [post]
func (h *PostHandler) AddReply(c *fiber.Ctx) error {
	postID := c.Params("id")

	author, err := requireProfile(c, h.DB)
	if err != nil {
		return err
	}

	var body newReplyBody
	if err := c.BodyParser(&body); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	if strings.TrimSpace(body.Text) == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Reply text is required")
	}

	reply, err := services.AddReply(h.DB, postID, author, body.Text)
	if err != nil {
		return err
	}

	go services.AwardScore(h.Log, h.DB, author.ID, score.ReasonAddReply)

	post, err := services.GetPost(h.DB, postID)
	if err == nil {
		h.Publisher.Publish(c.UserContext(), feedEvent(post.CommunityID, realtime.EventReplyAdded, reply))
	}

	return c.Status(fiber.StatusCreated).JSON(reply)
}

// ToggleCollaborator handles POST /api/posts/:id/collaborators
// @Summary Join or leave a collaboration
// @Description Toggles the caller's membership on a post's collaborator roster
// @Tags Posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {object} services.ToggleResult
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 503 {object} utils.ErrorResponseStruct
// @Router /posts/{id}/collaborators [post]
func (h *PostHandler) ToggleCollaborator(c *fiber.Ctx) error {
	postID := c.Params("id")

	member, err := requireProfile(c, h.DB)
	if err != nil {
		return err
	}

	result, err := services.ToggleCollaboration(h.DB, postID, member.ID)
	if err != nil {
		return err
	}

	// The toggle commit is the source of truth; the score delta rides behind it.
	go services.AwardScore(h.Log, h.DB, member.ID, result.Reason)

	post, err := services.GetPost(h.DB, postID)
	if err == nil {
		h.Publisher.Publish(c.UserContext(), feedEvent(post.CommunityID, realtime.EventCollaboration, fiber.Map{
			"postId":        postID,
			"userId":        member.ID,
			"joined":        result.Joined,
			"collaborators": result.CollaboratorCount,
		}))
	}

	return c.Status(fiber.StatusOK).JSON(result)
}

// UploadImage handles POST /api/posts/images
// @Summary Upload a post image
// @Description Stores an image for use in a post and returns its URL. Upload
// @Description happens before the post is created, so the key is random.
// @Tags Posts
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Post image"
// @Success 201 {object} map[string]string
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 401 {object} utils.ErrorResponseStruct
// @Failure 502 {object} utils.ErrorResponseStruct
// @Router /posts/images [post]
func (h *PostHandler) UploadImage(c *fiber.Ctx) error {
	if _, err := requireProfile(c, h.DB); err != nil {
		return err
	}
	if h.Blob == nil {
		return &types.CustomError{
			Code:    fiber.StatusNotImplemented,
			Message: "Image storage is not configured",
			Type:    types.TypeRemoteServiceFailed,
		}
	}

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Form file 'image' is required")
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		return fiber.NewError(fiber.StatusBadRequest, "Upload must be an image")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Unable to read uploaded file")
	}
	defer file.Close()

	key := fmt.Sprintf("posts/%s%s", uuid.NewString(), strings.ToLower(filepath.Ext(fileHeader.Filename)))
	url, err := h.Blob.Upload(c.UserContext(), key, contentType, file)
	if err != nil {
		return types.RemoteServiceFailure("image storage", err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"imageUrl": url})
}

// ListCollaborators handles GET /api/posts/:id/collaborators
// @Summary List collaborators
// @Description List user ids collaborating on a post
// @Tags Posts
// @Produce json
// @Param id path string true "Post ID"
// @Success 200 {array} string
// @Failure 404 {object} utils.ErrorResponseStruct
// @Router /posts/{id}/collaborators [get]
func (h *PostHandler) ListCollaborators(c *fiber.Ctx) error {
	postID := c.Params("id")

	if _, err := services.GetPost(h.DB, postID); err != nil {
		return err
	}
	ids, err := services.ListPostCollaborators(h.DB, postID)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusOK).JSON(ids)
}
