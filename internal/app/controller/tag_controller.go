package controller

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/avolkova/foodgram-backend/internal/app/service"
	apperrors "github.com/avolkova/foodgram-backend/internal/errors"
	"github.com/avolkova/foodgram-backend/internal/middleware"
	"github.com/gin-gonic/gin"
)

type TagController struct {
	tagService service.TagService
}

func NewTagController(tagService service.TagService) *TagController {
	return &TagController{tagService: tagService}
}

// GetTags returns all tags
// GET /api/v1/tags
func (ctrl *TagController) GetTags(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	tags, err := ctrl.tagService.GetAllTags()
	if err != nil {
		log.Error("Failed to fetch tags", err, nil)
		apperrors.InternalError(c, "Failed to fetch tags")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tags": tags,
	})
}

// GetTag returns a single tag by ID
// GET /api/v1/tags/:id
func (ctrl *TagController) GetTag(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		apperrors.BadRequest(c, apperrors.ValidationInvalidID, "Invalid tag ID")
		return
	}

	tag, err := ctrl.tagService.GetTagByID(uint(id))
	if err != nil {
		if errors.Is(err, service.ErrTagNotFound) {
			apperrors.NotFound(c, apperrors.TagNotFound, "Tag not found")
			return
		}
		log.Error("Failed to fetch tag", err, map[string]interface{}{
			"tag_id": id,
		})
		apperrors.InternalError(c, "Failed to fetch tag")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"tag": tag,
	})
}
