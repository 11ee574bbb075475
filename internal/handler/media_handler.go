package handler

import (
	"net/http"

	"github.com/damoang/pcmall-backend/internal/common"
	"github.com/damoang/pcmall-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// MediaHandler handles admin image uploads
type MediaHandler struct {
	mediaService *service.MediaService
}

// NewMediaHandler creates a new MediaHandler
func NewMediaHandler(mediaService *service.MediaService) *MediaHandler {
	return &MediaHandler{mediaService: mediaService}
}

// UploadImage godoc
// @Summary      이미지 업로드
// @Description  상품/카테고리/브랜드/매장 이미지를 오브젝트 스토리지에 올립니다 (jpeg, png, gif, webp)
// @Tags         admin-media
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        file    formData  file    true   "이미지 파일"
// @Param        folder  formData  string  false  "products, categories, brands, shops, misc"
// @Success      201  {object}  common.APIResponse{data=service.MediaUploadResult}
// @Failure      400  {object}  common.APIResponse
// @Failure      413  {object}  common.APIResponse
// @Failure      415  {object}  common.APIResponse
// @Failure      503  {object}  common.APIResponse
// @Router       /admin/media/images [post]
func (h *MediaHandler) UploadImage(c *gin.Context) {
	if !h.mediaService.Enabled() {
		respondError(c, service.ErrStorageDisabled, "Upload failed")
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, "File is required", err)
		return
	}

	result, err := h.mediaService.UploadImage(c.Request.Context(), file, c.DefaultPostForm("folder", "misc"))
	if err != nil {
		respondError(c, err, "Upload failed")
		return
	}
	common.CreatedResponse(c, result)
}

// DeleteImage godoc
// @Summary      이미지 삭제
// @Tags         admin-media
// @Security     BearerAuth
// @Param        key  query  string  true  "업로드 시 받은 key"
// @Success      204
// @Failure      400  {object}  common.APIResponse
// @Failure      503  {object}  common.APIResponse
// @Router       /admin/media/images [delete]
func (h *MediaHandler) DeleteImage(c *gin.Context) {
	key := c.Query("key")
	if key == "" {
		common.ErrorResponse(c, http.StatusBadRequest, "key is required", nil)
		return
	}
	if err := h.mediaService.Delete(c.Request.Context(), key); err != nil {
		respondError(c, err, "Delete failed")
		return
	}
	c.Status(http.StatusNoContent)
}
