package handler

import (
	"net/http"

	"github.com/damoang/pcmall-backend/internal/common"
	"github.com/damoang/pcmall-backend/internal/domain"
	"github.com/damoang/pcmall-backend/internal/service"
	"github.com/damoang/pcmall-backend/pkg/ginutil"
	"github.com/gin-gonic/gin"
)

// MenuHandler handles HTTP requests for menus
type MenuHandler struct {
	service service.MenuService
}

// NewMenuHandler creates a new MenuHandler
func NewMenuHandler(service service.MenuService) *MenuHandler {
	return &MenuHandler{service: service}
}

// GetPublicMenu godoc
// @Summary      위치별 메뉴 조회
// @Description  활성 메뉴의 활성 항목을 트리로 반환합니다. URL 은 링크 타입에 따라 해석됩니다
// @Tags         menus
// @Produce      json
// @Param        location  path  string  true  "메뉴 위치 (header, footer ...)"
// @Success      200  {object}  common.APIResponse{data=domain.MenuResponse}
// @Failure      404  {object}  common.APIResponse
// @Router       /menus/{location} [get]
func (h *MenuHandler) GetPublicMenu(c *gin.Context) {
	data, err := h.service.GetPublicMenu(c.Request.Context(), c.Param("location"))
	if err != nil {
		respondError(c, err, "Failed to fetch menu")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// ListMenus godoc
// @Summary      메뉴 목록 (관리자)
// @Tags         admin-menus
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  common.APIResponse{data=[]domain.AdminMenuResponse}
// @Failure      401  {object}  common.APIResponse
// @Router       /admin/menus [get]
func (h *MenuHandler) ListMenus(c *gin.Context) {
	data, err := h.service.ListMenus()
	if err != nil {
		respondError(c, err, "Failed to fetch menus")
		return
	}
	common.SuccessResponse(c, data, &common.Meta{Total: int64(len(data))})
}

// GetMenu godoc
// @Summary      메뉴 상세 (관리자)
// @Description  비활성 항목을 포함한 전체 트리를 반환합니다
// @Tags         admin-menus
// @Produce      json
// @Security     BearerAuth
// @Param        id  path  int  true  "메뉴 ID"
// @Success      200  {object}  common.APIResponse{data=domain.AdminMenuResponse}
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/menus/{id} [get]
func (h *MenuHandler) GetMenu(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		invalidID(c, "menu", err)
		return
	}
	data, err := h.service.GetMenu(id)
	if err != nil {
		respondError(c, err, "Failed to fetch menu")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// CreateMenu godoc
// @Summary      메뉴 생성
// @Tags         admin-menus
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body  domain.CreateMenuRequest  true  "메뉴"
// @Success      201  {object}  common.APIResponse{data=domain.AdminMenuResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      409  {object}  common.APIResponse
// @Router       /admin/menus [post]
func (h *MenuHandler) CreateMenu(c *gin.Context) {
	var req domain.CreateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	data, err := h.service.CreateMenu(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err, "Failed to create menu")
		return
	}
	common.CreatedResponse(c, data)
}

// UpdateMenu godoc
// @Summary      메뉴 수정
// @Tags         admin-menus
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                       true  "메뉴 ID"
// @Param        request  body  domain.UpdateMenuRequest  true  "변경할 필드"
// @Success      200  {object}  common.APIResponse{data=domain.AdminMenuResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/menus/{id} [put]
func (h *MenuHandler) UpdateMenu(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		invalidID(c, "menu", err)
		return
	}
	var req domain.UpdateMenuRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	data, err := h.service.UpdateMenu(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err, "Failed to update menu")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// DeleteMenu godoc
// @Summary      메뉴 삭제
// @Description  메뉴와 모든 항목을 삭제합니다
// @Tags         admin-menus
// @Security     BearerAuth
// @Param        id  path  int  true  "메뉴 ID"
// @Success      204
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/menus/{id} [delete]
func (h *MenuHandler) DeleteMenu(c *gin.Context) {
	id, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		invalidID(c, "menu", err)
		return
	}
	if err := h.service.DeleteMenu(c.Request.Context(), id); err != nil {
		respondError(c, err, "Failed to delete menu")
		return
	}
	c.Status(http.StatusNoContent)
}

// CreateItem godoc
// @Summary      메뉴 항목 추가
// @Tags         admin-menus
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                           true  "메뉴 ID"
// @Param        request  body  domain.CreateMenuItemRequest  true  "항목"
// @Success      201  {object}  common.APIResponse{data=domain.MenuItem}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Failure      422  {object}  common.APIResponse
// @Router       /admin/menus/{id}/items [post]
func (h *MenuHandler) CreateItem(c *gin.Context) {
	menuID, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		invalidID(c, "menu", err)
		return
	}
	var req domain.CreateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	data, err := h.service.CreateItem(c.Request.Context(), menuID, &req)
	if err != nil {
		respondError(c, err, "Failed to create menu item")
		return
	}
	common.CreatedResponse(c, data)
}

// UpdateItem godoc
// @Summary      메뉴 항목 수정
// @Description  parent_id 0 은 최상위로 이동합니다
// @Tags         admin-menus
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                           true  "메뉴 ID"
// @Param        itemId   path  int                           true  "항목 ID"
// @Param        request  body  domain.UpdateMenuItemRequest  true  "변경할 필드"
// @Success      200  {object}  common.APIResponse{data=domain.MenuItem}
// @Failure      400  {object}  common.APIResponse
// @Failure      404  {object}  common.APIResponse
// @Failure      422  {object}  common.APIResponse
// @Router       /admin/menus/{id}/items/{itemId} [put]
func (h *MenuHandler) UpdateItem(c *gin.Context) {
	menuID, itemID, ok := menuItemIDs(c)
	if !ok {
		return
	}
	var req domain.UpdateMenuItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	data, err := h.service.UpdateItem(c.Request.Context(), menuID, itemID, &req)
	if err != nil {
		respondError(c, err, "Failed to update menu item")
		return
	}
	common.SuccessResponse(c, data, nil)
}

// DeleteItem godoc
// @Summary      메뉴 항목 삭제
// @Description  하위 항목은 삭제된 항목의 부모 아래로 올라갑니다
// @Tags         admin-menus
// @Security     BearerAuth
// @Param        id      path  int  true  "메뉴 ID"
// @Param        itemId  path  int  true  "항목 ID"
// @Success      204
// @Failure      404  {object}  common.APIResponse
// @Router       /admin/menus/{id}/items/{itemId} [delete]
func (h *MenuHandler) DeleteItem(c *gin.Context) {
	menuID, itemID, ok := menuItemIDs(c)
	if !ok {
		return
	}
	if err := h.service.DeleteItem(c.Request.Context(), menuID, itemID); err != nil {
		respondError(c, err, "Failed to delete menu item")
		return
	}
	c.Status(http.StatusNoContent)
}

// ReorderItems godoc
// @Summary      메뉴 항목 순서/계층 일괄 변경
// @Description  편집된 트리 전체를 받습니다. 메뉴의 모든 항목이 정확히 한 번씩 있어야 합니다
// @Tags         admin-menus
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path  int                             true  "메뉴 ID"
// @Param        request  body  domain.ReorderMenuItemsRequest  true  "트리"
// @Success      200  {object}  common.APIResponse{data=domain.AdminMenuResponse}
// @Failure      400  {object}  common.APIResponse
// @Failure      422  {object}  common.APIResponse
// @Router       /admin/menus/{id}/reorder [put]
func (h *MenuHandler) ReorderItems(c *gin.Context) {
	menuID, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		invalidID(c, "menu", err)
		return
	}
	var req domain.ReorderMenuItemsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidBody(c, err)
		return
	}
	data, err := h.service.ReorderItems(c.Request.Context(), menuID, &req)
	if err != nil {
		respondError(c, err, "Failed to reorder menu items")
		return
	}
	common.SuccessResponse(c, data, nil)
}

func menuItemIDs(c *gin.Context) (menuID, itemID int64, ok bool) {
	menuID, err := ginutil.ParamInt64(c, "id")
	if err != nil {
		invalidID(c, "menu", err)
		return 0, 0, false
	}
	itemID, err = ginutil.ParamInt64(c, "itemId")
	if err != nil {
		invalidID(c, "menu item", err)
		return 0, 0, false
	}
	return menuID, itemID, true
}
