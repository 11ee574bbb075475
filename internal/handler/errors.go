package handler

import (
	"errors"
	"net/http"

	"github.com/damoang/pcmall-backend/internal/common"
	"github.com/damoang/pcmall-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// statusFor maps service sentinels to HTTP status. First match wins, so
// wrapped errors resolve to their sentinel.
var statusFor = []struct {
	err    error
	status int
}{
	// 404
	{service.ErrMenuNotFound, http.StatusNotFound},
	{service.ErrMenuItemNotFound, http.StatusNotFound},
	{service.ErrCategoryNotFound, http.StatusNotFound},
	{service.ErrBrandNotFound, http.StatusNotFound},
	{service.ErrShopNotFound, http.StatusNotFound},
	{service.ErrProductNotFound, http.StatusNotFound},
	{service.ErrOrderNotFound, http.StatusNotFound},
	{common.ErrUserNotFound, http.StatusNotFound},
	{common.ErrNotFound, http.StatusNotFound},

	// 409
	{service.ErrMenuLocationTaken, http.StatusConflict},
	{service.ErrSlugAlreadyExists, http.StatusConflict},
	{service.ErrSKUAlreadyExists, http.StatusConflict},
	{service.ErrInsufficientStock, http.StatusConflict},
	{service.ErrInvalidTransition, http.StatusConflict},
	{common.ErrConflict, http.StatusConflict},

	// 422: well-formed request that breaks a domain rule
	{service.ErrMenuParentMismatch, http.StatusUnprocessableEntity},
	{service.ErrMenuCycle, http.StatusUnprocessableEntity},
	{service.ErrReorderMismatch, http.StatusUnprocessableEntity},
	{service.ErrCategoryParent, http.StatusUnprocessableEntity},
	{service.ErrCategoryCycle, http.StatusUnprocessableEntity},
	{service.ErrProductCategory, http.StatusUnprocessableEntity},
	{service.ErrProductBrand, http.StatusUnprocessableEntity},
	{service.ErrOrderProduct, http.StatusUnprocessableEntity},
	{service.ErrPickupShopNotFound, http.StatusUnprocessableEntity},
	{service.ErrTrackingRequired, http.StatusUnprocessableEntity},

	// 400
	{service.ErrInvalidMenuLocation, http.StatusBadRequest},
	{service.ErrInvalidLinkType, http.StatusBadRequest},
	{service.ErrInvalidLinkValue, http.StatusBadRequest},
	{service.ErrCustomURLRequired, http.StatusBadRequest},
	{service.ErrInvalidCustomURL, http.StatusBadRequest},
	{service.ErrInvalidTarget, http.StatusBadRequest},
	{service.ErrInvalidSlug, http.StatusBadRequest},
	{service.ErrInvalidPriceRange, http.StatusBadRequest},
	{service.ErrShippingAddressMiss, http.StatusBadRequest},
	{service.ErrInvalidSettingKey, http.StatusBadRequest},
	{service.ErrInvalidSettingValue, http.StatusBadRequest},
	{service.ErrInvalidFolder, http.StatusBadRequest},
	{service.ErrUnsupportedImage, http.StatusUnsupportedMediaType},
	{service.ErrFileTooLarge, http.StatusRequestEntityTooLarge},
	{common.ErrUnsafeURL, http.StatusBadRequest},
	{common.ErrInvalidInput, http.StatusBadRequest},

	// auth
	{common.ErrInvalidCredentials, http.StatusUnauthorized},
	{common.ErrUserDisabled, http.StatusForbidden},
	{common.ErrUnauthorized, http.StatusUnauthorized},
	{common.ErrForbidden, http.StatusForbidden},

	// infra
	{service.ErrStorageDisabled, http.StatusServiceUnavailable},
	{common.ErrServiceUnavailable, http.StatusServiceUnavailable},
}

// respondError writes the mapped status for known errors. Anything else is a
// 500 with fallback as the message; the raw error only shows in debug mode.
func respondError(c *gin.Context, err error, fallback string) {
	for _, m := range statusFor {
		if errors.Is(err, m.err) {
			common.ErrorResponse(c, m.status, err.Error(), nil)
			return
		}
	}
	_ = c.Error(err)
	common.ErrorResponse(c, http.StatusInternalServerError, fallback, err)
}

func invalidID(c *gin.Context, what string, err error) {
	common.ErrorResponse(c, http.StatusBadRequest, "Invalid "+what+" ID", err)
}

func invalidBody(c *gin.Context, err error) {
	common.ErrorResponse(c, http.StatusBadRequest, "Invalid request body", err)
}
