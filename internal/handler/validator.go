package handler

import (
	"github.com/damoang/pcmall-backend/pkg/menutree"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the custom binding tags used by request DTOs.
// Call once before the router starts serving.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return v.RegisterValidation("linktype", validateLinkType)
}

// linktype: one of the menu link types, case-insensitive
func validateLinkType(fl validator.FieldLevel) bool {
	_, ok := menutree.ParseLinkType(fl.Field().String())
	return ok
}
