package dto

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	syncdomain "github.com/dealersync/backend/internal/domain/sync"
)

// Custom binding validations used by the request DTOs. Registered once when
// the package loads so every handler sees them.
func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("erptype", validateErpType)
	}
}

func validateErpType(fl validator.FieldLevel) bool {
	return syncdomain.ErpType(fl.Field().String()).IsValid()
}
