package middleware

import (
	"asklab/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ValidationMiddleware provides request validation middleware
type ValidationMiddleware struct {
	validator *validation.Validator
}

// NewValidationMiddleware creates a new validation middleware instance
func NewValidationMiddleware() *ValidationMiddleware {
	return &ValidationMiddleware{
		validator: validation.NewValidator(),
	}
}

// ValidateGroupID validates the groupId path parameter
func (vm *ValidationMiddleware) ValidateGroupID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		groupID := c.Params("groupId")

		if errors := vm.validator.ValidateGroupID(groupID); len(errors) > 0 {
			return errors // Handled by the ErrorHandler middleware
		}

		// Store validated value in context for handlers to use
		c.Locals("validated_group_id", groupID)
		return c.Next()
	}
}
