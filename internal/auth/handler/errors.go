package handler

import (
	"errors"

	"github.com/Khushiyant/nibtara/internal/auth/dto"
	apperrors "github.com/Khushiyant/nibtara/internal/errors"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const genericFailure = "Something went wrong"

// ErrorHandler renders every error returned by a handler or middleware. Typed errors keep their
// message and field errors; anything else is logged and hidden behind a generic 500.
func ErrorHandler(log logrus.FieldLogger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		if appErr, ok := apperrors.As(err); ok && appErr.Kind != apperrors.KindUnexpected {
			if appErr.Kind == apperrors.KindUpstream {
				log.WithError(err).WithField("path", c.Path()).Warn("upstream dependency failed")
			}
			return c.Status(appErr.HTTPStatus()).JSON(dto.ErrorResponse{
				Message: appErr.Message,
				Errors:  appErr.Fields,
			})
		}

		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Message: fe.Message})
		}

		log.WithError(err).WithFields(logrus.Fields{
			"method": c.Method(),
			"path":   c.Path(),
		}).Error("unhandled error")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Message: genericFailure})
	}
}

// unauthorizedOnInvalid renders validation failures with 401, which is what login and
// registration clients expect.
func unauthorizedOnInvalid(err error) error {
	if appErr, ok := apperrors.As(err); ok && appErr.Kind == apperrors.KindValidation {
		return appErr.WithStatus(fiber.StatusUnauthorized)
	}
	return err
}

func invalidBody() error {
	return apperrors.Validation("invalid input", map[string]string{"non_field_errors": "Malformed request body."})
}
