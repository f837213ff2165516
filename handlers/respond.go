package handlers

import (
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/Agent-cat/Midland/apperr"
	"github.com/Agent-cat/Midland/utils"
)

// fail maps a taxonomy error onto the HTTP response. Internal errors are
// logged with their cause but only the message leaves the process.
func fail(c echo.Context, err error) error {
	body := map[string]interface{}{"error": err.Error()}
	switch e := err.(type) {
	case *apperr.ValidationError:
		body["error"] = e.Message
		if len(e.Fields) > 0 {
			body["fields"] = e.Fields
		}
	case *apperr.AuthError:
		if e.AttemptsLeft >= 0 {
			body["attemptsLeft"] = e.AttemptsLeft
		}
	case *apperr.InternalError:
		utils.Error("request failed", zap.String("path", c.Path()), zap.Error(e))
		body["error"] = e.Message
	}
	return c.JSON(apperr.Status(err), body)
}
