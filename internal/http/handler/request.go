package handler

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// formValue accepts a JSON string, number or boolean and keeps its text.
// Validation is left to the service so bad input gets a field error.
type formValue string

func (v *formValue) UnmarshalJSON(b []byte) error {
	var raw any
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	switch t := raw.(type) {
	case string:
		*v = formValue(t)
	case float64:
		*v = formValue(strconv.FormatFloat(t, 'f', -1, 64))
	case bool:
		*v = formValue(strconv.FormatBool(t))
	default:
		return fmt.Errorf("unsupported value %s", b)
	}
	return nil
}

func (v *formValue) ptr() *string {
	if v == nil {
		return nil
	}
	s := string(*v)
	return &s
}

type renameRequest struct {
	Name string `json:"name" form:"name"`
}

type settingsRequest struct {
	CycleInterval     *formValue `json:"cycle_interval"`
	BackgroundColor   *formValue `json:"background_color"`
	ProgressIndicator *formValue `json:"progress_indicator"`
}

type retentionRequest struct {
	AutoCleanupEnabled *formValue `json:"auto_cleanup_enabled"`
	AutoCleanupDays    *formValue `json:"auto_cleanup_days"`
}

// decodeJSON rejects empty or malformed bodies.
func decodeJSON(c *fiber.Ctx, v any) error {
	body := c.Body()
	if len(body) == 0 {
		return fmt.Errorf("empty body")
	}
	return json.Unmarshal(body, v)
}

// paramID parses the :id route parameter as a positive integer.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}
