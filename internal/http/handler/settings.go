package handler

import (
	"github.com/gofiber/fiber/v2"

	"kundenstopper/internal/service"
)

// GetSettings godoc
// @Summary Current settings
// @Tags settings
// @Success 200 {object} model.Settings
// @Router /admin/settings [get]
func GetSettings(settingsSvc service.SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s, err := settingsSvc.Get(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(s)
	}
}

// UpdateSettings godoc
// @Summary Update display settings; valid fields are applied even if others fail
// @Tags settings
// @Accept json
// @Param body body settingsRequest true "Fields to change"
// @Success 200 {object} model.Settings
// @Failure 400 {object} errorPayload
// @Router /admin/settings [put]
func UpdateSettings(settingsSvc service.SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req settingsRequest
		if err := decodeJSON(c, &req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		s, err := settingsSvc.Update(c.UserContext(), service.SettingsUpdate{
			CycleInterval:     req.CycleInterval.ptr(),
			BackgroundColor:   req.BackgroundColor.ptr(),
			ProgressIndicator: req.ProgressIndicator.ptr(),
		})
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(s)
	}
}

// UpdateRetention godoc
// @Summary Update auto cleanup settings
// @Tags retention
// @Accept json
// @Param body body retentionRequest true "Fields to change"
// @Success 200 {object} model.Settings
// @Router /admin/retention [put]
func UpdateRetention(settingsSvc service.SettingsService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req retentionRequest
		if err := decodeJSON(c, &req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}

		s, err := settingsSvc.UpdateRetention(c.UserContext(), service.RetentionUpdate{
			AutoCleanupEnabled: req.AutoCleanupEnabled.ptr(),
			AutoCleanupDays:    req.AutoCleanupDays.ptr(),
		})
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(s)
	}
}

// RunSweep godoc
// @Summary Run one retention sweep
// @Tags retention
// @Success 200 {object} service.SweepResult
// @Failure 409 {object} errorPayload
// @Router /admin/retention/sweep [post]
func RunSweep(retentionSvc service.RetentionService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := retentionSvc.Sweep(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}
