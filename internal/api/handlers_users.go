package api

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/graceflow/internal/cycle"
	"github.com/terraincognita07/graceflow/internal/services"
)

type cycleSettingsInput struct {
	CycleLength  int     `json:"average_cycle_length"`
	PeriodLength int     `json:"average_period_length"`
	DisplayName  *string `json:"display_name"`
}

func (handler *Handler) Me(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}
	return c.JSON(newProfileResponse(*user))
}

func (handler *Handler) UpdateCycleSettings(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input cycleSettingsInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	profile, err := handler.settingsService.SaveCycleSettings(user.ID, services.CycleSettingsUpdate{
		CycleLength:  input.CycleLength,
		PeriodLength: input.PeriodLength,
		DisplayName:  input.DisplayName,
	})
	switch {
	case errors.Is(err, services.ErrSettingsCycleLengthOutOfRange):
		return apiError(c, fiber.StatusBadRequest, fmt.Sprintf("cycle length must be between %d and %d", cycle.MinCycleLength, cycle.MaxCycleLength))
	case errors.Is(err, services.ErrSettingsPeriodLengthOutOfRange):
		return apiError(c, fiber.StatusBadRequest, fmt.Sprintf("period length must be between %d and %d", cycle.MinPeriodLength, cycle.MaxPeriodLength))
	case errors.Is(err, services.ErrSettingsPeriodLengthIncompatible):
		return apiError(c, fiber.StatusBadRequest, "period length must be shorter than cycle length")
	case err != nil:
		log.Printf("update cycle settings: %v", err)
		return apiError(c, fiber.StatusInternalServerError, "failed to update settings")
	}

	return c.JSON(newProfileResponse(profile))
}
