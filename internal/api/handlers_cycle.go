package api

import (
	"errors"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/graceflow/internal/cycle"
	"github.com/terraincognita07/graceflow/internal/services"
)

type logPeriodInput struct {
	StartDate string `json:"start_date"`
	Notes     string `json:"notes"`
}

type initializeCycleInput struct {
	Dates []string `json:"dates"`
}

type updateCycleInput struct {
	StartDate     *string `json:"start_date"`
	PeriodEndDate *string `json:"period_end_date"`
	Notes         *string `json:"notes"`
}

func (handler *Handler) CurrentCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	info, err := handler.cycleService.CurrentCycleInfo(user.ID, handler.today())
	if err != nil {
		return respondCycleError(c, "current cycle", err)
	}
	return c.JSON(newCycleInfoResponse(info))
}

func (handler *Handler) LogPeriod(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input logPeriodInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}
	start, ok := handler.parseDay(input.StartDate)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "start_date must be YYYY-MM-DD")
	}

	today := handler.today()
	if _, err := handler.cycleService.LogPeriod(user.ID, start, input.Notes, today); err != nil {
		return respondCycleError(c, "log period", err)
	}

	info, err := handler.cycleService.CurrentCycleInfo(user.ID, today)
	if err != nil {
		return respondCycleError(c, "current cycle after log", err)
	}
	return c.Status(fiber.StatusCreated).JSON(newCycleInfoResponse(info))
}

func (handler *Handler) InitializeCycle(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input initializeCycleInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	dates := make([]time.Time, 0, len(input.Dates))
	for _, raw := range input.Dates {
		parsed, ok := handler.parseDay(raw)
		if !ok {
			return apiError(c, fiber.StatusBadRequest, "dates must be YYYY-MM-DD")
		}
		dates = append(dates, parsed)
	}

	today := handler.today()
	if err := handler.cycleService.InitializeTracking(user.ID, dates, today); err != nil {
		return respondCycleError(c, "initialize tracking", err)
	}

	info, err := handler.cycleService.CurrentCycleInfo(user.ID, today)
	if err != nil {
		return respondCycleError(c, "current cycle after initialize", err)
	}
	return c.Status(fiber.StatusCreated).JSON(newCycleInfoResponse(info))
}

func (handler *Handler) CycleHistory(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	limit, ok := queryInt(c, "limit", services.DefaultHistoryLimit)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "limit must be a number")
	}

	history, err := handler.cycleService.History(user.ID, limit, handler.today())
	if err != nil {
		return respondCycleError(c, "cycle history", err)
	}
	return c.JSON(newCycleHistoryResponse(history))
}

func (handler *Handler) CyclePredictions(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	days, ok := queryInt(c, "days", services.DefaultPredictionDays)
	if !ok {
		return apiError(c, fiber.StatusBadRequest, "days must be a number")
	}

	result, err := handler.cycleService.Predictions(user.ID, days, handler.today())
	if err != nil {
		return respondCycleError(c, "cycle predictions", err)
	}
	return c.JSON(newPredictionsResponse(result))
}

func (handler *Handler) UpdateCycleEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	var input updateCycleInput
	if err := c.BodyParser(&input); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	update := services.CycleEntryUpdate{Notes: input.Notes}
	if input.StartDate != nil {
		start, ok := handler.parseDay(*input.StartDate)
		if !ok {
			return apiError(c, fiber.StatusBadRequest, "start_date must be YYYY-MM-DD")
		}
		update.StartDate = &start
	}
	if input.PeriodEndDate != nil {
		end, ok := handler.parseDay(*input.PeriodEndDate)
		if !ok {
			return apiError(c, fiber.StatusBadRequest, "period_end_date must be YYYY-MM-DD")
		}
		update.PeriodEndDate = &end
	}

	record, err := handler.cycleService.UpdateCycleEntry(user.ID, c.Params("id"), update, handler.today())
	if err != nil {
		return respondCycleError(c, "update cycle", err)
	}
	return c.JSON(newCycleRecordResponse(record))
}

func (handler *Handler) DeleteCycleEntry(c *fiber.Ctx) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	if err := handler.cycleService.DeleteCycleEntry(user.ID, c.Params("id")); err != nil {
		return respondCycleError(c, "delete cycle", err)
	}
	return c.JSON(fiber.Map{"message": "cycle deleted"})
}

func respondCycleError(c *fiber.Ctx, action string, err error) error {
	status, message := cycleErrorStatus(err)
	if status == fiber.StatusInternalServerError {
		log.Printf("%s: %v", action, err)
	}
	return apiError(c, status, message)
}

func cycleErrorStatus(err error) (int, string) {
	var validationErr *cycle.ValidationError
	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, validationErr.Error()
	case errors.Is(err, services.ErrNoPeriodLogged):
		return fiber.StatusNotFound, "no cycle data found, log your first period to get started"
	case errors.Is(err, services.ErrCycleNotFound):
		return fiber.StatusNotFound, "cycle entry not found"
	case errors.Is(err, services.ErrUserNotFound):
		return fiber.StatusNotFound, "user not found"
	case errors.Is(err, services.ErrPeriodAlreadyLogged),
		errors.Is(err, services.ErrTrackingAlreadyInitialized):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, services.ErrPeriodStartInFuture),
		errors.Is(err, services.ErrPeriodEndBeforeStart),
		errors.Is(err, services.ErrHistoryLimitOutOfRange),
		errors.Is(err, services.ErrPredictionDaysOutOfRange),
		errors.Is(err, services.ErrInitialDatesRequired),
		errors.Is(err, services.ErrTooManyInitialDates),
		errors.Is(err, services.ErrDuplicateInitialDates),
		errors.Is(err, services.ErrCannotDeleteOnlyCycle):
		return fiber.StatusBadRequest, err.Error()
	default:
		return fiber.StatusInternalServerError, "internal error"
	}
}
