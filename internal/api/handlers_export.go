package api

import (
	"bytes"
	"fmt"
	"io"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/graceflow/internal/services"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

func (handler *Handler) ExportCSV(c *fiber.Ctx) error {
	return handler.export(c, "text/csv", "csv", services.WriteCSV)
}

func (handler *Handler) ExportXLSX(c *fiber.Ctx) error {
	return handler.export(c, xlsxContentType, "xlsx", services.WriteXLSX)
}

func (handler *Handler) export(c *fiber.Ctx, contentType string, extension string, write func(io.Writer, []services.ExportRow) error) error {
	user, ok := currentUser(c)
	if !ok {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	rows, err := handler.exportService.BuildHistoryRows(user.ID)
	if err != nil {
		log.Printf("export %s: %v", extension, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to fetch cycles")
	}

	var output bytes.Buffer
	if err := write(&output, rows); err != nil {
		log.Printf("export %s: %v", extension, err)
		return apiError(c, fiber.StatusInternalServerError, "failed to build export")
	}

	filename := fmt.Sprintf("graceflow-cycles-%s.%s", formatDay(handler.today()), extension)
	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.Send(output.Bytes())
}
