package api

import (
	"errors"
	"time"

	"github.com/terraincognita07/graceflow/internal/cycle"
	"github.com/terraincognita07/graceflow/internal/db"
	"github.com/terraincognita07/graceflow/internal/services"
	"gorm.io/gorm"
)

const defaultAuthTokenTTL = 7 * 24 * time.Hour

type Handler struct {
	secretKey       []byte
	location        *time.Location
	tokenTTL        time.Duration
	now             func() time.Time
	authService     *services.AuthService
	cycleService    *services.CycleService
	settingsService *services.SettingsService
	exportService   *services.ExportService
	loginLimiter    *attemptLimiter
}

func NewHandler(database *gorm.DB, secret string, location *time.Location, tokenTTL time.Duration) (*Handler, error) {
	if database == nil {
		return nil, errors.New("database is required")
	}
	if secret == "" {
		return nil, errors.New("secret key is required")
	}
	if location == nil {
		location = time.UTC
	}
	if tokenTTL <= 0 {
		tokenTTL = defaultAuthTokenTTL
	}

	repositories := db.NewRepositories(database)
	return &Handler{
		secretKey:       []byte(secret),
		location:        location,
		tokenTTL:        tokenTTL,
		now:             time.Now,
		authService:     services.NewAuthService(repositories.Users),
		cycleService:    services.NewCycleService(repositories.Users, repositories.Cycles),
		settingsService: services.NewSettingsService(repositories.Users),
		exportService:   services.NewExportService(repositories.Cycles),
		loginLimiter:    newAttemptLimiter(),
	}, nil
}

// today is the request's calendar date in the configured location. Handlers
// read it once and pass it down.
func (handler *Handler) today() time.Time {
	return cycle.DateOnly(handler.now().In(handler.location))
}
