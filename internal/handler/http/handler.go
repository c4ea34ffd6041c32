package http

import (
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/MKhiriev/go-note-keeper/internal/service"
	"github.com/MKhiriev/go-note-keeper/internal/web"
)

type Handler struct {
	services  *service.Services
	templates *web.Templates

	logger *logger.Logger
}

func NewHandler(services *service.Services, templates *web.Templates, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:  services,
		templates: templates,
		logger:    logger,
	}
}
