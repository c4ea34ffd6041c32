package service

import (
	"context"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
)

// appInfoService answers the health endpoint's version string. The
// value is fixed at startup: the configured override when present,
// otherwise the linker-stamped build version main falls back to.
type appInfoService struct {
	version string
	logger  *logger.Logger
}

func NewAppInfoService(cfg config.App, log *logger.Logger) (AppInfoService, error) {
	if cfg.Version == "" {
		return nil, ErrVersionIsNotSpecified
	}

	return &appInfoService{
		version: cfg.Version,
		logger:  log,
	}, nil
}

func (s *appInfoService) GetAppVersion(_ context.Context) string {
	return s.version
}
