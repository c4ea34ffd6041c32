package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-note-keeper/internal/config"
	"github.com/MKhiriev/go-note-keeper/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAppInfoService_ReportsConfiguredVersion(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.4.0"}, logger.Nop())

	require.NoError(t, err)
	assert.Equal(t, "1.4.0", svc.GetAppVersion(context.Background()))
}

func TestNewAppInfoService_EmptyVersionRejected(t *testing.T) {
	// main подставляет "N/A" вместо пустой версии ещё до этого вызова
	svc, err := NewAppInfoService(config.App{}, logger.Nop())

	assert.Nil(t, svc)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrVersionIsNotSpecified))
}

func TestGetAppVersion_BuildMetadataSurvives(t *testing.T) {
	version := "v1.4.0-rc.1+commit.9f31b2d"
	svc, err := NewAppInfoService(config.App{Version: version}, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, version, svc.GetAppVersion(context.Background()))
}

func TestGetAppVersion_IgnoresContextState(t *testing.T) {
	svc, err := NewAppInfoService(config.App{Version: "1.4.0"}, logger.Nop())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// версия зафиксирована на старте; контекст здесь не участвует
	assert.Equal(t, "1.4.0", svc.GetAppVersion(ctx))
}
