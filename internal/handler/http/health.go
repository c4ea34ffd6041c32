package http

import (
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/utils"
	"github.com/MKhiriev/go-note-keeper/models"
)

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	appVersion := h.services.AppInfoService.GetAppVersion(r.Context())

	utils.WriteJSON(w, models.HealthResponse{Status: "ok", Version: appVersion}, http.StatusOK)
}
