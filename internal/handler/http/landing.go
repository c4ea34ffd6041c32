package http

import (
	"net/http"

	"github.com/MKhiriev/go-note-keeper/internal/utils"
)

// landing renders the public welcome page. A signed-in visitor is sent
// straight to their notes instead.
func (h *Handler) landing(w http.ResponseWriter, r *http.Request) {
	if _, found := utils.GetUserFromContext(r.Context()); found {
		http.Redirect(w, r, "/notes", http.StatusSeeOther)
		return
	}

	h.render(w, r, "landing", nil)
}
