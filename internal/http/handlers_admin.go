package httpx

import (
	"net/http"

	"github.com/beanfield/storefront-gateway/internal/domain/nav"
)

// AdminHandlers serves the back-office section endpoints. Authorization is
// enforced by the Protect middleware at route registration; handlers only
// shape the payload.
type AdminHandlers struct{}

// sectionPayload shapes a back-office section response: the section name
// plus the navigation entries the caller's role may see.
func sectionPayload(r *http.Request, section string) map[string]any {
	identity := IdentityFromContext(r.Context())
	payload := map[string]any{"section": section}
	if identity != nil {
		payload["user"] = identityPayload(*identity)
		payload["nav"] = nav.RoutesForRole(identity.Role)
	}
	return payload
}

// Dashboard is the admin-only overview.
// GET /api/admin/dashboard.
func (h *AdminHandlers) Dashboard(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, sectionPayload(r, "dashboard"))
}

// Warehouse is the inventory section.
// GET /api/admin/warehouse.
func (h *AdminHandlers) Warehouse(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, sectionPayload(r, "warehouse"))
}

// Sales is the sales section.
// GET /api/admin/sales.
func (h *AdminHandlers) Sales(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, sectionPayload(r, "sales"))
}

// HR is the personnel section.
// GET /api/admin/hr.
func (h *AdminHandlers) HR(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, sectionPayload(r, "hr"))
}

// Analytics is the admin-only analytics section.
// GET /api/admin/analytics.
func (h *AdminHandlers) Analytics(w http.ResponseWriter, r *http.Request) {
	WriteJSON(w, http.StatusOK, sectionPayload(r, "analytics"))
}

// Nav returns the navigation entries and landing path for the caller's
// role. Guests get an empty list.
// GET /api/nav.
func (h *AdminHandlers) Nav(w http.ResponseWriter, r *http.Request) {
	identity := IdentityFromContext(r.Context())
	if identity == nil {
		WriteJSON(w, http.StatusOK, map[string]any{
			"routes":  []nav.Entry{},
			"landing": "/",
		})
		return
	}
	routes := nav.RoutesForRole(identity.Role)
	if routes == nil {
		routes = []nav.Entry{}
	}
	WriteJSON(w, http.StatusOK, map[string]any{
		"routes":  routes,
		"landing": nav.LandingPath(identity.Role),
	})
}
