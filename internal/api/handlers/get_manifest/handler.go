package get_manifest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/kamaubrian/TwendeBus-AssistantService/internal/api/handlers"
	"github.com/kamaubrian/TwendeBus-AssistantService/internal/service/reports"
)

const (
	msgRouteNotFound = "route not found"
	msgBadFormat     = "format must be json or pdf"
)

type Handler struct {
	reporter Reporter
	logger   Logger
}

func NewHandler(reporter Reporter, logger Logger) *Handler {
	return &Handler{
		reporter: reporter,
		logger:   logger,
	}
}

// Handle GET /api/v1/routes/{routeId}/manifest?format=json|pdf
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	routeID := mux.Vars(r)["routeId"]

	switch r.URL.Query().Get("format") {
	case "", "json":
		manifest, err := h.reporter.RouteManifest(routeID)
		if err != nil {
			h.respondManifestError(w, routeID, err)
			return
		}
		h.logger.Info("GET /routes/%s/manifest - %d passengers", routeID, len(manifest.Passengers))
		handlers.RespondJSON(w, http.StatusOK, manifest)

	case "pdf":
		data, err := h.reporter.ManifestPDF(routeID)
		if err != nil {
			h.respondManifestError(w, routeID, err)
			return
		}
		h.logger.Info("GET /routes/%s/manifest - pdf rendered, %d bytes", routeID, len(data))
		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", "manifest-"+routeID+".pdf"))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)

	default:
		handlers.RespondBadRequest(w, msgBadFormat)
	}
}

func (h *Handler) respondManifestError(w http.ResponseWriter, routeID string, err error) {
	if errors.Is(err, reports.ErrRouteNotFound) {
		h.logger.Warn("GET /routes/%s/manifest - route not found", routeID)
		handlers.RespondNotFound(w, msgRouteNotFound)
		return
	}
	h.logger.Error("GET /routes/%s/manifest - failed: %v", routeID, err)
	handlers.RespondInternalError(w)
}
