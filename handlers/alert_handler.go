package handlers

import (
	"net/http"

	"github.com/Dosada05/event-manager/services"
)

const defaultAlertPageSize = 50

type AlertHandler struct {
	alertService services.AlertService
}

func NewAlertHandler(as services.AlertService) *AlertHandler {
	return &AlertHandler{alertService: as}
}

// ListAlerts godoc
// @Summary List the caller's alerts, newest first
// @Tags alerts
// @Produce json
// @Param limit query int false "Page size" default(50)
// @Param offset query int false "Offset" default(0)
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Security BearerAuth
// @Router /alerts [get]
func (h *AlertHandler) ListAlerts(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", defaultAlertPageSize)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	alerts, err := h.alertService.GetAlerts(r.Context(), currentSession(r), limit, offset)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"alerts": alerts}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UnreadCount godoc
// @Summary Count the caller's unread alerts
// @Tags alerts
// @Produce json
// @Success 200 {object} map[string]int
// @Security BearerAuth
// @Router /alerts/unread-count [get]
func (h *AlertHandler) UnreadCount(w http.ResponseWriter, r *http.Request) {
	count, err := h.alertService.GetUnreadAlertsCount(r.Context(), currentSession(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"count": count}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// MarkRead godoc
// @Summary Mark one alert as read
// @Tags alerts
// @Produce json
// @Param alertID path string true "Alert ID"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]string "Alert not found or owned by someone else"
// @Security BearerAuth
// @Router /alerts/{alertID}/read [post]
func (h *AlertHandler) MarkRead(w http.ResponseWriter, r *http.Request) {
	alertID, err := getIDFromURL(r, "alertID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if err := h.alertService.MarkAlertAsRead(r.Context(), currentSession(r), alertID); err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// MarkAllRead godoc
// @Summary Mark every alert of the caller as read
// @Tags alerts
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Security BearerAuth
// @Router /alerts/read-all [post]
func (h *AlertHandler) MarkAllRead(w http.ResponseWriter, r *http.Request) {
	updated, err := h.alertService.MarkAllAlertsAsRead(r.Context(), currentSession(r))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true, "updated": updated}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
