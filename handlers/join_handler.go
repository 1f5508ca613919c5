package handlers

import (
	"net/http"

	"github.com/Dosada05/event-manager/models"
	"github.com/Dosada05/event-manager/services"
)

type JoinHandler struct {
	joinService services.JoinService
}

func NewJoinHandler(js services.JoinService) *JoinHandler {
	return &JoinHandler{joinService: js}
}

// RequestToJoin godoc
// @Summary Request to join an event by its join code
// @Tags join
// @Description Failures also carry success=false and a message explaining the outcome.
// @Accept json
// @Produce json
// @Param input body services.JoinEventInput true "Join code and requested role"
// @Success 201 {object} services.JoinResult
// @Failure 401 {object} services.JoinResult
// @Failure 404 {object} services.JoinResult "Invalid join code"
// @Failure 409 {object} services.JoinResult "Pending, approved or rejected request exists"
// @Security BearerAuth
// @Router /events/join [post]
func (h *JoinHandler) RequestToJoin(w http.ResponseWriter, r *http.Request) {
	var input services.JoinEventInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.joinService.RequestToJoinEvent(r.Context(), currentSession(r), input)
	if err != nil {
		status, ok := statusForServiceError(err)
		if !ok {
			serverErrorResponse(w, r, err)
			return
		}
		if err := writeJSON(w, status, services.JoinResult{Success: false, Message: err.Error()}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}

	if err := writeJSON(w, http.StatusCreated, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListRequests godoc
// @Summary List join requests of an event
// @Tags join
// @Produce json
// @Param eventID path string true "Event ID"
// @Param status query string false "pending, approved or rejected"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Not the organizer"
// @Security BearerAuth
// @Router /events/{eventID}/requests [get]
func (h *JoinHandler) ListRequests(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	var status *models.JoinRequestStatus
	if raw := r.URL.Query().Get("status"); raw != "" {
		s := models.JoinRequestStatus(raw)
		status = &s
	}

	requests, err := h.joinService.ListRequests(r.Context(), currentSession(r), eventID, status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"requests": requests}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ApproveRequest godoc
// @Summary Approve a pending join request
// @Tags join
// @Produce json
// @Param eventID path string true "Event ID"
// @Param requestID path string true "Join request ID"
// @Success 200 {object} map[string]interface{} "The new participant"
// @Failure 403 {object} map[string]string "Not the organizer"
// @Failure 409 {object} map[string]string "Already reviewed"
// @Security BearerAuth
// @Router /events/{eventID}/requests/{requestID}/approve [post]
func (h *JoinHandler) ApproveRequest(w http.ResponseWriter, r *http.Request) {
	eventID, requestID, ok := h.requestPath(w, r)
	if !ok {
		return
	}

	participant, err := h.joinService.ApproveRequest(r.Context(), currentSession(r), eventID, requestID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"participant": participant}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RejectRequest godoc
// @Summary Reject a pending join request
// @Tags join
// @Produce json
// @Param eventID path string true "Event ID"
// @Param requestID path string true "Join request ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Not the organizer"
// @Failure 409 {object} map[string]string "Already reviewed"
// @Security BearerAuth
// @Router /events/{eventID}/requests/{requestID}/reject [post]
func (h *JoinHandler) RejectRequest(w http.ResponseWriter, r *http.Request) {
	eventID, requestID, ok := h.requestPath(w, r)
	if !ok {
		return
	}

	req, err := h.joinService.RejectRequest(r.Context(), currentSession(r), eventID, requestID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"request": req}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

func (h *JoinHandler) requestPath(w http.ResponseWriter, r *http.Request) (eventID, requestID string, ok bool) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return "", "", false
	}
	requestID, err = getIDFromURL(r, "requestID")
	if err != nil {
		badRequestResponse(w, r, err)
		return "", "", false
	}
	return eventID, requestID, true
}
