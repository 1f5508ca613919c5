package handlers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Dosada05/event-manager/models"
	"github.com/Dosada05/event-manager/services"
)

const maxLogoBytes = 5 << 20

type EventHandler struct {
	eventService services.EventService
}

func NewEventHandler(es services.EventService) *EventHandler {
	return &EventHandler{eventService: es}
}

// CreateEvent godoc
// @Summary Create an event
// @Tags events
// @Description The join code is generated by the server.
// @Accept json
// @Produce json
// @Param input body services.CreateEventInput true "Event data"
// @Success 201 {object} map[string]interface{}
// @Failure 422 {object} map[string]string "Validation error"
// @Security BearerAuth
// @Router /events [post]
func (h *EventHandler) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var input services.CreateEventInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	event, err := h.eventService.CreateEvent(r.Context(), currentSession(r), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"event": event}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListEvents godoc
// @Summary List events
// @Tags events
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /events [get]
func (h *EventHandler) ListEvents(w http.ResponseWriter, r *http.Request) {
	events, err := h.eventService.GetEvents(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"events": events}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetEvent godoc
// @Summary Get an event with its requests, participants, teams and announcements
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /events/{eventID} [get]
func (h *EventHandler) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	event, err := h.eventService.GetEventByID(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"event": event}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetEventByJoinCode godoc
// @Summary Look up an event by join code
// @Tags events
// @Produce json
// @Param joinCode path string true "Join code (case-insensitive)"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /events/code/{joinCode} [get]
func (h *EventHandler) GetEventByJoinCode(w http.ResponseWriter, r *http.Request) {
	code, err := getIDFromURL(r, "joinCode")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	event, err := h.eventService.GetEventByJoinCode(r.Context(), code)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"event": event}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type updateEventStatusRequest struct {
	Status models.EventStatus `json:"status"`
}

// UpdateEventStatus godoc
// @Summary Change an event's status
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param input body updateEventStatusRequest true "New status"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Not the organizer"
// @Failure 404 {object} map[string]string
// @Security BearerAuth
// @Router /events/{eventID}/status [patch]
func (h *EventHandler) UpdateEventStatus(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input updateEventStatusRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	event, err := h.eventService.UpdateEventStatus(r.Context(), currentSession(r), eventID, input.Status)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"event": event}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UploadLogo godoc
// @Summary Upload an event logo
// @Tags events
// @Accept multipart/form-data
// @Produce json
// @Param eventID path string true "Event ID"
// @Param logo formData file true "Logo image"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} map[string]string "Not the organizer"
// @Failure 422 {object} map[string]string "Unsupported type or storage disabled"
// @Security BearerAuth
// @Router /events/{eventID}/logo [put]
func (h *EventHandler) UploadLogo(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxLogoBytes+1024)
	if err := r.ParseMultipartForm(maxLogoBytes); err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to parse multipart form: %w", err))
		return
	}

	file, header, err := r.FormFile("logo")
	if err != nil {
		badRequestResponse(w, r, fmt.Errorf("failed to get logo file from form: %w", err))
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if contentType == "" {
		badRequestResponse(w, r, errors.New("content-type header is required for logo"))
		return
	}

	event, err := h.eventService.UploadLogo(r.Context(), currentSession(r), eventID, contentType, file)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"event": event}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListParticipants godoc
// @Summary List an event's participants
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /events/{eventID}/participants [get]
func (h *EventHandler) ListParticipants(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	participants, err := h.eventService.ListParticipants(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"participants": participants}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
