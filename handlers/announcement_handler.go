package handlers

import (
	"net/http"

	"github.com/Dosada05/event-manager/services"
)

type AnnouncementHandler struct {
	announcementService services.AnnouncementService
}

func NewAnnouncementHandler(as services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{announcementService: as}
}

// CreateAnnouncement godoc
// @Summary Post an announcement to an event
// @Tags announcements
// @Description Every participant of the event gets an alert.
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param input body services.CreateAnnouncementInput true "Announcement"
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /events/{eventID}/announcements [post]
func (h *AnnouncementHandler) CreateAnnouncement(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input services.CreateAnnouncementInput
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}
	input.EventID = eventID

	announcement, err := h.announcementService.CreateAnnouncement(r.Context(), currentSession(r), input)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusCreated, jsonResponse{"announcement": announcement}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListEventAnnouncements godoc
// @Summary List the announcements of an event
// @Tags announcements
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /events/{eventID}/announcements [get]
func (h *AnnouncementHandler) ListEventAnnouncements(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	announcements, err := h.announcementService.ListAnnouncementsByEvent(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"announcements": announcements}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListAnnouncements godoc
// @Summary List all announcements
// @Tags announcements
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /announcements [get]
func (h *AnnouncementHandler) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.announcementService.ListAnnouncements(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"announcements": announcements}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
