package handlers

import (
	"net/http"

	"github.com/Dosada05/event-manager/services"
)

type TeamHandler struct {
	teamService services.TeamService
}

func NewTeamHandler(ts services.TeamService) *TeamHandler {
	return &TeamHandler{teamService: ts}
}

type createTeamRequest struct {
	Name string `json:"name"`
}

// CreateTeam godoc
// @Summary Create a team in an event
// @Tags teams
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param input body createTeamRequest true "Team name"
// @Success 201 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Security BearerAuth
// @Router /events/{eventID}/teams [post]
func (h *TeamHandler) CreateTeam(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input createTeamRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	team, err := h.teamService.CreateTeam(r.Context(), eventID, input.Name)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusCreated, jsonResponse{"team": team}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// ListTeams godoc
// @Summary List the teams of an event
// @Tags teams
// @Produce json
// @Param eventID path string true "Event ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]string
// @Router /events/{eventID}/teams [get]
func (h *TeamHandler) ListTeams(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	teams, err := h.teamService.ListTeams(r.Context(), eventID)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}
	if err := writeJSON(w, http.StatusOK, jsonResponse{"teams": teams}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

type assignMemberRequest struct {
	ParticipantID string `json:"participant_id"`
}

// AssignMember godoc
// @Summary Assign a participant to a team
// @Tags teams
// @Description Moves the participant out of any other team of the event.
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID"
// @Param teamID path string true "Team ID"
// @Param input body assignMemberRequest true "Participant"
// @Success 200 {object} map[string]bool
// @Failure 404 {object} map[string]interface{} "Event, team or participant not found"
// @Security BearerAuth
// @Router /events/{eventID}/teams/{teamID}/members [put]
func (h *TeamHandler) AssignMember(w http.ResponseWriter, r *http.Request) {
	eventID, err := getIDFromURL(r, "eventID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	teamID, err := getIDFromURL(r, "teamID")
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}
	var input assignMemberRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	if _, err := h.teamService.AssignParticipantToTeam(r.Context(), eventID, input.ParticipantID, teamID); err != nil {
		status, ok := statusForServiceError(err)
		if !ok {
			serverErrorResponse(w, r, err)
			return
		}
		if err := writeJSON(w, status, jsonResponse{"success": false, "error": err.Error()}, nil); err != nil {
			serverErrorResponse(w, r, err)
		}
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
