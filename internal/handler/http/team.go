package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/sitecrew/workforce-backend/internal/domain/team"
	"github.com/sitecrew/workforce-backend/internal/handler/http/response"
	"github.com/sitecrew/workforce-backend/internal/pkg/validator"
)

type TeamHandler interface {
	Assign(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	MyTeam(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	Stats(w http.ResponseWriter, r *http.Request)
}

type teamHandlerImpl struct {
	teamService team.TeamService
}

func NewTeamHandler(teamService team.TeamService) TeamHandler {
	return &teamHandlerImpl{
		teamService: teamService,
	}
}

// Assign handles POST /teams
func (h *teamHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}

	var assignReq team.AssignTeamRequest
	if err := json.NewDecoder(r.Body).Decode(&assignReq); err != nil {
		slog.Error("AssignTeam decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.teamService.AssignToTeam(r.Context(), req, assignReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Laborer assigned to team successfully", result)
}

// List handles GET /teams
func (h *teamHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}

	var errs validator.ValidationErrors
	filter := team.TeamAssignmentFilter{
		SupervisorID: queryString(r, "supervisor_id"),
		TeamName:     queryString(r, "team_name"),
		SiteLocation: queryString(r, "site_location"),
		IsActive:     queryBool(r, "is_active", &errs),
	}
	if len(errs) > 0 {
		response.HandleError(w, errs)
		return
	}

	result, err := h.teamService.ListAssignments(r.Context(), req, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// MyTeam handles GET /teams/my-team
func (h *teamHandlerImpl) MyTeam(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}

	result, err := h.teamService.MyTeam(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Update handles PUT /teams/{id}
func (h *teamHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}

	var updateReq team.UpdateTeamAssignmentRequest
	if err := json.NewDecoder(r.Body).Decode(&updateReq); err != nil {
		slog.Error("UpdateTeamAssignment decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	updateReq.ID = chi.URLParam(r, "id")

	result, err := h.teamService.UpdateAssignment(r.Context(), req, updateReq)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Team assignment updated successfully", result)
}

// Deactivate handles DELETE /teams/{id}
func (h *teamHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}

	if err := h.teamService.DeactivateAssignment(r.Context(), req, chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Team assignment deactivated successfully", nil)
}

// Stats handles GET /teams/stats/{supervisorID}
func (h *teamHandlerImpl) Stats(w http.ResponseWriter, r *http.Request) {
	req, ok := requester(w, r)
	if !ok {
		return
	}

	result, err := h.teamService.GetTeamStats(r.Context(), req, chi.URLParam(r, "supervisorID"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
