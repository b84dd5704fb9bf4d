package server

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/team-composer/internal/db"
	"github.com/jonathan/team-composer/internal/membership"
	"github.com/jonathan/team-composer/internal/ranking"
	"github.com/jonathan/team-composer/internal/types"
)

// CandidatesResponse is the response for GET /teams/{id}/candidates.
type CandidatesResponse struct {
	TeamID     uuid.UUID              `json:"team_id"`
	TeamName   string                 `json:"team_name"`
	Candidates []types.CandidateScore `json:"candidates"`
}

// AddMembersRequest is the request body for POST /teams/{id}/members.
type AddMembersRequest struct {
	EmployeeIDs []uuid.UUID `json:"employee_ids"`
}

// MoveMemberRequest is the request body for the move endpoint.
type MoveMemberRequest struct {
	TargetTeamID uuid.UUID `json:"target_team_id"`
}

// handleFindCandidates ranks every eligible employee against the team's
// required technologies. Optional query parameters narrow the pool and
// feed the role bonus: role, area, level, technologies (comma separated).
func (s *Server) handleFindCandidates(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid team ID format")
		return
	}

	var level types.ExperienceLevel
	if raw := r.URL.Query().Get("level"); raw != "" {
		level, err = types.ParseExperienceLevel(raw)
		if err != nil {
			s.errorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
	}

	team, err := s.directory.GetTeamByID(r.Context(), teamID)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}
	if team == nil {
		s.domainError(w, &membership.ErrTeamNotFound{TeamID: teamID})
		return
	}

	area := r.URL.Query().Get("area")
	if area == "" {
		area = team.Area
	}
	// The desired role feeds only the scoring bonus below. It never
	// narrows the pool: non-claimants still appear, ranked without the
	// bonus.
	pool, err := s.directory.ListEmployeesMatchingFilter(r.Context(), db.EmployeeFilter{
		Area:         area,
		Level:        level,
		Technologies: splitTechnologies(r.URL.Query().Get("technologies")),
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, "Database error: "+err.Error())
		return
	}

	candidates, err := s.ranker.Rank(r.Context(), pool, team.Requirements, ranking.Filter{
		Role:        r.URL.Query().Get("role"),
		Area:        area,
		Level:       level,
		ExcludeTeam: team,
	})
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	s.metrics.candidateQueries.Inc()
	s.jsonResponse(w, http.StatusOK, CandidatesResponse{
		TeamID:     team.ID,
		TeamName:   team.Name,
		Candidates: candidates,
	})
}

// splitTechnologies parses a comma-separated technology list, trimming
// whitespace and dropping empty entries.
func splitTechnologies(raw string) []string {
	if raw == "" {
		return nil
	}
	var technologies []string
	for _, item := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			technologies = append(technologies, trimmed)
		}
	}
	return technologies
}

// handleAddMembers assigns one or more employees to a team.
func (s *Server) handleAddMembers(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid team ID format")
		return
	}

	var req AddMembersRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if len(req.EmployeeIDs) == 0 {
		s.errorResponse(w, http.StatusBadRequest, "employee_ids is required")
		return
	}

	view, err := s.coordinator.AddMembers(r.Context(), teamID, req.EmployeeIDs)
	s.metrics.observeMembership("add", err)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, view)
}

// handleRemoveMember removes an employee from a team.
func (s *Server) handleRemoveMember(w http.ResponseWriter, r *http.Request) {
	teamID, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid team ID format")
		return
	}
	employeeID, err := uuid.Parse(r.PathValue("employee_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	view, err := s.coordinator.RemoveMember(r.Context(), teamID, employeeID)
	s.metrics.observeMembership("remove", err)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, view)
}

// handleMoveMember transfers an employee from the source team to the
// target team named in the body, atomically.
func (s *Server) handleMoveMember(w http.ResponseWriter, r *http.Request) {
	sourceID, err := uuid.Parse(r.PathValue("source_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid team ID format")
		return
	}
	employeeID, err := uuid.Parse(r.PathValue("employee_id"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid employee ID format")
		return
	}

	var req MoveMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}
	if req.TargetTeamID == uuid.Nil {
		s.errorResponse(w, http.StatusBadRequest, "target_team_id is required")
		return
	}

	result, err := s.coordinator.MoveMember(r.Context(), sourceID, req.TargetTeamID, employeeID)
	s.metrics.observeMembership("move", err)
	if err != nil {
		s.domainError(w, err)
		return
	}
	s.jsonResponse(w, http.StatusOK, result)
}

// handleGenerateComposition runs a composition request through the
// generator and returns the proposed rosters. The response carries the
// source so callers can tell a generative result from the deterministic
// assembly.
func (s *Server) handleGenerateComposition(w http.ResponseWriter, r *http.Request) {
	var req types.CompositionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	start := time.Now()
	composition, err := s.composer.Generate(r.Context(), &req)
	if err != nil {
		s.metrics.observeComposition("error", start)
		s.domainError(w, err)
		return
	}
	s.metrics.observeComposition(string(composition.Source), start)
	s.jsonResponse(w, http.StatusCreated, composition)
}
