package server

import (
	"net/http"
	"net/url"
	"time"

	"github.com/go-chi/chi/v5"

	"league-tracker/internal/domain"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]time.Time{"time": time.Now()})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(r.Context()); err != nil {
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"message":  "Server is running",
			"database": "unreachable",
		})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"message":  "Server is running",
		"database": "connected",
	})
}

func (s *Server) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	players, err := s.players.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, players)
}

func (s *Server) handleFilteredPlayers(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	rows, err := s.players.ListFiltered(r.Context(), domain.PlayerFilter{
		RegionName: q.Get("regionName"),
		AgentName:  q.Get("mainAgent"),
		Timespan:   q.Get("timespan"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rows)
}

func (s *Server) handlePlayerDetail(w http.ResponseWriter, r *http.Request) {
	name := pathName(r)

	detail, err := s.players.Detail(r.Context(), name)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, detail)
}

func (s *Server) handleListTeams(w http.ResponseWriter, r *http.Request) {
	teams, err := s.teams.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, teams)
}

func (s *Server) handleTeamMatches(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	matches, err := s.matches.TeamMatches(r.Context(), domain.MatchFilter{
		TeamName:   q.Get("teamName"),
		RegionMode: q.Get("regionName"),
		WinsOnly:   q.Get("win") == "true",
		StartDate:  q.Get("startDate"),
		EndDate:    q.Get("endDate"),
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, matches)
}

func (s *Server) handleTeamTierList(w http.ResponseWriter, r *http.Request) {
	ranks, err := s.rankings.TeamTierList(r.Context(), r.URL.Query().Get("regionName"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ranks)
}

func (s *Server) handleAgentTierList(w http.ResponseWriter, r *http.Request) {
	ranks, err := s.rankings.AgentTierList(r.Context(), r.URL.Query().Get("regionName"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, ranks)
}

func (s *Server) handleAdminListPlayers(w http.ResponseWriter, r *http.Request) {
	roster, err := s.players.Roster(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, roster)
}

func (s *Server) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	var in domain.PlayerCreate
	if !s.decode(w, r, &in) {
		return
	}

	playerID, err := s.players.Create(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]any{
		"message":   "Successfully inserted player.",
		"player_id": playerID,
	})
}

func (s *Server) handleUpdatePlayer(w http.ResponseWriter, r *http.Request) {
	var in domain.PlayerUpdate
	if !s.decode(w, r, &in) {
		return
	}

	if err := s.players.Update(r.Context(), in); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Player successfully updated."})
}

func (s *Server) handleDeletePlayer(w http.ResponseWriter, r *http.Request) {
	if err := s.players.Delete(r.Context(), pathName(r)); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Player successfully removed."})
}

func (s *Server) handleAdminListTeams(w http.ResponseWriter, r *http.Request) {
	entries, err := s.teams.ListWithRegions(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	var in domain.TeamCreate
	if !s.decode(w, r, &in) {
		return
	}

	teamID, err := s.teams.Create(r.Context(), in)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Successfully inserted team.",
		"team_id": teamID,
	})
}

func (s *Server) handleUpdateTeam(w http.ResponseWriter, r *http.Request) {
	var in domain.TeamUpdate
	if !s.decode(w, r, &in) {
		return
	}

	if err := s.teams.Update(r.Context(), in); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Team successfully updated."})
}

func (s *Server) handleDeleteTeam(w http.ResponseWriter, r *http.Request) {
	if err := s.teams.Delete(r.Context(), pathName(r)); err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{"message": "Team successfully removed."})
}

// pathName pulls the {name} segment; player and team names can carry spaces,
// so the escaped form is decoded before lookup.
func pathName(r *http.Request) string {
	name := chi.URLParam(r, "name")
	if decoded, err := url.PathUnescape(name); err == nil {
		return decoded
	}
	return name
}
