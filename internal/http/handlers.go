package http

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/shuttle-bracket/internal/advancement"
	"github.com/mauv0809/shuttle-bracket/internal/processor"
	"github.com/mauv0809/shuttle-bracket/internal/pubsub"
	"github.com/mauv0809/shuttle-bracket/internal/stage"
	"github.com/mauv0809/shuttle-bracket/internal/standings"
	"github.com/mauv0809/shuttle-bracket/internal/tournament"
)

const maxBackupSize = 10 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("Failed to encode response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeProcessorError maps processor errors onto HTTP status codes.
func writeProcessorError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, processor.ErrMatchNotFound):
		writeError(w, http.StatusNotFound, "Match not found")
	case errors.Is(err, processor.ErrPlayerNotFound):
		writeError(w, http.StatusNotFound, "Player not found")
	case errors.Is(err, processor.ErrInvalidUpdate), errors.Is(err, processor.ErrInvalidSnapshot):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error("Request failed", "error", err, "requestID", requestIDFromContext(r))
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (s *Server) HealthCheckHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Debug("Received health check request")
		w.WriteHeader(http.StatusOK)
		fmt.Fprintf(w, "OK!")
	}
}

func (s *Server) DataHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := s.Processor.Snapshot(r.Context())
		if err != nil {
			writeProcessorError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, snapshot)
	}
}

// StandingsHandler returns every table, or one category with its overall
// ranking when ?category= is given.
func (s *Server) StandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := s.Processor.Standings(r.Context())
		if err != nil {
			writeProcessorError(w, r, err)
			return
		}

		category := r.URL.Query().Get("category")
		if category == "" {
			writeJSON(w, http.StatusOK, result)
			return
		}
		groups, ok := result.Standings[category]
		if !ok {
			writeError(w, http.StatusNotFound, "No standings for category")
			return
		}
		writeJSON(w, http.StatusOK, categoryStandings{
			Category: category,
			Groups:   groups,
			Overall:  standings.Aggregate(result, category),
		})
	}
}

func (s *Server) AnnounceStandingsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.Announcer == nil {
			writeError(w, http.StatusNotImplemented, "No announcement channel configured")
			return
		}
		category := r.URL.Query().Get("category")
		group := r.URL.Query().Get("group")
		if category == "" {
			writeError(w, http.StatusBadRequest, "category is required")
			return
		}

		result, err := s.Processor.Standings(r.Context())
		if err != nil {
			writeProcessorError(w, r, err)
			return
		}
		var table []standings.Entrant
		if group == "" {
			table = standings.Aggregate(result, category)
		} else {
			group = stage.NormalizeGroup(group)
			var ok bool
			if table, ok = result.Group(category, group); !ok {
				writeError(w, http.StatusNotFound, "No standings for group")
				return
			}
		}

		if err := s.Announcer.SendStandings(category, group, table, isDryRunFromContext(r)); err != nil {
			log.Error("Failed to announce standings", "error", err, "category", category)
			writeError(w, http.StatusBadGateway, "Failed to announce standings")
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Standings announced"})
	}
}

func (s *Server) UpdateMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var upd processor.MatchUpdate
		if err := json.NewDecoder(r.Body).Decode(&upd); err != nil {
			log.Error("Failed to decode match update", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if upd.MatchID == "" {
			writeError(w, http.StatusBadRequest, "matchId is required")
			return
		}

		res, err := s.Processor.UpdateMatch(r.Context(), upd, isDryRunFromContext(r))
		if err != nil {
			writeProcessorError(w, r, err)
			return
		}
		if res.Advanced == nil {
			res.Advanced = []advancement.Change{}
		}
		writeJSON(w, http.StatusOK, updateResponse{Success: true, UpdateResult: *res})
	}
}

func (s *Server) AdvancementInfoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := s.Processor.AdvancementInfo(r.Context(), r.PathValue("id"))
		if err != nil {
			writeProcessorError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, info)
	}
}

func (s *Server) UpdatePlayerHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req playerUpdateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON")
			return
		}
		if req.PlayerID == "" || strings.TrimSpace(req.Name) == "" {
			writeError(w, http.StatusBadRequest, "playerId and name are required")
			return
		}
		if err := s.Processor.UpdatePlayer(r.Context(), req.PlayerID, strings.TrimSpace(req.Name), isDryRunFromContext(r)); err != nil {
			writeProcessorError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Player updated"})
	}
}

func (s *Server) ResetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Received request to reset all match results")
		n, err := s.Processor.Reset(r.Context(), isDryRunFromContext(r))
		if err != nil {
			writeProcessorError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{
			Success: true,
			Message: "All match results have been reset to scheduled state.",
			Stats:   map[string]int{"totalMatchesReset": n},
		})
	}
}

func (s *Server) ActivityLogHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 100
		if raw := r.URL.Query().Get("limit"); raw != "" {
			parsed, err := strconv.Atoi(raw)
			if err != nil || parsed <= 0 {
				writeError(w, http.StatusBadRequest, "limit must be a positive number")
				return
			}
			limit = parsed
		}
		entries, err := s.Processor.ActivityLog(r.Context(), limit)
		if err != nil {
			writeProcessorError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}
}

func (s *Server) BackupDownloadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		snapshot, err := s.Processor.Backup(r.Context())
		if err != nil {
			writeProcessorError(w, r, err)
			return
		}
		body, err := json.MarshalIndent(snapshot, "", "  ")
		if err != nil {
			writeProcessorError(w, r, err)
			return
		}

		timestamp := strings.NewReplacer(":", "-", ".", "-").Replace(time.Now().UTC().Format("2006-01-02T15:04:05.000Z"))
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="tournament-backup-%s.json"`, timestamp))
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}

// BackupUploadHandler accepts either a multipart form with a "backup" file
// field or the backup JSON as the raw body.
func (s *Server) BackupUploadHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, maxBackupSize)

		var body io.Reader = r.Body
		if strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			file, _, err := r.FormFile("backup")
			if err != nil {
				writeError(w, http.StatusBadRequest, "No file uploaded")
				return
			}
			defer file.Close()
			body = file
		}

		var snapshot tournament.Snapshot
		if err := json.NewDecoder(body).Decode(&snapshot); err != nil {
			log.Error("Failed to decode backup", "error", err)
			writeError(w, http.StatusBadRequest, "Invalid JSON file")
			return
		}

		stats, err := s.Processor.Restore(r.Context(), &snapshot, isDryRunFromContext(r))
		if err != nil {
			writeProcessorError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Success: true, Message: "Backup restored successfully", Stats: stats})
	}
}

// decodePush unwraps a Pub/Sub push request into returnValue.
func (s *Server) decodePush(w http.ResponseWriter, r *http.Request, returnValue any) bool {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("Failed to read request body", "error", err)
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return false
	}
	var pushMsg pushRequest
	if err := json.Unmarshal(bodyBytes, &pushMsg); err != nil {
		log.Error("Failed to unmarshal wrapper JSON", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return false
	}
	// Decode base64 to raw MessagePack bytes
	rawData, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		log.Error("Failed to decode base64 data", "error", err)
		http.Error(w, "Invalid base64 data", http.StatusBadRequest)
		return false
	}
	if err := s.pubsub.ProcessMessage(rawData, returnValue); err != nil {
		http.Error(w, "Invalid message payload", http.StatusBadRequest)
		return false
	}
	return true
}

// MatchUpdatedPushHandler relays published match updates to the relay
// notifier, typically Slack.
func (s *Server) MatchUpdatedPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.pubsub == nil || s.Relay == nil {
			http.Error(w, "Push relay is not configured", http.StatusNotImplemented)
			return
		}
		var event pubsub.MatchUpdatedEvent
		if !s.decodePush(w, r, &event) {
			return
		}
		log.Debug("Received match-updated push", "matchID", event.MatchID)
		if err := s.Relay.MatchUpdated(event.Match(), isDryRunFromContext(r)); err != nil {
			// A non-2xx response makes Pub/Sub redeliver.
			http.Error(w, "Failed to relay match update", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) AdvancementResolvedPushHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if s.pubsub == nil || s.Relay == nil {
			http.Error(w, "Push relay is not configured", http.StatusNotImplemented)
			return
		}
		var event pubsub.AdvancementResolvedEvent
		if !s.decodePush(w, r, &event) {
			return
		}
		log.Debug("Received advancement-resolved push", "matchID", event.MatchID, "name", event.Name)
		if err := s.Relay.AdvancementsResolved([]advancement.Change{event.Change()}, isDryRunFromContext(r)); err != nil {
			http.Error(w, "Failed to relay advancement", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}
