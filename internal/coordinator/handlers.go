package coordinator

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/keygrove/ceremony/internal/common"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}

// bearerAuth lets a request through only when the task service reports its
// bearer token valid.
func (s *HTTPServer) bearerAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {

		header := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			writeError(w, http.StatusUnauthorized, "missing token")
			return
		}

		valid, err := s.api.CheckToken(r.Context(), token)
		if err != nil {
			s.logger.Error(r.Context(), "token check failed", "error", err.Error())
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}
		if !valid {
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		next.ServeHTTP(w, r)
	})
}

type entryRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func (s *HTTPServer) handleGet(w http.ResponseWriter, r *http.Request) {

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}

	// A miss is a normal polling outcome, not an HTTP failure.
	value, ok := s.mailbox.Get(req.Key)
	if !ok {
		writeJSON(w, http.StatusOK, map[string]string{"error": "not found"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"key": req.Key, "value": value})
}

func (s *HTTPServer) handleSet(w http.ResponseWriter, r *http.Request) {

	var req entryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Key == "" {
		writeError(w, http.StatusBadRequest, "key is required")
		return
	}

	s.mailbox.Set(req.Key, req.Value)
	writeJSON(w, http.StatusOK, map[string]string{"result": "ok"})
}

type signupRequest struct {
	TaskID string `json:"task_id"`
}

type taskParams struct {
	Threshold *int `json:"t"`
	Parties   *int `json:"n"`
}

// handleSignup validates the task and allocates the next party slot. The
// batch size differs per ceremony type: all n parties join a key generation,
// while t+1 parties suffice for signing.
func (s *HTTPServer) handleSignup(w http.ResponseWriter, r *http.Request, taskType string) {

	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.TaskID == "" {
		writeError(w, http.StatusBadRequest, "task_id is required")
		return
	}

	task, err := s.api.GetTask(r.Context(), req.TaskID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusBadRequest, "unknown task")
			return
		}
		s.logger.Error(r.Context(), "task lookup failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	if task.Type != taskType {
		writeError(w, http.StatusBadRequest, "task type mismatch")
		return
	}
	if task.Status != common.StatusCreated {
		writeError(w, http.StatusBadRequest, "task is not accepting signups")
		return
	}

	var params taskParams
	if err := json.Unmarshal([]byte(task.Parameters), &params); err != nil ||
		params.Threshold == nil || params.Parties == nil {
		writeError(w, http.StatusBadRequest, "task parameters are invalid")
		return
	}

	batchSize := *params.Parties
	if taskType == common.TaskTypeSigning {
		batchSize = *params.Threshold + 1
	}

	signup := s.signups.Next(task.ID, batchSize)

	header := r.Header.Get("Authorization")
	token, _ := strings.CutPrefix(header, "Bearer ")
	s.spawnParty(r.Context(), task.ID, token)

	s.logger.Info(r.Context(), "party signed up",
		"task_id", task.ID, "number", signup.Number, "uuid", signup.UUID)
	writeJSON(w, http.StatusOK, signup)
}

func (s *HTTPServer) handleSignupKeygen(w http.ResponseWriter, r *http.Request) {
	s.handleSignup(w, r, common.TaskTypeKeyGeneration)
}

func (s *HTTPServer) handleSignupSign(w http.ResponseWriter, r *http.Request) {
	s.handleSignup(w, r, common.TaskTypeSigning)
}
