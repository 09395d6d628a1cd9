package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
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

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (s *HTTPServer) handleLogin(w http.ResponseWriter, r *http.Request) {

	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Username == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "username and password are required")
		return
	}

	token, err := s.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		s.logger.Error(r.Context(), "login failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

type createTaskRequest struct {
	Type       string          `json:"type"`
	Parameters json.RawMessage `json:"parameters"`
}

func (s *HTTPServer) handleCreateTask(w http.ResponseWriter, r *http.Request) {

	var req createTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Type == "" || len(req.Parameters) == 0 {
		writeError(w, http.StatusBadRequest, "type and parameters are required")
		return
	}

	claims := claimsFromContext(r.Context())
	if claims == nil {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	taskID, err := s.tasks.Create(r.Context(), req.Type, string(req.Parameters), claims.UserID)
	if err != nil {
		s.logger.Error(r.Context(), "task creation failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.logger.Info(r.Context(), "task created", "task_id", taskID, "type", req.Type)
	writeJSON(w, http.StatusOK, map[string]string{"task_id": taskID})
}

func (s *HTTPServer) handleGetTask(w http.ResponseWriter, r *http.Request) {

	taskID := chi.URLParam(r, "taskID")

	task, err := s.tasks.GetByID(r.Context(), taskID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "task not found")
			return
		}
		s.logger.Error(r.Context(), "task lookup failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, task)
}

type patchStatusRequest struct {
	Status string `json:"status"`
}

func (s *HTTPServer) handlePatchTaskStatus(w http.ResponseWriter, r *http.Request) {

	taskID := chi.URLParam(r, "taskID")

	var req patchStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !common.StatusAllowed(req.Status) {
		writeError(w, http.StatusBadRequest, "invalid status")
		return
	}

	if err := s.tasks.SetStatus(r.Context(), taskID, req.Status); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "task not found")
			return
		}
		s.logger.Error(r.Context(), "status update failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	s.logger.Info(r.Context(), "task status updated", "task_id", taskID, "status", req.Status)
	writeJSON(w, http.StatusOK, map[string]string{"result": "ok"})
}

type putUserKeyRequest struct {
	KeyData string `json:"key_data"`
}

func (s *HTTPServer) handlePutUserKey(w http.ResponseWriter, r *http.Request) {

	userID := chi.URLParam(r, "userID")

	var req putUserKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || userID == "" || req.KeyData == "" {
		writeError(w, http.StatusBadRequest, "user id and key_data are required")
		return
	}

	if err := s.userKeys.Upsert(r.Context(), userID, req.KeyData); err != nil {
		s.logger.Error(r.Context(), "key upsert failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"result": "ok"})
}

func (s *HTTPServer) handleGetUserKey(w http.ResponseWriter, r *http.Request) {

	userID := chi.URLParam(r, "userID")

	key, err := s.userKeys.GetByUserID(r.Context(), userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "key not found")
			return
		}
		s.logger.Error(r.Context(), "key lookup failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "internal error")
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"key_data": key.KeyData})
}

type checkTokenRequest struct {
	Token string `json:"token"`
}

func (s *HTTPServer) handleCheckToken(w http.ResponseWriter, r *http.Request) {

	var req checkTokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Token == "" {
		writeError(w, http.StatusBadRequest, "token is required")
		return
	}

	result := "invalid"
	if s.users.CheckToken(req.Token) {
		result = "valid"
	}

	writeJSON(w, http.StatusOK, map[string]string{"result": result})
}
