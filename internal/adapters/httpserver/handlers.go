package httpserver

import (
	"crypto/subtle"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"

	"go.uber.org/zap"

	"lookbook/internal/adapters/remotestore"
)

// maxBodySize caps write bodies; the snapshot is small.
const maxBodySize = 16 << 20

// getData serves the current snapshot: the stored blob when one has been
// written, otherwise the bundled default snapshot.
func (s *Server) getData(w http.ResponseWriter, r *http.Request) {
	blob, err := s.store.Get(r.Context())
	if err != nil {
		s.logger.Warn("blob store read failed, using bundled default", zap.Error(err))
	}
	if len(blob) == 0 {
		blob, err = os.ReadFile(s.defaultSnapshot)
		if err != nil {
			s.logger.Error("failed to load default snapshot", zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorBody("Failed to load collections data."))
			return
		}
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	w.Write(blob)
}

// postData replaces the stored snapshot. The body must be a JSON object
// with object-valued all_index and all_items; everything else in it is
// stored and echoed back untouched.
func (s *Server) postData(w http.ResponseWriter, r *http.Request) {
	if !s.authorized(r) {
		writeJSON(w, http.StatusUnauthorized, errorBody("Unauthorized."))
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Request body must be valid JSON."))
		return
	}

	if !json.Valid(body) {
		writeJSON(w, http.StatusBadRequest, errorBody("Request body must be valid JSON."))
		return
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal(body, &top); err != nil || top == nil {
		writeJSON(w, http.StatusBadRequest, errorBody("Request body must be a JSON object."))
		return
	}

	if !isJSONObject(top["all_index"]) {
		writeJSON(w, http.StatusBadRequest, errorBody("Missing or invalid all_index."))
		return
	}
	if !isJSONObject(top["all_items"]) {
		writeJSON(w, http.StatusBadRequest, errorBody("Missing or invalid all_items."))
		return
	}

	if err := s.store.Set(r.Context(), body); err != nil {
		s.logger.Error("failed to persist snapshot", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorBody("Failed to persist collections data."))
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	// Echo the payload verbatim inside the envelope.
	w.Write([]byte(`{"ok":true,"data":`))
	w.Write(body)
	w.Write([]byte(`}`))
}

// authorized checks the edit key. An empty configured key disables the
// check entirely.
func (s *Server) authorized(r *http.Request) bool {
	required := strings.TrimSpace(s.editKey)
	if required == "" {
		return true
	}
	provided := strings.TrimSpace(r.Header.Get(remotestore.HeaderEditKey))
	return subtle.ConstantTimeCompare([]byte(provided), []byte(required)) == 1
}

func isJSONObject(raw json.RawMessage) bool {
	if raw == nil {
		return false
	}
	var m map[string]json.RawMessage
	return json.Unmarshal(raw, &m) == nil && m != nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func errorBody(message string) map[string]string {
	return map[string]string{"error": message}
}
