package http

import "net/http"

func (h *handlers) getPreferences(w http.ResponseWriter, r *http.Request) {
	username := r.URL.Query().Get("username")
	if username == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "username is required",
		})
		return
	}

	prefs, err := h.d.Prefs.Get(r.Context(), username, r.URL.Query().Get("key"))
	if err != nil {
		h.d.Log.Error("preference read failed", "request_id", reqID(r.Context()), "username", username, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "error getting preferences",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"preferences": prefs,
	})
}

type setPreferenceRequest struct {
	Username string `json:"username"`
	Key      string `json:"key"`
	Value    string `json:"value"`
}

func (h *handlers) setPreference(w http.ResponseWriter, r *http.Request) {
	var req setPreferenceRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "invalid request body: " + err.Error(),
		})
		return
	}
	if req.Username == "" || req.Key == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "username and key are required",
		})
		return
	}

	prefs, err := h.d.Prefs.Set(r.Context(), req.Username, req.Key, req.Value)
	if err != nil {
		h.d.Log.Error("preference update failed", "request_id", reqID(r.Context()), "username", req.Username, "key", req.Key, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "error updating preference",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success":     true,
		"preferences": prefs,
	})
}
