package http

import (
	"fmt"
	"net/http"
)

func (h *handlers) buildings(w http.ResponseWriter, r *http.Request) {
	buildings, err := h.d.Locations.Buildings(r.Context())
	if err != nil {
		h.d.Log.Error("building list failed", "request_id", reqID(r.Context()), "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "error getting buildings",
		})
		return
	}
	if buildings == nil {
		buildings = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"buildings": buildings,
		"message":   fmt.Sprintf("Found %d buildings", len(buildings)),
	})
}

func (h *handlers) labRooms(w http.ResponseWriter, r *http.Request) {
	building := r.URL.Query().Get("building_name")
	if building == "" {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "building_name is required",
		})
		return
	}

	rooms, err := h.d.Locations.LabRooms(r.Context(), building)
	if err != nil {
		h.d.Log.Error("lab room list failed", "request_id", reqID(r.Context()), "building", building, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "error getting lab rooms",
		})
		return
	}
	if rooms == nil {
		rooms = []int{}
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"lab_rooms": rooms,
		"message":   fmt.Sprintf("Found %d lab rooms for building %s", len(rooms), building),
	})
}

type locationDTO struct {
	LocationID    int64  `json:"location_id"`
	BuildingName  string `json:"building_name"`
	LabRoomNumber int    `json:"lab_room_number"`
	LockerNumber  int    `json:"locker_number"`
}

func (h *handlers) listLocations(w http.ResponseWriter, r *http.Request) {
	locs, err := h.d.Locations.List(r.Context())
	if err != nil {
		h.d.Log.Error("location list failed", "request_id", reqID(r.Context()), "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "error getting locations",
		})
		return
	}

	out := make([]locationDTO, 0, len(locs))
	for _, l := range locs {
		out = append(out, locationDTO{
			LocationID:    l.ID,
			BuildingName:  l.BuildingName,
			LabRoomNumber: l.LabRoomNumber,
			LockerNumber:  l.LockerNumber,
		})
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":   true,
		"locations": out,
		"message":   fmt.Sprintf("Found %d locations", len(out)),
	})
}
