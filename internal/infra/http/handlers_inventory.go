package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/chemtrack/chemtrack/internal/domain/inventory"
	"github.com/chemtrack/chemtrack/internal/infra/metrics"
)

type updateInventoryRequest struct {
	InventoryID int64           `json:"inventory_id"`
	Quantity    decimal.Decimal `json:"quantity"`
	Action      string          `json:"action"`
}

type updateInventoryResponse struct {
	Success      bool    `json:"success"`
	NewQuantity  float64 `json:"new_quantity"`
	BelowReorder bool    `json:"below_reorder"`
	Message      string  `json:"message"`
}

func (h *handlers) updateInventory(w http.ResponseWriter, r *http.Request) {
	var req updateInventoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, updateInventoryResponse{
			Message: "invalid request body: " + err.Error(),
		})
		return
	}
	if !req.Quantity.IsPositive() {
		writeJSON(w, http.StatusBadRequest, updateInventoryResponse{
			Message: "quantity must be greater than zero",
		})
		return
	}

	// bound the label set: the action comes from the client
	actionLabel := req.Action
	if actionLabel != string(inventory.ActionAdd) && actionLabel != string(inventory.ActionRemove) {
		actionLabel = "other"
	}

	adj, err := h.d.Inventory.Adjust(r.Context(), req.InventoryID, req.Quantity, inventory.Action(req.Action))
	if err != nil {
		if errors.Is(err, inventory.ErrInvalidQuantity) {
			metrics.AdjustmentsTotal.WithLabelValues(actionLabel, "invalid_quantity").Inc()
			writeJSON(w, http.StatusBadRequest, updateInventoryResponse{
				Message: "quantity must be greater than zero",
			})
			return
		}
		metrics.AdjustmentsTotal.WithLabelValues(actionLabel, "error").Inc()
		writeJSON(w, http.StatusInternalServerError, updateInventoryResponse{
			Message: "error processing inventory update",
		})
		return
	}

	if !adj.OK {
		metrics.AdjustmentsTotal.WithLabelValues(actionLabel, string(adj.Code)).Inc()
		status := http.StatusBadRequest
		if adj.Code == inventory.CodeNotFound {
			status = http.StatusNotFound
		}
		writeJSON(w, status, updateInventoryResponse{
			NewQuantity:  adj.NewQuantity.InexactFloat64(),
			BelowReorder: adj.BelowReorder,
			Message:      adj.Message,
		})
		return
	}

	metrics.AdjustmentsTotal.WithLabelValues(actionLabel, "success").Inc()
	if h.d.Cache != nil {
		h.d.Cache.Invalidate(r.Context(), req.InventoryID)
	}
	writeJSON(w, http.StatusOK, updateInventoryResponse{
		Success:      true,
		NewQuantity:  adj.NewQuantity.InexactFloat64(),
		BelowReorder: adj.BelowReorder,
		Message:      adj.Message,
	})
}

type reorderChemicalDTO struct {
	ID              int64   `json:"id"`
	Name            string  `json:"name"`
	UnitOfMeasure   string  `json:"unit_of_measure"`
	Quantity        float64 `json:"quantity"`
	ReorderQuantity float64 `json:"reorder_quantity"`
	BuildingName    string  `json:"building_name"`
	LabRoomNumber   int     `json:"lab_room_number"`
}

type reorderUserDTO struct {
	Username  string               `json:"username"`
	Email     string               `json:"email"`
	Chemicals []reorderChemicalDTO `json:"chemicals"`
}

func (h *handlers) reorderNotifications(w http.ResponseWriter, r *http.Request) {
	targets, err := h.d.Notify.UsersToNotify(r.Context())
	if err != nil {
		h.d.Log.Error("reorder notification query failed", "request_id", reqID(r.Context()), "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "error getting reorder notifications",
		})
		return
	}

	users := make([]reorderUserDTO, 0, len(targets))
	for _, t := range targets {
		u := reorderUserDTO{Username: t.Username, Email: t.Email}
		for _, c := range t.Chemicals {
			u.Chemicals = append(u.Chemicals, reorderChemicalDTO{
				ID:              c.InventoryID,
				Name:            c.Name,
				UnitOfMeasure:   c.UnitOfMeasure,
				Quantity:        c.Quantity.InexactFloat64(),
				ReorderQuantity: c.ReorderQuantity.InexactFloat64(),
				BuildingName:    c.BuildingName,
				LabRoomNumber:   c.LabRoomNumber,
			})
		}
		users = append(users, u)
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"users":   users,
		"message": fmt.Sprintf("Found %d users to notify", len(users)),
	})
}
