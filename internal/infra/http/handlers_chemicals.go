package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"

	"github.com/chemtrack/chemtrack/internal/domain/chemicals"
)

type chemicalDTO struct {
	ID                   int64   `json:"id"`
	Name                 string  `json:"name"`
	UnitOfMeasure        string  `json:"unit_of_measure"`
	Quantity             float64 `json:"quantity"`
	ReorderQuantity      float64 `json:"reorder_quantity"`
	BuildingName         string  `json:"building_name"`
	LabRoomNumber        int     `json:"lab_room_number"`
	LockerNumber         int     `json:"locker_number"`
	CASNumber            string  `json:"cas_number"`
	ChemicalFormula      string  `json:"chemical_formula"`
	SignalWord           string  `json:"signal_word"`
	PhysicalState        string  `json:"physical_state"`
	HazardClassification string  `json:"hazard_classification"`
	ChemicalDescription  string  `json:"chemical_description"`
	MolecularWeight      string  `json:"molecular_weight"`
	SDSLink              string  `json:"sds_link"`
}

func toChemicalDTO(c *chemicals.Chemical) chemicalDTO {
	return chemicalDTO{
		ID:                   c.InventoryID,
		Name:                 c.Name,
		UnitOfMeasure:        c.UnitOfMeasure,
		Quantity:             c.Quantity.InexactFloat64(),
		ReorderQuantity:      c.ReorderQuantity.InexactFloat64(),
		BuildingName:         c.BuildingName,
		LabRoomNumber:        c.LabRoomNumber,
		LockerNumber:         c.LockerNumber,
		CASNumber:            c.CASNumber,
		ChemicalFormula:      c.ChemicalFormula,
		SignalWord:           c.SignalWord,
		PhysicalState:        c.PhysicalState,
		HazardClassification: c.HazardClassification,
		ChemicalDescription:  c.Description,
		MolecularWeight:      c.MolecularWeight,
		SDSLink:              c.SDSLink,
	}
}

type chemSearchRequest struct {
	Name                 string `json:"name"`
	BuildingName         string `json:"building_name"`
	LabRoomNumber        *int   `json:"lab_room_number"`
	LockerNumber         *int   `json:"locker_number"`
	HazardClassification string `json:"hazard_classification"`
}

func (h *handlers) searchChemicals(w http.ResponseWriter, r *http.Request) {
	var req chemSearchRequest
	if err := decodeJSON(r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "invalid request body: " + err.Error(),
		})
		return
	}

	found, err := h.d.Chemicals.Search(r.Context(), chemicals.Filter{
		Name:                 req.Name,
		BuildingName:         req.BuildingName,
		LabRoomNumber:        req.LabRoomNumber,
		LockerNumber:         req.LockerNumber,
		HazardClassification: req.HazardClassification,
	})
	if err != nil {
		h.d.Log.Error("chemical search failed", "request_id", reqID(r.Context()), "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "error searching chemicals",
		})
		return
	}

	results := make([]chemicalDTO, 0, len(found))
	for i := range found {
		results = append(results, toChemicalDTO(&found[i]))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"results": results,
		"message": fmt.Sprintf("Found %d chemicals matching the criteria", len(results)),
	})
}

func (h *handlers) getChemical(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "inventoryID"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"success": false,
			"message": "invalid inventory id",
		})
		return
	}

	if h.d.Cache != nil {
		if chem, ok := h.d.Cache.Get(r.Context(), id); ok {
			writeJSON(w, http.StatusOK, map[string]any{
				"success":  true,
				"chemical": toChemicalDTO(chem),
				"message":  "Chemical found",
			})
			return
		}
	}

	chem, err := h.d.Chemicals.GetByInventoryID(r.Context(), id)
	if err != nil {
		h.d.Log.Error("chemical lookup failed", "request_id", reqID(r.Context()), "inventory_id", id, "err", err)
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"success": false,
			"message": "error retrieving chemical details",
		})
		return
	}
	if chem == nil {
		writeJSON(w, http.StatusNotFound, map[string]any{
			"success":  false,
			"chemical": nil,
			"message":  fmt.Sprintf("Chemical with inventory ID %d not found", id),
		})
		return
	}

	if h.d.Cache != nil {
		h.d.Cache.Set(r.Context(), chem)
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"chemical": toChemicalDTO(chem),
		"message":  "Chemical found",
	})
}
