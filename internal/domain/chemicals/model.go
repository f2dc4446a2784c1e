package chemicals

import "github.com/shopspring/decimal"

// Chemical is the denormalized search/detail view: one inventory record
// joined with its chemical definition and location.
type Chemical struct {
	InventoryID          int64
	Name                 string
	UnitOfMeasure        string
	Quantity             decimal.Decimal
	ReorderQuantity      decimal.Decimal
	BuildingName         string
	LabRoomNumber        int
	LockerNumber         int
	CASNumber            string
	ChemicalFormula      string
	SignalWord           string
	PhysicalState        string
	HazardClassification string
	Description          string
	MolecularWeight      string
	SDSLink              string
}

// Filter narrows a chemical search. Zero values mean "no constraint";
// LabRoomNumber and LockerNumber use nil for the same reason, since 0 is a
// legal room number.
type Filter struct {
	Name                 string
	BuildingName         string
	LabRoomNumber        *int
	LockerNumber         *int
	HazardClassification string
}
