package chemicals

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const chemicalColumns = `
	i.id,
	c.name,
	c.unit_of_measure,
	i.quantity,
	i.reorder_quantity,
	l.building_name,
	l.lab_room_number,
	l.locker_number,
	COALESCE(c.cas_number,''),
	COALESCE(c.chemical_formula,''),
	COALESCE(c.signal_word,''),
	COALESCE(c.physical_state,''),
	COALESCE(c.hazard_classification,''),
	COALESCE(c.chemical_description,''),
	COALESCE(c.molecular_weight,''),
	COALESCE(c.sds_link,'')`

const chemicalJoins = `
	FROM inventory i
	JOIN chemicals c ON i.chemical_id = c.id
	JOIN locations l ON i.location_id = l.location_id`

func buildSearchQuery(f Filter) (string, []any) {
	q := "SELECT" + chemicalColumns + chemicalJoins + "\n\tWHERE 1=1"
	var args []any

	if f.Name != "" {
		args = append(args, "%"+f.Name+"%")
		q += fmt.Sprintf(" AND c.name ILIKE $%d", len(args))
	}
	if f.BuildingName != "" {
		args = append(args, f.BuildingName)
		q += fmt.Sprintf(" AND l.building_name = $%d", len(args))
	}
	if f.LabRoomNumber != nil {
		args = append(args, *f.LabRoomNumber)
		q += fmt.Sprintf(" AND l.lab_room_number = $%d", len(args))
	}
	if f.LockerNumber != nil {
		args = append(args, *f.LockerNumber)
		q += fmt.Sprintf(" AND l.locker_number = $%d", len(args))
	}
	if f.HazardClassification != "" {
		args = append(args, "%"+f.HazardClassification+"%")
		q += fmt.Sprintf(" AND c.hazard_classification ILIKE $%d", len(args))
	}

	q += " ORDER BY c.name"
	return q, args
}

func (r *Repo) Search(ctx context.Context, f Filter) ([]Chemical, error) {
	q, args := buildSearchQuery(f)
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Chemical
	for rows.Next() {
		var c Chemical
		if err := scanChemical(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// GetByInventoryID returns the joined detail view, nil if the record is absent.
func (r *Repo) GetByInventoryID(ctx context.Context, inventoryID int64) (*Chemical, error) {
	row := r.pool.QueryRow(ctx,
		"SELECT"+chemicalColumns+chemicalJoins+"\n\tWHERE i.id = $1",
		inventoryID,
	)
	var c Chemical
	if err := scanChemical(row, &c); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func scanChemical(row pgx.Row, c *Chemical) error {
	return row.Scan(
		&c.InventoryID,
		&c.Name,
		&c.UnitOfMeasure,
		&c.Quantity,
		&c.ReorderQuantity,
		&c.BuildingName,
		&c.LabRoomNumber,
		&c.LockerNumber,
		&c.CASNumber,
		&c.ChemicalFormula,
		&c.SignalWord,
		&c.PhysicalState,
		&c.HazardClassification,
		&c.Description,
		&c.MolecularWeight,
		&c.SDSLink,
	)
}
