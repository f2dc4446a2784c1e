package inventory

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// LowStock is one inventory record sitting below its reorder threshold.
type LowStock struct {
	InventoryID     int64
	Name            string
	UnitOfMeasure   string
	Quantity        decimal.Decimal
	ReorderQuantity decimal.Decimal
	BuildingName    string
	LabRoomNumber   int
}

// NotifyTarget is a user who opted into reorder notifications together with
// the low-stock chemicals matching their building/lab preferences.
type NotifyTarget struct {
	Username  string
	Email     string
	Chemicals []LowStock
}

type NotifyRepo struct{ pool *pgxpool.Pool }

func NewNotifyRepo(pool *pgxpool.Pool) *NotifyRepo { return &NotifyRepo{pool: pool} }

// UsersToNotify runs the daily below-threshold sweep: every inventory row
// with quantity < reorder_quantity, matched against users whose
// reorder_notification preference is on. A user with no building or
// lab_room preference matches everything.
func (r *NotifyRepo) UsersToNotify(ctx context.Context) ([]NotifyTarget, error) {
	rows, err := r.pool.Query(ctx, `
		WITH low_inventory AS (
			SELECT i.id, c.name, c.unit_of_measure, i.quantity, i.reorder_quantity,
			       l.building_name, l.lab_room_number
			FROM inventory i
			JOIN chemicals c ON i.chemical_id = c.id
			JOIN locations l ON i.location_id = l.location_id
			WHERE i.quantity < i.reorder_quantity
		),
		users_with_prefs AS (
			SELECT u.user_name, u.email_address,
			       up_building.preference_value AS building,
			       up_lab.preference_value AS lab_room
			FROM users u
			LEFT JOIN user_preferences up_building
			       ON u.user_name = up_building.user_name AND up_building.preference_key = 'building'
			LEFT JOIN user_preferences up_lab
			       ON u.user_name = up_lab.user_name AND up_lab.preference_key = 'lab_room'
			JOIN user_preferences up_notif
			       ON u.user_name = up_notif.user_name AND up_notif.preference_key = 'reorder_notification'
			WHERE up_notif.preference_value = 'on'
		)
		SELECT u.user_name, u.email_address,
		       li.id, li.name, li.unit_of_measure, li.quantity, li.reorder_quantity,
		       li.building_name, li.lab_room_number
		FROM users_with_prefs u
		JOIN low_inventory li ON (
			(u.building = li.building_name OR u.building IS NULL OR u.building = '')
			AND
			(u.lab_room = li.lab_room_number::text OR u.lab_room IS NULL OR u.lab_room = '')
		)
		ORDER BY u.user_name, li.name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []NotifyTarget
	for rows.Next() {
		var (
			username, email string
			ls              LowStock
		)
		if err := rows.Scan(
			&username,
			&email,
			&ls.InventoryID,
			&ls.Name,
			&ls.UnitOfMeasure,
			&ls.Quantity,
			&ls.ReorderQuantity,
			&ls.BuildingName,
			&ls.LabRoomNumber,
		); err != nil {
			return nil, err
		}
		if len(out) == 0 || out[len(out)-1].Username != username {
			out = append(out, NotifyTarget{Username: username, Email: email})
		}
		out[len(out)-1].Chemicals = append(out[len(out)-1].Chemicals, ls)
	}
	return out, rows.Err()
}
