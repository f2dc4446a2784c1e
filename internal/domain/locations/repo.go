package locations

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) Buildings(ctx context.Context) ([]string, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT building_name
		FROM locations
		ORDER BY building_name ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var b string
		if err := rows.Scan(&b); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func (r *Repo) LabRooms(ctx context.Context, buildingName string) ([]int, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT DISTINCT lab_room_number
		FROM locations
		WHERE building_name = $1
		ORDER BY lab_room_number ASC
	`, buildingName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []int
	for rows.Next() {
		var n int
		if err := rows.Scan(&n); err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, rows.Err()
}

func (r *Repo) List(ctx context.Context) ([]Location, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT location_id, building_name, lab_room_number, locker_number
		FROM locations
		ORDER BY building_name ASC, lab_room_number ASC, locker_number ASC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.ID, &l.BuildingName, &l.LabRoomNumber, &l.LockerNumber); err != nil {
			return nil, err
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
