package preferences

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Well-known preference keys consumed by the reorder notification sweep.
const (
	KeyBuilding     = "building"
	KeyLabRoom      = "lab_room"
	KeyReorderNotif = "reorder_notification"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

// Get returns the user's preferences as a key/value map. With a non-empty
// key only that preference is returned.
func (r *Repo) Get(ctx context.Context, username, key string) (map[string]string, error) {
	q := `
		SELECT preference_key, preference_value
		FROM user_preferences
		WHERE user_name = $1
	`
	args := []any{username}
	if key != "" {
		q += " AND preference_key = $2"
		args = append(args, key)
	}

	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	prefs := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, err
		}
		prefs[k] = v
	}
	return prefs, rows.Err()
}

// Set upserts one preference and returns the user's full preference map.
func (r *Repo) Set(ctx context.Context, username, key, value string) (map[string]string, error) {
	if _, err := r.pool.Exec(ctx, `
		INSERT INTO user_preferences (user_name, preference_key, preference_value)
		VALUES ($1,$2,$3)
		ON CONFLICT (user_name, preference_key)
		DO UPDATE SET preference_value = EXCLUDED.preference_value
	`, username, key, value); err != nil {
		return nil, err
	}
	return r.Get(ctx, username, "")
}
