package reports

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

func (r *Repo) List(ctx context.Context) ([]Report, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT report_id, report_name, sql_query, COALESCE(parameters, '{}')
		FROM reports
		ORDER BY report_name
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Report
	for rows.Next() {
		var rep Report
		if err := rows.Scan(&rep.ID, &rep.Name, &rep.SQL, &rep.Parameters); err != nil {
			return nil, err
		}
		out = append(out, rep)
	}
	return out, rows.Err()
}

func (r *Repo) GetByID(ctx context.Context, id int64) (*Report, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT report_id, report_name, sql_query, COALESCE(parameters, '{}')
		FROM reports
		WHERE report_id = $1
	`, id)
	var rep Report
	if err := row.Scan(&rep.ID, &rep.Name, &rep.SQL, &rep.Parameters); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rep, nil
}

// Execute runs a stored report and returns its result set. Parameterized
// report definitions are not supported yet; the stored SQL runs as-is.
func (r *Repo) Execute(ctx context.Context, rep *Report) (*Result, error) {
	rows, err := r.pool.Query(ctx, rep.SQL)
	if err != nil {
		return nil, fmt.Errorf("execute report %d: %w", rep.ID, err)
	}
	defer rows.Close()

	res := &Result{}
	for _, fd := range rows.FieldDescriptions() {
		res.Columns = append(res.Columns, fd.Name)
	}

	for rows.Next() {
		vals, err := rows.Values()
		if err != nil {
			return nil, fmt.Errorf("read report %d row: %w", rep.ID, err)
		}
		row := make([]any, len(vals))
		for i, v := range vals {
			row[i] = normalize(v)
		}
		res.Rows = append(res.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("execute report %d: %w", rep.ID, err)
	}
	res.RowCount = len(res.Rows)
	return res, nil
}

// normalize flattens driver-specific values into JSON- and xlsx-friendly ones.
func normalize(v any) any {
	switch x := v.(type) {
	case nil, bool, int16, int32, int64, float32, float64, string:
		return x
	case time.Time:
		return x.Format(time.RFC3339)
	case []byte:
		return string(x)
	case pgtype.Numeric:
		if dv, err := x.Value(); err == nil {
			if s, ok := dv.(string); ok {
				return s
			}
		}
		return fmt.Sprint(x)
	default:
		return fmt.Sprint(x)
	}
}
