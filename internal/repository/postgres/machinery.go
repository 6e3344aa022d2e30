package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/repository"
)

type machineryRepository struct {
	db *sql.DB
}

func NewMachineryRepository(db *sql.DB) repository.MachineryRepository {
	return &machineryRepository{db: db}
}

const machineryColumns = `id, owner_id, name, type, COALESCE(description, ''), hourly_rate_cents, daily_rate_cents, operator_available, operator_charge_cents, availability, COALESCE(address, ''), longitude, latitude, images, specifications, created_on, updated_on`

// haversineMeters is the great-circle distance from ($N lat, $M lng) to a
// machinery row, in meters. Kept as plain SQL so no PostGIS extension is
// required.
const haversineMeters = `(6371000 * acos(least(1.0,
	cos(radians(%[1]s)) * cos(radians(latitude)) * cos(radians(longitude) - radians(%[2]s))
	+ sin(radians(%[1]s)) * sin(radians(latitude)))))`

func (r *machineryRepository) Create(ctx context.Context, m *domain.Machinery) error {
	images, err := jsonbOf(m.Images)
	if err != nil {
		return err
	}
	specs, err := jsonbOf(m.Specifications)
	if err != nil {
		return err
	}
	now := time.Now()
	query := `INSERT INTO machinery (owner_id, name, type, description, hourly_rate_cents, daily_rate_cents, operator_available, operator_charge_cents, availability, address, longitude, latitude, images, specifications, created_on, updated_on)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16) RETURNING id`
	err = r.db.QueryRowContext(ctx, query,
		m.OwnerID, m.Name, m.Type, m.Description, m.HourlyRateCents, m.DailyRateCents,
		m.OperatorAvailable, m.OperatorChargeCents, m.Availability,
		m.Location.Address, m.Location.Point.Longitude, m.Location.Point.Latitude,
		images, specs, now, now).Scan(&m.ID)
	if err != nil {
		return err
	}
	m.CreatedOn = now
	m.UpdatedOn = now
	return nil
}

func (r *machineryRepository) GetByID(ctx context.Context, id int32) (*domain.Machinery, error) {
	query := `SELECT ` + machineryColumns + ` FROM machinery WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	m, err := scanMachinery(row.Scan)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, domain.NotFoundError("machinery not found")
	}
	return m, err
}

func (r *machineryRepository) Update(ctx context.Context, m *domain.Machinery) error {
	images, err := jsonbOf(m.Images)
	if err != nil {
		return err
	}
	specs, err := jsonbOf(m.Specifications)
	if err != nil {
		return err
	}
	query := `UPDATE machinery SET name=$1, type=$2, description=$3, hourly_rate_cents=$4, daily_rate_cents=$5, operator_available=$6, operator_charge_cents=$7, availability=$8, address=$9, longitude=$10, latitude=$11, images=$12, specifications=$13, updated_on=$14 WHERE id=$15`
	_, err = r.db.ExecContext(ctx, query,
		m.Name, m.Type, m.Description, m.HourlyRateCents, m.DailyRateCents,
		m.OperatorAvailable, m.OperatorChargeCents, m.Availability,
		m.Location.Address, m.Location.Point.Longitude, m.Location.Point.Latitude,
		images, specs, time.Now(), m.ID)
	return err
}

func (r *machineryRepository) Delete(ctx context.Context, id int32) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM machinery WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFoundError("machinery not found")
	}
	return nil
}

func (r *machineryRepository) List(ctx context.Context, filter repository.MachineryFilter) ([]domain.Machinery, error) {
	query := `SELECT ` + machineryColumns + ` FROM machinery WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", argIdx)
		args = append(args, filter.Type)
		argIdx++
	}
	if filter.AvailableOnly {
		query += " AND availability = true"
	}
	orderBy := " ORDER BY created_on DESC"
	if filter.Near != nil {
		lat := fmt.Sprintf("$%d", argIdx)
		lng := fmt.Sprintf("$%d", argIdx+1)
		distance := fmt.Sprintf(haversineMeters, lat, lng)
		// Radius arrives in kilometers; the distance expression is in meters.
		query += fmt.Sprintf(" AND %s <= $%d", distance, argIdx+2)
		orderBy = " ORDER BY " + distance + " ASC"
		args = append(args, filter.Near.Latitude, filter.Near.Longitude, filter.RadiusKM*1000)
		argIdx += 3
	}
	query += orderBy

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMachinery(rows)
}

func (r *machineryRepository) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Machinery, error) {
	query := `SELECT ` + machineryColumns + ` FROM machinery WHERE owner_id = $1 ORDER BY created_on DESC`
	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectMachinery(rows)
}

func (r *machineryRepository) SetAvailability(ctx context.Context, id int32, available bool) error {
	query := `UPDATE machinery SET availability = $1, updated_on = $2 WHERE id = $3`
	res, err := r.db.ExecContext(ctx, query, available, time.Now(), id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.NotFoundError("machinery not found")
	}
	return nil
}

func (r *machineryRepository) ReconcileAvailability(ctx context.Context) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `UPDATE machinery SET availability = false, updated_on = $1
	        WHERE availability = true
	          AND id IN (SELECT machinery_id FROM bookings WHERE status IN ('pending', 'accepted'))`, time.Now())
	if err != nil {
		return 0, err
	}
	held, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	res, err = tx.ExecContext(ctx, `UPDATE machinery SET availability = true, updated_on = $1
	        WHERE availability = false
	          AND id NOT IN (SELECT machinery_id FROM bookings WHERE status IN ('pending', 'accepted'))`, time.Now())
	if err != nil {
		return 0, err
	}
	freed, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return held + freed, nil
}

func scanMachinery(scan func(dest ...any) error) (*domain.Machinery, error) {
	m := &domain.Machinery{}
	var images, specs []byte
	err := scan(&m.ID, &m.OwnerID, &m.Name, &m.Type, &m.Description,
		&m.HourlyRateCents, &m.DailyRateCents, &m.OperatorAvailable, &m.OperatorChargeCents,
		&m.Availability, &m.Location.Address, &m.Location.Point.Longitude, &m.Location.Point.Latitude,
		&images, &specs, &m.CreatedOn, &m.UpdatedOn)
	if err != nil {
		return nil, err
	}
	if err := scanJSONB(images, &m.Images); err != nil {
		return nil, err
	}
	if err := scanJSONB(specs, &m.Specifications); err != nil {
		return nil, err
	}
	return m, nil
}

func collectMachinery(rows *sql.Rows) ([]domain.Machinery, error) {
	var out []domain.Machinery
	for rows.Next() {
		m, err := scanMachinery(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}
