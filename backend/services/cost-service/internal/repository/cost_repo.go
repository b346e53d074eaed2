package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"energytrack/backend/services/cost-service/internal/apperrors"
	"energytrack/backend/services/cost-service/internal/models"
)

const costColumns = `id, user_id, energy_type, device_id, wattage, hours_per_day, daily_kwh, monthly_kwh,
	fuel_type, petrol_grade, liters, tank_size, quantity,
	generated_kwh, self_consumed_kwh, external_savings,
	total_cost, date, created_at, updated_at`

// CostRepository persists cost records in Postgres.
type CostRepository struct {
	db *sql.DB
}

// NewCostRepository returns repository.
func NewCostRepository(db *sql.DB) *CostRepository {
	return &CostRepository{db: db}
}

// Create inserts a priced record.
func (r *CostRepository) Create(ctx context.Context, rec *models.CostRecord) error {
	const query = `
		INSERT INTO energy_costs (` + costColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)
	`
	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		string(rec.EnergyType),
		rec.DeviceID,
		rec.Wattage,
		rec.HoursPerDay,
		rec.DailyKWh,
		rec.MonthlyKWh,
		string(rec.FuelType),
		rec.PetrolGrade,
		rec.Liters,
		rec.TankSize,
		rec.Quantity,
		rec.GeneratedKWh,
		rec.SelfConsumedKWh,
		rec.ExternalSavings,
		rec.TotalCost,
		rec.Date,
		rec.CreatedAt,
		rec.UpdatedAt,
	)
	return err
}

// Get loads a record by id.
func (r *CostRepository) Get(ctx context.Context, id string) (*models.CostRecord, error) {
	const query = `SELECT ` + costColumns + ` FROM energy_costs WHERE id = $1`
	rec, err := scanCost(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Update overwrites every mutable column of an existing record.
func (r *CostRepository) Update(ctx context.Context, rec *models.CostRecord) error {
	const query = `
		UPDATE energy_costs
		SET user_id = $2,
		    energy_type = $3,
		    device_id = $4,
		    wattage = $5,
		    hours_per_day = $6,
		    daily_kwh = $7,
		    monthly_kwh = $8,
		    fuel_type = $9,
		    petrol_grade = $10,
		    liters = $11,
		    tank_size = $12,
		    quantity = $13,
		    generated_kwh = $14,
		    self_consumed_kwh = $15,
		    external_savings = $16,
		    total_cost = $17,
		    date = $18,
		    updated_at = $19
		WHERE id = $1
	`
	result, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.UserID,
		string(rec.EnergyType),
		rec.DeviceID,
		rec.Wattage,
		rec.HoursPerDay,
		rec.DailyKWh,
		rec.MonthlyKWh,
		string(rec.FuelType),
		rec.PetrolGrade,
		rec.Liters,
		rec.TankSize,
		rec.Quantity,
		rec.GeneratedKWh,
		rec.SelfConsumedKWh,
		rec.ExternalSavings,
		rec.TotalCost,
		rec.Date,
		rec.UpdatedAt,
	)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return apperrors.ErrRecordNotFound
	}
	return nil
}

// Delete removes a record and returns what was stored.
func (r *CostRepository) Delete(ctx context.Context, id string) (*models.CostRecord, error) {
	const query = `DELETE FROM energy_costs WHERE id = $1 RETURNING ` + costColumns
	rec, err := scanCost(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// List returns records matching filter, newest first.
func (r *CostRepository) List(ctx context.Context, filter models.CostFilter) ([]models.CostRecord, error) {
	where, args := costWhere(filter)
	query := `SELECT ` + costColumns + ` FROM energy_costs` + where + ` ORDER BY date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.CostRecord
	for rows.Next() {
		rec, err := scanCost(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return records, nil
}

func costWhere(filter models.CostFilter) (string, []any) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.UserID != "" {
		add("user_id = $%d", filter.UserID)
	}
	if filter.EnergyType != "" {
		add("energy_type = $%d", string(filter.EnergyType))
	}
	if filter.FuelType != "" {
		add("fuel_type = $%d", string(filter.FuelType))
	}
	if !filter.From.IsZero() {
		add("date >= $%d", filter.From)
	}
	if !filter.Before.IsZero() {
		add("date < $%d", filter.Before)
	}
	if !filter.Through.IsZero() {
		add("date <= $%d", filter.Through)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanCost(row rowScanner) (*models.CostRecord, error) {
	var (
		rec        models.CostRecord
		energyType string
		fuelType   string
	)
	if err := row.Scan(
		&rec.ID,
		&rec.UserID,
		&energyType,
		&rec.DeviceID,
		&rec.Wattage,
		&rec.HoursPerDay,
		&rec.DailyKWh,
		&rec.MonthlyKWh,
		&fuelType,
		&rec.PetrolGrade,
		&rec.Liters,
		&rec.TankSize,
		&rec.Quantity,
		&rec.GeneratedKWh,
		&rec.SelfConsumedKWh,
		&rec.ExternalSavings,
		&rec.TotalCost,
		&rec.Date,
		&rec.CreatedAt,
		&rec.UpdatedAt,
	); err != nil {
		return nil, err
	}
	rec.EnergyType = models.EnergyType(energyType)
	rec.FuelType = models.FuelType(fuelType)
	return &rec, nil
}
