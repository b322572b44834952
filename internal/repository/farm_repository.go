package repository

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"decision-service/internal/models"

	"github.com/jmoiron/sqlx"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/wkb"
)

// FarmRepository reads the persisted farm state backing context assembly.
type FarmRepository struct {
	db *sqlx.DB
}

func NewFarmRepository(db *sqlx.DB) *FarmRepository {
	return &FarmRepository{db: db}
}

// GetFarmByID loads a farm record.
func (r *FarmRepository) GetFarmByID(ctx context.Context, id string) (*models.Farm, error) {
	query := `
		SELECT id, owner_id, farm_name, latitude, longitude, status, created_at, updated_at
		FROM farm
		WHERE id = $1`

	var farm models.Farm
	err := r.db.GetContext(ctx, &farm, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("farm not found: %s", id)
		}
		return nil, fmt.Errorf("query farm failed: %w", err)
	}

	return &farm, nil
}

// ListActiveFarmIDs returns the ids of all farms eligible for scheduled
// decision refresh.
func (r *FarmRepository) ListActiveFarmIDs(ctx context.Context) ([]string, error) {
	var ids []string
	err := r.db.SelectContext(ctx, &ids, `SELECT id FROM farm WHERE status = 'active'`)
	if err != nil {
		return nil, fmt.Errorf("list active farms failed: %w", err)
	}
	return ids, nil
}

type fieldRow struct {
	models.Field
	AreaHectaresDB sql.NullFloat64 `db:"area_hectares_db"`
	BoundaryWKB    []byte          `db:"boundary_wkb"`
}

// GetFieldsByFarmID loads the farm's fields. Fields without a stored area
// fall back to the area of their boundary geometry (stored in a projected
// meter-based SRS).
func (r *FarmRepository) GetFieldsByFarmID(ctx context.Context, farmID string) ([]models.Field, error) {
	query := `
		SELECT id, farm_id, name, crop_type,
		       planting_date, last_spray_date, last_harvest_date,
		       area_hectares AS area_hectares_db,
		       ST_AsBinary(boundary) AS boundary_wkb
		FROM field
		WHERE farm_id = $1
		ORDER BY name`

	var rows []fieldRow
	if err := r.db.SelectContext(ctx, &rows, query, farmID); err != nil {
		return nil, fmt.Errorf("query fields failed: %w", err)
	}

	fields := make([]models.Field, 0, len(rows))
	for _, row := range rows {
		field := row.Field
		if row.AreaHectaresDB.Valid && row.AreaHectaresDB.Float64 > 0 {
			field.AreaHectares = row.AreaHectaresDB.Float64
		} else if area, ok := boundaryAreaHectares(row.BoundaryWKB); ok {
			field.AreaHectares = area
		}
		if field.AreaHectares <= 0 {
			slog.Warn("Field has no usable area, evaluators will skip it",
				"field_id", field.ID,
				"field_name", field.Name)
		}
		fields = append(fields, field)
	}

	return fields, nil
}

// boundaryAreaHectares derives the hectare area from a boundary polygon.
func boundaryAreaHectares(boundaryWKB []byte) (float64, bool) {
	if len(boundaryWKB) == 0 {
		return 0, false
	}

	g, err := wkb.Unmarshal(boundaryWKB)
	if err != nil {
		slog.Warn("Failed to decode field boundary", "error", err)
		return 0, false
	}

	polygon, ok := g.(*geom.Polygon)
	if !ok {
		return 0, false
	}

	// Geometry is stored in a meter-based SRS, so planar area is sqm.
	return polygon.Area() / 10000, true
}

// GetHerdsByFarmID loads the farm's livestock summary, or nil when the farm
// keeps no animals.
func (r *FarmRepository) GetHerdsByFarmID(ctx context.Context, farmID string) (*models.Livestock, error) {
	query := `
		SELECT species, head_count, last_vaccination_date
		FROM herd
		WHERE farm_id = $1
		ORDER BY species`

	var herds []models.HerdRecord
	if err := r.db.SelectContext(ctx, &herds, query, farmID); err != nil {
		return nil, fmt.Errorf("query herds failed: %w", err)
	}

	if len(herds) == 0 {
		return nil, nil
	}
	return &models.Livestock{Herds: herds}, nil
}
