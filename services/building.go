package services

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/rentroost/rentroost-api/models"
	"github.com/rentroost/rentroost-api/utils"
)

// BuildingService owns persistence of building documents. Reads and writes
// always filter by owner, writes bump the version counter, and the units
// blob round-trips through NormalizeBuilding so callers never see nil
// nested arrays.
type BuildingService struct {
	db *sql.DB
}

func NewBuildingService(db *sql.DB) *BuildingService {
	return &BuildingService{db: db}
}

// encryptedBlob wraps the ciphertext so the JSONB column still holds a valid
// JSON object when encryption at rest is enabled.
type encryptedBlob struct {
	Encrypted string `json:"encrypted"`
}

func encodeUnits(units []models.Unit) ([]byte, error) {
	raw, err := json.Marshal(units)
	if err != nil {
		return nil, err
	}
	if !utils.EncryptionEnabled() {
		return raw, nil
	}

	ciphertext, err := utils.Encrypt(raw)
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt units: %w", err)
	}
	return json.Marshal(encryptedBlob{Encrypted: ciphertext})
}

func decodeUnits(raw []byte) ([]models.Unit, error) {
	if len(raw) == 0 {
		return []models.Unit{}, nil
	}

	// Try the encrypted wrapper first; documents written before the key was
	// configured fall through to the plaintext path.
	var wrapper encryptedBlob
	if err := json.Unmarshal(raw, &wrapper); err == nil && wrapper.Encrypted != "" {
		plaintext, err := utils.Decrypt(wrapper.Encrypted)
		if err != nil {
			return nil, fmt.Errorf("failed to decrypt units: %w", err)
		}
		raw = plaintext
	}

	var units []models.Unit
	if err := json.Unmarshal(raw, &units); err != nil {
		return nil, err
	}
	return units, nil
}

// Create mints a building with unitsCount empty units named "Unit 1..N".
// This is the only place unit cardinality is established.
func (s *BuildingService) Create(ctx context.Context, ownerID string, req models.CreateBuildingRequest) (*models.Building, error) {
	units := make([]models.Unit, req.UnitsCount)
	for i := range units {
		units[i] = models.Unit{
			ID:              uuid.New().String(),
			Name:            fmt.Sprintf("Unit %d", i+1),
			Tenant:          nil,
			PreviousTenants: []models.Tenant{},
		}
	}

	building := &models.Building{
		ID:         uuid.New().String(),
		Name:       req.Name,
		UnitsCount: req.UnitsCount,
		Address:    req.Address,
		Units:      units,
		OwnerID:    ownerID,
		Version:    1,
	}

	blob, err := encodeUnits(units)
	if err != nil {
		return nil, err
	}

	query := `
		INSERT INTO buildings (id, owner_id, name, units_count, address, units, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, 1, $7, $7)
	`
	if _, err := s.db.ExecContext(ctx, query, building.ID, ownerID, building.Name, building.UnitsCount, building.Address, blob, time.Now()); err != nil {
		return nil, syncErr("insert building", err)
	}

	s.audit(ctx, ownerID, "create_building", building.ID, map[string]interface{}{"name": building.Name, "unitsCount": building.UnitsCount})
	return building, nil
}

// GetByID loads one building owned by ownerID, normalized.
func (s *BuildingService) GetByID(ctx context.Context, id, ownerID string) (*models.Building, error) {
	query := `
		SELECT id, owner_id, name, units_count, COALESCE(address, ''), units, version
		FROM buildings
		WHERE id = $1 AND owner_id = $2
	`
	return s.scanBuilding(s.db.QueryRowContext(ctx, query, id, ownerID), id)
}

func (s *BuildingService) scanBuilding(row *sql.Row, id string) (*models.Building, error) {
	var b models.Building
	var blob []byte
	err := row.Scan(&b.ID, &b.OwnerID, &b.Name, &b.UnitsCount, &b.Address, &blob, &b.Version)
	if err == sql.ErrNoRows {
		return nil, NewNotFoundError("building", id)
	}
	if err != nil {
		return nil, syncErr("select building", err)
	}

	if b.Units, err = decodeUnits(blob); err != nil {
		return nil, syncErr("decode building units", err)
	}
	models.NormalizeBuilding(&b)
	return &b, nil
}

// List returns all buildings owned by ownerID, normalized.
func (s *BuildingService) List(ctx context.Context, ownerID string) ([]models.Building, error) {
	query := `
		SELECT id, owner_id, name, units_count, COALESCE(address, ''), units, version
		FROM buildings
		WHERE owner_id = $1
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, syncErr("select buildings", err)
	}
	defer rows.Close()
	return scanBuildings(rows)
}

// ListAll returns every building regardless of owner. Used only by the
// tenant portal, which has to find a tenant without knowing the landlord.
func (s *BuildingService) ListAll(ctx context.Context) ([]models.Building, error) {
	query := `
		SELECT id, owner_id, name, units_count, COALESCE(address, ''), units, version
		FROM buildings
		ORDER BY created_at
	`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, syncErr("select all buildings", err)
	}
	defer rows.Close()
	return scanBuildings(rows)
}

func scanBuildings(rows *sql.Rows) ([]models.Building, error) {
	buildings := []models.Building{}
	for rows.Next() {
		var b models.Building
		var blob []byte
		if err := rows.Scan(&b.ID, &b.OwnerID, &b.Name, &b.UnitsCount, &b.Address, &blob, &b.Version); err != nil {
			return nil, syncErr("scan building", err)
		}
		units, err := decodeUnits(blob)
		if err != nil {
			return nil, syncErr("decode building units", err)
		}
		b.Units = units
		models.NormalizeBuilding(&b)
		buildings = append(buildings, b)
	}
	if err := rows.Err(); err != nil {
		return nil, syncErr("iterate buildings", err)
	}
	return buildings, nil
}

// Update persists a mutated building document wholesale: the units array is
// replaced as one value, version bumped. Last write wins across sessions;
// there is no cross-client locking.
func (s *BuildingService) Update(ctx context.Context, b *models.Building) error {
	blob, err := encodeUnits(b.Units)
	if err != nil {
		return syncErr("encode building units", err)
	}

	query := `
		UPDATE buildings
		SET name = $1, address = $2, units = $3, version = version + 1, updated_at = $4
		WHERE id = $5 AND owner_id = $6
	`
	result, err := s.db.ExecContext(ctx, query, b.Name, b.Address, blob, time.Now(), b.ID, b.OwnerID)
	if err != nil {
		return syncErr("update building", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return NewNotFoundError("building", b.ID)
	}

	s.audit(ctx, b.OwnerID, "update_building", b.ID, nil)
	return nil
}

// Delete removes a building document. Expenses referencing it keep their
// opaque building id; there is no cascade into the expenses table.
func (s *BuildingService) Delete(ctx context.Context, id, ownerID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM buildings WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return syncErr("delete building", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return NewNotFoundError("building", id)
	}

	s.audit(ctx, ownerID, "delete_building", id, nil)
	return nil
}

// FindActiveTenantByPhone searches every building for an active tenant with
// the given contact number. Portal login path.
func (s *BuildingService) FindActiveTenantByPhone(ctx context.Context, phone string) (*models.Tenant, *models.PortalDashboard, error) {
	return s.findActiveTenant(ctx, func(t *models.Tenant) bool { return t.ContactNo == phone })
}

// FindActiveTenantByID resolves a portal token back to its tenant.
func (s *BuildingService) FindActiveTenantByID(ctx context.Context, tenantID string) (*models.Tenant, *models.PortalDashboard, error) {
	return s.findActiveTenant(ctx, func(t *models.Tenant) bool { return t.ID == tenantID })
}

func (s *BuildingService) findActiveTenant(ctx context.Context, match func(*models.Tenant) bool) (*models.Tenant, *models.PortalDashboard, error) {
	buildings, err := s.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	for i := range buildings {
		building := &buildings[i]
		for j := range building.Units {
			unit := &building.Units[j]
			if unit.Tenant != nil && unit.Tenant.Active && match(unit.Tenant) {
				dashboard := &models.PortalDashboard{
					Tenant:       *unit.Tenant,
					BuildingID:   building.ID,
					BuildingName: building.Name,
					Address:      building.Address,
					UnitID:       unit.ID,
					UnitName:     unit.Name,
					Floor:        unit.Floor,
					Details:      unit.Details,
				}
				return unit.Tenant, dashboard, nil
			}
		}
	}
	return nil, nil, NewNotFoundError("tenant", "")
}

// audit records a mutation best-effort; a failed audit insert never fails
// the mutation itself.
func (s *BuildingService) audit(ctx context.Context, ownerID, action, entityID string, changes map[string]interface{}) {
	var blob []byte
	if changes != nil {
		blob, _ = json.Marshal(changes)
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO audit_logs (owner_id, action, entity_id, changes)
		VALUES ($1, $2, $3, $4)
	`, ownerID, action, entityID, blob)
	if err != nil {
		utils.SafeWarn("audit log insert failed for %s: %v", action, err)
	}
}
