package migration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/rentroost/rentroost-api/models"
	"github.com/rentroost/rentroost-api/utils"
)

// Backfill for building documents written by older clients. Three repairs:
// missing nested arrays are initialized, electricity derived fields are
// recomputed from the stored readings, and plaintext unit blobs are
// re-encrypted once DATA_ENCRYPTION_KEY is configured. Re-running is safe;
// a document already in the current shape is skipped.

type encryptedWrapper struct {
	Encrypted string `json:"encrypted"`
}

// Result summarizes one backfill run.
type Result struct {
	Migrated int      `json:"migrated"`
	Skipped  int      `json:"skipped"`
	Errors   int      `json:"errors"`
	Details  []Detail `json:"details,omitempty"`
}

type Detail struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
}

// BackfillBuildings repairs every building document, or a single one when
// buildingID is non-empty.
func BackfillBuildings(ctx context.Context, db *sql.DB, buildingID string) (*Result, error) {
	var rows *sql.Rows
	var err error

	if buildingID != "" {
		rows, err = db.QueryContext(ctx, `SELECT id, name, units FROM buildings WHERE id = $1`, buildingID)
	} else {
		rows, err = db.QueryContext(ctx, `SELECT id, name, units FROM buildings ORDER BY updated_at DESC`)
	}
	if err != nil {
		return nil, fmt.Errorf("query failed: %w", err)
	}
	defer rows.Close()

	result := &Result{}
	type pending struct {
		id   string
		blob []byte
	}
	var updates []pending

	for rows.Next() {
		var id, name string
		var rawJSON []byte
		if err := rows.Scan(&id, &name, &rawJSON); err != nil {
			log.Printf("❌ Scan error: %v", err)
			result.Errors++
			continue
		}

		log.Printf("📦 Processing: %s (%s)", name, utils.MaskID(id))

		units, wasEncrypted, err := decodeBlob(rawJSON)
		if err != nil {
			result.Errors++
			result.Details = append(result.Details, Detail{ID: id, Name: name, Status: "error", Reason: err.Error()})
			continue
		}

		changed := repairUnits(units)
		needsEncryption := utils.EncryptionEnabled() && !wasEncrypted
		if !changed && !needsEncryption {
			result.Skipped++
			result.Details = append(result.Details, Detail{ID: id, Name: name, Status: "skipped"})
			continue
		}

		blob, err := encodeBlob(units)
		if err != nil {
			result.Errors++
			result.Details = append(result.Details, Detail{ID: id, Name: name, Status: "error", Reason: err.Error()})
			continue
		}
		updates = append(updates, pending{id: id, blob: blob})
		result.Details = append(result.Details, Detail{ID: id, Name: name, Status: "migrated"})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate failed: %w", err)
	}

	for _, u := range updates {
		_, err := db.ExecContext(ctx, `
			UPDATE buildings SET units = $1, version = version + 1, updated_at = $2 WHERE id = $3
		`, u.blob, time.Now(), u.id)
		if err != nil {
			log.Printf("❌ Update failed for %s: %v", utils.MaskID(u.id), err)
			result.Errors++
			continue
		}
		result.Migrated++
	}

	log.Printf("🧹 Backfill done: %d migrated, %d skipped, %d errors", result.Migrated, result.Skipped, result.Errors)
	return result, nil
}

func decodeBlob(raw []byte) ([]models.Unit, bool, error) {
	wasEncrypted := false
	var wrapper encryptedWrapper
	if err := json.Unmarshal(raw, &wrapper); err == nil && wrapper.Encrypted != "" {
		plaintext, err := utils.Decrypt(wrapper.Encrypted)
		if err != nil {
			return nil, false, fmt.Errorf("decrypt failed: %w", err)
		}
		raw = plaintext
		wasEncrypted = true
	}

	var units []models.Unit
	if err := json.Unmarshal(raw, &units); err != nil {
		return nil, false, fmt.Errorf("unmarshal failed: %w", err)
	}
	return units, wasEncrypted, nil
}

func encodeBlob(units []models.Unit) ([]byte, error) {
	raw, err := json.Marshal(units)
	if err != nil {
		return nil, err
	}
	if !utils.EncryptionEnabled() {
		return raw, nil
	}
	ciphertext, err := utils.Encrypt(raw)
	if err != nil {
		return nil, fmt.Errorf("encrypt failed: %w", err)
	}
	return json.Marshal(encryptedWrapper{Encrypted: ciphertext})
}

// repairUnits normalizes nested arrays and recomputes electricity derived
// fields in place. Returns whether anything actually changed.
func repairUnits(units []models.Unit) bool {
	changed := false
	for i := range units {
		unit := &units[i]
		if unit.PreviousTenants == nil {
			unit.PreviousTenants = []models.Tenant{}
			changed = true
		}
		if unit.Tenant != nil && repairTenant(unit.Tenant) {
			changed = true
		}
		for j := range unit.PreviousTenants {
			if repairTenant(&unit.PreviousTenants[j]) {
				changed = true
			}
		}
	}
	return changed
}

func repairTenant(t *models.Tenant) bool {
	changed := false
	if t.RentPayments == nil {
		t.RentPayments = []models.RentPayment{}
		changed = true
	}
	if t.ElectricityRecords == nil {
		t.ElectricityRecords = []models.ElectricityRecord{}
		changed = true
	}
	for i := range t.ElectricityRecords {
		r := &t.ElectricityRecords[i]
		units := r.CurrentReading - r.PreviousReading
		amount := units * r.RatePerUnit
		if r.UnitsConsumed != units || r.Amount != amount {
			r.UnitsConsumed = units
			r.Amount = amount
			changed = true
		}
	}
	return changed
}
