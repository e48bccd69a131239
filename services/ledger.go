package services

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rentroost/rentroost-api/models"
)

// ============================================================================
// LEDGER MUTATIONS
// ============================================================================
// Every mutation is copy-on-write over the whole building aggregate: locate
// the target unit, build a new unit, splice it into a fresh units slice and
// return a new Building. The input is never touched, so the caller can keep
// its snapshot when persistence fails. Unit count and unit ids never change
// here; only building creation establishes cardinality.
// ============================================================================

// UpsertTenant assigns or edits the active tenant of a unit. Editing keeps
// the tenant id, ledger arrays and move-in date; document fields keep the
// stored value when the input leaves them empty.
func UpsertTenant(b models.Building, unitID string, in models.TenantInput) (models.Building, error) {
	if strings.TrimSpace(in.Name) == "" {
		return models.Building{}, NewValidationError("name", "must not be empty")
	}
	if strings.TrimSpace(in.ContactNo) == "" {
		return models.Building{}, NewValidationError("contactNo", "must not be empty")
	}

	idx := b.FindUnit(unitID)
	if idx == -1 {
		return models.Building{}, NewNotFoundError("unit", unitID)
	}

	draft := b.Clone()
	unit := &draft.Units[idx]
	existing := unit.Tenant

	tenant := models.Tenant{
		Name:        in.Name,
		ContactNo:   in.ContactNo,
		DateOfBirth: in.DateOfBirth,
		MemberCount: in.MemberCount,
		RentAmount:  in.RentAmount,
		RoomDetails: in.RoomDetails,
		About:       in.About,
		Active:      true,
	}

	if existing != nil {
		tenant.ID = existing.ID
		tenant.RentPayments = existing.RentPayments
		tenant.ElectricityRecords = existing.ElectricityRecords
		tenant.MoveInDate = existing.MoveInDate
	} else {
		tenant.ID = uuid.New().String()
		tenant.RentPayments = []models.RentPayment{}
		tenant.ElectricityRecords = []models.ElectricityRecord{}
		now := models.NewFlexTime(time.Now())
		tenant.MoveInDate = &now
	}
	if in.MoveInDate != nil {
		tenant.MoveInDate = in.MoveInDate
	}

	// Provided value wins; an omitted document never nulls out a stored one.
	tenant.IDProof = firstNonEmpty(in.IDProof, tenantDoc(existing, func(t *models.Tenant) string { return t.IDProof }))
	tenant.PoliceVerification = firstNonEmpty(in.PoliceVerification, tenantDoc(existing, func(t *models.Tenant) string { return t.PoliceVerification }))
	tenant.OtherDocuments = firstNonEmpty(in.OtherDocuments, tenantDoc(existing, func(t *models.Tenant) string { return t.OtherDocuments }))
	if existing != nil && in.DateOfBirth == "" {
		tenant.DateOfBirth = existing.DateOfBirth
	}

	unit.Tenant = &tenant
	return draft, nil
}

// AddRentPayment appends a payment with a freshly minted id to the unit's
// active tenant.
func AddRentPayment(b models.Building, unitID string, in models.RentPaymentInput) (models.Building, error) {
	idx, err := occupiedUnit(&b, unitID)
	if err != nil {
		return models.Building{}, err
	}

	draft := b.Clone()
	tenant := draft.Units[idx].Tenant
	if tenant.RentPayments == nil {
		tenant.RentPayments = []models.RentPayment{}
	}
	tenant.RentPayments = append(tenant.RentPayments, in.ToPayment(uuid.New().String()))
	return draft, nil
}

// EditRentPayment replaces the payment whose id matches, preserving that id.
func EditRentPayment(b models.Building, unitID, paymentID string, in models.RentPaymentInput) (models.Building, error) {
	idx, err := occupiedUnit(&b, unitID)
	if err != nil {
		return models.Building{}, err
	}

	draft := b.Clone()
	tenant := draft.Units[idx].Tenant
	for i := range tenant.RentPayments {
		if tenant.RentPayments[i].ID == paymentID {
			tenant.RentPayments[i] = in.ToPayment(paymentID)
			return draft, nil
		}
	}
	return models.Building{}, NewNotFoundError("rent payment", paymentID)
}

// AddElectricityRecord appends a meter reading. UnitsConsumed and Amount are
// always derived from the readings here; caller-supplied values are ignored.
func AddElectricityRecord(b models.Building, unitID string, in models.ElectricityInput) (models.Building, error) {
	record, err := deriveElectricity(in, uuid.New().String())
	if err != nil {
		return models.Building{}, err
	}

	idx, err := occupiedUnit(&b, unitID)
	if err != nil {
		return models.Building{}, err
	}

	draft := b.Clone()
	tenant := draft.Units[idx].Tenant
	if tenant.ElectricityRecords == nil {
		tenant.ElectricityRecords = []models.ElectricityRecord{}
	}
	tenant.ElectricityRecords = append(tenant.ElectricityRecords, record)
	return draft, nil
}

// EditElectricityRecord replaces the record whose id matches, recomputing the
// derived fields from the new readings.
func EditElectricityRecord(b models.Building, unitID, recordID string, in models.ElectricityInput) (models.Building, error) {
	record, err := deriveElectricity(in, recordID)
	if err != nil {
		return models.Building{}, err
	}

	idx, err := occupiedUnit(&b, unitID)
	if err != nil {
		return models.Building{}, err
	}

	draft := b.Clone()
	tenant := draft.Units[idx].Tenant
	for i := range tenant.ElectricityRecords {
		if tenant.ElectricityRecords[i].ID == recordID {
			tenant.ElectricityRecords[i] = record
			return draft, nil
		}
	}
	return models.Building{}, NewNotFoundError("electricity record", recordID)
}

// MoveTenantToPrevious archives a unit's active tenant: active=false,
// moveOutDate=now, building/unit context attached, appended to the unit's
// previousTenants and detached from the unit. One-way, there is no restore.
func MoveTenantToPrevious(b models.Building, unitID string) (models.Building, error) {
	idx, err := occupiedUnit(&b, unitID)
	if err != nil {
		return models.Building{}, err
	}

	draft := b.Clone()
	unit := &draft.Units[idx]
	tenant := *unit.Tenant

	tenant.Active = false
	now := models.NewFlexTime(time.Now())
	tenant.MoveOutDate = &now
	tenant.BuildingID = draft.ID
	tenant.BuildingName = draft.Name
	tenant.UnitID = unit.ID
	tenant.UnitName = unit.Name

	if unit.PreviousTenants == nil {
		unit.PreviousTenants = []models.Tenant{}
	}
	unit.PreviousTenants = append(unit.PreviousTenants, tenant)
	unit.Tenant = nil
	return draft, nil
}

// ============================================================================
// HELPERS
// ============================================================================

func occupiedUnit(b *models.Building, unitID string) (int, error) {
	idx := b.FindUnit(unitID)
	if idx == -1 {
		return -1, NewNotFoundError("unit", unitID)
	}
	if b.Units[idx].Tenant == nil {
		return -1, NewNotFoundError("tenant in unit", unitID)
	}
	return idx, nil
}

func deriveElectricity(in models.ElectricityInput, id string) (models.ElectricityRecord, error) {
	if in.CurrentReading < in.PreviousReading {
		return models.ElectricityRecord{}, NewValidationError("currentReading", "must not be lower than previousReading")
	}
	date := in.Date
	if date.Time.IsZero() {
		date = models.NewFlexTime(time.Now())
	}
	units := in.CurrentReading - in.PreviousReading
	return models.ElectricityRecord{
		ID:              id,
		Date:            date,
		PreviousReading: in.PreviousReading,
		CurrentReading:  in.CurrentReading,
		UnitsConsumed:   units,
		RatePerUnit:     in.RatePerUnit,
		Amount:          units * in.RatePerUnit,
	}, nil
}

func tenantDoc(t *models.Tenant, get func(*models.Tenant) string) string {
	if t == nil {
		return ""
	}
	return get(t)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
