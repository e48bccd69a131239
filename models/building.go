package models

import "time"

// ============================================================================
// BUILDING DOCUMENT MODEL
// ============================================================================
// A building is stored as a single document: scalar columns plus the whole
// units array embedded inline as JSONB. Field names below are the wire
// contract shared with the frontend; they stay camelCase.
// ============================================================================

type Building struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	UnitsCount int    `json:"unitsCount"`
	Address    string `json:"address,omitempty"`
	Units      []Unit `json:"units"`
	OwnerID    string `json:"ownerId"`
	Version    int    `json:"-"`
}

type Unit struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Floor           string   `json:"floor,omitempty"`
	Details         string   `json:"details,omitempty"`
	Tenant          *Tenant  `json:"tenant"`
	PreviousTenants []Tenant `json:"previousTenants"`
}

type Tenant struct {
	ID                 string              `json:"id"`
	Name               string              `json:"name"`
	ContactNo          string              `json:"contactNo"`
	DateOfBirth        string              `json:"dateOfBirth,omitempty"`
	MemberCount        int                 `json:"memberCount"`
	RentAmount         float64             `json:"rentAmount"`
	RoomDetails        string              `json:"roomDetails"`
	About              string              `json:"about"`
	IDProof            string              `json:"idProof,omitempty"`
	PoliceVerification string              `json:"policeVerification,omitempty"`
	OtherDocuments     string              `json:"otherDocuments,omitempty"`
	RentPayments       []RentPayment       `json:"rentPayments"`
	ElectricityRecords []ElectricityRecord `json:"electricityRecords"`
	Active             bool                `json:"active"`
	MoveInDate         *FlexTime           `json:"moveInDate,omitempty"`
	MoveOutDate        *FlexTime           `json:"moveOutDate,omitempty"`

	// Archival context, attached when the tenant is moved to a unit's
	// previousTenants so the flat listing can point back to its home.
	BuildingID   string `json:"buildingId,omitempty"`
	BuildingName string `json:"buildingName,omitempty"`
	UnitID       string `json:"unitId,omitempty"`
	UnitName     string `json:"unitName,omitempty"`
}

type RentPayment struct {
	ID            string   `json:"id"`
	Date          FlexTime `json:"date"`
	Amount        float64  `json:"amount"`
	Month         string   `json:"month"`
	Year          int      `json:"year"`
	PaymentMethod string   `json:"paymentMethod,omitempty"`
	Remarks       string   `json:"remarks,omitempty"`
}

type ElectricityRecord struct {
	ID              string   `json:"id"`
	Date            FlexTime `json:"date"`
	PreviousReading float64  `json:"previousReading"`
	CurrentReading  float64  `json:"currentReading"`
	UnitsConsumed   float64  `json:"unitsConsumed"`
	RatePerUnit     float64  `json:"ratePerUnit"`
	Amount          float64  `json:"amount"`
}

// ============================================================================
// DEEP COPIES
// ============================================================================
// Ledger mutations are copy-on-write over the whole building aggregate: the
// draft shares nothing with the source, so a failed persist leaves the
// in-memory snapshot untouched.

func (b Building) Clone() Building {
	units := make([]Unit, len(b.Units))
	for i, u := range b.Units {
		units[i] = u.Clone()
	}
	b.Units = units
	return b
}

func (u Unit) Clone() Unit {
	if u.Tenant != nil {
		t := u.Tenant.Clone()
		u.Tenant = &t
	}
	prev := make([]Tenant, len(u.PreviousTenants))
	for i, t := range u.PreviousTenants {
		prev[i] = t.Clone()
	}
	u.PreviousTenants = prev
	return u
}

func (t Tenant) Clone() Tenant {
	payments := make([]RentPayment, len(t.RentPayments))
	copy(payments, t.RentPayments)
	t.RentPayments = payments

	records := make([]ElectricityRecord, len(t.ElectricityRecords))
	copy(records, t.ElectricityRecords)
	t.ElectricityRecords = records

	if t.MoveInDate != nil {
		d := *t.MoveInDate
		t.MoveInDate = &d
	}
	if t.MoveOutDate != nil {
		d := *t.MoveOutDate
		t.MoveOutDate = &d
	}
	return t
}

// NormalizeBuilding is applied once whenever a building document is loaded.
// Older documents may be missing nested arrays entirely; downstream code
// assumes they are always present.
func NormalizeBuilding(b *Building) {
	if b.Units == nil {
		b.Units = []Unit{}
	}
	for i := range b.Units {
		u := &b.Units[i]
		if u.PreviousTenants == nil {
			u.PreviousTenants = []Tenant{}
		}
		if u.Tenant != nil {
			normalizeTenant(u.Tenant)
		}
		for j := range u.PreviousTenants {
			normalizeTenant(&u.PreviousTenants[j])
		}
	}
}

func normalizeTenant(t *Tenant) {
	if t.RentPayments == nil {
		t.RentPayments = []RentPayment{}
	}
	if t.ElectricityRecords == nil {
		t.ElectricityRecords = []ElectricityRecord{}
	}
}

// FindUnit returns the index of the unit with the given id, or -1.
func (b *Building) FindUnit(unitID string) int {
	for i := range b.Units {
		if b.Units[i].ID == unitID {
			return i
		}
	}
	return -1
}

// ============================================================================
// REQUESTS
// ============================================================================

type CreateBuildingRequest struct {
	Name       string `json:"name" binding:"required"`
	UnitsCount int    `json:"unitsCount" binding:"required,min=1"`
	Address    string `json:"address"`
}

// TenantInput is the upsert payload for a unit's tenant. Document fields left
// empty keep whatever is already stored.
type TenantInput struct {
	Name               string     `json:"name"`
	ContactNo          string     `json:"contactNo"`
	DateOfBirth        string     `json:"dateOfBirth"`
	MemberCount        int        `json:"memberCount"`
	RentAmount         float64    `json:"rentAmount"`
	RoomDetails        string     `json:"roomDetails"`
	About              string     `json:"about"`
	IDProof            string     `json:"idProof"`
	PoliceVerification string     `json:"policeVerification"`
	OtherDocuments     string     `json:"otherDocuments"`
	MoveInDate         *FlexTime  `json:"moveInDate"`
}

type RentPaymentInput struct {
	Date          FlexTime `json:"date"`
	Amount        float64  `json:"amount" binding:"required,gt=0"`
	Month         string   `json:"month" binding:"required"`
	Year          int      `json:"year" binding:"required"`
	PaymentMethod string   `json:"paymentMethod"`
	Remarks       string   `json:"remarks"`
}

// ElectricityInput carries the raw readings. UnitsConsumed and Amount are
// accepted for wire compatibility but always recomputed server-side.
type ElectricityInput struct {
	Date            FlexTime `json:"date"`
	PreviousReading float64  `json:"previousReading"`
	CurrentReading  float64  `json:"currentReading"`
	RatePerUnit     float64  `json:"ratePerUnit" binding:"required,gt=0"`
	UnitsConsumed   float64  `json:"unitsConsumed"`
	Amount          float64  `json:"amount"`
}

func (p RentPaymentInput) ToPayment(id string) RentPayment {
	date := p.Date
	if date.Time.IsZero() {
		date = NewFlexTime(time.Now())
	}
	return RentPayment{
		ID:            id,
		Date:          date,
		Amount:        p.Amount,
		Month:         p.Month,
		Year:          p.Year,
		PaymentMethod: p.PaymentMethod,
		Remarks:       p.Remarks,
	}
}
