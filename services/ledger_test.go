package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentroost/rentroost-api/models"
)

func testBuilding() models.Building {
	return models.Building{
		ID:         "b1",
		Name:       "Sunrise Apartments",
		UnitsCount: 2,
		OwnerID:    "owner1",
		Units: []models.Unit{
			{ID: "u1", Name: "Unit 1", PreviousTenants: []models.Tenant{}},
			{ID: "u2", Name: "Unit 2", PreviousTenants: []models.Tenant{}},
		},
	}
}

func occupiedBuilding() models.Building {
	b := testBuilding()
	b.Units[0].Tenant = &models.Tenant{
		ID:                 "t1",
		Name:               "Asha",
		ContactNo:          "9876543210",
		RentAmount:         5000,
		Active:             true,
		RentPayments:       []models.RentPayment{},
		ElectricityRecords: []models.ElectricityRecord{},
	}
	return b
}

func TestUpsertTenantAssignsNewTenant(t *testing.T) {
	b := testBuilding()

	out, err := UpsertTenant(b, "u1", models.TenantInput{Name: "Asha", ContactNo: "9876543210", RentAmount: 5000})
	require.NoError(t, err)

	tenant := out.Units[0].Tenant
	require.NotNil(t, tenant)
	assert.NotEmpty(t, tenant.ID)
	assert.True(t, tenant.Active)
	assert.NotNil(t, tenant.MoveInDate)
	assert.Empty(t, tenant.RentPayments)
	assert.Empty(t, tenant.ElectricityRecords)

	// Source snapshot stays untouched.
	assert.Nil(t, b.Units[0].Tenant)
}

func TestUpsertTenantEditKeepsIdentityAndLedger(t *testing.T) {
	b := occupiedBuilding()
	b.Units[0].Tenant.RentPayments = []models.RentPayment{{ID: "p1", Amount: 5000}}
	b.Units[0].Tenant.IDProof = "/uploads/tenants/b1/u1/idProof-1.pdf"
	moveIn := models.NewFlexTime(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	b.Units[0].Tenant.MoveInDate = &moveIn

	out, err := UpsertTenant(b, "u1", models.TenantInput{Name: "Asha Devi", ContactNo: "9876543210", RentAmount: 5500})
	require.NoError(t, err)

	tenant := out.Units[0].Tenant
	assert.Equal(t, "t1", tenant.ID)
	assert.Equal(t, "Asha Devi", tenant.Name)
	assert.Equal(t, 5500.0, tenant.RentAmount)
	require.Len(t, tenant.RentPayments, 1)
	assert.Equal(t, "p1", tenant.RentPayments[0].ID)
	assert.Equal(t, moveIn.Time, tenant.MoveInDate.Time)

	// An omitted document keeps the stored value.
	assert.Equal(t, "/uploads/tenants/b1/u1/idProof-1.pdf", tenant.IDProof)
}

func TestUpsertTenantValidation(t *testing.T) {
	b := testBuilding()

	_, err := UpsertTenant(b, "u1", models.TenantInput{ContactNo: "9876543210"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "name", verr.Field)

	_, err = UpsertTenant(b, "u1", models.TenantInput{Name: "Asha", ContactNo: "   "})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "contactNo", verr.Field)

	_, err = UpsertTenant(b, "missing", models.TenantInput{Name: "Asha", ContactNo: "9876543210"})
	var nferr *NotFoundError
	require.ErrorAs(t, err, &nferr)
}

func TestAddRentPaymentMintsID(t *testing.T) {
	b := occupiedBuilding()

	out, err := AddRentPayment(b, "u1", models.RentPaymentInput{Amount: 5000, Month: "January", Year: 2026})
	require.NoError(t, err)

	payments := out.Units[0].Tenant.RentPayments
	require.Len(t, payments, 1)
	assert.NotEmpty(t, payments[0].ID)
	assert.Equal(t, 5000.0, payments[0].Amount)
	assert.False(t, payments[0].Date.Time.IsZero())

	assert.Empty(t, b.Units[0].Tenant.RentPayments)
}

func TestAddRentPaymentRequiresTenant(t *testing.T) {
	b := testBuilding()

	_, err := AddRentPayment(b, "u1", models.RentPaymentInput{Amount: 5000, Month: "January", Year: 2026})
	var nferr *NotFoundError
	require.ErrorAs(t, err, &nferr)
}

func TestEditRentPaymentPreservesID(t *testing.T) {
	b := occupiedBuilding()
	b.Units[0].Tenant.RentPayments = []models.RentPayment{
		{ID: "p1", Amount: 5000, Month: "January", Year: 2026},
		{ID: "p2", Amount: 5000, Month: "February", Year: 2026},
	}

	out, err := EditRentPayment(b, "u1", "p2", models.RentPaymentInput{Amount: 4500, Month: "February", Year: 2026})
	require.NoError(t, err)

	payments := out.Units[0].Tenant.RentPayments
	require.Len(t, payments, 2)
	assert.Equal(t, "p2", payments[1].ID)
	assert.Equal(t, 4500.0, payments[1].Amount)
	assert.Equal(t, 5000.0, payments[0].Amount)

	// Original snapshot unchanged.
	assert.Equal(t, 5000.0, b.Units[0].Tenant.RentPayments[1].Amount)
}

func TestEditRentPaymentMissingID(t *testing.T) {
	b := occupiedBuilding()

	_, err := EditRentPayment(b, "u1", "nope", models.RentPaymentInput{Amount: 4500, Month: "February", Year: 2026})
	var nferr *NotFoundError
	require.ErrorAs(t, err, &nferr)
}

func TestAddElectricityRecordDerivesFields(t *testing.T) {
	b := occupiedBuilding()

	// Caller-supplied derived values are ignored.
	out, err := AddElectricityRecord(b, "u1", models.ElectricityInput{
		PreviousReading: 100,
		CurrentReading:  150,
		RatePerUnit:     8,
		UnitsConsumed:   999,
		Amount:          999999,
	})
	require.NoError(t, err)

	records := out.Units[0].Tenant.ElectricityRecords
	require.Len(t, records, 1)
	assert.Equal(t, 50.0, records[0].UnitsConsumed)
	assert.Equal(t, 400.0, records[0].Amount)
	assert.NotEmpty(t, records[0].ID)
}

func TestAddElectricityRecordRejectsBackwardReading(t *testing.T) {
	b := occupiedBuilding()

	_, err := AddElectricityRecord(b, "u1", models.ElectricityInput{
		PreviousReading: 150,
		CurrentReading:  100,
		RatePerUnit:     8,
	})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "currentReading", verr.Field)

	assert.Empty(t, b.Units[0].Tenant.ElectricityRecords)
}

func TestEditElectricityRecordRecomputes(t *testing.T) {
	b := occupiedBuilding()
	b.Units[0].Tenant.ElectricityRecords = []models.ElectricityRecord{
		{ID: "e1", PreviousReading: 100, CurrentReading: 150, UnitsConsumed: 50, RatePerUnit: 8, Amount: 400},
	}

	out, err := EditElectricityRecord(b, "u1", "e1", models.ElectricityInput{
		PreviousReading: 100,
		CurrentReading:  180,
		RatePerUnit:     8,
	})
	require.NoError(t, err)

	record := out.Units[0].Tenant.ElectricityRecords[0]
	assert.Equal(t, "e1", record.ID)
	assert.Equal(t, 80.0, record.UnitsConsumed)
	assert.Equal(t, 640.0, record.Amount)
}

func TestMoveTenantToPrevious(t *testing.T) {
	b := occupiedBuilding()
	b.Units[0].Tenant.RentPayments = []models.RentPayment{{ID: "p1", Amount: 5000}}

	out, err := MoveTenantToPrevious(b, "u1")
	require.NoError(t, err)

	unit := out.Units[0]
	assert.Nil(t, unit.Tenant)
	require.Len(t, unit.PreviousTenants, 1)

	archived := unit.PreviousTenants[0]
	assert.Equal(t, "t1", archived.ID)
	assert.False(t, archived.Active)
	require.NotNil(t, archived.MoveOutDate)
	assert.Equal(t, "b1", archived.BuildingID)
	assert.Equal(t, "Sunrise Apartments", archived.BuildingName)
	assert.Equal(t, "u1", archived.UnitID)
	assert.Equal(t, "Unit 1", archived.UnitName)
	require.Len(t, archived.RentPayments, 1)

	// Source snapshot keeps its active tenant.
	require.NotNil(t, b.Units[0].Tenant)
	assert.True(t, b.Units[0].Tenant.Active)
}

func TestMoveTenantToPreviousVacantUnit(t *testing.T) {
	b := testBuilding()

	_, err := MoveTenantToPrevious(b, "u2")
	var nferr *NotFoundError
	require.ErrorAs(t, err, &nferr)
}

func TestMoveThenReassignKeepsLedgersSeparate(t *testing.T) {
	b := occupiedBuilding()
	b.Units[0].Tenant.RentPayments = []models.RentPayment{{ID: "p1", Amount: 5000}}

	moved, err := MoveTenantToPrevious(b, "u1")
	require.NoError(t, err)

	reassigned, err := UpsertTenant(moved, "u1", models.TenantInput{Name: "Ravi", ContactNo: "9000000000", RentAmount: 6000})
	require.NoError(t, err)

	unit := reassigned.Units[0]
	require.NotNil(t, unit.Tenant)
	assert.NotEqual(t, "t1", unit.Tenant.ID)
	assert.Empty(t, unit.Tenant.RentPayments)
	require.Len(t, unit.PreviousTenants, 1)
	require.Len(t, unit.PreviousTenants[0].RentPayments, 1)
}
