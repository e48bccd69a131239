package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rentroost/rentroost-api/models"
)

func day(y int, m time.Month, d int) models.FlexTime {
	return models.NewFlexTime(time.Date(y, m, d, 12, 0, 0, 0, time.UTC))
}

func reportBuilding() models.Building {
	return models.Building{
		ID:         "b1",
		Name:       "Sunrise Apartments",
		UnitsCount: 3,
		OwnerID:    "owner1",
		Units: []models.Unit{
			{
				ID:   "u1",
				Name: "Unit 1",
				Tenant: &models.Tenant{
					ID: "t1", Name: "Asha", RentAmount: 5000, Active: true,
					RentPayments: []models.RentPayment{
						{ID: "p1", Date: day(2026, time.January, 5), Amount: 5000},
						{ID: "p2", Date: day(2026, time.February, 5), Amount: 5000},
					},
					ElectricityRecords: []models.ElectricityRecord{
						{ID: "e1", Date: day(2026, time.January, 10), Amount: 400},
					},
				},
				PreviousTenants: []models.Tenant{},
			},
			{
				ID:   "u2",
				Name: "Unit 2",
				PreviousTenants: []models.Tenant{
					{
						ID: "t0", Name: "Ravi", Active: false,
						RentPayments: []models.RentPayment{
							{ID: "p0", Date: day(2026, time.January, 3), Amount: 4000},
						},
					},
				},
			},
			{ID: "u3", Name: "Unit 3", PreviousTenants: []models.Tenant{}},
		},
	}
}

func janRange() (time.Time, time.Time) {
	start := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.January, 31, 23, 59, 59, 0, time.UTC)
	return start, end
}

func TestComputeTotalsIncludesArchivedTenants(t *testing.T) {
	start, end := janRange()
	buildings := []models.Building{reportBuilding()}
	expenses := []models.Expense{
		{ID: "x1", OwnerID: "owner1", Date: day(2026, time.January, 15), Amount: 1200},
		{ID: "x2", OwnerID: "owner1", Date: day(2026, time.February, 15), Amount: 800},
		{ID: "x3", OwnerID: "other", Date: day(2026, time.January, 15), Amount: 9999},
	}

	totals := ComputeTotals(buildings, expenses, "owner1", start, end)

	// 5000 from the active tenant plus 4000 from the archived one; the
	// February payment falls outside the range.
	assert.Equal(t, 9000.0, totals.TotalRent)
	assert.Equal(t, 400.0, totals.TotalElectricity)
	assert.Equal(t, 1200.0, totals.TotalExpense)
}

func TestComputeTotalsInvertedRangeYieldsZeros(t *testing.T) {
	start := time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)

	totals := ComputeTotals([]models.Building{reportBuilding()}, nil, "owner1", start, end)
	assert.Equal(t, models.Totals{}, totals)
}

func TestComputeTotalsNoDoubleCountAfterMove(t *testing.T) {
	start, end := janRange()
	b := reportBuilding()

	before := ComputeTotals([]models.Building{b}, nil, "owner1", start, end)

	moved, err := MoveTenantToPrevious(b, "u1")
	require.NoError(t, err)
	after := ComputeTotals([]models.Building{moved}, nil, "owner1", start, end)

	// The move relocates the ledger, it never duplicates it.
	assert.Equal(t, before.TotalRent, after.TotalRent)
	assert.Equal(t, before.TotalElectricity, after.TotalElectricity)
}

func TestComputeTotalsRangePartition(t *testing.T) {
	buildings := []models.Building{reportBuilding()}

	full := ComputeTotals(buildings, nil, "owner1",
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.February, 28, 23, 59, 59, 0, time.UTC))
	jan := ComputeTotals(buildings, nil, "owner1",
		time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.January, 31, 23, 59, 59, 0, time.UTC))
	feb := ComputeTotals(buildings, nil, "owner1",
		time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2026, time.February, 28, 23, 59, 59, 0, time.UTC))

	assert.Equal(t, full.TotalRent, jan.TotalRent+feb.TotalRent)
	assert.Equal(t, full.TotalElectricity, jan.TotalElectricity+feb.TotalElectricity)
}

func TestComputeOccupancy(t *testing.T) {
	b := reportBuilding()
	occ := ComputeOccupancy(&b)
	assert.Equal(t, 1, occ.OccupiedUnits)
	assert.Equal(t, 33, occ.OccupancyRate)
}

func TestComputeOccupancyZeroUnits(t *testing.T) {
	b := models.Building{ID: "b2", UnitsCount: 0, Units: []models.Unit{}}
	occ := ComputeOccupancy(&b)
	assert.Equal(t, 0, occ.OccupiedUnits)
	assert.Equal(t, 0, occ.OccupancyRate)
}

func TestComputeUnpaidUnits(t *testing.T) {
	start, end := janRange()
	b := reportBuilding()
	b.Units[2].Tenant = &models.Tenant{
		ID: "t2", Name: "Meena", RentAmount: 6000, Active: true,
		RentPayments: []models.RentPayment{
			{ID: "p3", Date: day(2026, time.January, 8), Amount: 2500},
		},
	}

	unpaid := ComputeUnpaidUnits(&b, start, end)

	// Unit 1's tenant paid in full, Unit 3's tenant is short. Vacant units
	// never appear.
	require.Len(t, unpaid, 1)
	assert.Equal(t, "Unit 3", unpaid[0].UnitName)
	assert.Equal(t, "Meena", unpaid[0].TenantName)
	assert.Equal(t, 6000.0, unpaid[0].RentAmount)
	assert.Equal(t, 2500.0, unpaid[0].RentPaid)
}

func TestPreviousTenantsAnnotatesContext(t *testing.T) {
	all := PreviousTenants([]models.Building{reportBuilding()})

	require.Len(t, all, 1)
	assert.Equal(t, "t0", all[0].ID)
	assert.Equal(t, "b1", all[0].BuildingID)
	assert.Equal(t, "Sunrise Apartments", all[0].BuildingName)
	assert.Equal(t, "u2", all[0].UnitID)
	assert.Equal(t, "Unit 2", all[0].UnitName)
}

func TestComputeBuildingReports(t *testing.T) {
	start, end := janRange()
	expenses := []models.Expense{
		{ID: "x1", OwnerID: "owner1", BuildingID: "b1", Date: day(2026, time.January, 15), Amount: 1200},
		{ID: "x2", OwnerID: "owner1", BuildingID: "", Date: day(2026, time.January, 16), Amount: 700},
	}

	reports := ComputeBuildingReports([]models.Building{reportBuilding()}, expenses, "owner1", start, end)

	require.Len(t, reports, 1)
	r := reports[0]
	assert.Equal(t, "b1", r.BuildingID)
	assert.Equal(t, 9000.0, r.Rent)
	assert.Equal(t, 400.0, r.Electricity)
	// Only the expense tied to this building counts here.
	assert.Equal(t, 1200.0, r.Expenses)
	assert.Equal(t, 3, r.Units)
	assert.Equal(t, 1, r.Occupied)
	assert.Equal(t, 33, r.OccupancyRate)
}
