package services

import (
	"math"
	"time"

	"github.com/rentroost/rentroost-api/models"
)

// ============================================================================
// AGGREGATION ENGINE
// ============================================================================
// Pure, synchronous reductions over an already-loaded entity graph. Dates are
// normalized at the ingestion boundary, so every comparison here is a plain
// inclusive range check. A tenant lives in exactly one of unit.tenant or
// unit.previousTenants, which is what keeps a payment from being counted
// twice after a move-out.
// ============================================================================

func inRange(t time.Time, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}

// ComputeTotals sums rent payments, electricity amounts and expenses for one
// owner over an inclusive date range. An inverted range simply matches
// nothing and yields zeros.
func ComputeTotals(buildings []models.Building, expenses []models.Expense, ownerID string, start, end time.Time) models.Totals {
	var totals models.Totals

	for _, building := range buildings {
		if building.OwnerID != ownerID {
			continue
		}
		rent, electricity := sumBuilding(&building, start, end)
		totals.TotalRent += rent
		totals.TotalElectricity += electricity
	}

	for _, expense := range expenses {
		if expense.OwnerID != ownerID {
			continue
		}
		if inRange(expense.Date.Time, start, end) {
			totals.TotalExpense += expense.Amount
		}
	}

	return totals
}

func sumBuilding(b *models.Building, start, end time.Time) (rent, electricity float64) {
	for _, unit := range b.Units {
		if unit.Tenant != nil {
			r, e := sumTenant(unit.Tenant, start, end)
			rent += r
			electricity += e
		}
		for i := range unit.PreviousTenants {
			r, e := sumTenant(&unit.PreviousTenants[i], start, end)
			rent += r
			electricity += e
		}
	}
	return rent, electricity
}

func sumTenant(t *models.Tenant, start, end time.Time) (rent, electricity float64) {
	for _, payment := range t.RentPayments {
		if inRange(payment.Date.Time, start, end) {
			rent += payment.Amount
		}
	}
	for _, record := range t.ElectricityRecords {
		if inRange(record.Date.Time, start, end) {
			electricity += record.Amount
		}
	}
	return rent, electricity
}

// ComputeOccupancy counts occupied units against the declared unit count.
// A building declared with zero units reports a 0% rate, never NaN.
func ComputeOccupancy(b *models.Building) models.Occupancy {
	occupied := 0
	for _, unit := range b.Units {
		if unit.Tenant != nil {
			occupied++
		}
	}
	rate := 0
	if b.UnitsCount > 0 {
		rate = int(math.Round(float64(occupied) / float64(b.UnitsCount) * 100))
	}
	return models.Occupancy{OccupiedUnits: occupied, OccupancyRate: rate}
}

// ComputeUnpaidUnits lists occupied units whose rent collected within the
// range falls short of the tenant's monthly rent, partial payments included.
func ComputeUnpaidUnits(b *models.Building, start, end time.Time) []models.UnpaidUnit {
	unpaid := []models.UnpaidUnit{}
	for _, unit := range b.Units {
		if unit.Tenant == nil {
			continue
		}
		paid := 0.0
		for _, payment := range unit.Tenant.RentPayments {
			if inRange(payment.Date.Time, start, end) {
				paid += payment.Amount
			}
		}
		if paid < unit.Tenant.RentAmount {
			unpaid = append(unpaid, models.UnpaidUnit{
				UnitName:   unit.Name,
				TenantName: unit.Tenant.Name,
				RentAmount: unit.Tenant.RentAmount,
				RentPaid:   paid,
			})
		}
	}
	return unpaid
}

// PreviousTenants flattens every unit's archive into one list, each entry
// annotated with the building and unit it came from.
func PreviousTenants(buildings []models.Building) []models.Tenant {
	all := []models.Tenant{}
	for _, building := range buildings {
		for _, unit := range building.Units {
			for _, tenant := range unit.PreviousTenants {
				tenant.BuildingID = building.ID
				tenant.BuildingName = building.Name
				tenant.UnitID = unit.ID
				tenant.UnitName = unit.Name
				all = append(all, tenant)
			}
		}
	}
	return all
}

// ComputeBuildingReports produces the per-building breakdown rows for the
// reports page: income, expenses and occupancy per building over the range.
func ComputeBuildingReports(buildings []models.Building, expenses []models.Expense, ownerID string, start, end time.Time) []models.BuildingReport {
	reports := []models.BuildingReport{}
	for _, building := range buildings {
		if building.OwnerID != ownerID {
			continue
		}
		rent, electricity := sumBuilding(&building, start, end)
		occ := ComputeOccupancy(&building)

		expenseTotal := 0.0
		for _, expense := range expenses {
			if expense.OwnerID == ownerID && expense.BuildingID == building.ID && inRange(expense.Date.Time, start, end) {
				expenseTotal += expense.Amount
			}
		}

		reports = append(reports, models.BuildingReport{
			BuildingID:    building.ID,
			BuildingName:  building.Name,
			Rent:          rent,
			Electricity:   electricity,
			Expenses:      expenseTotal,
			Units:         building.UnitsCount,
			Occupied:      occ.OccupiedUnits,
			OccupancyRate: occ.OccupancyRate,
		})
	}
	return reports
}
