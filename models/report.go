package models

// ============================================================================
// REPORTING RESULTS
// ============================================================================

type Totals struct {
	TotalRent        float64 `json:"totalRent"`
	TotalElectricity float64 `json:"totalElectricity"`
	TotalExpense     float64 `json:"totalExpense"`
}

type Occupancy struct {
	OccupiedUnits int `json:"occupiedUnits"`
	OccupancyRate int `json:"occupancyRate"`
}

// UnpaidUnit reports a unit whose tenant has paid less than the monthly rent
// within the queried range. Partial payments are reported as amounts, not a
// boolean.
type UnpaidUnit struct {
	UnitName   string  `json:"unitName"`
	TenantName string  `json:"tenantName"`
	RentAmount float64 `json:"rentAmount"`
	RentPaid   float64 `json:"rentPaid"`
}

// BuildingReport is one row of the per-building breakdown on the reports page.
type BuildingReport struct {
	BuildingID    string  `json:"buildingId"`
	BuildingName  string  `json:"buildingName"`
	Rent          float64 `json:"rent"`
	Electricity   float64 `json:"electricity"`
	Expenses      float64 `json:"expenses"`
	Units         int     `json:"units"`
	Occupied      int     `json:"occupied"`
	OccupancyRate int     `json:"occupancyRate"`
}
