package models

// Expense is a top-level document, not nested inside a building. BuildingID
// and UnitID are the embedded document ids, kept as opaque strings.
type Expense struct {
	ID          string   `json:"id"`
	Date        FlexTime `json:"date"`
	Amount      float64  `json:"amount"`
	Description string   `json:"description"`
	BuildingID  string   `json:"buildingId,omitempty"`
	UnitID      string   `json:"unitId,omitempty"`
	OwnerID     string   `json:"ownerId"`
}

type CreateExpenseRequest struct {
	Date        FlexTime `json:"date"`
	Amount      float64  `json:"amount" binding:"required,gt=0"`
	Description string   `json:"description" binding:"required"`
	BuildingID  string   `json:"buildingId"`
	UnitID      string   `json:"unitId"`
}
