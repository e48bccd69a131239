package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/rentroost/rentroost-api/models"
)

// ExpenseService owns the flat expenses collection.
type ExpenseService struct {
	db *sql.DB
}

func NewExpenseService(db *sql.DB) *ExpenseService {
	return &ExpenseService{db: db}
}

func (s *ExpenseService) Create(ctx context.Context, ownerID string, req models.CreateExpenseRequest) (*models.Expense, error) {
	expense := &models.Expense{
		ID:          uuid.New().String(),
		Date:        req.Date,
		Amount:      req.Amount,
		Description: req.Description,
		BuildingID:  req.BuildingID,
		UnitID:      req.UnitID,
		OwnerID:     ownerID,
	}
	if expense.Date.Time.IsZero() {
		expense.Date = models.NewFlexTime(time.Now())
	}

	query := `
		INSERT INTO expenses (id, owner_id, date, amount, description, building_id, unit_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	if _, err := s.db.ExecContext(ctx, query, expense.ID, ownerID, expense.Date.Time, expense.Amount, expense.Description, expense.BuildingID, expense.UnitID); err != nil {
		return nil, syncErr("insert expense", err)
	}

	return expense, nil
}

func (s *ExpenseService) List(ctx context.Context, ownerID string) ([]models.Expense, error) {
	query := `
		SELECT id, owner_id, date, amount, description, COALESCE(building_id, ''), COALESCE(unit_id, '')
		FROM expenses
		WHERE owner_id = $1
		ORDER BY date DESC
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, syncErr("select expenses", err)
	}
	defer rows.Close()

	expenses := []models.Expense{}
	for rows.Next() {
		var e models.Expense
		var date time.Time
		if err := rows.Scan(&e.ID, &e.OwnerID, &date, &e.Amount, &e.Description, &e.BuildingID, &e.UnitID); err != nil {
			return nil, syncErr("scan expense", err)
		}
		e.Date = models.NewFlexTime(date)
		expenses = append(expenses, e)
	}
	if err := rows.Err(); err != nil {
		return nil, syncErr("iterate expenses", err)
	}
	return expenses, nil
}

// Delete hard-deletes an expense. Expenses have no dependents, so there is
// no cascade and no soft delete.
func (s *ExpenseService) Delete(ctx context.Context, id, ownerID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM expenses WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return syncErr("delete expense", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return NewNotFoundError("expense", id)
	}
	return nil
}
