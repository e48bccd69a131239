package services

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/rentroost/rentroost-api/models"
)

// ReminderService owns the flat reminders collection.
type ReminderService struct {
	db *sql.DB
}

func NewReminderService(db *sql.DB) *ReminderService {
	return &ReminderService{db: db}
}

func (s *ReminderService) Create(ctx context.Context, ownerID string, req models.CreateReminderRequest) (*models.Reminder, error) {
	if req.SendSMS && req.Phone == "" {
		return nil, NewValidationError("phone", "required when sendSMS is set")
	}

	reminder := &models.Reminder{
		ID:      uuid.New().String(),
		Date:    req.Date,
		Time:    req.Time,
		Title:   req.Title,
		Message: req.Message,
		SendSMS: req.SendSMS,
		Phone:   req.Phone,
		OwnerID: ownerID,
	}
	if reminder.Date.Time.IsZero() {
		reminder.Date = models.NewFlexTime(time.Now())
	}

	query := `
		INSERT INTO reminders (id, owner_id, date, time, title, message, completed, send_sms, phone)
		VALUES ($1, $2, $3, $4, $5, $6, FALSE, $7, $8)
	`
	if _, err := s.db.ExecContext(ctx, query, reminder.ID, ownerID, reminder.Date.Time, reminder.Time, reminder.Title, reminder.Message, reminder.SendSMS, reminder.Phone); err != nil {
		return nil, syncErr("insert reminder", err)
	}

	return reminder, nil
}

func (s *ReminderService) List(ctx context.Context, ownerID string) ([]models.Reminder, error) {
	query := `
		SELECT id, owner_id, date, time, title, message, completed, send_sms, COALESCE(phone, '')
		FROM reminders
		WHERE owner_id = $1
		ORDER BY date DESC, time DESC
	`
	rows, err := s.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, syncErr("select reminders", err)
	}
	defer rows.Close()
	return scanReminders(rows)
}

// Due returns every incomplete reminder scheduled for the given wall-clock
// HH:MM, across all owners. The dispatch sweep runs once per minute.
func (s *ReminderService) Due(ctx context.Context, hhmm string) ([]models.Reminder, error) {
	query := `
		SELECT id, owner_id, date, time, title, message, completed, send_sms, COALESCE(phone, '')
		FROM reminders
		WHERE completed = FALSE AND time = $1
	`
	rows, err := s.db.QueryContext(ctx, query, hhmm)
	if err != nil {
		return nil, syncErr("select due reminders", err)
	}
	defer rows.Close()
	return scanReminders(rows)
}

func scanReminders(rows *sql.Rows) ([]models.Reminder, error) {
	reminders := []models.Reminder{}
	for rows.Next() {
		var r models.Reminder
		var date time.Time
		if err := rows.Scan(&r.ID, &r.OwnerID, &date, &r.Time, &r.Title, &r.Message, &r.Completed, &r.SendSMS, &r.Phone); err != nil {
			return nil, syncErr("scan reminder", err)
		}
		r.Date = models.NewFlexTime(date)
		reminders = append(reminders, r)
	}
	if err := rows.Err(); err != nil {
		return nil, syncErr("iterate reminders", err)
	}
	return reminders, nil
}

// MarkCompleted flips completed to true. Terminal; there is no un-complete.
func (s *ReminderService) MarkCompleted(ctx context.Context, id, ownerID string) error {
	result, err := s.db.ExecContext(ctx, `UPDATE reminders SET completed = TRUE WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return syncErr("update reminder", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return NewNotFoundError("reminder", id)
	}
	return nil
}

// markCompletedAny is the sweep's variant: no owner filter, the sweep acts on
// behalf of the system.
func (s *ReminderService) markCompletedAny(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, `UPDATE reminders SET completed = TRUE WHERE id = $1`, id)
	return syncErr("update reminder", err)
}

// Delete hard-deletes a reminder in either lifecycle state.
func (s *ReminderService) Delete(ctx context.Context, id, ownerID string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return syncErr("delete reminder", err)
	}
	if rows, _ := result.RowsAffected(); rows == 0 {
		return NewNotFoundError("reminder", id)
	}
	return nil
}
