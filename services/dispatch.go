package services

import (
	"context"
	"fmt"
	"time"

	"github.com/rentroost/rentroost-api/utils"
)

// Sender is the outbound notification contract the dispatcher depends on.
type Sender interface {
	Configured() bool
	Send(title, message, scheduledTime, phone string) error
}

// ReminderDispatcher is the minute-granularity sweep over due reminders.
// It sends the SMS when asked for and the sender is configured, then marks
// the reminder completed regardless of dispatch outcome. Delivery is at
// most once.
type ReminderDispatcher struct {
	reminders *ReminderService
	sender    Sender
}

func NewReminderDispatcher(reminders *ReminderService, sender Sender) *ReminderDispatcher {
	return &ReminderDispatcher{reminders: reminders, sender: sender}
}

// ProcessDue handles every incomplete reminder whose time matches now's
// local wall-clock HH:MM. Returns the number of reminders processed.
func (d *ReminderDispatcher) ProcessDue(ctx context.Context, now time.Time) (int, error) {
	hhmm := fmt.Sprintf("%02d:%02d", now.Hour(), now.Minute())

	due, err := d.reminders.Due(ctx, hhmm)
	if err != nil {
		return 0, err
	}

	for _, reminder := range due {
		if reminder.SendSMS && reminder.Phone != "" && d.sender.Configured() {
			if err := d.sender.Send(reminder.Title, reminder.Message, reminder.Time, reminder.Phone); err != nil {
				utils.LogSMSAction("dispatch", reminder.ID, reminder.Phone, false)
				utils.SafeWarn("SMS dispatch failed for reminder %s: %v", reminder.ID, err)
			} else {
				utils.LogSMSAction("dispatch", reminder.ID, reminder.Phone, true)
			}
		}

		// Completed even when the SMS failed; the sweep never retries.
		if err := d.reminders.markCompletedAny(ctx, reminder.ID); err != nil {
			utils.SafeError("failed to mark reminder %s completed: %v", reminder.ID, err)
		}
	}

	return len(due), nil
}
