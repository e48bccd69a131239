package models

// Reminder lifecycle: created with completed=false, flipped to true by the
// dispatch sweep or by the user. There is no un-complete.
type Reminder struct {
	ID        string   `json:"id"`
	Date      FlexTime `json:"date"`
	Time      string   `json:"time"`
	Title     string   `json:"title"`
	Message   string   `json:"message"`
	Completed bool     `json:"completed"`
	SendSMS   bool     `json:"sendSMS,omitempty"`
	Phone     string   `json:"phone,omitempty"`
	OwnerID   string   `json:"ownerId"`
}

type CreateReminderRequest struct {
	Date    FlexTime `json:"date"`
	Time    string   `json:"time" binding:"required,len=5"`
	Title   string   `json:"title" binding:"required"`
	Message string   `json:"message"`
	SendSMS bool     `json:"sendSMS"`
	Phone   string   `json:"phone"`
}
