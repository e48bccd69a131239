package services

import (
	"fmt"
	"os"

	"github.com/twilio/twilio-go"
	twilioApi "github.com/twilio/twilio-go/rest/api/v2010"
)

// SMSService sends reminder notifications through the Twilio Messages API.
// Delivery is best-effort: a failure is logged by the caller and never rolls
// back the reminder itself.
type SMSService struct {
	client     *twilio.RestClient
	fromNumber string
	configured bool
}

func NewSMSService() *SMSService {
	accountSID := os.Getenv("TWILIO_ACCOUNT_SID")
	authToken := os.Getenv("TWILIO_AUTH_TOKEN")
	fromNumber := os.Getenv("TWILIO_PHONE_NUMBER")

	return &SMSService{
		client: twilio.NewRestClientWithParams(twilio.ClientParams{
			Username: accountSID,
			Password: authToken,
		}),
		fromNumber: fromNumber,
		configured: accountSID != "" && authToken != "" && fromNumber != "",
	}
}

// Configured reports whether Twilio credentials are present.
func (s *SMSService) Configured() bool {
	return s.configured
}

// Send delivers one reminder SMS. The body mirrors what the reminder screen
// shows: title, message, scheduled time.
func (s *SMSService) Send(title, message, scheduledTime, phone string) error {
	if !s.configured {
		return fmt.Errorf("twilio credentials not configured")
	}

	body := fmt.Sprintf("Reminder: %s\n%s", title, message)
	if scheduledTime != "" {
		body += fmt.Sprintf("\nScheduled time: %s", scheduledTime)
	}

	params := &twilioApi.CreateMessageParams{}
	params.SetTo(phone)
	params.SetFrom(s.fromNumber)
	params.SetBody(body)

	if _, err := s.client.Api.CreateMessage(params); err != nil {
		return fmt.Errorf("failed to send sms via twilio: %w", err)
	}
	return nil
}
