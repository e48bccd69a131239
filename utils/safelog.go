// utils/safelog.go
// ============================================================================
// SAFE LOGGING - Masks personal data in production
// ============================================================================
// Tenant phone numbers, rupee amounts and document ids are personal data.
// In production these are masked before they reach the logs; in development
// everything is logged verbatim.
// ============================================================================

package utils

import (
	"fmt"
	"log"
	"os"
	"regexp"
	"strings"
)

var (
	// IsProduction controls masking. In production, sensitive data is masked.
	IsProduction = os.Getenv("GIN_MODE") == "release" ||
		os.Getenv("ENVIRONMENT") == "production" ||
		os.Getenv("ENV") == "production"

	LogLevel = getLogLevel()
)

const (
	LogLevelDebug = iota
	LogLevelInfo
	LogLevelWarn
	LogLevelError
)

func getLogLevel() int {
	level := strings.ToUpper(os.Getenv("LOG_LEVEL"))
	switch level {
	case "DEBUG":
		return LogLevelDebug
	case "WARN", "WARNING":
		return LogLevelWarn
	case "ERROR":
		return LogLevelError
	default:
		return LogLevelInfo
	}
}

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)

	// Phone numbers, including +country-code forms tenants register with.
	phoneRegex = regexp.MustCompile(`\+?\d{10,13}\b`)

	// Rupee amounts with an explicit currency marker.
	amountRegex = regexp.MustCompile(`(₹|INR|Rs\.?)\s*\d+([.,]\d{1,2})?`)

	uuidRegex = regexp.MustCompile(`[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}`)
)

// MaskString masks sensitive data in a string when running in production.
func MaskString(input string) string {
	if !IsProduction {
		return input
	}

	result := input
	result = emailRegex.ReplaceAllString(result, "***@***.***")
	result = phoneRegex.ReplaceAllString(result, "**********")
	result = amountRegex.ReplaceAllString(result, "₹***")
	result = uuidRegex.ReplaceAllStringFunc(result, func(id string) string {
		return id[:8] + "..."
	})
	return result
}

// MaskID keeps the first 8 characters of an id in production.
func MaskID(id string) string {
	if !IsProduction {
		return id
	}
	if len(id) <= 8 {
		return "***"
	}
	return id[:8] + "..."
}

// MaskPhone masks a tenant contact number.
func MaskPhone(phone string) string {
	if !IsProduction {
		return phone
	}
	if len(phone) <= 4 {
		return "****"
	}
	return "******" + phone[len(phone)-4:]
}

// ============================================================================
// SAFE LOGGING FUNCTIONS
// ============================================================================

func SafeLog(format string, args ...interface{}) {
	log.Print(MaskString(fmt.Sprintf(format, args...)))
}

func SafeDebug(format string, args ...interface{}) {
	if LogLevel > LogLevelDebug {
		return
	}
	log.Printf("[DEBUG] %s", MaskString(fmt.Sprintf(format, args...)))
}

func SafeInfo(format string, args ...interface{}) {
	if LogLevel > LogLevelInfo {
		return
	}
	log.Printf("[INFO] %s", MaskString(fmt.Sprintf(format, args...)))
}

func SafeWarn(format string, args ...interface{}) {
	if LogLevel > LogLevelWarn {
		return
	}
	log.Printf("[WARN] %s", MaskString(fmt.Sprintf(format, args...)))
}

func SafeError(format string, args ...interface{}) {
	log.Printf("[ERROR] %s", MaskString(fmt.Sprintf(format, args...)))
}

// ============================================================================
// DOMAIN LOG HELPERS
// ============================================================================

// LogLedgerAction logs a mutation on a building document.
func LogLedgerAction(action, buildingID, ownerID string) {
	log.Printf("[Ledger] %s - Building: %s Owner: %s", action, MaskID(buildingID), MaskID(ownerID))
}

// LogAuthAction logs an authentication attempt.
func LogAuthAction(action, email string, success bool) {
	status := "SUCCESS"
	if !success {
		status = "FAILED"
	}
	masked := email
	if IsProduction {
		masked = "***@***.***"
	}
	log.Printf("[Auth] %s - Email: %s Status: %s", action, masked, status)
}

// LogSMSAction logs a reminder dispatch attempt.
func LogSMSAction(action, reminderID, phone string, success bool) {
	status := "SENT"
	if !success {
		status = "FAILED"
	}
	log.Printf("[SMS] %s - Reminder: %s Phone: %s Status: %s", action, MaskID(reminderID), MaskPhone(phone), status)
}

// LogWebSocket logs a broadcast hub event.
func LogWebSocket(action, ownerID string) {
	log.Printf("[WS] %s - Owner: %s", action, MaskID(ownerID))
}

// GetEnvMode returns the current environment mode name.
func GetEnvMode() string {
	if IsProduction {
		return "production"
	}
	return "development"
}

// LogStartup logs application boot information.
func LogStartup(appName, version, port string) {
	log.Printf("🚀 %s v%s starting...", appName, version)
	log.Printf("   Mode: %s", GetEnvMode())
	log.Printf("   Port: %s", port)
	if IsProduction {
		log.Printf("   ⚠️  Production mode: Sensitive data will be masked in logs")
	}
}
