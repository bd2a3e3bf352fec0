package config

import "time"

// ===============================
// Rate limits
// ===============================

type RateLimit struct {
	Window  time.Duration
	Max     int
	Message string
}

var (
	ContactRateLimit = RateLimit{
		Window:  15 * time.Minute,
		Max:     5,
		Message: "Too many contact form submissions. Please try again later.",
	}

	ScheduleRateLimit = RateLimit{
		Window:  time.Hour,
		Max:     10,
		Message: "Too many appointment requests. Please try again later.",
	}

	AIRateLimit = RateLimit{
		Window:  time.Minute,
		Max:     AIMaxAnonymous,
		Message: "Too many requests. Please slow down or sign in for higher limits.",
	}
)

const (
	AIMaxAuthenticated = 30
	AIMaxAnonymous     = 10
)

// ===============================
// Auth / CSRF
// ===============================

const (
	SessionCookie = "__session"

	CSRFTokenLength  = 32
	CSRFCookieName   = "csrf_token"
	CSRFHeaderName   = "x-csrf-token"
	CSRFCookieMaxAge = 24 * time.Hour
)

// Paths exempt from the CSRF check.
var CSRFSkipPaths = []string{"/api/health", "/api/csrf-token"}

// ===============================
// Validation
// ===============================

const (
	ContactMessageMaxLength  = 5000
	ScheduleMessageMaxLength = 2000

	SessionLimitDefault     = 20
	CheckInLimitDefault     = 30
	ContactLimitDefault     = 50
	AppointmentLimitDefault = 50
)

// ===============================
// AI
// ===============================

const (
	AIModel       = "claude-sonnet-4-20250514"
	AIMaxTokens   = 1024
	AITemperature = 0.7
	AIMaxHistory  = 10
)

// ===============================
// Server
// ===============================

const DefaultPort = "21000"
