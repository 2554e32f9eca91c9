package domain

// Conversation defaults
const (
	DefaultMaxToolRounds = 5  // tool-dispatch rounds allowed per inbound message
	DefaultHistoryLimit  = 40 // messages retained per conversation session
)

// Business validation constants
const (
	MinCapacity          = 1
	MaxCapacity          = 120
	MaxIssueLength       = 2000
	MaxPassengerNameLen  = 120
	MaxBroadcastBodyLen  = 1024
	MaxStopsPerRoute     = 20
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// ValidSeverities lists the accepted complaint severities.
// Used when decoding tool arguments.
var ValidSeverities = []ComplaintSeverity{
	SeverityLow,
	SeverityMedium,
	SeverityHigh,
}

// ValidBusClasses lists the accepted coach classes.
var ValidBusClasses = []BusClass{
	ClassEconomy,
	ClassBusiness,
	ClassVIP,
}

// ValidSeverity reports whether s is an accepted complaint severity.
func ValidSeverity(s ComplaintSeverity) bool {
	for _, v := range ValidSeverities {
		if v == s {
			return true
		}
	}
	return false
}

// ValidBusClass reports whether c is an accepted coach class.
func ValidBusClass(c BusClass) bool {
	for _, v := range ValidBusClasses {
		if v == c {
			return true
		}
	}
	return false
}
