package scheduling

import "fmt"

// Error is a scheduling failure with a stable machine-readable code.
// The HTTP layer maps codes onto statuses; clients key their messaging
// off the code, never the message.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Date validation failures.
var (
	ErrInvalidDateFormat   = &Error{Code: "invalidDateFormat", Message: "date must be in DD/MM/YYYY format"}
	ErrInvalidCalendarDate = &Error{Code: "invalidCalendarDate", Message: "no such calendar date"}
	ErrDateInPast          = &Error{Code: "dateInPast", Message: "date is in the past"}
	ErrDateTooFarInFuture  = &Error{Code: "dateTooFarInFuture", Message: "date is beyond the booking window"}
)

// Lookup and business-rule failures.
var (
	ErrUnsupportedCity      = &Error{Code: "unsupportedCity", Message: "city is not supported"}
	ErrServiceNotFound      = &Error{Code: "serviceNotFound", Message: "service not found"}
	ErrProviderNotFound     = &Error{Code: "providerNotFound", Message: "provider not found"}
	ErrCustomerNotFound     = &Error{Code: "customerNotFound", Message: "customer not found"}
	ErrRequestNotFound      = &Error{Code: "requestNotFound", Message: "request not found"}
	ErrLocationNotServed    = &Error{Code: "locationNotServed", Message: "the provider does not serve this city"}
	ErrServiceClosedForDate = &Error{Code: "serviceClosedForDate", Message: "the service is not available on the requested date"}
	ErrInsufficientWorkers  = &Error{Code: "insufficientWorkers", Message: "not enough free workers on the requested date"}
)
