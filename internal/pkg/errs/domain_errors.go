package errs

// Error classes shared by every layer. Domain sentinels are marked with one of
// these so handlers and retry logic can branch on the class instead of the
// concrete error.
var (
	ErrValidation         = New("validation failed")
	ErrStateConflict      = New("state conflict")
	ErrBusinessRule       = New("business rule violated")
	ErrNotFound           = New("not found")
	ErrExternalDependency = New("external dependency failed")
)

func Validation(msg string) error {
	return Mark(New(msg), ErrValidation)
}

func StateConflict(msg string) error {
	return Mark(New(msg), ErrStateConflict)
}

func BusinessRule(msg string) error {
	return Mark(New(msg), ErrBusinessRule)
}

func NotFound(msg string) error {
	return Mark(New(msg), ErrNotFound)
}

func ExternalDependency(msg string) error {
	return Mark(New(msg), ErrExternalDependency)
}

// Class returns the marker the error was tagged with, or nil.
func Class(err error) error {
	for _, c := range []error{ErrValidation, ErrNotFound, ErrStateConflict, ErrBusinessRule, ErrExternalDependency} {
		if Is(err, c) {
			return c
		}
	}
	return nil
}
