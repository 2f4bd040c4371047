/*
Package errors provides semantic error types for the Analogue library.

The package defines the failure modes of the registry core with specific
types that can be checked using the standard errors.Is() function or the
provided helper functions.

Common Errors:

	var (
	    ErrDuplicateRegistration = errors.New("entity type already registered")
	    ErrMissingMapping        = errors.New("no value map for type")
	    ErrUnknownEvent          = errors.New("unknown lifecycle event")
	    ErrUnresolvableType      = errors.New("type cannot be resolved")
	    ErrUnknownConnection     = errors.New("connection not configured")
	    ErrMissingKey            = errors.New("entity has no primary key value")
	)

Usage:

	// Check error type
	if err := manager.Register(user, userMap); err != nil {
	    if errors.IsDuplicateRegistration(err) {
	        // The type was registered earlier, explicitly or implicitly.
	        return fmt.Errorf("user mapping configured twice: %w", err)
	    }
	    return err
	}

	// Create typed errors
	err := errors.NewDuplicateRegistrationError("shop.Customer")
	err := errors.NewMissingMappingError("shop.Money", "shop.MoneyMap")
	err := errors.NewUnknownEventError("bogus")

Every error is raised synchronously at the point of detection and propagated
unchanged to the caller; the registry core performs no retries and no partial
recovery. The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
