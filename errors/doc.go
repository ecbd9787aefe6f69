/*
Package errors provides semantic error types for the storekit library.

The package defines the error taxonomy of the operation pipeline with
specific types that can be checked using the standard errors.Is() function
or the provided helper functions.

Common Errors:

	var (
	    ErrConfiguration    = errors.New("invalid operation configuration")
	    ErrBackend          = errors.New("backend operation failed")
	    ErrResolverContract = errors.New("resolver contract violation")
	    ErrNoTypeMapping    = errors.New("no type mapping registered for type")
	)

ConfigurationError is fatal and surfaced at build or prepare time: a builder
was given incomplete input, or no resolver could be found for a type.
BackendError wraps a storage engine failure and is surfaced to the caller
without retries. ResolverContractError indicates a programming error inside
a resolver, such as claiming a successful mutation while reporting an empty
affected set.

Usage:

	res, err := prepared.ExecuteBlocking(ctx)
	if err != nil {
	    if errors.IsBackend(err) {
	        // storage engine rejected the operation
	    }
	    return err
	}

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
