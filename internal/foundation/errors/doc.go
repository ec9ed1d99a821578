// Package errors provides the classified error primitives used across policygen.
//
// Every failure that crosses a package boundary is a ClassifiedError carrying a
// category (what kind of failure), a severity (how bad) and a retry strategy.
// The HTTP and CLI adapters translate the classification into status codes,
// exit codes and log levels so callers never switch on message strings.
//
// The rendering core never returns errors; classification exists for the
// layers around it (request validation, configuration, storage, messaging).
//
// Example usage:
//
//	err := errors.ValidationError("invalid policy settings").
//		WithContext("field", "companyEmail").
//		Build()
package errors
