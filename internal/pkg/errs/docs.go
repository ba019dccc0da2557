// Package errs provides the error types shared by the domain, the use cases and
// the adapters of the delivery portal.
//
// Every type follows the same shape: a sentinel (ErrValueIsRequired, ...), a
// struct carrying the offending parameter, constructors with and without a
// cause, and an Unwrap returning the sentinel so callers classify with errors.Is:
//
//   - ValueIsRequiredError: a mandatory value is missing (empty city, blank street)
//   - ValueIsInvalidError: a value is present but unusable (unknown status)
//   - ValueIsOutOfRangeError: a value falls outside its bounds (list limit)
//   - ObjectNotFoundError: a lookup matched nothing
//   - VersionIsInvalidError: a conditional write lost an optimistic concurrency race
package errs
