package app

import "errors"

// InvalidRequestError is special error type returned when any request params are invalid.
type InvalidRequestError string

// Error implements error interface.
func (e InvalidRequestError) Error() string {
	return string(e)
}

// IsInvalidRequest tells that this error is 'invalid request'.
// Returns always true.
func (InvalidRequestError) IsInvalidRequest() bool {
	return true
}

// IsInvalidRequestError checks if given error is caused by invalid request.
func IsInvalidRequestError(err error) bool {
	type invalidReqErr interface {
		IsInvalidRequest() bool
	}

	var e invalidReqErr
	if errors.As(err, &e) {
		return e.IsInvalidRequest()
	}

	return false
}

// NotFoundError is returned when requested entity doesn't exist or already expired.
type NotFoundError string

// Error implements error interface.
func (e NotFoundError) Error() string {
	return string(e)
}

// IsNotFound tells that this error is 'not found'.
// Returns always true.
func (NotFoundError) IsNotFound() bool {
	return true
}

// IsNotFoundError checks if given error is caused by missing entity.
func IsNotFoundError(err error) bool {
	type notFoundErr interface {
		IsNotFound() bool
	}

	var e notFoundErr
	if errors.As(err, &e) {
		return e.IsNotFound()
	}

	return false
}

// ScheduledForLaterError is returned when result is not ready yet, but the work is already scheduled.
type ScheduledForLaterError string

// Error implements error interface.
func (e ScheduledForLaterError) Error() string {
	return string(e)
}

// IsScheduledForLater tells that this error is 'scheduled for later'.
// Returns always true.
func (ScheduledForLaterError) IsScheduledForLater() bool {
	return true
}

// IsScheduledForLaterError checks if given error means that result will be available later.
func IsScheduledForLaterError(err error) bool {
	type scheduledErr interface {
		IsScheduledForLater() bool
	}

	var e scheduledErr
	if errors.As(err, &e) {
		return e.IsScheduledForLater()
	}

	return false
}

// TooManyRequestsError is returned when caller exceeds allowed request rate.
type TooManyRequestsError string

// Error implements error interface.
func (e TooManyRequestsError) Error() string {
	return string(e)
}

// IsTooManyRequests tells that this error is 'too many requests'.
// Returns always true.
func (TooManyRequestsError) IsTooManyRequests() bool {
	return true
}

// IsTooManyRequestsError checks if given error is caused by exceeded rate limit.
func IsTooManyRequestsError(err error) bool {
	type tooManyErr interface {
		IsTooManyRequests() bool
	}

	var e tooManyErr
	if errors.As(err, &e) {
		return e.IsTooManyRequests()
	}

	return false
}
