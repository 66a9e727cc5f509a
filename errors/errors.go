/*
 * Tern - a static type checker for the Tern scripting language
 *
 * Copyright Tern Language Contributors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *   http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package errors

import (
	"fmt"
	"runtime/debug"

	"golang.org/x/xerrors"
)

// InternalError is an implementation error, e.g. an unreachable code path
// (UnreachableError). A program should never throw an InternalError in an
// ideal world.
//
// InternalError s must always be thrown and not be caught (recovered),
// i.e. be propagated up the call stack.
type InternalError interface {
	error
	IsInternalError()
}

// UserError is an error in the checked program, e.g. an inheritance
// hierarchy whose method resolution order cannot be linearized.
type UserError interface {
	error
	IsUserError()
}

// UnreachableError

// UnreachableError is an internal error which should have never occurred
// due to a programming error in the checker.
//
// NOTE: this error is not used for errors because of bugs in a user-provided
// program. For program errors, see the error types in the types package.
type UnreachableError struct {
	Stack []byte
}

var _ InternalError = UnreachableError{}

func (e UnreachableError) Error() string {
	return fmt.Sprintf("unreachable\n%s", e.Stack)
}

func (e UnreachableError) IsInternalError() {}

func NewUnreachableError() *UnreachableError {
	return &UnreachableError{Stack: debug.Stack()}
}

// SecondaryError is an interface for errors that provide a secondary error message
type SecondaryError interface {
	SecondaryError() string
}

// ErrorNotes is an interface for errors that provide notes
type ErrorNotes interface {
	ErrorNotes() []ErrorNote
}

type ErrorNote interface {
	Message() string
}

// ParentError is an error that contains one or more child errors.
type ParentError interface {
	error
	ChildErrors() []error
}

// UnexpectedError is the default implementation of InternalError interface.
// It's a generic error that wraps an implementation error.
type UnexpectedError struct {
	Err error
}

var _ InternalError = UnexpectedError{}

func NewUnexpectedError(message string, arg ...any) UnexpectedError {
	return UnexpectedError{
		Err: fmt.Errorf(message, arg...),
	}
}

func (e UnexpectedError) Unwrap() error {
	return e.Err
}

func (e UnexpectedError) Error() string {
	return e.Err.Error()
}

func (e UnexpectedError) IsInternalError() {}

// DefaultUserError is the default implementation of UserError interface.
// It's a generic error that wraps a user error.
type DefaultUserError struct {
	Err error
}

func NewDefaultUserError(message string, arg ...any) DefaultUserError {
	return DefaultUserError{
		Err: fmt.Errorf(message, arg...),
	}
}

func (e DefaultUserError) Unwrap() error {
	return e.Err
}

func (e DefaultUserError) Error() string {
	return e.Err.Error()
}

func (e DefaultUserError) IsUserError() {}

// IsInternalError checks whether a given error was caused by an InternalError.
// An error is an internal error, if it has at least one InternalError
// in the error chain.
func IsInternalError(err error) bool {
	switch err := err.(type) {
	case InternalError:
		return true
	case xerrors.Wrapper:
		return IsInternalError(err.Unwrap())
	default:
		return false
	}
}

// IsUserError checks whether a given error was caused by a UserError.
// An error is a user error, if it has at least one UserError
// in the error chain.
func IsUserError(err error) bool {
	switch err := err.(type) {
	case UserError:
		return true
	case xerrors.Wrapper:
		return IsUserError(err.Unwrap())
	default:
		return false
	}
}
