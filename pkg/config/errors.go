// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package config

import (
	"strings"

	"gitlab.com/tozd/go/errors"
)

// ConfigErrorKind classifies a configuration problem.
type ConfigErrorKind int

const (
	MissingOrInvalidPath ConfigErrorKind = iota + 1
	MissingSearchText
	MissingReplacementText
	IdenticalSearchAndReplacement
	InvalidSearchPattern
	InvalidIgnorePattern
	InvalidConfigFile
)

var (
	ErrMissingOrInvalidPath          = errors.Base("missing or invalid search path")
	ErrMissingSearchText             = errors.Base("missing search text")
	ErrMissingReplacementText        = errors.Base("missing replacement text")
	ErrIdenticalSearchAndReplacement = errors.Base("identical search and replacement text")
	ErrInvalidSearchPattern          = errors.Base("invalid search pattern")
	ErrInvalidIgnorePattern          = errors.Base("invalid ignore pattern")
	ErrInvalidConfigFile             = errors.Base("invalid config file")
)

// String returns a string representation of ConfigErrorKind
func (k ConfigErrorKind) String() string {
	switch k {
	case MissingOrInvalidPath:
		return "MissingOrInvalidPath"
	case MissingSearchText:
		return "MissingSearchText"
	case MissingReplacementText:
		return "MissingReplacementText"
	case IdenticalSearchAndReplacement:
		return "IdenticalSearchAndReplacement"
	case InvalidSearchPattern:
		return "InvalidSearchPattern"
	case InvalidIgnorePattern:
		return "InvalidIgnorePattern"
	case InvalidConfigFile:
		return "InvalidConfigFile"
	default:
		return "Unknown"
	}
}

func (k ConfigErrorKind) sentinel() error {
	switch k {
	case MissingOrInvalidPath:
		return ErrMissingOrInvalidPath
	case MissingSearchText:
		return ErrMissingSearchText
	case MissingReplacementText:
		return ErrMissingReplacementText
	case IdenticalSearchAndReplacement:
		return ErrIdenticalSearchAndReplacement
	case InvalidSearchPattern:
		return ErrInvalidSearchPattern
	case InvalidIgnorePattern:
		return ErrInvalidIgnorePattern
	case InvalidConfigFile:
		return ErrInvalidConfigFile
	default:
		return nil
	}
}

// ❌ ConfigError is one problem found while building a RunConfig.
// It matches the sentinel of its kind with errors.Is.
type ConfigError struct {
	Kind    ConfigErrorKind
	Message string // user facing, printed under the usage text
	Err     error  // underlying cause, if any
}

func newConfigError(kind ConfigErrorKind, message string, cause error) *ConfigError {
	return &ConfigError{Kind: kind, Message: message, Err: cause}
}

func (e *ConfigError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *ConfigError) Unwrap() error {
	return e.Err
}

func (e *ConfigError) Is(target error) bool {
	s := e.Kind.sentinel()
	return s != nil && target == s
}

// 📋 ValidationError collects every ConfigError of one validation pass
type ValidationError struct {
	Problems []*ConfigError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, p.Message)
	}
	return strings.Join(msgs, "; ")
}

// Unwrap exposes each problem to errors.Is and errors.As.
func (e *ValidationError) Unwrap() []error {
	errs := make([]error, 0, len(e.Problems))
	for _, p := range e.Problems {
		errs = append(errs, p)
	}
	return errs
}

// Kinds lists the kinds of the collected problems, in validation order.
func (e *ValidationError) Kinds() []ConfigErrorKind {
	kinds := make([]ConfigErrorKind, 0, len(e.Problems))
	for _, p := range e.Problems {
		kinds = append(kinds, p.Kind)
	}
	return kinds
}
