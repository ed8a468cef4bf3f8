// Copyright 2017 Google Inc. All rights reserved.
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

package setup

import (
	"fmt"
	"os/exec"
)

// Kind classifies a fatal setup failure. Every failure aborts the run; the
// kind only affects how the top level reports it.
type Kind int

const (
	// ConfigError is a missing or invalid environment configuration.
	ConfigError Kind = iota
	// FileError is a file read or write failure.
	FileError
	// ExecError is an external command spawn failure or non-zero exit.
	ExecError
)

// Error wraps a fatal failure with its classification and the name of the
// failing step or command.
type Error struct {
	Kind Kind
	Name string
	Err  error
}

func (e *Error) Error() string {
	switch e.Kind {
	case ExecError:
		if ee, ok := e.Err.(*exec.ExitError); ok {
			return fmt.Sprintf("%s failed with: %v", e.Name, ee.ProcessState.String())
		}
		return fmt.Sprintf("Failed to run %s: %v", e.Name, e.Err)
	case FileError:
		return fmt.Sprintf("Failed to update %s: %v", e.Name, e.Err)
	default:
		return fmt.Sprintf("%s: %v", e.Name, e.Err)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

func configError(name string, err error) *Error {
	return &Error{Kind: ConfigError, Name: name, Err: err}
}

func fileError(name string, err error) *Error {
	return &Error{Kind: FileError, Name: name, Err: err}
}

func execError(name string, err error) *Error {
	return &Error{Kind: ExecError, Name: name, Err: err}
}
