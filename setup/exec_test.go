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
	"errors"
	"strings"
	"testing"

	"android/sdksetup/ui/logger"

	"github.com/google/blueprint/pathtools"
)

func TestCommandUsesConfigEnvironment(t *testing.T) {
	ctx := testContext()
	defer logger.Recover(func(err error) {
		t.Fatal(err)
	})

	env := &Environment{"SETUP_TEST_VAR=hello"}
	config := testConfig("/opt/sdk", "/work/app", pathtools.OsFs, env)

	cmd := Command(ctx, config, "print var", "/bin/sh", "-c", "echo $SETUP_TEST_VAR")
	out := cmd.OutputOrFatal()

	if got := strings.TrimSpace(string(out)); got != "hello" {
		t.Errorf("Expected %q, got %q", "hello", got)
	}
}

func TestCommandFailureIsExecError(t *testing.T) {
	ctx := testContext()
	config := testConfig("/opt/sdk", "/work/app", pathtools.OsFs, &Environment{})

	var fatal error
	func() {
		defer logger.Recover(func(err error) { fatal = err })
		Command(ctx, config, "failing command", "/bin/sh", "-c", "exit 3").RunOrFatal()
	}()

	if fatal == nil {
		t.Fatal("Expected a non-zero exit to be fatal")
	}
	var serr *Error
	if !errors.As(fatal, &serr) || serr.Kind != ExecError {
		t.Errorf("Expected an ExecError, got %v", fatal)
	}
	if !strings.Contains(fatal.Error(), "failing command") {
		t.Errorf("Error should name the command: %v", fatal)
	}
}

func TestCommandSpawnFailureIsExecError(t *testing.T) {
	ctx := testContext()
	config := testConfig("/opt/sdk", "/work/app", pathtools.OsFs, &Environment{})

	var fatal error
	func() {
		defer logger.Recover(func(err error) { fatal = err })
		Command(ctx, config, "missing binary", "/does/not/exist").RunOrFatal()
	}()

	if fatal == nil {
		t.Fatal("Expected a spawn failure to be fatal")
	}
	var serr *Error
	if !errors.As(fatal, &serr) || serr.Kind != ExecError {
		t.Errorf("Expected an ExecError, got %v", fatal)
	}
}
