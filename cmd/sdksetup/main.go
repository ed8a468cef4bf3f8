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

package main

import (
	"context"
	"os"
	"path/filepath"

	"android/sdksetup/setup"
	"android/sdksetup/ui/logger"
	"android/sdksetup/ui/tracer"
)

// sdksetup is run by the surrounding build pipeline from the project root
// and takes no arguments: it copies the AppCompat, MediaRouter and Google
// Play Services libraries out of the installed Android SDK, converts them
// into library projects, links them into the host project and registers the
// Play Services version metadata in the manifest.
//
// ANDROID_HOME must point at the SDK. SDKSETUP_VERBOSE=true echoes the full
// command log to stderr.
func main() {
	stdio := setup.StdioImpl{}

	log := logger.New(stdio.Stderr())
	defer log.Cleanup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	trace := tracer.New(log)
	defer trace.Close()

	setup.SetupSignals(log, cancel, func() {
		trace.Close()
		log.Cleanup()
	})

	setupCtx := setup.Context{ContextImpl: &setup.ContextImpl{
		Context:        ctx,
		Logger:         log,
		StdioInterface: stdio,
		Thread:         tracer.MainThread,
		Tracer:         trace,
	}}

	config := setup.NewConfig(setupCtx)
	log.SetVerbose(config.Verbose())

	logsDir := config.LogsDir()
	os.MkdirAll(logsDir, 0777)
	log.SetOutput(filepath.Join(logsDir, "sdksetup.log"))
	trace.SetOutput(filepath.Join(logsDir, "sdksetup.trace"))

	setup.Setup(setupCtx, config, setup.SetupAll)
}
