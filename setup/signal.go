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
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"

	"android/sdksetup/ui/logger"
)

// SetupSignals sets up signal handling to kill our children and allow us to
// cleanly finish writing our log/trace files.
//
// On the first SIGINT|SIGTERM we call the cancel() function, which is
// usually the CancelFunc returned by context.WithCancel, killing the
// external commands running within that Context. That's normally enough,
// and the run aborts through its normal error paths.
//
// If another signal comes in after the first one, we trigger a panic with
// full stacktraces from every goroutine so that it's possible to debug what
// is stuck. Just before the process exits, the cleanup() function is called
// so the log files get flushed.
func SetupSignals(log logger.Logger, cancel, cleanup func()) {
	signals := make(chan os.Signal, 5)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	go handleSignals(signals, log, cancel, cleanup)
}

func handleSignals(signals chan os.Signal, log logger.Logger, cancel, cleanup func()) {
	defer cleanup()

	var force bool

	for {
		s := <-signals
		if force {
			// So that we can better see what was stuck
			debug.SetTraceback("all")
			log.Panicln("Second signal received:", s)
		} else {
			log.Println("Got signal:", s)
			cancel()
			force = true
		}
	}
}
