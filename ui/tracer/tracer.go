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

// Package tracer records Chrome trace-event-format traces of the setup
// steps and the external commands they run. The output can be loaded into
// chrome://tracing or https://ui.perfetto.dev.
//
// Events may be written before the output file is known; they are buffered
// in memory until SetOutput is called.
package tracer

import (
	"bytes"
	"compress/gzip"
	"encoding/json"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"android/sdksetup/ui/logger"
)

type Thread uint64

const (
	MainThread     = Thread(iota)
	MaxInitThreads = Thread(iota)
)

type Tracer interface {
	Begin(name string, thread Thread)
	End(thread Thread)
	Complete(name string, thread Thread, begin, end uint64)

	NewThread(name string) Thread

	SetOutput(filename string)
	Close()
}

type tracerImpl struct {
	lock sync.Mutex
	log  logger.Logger

	buf  bytes.Buffer
	file *os.File
	w    io.WriteCloser

	firstEvent bool
	nextTid    uint64
}

var _ Tracer = &tracerImpl{}

type viewerEvent struct {
	Name  string      `json:"name,omitempty"`
	Phase string      `json:"ph"`
	Scope string      `json:"s,omitempty"`
	Time  uint64      `json:"ts"`
	Dur   uint64      `json:"dur,omitempty"`
	Pid   uint64      `json:"pid"`
	Tid   uint64      `json:"tid"`
	ID    uint64      `json:"id,omitempty"`
	Arg   interface{} `json:"args,omitempty"`
}

type nameArg struct {
	Name string `json:"name"`
}

// New creates a new Tracer, sending events to the buffer until SetOutput is
// called.
func New(log logger.Logger) *tracerImpl {
	ret := &tracerImpl{
		log: log,

		firstEvent: true,
		nextTid:    uint64(MaxInitThreads),
	}
	ret.defineThread(MainThread, "main")
	return ret
}

func (t *tracerImpl) startOutput() {
	t.buf.WriteString("[ ")
}

func (t *tracerImpl) writeEvent(event *viewerEvent) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.writeEventLocked(event)
}

func (t *tracerImpl) writeEventLocked(event *viewerEvent) {
	bytes, err := json.Marshal(event)
	if err != nil {
		t.log.Verbosef("Failed to marshal event: %v", err)
		return
	}

	if t.firstEvent {
		t.startOutput()
		t.firstEvent = false
	} else {
		t.buf.WriteString(",\n")
	}
	t.buf.Write(bytes)

	if t.w != nil {
		t.buf.WriteTo(t.w)
	}
}

func (t *tracerImpl) defineThread(thread Thread, name string) {
	t.writeEvent(&viewerEvent{
		Name:  "thread_name",
		Phase: "M",
		Pid:   0,
		Tid:   uint64(thread),
		Arg: &nameArg{
			Name: name,
		},
	})
}

// NewThread returns a new Thread with an unused tid, writing out the
// metadata event with its name.
func (t *tracerImpl) NewThread(name string) Thread {
	t.lock.Lock()
	ret := Thread(t.nextTid)
	t.nextTid += 1
	t.lock.Unlock()

	t.defineThread(ret, name)
	return ret
}

// SetOutput creates the output file (rotating any existing file at that
// path), writes out any buffered events, and sends all future events to it.
// A filename ending in .gz will be compressed transparently.
func (t *tracerImpl) SetOutput(filename string) {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.closeLocked()

	f, err := logger.CreateFileWithRotation(filename, 5)
	if err != nil {
		t.log.Println("Failed to create trace file:", err)
		return
	}
	t.file = f

	if strings.HasSuffix(filename, ".gz") {
		t.w = gzip.NewWriter(f)
	} else {
		t.w = f
	}

	t.buf.WriteTo(t.w)
}

// Close flushes and closes the output file.
func (t *tracerImpl) Close() {
	t.lock.Lock()
	defer t.lock.Unlock()

	t.closeLocked()
}

func (t *tracerImpl) closeLocked() {
	if t.w == nil {
		return
	}

	if closer, ok := t.w.(*gzip.Writer); ok {
		closer.Close()
	}
	t.file.Close()
	t.w = nil
	t.file = nil
}

// Begin starts a trace event on the specified thread, to be ended with End.
func (t *tracerImpl) Begin(name string, thread Thread) {
	t.writeEvent(&viewerEvent{
		Name:  name,
		Phase: "B",
		Time:  uint64(time.Now().UnixNano()) / 1000,
		Pid:   0,
		Tid:   uint64(thread),
	})
}

// End finishes the most recent Begin on the specified thread.
func (t *tracerImpl) End(thread Thread) {
	t.writeEvent(&viewerEvent{
		Phase: "E",
		Time:  uint64(time.Now().UnixNano()) / 1000,
		Pid:   0,
		Tid:   uint64(thread),
	})
}

// Complete writes a single event for a span whose begin and end times (in
// nanoseconds) are already known.
func (t *tracerImpl) Complete(name string, thread Thread, begin, end uint64) {
	t.writeEvent(&viewerEvent{
		Name:  name,
		Phase: "X",
		Time:  begin / 1000,
		Dur:   (end - begin) / 1000,
		Pid:   0,
		Tid:   uint64(thread),
	})
}
