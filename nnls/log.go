// Copyright ©2025 curioloop. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package nnls

import (
	"fmt"
	"io"
	"os"
)

// LogLevel controls the frequency and type of logger output.
type LogLevel int

const (
	// LogNoop no output is generated (level < 0)
	LogNoop LogLevel = -1
	// LogLast print only one line when a solve terminates
	LogLast LogLevel = 0
	// LogTrace print every active-set change
	LogTrace LogLevel = 1
)

// Logger traces the active-set iteration of a solver.
// The writer must be thread-safe when solvers log from multiple goroutines.
type Logger struct {
	Level LogLevel
	Msg   io.Writer // Writer to output log messages.
}

func (l *Logger) enable(level LogLevel) bool {
	return l != nil && l.Level >= level
}

func (l *Logger) log(format string, a ...any) {
	w := l.Msg
	if w == nil {
		w = os.Stdout
	}
	_, _ = fmt.Fprintf(w, format, a...)
}
