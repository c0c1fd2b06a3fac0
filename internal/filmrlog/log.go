// Copyright (C) 2020 Markus L. Noga
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

// Package filmrlog is the singleton structured logger. Writes to stdout,
// and optionally also to a file, same dual-writer shape as nightlight's
// internal logger, backed by log/slog so every call site carries fields.
package filmrlog

import (
	"io"
	"log/slog"
	"os"
)

var logFileHandle *os.File
var logger = slog.New(slog.NewTextHandler(os.Stdout, nil))

// AlsoToFile duplicates all future log output to the named file, in
// addition to stdout.
func AlsoToFile(fileName string) error {
	if logFileHandle != nil {
		if err := logFileHandle.Close(); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(fileName, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
	if err != nil {
		return err
	}
	logFileHandle = f
	logger = slog.New(slog.NewTextHandler(io.MultiWriter(os.Stdout, f), nil))
	return nil
}

// Sync flushes the file log, if any.
func Sync() error {
	if logFileHandle != nil {
		return logFileHandle.Sync()
	}
	return nil
}

func Info(msg string, args ...any)  { logger.Info(msg, args...) }
func Warn(msg string, args ...any)  { logger.Warn(msg, args...) }
func Error(msg string, args ...any) { logger.Error(msg, args...) }
func Debug(msg string, args ...any) { logger.Debug(msg, args...) }

// Fatalf logs an error message then exits the process with status 1,
// matching the teacher's LogFatalf behavior.
func Fatalf(msg string, args ...any) {
	logger.Error(msg, args...)
	os.Exit(1)
}
