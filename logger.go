// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package stlink

import (
	"github.com/sirupsen/logrus"
)

var (
	logger *logrus.Logger = nil
)

const MaxLogLevel = logrus.DebugLevel

func init() {
	logger = logrus.New()
}

// SetLogger replaces the package-level logger, letting a host application
// route core diagnostics through its own logrus instance/formatter.
func SetLogger(loggerInstance *logrus.Logger) {
	logger = loggerInstance
}
