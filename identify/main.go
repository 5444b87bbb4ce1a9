// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package main

import (
	"flag"
	"os"
	"strings"

	"github.com/bbnote/stlinkcore"
	"github.com/bbnote/stlinkcore/mcu"
	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

var logger *logrus.Logger

func initLogger() {
	formatter := &prefixed.TextFormatter{
		DisableColors:   false,
		TimestampFormat: "15:04:05",
		FullTimestamp:   true,
		ForceFormatting: true,
	}

	logger = logrus.New()
	logger.SetFormatter(formatter)
	logger.SetOutput(os.Stdout)
}

func main() {
	initLogger()
	stlink.SetLogger(logger)

	flagLogLevel := flag.Int("LogLevel", int(logrus.InfoLevel), "Logging verbosity [0 - 7]")
	flagFamily := flag.String("Family", "STM32F1", "MCU family catalog to identify against")
	flagSerial := flag.String("Serial", "", "ST-Link serial number, required if more than one is attached")
	flagSpeed := flag.Uint("Speed", 4000000, "SWD clock to negotiate, in Hz")
	flagExpect := flag.String("Expect", "", "Comma-separated list of expected part names")

	flag.Parse()
	logger.SetLevel(logrus.Level(*flagLogLevel))

	family, ok := mcu.Families[*flagFamily]
	if !ok {
		logger.Fatalf("unknown family %q", *flagFamily)
	}

	var expected []string
	if *flagExpect != "" {
		expected = strings.Split(*flagExpect, ",")
	}

	transport, err := stlink.OpenUSBTransport(*flagSerial)
	if err != nil {
		logger.Fatal(err)
	}
	defer transport.Close()

	session, err := stlink.NewProbeSession(transport, stlink.WithSWDFrequency(uint32(*flagSpeed)))
	if err != nil {
		logger.Fatal(err)
	}

	logger.Infof("connected to %s", session.Version().String())

	idcode, err := session.GetIDCode()
	if err != nil {
		logger.Fatal(err)
	}
	logger.Infof("got id code: %08x", idcode)

	detected, err := mcu.Identify(session, family, expected)
	if err != nil {
		logger.Fatal(err)
	}

	logger.Infof("identified %s (flash: %d KB)", detected.Name(), detected.FlashSize()/1024)

	regions, err := detected.MemoryRegions()
	if err != nil {
		logger.Warn(err)
		return
	}
	for _, r := range regions {
		logger.Infof("  %-8s 0x%08x  %6d bytes", r.Name, r.Address, r.Size)
	}
}
