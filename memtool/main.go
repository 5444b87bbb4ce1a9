// Copyright 2020 Sebastian Lehmann. All rights reserved.
// Use of this source code is governed by a GNU-style
// license that can be found in the LICENSE file.

package main

import (
	"encoding/hex"
	"flag"
	"os"
	"strconv"

	"github.com/bbnote/stlinkcore"
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
	flagSerial := flag.String("Serial", "", "ST-Link serial number, required if more than one is attached")
	flagSpeed := flag.Uint("Speed", 4000000, "SWD clock to negotiate, in Hz")
	flagAddr := flag.String("Addr", "0x0", "target address, hex or decimal")
	flagWidth := flag.Int("Width", 32, "access width in bits: 8, 16 or 32")
	flagCount := flag.Int("Count", 4, "bytes to read when --Write is not given")
	flagWrite := flag.String("Write", "", "hex-encoded bytes to write instead of reading")

	flag.Parse()
	logger.SetLevel(logrus.Level(*flagLogLevel))

	addr, err := strconv.ParseUint(*flagAddr, 0, 32)
	if err != nil {
		logger.Fatalf("invalid address %q: %v", *flagAddr, err)
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

	if *flagWrite != "" {
		data, err := hex.DecodeString(*flagWrite)
		if err != nil {
			logger.Fatalf("invalid --Write payload: %v", err)
		}
		if err := writeMem(session, uint32(addr), *flagWidth, data); err != nil {
			logger.Fatal(err)
		}
		logger.Infof("wrote %d bytes to 0x%08x", len(data), addr)
		return
	}

	data, err := readMem(session, uint32(addr), *flagWidth, *flagCount)
	if err != nil {
		logger.Fatal(err)
	}
	logger.Infof("0x%08x: %s", addr, hex.EncodeToString(data))
}

func readMem(s *stlink.ProbeSession, addr uint32, width, count int) ([]byte, error) {
	switch width {
	case 8:
		return s.ReadMem8(addr, count)
	case 16:
		return s.ReadMem16(addr, count)
	case 32:
		return s.ReadMem32(addr, count)
	default:
		logger.Fatalf("unsupported width %d, must be 8, 16 or 32", width)
		return nil, nil
	}
}

func writeMem(s *stlink.ProbeSession, addr uint32, width int, data []byte) error {
	switch width {
	case 8:
		return s.WriteMem8(addr, data)
	case 16:
		return s.WriteMem16(addr, data)
	case 32:
		return s.WriteMem32(addr, data)
	default:
		logger.Fatalf("unsupported width %d, must be 8, 16 or 32", width)
		return nil
	}
}
