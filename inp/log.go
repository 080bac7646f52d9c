// Copyright 2015 Dorival Pedroso and Raul Durand. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package inp

import (
	"log"
	"os"
	"path/filepath"

	"github.com/cpmech/gosl/chk"
	"github.com/cpmech/gosl/io"
)

// logFile holds the log file handle; nil means messages go to stderr
var logFile *os.File

// InitLogFile redirects the standard logger to <dirout>/<fnkey>.log
func InitLogFile(dirout, fnkey string) (err error) {
	if err = os.MkdirAll(dirout, 0777); err != nil {
		return chk.Err("cannot create output directory %q:\n%v", dirout, err)
	}
	FlushLog()
	logFile, err = os.Create(filepath.Join(dirout, fnkey+".log"))
	if err != nil {
		return chk.Err("cannot create log file:\n%v", err)
	}
	log.SetOutput(logFile)
	return
}

// FlushLog saves log (flushes to disk) and closes the log file
func FlushLog() {
	if logFile != nil {
		logFile.Sync()
		logFile.Close()
		logFile = nil
		log.SetOutput(os.Stderr)
	}
}

// LogErr logs error and returns stop flag
func LogErr(err error, msg string) (stop bool) {
	if err != nil {
		fullmsg := "ERROR: " + msg + " : " + err.Error()
		log.Println(fullmsg)
		if io.Verbose {
			io.Pfred("%s\n", fullmsg)
		}
		return true
	}
	return false
}

// LogErrCond logs error condition and returns stop flag
func LogErrCond(condition bool, msg string, prm ...interface{}) (stop bool) {
	if condition {
		fullmsg := "ERROR: " + io.Sf(msg, prm...)
		log.Println(fullmsg)
		if io.Verbose {
			io.Pfred("%s\n", fullmsg)
		}
		return true
	}
	return false
}

// Logf writes an informative message to the log
func Logf(msg string, prm ...interface{}) {
	log.Printf(msg, prm...)
}
