package core

import (
	"door-backend/lib/restyutil"
)

var restyInstrumentOutput restyutil.InstrumentOutput

// SetInstrumentOutput makes every client constructed afterwards dump
// its http exchanges to out. intended for debugging scrapes against
// the live portal, the markup tends to drift between semesters.
func SetInstrumentOutput(out restyutil.InstrumentOutput) {
	restyInstrumentOutput = out
}
