package tui

import (
	"github.com/matheuskafuri/ingester/internal/archive"
)

type recordsLoadedMsg struct {
	records []archive.Record
}

type fetchErrMsg struct {
	err error
}

// deleteResultMsg is the outcome of one confirmed delete. The record is
// removed locally only when err is nil.
type deleteResultMsg struct {
	id  int
	err error
}

type openErrMsg struct {
	err error
}
