package tui

import (
	"github.com/jask/fieldops/internal/database/repository"
	"github.com/jask/fieldops/internal/service"
)

// Load results carry the sequence number of the request that produced them so
// stale responses can be dropped.
type rosterMsg struct {
	seq  int
	page service.RosterPage
	err  error
}

type teamsMsg struct {
	teams []string
	err   error
}

type summaryMsg struct {
	seq     int
	summary service.Summary
	err     error
}

type detailMsg struct {
	seq    int
	detail service.WorkerDetail
	err    error
}

type gpsMsg struct {
	seq  int
	logs []repository.GPSLog
	err  error
}

type exportDoneMsg struct {
	receipt service.Receipt
	err     error
}

type bulkDoneMsg struct {
	status  string
	updated int64
	err     error
}

type resetDoneMsg struct {
	err error
}
