package sml

import (
	"os"

	"github.com/charmbracelet/log"
)

// Logger is the package-wide diagnostics sink. Vendor-workaround repairs
// and partial-file warnings (including a file cut short by an unknown
// message tag) go through it rather than being silent or panicking.
// Replace it (e.g. from a cmd/ program) to redirect or silence output; the
// default writes to stderr.
var Logger = log.NewWithOptions(os.Stderr, log.Options{
	ReportTimestamp: false,
	Prefix:          "sml",
})
