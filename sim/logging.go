package sim

import (
	"os"

	kitlog "github.com/go-kit/kit/log"
)

// defaultLogger is the package-level logfmt logger every Simulator
// derives its scoped logger from.
var defaultLogger = kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stderr))

// scopedLogger returns a logger tagged with the owning vehicle's name.
func scopedLogger(vehicleName string) kitlog.Logger {
	return kitlog.With(defaultLogger, "subsys", "sim", "vehicle", vehicleName)
}
