// Package statsview serves runtime statistics of the emulator process, like
// heap usage, goroutines and GC pauses, as web page charts.
package statsview

import (
	"github.com/go-echarts/statsview"
	"github.com/go-echarts/statsview/viewer"
	"github.com/retroenv/retrogolib/log"
)

// Address is the listen address of the statistics server.
const Address = "localhost:18066"

const url = "/debug/statsview"

// Launch starts the statistics server in a new goroutine and returns a function
// that stops it.
func Launch(logger *log.Logger) func() {
	viewer.SetConfiguration(viewer.WithAddr(Address))
	mgr := statsview.New()

	go mgr.Start()

	logger.Info("Stats server available", log.String("url", "http://"+Address+url))
	return mgr.Stop
}
