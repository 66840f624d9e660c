// Package monitoring serves the progress and the latest results of a running
// power analysis over HTTP.
package monitoring

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"sync"
	"time"

	// Enable profiling
	_ "net/http/pprof"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/pkg/browser"
	"github.com/rs/xid"
	"github.com/sarchlab/drampower/analysis"
	"github.com/sarchlab/drampower/hooking"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"
)

type pendingReporter interface {
	Name() string
	Pending() int
}

// Monitor is a hook that keeps the results of the windows evaluated by an
// engine and exposes them through a web server.
type Monitor struct {
	portNumber int

	lock       sync.Mutex
	engineName string
	pending    int
	windows    int
	warnings   int
	latest     analysis.Snapshot
	totals     analysis.Snapshot

	progressBarsLock sync.Mutex
	progressBars     []*ProgressBar
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// Func keeps the latest window and the totals of all windows.
func (m *Monitor) Func(ctx hooking.HookCtx) {
	m.lock.Lock()
	defer m.lock.Unlock()

	switch ctx.Pos {
	case analysis.HookPosWarning:
		m.warnings++
	case analysis.HookPosWindowClosed:
		s := ctx.Item.(analysis.Snapshot)
		m.latest = s
		m.totals = m.totals.Add(s)
		m.windows++

		if e, ok := ctx.Domain.(pendingReporter); ok {
			m.engineName = e.Name()
			m.pending = e.Pending()
		}
	}
}

// CreateProgressBar creates a new progress bar.
func (m *Monitor) CreateProgressBar(name string, total uint64) *ProgressBar {
	bar := &ProgressBar{
		ID:        xid.New().String(),
		Name:      name,
		StartTime: time.Now(),
		Total:     total,
	}

	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	m.progressBars = append(m.progressBars, bar)

	return bar
}

// CompleteProgressBar removes a bar to be shown on the webpage.
func (m *Monitor) CompleteProgressBar(pb *ProgressBar) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	newBars := make([]*ProgressBar, 0, len(m.progressBars))
	for _, b := range m.progressBars {
		if b != pb {
			newBars = append(newBars, b)
		}
	}

	m.progressBars = newBars
}

// Router returns the routes served by the monitor.
func (m *Monitor) Router() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/status", m.status)
	r.HandleFunc("/api/window", m.latestWindow)
	r.HandleFunc("/api/totals", m.runningTotals)
	r.HandleFunc("/api/rank/{rank}", m.rankTotals)
	r.HandleFunc("/api/progress", m.listProgressBars)
	r.HandleFunc("/api/resource", m.listResources)
	r.HandleFunc("/api/profile", m.collectProfile)
	r.PathPrefix("/debug/pprof/").Handler(http.DefaultServeMux)

	return r
}

// StartServer starts the monitor as a web server and returns its URL.
func (m *Monitor) StartServer() string {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	url := fmt.Sprintf("http://localhost:%d",
		listener.Addr().(*net.TCPAddr).Port)
	fmt.Fprintf(os.Stderr, "Monitoring power analysis with %s\n", url)

	r := m.Router()

	go func() {
		err := http.Serve(listener, r)
		dieOnErr(err)
	}()

	return url
}

// OpenInBrowser opens a page of the monitor in the default browser.
func (m *Monitor) OpenInBrowser(url string) error {
	return browser.OpenURL(url + "/api/status")
}

type statusRsp struct {
	Engine   string `json:"engine"`
	Windows  int    `json:"windows"`
	Warnings int    `json:"warnings"`
	Pending  int    `json:"pending"`
	Start    int64  `json:"start"`
	End      int64  `json:"end"`
}

func (m *Monitor) status(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	rsp := statusRsp{
		Engine:   m.engineName,
		Windows:  m.windows,
		Warnings: m.warnings,
		Pending:  m.pending,
		Start:    m.totals.Window.Start,
		End:      m.totals.Window.End,
	}
	m.lock.Unlock()

	writeJSON(w, rsp)
}

func (m *Monitor) latestWindow(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	s := m.latest
	m.lock.Unlock()

	serialize(w, &s)
}

func (m *Monitor) runningTotals(w http.ResponseWriter, _ *http.Request) {
	m.lock.Lock()
	s := m.totals
	m.lock.Unlock()

	serialize(w, &s)
}

func (m *Monitor) rankTotals(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(mux.Vars(r)["rank"])
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		fmt.Fprintf(w, "Error: %s", err)

		return
	}

	m.lock.Lock()
	var rs *analysis.RankStats
	if index >= 0 && index < len(m.totals.Ranks) {
		copied := m.totals.Ranks[index]
		rs = &copied
	}
	m.lock.Unlock()

	if rs == nil {
		w.WriteHeader(http.StatusNotFound)
		_, err := w.Write([]byte("Rank not found"))
		dieOnErr(err)

		return
	}

	serialize(w, rs)
}

func serialize(w http.ResponseWriter, root any) {
	serializer := goseth.NewSerializer()
	serializer.SetRoot(root)
	serializer.SetMaxDepth(4)

	err := serializer.Serialize(w)
	dieOnErr(err)
}

func (m *Monitor) listProgressBars(w http.ResponseWriter, _ *http.Request) {
	m.progressBarsLock.Lock()
	defer m.progressBarsLock.Unlock()

	writeJSON(w, m.progressBars)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	dieOnErr(err)

	time.Sleep(time.Second)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
