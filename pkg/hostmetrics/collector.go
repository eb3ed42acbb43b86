package hostmetrics

import (
	"bufio"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
)

// clock ticks per second assumed for /proc stat counters.
const ticksPerSecond = 100

const sectorSize = 512

// Collector gathers host OS metrics from the proc filesystem. CPU
// percentages are computed from the delta between successive Snapshot
// calls, so the collector keeps the previous sample.
type Collector struct {
	procRoot string
	diskPath string

	mu      sync.Mutex
	prevCPU map[string]cpuTimes
	sampled bool
}

// NewCollector returns a collector reading from /proc and reporting disk
// usage for diskPath.
func NewCollector(diskPath string) *Collector {
	return newCollectorAt("/proc", diskPath)
}

func newCollectorAt(procRoot, diskPath string) *Collector {
	return &Collector{
		procRoot: procRoot,
		diskPath: diskPath,
		prevCPU:  map[string]cpuTimes{},
	}
}

// Snapshot is one host metrics collection.
type Snapshot struct {
	CPU       CPUInfo             `json:"cpu"`
	Memory    MemoryInfo          `json:"memory"`
	Swap      SwapInfo            `json:"swap"`
	Disk      DiskInfo            `json:"disk"`
	DiskIO    DiskIOInfo          `json:"disk_io"`
	Network   []InterfaceCounters `json:"network"`
	Processes []ProcessInfo       `json:"top_processes"`
	System    SystemInfo          `json:"system"`
}

// CPUInfo reports CPU utilization and load.
type CPUInfo struct {
	Percent float64   `json:"percent"`
	PerCore []float64 `json:"per_core"`
	Count   int       `json:"count"`
	Load1   float64   `json:"load_1"`
	Load5   float64   `json:"load_5"`
	Load15  float64   `json:"load_15"`
}

// MemoryInfo reports virtual memory usage.
type MemoryInfo struct {
	Total          uint64  `json:"total"`
	Used           uint64  `json:"used"`
	Available      uint64  `json:"available"`
	Percent        float64 `json:"percent"`
	TotalHuman     string  `json:"total_human"`
	UsedHuman      string  `json:"used_human"`
	AvailableHuman string  `json:"available_human"`
}

// SwapInfo reports swap usage.
type SwapInfo struct {
	Total   uint64  `json:"total"`
	Used    uint64  `json:"used"`
	Free    uint64  `json:"free"`
	Percent float64 `json:"percent"`
}

// DiskInfo reports filesystem usage for the configured path.
type DiskInfo struct {
	Path       string  `json:"path"`
	Total      uint64  `json:"total"`
	Used       uint64  `json:"used"`
	Available  uint64  `json:"available"`
	Percent    float64 `json:"percent"`
	TotalHuman string  `json:"total_human"`
	UsedHuman  string  `json:"used_human"`
}

// DiskIOInfo reports cumulative block IO counters across devices.
type DiskIOInfo struct {
	ReadBytes  uint64 `json:"read_bytes"`
	WriteBytes uint64 `json:"write_bytes"`
	ReadOps    uint64 `json:"read_ops"`
	WriteOps   uint64 `json:"write_ops"`
}

// InterfaceCounters reports cumulative traffic for one interface.
type InterfaceCounters struct {
	Name        string `json:"name"`
	BytesRecv   uint64 `json:"bytes_recv"`
	BytesSent   uint64 `json:"bytes_sent"`
	PacketsRecv uint64 `json:"packets_recv"`
	PacketsSent uint64 `json:"packets_sent"`
}

// ProcessInfo reports one process, ranked by consumed CPU time.
type ProcessInfo struct {
	PID        int     `json:"pid"`
	Name       string  `json:"name"`
	State      string  `json:"state"`
	CPUSeconds float64 `json:"cpu_seconds"`
	MemoryRSS  uint64  `json:"memory_rss"`
}

// SystemInfo reports identity and uptime.
type SystemInfo struct {
	Hostname      string `json:"hostname"`
	Uptime        string `json:"uptime"`
	UptimeSeconds int64  `json:"uptime_seconds"`
	BootTime      string `json:"boot_time"`
}

// topProcessCount limits the process list in a snapshot.
const topProcessCount = 10

// Snapshot collects all host metrics. Individual subsystems that fail to
// read report zero values rather than failing the whole snapshot.
func (c *Collector) Snapshot() (*Snapshot, error) {
	snap := &Snapshot{}

	uptime, err := c.uptime()
	if err != nil {
		return nil, err
	}

	hostname, _ := os.Hostname()
	bootTime := time.Now().Add(-time.Duration(uptime) * time.Second)
	snap.System = SystemInfo{
		Hostname:      hostname,
		Uptime:        formatUptime(uptime),
		UptimeSeconds: uptime,
		BootTime:      bootTime.Format("2006-01-02 15:04:05"),
	}

	snap.CPU = c.cpuInfo()
	snap.Memory, snap.Swap = c.memoryInfo()
	snap.Disk = c.diskInfo()
	snap.DiskIO = c.diskIO()
	snap.Network = c.networkCounters()
	snap.Processes = c.topProcesses()

	return snap, nil
}

func (c *Collector) uptime() (int64, error) {
	data, err := os.ReadFile(filepath.Join(c.procRoot, "uptime"))
	if err != nil {
		return 0, err
	}
	fields := strings.Fields(string(data))
	if len(fields) < 1 {
		return 0, nil
	}
	uptimeFloat, err := strconv.ParseFloat(fields[0], 64)
	if err != nil {
		return 0, err
	}
	return int64(uptimeFloat), nil
}

type cpuTimes struct {
	busy  uint64
	total uint64
}

// cpuInfo reads /proc/stat and /proc/loadavg. Utilization percentages
// are deltas against the previous snapshot; the first call reports zero.
func (c *Collector) cpuInfo() CPUInfo {
	info := CPUInfo{}

	if data, err := os.ReadFile(filepath.Join(c.procRoot, "loadavg")); err == nil {
		fields := strings.Fields(string(data))
		if len(fields) >= 3 {
			info.Load1, _ = strconv.ParseFloat(fields[0], 64)
			info.Load5, _ = strconv.ParseFloat(fields[1], 64)
			info.Load15, _ = strconv.ParseFloat(fields[2], 64)
		}
	}

	current := map[string]cpuTimes{}
	var coreNames []string

	file, err := os.Open(filepath.Join(c.procRoot, "stat"))
	if err != nil {
		return info
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 5 || !strings.HasPrefix(fields[0], "cpu") {
			continue
		}

		var total, idle uint64
		for i, field := range fields[1:] {
			v, err := strconv.ParseUint(field, 10, 64)
			if err != nil {
				continue
			}
			total += v
			// idle + iowait
			if i == 3 || i == 4 {
				idle += v
			}
		}
		current[fields[0]] = cpuTimes{busy: total - idle, total: total}
		if fields[0] != "cpu" {
			coreNames = append(coreNames, fields[0])
		}
	}
	sort.Strings(coreNames)
	info.Count = len(coreNames)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.sampled {
		info.Percent = cpuPercent(c.prevCPU["cpu"], current["cpu"])
		for _, name := range coreNames {
			info.PerCore = append(info.PerCore, cpuPercent(c.prevCPU[name], current[name]))
		}
	} else {
		info.PerCore = make([]float64, len(coreNames))
	}
	c.prevCPU = current
	c.sampled = true

	return info
}

func cpuPercent(prev, cur cpuTimes) float64 {
	totalDelta := cur.total - prev.total
	if cur.total <= prev.total {
		return 0
	}
	busyDelta := cur.busy - prev.busy
	percent := float64(busyDelta) / float64(totalDelta) * 100
	if percent < 0 {
		return 0
	}
	if percent > 100 {
		return 100
	}
	return round1(percent)
}

func (c *Collector) memoryInfo() (MemoryInfo, SwapInfo) {
	values := map[string]uint64{}

	file, err := os.Open(filepath.Join(c.procRoot, "meminfo"))
	if err != nil {
		return MemoryInfo{}, SwapInfo{}
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 2 {
			continue
		}
		value, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			continue
		}
		// meminfo reports kB
		values[strings.TrimSuffix(fields[0], ":")] = value * 1024
	}

	total := values["MemTotal"]
	available := values["MemAvailable"]
	if available == 0 {
		available = values["MemFree"] + values["Buffers"] + values["Cached"]
	}
	used := total - available

	memory := MemoryInfo{
		Total:          total,
		Used:           used,
		Available:      available,
		TotalHuman:     humanize.IBytes(total),
		UsedHuman:      humanize.IBytes(used),
		AvailableHuman: humanize.IBytes(available),
	}
	if total > 0 {
		memory.Percent = round1(float64(used) / float64(total) * 100)
	}

	swapTotal := values["SwapTotal"]
	swapFree := values["SwapFree"]
	swap := SwapInfo{
		Total: swapTotal,
		Used:  swapTotal - swapFree,
		Free:  swapFree,
	}
	if swapTotal > 0 {
		swap.Percent = round1(float64(swap.Used) / float64(swapTotal) * 100)
	}

	return memory, swap
}

func (c *Collector) diskInfo() DiskInfo {
	var stat syscall.Statfs_t
	if err := syscall.Statfs(c.diskPath, &stat); err != nil {
		return DiskInfo{Path: c.diskPath}
	}

	blockSize := uint64(stat.Bsize) // #nosec G115 - syscall values are system dependent
	total := stat.Blocks * blockSize
	available := stat.Bavail * blockSize
	used := total - available

	info := DiskInfo{
		Path:       c.diskPath,
		Total:      total,
		Used:       used,
		Available:  available,
		TotalHuman: humanize.IBytes(total),
		UsedHuman:  humanize.IBytes(used),
	}
	if total > 0 {
		info.Percent = round1(float64(used) / float64(total) * 100)
	}
	return info
}

// diskIO sums counters over whole block devices, skipping partitions and
// virtual devices.
func (c *Collector) diskIO() DiskIOInfo {
	file, err := os.Open(filepath.Join(c.procRoot, "diskstats"))
	if err != nil {
		return DiskIOInfo{}
	}
	defer func() { _ = file.Close() }()

	var io DiskIOInfo
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) < 10 {
			continue
		}
		device := fields[2]
		if !wholeDevice(device) {
			continue
		}

		readOps, _ := strconv.ParseUint(fields[3], 10, 64)
		readSectors, _ := strconv.ParseUint(fields[5], 10, 64)
		writeOps, _ := strconv.ParseUint(fields[7], 10, 64)
		writeSectors, _ := strconv.ParseUint(fields[9], 10, 64)

		io.ReadOps += readOps
		io.WriteOps += writeOps
		io.ReadBytes += readSectors * sectorSize
		io.WriteBytes += writeSectors * sectorSize
	}
	return io
}

// wholeDevice reports whether a diskstats device name is a whole disk
// worth counting (sdX, vdX, nvmeXnY without a partition suffix).
func wholeDevice(name string) bool {
	switch {
	case strings.HasPrefix(name, "loop"), strings.HasPrefix(name, "ram"), strings.HasPrefix(name, "dm-"):
		return false
	case strings.HasPrefix(name, "nvme"):
		return !strings.Contains(name, "p")
	case name == "":
		return false
	default:
		last := name[len(name)-1]
		return last < '0' || last > '9'
	}
}

func (c *Collector) networkCounters() []InterfaceCounters {
	file, err := os.Open(filepath.Join(c.procRoot, "net/dev"))
	if err != nil {
		return nil
	}
	defer func() { _ = file.Close() }()

	var counters []InterfaceCounters
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := scanner.Text()
		colon := strings.Index(line, ":")
		if colon < 0 {
			continue
		}

		name := strings.TrimSpace(line[:colon])
		fields := strings.Fields(line[colon+1:])
		if len(fields) < 10 || name == "lo" {
			continue
		}

		bytesRecv, _ := strconv.ParseUint(fields[0], 10, 64)
		packetsRecv, _ := strconv.ParseUint(fields[1], 10, 64)
		bytesSent, _ := strconv.ParseUint(fields[8], 10, 64)
		packetsSent, _ := strconv.ParseUint(fields[9], 10, 64)

		counters = append(counters, InterfaceCounters{
			Name:        name,
			BytesRecv:   bytesRecv,
			BytesSent:   bytesSent,
			PacketsRecv: packetsRecv,
			PacketsSent: packetsSent,
		})
	}
	sort.Slice(counters, func(i, j int) bool { return counters[i].Name < counters[j].Name })
	return counters
}

// topProcesses ranks processes by consumed CPU time from /proc/[pid]/stat.
func (c *Collector) topProcesses() []ProcessInfo {
	entries, err := os.ReadDir(c.procRoot)
	if err != nil {
		return nil
	}

	var processes []ProcessInfo
	for _, entry := range entries {
		pid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}

		process, ok := c.readProcess(pid)
		if !ok {
			continue
		}
		processes = append(processes, process)
	}

	sort.Slice(processes, func(i, j int) bool {
		if processes[i].CPUSeconds != processes[j].CPUSeconds {
			return processes[i].CPUSeconds > processes[j].CPUSeconds
		}
		return processes[i].PID < processes[j].PID
	})
	if len(processes) > topProcessCount {
		processes = processes[:topProcessCount]
	}
	return processes
}

func (c *Collector) readProcess(pid int) (ProcessInfo, bool) {
	data, err := os.ReadFile(filepath.Join(c.procRoot, strconv.Itoa(pid), "stat"))
	if err != nil {
		return ProcessInfo{}, false
	}

	// The comm field is parenthesized and may contain spaces; split
	// around the closing paren.
	text := string(data)
	start := strings.Index(text, "(")
	end := strings.LastIndex(text, ")")
	if start < 0 || end < start {
		return ProcessInfo{}, false
	}

	name := text[start+1 : end]
	fields := strings.Fields(text[end+1:])
	// state utime stime rss live at fixed offsets after comm
	if len(fields) < 22 {
		return ProcessInfo{}, false
	}

	utime, _ := strconv.ParseUint(fields[11], 10, 64)
	stime, _ := strconv.ParseUint(fields[12], 10, 64)
	rssPages, _ := strconv.ParseUint(fields[21], 10, 64)

	return ProcessInfo{
		PID:        pid,
		Name:       name,
		State:      fields[0],
		CPUSeconds: float64(utime+stime) / ticksPerSecond,
		MemoryRSS:  rssPages * uint64(os.Getpagesize()),
	}, true
}

// formatUptime converts seconds to human-readable form.
func formatUptime(seconds int64) string {
	duration := time.Duration(seconds) * time.Second
	days := int(duration.Hours()) / 24
	hours := int(duration.Hours()) % 24
	minutes := int(duration.Minutes()) % 60

	switch {
	case days > 0:
		return strconv.Itoa(days) + "d " + strconv.Itoa(hours) + "h " + strconv.Itoa(minutes) + "m"
	case hours > 0:
		return strconv.Itoa(hours) + "h " + strconv.Itoa(minutes) + "m"
	default:
		return strconv.Itoa(minutes) + "m"
	}
}

func round1(v float64) float64 {
	return float64(int(v*10+0.5)) / 10
}
