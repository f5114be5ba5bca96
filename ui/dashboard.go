// Package ui renders engine results in the terminal. It is strictly a
// consumer: everything it shows comes from the engine's Result and the
// stored history, never from engine internals.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pulseview/syshealth/alerter"
	"github.com/pulseview/syshealth/engine"
	"github.com/pulseview/syshealth/logger"
	"github.com/pulseview/syshealth/models"
	"github.com/pulseview/syshealth/utils"
)

// Dashboard is the live terminal view of the latest cycle result.
type Dashboard struct {
	engine   *engine.Engine
	results  chan *models.Result
	latest   *models.Result
	width    int
	height   int
	exported string
	err      error
}

// NewDashboard creates a dashboard subscribed to the engine's results.
func NewDashboard(eng *engine.Engine) *Dashboard {
	ch := make(chan *models.Result, 4)
	eng.Subscribe(ch)
	return &Dashboard{
		engine:  eng,
		results: ch,
		latest:  eng.Latest(),
		width:   100,
		height:  40,
	}
}

type resultMsg *models.Result
type refreshDoneMsg struct{ err error }

type exportDoneMsg struct {
	path string
	err  error
}

func (d *Dashboard) waitForResult() tea.Cmd {
	return func() tea.Msg {
		return resultMsg(<-d.results)
	}
}

// refreshCmd runs a manual cycle; it goes through the same serialized
// cycle path as the periodic timer.
func (d *Dashboard) refreshCmd() tea.Cmd {
	return func() tea.Msg {
		_, err := d.engine.RunCycle()
		return refreshDoneMsg{err: err}
	}
}

// exportCmd dumps the retained history to a timestamped CSV file in
// the working directory.
func (d *Dashboard) exportCmd() tea.Cmd {
	return func() tea.Msg {
		path := fmt.Sprintf("syshealth-%s.csv", time.Now().Format("20060102-150405"))
		err := logger.Get().ExportCSV(path, d.engine.History().GetAll())
		return exportDoneMsg{path: path, err: err}
	}
}

func (d *Dashboard) Init() tea.Cmd {
	return d.waitForResult()
}

func (d *Dashboard) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		d.width, d.height = msg.Width, msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			d.engine.Unsubscribe(d.results)
			return d, tea.Quit
		case "r":
			return d, d.refreshCmd()
		case "e":
			return d, d.exportCmd()
		}
	case resultMsg:
		d.latest = msg
		return d, d.waitForResult()
	case refreshDoneMsg:
		d.err = msg.err
	case exportDoneMsg:
		d.err = msg.err
		if msg.err == nil {
			d.exported = msg.path
		}
	}
	return d, nil
}

// Styles
var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("45"))
	subtleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	cardStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("60")).
			Padding(0, 1).
			MarginRight(1)

	healthyStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("42")).Bold(true)
	cautionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("33")).Bold(true)
	warningStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("220")).Bold(true)
	criticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	unknownStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)

func bandStyle(b models.HealthBand) lipgloss.Style {
	switch b {
	case models.BandHealthy:
		return healthyStyle
	case models.BandCaution:
		return cautionStyle
	case models.BandWarning:
		return warningStyle
	case models.BandCritical:
		return criticalStyle
	}
	return unknownStyle
}

func trendArrow(t models.TrendVerdict) string {
	switch t {
	case models.TrendIncreasing:
		return "↑"
	case models.TrendDecreasing:
		return "↓"
	case models.TrendStable:
		return "→"
	}
	return "·"
}

const gaugeWidth = 24

var sparkRunes = []rune("▁▂▃▄▅▆▇█")

// sparkline renders a percent series as block characters, newest on
// the right.
func sparkline(values []float64, width int) string {
	if len(values) == 0 {
		return ""
	}
	if len(values) > width {
		values = values[len(values)-width:]
	}
	out := make([]rune, len(values))
	for i, v := range values {
		idx := int(utils.Clamp(v, 0, 100) / 100 * float64(len(sparkRunes)-1))
		out[i] = sparkRunes[idx]
	}
	return string(out)
}

func gaugeBar(percent float64, width int) string {
	percent = utils.Clamp(percent, 0, 100)
	filled := int(percent / 100 * float64(width))
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled) +
		fmt.Sprintf(" %5.1f%%", percent)
}

func (d *Dashboard) View() string {
	r := d.latest
	if r == nil {
		return subtleStyle.Render("Waiting for first sample...")
	}
	s := &r.Snapshot

	header := titleStyle.Render("syshealth") + "  " +
		subtleStyle.Render(s.Timestamp.Format("Mon Jan 2 15:04:05 2006"))
	if s.Host != nil {
		header += "  " + subtleStyle.Render(fmt.Sprintf("%s (%s/%s) up %s",
			s.Host.Hostname, s.Host.Platform, s.Host.Arch,
			utils.FormatUptime(s.Host.Uptime(s.Timestamp))))
	}

	cards := []string{
		d.cpuCard(r),
		d.memoryCard(r),
		d.diskCard(r),
		d.networkCard(r),
	}
	if batt := d.batteryCard(r); batt != "" {
		cards = append(cards, batt)
	}

	sections := []string{
		header,
		lipgloss.JoinHorizontal(lipgloss.Top, cards[:2]...),
		lipgloss.JoinHorizontal(lipgloss.Top, cards[2:]...),
	}
	if procs := d.processCard(s); procs != "" {
		sections = append(sections, procs)
	}
	if recs := d.issuesCard(r); recs != "" {
		sections = append(sections, recs)
	}
	if d.err != nil {
		sections = append(sections, criticalStyle.Render("error: "+d.err.Error()))
	}
	if d.exported != "" {
		sections = append(sections, subtleStyle.Render("history exported to "+d.exported))
	}
	sections = append(sections, subtleStyle.Render("q quit · r refresh · e export csv"))

	return strings.Join(sections, "\n")
}

func card(title, body string) string {
	return cardStyle.Render(titleStyle.Render(title) + "\n" + body)
}

// statusLine renders "BAND ↑" with band coloring.
func statusLine(r *models.Result, kind models.MetricKind) string {
	band := r.Band(kind)
	line := bandStyle(band).Render(band.String())
	if trend, ok := r.Trends[kind]; ok {
		line += " " + trendArrow(trend)
	}
	return line
}

func (d *Dashboard) cpuCard(r *models.Result) string {
	cpu := r.Snapshot.CPU
	if cpu == nil {
		return card("CPU", unknownStyle.Render("unavailable"))
	}

	lines := []string{
		statusLine(r, models.KindCPU),
		gaugeBar(cpu.AveragePercent, gaugeWidth),
		subtleStyle.Render(sparkline(d.engine.History().Series(models.KindCPU, gaugeWidth), gaugeWidth)),
		fmt.Sprintf("load %.2f %.2f %.2f · %s · %d/%d cores",
			cpu.Load1, cpu.Load5, cpu.Load15,
			utils.FormatFrequency(cpu.FrequencyMHz), cpu.Cores, cpu.Threads),
	}
	if cpu.TemperatureC != nil {
		tempBand := r.Band(models.KindTemperature)
		lines = append(lines, fmt.Sprintf("temp %s %s %s",
			utils.FormatTemperature(*cpu.TemperatureC),
			bandStyle(tempBand).Render(tempBand.String()),
			trendArrow(r.Trend(models.KindTemperature))))
	} else {
		lines = append(lines, unknownStyle.Render("temp n/a"))
	}
	return card("CPU", strings.Join(lines, "\n"))
}

func (d *Dashboard) memoryCard(r *models.Result) string {
	mem := r.Snapshot.Memory
	if mem == nil {
		return card("Memory", unknownStyle.Render("unavailable"))
	}

	lines := []string{
		statusLine(r, models.KindMemory),
		gaugeBar(mem.UsedPercent, gaugeWidth),
		subtleStyle.Render(sparkline(d.engine.History().Series(models.KindMemory, gaugeWidth), gaugeWidth)),
		fmt.Sprintf("%s / %s · swap %s",
			utils.FormatBytes(mem.UsedBytes), utils.FormatBytes(mem.TotalBytes),
			utils.FormatPercent(mem.SwapPercent)),
	}
	return card("Memory", strings.Join(lines, "\n"))
}

func (d *Dashboard) diskCard(r *models.Result) string {
	disk := r.Snapshot.Disk
	if disk == nil {
		return card("Disk", unknownStyle.Render("unavailable"))
	}

	lines := []string{
		statusLine(r, models.KindDisk),
		gaugeBar(disk.UsedPercent, gaugeWidth),
		fmt.Sprintf("%s free of %s on %s",
			utils.FormatBytes(disk.FreeBytes), utils.FormatBytes(disk.TotalBytes), disk.Path),
		fmt.Sprintf("R %s · W %s",
			utils.FormatBytesPerSecond(r.Rates.DiskReadBps),
			utils.FormatBytesPerSecond(r.Rates.DiskWriteBps)),
	}
	return card("Disk", strings.Join(lines, "\n"))
}

func (d *Dashboard) networkCard(r *models.Result) string {
	net := r.Snapshot.Network
	if net == nil {
		return card("Network", unknownStyle.Render("unavailable"))
	}

	lines := []string{
		fmt.Sprintf("↓ %s · ↑ %s",
			utils.FormatBytesPerSecond(r.Rates.NetDownloadBps),
			utils.FormatBytesPerSecond(r.Rates.NetUploadBps)),
		fmt.Sprintf("total ↓ %s · ↑ %s",
			utils.FormatBytes(net.BytesRecv), utils.FormatBytes(net.BytesSent)),
		fmt.Sprintf("interfaces up %d/%d", net.ActiveInterfaces, net.TotalInterfaces),
	}
	return card("Network", strings.Join(lines, "\n"))
}

func (d *Dashboard) batteryCard(r *models.Result) string {
	batt := r.Snapshot.Battery
	if batt == nil {
		return ""
	}

	state := "discharging"
	if batt.Charging {
		state = "charging"
	}
	lines := []string{
		statusLine(r, models.KindBattery),
		gaugeBar(batt.Percent, gaugeWidth),
		state,
	}
	if batt.SecondsLeft != models.SecondsLeftUnknown {
		lines = append(lines, utils.FormatSeconds(batt.SecondsLeft)+" remaining")
	}
	return card("Battery", strings.Join(lines, "\n"))
}

func (d *Dashboard) processCard(s *models.Snapshot) string {
	if len(s.TopProcesses) == 0 {
		return ""
	}

	rows := make([]string, 0, len(s.TopProcesses)+1)
	rows = append(rows, subtleStyle.Render(fmt.Sprintf("%-22s %7s %6s %6s %9s", "name", "pid", "cpu%", "mem%", "rss")))
	for _, p := range s.TopProcesses {
		row := fmt.Sprintf("%-22s %7d %6.1f %6.1f %9s",
			utils.TruncateString(p.Name, 22), p.PID, p.CPUPercent, p.MemoryPercent,
			utils.FormatBytes(p.MemoryBytes))
		if p.Heavy {
			row = warningStyle.Render(row)
		}
		rows = append(rows, row)
	}
	return card("Top processes", strings.Join(rows, "\n"))
}

// issuesCard lists every metric at warning or above, with advice.
func (d *Dashboard) issuesCard(r *models.Result) string {
	issues := r.Issues()
	if len(issues) == 0 {
		return healthyStyle.Render(" ✓ all systems healthy")
	}

	var lines []string
	for _, kind := range issues {
		band := r.Band(kind)
		lines = append(lines, bandStyle(band).Render(fmt.Sprintf("[%s] %s", band, kind)))
		for _, rec := range alerter.Recommendations(kind, band) {
			lines = append(lines, "  • "+rec)
		}
	}
	return card("Issues", strings.Join(lines, "\n"))
}
