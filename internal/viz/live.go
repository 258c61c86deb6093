package viz

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/motionsim/internal/motion"
)

const (
	graphWidth  = 70
	graphHeight = 12
	historyCap  = 2000
)

var (
	statsStyle = Panel.Width(36)
	labelStyle = MetricLabel.Width(12)
	graphStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("49")).Padding(1, 0)
)

type TickMsg time.Time

// LiveModel steps a motion run tick by tick and renders the command vs
// object trajectories as they evolve. It reproduces the same update order
// as a batch run: the controller always sees the state from the previous
// tick.
type LiveModel struct {
	profile    motion.Profile
	controller motion.Controller
	plant      motion.Plant
	dt         float64
	count      int
	index      int
	records    []motion.Record
	running    bool
	err        error
	ticksPer   int
	title      string
}

// NewLiveModel prepares a live run. The controller and any stateful profile
// are reset here; the plant is expected to start at rest.
func NewLiveModel(clock motion.Clock, p motion.Profile, ctrl motion.Controller, plant motion.Plant, title string) LiveModel {
	ctrl.Reset()
	resetProfile(p)
	return LiveModel{
		profile:    p,
		controller: ctrl,
		plant:      plant,
		dt:         clock.Dt(),
		count:      clock.Count(),
		records:    make([]motion.Record, 0, historyCap),
		running:    true,
		ticksPer:   4,
		title:      title,
	}
}

func (m LiveModel) Init() tea.Cmd {
	return tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
}

func (m LiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case " ":
			m.running = !m.running
		case "r":
			m.reset()
		case "+", "=":
			if m.ticksPer < 64 {
				m.ticksPer *= 2
			}
		case "-", "_":
			if m.ticksPer > 1 {
				m.ticksPer /= 2
			}
		}
	case TickMsg:
		if m.running && m.err == nil {
			for range m.ticksPer {
				if m.index >= m.count {
					break
				}
				m.step()
			}
		}
		return m, tea.Tick(time.Second/30, func(t time.Time) tea.Msg { return TickMsg(t) })
	}
	return m, nil
}

// step advances one control tick.
func (m *LiveModel) step() {
	elapsed := float64(m.index) * m.dt
	cmdVel, cmdPos := m.profile.Command(elapsed)
	force, err := m.controller.CalculateForce(elapsed, cmdVel, cmdPos, m.plant.Vel(), m.plant.Pos(), m.dt)
	if err != nil {
		m.err = err
		return
	}
	acc, vel, pos := m.plant.ApplyForce(force, m.dt)
	m.records = append(m.records, motion.Record{
		Time:   elapsed,
		CmdVel: cmdVel,
		CmdPos: cmdPos,
		Force:  force,
		ObjAcc: acc,
		ObjVel: vel,
		ObjPos: pos,
	})
	if len(m.records) > historyCap {
		m.records = m.records[1:]
	}
	m.index++
}

func (m *LiveModel) reset() {
	m.index = 0
	m.err = nil
	m.records = m.records[:0]
	m.controller.Reset()
	resetProfile(m.profile)
	m.plant.Reset()
	m.running = true
}

// resetProfile rewinds profiles that carry state, such as the impulse
// profile's tick counter. Pure profiles have nothing to reset.
func resetProfile(p motion.Profile) {
	if r, ok := p.(interface{ Reset() }); ok {
		r.Reset()
	}
}

func (m LiveModel) View() string {
	var s strings.Builder
	s.WriteString(Title.Render(strings.ToUpper(m.title)) + "\n\n")

	status := "RUNNING"
	switch {
	case m.err != nil:
		status = "ERROR: " + m.err.Error()
	case m.index >= m.count:
		status = StatusDone.Render("DONE")
	case !m.running:
		status = StatusPaused.Render("PAUSED")
	default:
		status = StatusRunning.Render(status)
	}
	s.WriteString(status + "\n\n")

	if len(m.records) > 1 {
		chart := asciigraph.PlotMany(
			[][]float64{Extract(m.records, CmdPos), Extract(m.records, ObjPos)},
			asciigraph.Height(graphHeight),
			asciigraph.Width(graphWidth),
			asciigraph.Caption("position: cmd vs object"),
			asciigraph.SeriesColors(asciigraph.Gray, asciigraph.Green),
		)
		s.WriteString(graphStyle.Render(chart) + "\n")
	}

	var stats strings.Builder
	var last motion.Record
	if len(m.records) > 0 {
		last = m.records[len(m.records)-1]
	}
	stats.WriteString(labelStyle.Render("Time") + MetricValue.Render(fmt.Sprintf("%.3fs", last.Time)) + "\n")
	stats.WriteString(labelStyle.Render("Cmd pos") + MetricValue.Render(fmt.Sprintf("%.4f", last.CmdPos)) + "\n")
	stats.WriteString(labelStyle.Render("Obj pos") + MetricValue.Render(fmt.Sprintf("%.4f", last.ObjPos)) + "\n")
	stats.WriteString(labelStyle.Render("Cmd vel") + MetricValue.Render(fmt.Sprintf("%.4f", last.CmdVel)) + "\n")
	stats.WriteString(labelStyle.Render("Obj vel") + MetricValue.Render(fmt.Sprintf("%.4f", last.ObjVel)) + "\n")
	stats.WriteString(labelStyle.Render("Force") + MetricValue.Render(fmt.Sprintf("%.4f", last.Force)) + "\n")
	stats.WriteString(labelStyle.Render("Speed") + MetricValue.Render(fmt.Sprintf("%d ticks/frame", m.ticksPer)) + "\n\n")

	progress := 0.0
	if m.count > 0 {
		progress = float64(m.index) / float64(m.count)
	}
	stats.WriteString(ProgressBar(progress, 24) + "\n")
	stats.WriteString(Separator(30) + "\n")
	stats.WriteString(KeyHint.Render("SP:Pause R:Reset Q:Quit +/-:Speed"))

	main := lipgloss.JoinHorizontal(lipgloss.Top, s.String(), statsStyle.Render(stats.String()))
	return main + "\n"
}
