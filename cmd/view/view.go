package main

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/kass/go-province-map/pkg/mapview"
	"github.com/kass/go-province-map/pkg/province"
)

const (
	sidebarWidth = 28
	headerRows   = 1
	footerRows   = 2
	tickInterval = time.Second / 30

	// A press+release that moved at most this many cells counts as a
	// click rather than a drag.
	clickDeadZone = 1
)

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF79C6")).
			Background(lipgloss.Color("#282A36")).
			Padding(0, 1)

	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#6272A4"))
	nameStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F1FA8C"))
)

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

type model struct {
	mv *mapview.MapView

	width  int
	height int

	showSidebar bool
	helpVisible bool
	files       list.Model

	status   string
	selected *province.Province

	// press tracking for the click-vs-drag decision
	pressed    bool
	pressX     int
	pressY     int
	mapW, mapH int
}

func newModel(mv *mapview.MapView, path string) model {
	d := list.NewDefaultDelegate()
	d.ShowDescription = false
	l := list.New(nil, d, 0, 0)
	l.Title = "Maps"
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(true)

	m := model{
		mv:          mv,
		helpVisible: true,
		files:       l,
		status:      "province map ready",
	}
	m.refreshDir()
	if path != "" {
		m.loadPath(path)
	}
	return m
}

func (m model) Init() tea.Cmd { return tick() }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layout()
		return m, nil

	case tickMsg:
		m.mv.Update(time.Time(msg))
		return m, tick()

	case tea.KeyMsg:
		if m.showSidebar && m.files.FilterState() == list.Filtering {
			var cmd tea.Cmd
			m.files, cmd = m.files.Update(msg)
			return m, cmd
		}
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)
	}

	if m.showSidebar {
		var cmd tea.Cmd
		m.files, cmd = m.files.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *model) layout() {
	w := m.width
	if m.showSidebar {
		w -= sidebarWidth + 1
	}
	h := m.height - headerRows - footerRows
	if w < 10 {
		w = 10
	}
	if h < 4 {
		h = 4
	}
	m.mapW, m.mapH = w, h
	m.mv.SetViewport(float64(w*2), float64(h*4))
	if m.showSidebar {
		m.files.SetSize(sidebarWidth-2, h-2)
	}
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case "tab":
		m.showSidebar = !m.showSidebar
		if m.showSidebar {
			m.refreshDir()
		}
		m.layout()
	case "enter":
		if m.showSidebar {
			if it, ok := m.files.SelectedItem().(fileItem); ok {
				m.loadPath(it.path)
			}
		}
	case "+", "=":
		m.mv.Camera().ZoomIn()
	case "-", "_":
		m.mv.Camera().ZoomOut()
	case "0":
		m.layout() // re-solves and recenters on home
		m.status = "home"
	case "h":
		m.helpVisible = !m.helpVisible
	}

	if m.showSidebar {
		var cmd tea.Cmd
		m.files, cmd = m.files.Update(msg)
		return m, cmd
	}
	return m, nil
}

// handleMouse drives the camera state machine and selection. Every
// handled event returns immediately so it is not dispatched further.
func (m model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	mx, my, inMap := m.mapCell(msg.X, msg.Y)
	cam := m.mv.Camera()

	switch msg.Action {
	case tea.MouseActionPress:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			if inMap {
				cam.ZoomIn()
			}
			return m, nil
		case tea.MouseButtonWheelDown:
			if inMap {
				cam.ZoomOut()
			}
			return m, nil
		case tea.MouseButtonLeft:
			if inMap {
				m.pressed = true
				m.pressX, m.pressY = mx, my
				cam.StartPan(float64(mx*2), float64(my*4))
			}
			return m, nil
		}

	case tea.MouseActionMotion:
		if m.pressed {
			cam.MoveTo(float64(mx*2), float64(my*4))
		}
		return m, nil

	case tea.MouseActionRelease:
		if !m.pressed {
			return m, nil
		}
		m.pressed = false
		moved := abs(mx-m.pressX) > clickDeadZone || abs(my-m.pressY) > clickDeadZone

		// Pan-end is applied before any click is evaluated.
		cam.EndPan()

		if !moved && inMap {
			px, py := m.toProjected(mx, my)
			if p := m.mv.Click(px, py, true, time.Now()); p != nil {
				m.selected = p
				m.status = fmt.Sprintf("%s — owner %s, supply %d, units %d",
					p.Name, p.Owner, p.Supply, p.Units)
			} else {
				m.status = "open water"
			}
		}
		return m, nil
	}

	return m, nil
}

// mapCell translates terminal coordinates into map-area cells.
func (m model) mapCell(x, y int) (int, int, bool) {
	originX := 0
	if m.showSidebar {
		originX = sidebarWidth + 1
	}
	cx := x - originX
	cy := y - headerRows
	in := cx >= 0 && cx < m.mapW && cy >= 0 && cy < m.mapH
	return cx, cy, in
}

// toProjected inverts the camera view for a map cell, returning the
// point in projected map space (micro pixels) for hit-testing.
func (m model) toProjected(cx, cy int) (float64, float64) {
	cam := m.mv.Camera()
	sx := float64(cx*2 + 1)
	sy := float64(cy*4 + 2)
	px := (sx-float64(m.mapW*2)/2)/cam.Zoom + cam.X
	py := (sy-float64(m.mapH*4)/2)/cam.Zoom + cam.Y
	return px, py
}

func (m model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}

	header := titleStyle.Render("🗺  province map")
	if m.selected != nil {
		header += "  " + nameStyle.Render(m.selected.Name)
	}

	mapView := m.renderMap()

	var body string
	if m.showSidebar {
		sidebar := lipgloss.NewStyle().Width(sidebarWidth).Render(m.files.View())
		body = lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", mapView)
	} else {
		body = mapView
	}

	status := statusStyle.Render(" " + m.status)
	help := ""
	if m.helpVisible {
		keys := []string{
			"drag pan",
			"wheel/+/- zoom",
			"click select",
			"0 home",
			"Tab maps",
			"h help",
			"q quit",
		}
		help = statusStyle.Render("  " + strings.Join(keys, "  "))
	}
	footer := lipgloss.NewStyle().Width(m.width).Render(status + "\n" + help)

	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

// renderMap draws every province through the camera into the braille
// canvas.
func (m model) renderMap() string {
	c := newCanvas(m.mapW, m.mapH)
	cam := m.mv.Camera()
	cw := float64(m.mapW * 2)
	ch := float64(m.mapH * 4)

	for _, p := range m.mv.Provinces() {
		pts := make([][2]int, 0, len(p.Polygon))
		for _, pt := range p.Polygon {
			sx := (pt.X-cam.X)*cam.Zoom + cw/2
			sy := (pt.Y-cam.Y)*cam.Zoom + ch/2
			pts = append(pts, [2]int{int(sx), int(sy)})
		}
		c.fillPolygon(pts, p.Color.Hex())
	}

	return lipgloss.NewStyle().Width(m.mapW).Height(m.mapH).Render(c.render())
}

// file explorer, limited to map documents
type fileItem struct {
	title string
	path  string
}

func (f fileItem) Title() string       { return f.title }
func (f fileItem) Description() string { return "" }
func (f fileItem) FilterValue() string { return f.title }

func (m *model) refreshDir() {
	cwd, err := os.Getwd()
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	entries, err := os.ReadDir(cwd)
	if err != nil {
		m.status = "read dir error: " + err.Error()
		return
	}
	var items []list.Item
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".geojson" || ext == ".json" {
			items = append(items, fileItem{title: e.Name(), path: filepath.Join(cwd, e.Name())})
		}
	}
	sort.Slice(items, func(i, j int) bool {
		return items[i].(fileItem).title < items[j].(fileItem).title
	})
	m.files.SetItems(items)
}

func (m *model) loadPath(path string) {
	if err := m.mv.LoadFile(path); err != nil {
		m.status = "load error: " + err.Error()
		return
	}
	m.selected = nil
	m.status = fmt.Sprintf("loaded %s: %d provinces",
		filepath.Base(path), m.mv.Index().Count())
}
