package viz

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/go-logr/logr"
	"github.com/san-kum/physim/internal/config"
	"github.com/san-kum/physim/internal/scene"
)

var (
	cyan   = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	white  = lipgloss.NewStyle().Foreground(lipgloss.Color("255"))
	dim    = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	dimmer = lipgloss.NewStyle().Foreground(lipgloss.Color("238"))
)

// Entry is one selectable scene/preset pair. An empty preset means the
// scene's default parameters.
type Entry struct {
	Scene, Preset string
}

func (e Entry) String() string {
	if e.Preset == "" {
		return e.Scene
	}
	return e.Scene + "/" + e.Preset
}

// Config returns the configuration the entry stands for.
func (e Entry) Config() *config.Config {
	if e.Preset != "" {
		if cfg := config.GetPreset(e.Scene, e.Preset); cfg != nil {
			return cfg
		}
	}
	cfg := config.DefaultConfig()
	cfg.Scene = e.Scene
	return cfg
}

// Entries lists every registered scene followed by its presets.
func Entries(r *scene.Registry) []Entry {
	var out []Entry
	for _, name := range r.List() {
		out = append(out, Entry{Scene: name})
		for _, p := range config.ListPresets(name) {
			out = append(out, Entry{Scene: name, Preset: p})
		}
	}
	return out
}

// picker is a menu of scenes that hands over to a live Model on selection.
type picker struct {
	registry *scene.Registry
	entries  []Entry
	cursor   int
	log      logr.Logger
	live     *Model
	err      error
}

func NewInteractiveApp(log logr.Logger) tea.Model {
	return picker{registry: scene.Default, entries: Entries(scene.Default), log: log}
}

func (p picker) Init() tea.Cmd { return nil }

func (p picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if p.live != nil {
		if k, ok := msg.(tea.KeyMsg); ok && k.String() == "esc" {
			p.live = nil
			return p, nil
		}
		next, cmd := p.live.Update(msg)
		live := next.(Model)
		p.live = &live
		return p, cmd
	}

	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, nil
	}
	switch k.String() {
	case "q", "ctrl+c", "esc":
		return p, tea.Quit
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.entries)-1 {
			p.cursor++
		}
	case "enter", " ":
		if len(p.entries) == 0 {
			return p, nil
		}
		e := p.entries[p.cursor]
		m, err := NewModel(e.Config(), e.String(), p.log)
		if err != nil {
			p.err = err
			return p, nil
		}
		p.err = nil
		p.live = &m
		return p, m.Init()
	}
	return p, nil
}

func (p picker) View() string {
	if p.live != nil {
		return p.live.View() + "\n" + dimmer.Render("esc: back to scenes")
	}
	var s strings.Builder
	s.WriteString(cyan.Bold(true).Render("PHYSIM") + dim.Render("  choose a scene") + "\n\n")
	for i, e := range p.entries {
		label := "  " + e.String()
		if e.Preset != "" {
			label = "    " + e.Preset
		}
		desc := ""
		if e.Preset == "" {
			desc = dimmer.Render("  " + p.registry.Describe(e.Scene))
		}
		if i == p.cursor {
			s.WriteString(white.Bold(true).Render("> "+strings.TrimLeft(label, " ")) + desc + "\n")
		} else {
			s.WriteString(dim.Render(label) + desc + "\n")
		}
	}
	if p.err != nil {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Render(fmt.Sprintf("error: %v", p.err)) + "\n")
	}
	s.WriteString("\n" + dimmer.Render("↑↓ select  enter run  q quit"))
	return s.String()
}

// RunInteractive starts the scene picker.
func RunInteractive(log logr.Logger) error {
	_, err := tea.NewProgram(NewInteractiveApp(log), tea.WithAltScreen()).Run()
	return err
}
