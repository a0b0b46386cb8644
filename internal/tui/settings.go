package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/sadopc/wristtrack/internal/log"
	"github.com/sadopc/wristtrack/internal/store"
)

type settingsModel struct {
	store  *store.Store
	log    *log.Logger
	width  int
	height int

	settings   []store.Setting
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	weekStart  *string
	gridLabels *string
}

func newSettingsModel(s *store.Store, logger *log.Logger) settingsModel {
	ws, gl := "", ""
	return settingsModel{
		store:      s,
		log:        logger.WithComponent("settings"),
		weekStart:  &ws,
		gridLabels: &gl,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

type settingsDataMsg struct {
	settings []store.Setting
}

func (s settingsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		settings, err := s.store.GetAllSettings()
		if err != nil {
			s.log.Warn("read settings", "error", err)
		}
		return settingsDataMsg{settings: settings}
	}
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	switch msg := msg.(type) {
	case settingsDataMsg:
		s.settings = msg.settings
		return s, nil

	case tea.KeyMsg:
		if key.Matches(msg, keys.Enter) {
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	*s.weekStart = s.store.SettingOr(store.SettingWeekStart, "sunday")
	*s.gridLabels = s.store.SettingOr(store.SettingGridLabels, labelsCheck)

	s.form = huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().Title("Week starts on").
				Options(
					huh.NewOption("Sunday", "sunday"),
					huh.NewOption("Monday", "monday"),
				).Value(s.weekStart),
			huh.NewSelect[string]().Title("Calendar cells show").
				Options(
					huh.NewOption("A check mark", labelsCheck),
					huh.NewOption("The short item label", labelsShort),
				).Value(s.gridLabels),
		).Title("Calendar"),
	).WithShowHelp(true).WithShowErrors(true)

	s.formActive = true
	return s, s.form.Init()
}

func (s settingsModel) updateForm(msg tea.Msg) (settingsModel, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		if msg.String() == "esc" {
			s.formActive = false
			s.form = nil
			return s, nil
		}
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted {
		s.formActive = false
		return s, s.saveSettings()
	}

	return s, cmd
}

func (s settingsModel) saveSettings() tea.Cmd {
	for _, kv := range []store.Setting{
		{Key: store.SettingWeekStart, Value: *s.weekStart},
		{Key: store.SettingGridLabels, Value: *s.gridLabels},
	} {
		if err := s.store.SetSetting(kv.Key, kv.Value); err != nil {
			s.log.Error("save setting", "key", kv.Key, "error", err)
			return func() tea.Msg {
				return statusMsg{text: fmt.Sprintf("Settings error: %v", err), isError: true}
			}
		}
	}
	s.log.Info("settings saved", "week_start", *s.weekStart, "grid_labels", *s.gridLabels)
	return tea.Batch(
		s.refresh(),
		func() tea.Msg { return settingsSavedMsg{} },
	)
}

func (s settingsModel) view() string {
	w := s.width - 4

	if s.formActive && s.form != nil {
		title := titleStyle.Render("Settings")
		formView := s.form.View()
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", formView),
		)
	}

	title := titleStyle.Render("Settings")
	hint := mutedStyle.Render("Press enter to edit settings")

	var rows []string
	rows = append(rows, title)
	rows = append(rows, "")

	for _, setting := range s.settings {
		label := lipgloss.NewStyle().Width(24).Render(settingLabel(setting.Key))
		value := highlightStyle.Render(formatSettingValue(setting.Key, setting.Value))
		rows = append(rows, fmt.Sprintf("  %s %s", label, value))
	}

	rows = append(rows, "")
	rows = append(rows, hint)

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func settingLabel(k string) string {
	switch k {
	case store.SettingWeekStart:
		return "Week starts on"
	case store.SettingGridLabels:
		return "Calendar cells"
	}
	return k
}

func formatSettingValue(k, v string) string {
	switch k {
	case store.SettingWeekStart:
		switch v {
		case "monday":
			return "Monday"
		case "sunday":
			return "Sunday"
		}
	case store.SettingGridLabels:
		switch v {
		case labelsCheck:
			return "check mark"
		case labelsShort:
			return "short label"
		}
	}
	return v
}
