package tui

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/sadopc/lifequest/internal/engine"
	"github.com/sadopc/lifequest/internal/game"
)

type settingsModel struct {
	engine *engine.Engine
	width  int
	height int

	snap       snapshot
	formActive bool
	form       *huh.Form

	// Form values as pointers (survive value copies)
	darkMode      *bool
	notifications *bool
	lossRate      *game.HPLossRate
	avatarURL     *string
}

func newSettingsModel(e *engine.Engine) settingsModel {
	dark, notify := true, false
	rate := game.DefaultHPLossRate
	avatar := ""
	return settingsModel{
		engine:        e,
		darkMode:      &dark,
		notifications: &notify,
		lossRate:      &rate,
		avatarURL:     &avatar,
	}
}

func (s *settingsModel) setSize(w, h int) {
	s.width = w
	s.height = h
}

func (s settingsModel) update(msg tea.Msg) (settingsModel, tea.Cmd) {
	if s.formActive && s.form != nil {
		return s.updateForm(msg)
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, keys.Enter), key.Matches(msg, keys.New):
			return s.showForm()
		}
	}
	return s, nil
}

func (s settingsModel) showForm() (settingsModel, tea.Cmd) {
	// Load current values
	*s.darkMode = s.snap.prefs.DarkMode
	*s.notifications = s.snap.prefs.Notifications
	*s.lossRate = s.snap.prefs.HPLossRate
	*s.avatarURL = s.snap.character.AvatarURL

	rateOptions := make([]huh.Option[game.HPLossRate], len(game.HPLossRates))
	for i, r := range game.HPLossRates {
		rateOptions[i] = huh.NewOption(fmt.Sprintf("%s (%d HP per missed quest)", r, r.Penalty()), r)
	}

	groups := []*huh.Group{
		huh.NewGroup(
			huh.NewConfirm().Title("Dark mode").Value(s.darkMode),
			huh.NewConfirm().Title("Notifications").
				Description("Show background events in the status bar").
				Value(s.notifications),
			huh.NewSelect[game.HPLossRate]().Title("HP loss rate").
				Options(rateOptions...).
				Value(s.lossRate),
		).Title("Preferences"),
	}
	if s.snap.hasCharacter {
		groups = append(groups, huh.NewGroup(
			huh.NewInput().Title("Avatar URL").
				Value(s.avatarURL).
				Validate(validateAvatarURL),
		).Title("Character"))
	}

	s.form = huh.NewForm(groups...).WithShowHelp(true).WithShowErrors(true)
	s.formActive = true
	return s, s.form.Init()
}

func validateAvatarURL(v string) error {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	u, err := url.Parse(v)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("enter a full URL or leave empty")
	}
	return nil
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
		s.save()
		return s, func() tea.Msg { return statusMsg{text: "Settings saved"} }
	}

	return s, cmd
}

func (s settingsModel) save() {
	s.engine.SetDarkMode(*s.darkMode)
	s.engine.SetNotifications(*s.notifications)
	s.engine.SetHPLossRate(*s.lossRate)
	if avatar := strings.TrimSpace(*s.avatarURL); s.snap.hasCharacter && avatar != s.snap.character.AvatarURL {
		s.engine.UpdateAvatar(avatar)
	}
}

func (s settingsModel) view() string {
	w := s.width - 4
	title := titleStyle.Render("Settings")

	if s.formActive && s.form != nil {
		return panelStyle.Width(w).Render(
			lipgloss.JoinVertical(lipgloss.Left, title, "", s.form.View()),
		)
	}

	avatar := "none"
	if s.snap.character.AvatarURL != "" {
		avatar = s.snap.character.AvatarURL
	}

	settings := [][2]string{
		{"Dark mode", onOff(s.snap.prefs.DarkMode)},
		{"Notifications", onOff(s.snap.prefs.Notifications)},
		{"HP loss rate", fmt.Sprintf("%s (%d HP)", s.snap.prefs.HPLossRate, s.snap.prefs.HPLossRate.Penalty())},
		{"Avatar", avatar},
	}

	var rows []string
	rows = append(rows, title, "")
	for _, kv := range settings {
		label := lipgloss.NewStyle().Width(24).Render(kv[0])
		rows = append(rows, fmt.Sprintf("  %s %s", label, highlightStyle.Render(kv[1])))
	}
	rows = append(rows, "", mutedStyle.Render("Press enter to edit settings"))

	return panelStyle.Width(w).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
