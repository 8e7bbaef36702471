package cmd

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/inovacc/diarypush/internal/diary"
	"github.com/inovacc/diarypush/internal/security"
)

type scanModel struct {
	spinner  spinner.Model
	scan     func() (*security.ScanResult, error)
	scanning bool
	done     bool
	result   *security.ScanResult
	err      error
}

type scanDoneMsg struct {
	result *security.ScanResult
	err    error
}

func newScanModel(scan func() (*security.ScanResult, error)) scanModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = spinStyle

	return scanModel{spinner: s, scan: scan, scanning: true}
}

func (m scanModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.runScan)
}

func (m scanModel) runScan() tea.Msg {
	result, err := m.scan()
	return scanDoneMsg{result: result, err: err}
}

func (m scanModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case scanDoneMsg:
		m.scanning = false
		m.done = true
		m.result = msg.result
		m.err = msg.err

		return m, tea.Quit
	case spinner.TickMsg:
		var cmd tea.Cmd

		m.spinner, cmd = m.spinner.Update(msg)

		return m, cmd
	}

	return m, nil
}

func (m scanModel) View() string {
	if m.done {
		if m.err != nil {
			return warnStyle.Render("  Warning: ") + dimStyle.Render(m.err.Error()) + "\n"
		}

		if m.result != nil && m.result.HasLeaks {
			return errStyle.Render(fmt.Sprintf("  Found %d secret(s)", len(m.result.Findings))) + "\n"
		}

		return okStyle.Render("  No secrets detected") + "\n"
	}

	if m.scanning {
		return fmt.Sprintf("  %s Scanning staged changes for secrets...\n", m.spinner.View())
	}

	return ""
}

// spinnerScanner shows a spinner on the terminal while the wrapped scanner
// inspects the staged diff.
type spinnerScanner struct {
	inner diary.SecretScanner
}

func (s spinnerScanner) ScanStagedChanges(ctx context.Context, repoPath string) (*security.ScanResult, error) {
	m := newScanModel(func() (*security.ScanResult, error) {
		return s.inner.ScanStagedChanges(ctx, repoPath)
	})

	p := tea.NewProgram(m, tea.WithInput(nil), tea.WithContext(ctx))

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("scan UI failed: %w", err)
	}

	sm := final.(scanModel)

	return sm.result, sm.err
}
