package ui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	pkgtypes "github.com/Azsael/CdkDemo/pkg/types"
)

const (
	vpcListHeight       = 8
	vpcDetailLabelWidth = 12
	minWidth            = 60
	maxWidth            = 120
)

// ErrCancelled is returned when the user leaves a selector without choosing
var ErrCancelled = errors.New("selection cancelled")

// VPCModel is the bubbletea model for picking the VPC a stack deploys into
type VPCModel struct {
	vpcs         []pkgtypes.VPC
	filtered     []pkgtypes.VPC
	cursor       int
	offset       int
	search       string
	selected     *pkgtypes.VPC
	quitting     bool
	cancelled    bool
	contentWidth int
}

// NewVPCModel creates a VPC selector over vpcs
func NewVPCModel(vpcs []pkgtypes.VPC) VPCModel {
	m := VPCModel{vpcs: vpcs, filtered: vpcs}
	m.resize(80)
	return m
}

func (m *VPCModel) resize(termWidth int) {
	m.contentWidth = min(max(termWidth-2, minWidth), maxWidth)
}

// Selected returns the chosen VPC, or nil when none was chosen
func (m VPCModel) Selected() *pkgtypes.VPC { return m.selected }

// Cancelled reports whether the user left without choosing
func (m VPCModel) Cancelled() bool { return m.cancelled }

// Init implements tea.Model
func (m VPCModel) Init() tea.Cmd {
	return tea.WindowSize()
}

// Update implements tea.Model
func (m VPCModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width)

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.quitting = true
			m.cancelled = true
			return m, tea.Quit

		case tea.KeyEnter:
			if len(m.filtered) > 0 {
				vpc := m.filtered[m.cursor]
				m.selected = &vpc
				m.quitting = true
				return m, tea.Quit
			}

		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
				m.offset = min(m.offset, m.cursor)
			}

		case tea.KeyDown:
			if m.cursor < len(m.filtered)-1 {
				m.cursor++
				if m.cursor >= m.offset+vpcListHeight {
					m.offset = m.cursor - vpcListHeight + 1
				}
			}

		case tea.KeyBackspace:
			if len(m.search) > 0 {
				m.search = m.search[:len(m.search)-1]
				m.filter()
			}

		case tea.KeyRunes:
			m.search += string(msg.Runes)
			m.filter()
		}
	}

	return m, nil
}

// filter matches the search text against name, ID and CIDR
func (m *VPCModel) filter() {
	m.filtered = m.vpcs
	if m.search != "" {
		query := strings.ToLower(m.search)
		m.filtered = nil
		for _, vpc := range m.vpcs {
			if strings.Contains(strings.ToLower(vpc.Name), query) ||
				strings.Contains(strings.ToLower(vpc.ID), query) ||
				strings.Contains(vpc.CIDR, query) {
				m.filtered = append(m.filtered, vpc)
			}
		}
	}
	m.cursor = max(min(m.cursor, len(m.filtered)-1), 0)
	m.offset = 0
}

// line renders one bordered row of the selector box
func (m VPCModel) line(text string, style lipgloss.Style) string {
	return BorderStyle.Render(Vertical) + style.Render(padRight(text, m.contentWidth)) + BorderStyle.Render(Vertical) + "\n"
}

func (m VPCModel) rule(left, right string) string {
	return BorderStyle.Render(left+strings.Repeat(Horizontal, m.contentWidth)+right) + "\n"
}

// View implements tea.Model
func (m VPCModel) View() string {
	if m.quitting {
		return ""
	}

	var sb strings.Builder
	sb.WriteString(m.rule(TopLeft, TopRight))
	sb.WriteString(m.line(" > "+m.search, NameStyle))
	sb.WriteString(m.line("", MutedStyle))

	end := min(m.offset+vpcListHeight, len(m.filtered))
	for i := m.offset; i < end; i++ {
		sb.WriteString(m.row(i))
	}
	for i := end - m.offset; i < vpcListHeight; i++ {
		sb.WriteString(m.line("", MutedStyle))
	}

	sb.WriteString(m.rule(LeftT, RightT))
	sb.WriteString(m.details())
	sb.WriteString(m.rule(BottomLeft, BottomRight))
	sb.WriteString(m.statusBar())
	return sb.String()
}

func (m VPCModel) row(idx int) string {
	vpc := m.filtered[idx]

	cursor := "   "
	if idx == m.cursor {
		cursor = " > "
	}
	nameWidth := max(m.contentWidth-3-23-20, 10)

	return BorderStyle.Render(Vertical) +
		cursor +
		IDStyle.Render(padRight(vpc.ID, 21)+"  ") +
		IPStyle.Render(padRight(vpc.CIDR, 18)+"  ") +
		NameStyle.Render(padRight(vpc.Name, nameWidth)) +
		strings.Repeat(" ", max(m.contentWidth-3-23-20-nameWidth, 0)) +
		BorderStyle.Render(Vertical) + "\n"
}

func (m VPCModel) details() string {
	var sb strings.Builder
	sb.WriteString(m.line(" VPC Details", HeaderStyle))
	sb.WriteString(m.line(" "+strings.Repeat(Horizontal, 20), MutedStyle))

	if len(m.filtered) == 0 {
		sb.WriteString(m.line(" No VPCs found", MutedStyle))
		return sb.String()
	}

	vpc := m.filtered[m.cursor]
	state := GoodStyle
	if vpc.State != "available" {
		state = PendingStyle
	}
	rows := []struct {
		label string
		value string
		style lipgloss.Style
	}{
		{"ID:", vpc.ID, IDStyle},
		{"Name:", vpc.Name, NameStyle},
		{"CIDR:", vpc.CIDR, IPStyle},
		{"State:", vpc.State, state},
		{"Default:", formatBool(vpc.IsDefault), MutedStyle},
		{"Owner:", vpc.OwnerID, MutedStyle},
	}
	for _, d := range rows {
		value := d.value
		maxValue := m.contentWidth - 1 - vpcDetailLabelWidth
		if runewidth.StringWidth(value) > maxValue {
			value = runewidth.Truncate(value, maxValue, "...")
		}
		pad := m.contentWidth - 1 - vpcDetailLabelWidth - runewidth.StringWidth(value)
		sb.WriteString(BorderStyle.Render(Vertical) +
			MutedStyle.Render(" "+padRight(d.label, vpcDetailLabelWidth)) +
			d.style.Render(value) + strings.Repeat(" ", max(pad, 0)) +
			BorderStyle.Render(Vertical) + "\n")
	}
	return sb.String()
}

func (m VPCModel) statusBar() string {
	count := fmt.Sprintf("  %d/%d VPCs", len(m.filtered), len(m.vpcs))
	hints := "[Enter:select] [Esc:cancel]"
	pad := m.contentWidth + 2 - runewidth.StringWidth(count) - runewidth.StringWidth(hints)
	return count + strings.Repeat(" ", max(pad, 1)) + HintStyle.Render(hints) + "\n"
}

// SelectVPC displays an interactive selector for VPCs
func SelectVPC(vpcs []pkgtypes.VPC) (*pkgtypes.VPC, error) {
	if len(vpcs) == 0 {
		return nil, fmt.Errorf("no VPCs available")
	}

	finalModel, err := tea.NewProgram(NewVPCModel(vpcs)).Run()
	if err != nil {
		return nil, fmt.Errorf("error running selector: %w", err)
	}

	result := finalModel.(VPCModel)
	if result.Cancelled() {
		return nil, ErrCancelled
	}
	return result.Selected(), nil
}
