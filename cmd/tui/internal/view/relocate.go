package view

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/google/uuid"

	"github.com/zinminlatt/ispbill/internal/customer"
	"github.com/zinminlatt/ispbill/internal/quarter"
	"github.com/zinminlatt/ispbill/internal/relocation"
)

type relocateState int

const (
	relocateStatePick relocateState = iota
	relocateStateForm
	relocateStateSubmitting
)

type RelocateModel struct {
	CommonModel
	custService  *customer.Service
	quarterSvc   *quarter.Service
	relocService *relocation.Service

	state     relocateState
	table     table.Model
	customers []*customer.Customer
	quarters  []*quarter.Quarter
	form      *huh.Form

	selected *customer.Customer

	formAddress string
	formQuarter string
	formDNSN    string
	formGPS     string
	formRemark  string

	status string
	err    error
}

func NewRelocateModel(custSvc *customer.Service, quarterSvc *quarter.Service, relocSvc *relocation.Service) RelocateModel {
	columns := []table.Column{
		{Title: "Code", Width: 12},
		{Title: "Name", Width: 24},
		{Title: "Address", Width: 30},
		{Title: "Quarter", Width: 16},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15),
	)

	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		BorderBottom(true).
		Bold(false)
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("229")).
		Background(lipgloss.Color("57")).
		Bold(false)
	t.SetStyles(s)

	return RelocateModel{
		custService:  custSvc,
		quarterSvc:   quarterSvc,
		relocService: relocSvc,
		table:        t,
	}
}

func (m RelocateModel) Title() string { return "Relocate Customer" }
func (m RelocateModel) ShortHelp() string {
	switch m.state {
	case relocateStateForm:
		return "Navigate form | Esc: cancel"
	default:
		return "Enter: select customer | Esc: back"
	}
}

func (m RelocateModel) Init() tea.Cmd {
	return m.loadRelocateDataCmd()
}

func (m RelocateModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case relocateDataMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.customers = msg.customers
		m.quarters = msg.quarters
		m.refreshTable()
		return m, nil

	case relocatedMsg:
		if msg.err != nil {
			m.state = relocateStatePick
			m.status = fmt.Sprintf("Relocation failed: %v", msg.err)
			m.table.Focus()
			return m, nil
		}
		m.status = fmt.Sprintf("Moved %s to %s", m.selected.Name, msg.rec.NewAddress)
		m.state = relocateStatePick
		m.selected = nil
		m.table.Focus()
		return m, m.loadRelocateDataCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case relocateStatePick:
		return m.updatePick(msg)
	case relocateStateForm:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m RelocateModel) updatePick(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "enter":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.customers) {
				return m, nil
			}

			return m.enterForm(m.customers[idx])
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m RelocateModel) enterForm(c *customer.Customer) (tea.Model, tea.Cmd) {
	m.selected = c
	m.formAddress = ""
	m.formQuarter = c.QuarterName
	m.formDNSN = c.DNSN
	m.formGPS = ""
	m.formRemark = ""

	options := make([]huh.Option[string], 0, len(m.quarters))
	for _, q := range m.quarters {
		options = append(options, huh.NewOption(q.Name, q.Name))
	}

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("address").
				Title("New Address").
				Value(&m.formAddress).
				Validate(func(s string) error {
					if strings.TrimSpace(s) == "" {
						return fmt.Errorf("address cannot be empty")
					}
					return nil
				}),
			huh.NewSelect[string]().
				Key("quarter").
				Title("New Quarter").
				Options(options...).
				Value(&m.formQuarter),
			huh.NewInput().Key("dnsn").Title("New DN Serial").Value(&m.formDNSN),
			huh.NewInput().Key("gps").Title("GPS Coordinates").Value(&m.formGPS),
			huh.NewInput().Key("remark").Title("Remark").Value(&m.formRemark),
		),
	).WithWidth(48).WithShowHelp(false)

	m.state = relocateStateForm
	m.table.Blur()
	return m, m.form.Init()
}

func (m RelocateModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = relocateStatePick
			m.form = nil
			m.selected = nil
			m.table.Focus()
			return m, nil
		}
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State != huh.StateCompleted {
		return m, cmd
	}

	m.state = relocateStateSubmitting
	m.form = nil
	return m, m.relocateCmd()
}

func (m RelocateModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == relocateStateSubmitting {
		return lipgloss.NewStyle().Padding(2).Render("Recording relocation...")
	}

	header := "Select the customer to relocate"
	if m.selected != nil {
		header = fmt.Sprintf("Relocating %s (%s) from %s", m.selected.Name, m.selected.Code, m.selected.Address)
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == relocateStateForm && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(52).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *RelocateModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.customers))
	for _, c := range m.customers {
		rows = append(rows, table.Row{c.Code, c.Name, c.Address, c.QuarterName})
	}
	m.table.SetRows(rows)
}

func (m RelocateModel) quarterIDByName(name string) uuid.UUID {
	for _, q := range m.quarters {
		if q.Name == name {
			return q.ID
		}
	}

	return uuid.Nil
}

// Messages

type relocateDataMsg struct {
	customers []*customer.Customer
	quarters  []*quarter.Quarter
	err       error
}

func (m RelocateModel) loadRelocateDataCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		customers, err := m.custService.List(ctx, "")
		if err != nil {
			return relocateDataMsg{err: err}
		}

		quarters, err := m.quarterSvc.List(ctx)
		if err != nil {
			return relocateDataMsg{err: err}
		}

		return relocateDataMsg{customers: customers, quarters: quarters}
	}
}

type relocatedMsg struct {
	rec *relocation.Record
	err error
}

func (m RelocateModel) relocateCmd() tea.Cmd {
	customerID := m.selected.ID
	params := relocation.Params{
		NewAddress:   m.formAddress,
		NewQuarterID: m.quarterIDByName(m.formQuarter),
		NewDNSN:      m.formDNSN,
		NewGPS:       m.formGPS,
		Remark:       m.formRemark,
	}

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		rec, err := m.relocService.Relocate(ctx, customerID, params)
		return relocatedMsg{rec: rec, err: err}
	}
}
