package view

import (
	"fmt"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/zinminlatt/ispbill/internal/invoice"
)

type invoicesState int

const (
	invoicesStateBrowse invoicesState = iota
	invoicesStateSearch
)

// EditInvoiceMsg asks the root model to open the invoice editor with a
// draft hydrated from a persisted invoice.
type EditInvoiceMsg struct {
	Draft *invoice.Draft
}

type InvoicesModel struct {
	CommonModel
	invService *invoice.Service

	state    invoicesState
	table    table.Model
	invoices []*invoice.Invoice
	form     *huh.Form

	search  string
	loading bool
	err     error
	status  string
}

func NewInvoicesModel(invSvc *invoice.Service) InvoicesModel {
	columns := []table.Column{
		{Title: "Number", Width: 12},
		{Title: "Date", Width: 12},
		{Title: "Customer", Width: 24},
		{Title: "Total", Width: 14},
		{Title: "Status", Width: 8},
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

	return InvoicesModel{
		invService: invSvc,
		table:      t,
	}
}

func (m InvoicesModel) Title() string { return "Invoices" }
func (m InvoicesModel) ShortHelp() string {
	if m.state == invoicesStateSearch {
		return "Enter: search | Esc: cancel"
	}
	return "Esc: back | e: edit | x: delete | /: search | r: refresh"
}

func (m InvoicesModel) Init() tea.Cmd {
	return m.loadInvoicesCmd()
}

func (m InvoicesModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case loadInvoicesMsg:
		m.loading = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.invoices = msg.invoices
		m.refreshTable()
		return m, nil

	case invoiceDeletedMsg:
		if msg.err != nil {
			m.status = fmt.Sprintf("Delete failed: %v", msg.err)
			return m, nil
		}
		m.status = "Invoice deleted"
		return m, m.loadInvoicesCmd()

	case tea.WindowSizeMsg:
		m.table.SetHeight(msg.Height - 10)
		return m, nil
	}

	switch m.state {
	case invoicesStateBrowse:
		return m.updateBrowse(msg)
	case invoicesStateSearch:
		return m.updateSearch(msg)
	}

	return m, nil
}

func (m InvoicesModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "r":
			m.loading = true
			return m, m.loadInvoicesCmd()
		case "/":
			return m.enterSearchMode()
		case "e":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.invoices) {
				return m, nil
			}

			draft, err := invoice.EditDraft(m.invoices[idx])
			if err != nil {
				m.status = fmt.Sprintf("Cannot edit: %v", err)
				return m, nil
			}

			return m, func() tea.Msg { return EditInvoiceMsg{Draft: draft} }
		case "x":
			idx := m.table.Cursor()
			if idx < 0 || idx >= len(m.invoices) {
				return m, nil
			}

			return m, m.deleteCmd(idx)
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m InvoicesModel) enterSearchMode() (tea.Model, tea.Cmd) {
	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Key("search").
				Title("Search").
				Placeholder("invoice no, customer name or code").
				Value(&m.search),
		),
	).WithWidth(44).WithShowHelp(false)

	m.state = invoicesStateSearch
	m.table.Blur()
	return m, m.form.Init()
}

func (m InvoicesModel) updateSearch(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = invoicesStateBrowse
			m.form = nil
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

	m.state = invoicesStateBrowse
	m.form = nil
	m.table.Focus()
	m.loading = true
	return m, m.loadInvoicesCmd()
}

func (m InvoicesModel) View() string {
	if m.loading {
		return lipgloss.NewStyle().Padding(2).Render("Loading invoices...")
	}

	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	header := "Invoices"
	if m.search != "" {
		header = fmt.Sprintf("Invoices matching %q", m.search)
	}

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.table.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
	)

	if m.state == invoicesStateSearch && m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(48).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *InvoicesModel) refreshTable() {
	rows := make([]table.Row, 0, len(m.invoices))
	for _, inv := range m.invoices {
		rows = append(rows, table.Row{
			inv.Number,
			FormatDate(inv.Date),
			inv.Customer.Name,
			FormatMoney(inv.TotalAmount),
			string(inv.Status),
		})
	}
	m.table.SetRows(rows)
}

// Messages

type loadInvoicesMsg struct {
	invoices []*invoice.Invoice
	err      error
}

func (m InvoicesModel) loadInvoicesCmd() tea.Cmd {
	search := m.search

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		invoices, err := m.invService.List(ctx, search)
		return loadInvoicesMsg{invoices: invoices, err: err}
	}
}

type invoiceDeletedMsg struct {
	err error
}

func (m InvoicesModel) deleteCmd(idx int) tea.Cmd {
	id := m.invoices[idx].ID

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		return invoiceDeletedMsg{err: m.invService.Delete(ctx, id)}
	}
}
