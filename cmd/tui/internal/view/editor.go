package view

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/zinminlatt/ispbill/internal/customer"
	"github.com/zinminlatt/ispbill/internal/invoice"
)

type editorState int

const (
	editorStatePickCustomer editorState = iota
	editorStateItems
	editorStateEditItem
	editorStateMeta
	editorStateSubmitting
)

// EditorModel drives invoice entry. It owns a single draft for its
// whole lifetime and discards it after a successful save.
type EditorModel struct {
	CommonModel
	invService  *invoice.Service
	custService *customer.Service

	draft *invoice.Draft

	state     editorState
	custTable table.Model
	customers []*customer.Customer
	itemTable table.Model
	form      *huh.Form

	// Form bindings; raw text is handed to the draft unparsed.
	formDesc     string
	formStart    string
	formEnd      string
	formQty      string
	formPrice    string
	formDiscount string

	formHeaderDiscount string
	formRemark         string
	formPaid           bool

	status string
	err    error
}

func NewEditorModel(invSvc *invoice.Service, custSvc *customer.Service, draft *invoice.Draft) EditorModel {
	custColumns := []table.Column{
		{Title: "Code", Width: 12},
		{Title: "Name", Width: 26},
		{Title: "Phone", Width: 14},
		{Title: "Quarter", Width: 16},
	}

	ct := table.New(
		table.WithColumns(custColumns),
		table.WithFocused(true),
		table.WithHeight(12),
	)

	itemColumns := []table.Column{
		{Title: "#", Width: 3},
		{Title: "Description", Width: 28},
		{Title: "Period", Width: 23},
		{Title: "Qty", Width: 6},
		{Title: "Unit Price", Width: 12},
		{Title: "Discount", Width: 10},
		{Title: "Amount", Width: 12},
	}

	it := table.New(
		table.WithColumns(itemColumns),
		table.WithFocused(true),
		table.WithHeight(10),
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
	ct.SetStyles(s)
	it.SetStyles(s)

	state := editorStatePickCustomer
	if draft.Customer != nil {
		state = editorStateItems
	}

	m := EditorModel{
		invService:  invSvc,
		custService: custSvc,
		draft:       draft,
		state:       state,
		custTable:   ct,
		itemTable:   it,
	}
	m.refreshItems()

	return m
}

func (m EditorModel) Title() string { return "Invoice Entry" }
func (m EditorModel) ShortHelp() string {
	switch m.state {
	case editorStatePickCustomer:
		return "Enter: select customer | Esc: cancel"
	case editorStateEditItem, editorStateMeta:
		return "Navigate form | Esc: cancel"
	default:
		return "e: edit line | a: add line | x: remove line | d: discount/remark | s: save | Esc: cancel"
	}
}

func (m EditorModel) Init() tea.Cmd {
	if m.state == editorStatePickCustomer {
		return m.loadEditorCustomersCmd()
	}
	return nil
}

func (m EditorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case editorCustomersMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.customers = msg.customers
		m.refreshCustomers()
		return m, nil

	case editorSavedMsg:
		if msg.err != nil {
			m.state = editorStateItems
			m.status = fmt.Sprintf("Save failed: %v", msg.err)
			return m, nil
		}
		m.status = fmt.Sprintf("Saved %s", msg.inv.Number)
		return m, Back

	case tea.WindowSizeMsg:
		m.custTable.SetHeight(msg.Height - 12)
		return m, nil
	}

	switch m.state {
	case editorStatePickCustomer:
		return m.updatePickCustomer(msg)
	case editorStateItems:
		return m.updateItems(msg)
	case editorStateEditItem, editorStateMeta:
		return m.updateForm(msg)
	}

	return m, nil
}

func (m EditorModel) updatePickCustomer(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "enter":
			idx := m.custTable.Cursor()
			if idx < 0 || idx >= len(m.customers) {
				return m, nil
			}

			c := m.customers[idx]
			m.draft.Customer = &invoice.CustomerRef{ID: c.ID, Code: c.Code, Name: c.Name}
			m.state = editorStateItems
			m.refreshItems()
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.custTable, cmd = m.custTable.Update(msg)
	return m, cmd
}

func (m EditorModel) updateItems(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, Back
		case "e":
			return m.enterItemForm()
		case "a":
			if err := m.draft.AddItem(); err != nil {
				m.status = "Finish the current line before adding another"
				return m, nil
			}
			m.status = ""
			m.refreshItems()
			m.itemTable.SetCursor(len(m.draft.Items) - 1)
			return m, nil
		case "x":
			if err := m.draft.RemoveItem(m.itemTable.Cursor()); err != nil {
				m.status = fmt.Sprintf("Cannot remove line: %v", err)
				return m, nil
			}
			m.status = ""
			m.refreshItems()
			return m, nil
		case "d":
			return m.enterMetaForm()
		case "s":
			m.state = editorStateSubmitting
			return m, m.submitCmd()
		}
	}

	var cmd tea.Cmd
	m.itemTable, cmd = m.itemTable.Update(msg)
	return m, cmd
}

func (m EditorModel) enterItemForm() (tea.Model, tea.Cmd) {
	idx := m.itemTable.Cursor()
	if idx < 0 || idx >= len(m.draft.Items) {
		return m, nil
	}

	item := m.draft.Items[idx]
	m.formDesc = item.Description
	m.formStart = ""
	m.formEnd = ""
	if item.PeriodStart != nil {
		m.formStart = FormatDate(*item.PeriodStart)
	}
	if item.PeriodEnd != nil {
		m.formEnd = FormatDate(*item.PeriodEnd)
	}
	m.formQty = formatNumber(item.Quantity)
	m.formPrice = formatNumber(item.UnitPrice)
	m.formDiscount = formatNumber(item.ItemDiscount)

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("description").Title("Description").Value(&m.formDesc),
			huh.NewInput().Key("period_start").Title("Period Start").Placeholder("YYYY-MM-DD").Value(&m.formStart),
			huh.NewInput().Key("period_end").Title("Period End").Placeholder("YYYY-MM-DD").Value(&m.formEnd),
			huh.NewInput().Key("quantity").Title("Quantity").Value(&m.formQty),
			huh.NewInput().Key("unit_price").Title("Unit Price").Value(&m.formPrice),
			huh.NewInput().Key("item_discount").Title("Line Discount").Value(&m.formDiscount),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = editorStateEditItem
	m.itemTable.Blur()
	return m, m.form.Init()
}

func (m EditorModel) enterMetaForm() (tea.Model, tea.Cmd) {
	m.formHeaderDiscount = formatNumber(m.draft.DiscountAmount)
	m.formRemark = m.draft.Remark
	m.formPaid = m.draft.Status == invoice.StatusPaid

	m.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().Key("discount").Title("Invoice Discount").Value(&m.formHeaderDiscount),
			huh.NewInput().Key("remark").Title("Remark").Value(&m.formRemark),
			huh.NewConfirm().Key("paid").Title("Paid?").Value(&m.formPaid),
		),
	).WithWidth(40).WithShowHelp(false)

	m.state = editorStateMeta
	m.itemTable.Blur()
	return m, m.form.Init()
}

func (m EditorModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		if keyMsg.Type == tea.KeyEsc {
			m.state = editorStateItems
			m.form = nil
			m.itemTable.Focus()
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

	if m.state == editorStateEditItem {
		m.applyItemForm()
	} else {
		m.applyMetaForm()
	}

	m.state = editorStateItems
	m.form = nil
	m.itemTable.Focus()
	m.refreshItems()
	return m, nil
}

// applyItemForm hands the raw form text to the draft field by field;
// the draft owns all parsing.
func (m *EditorModel) applyItemForm() {
	idx := m.itemTable.Cursor()

	fields := []struct {
		field invoice.ItemField
		raw   string
	}{
		{invoice.FieldDescription, m.formDesc},
		{invoice.FieldPeriodStart, m.formStart},
		{invoice.FieldPeriodEnd, m.formEnd},
		{invoice.FieldQuantity, m.formQty},
		{invoice.FieldUnitPrice, m.formPrice},
		{invoice.FieldItemDiscount, m.formDiscount},
	}

	for _, f := range fields {
		if err := m.draft.SetItemField(idx, f.field, f.raw); err != nil {
			m.status = fmt.Sprintf("Edit failed: %v", err)
			return
		}
	}

	m.status = ""
}

func (m *EditorModel) applyMetaForm() {
	m.draft.SetDiscount(m.formHeaderDiscount)
	m.draft.Remark = m.formRemark
	m.draft.Status = invoice.StatusUnpaid
	if m.formPaid {
		m.draft.Status = invoice.StatusPaid
	}
}

func (m EditorModel) View() string {
	if m.err != nil {
		return lipgloss.NewStyle().Padding(2).Render(fmt.Sprintf("Error: %v", m.err))
	}

	if m.state == editorStatePickCustomer {
		return lipgloss.NewStyle().Padding(1).Render(lipgloss.JoinVertical(lipgloss.Left,
			lipgloss.NewStyle().PaddingBottom(1).Render("Select a customer"),
			lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240")).
				Render(m.custTable.View()),
		))
	}

	if m.state == editorStateSubmitting {
		return lipgloss.NewStyle().Padding(2).Render("Saving invoice...")
	}

	header := "New invoice"
	if m.draft.ID != nil {
		header = "Edit invoice"
	}
	if m.draft.Customer != nil {
		header += fmt.Sprintf(" for %s (%s)", m.draft.Customer.Name, m.draft.Customer.Code)
	}

	totals := fmt.Sprintf(
		"Subtotal: %s   Discount: %s   Grand Total: %s",
		FormatMoney(m.draft.SubTotal()),
		FormatMoney(m.draft.DiscountAmount),
		FormatMoney(m.draft.GrandTotal()),
	)

	tableView := lipgloss.NewStyle().
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(lipgloss.Color("240")).
		Render(m.itemTable.View())

	content := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().PaddingBottom(1).Render(header),
		tableView,
		lipgloss.NewStyle().PaddingTop(1).Bold(true).Render(totals),
	)

	if m.form != nil {
		panel := lipgloss.NewStyle().
			Padding(1, 2).
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Width(44).
			Render(m.form.View())

		content = lipgloss.JoinHorizontal(lipgloss.Top, content, panel)
	}

	if m.status != "" {
		content = lipgloss.NewStyle().Faint(true).Render(m.status) + "\n" + content
	}

	return lipgloss.NewStyle().Padding(1).Render(content)
}

func (m *EditorModel) refreshCustomers() {
	rows := make([]table.Row, 0, len(m.customers))
	for _, c := range m.customers {
		rows = append(rows, table.Row{c.Code, c.Name, c.PrimaryPhone, c.QuarterName})
	}
	m.custTable.SetRows(rows)
}

func (m *EditorModel) refreshItems() {
	rows := make([]table.Row, 0, len(m.draft.Items))
	for i, item := range m.draft.Items {
		period := ""
		if item.PeriodStart != nil && item.PeriodEnd != nil {
			period = FormatDate(*item.PeriodStart) + " - " + FormatDate(*item.PeriodEnd)
		}
		rows = append(rows, table.Row{
			strconv.Itoa(i + 1),
			item.Description,
			period,
			formatNumber(item.Quantity),
			FormatMoney(item.UnitPrice),
			FormatMoney(item.ItemDiscount),
			FormatMoney(item.Amount()),
		})
	}
	m.itemTable.SetRows(rows)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Messages

type editorCustomersMsg struct {
	customers []*customer.Customer
	err       error
}

func (m EditorModel) loadEditorCustomersCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		customers, err := m.custService.List(ctx, "")
		return editorCustomersMsg{customers: customers, err: err}
	}
}

type editorSavedMsg struct {
	inv *invoice.Invoice
	err error
}

func (m EditorModel) submitCmd() tea.Cmd {
	draft := m.draft

	return func() tea.Msg {
		ctx, cancel := DbCtx()
		defer cancel()

		inv, err := m.invService.Submit(ctx, draft)
		return editorSavedMsg{inv: inv, err: err}
	}
}
