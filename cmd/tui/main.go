package main

import (
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/joho/godotenv"

	"github.com/zinminlatt/ispbill/cmd/tui/internal/view"
	"github.com/zinminlatt/ispbill/internal/config"
	"github.com/zinminlatt/ispbill/internal/customer"
	customerStore "github.com/zinminlatt/ispbill/internal/customer/store"
	"github.com/zinminlatt/ispbill/internal/database"
	"github.com/zinminlatt/ispbill/internal/invoice"
	invoiceStore "github.com/zinminlatt/ispbill/internal/invoice/store"
	"github.com/zinminlatt/ispbill/internal/quarter"
	quarterStore "github.com/zinminlatt/ispbill/internal/quarter/store"
	"github.com/zinminlatt/ispbill/internal/relocation"
	relocationStore "github.com/zinminlatt/ispbill/internal/relocation/store"
)

type model struct {
	custService    *customer.Service
	invService     *invoice.Service
	quarterService *quarter.Service
	relocService   *relocation.Service

	currentView View

	customersView view.CustomersModel
	invoicesView  view.InvoicesModel
	editorView    view.EditorModel
	relocateView  view.RelocateModel
}

type View int

const (
	ViewMenu      View = 0
	ViewCustomers View = 1
	ViewInvoices  View = 2
	ViewEditor    View = 3
	ViewRelocate  View = 4
)

func initialModel() model {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.ConnectionString())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}

	custSvc := customer.NewService(customerStore.New(db))
	invSvc := invoice.NewService(invoiceStore.New(db))
	quarterSvc := quarter.NewService(quarterStore.New(db))
	relocSvc := relocation.NewService(relocationStore.New(db))

	return model{
		custService:    custSvc,
		invService:     invSvc,
		quarterService: quarterSvc,
		relocService:   relocSvc,
		currentView:    ViewMenu,
		customersView:  view.NewCustomersModel(custSvc),
		invoicesView:   view.NewInvoicesModel(invSvc),
		relocateView:   view.NewRelocateModel(custSvc, quarterSvc, relocSvc),
	}
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.currentView == ViewMenu {
			switch msg.String() {
			case "ctrl+c", "q":
				return m, tea.Quit
			case "1":
				m.currentView = ViewCustomers
				m.customersView = view.NewCustomersModel(m.custService)

				return m, m.customersView.Init()
			case "2":
				m.currentView = ViewInvoices
				m.invoicesView = view.NewInvoicesModel(m.invService)

				return m, m.invoicesView.Init()
			case "3":
				m.currentView = ViewEditor
				m.editorView = view.NewEditorModel(m.invService, m.custService, invoice.NewDraft())

				return m, m.editorView.Init()
			case "4":
				m.currentView = ViewRelocate
				m.relocateView = view.NewRelocateModel(m.custService, m.quarterService, m.relocService)

				return m, m.relocateView.Init()
			}
		}
	case view.EditInvoiceMsg:
		m.currentView = ViewEditor
		m.editorView = view.NewEditorModel(m.invService, m.custService, msg.Draft)

		return m, m.editorView.Init()
	case view.BackMsg:
		m.currentView = ViewMenu
		return m, nil
	}

	switch m.currentView {
	case ViewCustomers:
		var newModel tea.Model
		newModel, cmd = m.customersView.Update(msg)
		m.customersView = newModel.(view.CustomersModel)
	case ViewInvoices:
		var newModel tea.Model
		newModel, cmd = m.invoicesView.Update(msg)
		m.invoicesView = newModel.(view.InvoicesModel)
	case ViewEditor:
		var newModel tea.Model
		newModel, cmd = m.editorView.Update(msg)
		m.editorView = newModel.(view.EditorModel)
	case ViewRelocate:
		var newModel tea.Model
		newModel, cmd = m.relocateView.Update(msg)
		m.relocateView = newModel.(view.RelocateModel)
	}

	return m, cmd
}

func (m model) View() string {
	switch m.currentView {
	case ViewMenu:
		return lipgloss.NewStyle().Padding(2).Render(
			"ISP Billing TUI\n\n" +
				"1. Browse Customers\n" +
				"2. Browse Invoices\n" +
				"3. New Invoice\n" +
				"4. Relocate Customer\n\n" +
				"q. Quit",
		)
	case ViewCustomers:
		return m.customersView.View()
	case ViewInvoices:
		return m.invoicesView.View()
	case ViewEditor:
		return m.editorView.View()
	case ViewRelocate:
		return m.relocateView.View()
	}

	return "Unknown View"
}

func main() {
	p := tea.NewProgram(initialModel())
	if _, err := p.Run(); err != nil {
		slog.Error("failed to run TUI", "error", err)
		os.Exit(1)
	}
}
