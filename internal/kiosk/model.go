// Package kiosk is a terminal front end for the park: the chat assistant
// and the ticket purchase wizard side by side in two tabs.
package kiosk

import (
	"context"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/curiousguyinhis30s/themepark-website/internal/chat"
	"github.com/curiousguyinhis30s/themepark-website/internal/chatbot"
	"github.com/curiousguyinhis30s/themepark-website/internal/checkout"
	"github.com/curiousguyinhis30s/themepark-website/internal/clock"
	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

// Tab identifies which panel has focus.
type Tab int

const (
	TabChat Tab = iota
	TabTickets
)

type paymentField int

const (
	fieldCardNumber paymentField = iota
	fieldCardExpiry
	fieldCardCvv
	fieldCardHolder
	fieldEmail
	paymentFieldCount
)

var paymentFieldLabels = [paymentFieldCount]string{
	fieldCardNumber: "Card number",
	fieldCardExpiry: "Expiry (MM/YY)",
	fieldCardCvv:    "CVV",
	fieldCardHolder: "Cardholder name",
	fieldEmail:      "Email",
}

// chatChangedMsg reports that the chat session changed outside Update,
// typically because a scheduled reply arrived.
type chatChangedMsg struct{}

// paymentDoneMsg carries the gateway outcome back into Update.
type paymentDoneMsg struct {
	result domain.PurchaseResult
	err    error
}

// Tickets lists the products offered on the select step.
type Tickets interface {
	checkout.TicketLookup
	TicketTypes() []domain.TicketType
}

// Config wires the kiosk to its collaborators.
type Config struct {
	KnowledgeBase *chatbot.KnowledgeBase
	Tickets       Tickets
	Gateway       checkout.Gateway
	Clock         clock.Clock
	Scheduler     clock.Scheduler
	ChatMinDelay  time.Duration
	ChatMaxDelay  time.Duration
	ServiceFee    int
	Logger        *slog.Logger
}

// Model is the bubbletea model. The wizard is only touched from Update;
// the chat session is safe for the scheduler goroutine that delivers
// replies.
type Model struct {
	tab     Tab
	chat    *chat.Session
	changes chan struct{}

	ticketList []domain.TicketType
	wizard     *checkout.Wizard
	gateway    checkout.Gateway
	cursor     int
	field      paymentField

	chatInput textinput.Model
	formInput textinput.Model
	spinner   spinner.Model

	status string
	width  int
	height int
	logger *slog.Logger
}

func New(cfg Config) Model {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	kb := cfg.KnowledgeBase
	if kb == nil {
		kb = chatbot.DefaultKnowledgeBase()
	}

	changes := make(chan struct{}, 1)
	opts := []chat.Option{
		chat.WithOnChange(func() {
			select {
			case changes <- struct{}{}:
			default:
			}
		}),
	}
	if cfg.ChatMaxDelay > 0 {
		opts = append(opts, chat.WithDelay(cfg.ChatMinDelay, cfg.ChatMaxDelay))
	}
	session := chat.NewSession(uuid.NewString(), chatbot.Greeting, kb, cfg.Clock, cfg.Scheduler, opts...)
	session.Open()

	chatInput := textinput.New()
	chatInput.Placeholder = "Ask about hours, tickets, rides..."
	chatInput.CharLimit = 500
	chatInput.Focus()

	formInput := textinput.New()
	formInput.CharLimit = 64

	spin := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		tab:        TabChat,
		chat:       session,
		changes:    changes,
		ticketList: cfg.Tickets.TicketTypes(),
		wizard:     checkout.NewWizard(cfg.Tickets, checkout.WithServiceFee(cfg.ServiceFee)),
		gateway:    cfg.Gateway,
		chatInput:  chatInput,
		formInput:  formInput,
		spinner:    spin,
		logger:     logger,
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitForChange(m.changes))
}

func waitForChange(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		<-ch
		return chatChangedMsg{}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case chatChangedMsg:
		return m, waitForChange(m.changes)

	case paymentDoneMsg:
		m.wizard.CompletePayment(msg.result, msg.err)
		if msg.err != nil {
			m.logger.Warn("kiosk payment failed", "error", msg.err)
			m.status = ""
		} else {
			m.logger.Info("kiosk purchase completed", "order_id", msg.result.OrderID, "total", msg.result.Total)
			m.status = "Purchase complete"
		}
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "tab", "shift+tab":
			m.switchTab()
			return m, nil
		}
		if m.tab == TabChat {
			return m.updateChat(msg)
		}
		return m.updateTickets(msg)
	}
	return m, nil
}

func (m *Model) switchTab() {
	if m.tab == TabChat {
		m.tab = TabTickets
		m.chatInput.Blur()
		m.syncFormInput()
		return
	}
	m.tab = TabChat
	m.formInput.Blur()
	m.chatInput.Focus()
}

func (m Model) updateChat(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+o":
		if m.chat.IsOpen() {
			m.chat.Close()
		} else {
			m.chat.Open()
		}
		return m, nil
	case "f1", "f2", "f3", "f4", "f5", "f6":
		actions := chatbot.QuickActions()
		idx := int(msg.String()[1] - '1')
		if m.chat.IsOpen() && idx < len(actions) {
			m.chat.SendMessage(actions[idx].Query)
		}
		return m, nil
	case "enter":
		if !m.chat.IsOpen() {
			m.chat.Open()
			return m, nil
		}
		if m.chat.SendMessage(m.chatInput.Value()) {
			m.chatInput.Reset()
		}
		return m, nil
	}
	if !m.chat.IsOpen() {
		return m, nil
	}
	var cmd tea.Cmd
	m.chatInput, cmd = m.chatInput.Update(msg)
	return m, cmd
}

func (m Model) updateTickets(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.wizard.Processing() {
		return m, nil
	}
	key := msg.String()
	if key == "ctrl+b" {
		m.status = errText(m.wizard.Back())
		m.syncFormInput()
		return m, nil
	}

	switch m.wizard.Step() {
	case checkout.StepSelect:
		switch key {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.ticketList)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.ticketList) == 0 {
				return m, nil
			}
			if err := m.wizard.SelectTicket(m.ticketList[m.cursor].ID); err != nil {
				m.status = err.Error()
				return m, nil
			}
			m.status = errText(m.wizard.Continue())
			m.syncFormInput()
		}
		return m, nil

	case checkout.StepDetails:
		switch key {
		case "up":
			m.status = errText(m.wizard.SetQuantity(m.wizard.Quantity() + 1))
			return m, nil
		case "down":
			m.status = errText(m.wizard.SetQuantity(m.wizard.Quantity() - 1))
			return m, nil
		case "enter":
			m.status = errText(m.wizard.Continue())
			m.syncFormInput()
			return m, nil
		}
		var cmd tea.Cmd
		m.formInput, cmd = m.formInput.Update(msg)
		_ = m.wizard.SetVisitDate(m.formInput.Value())
		return m, cmd

	case checkout.StepPayment:
		switch key {
		case "up":
			m.field = (m.field + paymentFieldCount - 1) % paymentFieldCount
			m.syncFormInput()
			return m, nil
		case "down":
			m.field = (m.field + 1) % paymentFieldCount
			m.syncFormInput()
			return m, nil
		case "enter":
			if !m.wizard.CanPay() {
				m.field = (m.field + 1) % paymentFieldCount
				m.syncFormInput()
				return m, nil
			}
			cmd := m.pay()
			return m, cmd
		}
		var cmd tea.Cmd
		m.formInput, cmd = m.formInput.Update(msg)
		m.applyPaymentField(m.formInput.Value())
		return m, cmd

	case checkout.StepSuccess:
		if key == "enter" {
			m.status = errText(m.wizard.Reset())
			m.cursor = 0
			m.field = fieldCardNumber
			m.syncFormInput()
		}
	}
	return m, nil
}

// pay starts the charge and returns the command that completes it.
func (m *Model) pay() tea.Cmd {
	req, err := m.wizard.BeginPayment()
	if err != nil {
		m.status = err.Error()
		return nil
	}
	m.status = "Processing payment..."
	gw := m.gateway
	return func() tea.Msg {
		res, err := gw.Purchase(context.Background(), req)
		return paymentDoneMsg{result: res, err: err}
	}
}

func (m *Model) applyPaymentField(value string) {
	setters := [paymentFieldCount]func(string) error{
		fieldCardNumber: m.wizard.SetCardNumber,
		fieldCardExpiry: m.wizard.SetCardExpiry,
		fieldCardCvv:    m.wizard.SetCardCvv,
		fieldCardHolder: m.wizard.SetCardHolder,
		fieldEmail:      m.wizard.SetEmail,
	}
	if err := setters[m.field](value); err != nil {
		m.status = err.Error()
		return
	}
	// The wizard reformats card number and expiry as they are typed.
	form := m.wizard.Payment()
	if formatted := *paymentFieldPtr(&form, m.field); formatted != value {
		m.formInput.SetValue(formatted)
	}
}

func paymentFieldPtr(f *domain.PaymentForm, field paymentField) *string {
	switch field {
	case fieldCardExpiry:
		return &f.CardExpiry
	case fieldCardCvv:
		return &f.CardCvv
	case fieldCardHolder:
		return &f.CardHolder
	case fieldEmail:
		return &f.Email
	default:
		return &f.CardNumber
	}
}

// syncFormInput loads the form input with the value of whatever the
// current step edits and focuses it when there is something to edit.
func (m *Model) syncFormInput() {
	if m.tab != TabTickets {
		return
	}
	switch m.wizard.Step() {
	case checkout.StepDetails:
		m.formInput.Placeholder = "YYYY-MM-DD"
		m.formInput.EchoMode = textinput.EchoNormal
		m.formInput.SetValue(m.wizard.VisitDate())
		m.formInput.Focus()
	case checkout.StepPayment:
		m.formInput.Placeholder = paymentFieldLabels[m.field]
		m.formInput.EchoMode = textinput.EchoNormal
		if m.field == fieldCardCvv {
			m.formInput.EchoMode = textinput.EchoPassword
		}
		form := m.wizard.Payment()
		m.formInput.SetValue(*paymentFieldPtr(&form, m.field))
		m.formInput.Focus()
	default:
		m.formInput.Blur()
		m.formInput.SetValue("")
	}
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
