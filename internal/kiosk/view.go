package kiosk

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/curiousguyinhis30s/themepark-website/internal/chatbot"
	"github.com/curiousguyinhis30s/themepark-website/internal/checkout"
	"github.com/curiousguyinhis30s/themepark-website/internal/domain"
)

var (
	accent = lipgloss.Color("#0891B2")
	muted  = lipgloss.Color("#6B7280")
	danger = lipgloss.Color("#DC2626")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)

	activeTabStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).
			Background(accent).
			Padding(0, 2)
	tabStyle = lipgloss.NewStyle().Foreground(muted).Padding(0, 2)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 1)

	visitorStyle   = lipgloss.NewStyle().Foreground(accent).Bold(true)
	assistantStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#9333EA")).Bold(true)
	helpStyle      = lipgloss.NewStyle().Foreground(muted)
	errorStyle     = lipgloss.NewStyle().Foreground(danger)
	selectedStyle  = lipgloss.NewStyle().Foreground(accent).Bold(true)
)

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Theme Park Kiosk"))
	b.WriteString("\n\n")
	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	var body, help string
	if m.tab == TabChat {
		body, help = m.renderChat()
	} else {
		body, help = m.renderTickets()
	}

	panel := panelStyle
	if m.width > 4 {
		panel = panel.Width(m.width - 4)
	}
	b.WriteString(panel.Render(body))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(help))
	return b.String()
}

func (m Model) renderTabs() string {
	labels := []string{"Chat", "Tickets"}
	out := make([]string, len(labels))
	for i, label := range labels {
		if Tab(i) == m.tab {
			out[i] = activeTabStyle.Render(label)
		} else {
			out[i] = tabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, out...)
}

func (m Model) renderChat() (string, string) {
	snap := m.chat.Snapshot()
	if !snap.Open {
		return "Questions? Our assistant is here to help.\nPress enter to start chatting.",
			"enter open chat • tab tickets • ctrl+c quit"
	}

	var b strings.Builder
	for _, msg := range snap.Messages {
		if msg.Role == domain.ChatRoleUser {
			b.WriteString(visitorStyle.Render("You"))
		} else {
			b.WriteString(assistantStyle.Render("Park Assistant"))
		}
		b.WriteString(helpStyle.Render("  " + msg.Timestamp.Local().Format("15:04")))
		b.WriteString("\n")
		b.WriteString(msg.Content)
		b.WriteString("\n\n")
	}
	if snap.Typing {
		b.WriteString(m.spinner.View())
		b.WriteString(" typing...\n\n")
	}

	actions := chatbot.QuickActions()
	quick := make([]string, 0, len(actions))
	for i, a := range actions {
		quick = append(quick, fmt.Sprintf("f%d %s", i+1, a.Label))
	}
	b.WriteString(helpStyle.Render(strings.Join(quick, " • ")))
	b.WriteString("\n")
	b.WriteString(m.chatInput.View())

	return b.String(), "enter send • ctrl+o close chat • tab tickets • ctrl+c quit"
}

func (m Model) renderTickets() (string, string) {
	st := m.wizard.State()
	var b strings.Builder
	b.WriteString(renderSteps(st.Step))
	b.WriteString("\n\n")

	help := "tab chat • ctrl+c quit"
	switch st.Step {
	case checkout.StepSelect:
		for i, t := range m.ticketList {
			line := fmt.Sprintf("%-14s %s", t.Name, checkout.FormatRM(t.Price))
			if i == m.cursor {
				b.WriteString(selectedStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
			if i == m.cursor && t.Description != "" {
				b.WriteString(helpStyle.Render("    " + t.Description))
				b.WriteString("\n")
			}
		}
		help = "↑/↓ choose • enter continue • " + help

	case checkout.StepDetails:
		ticket, _ := m.wizard.SelectedTicket()
		fmt.Fprintf(&b, "Ticket:     %s\n", ticket.Name)
		fmt.Fprintf(&b, "Quantity:   %d\n", st.Quantity)
		b.WriteString("Visit date: ")
		b.WriteString(m.formInput.View())
		b.WriteString("\n\n")
		b.WriteString(renderTotals(st.Totals))
		help = "↑/↓ quantity • enter continue • ctrl+b back • " + help

	case checkout.StepPayment:
		form := st.Payment
		for f := paymentField(0); f < paymentFieldCount; f++ {
			label := fmt.Sprintf("%-16s", paymentFieldLabels[f])
			if f == m.field {
				b.WriteString(selectedStyle.Render(label) + " " + m.formInput.View())
			} else {
				value := *paymentFieldPtr(&form, f)
				if f == fieldCardCvv && value != "" {
					value = strings.Repeat("•", len(value))
				}
				b.WriteString(label + " " + value)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(renderTotals(st.Totals))
		if st.Processing {
			b.WriteString("\n" + m.spinner.View() + " Processing payment...")
		}
		if st.PaymentError != "" {
			b.WriteString("\n" + errorStyle.Render(st.PaymentError))
		}
		help = "↑/↓ field • enter pay • ctrl+b back • " + help

	case checkout.StepSuccess:
		if r := st.Result; r != nil {
			b.WriteString(titleStyle.Render("Thank you for your purchase!"))
			b.WriteString("\n\n")
			fmt.Fprintf(&b, "Confirmation: %s\n", r.ConfirmationCode)
			fmt.Fprintf(&b, "Order:        %s\n", r.OrderID)
			fmt.Fprintf(&b, "Tickets:      %d x %s\n", r.Quantity, r.TicketName)
			fmt.Fprintf(&b, "Visit date:   %s\n", r.VisitDate)
			fmt.Fprintf(&b, "Total paid:   %s\n", checkout.FormatRM(r.Total))
			fmt.Fprintf(&b, "\nTickets have been sent to %s.", r.Email)
		}
		help = "enter buy more tickets • " + help
	}

	if m.status != "" && !st.Processing {
		b.WriteString("\n")
		b.WriteString(helpStyle.Render(m.status))
	}
	return b.String(), help
}

func renderSteps(current checkout.Step) string {
	steps := []struct {
		step  checkout.Step
		label string
	}{
		{checkout.StepSelect, "1 Select"},
		{checkout.StepDetails, "2 Details"},
		{checkout.StepPayment, "3 Payment"},
		{checkout.StepSuccess, "4 Done"},
	}
	out := make([]string, len(steps))
	for i, s := range steps {
		if s.step == current {
			out[i] = selectedStyle.Render(s.label)
		} else {
			out[i] = helpStyle.Render(s.label)
		}
	}
	return strings.Join(out, helpStyle.Render(" › "))
}

func renderTotals(t checkout.Totals) string {
	return fmt.Sprintf("Subtotal     %s\nService fee  %s\nTotal        %s\n",
		checkout.FormatRM(t.Subtotal), checkout.FormatRM(t.ServiceFee), titleStyle.Render(checkout.FormatRM(t.Total)))
}
