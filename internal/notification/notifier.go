// Package notification reacts to domain events with transactional email:
// hot-lead alerts to the office, proposal and invoice mail to customers,
// and crew reminders.
package notification

import (
	"context"
	"strings"

	"clearing_ops_backend/internal/email"
	"clearing_ops_backend/internal/events"
	"clearing_ops_backend/platform/config"
	"clearing_ops_backend/platform/logger"
)

// hotGrades are the lead grades worth interrupting the office for.
var hotGrades = map[string]bool{"A": true, "B": true}

// Notifier fans domain events out to email.
type Notifier struct {
	sender  email.Sender
	baseURL string
	office  string
	log     *logger.Logger
}

// New creates a new notifier.
func New(sender email.Sender, cfg config.NotificationConfig, log *logger.Logger) *Notifier {
	return &Notifier{
		sender:  sender,
		baseURL: strings.TrimRight(cfg.GetAppBaseURL(), "/"),
		office:  cfg.GetOfficeEmail(),
		log:     log,
	}
}

// RegisterHandlers subscribes the notifier to the events it emails about.
func (n *Notifier) RegisterHandlers(bus events.Bus) {
	bus.Subscribe(events.LeadCreated{}.EventName(), events.HandlerFunc(n.onLeadCreated))
	bus.Subscribe(events.LeadFollowUpDue{}.EventName(), events.HandlerFunc(n.onLeadFollowUpDue))
	bus.Subscribe(events.QuoteSent{}.EventName(), events.HandlerFunc(n.onQuoteSent))
	bus.Subscribe(events.QuoteAccepted{}.EventName(), events.HandlerFunc(n.onQuoteAccepted))
	bus.Subscribe(events.QuoteDeclined{}.EventName(), events.HandlerFunc(n.onQuoteDeclined))
	bus.Subscribe(events.InvoiceIssued{}.EventName(), events.HandlerFunc(n.onInvoiceIssued))
	bus.Subscribe(events.WorkOrderReminderDue{}.EventName(), events.HandlerFunc(n.onWorkOrderReminderDue))
}

// onLeadCreated alerts the office about hot public leads. Staff-entered
// leads and cold submissions stay quiet.
func (n *Notifier) onLeadCreated(ctx context.Context, event events.Event) error {
	created, ok := event.(events.LeadCreated)
	if !ok || !created.PublicIntake || !hotGrades[created.Grade] || n.office == "" {
		return nil
	}

	html, err := email.Render("hot_lead.html", map[string]interface{}{
		"Name":   created.Name,
		"Phone":  created.Phone,
		"Email":  created.Email,
		"Source": created.Source,
		"Grade":  created.Grade,
		"Score":  created.Score,
	})
	if err != nil {
		return err
	}

	return n.sender.Send(ctx, email.Message{
		To:      n.office,
		Subject: "Hot lead: " + created.Name,
		HTML:    html,
	})
}

func (n *Notifier) onLeadFollowUpDue(ctx context.Context, event events.Event) error {
	due, ok := event.(events.LeadFollowUpDue)
	if !ok || n.office == "" {
		return nil
	}

	html, err := email.Render("lead_followup.html", map[string]interface{}{
		"Name":  due.Name,
		"Phone": due.Phone,
		"Grade": due.Grade,
	})
	if err != nil {
		return err
	}

	return n.sender.Send(ctx, email.Message{
		To:      n.office,
		Subject: "Follow-up due: " + due.Name,
		HTML:    html,
	})
}

func (n *Notifier) onQuoteSent(ctx context.Context, event events.Event) error {
	sent, ok := event.(events.QuoteSent)
	if !ok || sent.CustomerEmail == "" {
		return nil
	}

	html, err := email.Render("proposal.html", map[string]interface{}{
		"CustomerName": sent.CustomerName,
		"QuoteNumber":  sent.QuoteNumber,
		"Total":        sent.Total,
		"Deposit":      sent.Deposit,
		"ProposalURL":  n.baseURL + "/proposals/" + sent.PublicToken,
	})
	if err != nil {
		return err
	}

	return n.sender.Send(ctx, email.Message{
		To:      sent.CustomerEmail,
		ToName:  sent.CustomerName,
		Subject: "Your land clearing proposal " + sent.QuoteNumber,
		HTML:    html,
	})
}

func (n *Notifier) onQuoteAccepted(ctx context.Context, event events.Event) error {
	accepted, ok := event.(events.QuoteAccepted)
	if !ok || accepted.CustomerEmail == "" {
		return nil
	}

	html, err := email.Render("quote_accepted.html", map[string]interface{}{
		"CustomerName": accepted.CustomerName,
		"QuoteNumber":  accepted.QuoteNumber,
		"Total":        accepted.Total,
		"Deposit":      accepted.Deposit,
	})
	if err != nil {
		return err
	}

	return n.sender.Send(ctx, email.Message{
		To:      accepted.CustomerEmail,
		ToName:  accepted.CustomerName,
		Subject: "Proposal " + accepted.QuoteNumber + " accepted",
		HTML:    html,
	})
}

// onQuoteDeclined tells the office, not the customer.
func (n *Notifier) onQuoteDeclined(ctx context.Context, event events.Event) error {
	declined, ok := event.(events.QuoteDeclined)
	if !ok || n.office == "" {
		return nil
	}

	html, err := email.Render("quote_declined.html", map[string]interface{}{
		"CustomerName": declined.CustomerName,
		"QuoteNumber":  declined.QuoteNumber,
		"Reason":       declined.Reason,
	})
	if err != nil {
		return err
	}

	return n.sender.Send(ctx, email.Message{
		To:      n.office,
		Subject: "Proposal " + declined.QuoteNumber + " declined",
		HTML:    html,
	})
}

func (n *Notifier) onInvoiceIssued(ctx context.Context, event events.Event) error {
	issued, ok := event.(events.InvoiceIssued)
	if !ok || issued.CustomerEmail == "" {
		return nil
	}

	html, err := email.Render("invoice.html", map[string]interface{}{
		"CustomerName":  issued.CustomerName,
		"InvoiceNumber": issued.InvoiceNumber,
		"Kind":          issued.Kind,
		"Amount":        issued.Amount,
	})
	if err != nil {
		return err
	}

	return n.sender.Send(ctx, email.Message{
		To:      issued.CustomerEmail,
		ToName:  issued.CustomerName,
		Subject: "Invoice " + issued.InvoiceNumber,
		HTML:    html,
	})
}

func (n *Notifier) onWorkOrderReminderDue(ctx context.Context, event events.Event) error {
	due, ok := event.(events.WorkOrderReminderDue)
	if !ok || n.office == "" {
		return nil
	}

	html, err := email.Render("workorder_reminder.html", map[string]interface{}{
		"CustomerName": due.CustomerName,
		"SiteAddress":  due.SiteAddress,
		"StartDate":    due.StartDate.Format("Monday, Jan 2 2006"),
	})
	if err != nil {
		return err
	}

	return n.sender.Send(ctx, email.Message{
		To:      n.office,
		Subject: "Job starts tomorrow: " + due.CustomerName,
		HTML:    html,
	})
}
