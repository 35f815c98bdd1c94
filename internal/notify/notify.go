// Package notify delivers outgoing mail for the back office: payment
// reminder summaries and new-booking alerts. When SMTP is disabled the
// rendered messages are logged instead, so the notification endpoints stay
// usable in development.
package notify

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"go.uber.org/zap"
	"gopkg.in/gomail.v2"

	"github.com/yallarent/yallarent/config"
	"github.com/yallarent/yallarent/internal/domain"
)

// ErrDisabled is returned when SMTP delivery is turned off; callers report
// the notification as skipped rather than failed.
var ErrDisabled = errors.New("smtp delivery disabled")

type Notifier struct {
	cfg config.SmtpConfig
}

func New(cfg config.SmtpConfig) *Notifier {
	return &Notifier{cfg: cfg}
}

func (n *Notifier) dialer() *gomail.Dialer {
	return gomail.NewDialer(n.cfg.Host, n.cfg.Port, n.cfg.Username, n.cfg.Password)
}

func (n *Notifier) send(to, subject, body string) error {
	if !n.cfg.Enabled {
		zap.S().Infof("smtp disabled, skipping mail to %s: %s", to, subject)
		return ErrDisabled
	}
	m := gomail.NewMessage()
	m.SetHeader("From", n.cfg.From)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)
	if err := n.dialer().DialAndSend(m); err != nil {
		return errors.Wrapf(err, "send mail to %s", to)
	}
	return nil
}

// RenderReminder renders the persisted reminder template for one customer,
// appending the customer line the admin reads out when calling.
func RenderReminder(template string, c domain.Customer, balance float64) string {
	return fmt.Sprintf("%s\n\n%s (%s): %.0f AED", template, c.Name, c.Phone, balance)
}

// SendReminderSummary mails the back office one summary listing every
// customer on the reminder list with their rendered message.
func (n *Notifier) SendReminderSummary(to string, rendered []string) error {
	if len(rendered) == 0 {
		return nil
	}
	body := strings.Join(rendered, "\n----\n")
	return n.send(to, "Payment reminders / تذكير بالدفع", body)
}

// SendBookingAlert mails the site contact address about a newly received
// booking. Best effort; callers log and move on.
func (n *Notifier) SendBookingAlert(to string, b domain.Booking) error {
	body := fmt.Sprintf(
		"New booking %s\nCar: %s / %s\nName: %s\nPhone: %s\nPickup: %s at %s\nDropoff: %s at %s\nCreated: %s\n",
		b.ID, b.CarName.En, b.CarName.Ar, b.FullName, b.PhoneNumber,
		b.PickupLocation, b.PickupTime, b.DropoffLocation, b.DropoffTime, b.CreatedAt)
	return n.send(to, fmt.Sprintf("New booking %s", b.ID), body)
}
