package mailer

import (
	"fmt"
	"strings"

	"app/internal/usecase"

	"github.com/sirupsen/logrus"
	"gopkg.in/gomail.v2"
)

// SMTPで(subject, body, from, to)を送るだけの薄い口。
type SMTPMailer struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewSMTPMailer(host string, port int, username string, password string, from string) *SMTPMailer {
	return &SMTPMailer{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

// Send はメールを1通送る。hostが未設定ならログだけ残して成功扱い。
func (m *SMTPMailer) Send(subject string, body string, to string) error {
	if m.host == "" {
		logrus.WithFields(logrus.Fields{
			"subject": subject,
			"to":      to,
		}).Info("smtp not configured, skipping mail")
		return nil
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/plain", body)

	d := gomail.NewDialer(m.host, m.port, m.username, m.password)
	return d.DialAndSend(msg)
}

// 注文確定メールを運用者宛に送る。
type OrderMailer struct {
	mailer *SMTPMailer
	to     string
}

func NewOrderMailer(mailer *SMTPMailer, to string) *OrderMailer {
	return &OrderMailer{mailer: mailer, to: to}
}

// usecase.OrderNotifier実装。
func (m *OrderMailer) OrderPlaced(o usecase.OrderOutput) error {
	subject := fmt.Sprintf("New order #%d from %s", o.ID, o.FullName)

	var b strings.Builder
	fmt.Fprintf(&b, "Order #%d\n", o.ID)
	fmt.Fprintf(&b, "Name: %s\n", o.FullName)
	fmt.Fprintf(&b, "Phone: %s\n", o.Phone)
	fmt.Fprintf(&b, "Address: %s, %s, %s %s\n", o.Address, o.City, o.Country, o.ZipCode)
	fmt.Fprintf(&b, "Payment: %s\n", o.PaymentMethod)
	if o.OrderNotes != "" {
		fmt.Fprintf(&b, "Notes: %s\n", o.OrderNotes)
	}
	b.WriteString("\nItems:\n")
	for _, it := range o.Items {
		fmt.Fprintf(&b, "  %d x %s @ %s\n", it.Quantity, it.ProductName, it.Price.StringFixed(3))
	}
	fmt.Fprintf(&b, "\nTotal: %s\n", o.TotalAmount.StringFixed(3))

	return m.mailer.Send(subject, b.String(), m.to)
}
