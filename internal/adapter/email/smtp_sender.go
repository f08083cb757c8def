package email

import (
	"fmt"

	"gopkg.in/gomail.v2"

	"github.com/FrFaber2025/school-uniform-exchange/internal/domain/money"
	"github.com/FrFaber2025/school-uniform-exchange/internal/platform/logger"
)

// Sender delivers transaction lifecycle notifications.
type Sender interface {
	SendDispatchNotice(toEmail, listingTitle string) error
	SendReceiptNotice(toEmail, listingTitle string, sellerReceivesPence int64) error
}

type SMTPSender struct {
	host     string
	port     int
	from     string
	password string
	logger   logger.Logger
}

func NewSMTPSender(host string, port int, from, password string, log logger.Logger) *SMTPSender {
	return &SMTPSender{host: host, port: port, from: from, password: password, logger: log}
}

func (s *SMTPSender) send(to, subject, body string) error {
	if s.from == "" {
		// mail is optional in local setups
		s.logger.Debugf("smtp sender not configured, dropping mail to %s: %s", to, subject)
		return nil
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.from, s.password)
	return d.DialAndSend(m)
}

func dispatchBody(listingTitle string) string {
	return fmt.Sprintf("The seller has dispatched '%s'. Please confirm receipt once it arrives.", listingTitle)
}

func receiptBody(listingTitle string, sellerReceivesPence int64) string {
	return fmt.Sprintf("The buyer has confirmed receipt of '%s'. £%.2f will be released to you shortly.",
		listingTitle, money.ToDisplayUnits(sellerReceivesPence))
}

func (s *SMTPSender) SendDispatchNotice(toEmail, listingTitle string) error {
	return s.send(toEmail, "Your item has been dispatched", dispatchBody(listingTitle))
}

func (s *SMTPSender) SendReceiptNotice(toEmail, listingTitle string, sellerReceivesPence int64) error {
	return s.send(toEmail, "Your item has been received", receiptBody(listingTitle, sellerReceivesPence))
}
