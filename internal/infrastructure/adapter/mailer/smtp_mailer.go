package mailer

import (
	"context"
	"fmt"
	"net/smtp"

	coreport "github.com/rafaelmeira/boatvest/internal/domain/port/core"
	"github.com/rafaelmeira/boatvest/internal/domain/port/gateway"
)

// Config holds SMTP connection settings and the payout mailbox
type Config struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	From     string `mapstructure:"from"`
	To       string `mapstructure:"to"`
}

// SMTPMailer implements Mailer over plain SMTP
type SMTPMailer struct {
	config Config
	logger coreport.Logger
}

// NewSMTPMailer creates a mailer
func NewSMTPMailer(config Config, logger coreport.Logger) gateway.Mailer {
	return &SMTPMailer{config: config, logger: logger}
}

// SendWithdrawalNotice mails the payout mailbox with the fields operators
// copy into their PIX transfer
func (m *SMTPMailer) SendWithdrawalNotice(_ context.Context, notice gateway.WithdrawalNotice) error {
	subject := fmt.Sprintf("Novo saque solicitado - %s", notice.Name)
	body := fmt.Sprintf("Nome: %s\nTelefone: %s\nPIX: %s\nValor: R$ %s\n",
		notice.Name, notice.Phone, notice.PixKey, notice.Amount)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: %s\r\nContent-Type: text/plain; charset=UTF-8\r\n\r\n%s",
		m.config.From, m.config.To, subject, body)

	addr := fmt.Sprintf("%s:%d", m.config.Host, m.config.Port)
	auth := smtp.PlainAuth("", m.config.Username, m.config.Password, m.config.Host)

	if err := smtp.SendMail(addr, auth, m.config.From, []string{m.config.To}, []byte(msg)); err != nil {
		m.logger.Error("Failed to send withdrawal notice", map[string]any{
			"to":    m.config.To,
			"error": err.Error(),
		})
		return err
	}

	m.logger.Info("Withdrawal notice sent", map[string]any{
		"to": m.config.To,
	})
	return nil
}
