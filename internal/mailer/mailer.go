// Package mailer sends the API's transactional emails over SMTP:
// activation codes at registration, reservation confirmations and
// reservation report tables. Delivery is best-effort; callers log and
// ignore failures.
package mailer

import (
	"fmt"
	"net/smtp"
	"strings"

	"github.com/iliyamo/travel-booking/internal/config"
)

// Mailer holds the SMTP endpoint and credentials. A Mailer with an
// empty host is disabled and drops messages after logging.
type Mailer struct {
	host string
	port string
	user string
	pass string
	from string
}

// New builds a Mailer from application configuration.
func New(cfg config.Config) *Mailer {
	from := cfg.SMTPFrom
	if from == "" {
		from = "no-reply@viagens.com"
	}
	return &Mailer{
		host: cfg.SMTPHost,
		port: cfg.SMTPPort,
		user: cfg.SMTPUser,
		pass: cfg.SMTPPass,
		from: from,
	}
}

// Enabled reports whether an SMTP host is configured.
func (m *Mailer) Enabled() bool { return m.host != "" }

// Send delivers one HTML message. It returns an error when the mailer
// is disabled so the caller can log the dropped message.
func (m *Mailer) Send(to, subject, htmlBody string) error {
	if !m.Enabled() {
		return fmt.Errorf("mailer disabled: no SMTP host configured")
	}
	var msg strings.Builder
	msg.WriteString("From: " + m.from + "\r\n")
	msg.WriteString("To: " + to + "\r\n")
	msg.WriteString("Subject: " + subject + "\r\n")
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/html; charset=UTF-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(htmlBody)

	auth := smtp.PlainAuth("", m.user, m.pass, m.host)
	return smtp.SendMail(m.host+":"+m.port, auth, m.from, []string{to}, []byte(msg.String()))
}

// ActivationBody renders the activation-code message.
func ActivationBody(codigo string) string {
	return fmt.Sprintf("<p>Seu código é: <strong>%s</strong></p>", codigo)
}

// ConfirmationBody renders the reservation confirmation message.
func ConfirmationBody(nome, destino, dataInicio, dataFim, status string, preco float64) string {
	return fmt.Sprintf(`
    <h2>Confirmação da Reserva</h2>
    <p>Parabéns %s, sua reserva para %s de %s até %s foi confirmada!</p>
    <p>Status do pagamento: %s</p>
    <p>Valor: R$ %.2f</p>
  `, nome, destino, dataInicio, dataFim, status, preco)
}

// ReportLine is one reservation row in a report table.
type ReportLine struct {
	Destino    string
	DataInicio string
	DataFim    string
	Preco      float64
	Status     string
}

// ReportBody renders the reservation report table for a client,
// including a total of all reservation prices.
func ReportBody(nome string, linhas []ReportLine) string {
	var b strings.Builder
	b.WriteString(`<html><body style="font-family: Arial, sans-serif;">`)
	b.WriteString("<h2>Relatório de Reservas de Viagem</h2>")
	b.WriteString("<h3>Cliente: " + nome + "</h3>")
	b.WriteString(`<table border="1" cellpadding="8" cellspacing="0" style="border-collapse: collapse; width: 100%;">`)
	b.WriteString("<thead><tr><th>Destino</th><th>Data de Início</th><th>Data de Fim</th><th>Valor R$</th><th>Status do Pagamento</th></tr></thead><tbody>")
	var total float64
	for _, l := range linhas {
		total += l.Preco
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%s</td><td>%s</td><td style=\"text-align: right;\">%.2f</td><td>%s</td></tr>",
			l.Destino, l.DataInicio, l.DataFim, l.Preco, l.Status)
	}
	fmt.Fprintf(&b, `<tr style="font-weight: bold;"><td colspan="3" style="text-align: right;">Total Reservas:</td><td style="text-align: right;">R$ %.2f</td><td></td></tr>`, total)
	b.WriteString("</tbody></table></body></html>")
	return b.String()
}
