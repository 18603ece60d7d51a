package notify

import (
	"fmt"
	"html"
	"strings"

	"github.com/sextosistema/agency-platform/internal/leads"
)

// Template builders are pure: they map a validated lead to ready-to-send
// messages. Optional fields are omitted from the output entirely, not
// rendered empty, so the markup stays well formed whatever the input.

// AdminNotificationEmail builds the internal "new lead" notification.
func AdminNotificationEmail(lead *leads.Lead, adminEmail string) Email {
	company := lead.Company
	if company == "" {
		company = "Sin empresa"
	}

	return Email{
		To:      []string{adminEmail},
		Subject: fmt.Sprintf("🚀 Nuevo Lead: %s - %s", lead.Name, company),
		HTML:    adminNotificationHTML(lead),
		Text:    adminNotificationText(lead),
		ReplyTo: lead.Email,
	}
}

// ConfirmationEmail builds the receipt sent back to the submitter.
func ConfirmationEmail(lead *leads.Lead, to, siteURL string) Email {
	return Email{
		To:      []string{to},
		Subject: "¡Gracias por contactar a Sexto Sistema! 🚀",
		HTML:    confirmationHTML(lead, siteURL),
		Text:    confirmationText(lead),
	}
}

func adminNotificationHTML(lead *leads.Lead) string {
	var rows strings.Builder
	rows.WriteString(fieldRowHTML("Nombre", lead.Name))
	rows.WriteString(fieldRowHTML("Email", lead.Email))
	rows.WriteString(fieldRowHTML("Teléfono", lead.Phone))
	rows.WriteString(fieldRowHTML("Empresa", lead.Company))
	rows.WriteString(fieldRowHTML("Servicio de Interés", lead.Service))
	rows.WriteString(fieldRowHTML("Presupuesto", lead.Budget))

	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px; background: #09090B; color: #E4E4E7; padding: 32px; border-radius: 16px;">
<h2 style="color: #22D3EE;">🚀 Nuevo Lead Recibido</h2>
<table style="border-collapse: collapse; width: 100%%; margin: 20px 0;">
%s</table>
<p style="color: #06B6D4; font-size: 12px; text-transform: uppercase; letter-spacing: 1px; margin-bottom: 4px;">Mensaje</p>
<p style="white-space: pre-wrap; line-height: 1.6;">%s</p>
<p style="margin-top: 24px;"><a href="mailto:%s" style="display: inline-block; background: #06B6D4; color: #FFFFFF; padding: 12px 24px; border-radius: 8px; text-decoration: none; font-weight: 600;">Responder a %s</a></p>
<p style="color: #71717A; font-size: 12px; margin-top: 24px;">Sexto Sistema - Agencia de Inteligencia Artificial. Este email fue generado automáticamente desde tu landing page.</p>
</div>`,
		rows.String(),
		html.EscapeString(lead.Message),
		html.EscapeString(lead.Email),
		html.EscapeString(lead.Name),
	)
}

func adminNotificationText(lead *leads.Lead) string {
	var b strings.Builder
	b.WriteString("Nuevo Lead Recibido\n\n")
	b.WriteString(fieldLineText("Nombre", lead.Name))
	b.WriteString(fieldLineText("Email", lead.Email))
	b.WriteString(fieldLineText("Teléfono", lead.Phone))
	b.WriteString(fieldLineText("Empresa", lead.Company))
	b.WriteString(fieldLineText("Servicio", lead.Service))
	b.WriteString(fieldLineText("Presupuesto", lead.Budget))
	b.WriteString("\nMensaje:\n")
	b.WriteString(lead.Message)
	b.WriteString("\n")
	return b.String()
}

func confirmationHTML(lead *leads.Lead, siteURL string) string {
	return fmt.Sprintf(`<div style="font-family: sans-serif; max-width: 600px; background: #09090B; color: #E4E4E7; padding: 32px; border-radius: 16px;">
<h2 style="color: #22D3EE;">¡Gracias por contactarnos! 🎉</h2>
<p style="line-height: 1.6;">Hola <strong style="color: #FFFFFF;">%s</strong>,</p>
<p style="line-height: 1.6;">Hemos recibido tu mensaje y nuestro equipo lo está revisando. Nos pondremos en contacto contigo en menos de 24 horas.</p>
<div style="background: rgba(0, 0, 0, 0.3); border-radius: 8px; padding: 16px; margin: 20px 0;">
<p style="color: #06B6D4; font-size: 12px; text-transform: uppercase; letter-spacing: 1px; margin: 0 0 8px 0;">Tu mensaje</p>
<p style="white-space: pre-wrap; color: #A1A1AA; margin: 0;">%s</p>
</div>
<p style="margin-top: 24px;"><a href="%s" style="display: inline-block; background: #06B6D4; color: #FFFFFF; padding: 12px 24px; border-radius: 8px; text-decoration: none; font-weight: 600;">Visitar Website</a></p>
<p style="color: #71717A; font-size: 12px; margin-top: 24px;">Sexto Sistema - Agencia de Inteligencia Artificial. Soluciones simples a tus necesidades complejas.</p>
</div>`,
		html.EscapeString(lead.Name),
		html.EscapeString(lead.Message),
		html.EscapeString(siteURL),
	)
}

func confirmationText(lead *leads.Lead) string {
	return fmt.Sprintf(`¡Gracias por contactarnos!

Hola %s,

Hemos recibido tu mensaje y nuestro equipo lo está revisando. Nos pondremos en contacto contigo en menos de 24 horas.

Tu mensaje:
%s

Sexto Sistema - Agencia de Inteligencia Artificial
`, lead.Name, lead.Message)
}

// fieldRowHTML renders one labeled table row, or nothing when the value is
// empty.
func fieldRowHTML(label, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf(`<tr><td style="padding: 8px; border-bottom: 1px solid #27272A; color: #06B6D4; font-size: 12px; text-transform: uppercase;">%s</td><td style="padding: 8px; border-bottom: 1px solid #27272A; color: #FFFFFF;">%s</td></tr>
`, html.EscapeString(label), html.EscapeString(value))
}

func fieldLineText(label, value string) string {
	if value == "" {
		return ""
	}
	return fmt.Sprintf("%s: %s\n", label, value)
}
