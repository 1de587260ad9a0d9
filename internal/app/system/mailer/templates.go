// internal/app/system/mailer/templates.go
package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/jawahirullah/portal/internal/app/system/htmlsanitize"
)

// ContactReplyData holds data for the contact reply e-mail.
type ContactReplyData struct {
	SiteName        string
	Name            string
	Subject         string
	OriginalMessage string
	Reply           string
	SentAt          time.Time
}

// BuildContactReply creates the reply to a contact form message with both
// HTML and text bodies.
func BuildContactReply(to string, data ContactReplyData) Email {
	return Email{
		To:       to,
		Subject:  fmt.Sprintf("Re: %s", data.Subject),
		TextBody: buildContactReplyText(data),
		HTMLBody: buildContactReplyHTML(data),
	}
}

func buildContactReplyText(data ContactReplyData) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "Dear %s,\n\n", data.Name)
	buf.WriteString(data.Reply + "\n\n")
	fmt.Fprintf(&buf, "%s\n\n", data.SiteName)
	buf.WriteString("---- Your message ----\n")
	buf.WriteString(data.OriginalMessage + "\n")
	return buf.String()
}

type contactReplyView struct {
	ContactReplyData
	ReplyHTML    template.HTML
	OriginalHTML template.HTML
	Date         string
}

var contactReplyTmpl = template.Must(template.New("contact_reply").Parse(contactReplyHTMLTemplate))

func buildContactReplyHTML(data ContactReplyData) string {
	v := contactReplyView{
		ContactReplyData: data,
		ReplyHTML:        template.HTML(htmlsanitize.PlainTextToHTML(data.Reply)),
		OriginalHTML:     template.HTML(htmlsanitize.PlainTextToHTML(data.OriginalMessage)),
	}
	if !data.SentAt.IsZero() {
		v.Date = data.SentAt.Format("2 January 2006")
	}
	var buf bytes.Buffer
	_ = contactReplyTmpl.Execute(&buf, v)
	return buf.String()
}

const contactReplyHTMLTemplate = `<!DOCTYPE html>
<html>
<head>
  <meta charset="UTF-8">
  <meta name="viewport" content="width=device-width, initial-scale=1.0">
  <title>{{.Subject}}</title>
</head>
<body style="margin: 0; padding: 0; font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, 'Noto Sans Tamil', Arial, sans-serif; background-color: #f3f4f6;">
  <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="background-color: #f3f4f6;">
    <tr>
      <td align="center" style="padding: 40px 20px;">
        <table role="presentation" width="100%" cellspacing="0" cellpadding="0" style="max-width: 560px; background-color: #ffffff; border-radius: 8px; box-shadow: 0 2px 4px rgba(0, 0, 0, 0.1);">
          <tr>
            <td style="padding: 32px 32px 24px; border-bottom: 1px solid #e5e7eb;">
              <h1 style="margin: 0; font-size: 22px; font-weight: 600; color: #1e3a8a;">{{.SiteName}}</h1>
              {{if .Date}}<p style="margin: 8px 0 0; font-size: 13px; color: #6b7280;">{{.Date}}</p>{{end}}
            </td>
          </tr>

          <tr>
            <td style="padding: 32px; font-size: 16px; color: #374151; line-height: 1.6;">
              <p style="margin: 0 0 16px;">Dear {{.Name}},</p>
              {{.ReplyHTML}}
            </td>
          </tr>

          <tr>
            <td style="padding: 24px 32px; background-color: #f9fafb; border-top: 1px solid #e5e7eb; border-radius: 0 0 8px 8px;">
              <p style="margin: 0 0 8px; font-size: 12px; color: #9ca3af;">Your message: {{.Subject}}</p>
              <div style="font-size: 13px; color: #6b7280;">{{.OriginalHTML}}</div>
            </td>
          </tr>
        </table>
      </td>
    </tr>
  </table>
</body>
</html>`
