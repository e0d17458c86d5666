package mailer

import (
	"fmt"
	htmltpl "html/template"
	"strings"
	texttpl "text/template"
)

type emailTemplate struct {
	subject string
	text    *texttpl.Template
	html    *htmltpl.Template
}

var templates = map[string]emailTemplate{
	"otp_verification": {
		subject: "Your MewZone verification code",
		text: texttpl.Must(texttpl.New("otp_verification.txt").Parse(
			"Hi {{.Name}},\n\n" +
				"Your MewZone verification code is {{.Code}}.\n" +
				"It expires in {{.ExpiresMinutes}} minutes.\n\n" +
				"If you did not register, you can ignore this email.\n")),
		html: htmltpl.Must(htmltpl.New("otp_verification.html").Parse(
			`<p>Hi {{.Name}},</p>` +
				`<p>Your MewZone verification code is <strong>{{.Code}}</strong>.</p>` +
				`<p>It expires in {{.ExpiresMinutes}} minutes.</p>` +
				`<p>If you did not register, you can ignore this email.</p>`)),
	},
	"password_reset": {
		subject: "Reset your MewZone password",
		text: texttpl.Must(texttpl.New("password_reset.txt").Parse(
			"Hi {{.Name}},\n\n" +
				"Use code {{.Code}} to reset your MewZone password.\n" +
				"It expires in {{.ExpiresMinutes}} minutes.\n\n" +
				"If you did not request a reset, you can ignore this email.\n")),
		html: htmltpl.Must(htmltpl.New("password_reset.html").Parse(
			`<p>Hi {{.Name}},</p>` +
				`<p>Use code <strong>{{.Code}}</strong> to reset your MewZone password.</p>` +
				`<p>It expires in {{.ExpiresMinutes}} minutes.</p>` +
				`<p>If you did not request a reset, you can ignore this email.</p>`)),
	},
}

// Render turns a job into subject/text/html. Jobs with a known Template are
// rendered with Data; jobs without one pass their literal fields through.
func Render(job EmailJob) (subject, text, html string, err error) {
	if job.Template == "" {
		return job.Subject, job.Text, job.HTML, nil
	}
	t, ok := templates[job.Template]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", job.Template)
	}
	var tb, hb strings.Builder
	if err := t.text.Execute(&tb, job.Data); err != nil {
		return "", "", "", err
	}
	if err := t.html.Execute(&hb, job.Data); err != nil {
		return "", "", "", err
	}
	return t.subject, tb.String(), hb.String(), nil
}
