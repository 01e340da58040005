package otp

import (
	htmltemplate "html/template"
	"strings"
	texttemplate "text/template"
)

const emailSubject = "Your OTP Code - Vendor App"

type emailData struct {
	Code    string
	Minutes int
}

var textBody = texttemplate.Must(texttemplate.New("otp.txt").Parse(`Hello,

Your OTP code for Vendor App login is: {{.Code}}

This code will expire in {{.Minutes}} minutes.

If you did not request this code, please ignore this email.
`))

var htmlBody = htmltemplate.Must(htmltemplate.New("otp.html").Parse(`<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
  <h2>Vendor App Login</h2>
  <p>Your OTP code is:</p>
  <p style="font-size: 28px; font-weight: bold; letter-spacing: 4px;">{{.Code}}</p>
  <p>This code will expire in {{.Minutes}} minutes.</p>
  <p style="color: #888;">If you did not request this code, please ignore this email.</p>
</body>
</html>
`))

func renderBodies(d emailData) (text, html string, err error) {
	var tb, hb strings.Builder
	if err := textBody.Execute(&tb, d); err != nil {
		return "", "", err
	}
	if err := htmlBody.Execute(&hb, d); err != nil {
		return "", "", err
	}
	return tb.String(), hb.String(), nil
}
