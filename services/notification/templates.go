package notification

import (
	"bytes"
	"fmt"
	"html/template"
	"strings"

	"quotecompare/models"
)

var quoteReceivedTmpl = template.Must(template.New("quoteReceived").Parse(`<div style="font-family: 'Helvetica Neue', Helvetica, Arial, sans-serif; background-color: #f8fafc; padding: 40px 0;">
  <div style="max-width: 600px; margin: 0 auto; background: white; border-radius: 16px; overflow: hidden;">
    <div style="background: linear-gradient(135deg, #4F46E5 0%, #EC4899 100%); padding: 32px; text-align: center;">
      <h1 style="color: white; margin: 0; font-size: 24px;">Quote Request Received!</h1>
      <p style="color: rgba(255,255,255,0.9); margin-top: 8px;">We're finding the best vendors for you.</p>
    </div>
    <div style="padding: 32px;">
      <p style="color: #64748B; font-size: 16px; line-height: 1.6;">Hi there,<br><br>Thanks for submitting your request. Local vendors will review your project and send you competitive quotes soon.</p>
      <div style="background: #F8FAFC; border-left: 4px solid #4F46E5; padding: 16px; margin-bottom: 24px;">
        <h3 style="margin: 0 0 12px 0; color: #1E293B; font-size: 14px; text-transform: uppercase;">Request Details</h3>
        <p style="margin: 0 0 4px 0; color: #475569;"><strong>Service:</strong> {{.ServiceType}}</p>
        <p style="margin: 0 0 4px 0; color: #475569;"><strong>Location:</strong> {{.PostalCode}}</p>
        <p style="margin: 0; color: #475569; font-style: italic;">"{{.Details}}"</p>
      </div>
      <div style="background: #F1F5F9; border-radius: 12px; padding: 20px; text-align: center; margin-bottom: 32px;">
        <p style="color: #64748B; font-size: 12px; text-transform: uppercase; font-weight: 700; margin: 0 0 8px 0;">Your Quote ID</p>
        <p style="color: #1E293B; font-size: 24px; font-family: monospace; font-weight: 700; margin: 0;">{{.QuoteID}}</p>
      </div>
      <div style="text-align: center; margin-bottom: 32px;">
        <a href="{{.TrackingLink}}" style="display: inline-block; background: #4F46E5; color: white; text-decoration: none; padding: 14px 28px; border-radius: 8px; font-weight: 600;">Track Status</a>
      </div>
      <p style="color: #94A3B8; font-size: 14px; text-align: center;">Or visit <a href="{{.TrackingLink}}" style="color: #4F46E5;">{{.TrackingLink}}</a></p>
    </div>
    <div style="background: #F8FAFC; padding: 24px; text-align: center; border-top: 1px solid #E2E8F0;">
      <p style="color: #94A3B8; font-size: 12px; margin: 0;">&copy; {{.Year}} {{.AppName}}. All rights reserved.</p>
    </div>
  </div>
</div>`))

type quoteReceivedView struct {
	QuoteID      string
	ServiceType  string
	PostalCode   string
	Details      string
	TrackingLink string
	AppName      string
	Year         int
}

// trackingLink joins the tracking base URL and the quote id.
func trackingLink(base, quoteID string) string {
	return strings.TrimRight(base, "/") + "/" + quoteID
}

func quoteReceivedMail(q models.Quote, trackingBase, appName string) (Mail, error) {
	view := quoteReceivedView{
		QuoteID:      q.ID,
		ServiceType:  orDefault(q.ServiceType, "Service"),
		PostalCode:   orDefault(q.PostalCode, "N/A"),
		Details:      orDefault(q.Details, "No details provided."),
		TrackingLink: trackingLink(trackingBase, q.ID),
		AppName:      appName,
		Year:         q.CreatedAt.Year(),
	}
	var html bytes.Buffer
	if err := quoteReceivedTmpl.Execute(&html, view); err != nil {
		return Mail{}, fmt.Errorf("render quote email: %w", err)
	}
	return Mail{
		To:      q.ContactEmail,
		Subject: "We received your quote request!",
		Text: fmt.Sprintf("Your request (%s) has been received. Track it here: %s (ID: %s)",
			view.ServiceType, view.TrackingLink, q.ID),
		HTML: html.String(),
	}, nil
}

func responseReceivedMail(q models.Quote, r models.Response, trackingBase string) Mail {
	return Mail{
		To:      q.ContactEmail,
		Subject: "New Quote Response!",
		Text: fmt.Sprintf("You have received a new quote from %s for $%.2f. View it here: %s",
			r.VendorName, r.Price, trackingLink(trackingBase, q.ID)),
	}
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
