package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
)

var receiptTemplate = template.Must(template.New("donation_receipt").Parse(`
<html>
  <body>
    <p>Dear {{.DonorName}},</p>
    <p>Thank you for your donation of INR {{.Total}} to <strong>{{.CampaignTitle}}</strong>.</p>
    <p>Payment reference: {{.PaymentID}}</p>
    <p>Your contribution will help those in need.</p>
  </body>
</html>`))

var subscribeTemplate = template.Must(template.New("subscribe_confirm").Parse(`
<html>
  <body>
    <p>Thanks for subscribing to Sahaya updates.</p>
    <p>You will hear from us when new relief campaigns launch.</p>
  </body>
</html>`))

// ReceiptData feeds the donation receipt template.
type ReceiptData struct {
	DonorName     string
	CampaignTitle string
	Total         int64
	PaymentID     string
}

func SendDonationReceipt(ctx context.Context, p Provider, to string, data ReceiptData) error {
	var body bytes.Buffer
	if err := receiptTemplate.Execute(&body, data); err != nil {
		return fmt.Errorf("render receipt: %w", err)
	}
	subject := fmt.Sprintf("Your donation to %s", data.CampaignTitle)
	return p.Send(ctx, []string{to}, subject, body.String())
}

func SendSubscribeConfirmation(ctx context.Context, p Provider, to string) error {
	var body bytes.Buffer
	if err := subscribeTemplate.Execute(&body, nil); err != nil {
		return fmt.Errorf("render confirmation: %w", err)
	}
	return p.Send(ctx, []string{to}, "Welcome to Sahaya updates", body.String())
}
