package service

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type emailService struct {
	apiKey     string
	fromEmail  string
	fromName   string
	adminEmail string
}

func NewEmailService(apiKey, fromEmail, fromName, adminEmail string) EmailService {
	return &emailService{
		apiKey:     apiKey,
		fromEmail:  fromEmail,
		fromName:   fromName,
		adminEmail: adminEmail,
	}
}

func (s *emailService) send(to, subject, body string) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	recipient := mail.NewEmail("", to)
	message := mail.NewSingleEmail(from, subject, recipient, body, "")

	client := sendgrid.NewSendClient(s.apiKey)
	response, err := client.Send(message)
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	if response.StatusCode >= 400 {
		return fmt.Errorf("sendgrid error: status %d, body: %s", response.StatusCode, response.Body)
	}
	return nil
}

func (s *emailService) SendDonationClaimedNotification(ctx context.Context, donorEmail, claimantName, donationTitle string) error {
	body := fmt.Sprintf("Hello,\n\n%s has claimed your donation %q. Please confirm once you have sent it.\n\nThe EcoShare Team", claimantName, donationTitle)
	return s.send(donorEmail, "Your donation was claimed", body)
}

func (s *emailService) SendDonationSentNotification(ctx context.Context, claimantEmail, donorName, donationTitle string) error {
	body := fmt.Sprintf("Hello,\n\n%s has marked %q as sent. Please confirm once you receive it.\n\nThe EcoShare Team", donorName, donationTitle)
	return s.send(claimantEmail, "Donation on the way", body)
}

func (s *emailService) SendDonationCompletedNotification(ctx context.Context, email, donationTitle string, points int64) error {
	body := fmt.Sprintf("Hello,\n\nDonation %q is complete. You earned %d EcoPoints.\n\nThe EcoShare Team", donationTitle, points)
	return s.send(email, "Donation completed", body)
}

func (s *emailService) SendVoucherRedemptionReceipt(ctx context.Context, email, voucherTitle, code string) error {
	body := fmt.Sprintf("Hello,\n\nYou redeemed the voucher %q. Your code is %s.\n\nThe EcoShare Team", voucherTitle, code)
	return s.send(email, "Voucher redeemed", body)
}

func (s *emailService) SendAdRequestDecisionNotification(ctx context.Context, email, title, decision, reason string) error {
	body := fmt.Sprintf("Hello,\n\nYour ad request %q was %s.", title, decision)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nThe EcoShare Team"
	return s.send(email, fmt.Sprintf("Ad request %s", decision), body)
}

func (s *emailService) SendMoneyRequestDecisionNotification(ctx context.Context, email, decision, reason string, amountCents int64) error {
	body := fmt.Sprintf("Hello,\n\nYour money request for PKR %.2f was %s.", float64(amountCents)/100, decision)
	if reason != "" {
		body += fmt.Sprintf("\n\nReason: %s", reason)
	}
	body += "\n\nThe EcoShare Team"
	return s.send(email, fmt.Sprintf("Money request %s", decision), body)
}

func (s *emailService) SendAdminNotification(ctx context.Context, subject, message string) error {
	return s.send(s.adminEmail, subject, message)
}
