package utils

import (
	"fmt"
	"log"
	"os"
	"tiara-mobile-zone/models"

	"github.com/keighl/postmark"
)

// EmailService sends transactional email through Postmark. When
// POSTMARK_API_TOKEN is unset the service is a no-op, so local
// development works without credentials.
type EmailService struct {
	client *postmark.Client
	sender string
}

// NewEmailService initializes the service from the environment.
func NewEmailService() *EmailService {
	apiToken := os.Getenv("POSTMARK_API_TOKEN")
	if apiToken == "" {
		log.Println("POSTMARK_API_TOKEN not set, order confirmation emails disabled")
		return &EmailService{}
	}
	return &EmailService{
		client: postmark.NewClient(apiToken, ""),
		sender: os.Getenv("EMAIL_SENDER"),
	}
}

// SendEmail sends a basic HTML email to the specified recipient.
func (es *EmailService) SendEmail(toEmail, subject, htmlContent string) error {
	if es.client == nil {
		return nil
	}
	_, err := es.client.SendEmail(postmark.Email{
		From:     es.sender,
		To:       toEmail,
		Subject:  subject,
		HtmlBody: htmlContent,
		TextBody: htmlContent,
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// SendOrderConfirmationEmail sends an order confirmation to the user.
func (es *EmailService) SendOrderConfirmationEmail(toEmail string, order models.Order) error {
	subject := "Order Confirmation - Tiara Mobile Zone"
	htmlContent := fmt.Sprintf(
		"<strong>Thank you for your purchase!</strong><br><br>Your order #%d has been placed successfully.<br><br>Total Amount: <strong>₹%.2f</strong><br>Payment Method: <strong>%s</strong><br><br>Thank you for shopping with Tiara Mobile Zone!",
		order.ID,
		order.Total,
		order.Payment.Method,
	)
	return es.SendEmail(toEmail, subject, htmlContent)
}
