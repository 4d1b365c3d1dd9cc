package models

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/gomail.v2"
)

type EmailService struct {
	dialer *gomail.Dialer
}

func NewEmailService() (*EmailService, error) {
	smtpHost := os.Getenv("SMTP_HOST")
	smtpPort := os.Getenv("SMTP_PORT")
	smtpUser := os.Getenv("SMTP_USER")
	smtpPass := os.Getenv("SMTP_PASS")

	if smtpHost == "" || smtpUser == "" || smtpPass == "" {
		return nil, fmt.Errorf("SMTP configuration missing")
	}

	port, err := strconv.Atoi(smtpPort)
	if err != nil {
		port = 587
	}

	dialer := gomail.NewDialer(smtpHost, port, smtpUser, smtpPass)

	return &EmailService{dialer: dialer}, nil
}

func (s *EmailService) SendOrderConfirmation(toEmail string, order *Order) error {
	m := gomail.NewMessage()
	m.SetHeader("From", os.Getenv("SMTP_FROM"))
	m.SetHeader("To", toEmail)
	m.SetHeader("Subject", fmt.Sprintf("Order #%d confirmed", order.ID))

	items := ""
	for _, p := range order.Products {
		items += fmt.Sprintf("<li>%s - %s</li>", p.Name, p.Price.StringFixed(2))
	}

	body := fmt.Sprintf(`
<!DOCTYPE html>
<html>
<body style="font-family: Arial, sans-serif;">
    <h2>Thank you for your order!</h2>
    <p>Your order <strong>#%d</strong> has been received and is being prepared.</p>
    <ul>%s</ul>
    <p>Total: <strong>%s</strong></p>
    <p>You can track the status of your order in your account.</p>
</body>
</html>`, order.ID, items, order.Total().StringFixed(2))

	m.SetBody("text/html", body)

	return s.dialer.DialAndSend(m)
}
