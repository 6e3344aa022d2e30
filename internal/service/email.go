package service

import (
	"context"
	"fmt"

	"agrirent-backend/internal/domain"

	"gopkg.in/gomail.v2"
)

type emailService struct {
	host     string
	port     int
	username string
	password string
	from     string
}

func NewEmailService(host string, port int, username, password, from string) EmailService {
	return &emailService{
		host:     host,
		port:     port,
		username: username,
		password: password,
		from:     from,
	}
}

func (s *emailService) SendBookingRequestNotification(ctx context.Context, to, renterName, machineryName string) error {
	subject := "New Booking Request"
	body := fmt.Sprintf("Hello,\n\n%s has requested to book your %s.\n\nPlease accept or reject the request from your dashboard.\n\nBest regards,\nThe AgriRent Team", renterName, machineryName)
	return s.send(to, subject, body)
}

func (s *emailService) SendBookingStatusNotification(ctx context.Context, to, machineryName string, status domain.BookingStatus) error {
	subject := fmt.Sprintf("Booking %s", status)
	body := fmt.Sprintf("Hello,\n\nYour booking request for %s was %s.\n\nBest regards,\nThe AgriRent Team", machineryName, status)
	return s.send(to, subject, body)
}

func (s *emailService) SendBookingCancellationNotification(ctx context.Context, to, renterName, machineryName string) error {
	subject := "Booking Cancelled"
	body := fmt.Sprintf("Hello,\n\n%s has cancelled the booking for %s. The machinery is available again.\n\nBest regards,\nThe AgriRent Team", renterName, machineryName)
	return s.send(to, subject, body)
}

func (s *emailService) send(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", body)

	d := gomail.NewDialer(s.host, s.port, s.username, s.password)
	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}
