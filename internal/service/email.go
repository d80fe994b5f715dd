package service

import (
	"context"
	"fmt"

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

func (s *emailService) SendBookingRequested(ctx context.Context, ownerEmail, borrowerName, itemTitle string) error {
	body := fmt.Sprintf("Hello,\n\n%s has requested to borrow your item %q.\n\nLog in to approve or reject the request.\n\nThe LendLoop Team", borrowerName, itemTitle)
	return s.send(ownerEmail, fmt.Sprintf("New booking request for %s", itemTitle), body)
}

func (s *emailService) SendBookingApproved(ctx context.Context, borrowerEmail, itemTitle, ownerName string) error {
	body := fmt.Sprintf("Hello,\n\nGood news! %s approved your booking for %q.\n\nThe LendLoop Team", ownerName, itemTitle)
	return s.send(borrowerEmail, fmt.Sprintf("Your booking for %s was approved", itemTitle), body)
}

func (s *emailService) SendBookingRejected(ctx context.Context, borrowerEmail, itemTitle, ownerName string) error {
	body := fmt.Sprintf("Hello,\n\n%s rejected your booking for %q. Your credits have been refunded in full.\n\nThe LendLoop Team", ownerName, itemTitle)
	return s.send(borrowerEmail, fmt.Sprintf("Your booking for %s was rejected", itemTitle), body)
}

func (s *emailService) SendBookingReturned(ctx context.Context, ownerEmail, borrowerName, itemTitle string, credits int) error {
	body := fmt.Sprintf("Hello,\n\n%s returned your item %q. %d credits have been added to your balance.\n\nThe LendLoop Team", borrowerName, itemTitle, credits)
	return s.send(ownerEmail, fmt.Sprintf("%s has been returned", itemTitle), body)
}
