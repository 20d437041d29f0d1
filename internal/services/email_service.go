package services

import (
	"fmt"
	"gopkg.in/gomail.v2"
)

type EmailService interface {
	SendVerificationCode(email, code string) error
	SendRegistrationEmail(email, applicationID string) error
	SendSubmissionEmail(email, fullName, applicationID string) error
}

type emailService struct {
	dialer *gomail.Dialer
	from   string
}

func NewEmailService(smtpHost string, smtpPort int, smtpUser, smtpPassword, fromEmail string) EmailService {
	dialer := gomail.NewDialer(smtpHost, smtpPort, smtpUser, smtpPassword)
	return &emailService{
		dialer: dialer,
		from:   fromEmail,
	}
}

func (s *emailService) SendVerificationCode(email, code string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Your registration OTP")

	body := fmt.Sprintf(`
		<h2>Email verification</h2>
		<p>Use the following OTP to verify your email:</p>
		<h3>%s</h3>
		<p>This OTP is valid for 10 minutes.</p>
	`, code)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send verification email: %w", err)
	}

	return nil
}

func (s *emailService) SendRegistrationEmail(email, applicationID string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Registration successful - your Application ID inside")

	body := fmt.Sprintf(`
		<h2>Welcome to the Admissions Portal</h2>
		<p>Dear Candidate,</p>
		<p>Your registration has been completed successfully.</p>
		<p>Your Application ID: <strong>%s</strong></p>
		<p>Please use this Application ID along with your password to log in to your
		dashboard, where you can complete your profile, upload documents and track
		your application status.</p>
		<p>Best regards,<br>The Admissions Team</p>
	`, applicationID)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send registration email: %w", err)
	}

	return nil
}

func (s *emailService) SendSubmissionEmail(email, fullName, applicationID string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Application submitted successfully")

	body := fmt.Sprintf(`
		<h2>Application submitted</h2>
		<p>Dear <strong>%s</strong>,</p>
		<p>We have successfully received your application (ID: <strong>%s</strong>).
		Our admissions team will now review your information and you will be
		notified by email about the next steps.</p>
		<p>You can log in anytime with your Application ID and password to track
		your application status.</p>
		<p>Best wishes,<br>The Admissions Team</p>
	`, fullName, applicationID)

	m.SetBody("text/html", body)

	if err := s.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send submission email: %w", err)
	}

	return nil
}
