package service

import (
	"context"
	"fmt"
	"net/smtp"

	"github.com/ruslansymonenko/server-electro-grand/internal/apperr"
	"github.com/ruslansymonenko/server-electro-grand/internal/config"
	"github.com/ruslansymonenko/server-electro-grand/internal/logging"
)

// MailerService delivers staff notifications over plain SMTP.
type MailerService struct {
	Host      string
	Port      string
	Username  string
	Password  string
	From      string
	StaffAddr string

	// SendMail defaults to smtp.SendMail; tests substitute a capture.
	SendMail func(addr string, a smtp.Auth, from string, to []string, msg []byte) error
}

func NewMailerService(cfg *config.Config) *MailerService {
	return &MailerService{
		Host:      cfg.SMTPHost,
		Port:      cfg.SMTPPort,
		Username:  cfg.SystemEmail,
		Password:  cfg.SystemEmailPw,
		From:      cfg.SystemEmail,
		StaffAddr: cfg.StaffEmail,
	}
}

// CallbackRequest carries the call-me-back form. Only the phone number
// is mandatory.
type CallbackRequest struct {
	Phone string `json:"phone" validate:"required"`
	Name  string `json:"name"`
}

// SendCallback mails the store staff that a visitor asked to be called back.
func (s *MailerService) SendCallback(ctx context.Context, req CallbackRequest) error {
	subject := "Запит на зворотній дзвінок"
	body := fmt.Sprintf("Відвідувач залишив запит на зворотній дзвінок.\r\nТелефон: %s\r\n", req.Phone)
	if req.Name != "" {
		body += fmt.Sprintf("Ім'я: %s\r\n", req.Name)
	}
	if err := s.send(s.StaffAddr, subject, body); err != nil {
		logging.FromContext(ctx).Error("callback mail failed", "error", err)
		return apperr.Wrap(apperr.Internal, "could not send callback email", err)
	}
	return nil
}

func (s *MailerService) send(to, subject, body string) error {
	msg := fmt.Sprintf(
		"From: %s\r\nTo: %s\r\nSubject: %s\r\nMIME-Version: 1.0\r\nContent-Type: text/plain; charset=\"utf-8\"\r\n\r\n%s",
		s.From, to, subject, body,
	)
	addr := s.Host + ":" + s.Port
	auth := smtp.PlainAuth("", s.Username, s.Password, s.Host)

	sendMail := s.SendMail
	if sendMail == nil {
		sendMail = smtp.SendMail
	}
	return sendMail(addr, auth, s.From, []string{to}, []byte(msg))
}
