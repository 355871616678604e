package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"passwordless-auth/internal/data/entity"
	"passwordless-auth/pkg/utils"

	"go.uber.org/zap"
)

type emailSender struct {
	config *utils.Config
	log    *zap.Logger
}

func NewEmailSender(config *utils.Config, log *zap.Logger) Sender {
	return &emailSender{
		config: config,
		log:    log.With(zap.String("sender", "email")),
	}
}

func (s *emailSender) Send(ctx context.Context, toAlias string, token *entity.CallbackToken) error {
	cfg := s.config.Email

	// Without an SMTP host we run in development mode: log the token
	// instead of sending it.
	if cfg.Host == "" {
		s.log.Info("SMTP not configured, logging token instead",
			zap.String("to", toAlias),
			zap.String("token", token.Key),
		)
		fmt.Printf("\nLogin token for %s: %s\n\n", toAlias, token.Key)
		return nil
	}

	body := strings.ReplaceAll(s.config.Token.EmailPlaintext, "%token%", token.Key)
	msg := strings.Join([]string{
		"From: " + cfg.From,
		"To: " + toAlias,
		"Subject: " + s.config.Token.EmailSubject,
		"",
		body,
	}, "\r\n")

	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	var auth smtp.Auth
	if cfg.User != "" {
		auth = smtp.PlainAuth("", cfg.User, cfg.Password, cfg.Host)
	}

	if err := smtp.SendMail(addr, auth, cfg.From, []string{toAlias}, []byte(msg)); err != nil {
		s.log.Error("Failed to send token email",
			zap.Error(err),
			zap.String("to", toAlias),
		)
		return fmt.Errorf("send token email to %s: %w", toAlias, err)
	}

	return nil
}
