package notify

import (
	"context"
	"fmt"
	"strings"

	"passwordless-auth/internal/data/entity"
	"passwordless-auth/pkg/utils"

	"go.uber.org/zap"
)

// smsSender hands the token message to an SMS gateway. Only the logging
// development mode is built in; production deployments plug a gateway
// client in behind the Sender interface.
type smsSender struct {
	config *utils.Config
	log    *zap.Logger
}

func NewSMSSender(config *utils.Config, log *zap.Logger) Sender {
	return &smsSender{
		config: config,
		log:    log.With(zap.String("sender", "sms")),
	}
}

func (s *smsSender) Send(ctx context.Context, toAlias string, token *entity.CallbackToken) error {
	message := strings.ReplaceAll(s.config.Token.MobileMessage, "%token%", token.Key)

	if s.config.SMS.GatewayURL == "" {
		s.log.Info("SMS gateway not configured, logging token instead",
			zap.String("to", toAlias),
			zap.String("token", token.Key),
		)
		fmt.Printf("\nSMS to %s: %s\n\n", toAlias, message)
		return nil
	}

	// TODO: wire the gateway HTTP client once a provider is picked for
	// production; the interface boundary is already in place.
	s.log.Warn("SMS gateway configured but no client implemented",
		zap.String("gateway", s.config.SMS.GatewayURL))
	return fmt.Errorf("send token sms to %s: no gateway client", toAlias)
}
