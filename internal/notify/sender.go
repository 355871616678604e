package notify

import (
	"context"

	"passwordless-auth/internal/data/entity"
	"passwordless-auth/pkg/utils"

	"go.uber.org/zap"
)

// Sender delivers a callback token to an alias. Delivery is best effort;
// issuance has already happened by the time a sender runs.
type Sender interface {
	Send(ctx context.Context, toAlias string, token *entity.CallbackToken) error
}

// Senders dispatches per alias channel.
type Senders map[entity.AliasType]Sender

// NewSenders builds the default sender table from configuration.
func NewSenders(config *utils.Config, log *zap.Logger) Senders {
	return Senders{
		entity.AliasTypeEmail:  NewEmailSender(config, log),
		entity.AliasTypeMobile: NewSMSSender(config, log),
	}
}
