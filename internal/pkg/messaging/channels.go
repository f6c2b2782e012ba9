package messaging

// Channel is the logical name of an outbound queue to Aboweb.
type Channel string

const (
	ChannelNewClient                    Channel = "new-client"
	ChannelNewAddress                   Channel = "new-address"
	ChannelNewSubscriptionFixedTermCard Channel = "new-subscription-fixed-term-card"
	ChannelNewSubscriptionOpenCard      Channel = "new-subscription-open-card"
	ChannelNewSubscriptionOpenMandate   Channel = "new-subscription-open-mandate"
)

// AllChannels returns every channel in a stable order
func AllChannels() []Channel {
	return []Channel{
		ChannelNewClient,
		ChannelNewAddress,
		ChannelNewSubscriptionFixedTermCard,
		ChannelNewSubscriptionOpenCard,
		ChannelNewSubscriptionOpenMandate,
	}
}

// messageIDPrefix matches the producer id scheme the Aboweb consumers log.
func (c Channel) messageIDPrefix() string {
	switch c {
	case ChannelNewClient:
		return "producer-newClient-"
	case ChannelNewAddress:
		return "producer-newAddress-"
	case ChannelNewSubscriptionFixedTermCard:
		return "producer-newSubscription-add-cb-"
	case ChannelNewSubscriptionOpenCard:
		return "producer-newSubscription-adl-cb-"
	case ChannelNewSubscriptionOpenMandate:
		return "producer-newSubscription-adl-sepa-"
	default:
		return "producer-" + string(c) + "-"
	}
}

// envKey is the variable holding the queue path (SQS) or topic (Kafka).
func (c Channel) envKey() string {
	switch c {
	case ChannelNewClient:
		return "AWS_URL_NEW_CLIENT"
	case ChannelNewAddress:
		return "AWS_URL_NEW_ADDRESS"
	case ChannelNewSubscriptionFixedTermCard:
		return "AWS_URL_NEW_SUBSCRIPTION_ADD_CB"
	case ChannelNewSubscriptionOpenCard:
		return "AWS_URL_NEW_SUBSCRIPTION_ADL_CB"
	case ChannelNewSubscriptionOpenMandate:
		return "AWS_URL_NEW_SUBSCRIPTION_ADL_SEPA"
	default:
		return ""
	}
}
