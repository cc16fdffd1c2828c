package constants

const (
	PageEventsExchange     = "property_list_exchange"
	PageEventsExchangeType = "topic"

	RoutingKeyPageLoaded = "screen.page_loaded"

	// ключ схемы контракта события в internal/contracts
	PageLoadedEventSchema = "PageLoadedEvent/1.0.0"
)
