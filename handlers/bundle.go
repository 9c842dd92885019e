package handlers

// HandlerBundle groups the endpoint handlers wired in main and mounted by routes.
// Nil handlers leave their endpoints unmounted.
type HandlerBundle struct {
	Auth          *AuthHandler
	Catalog       *CatalogHandler
	Cart          *CartHandler
	Schedule      *ScheduleHandler
	Booking       *BookingHandler
	Requests      *RequestHandler
	AI            *AIHandler
	Conversations *ConversationHandler
	Storage       *StorageHandler
	Devices       *DeviceHandler
}
