package handlers

// AppHandlers bundles every HTTP handler for route registration.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	GigHandler          *GigHandler
	BidHandler          *BidHandler
	NotificationHandler *NotificationHandler
}
