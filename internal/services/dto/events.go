package dto

// Websocket event types
const (
	EventHired  = "hired"
	EventNewBid = "new_bid"
)

// WSEvent is the envelope every websocket push uses.
type WSEvent struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// HiredEvent is pushed to the freelancer whose bid won a gig. Field names
// match the wire format of the frontend socket client.
type HiredEvent struct {
	Message  string `json:"message"`
	GigID    string `json:"gigId"`
	GigTitle string `json:"gigTitle"`
	BidID    string `json:"bidId"`
}

// NewBidEvent is pushed to the gig owner when a freelancer submits a bid.
type NewBidEvent struct {
	Message  string `json:"message"`
	GigID    string `json:"gigId"`
	GigTitle string `json:"gigTitle"`
	BidID    string `json:"bidId"`
}
