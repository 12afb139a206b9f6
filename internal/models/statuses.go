package models

type GigStatus string
type BidStatus string

const (
	GigStatusOpen     GigStatus = "open"
	GigStatusAssigned GigStatus = "assigned"

	BidStatusPending  BidStatus = "pending"
	BidStatusHired    BidStatus = "hired"
	BidStatusRejected BidStatus = "rejected"
)
