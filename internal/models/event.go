package models

// LookupEvent is the audit event published to Kafka after a history
// entry has been persisted for an authenticated lookup.
type LookupEvent struct {
	EventID   string `json:"event_id"`  // Unique event ID
	Timestamp int64  `json:"timestamp"` // Unix timestamp of the lookup
	UserID    string `json:"user_id"`   // Owner of the lookup
	Username  string `json:"username"`  // Owner username
	IPAddress string `json:"ipaddress"` // Queried address string
	IPAttr    string `json:"ip_attr"`   // Classification label
}
