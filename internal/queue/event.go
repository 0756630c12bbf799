// Package queue defines message payloads exchanged over the message broker.
package queue

// DonationRecordedEvent is published after a donation has been committed to
// the ledger.  It contains enough information for downstream consumers to
// log, notify, or feed analytics without querying the primary database.
type DonationRecordedEvent struct {
    DonationID   uint64 `json:"donation_id"`
    UserID       uint64 `json:"user_id"`
    Username     string `json:"username"`
    Amount       int64  `json:"amount"`
    TotalDonated uint64 `json:"total_donated"`
    Variant      uint8  `json:"variant"`
    RecordedAt   string `json:"recorded_at"`
}
