package model

import "time"

// Donation models one row of the append-only donation ledger.  Rows are
// created exactly once per accepted submission and are never updated or
// deleted afterwards.
//
// Fields:
//  ID        – primary key identifier, assigned at creation.
//  UserID    – owner of the donation (references users.id).
//  Amount    – donated amount, strictly positive.
//  CreatedAt – timestamp of creation.
type Donation struct {
    ID        uint64    // donations.id
    UserID    uint64    // donations.user_id
    Amount    int64     // donations.amount
    CreatedAt time.Time // donations.created_at
}
