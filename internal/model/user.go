package model

import "time"

// User represents an application user record as stored in the `users`
// table.  Each field corresponds to a column in the database.  The
// password hash is write-only from the application's point of view: it is
// compared during login and never logged or serialized into responses,
// which is why no json tags appear here.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique username, case-sensitive, immutable after creation.
//  PasswordHash – bcrypt hashed password.
//  Variant      – dashboard variant (0 or 1) assigned once at registration.
//  VisitCount   – number of dashboard visits; only ever incremented.
//  TotalDonated – running donation total; must equal the sum of this
//                 user's ledger rows at every commit point.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
    ID           uint64    // users.id
    Username     string    // users.username
    PasswordHash string    // users.password_hash
    Variant      uint8     // users.variant
    VisitCount   uint64    // users.visit_count
    TotalDonated uint64    // users.total_donated
    CreatedAt    time.Time // users.created_at
    UpdatedAt    time.Time // users.updated_at
}
