package utils

import "crypto/rand"

// Dashboard variants for the A/B experiment.  A user's bucket is drawn
// once at registration and stored on the row; it never changes afterwards.
const (
    VariantA uint8 = 0
    VariantB uint8 = 1
)

// PickVariant draws one unbiased bit from the system CSPRNG and maps it to
// a dashboard variant.  crypto/rand keeps the assignment uniform without
// seeding concerns.
func PickVariant() (uint8, error) {
    var b [1]byte
    if _, err := rand.Read(b[:]); err != nil {
        return 0, err
    }
    return b[0] & 1, nil
}
