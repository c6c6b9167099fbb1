package repoargs

import (
	"time"
)

type GrantCreate struct {
	OwnerID       int64
	ProfileID     int64
	ServiceID     int64
	TransactionID int64
	EndDate       *time.Time
}

type PayoutCreate struct {
	PublicID  string
	ProfileID int64
	Amount    int64
	PixKey    string
}

type ReferralCreate struct {
	AffiliateID    int64
	ReferredUserID int64
}
