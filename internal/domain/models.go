package domain

import (
	"time"
)

// Account — кредитный счет пользователя. Баланс хранится в целых кредитах
// и по инварианту всегда равен сумме транзакций владельца.
type Account struct {
	ID         int64
	CreatedAt  time.Time
	UpdatedAt  time.Time
	OwnerID    int64
	Balance    int64
	TotalSpent int64
}

// Transaction — запись журнала движения кредитов. Журнал append-only:
// записи никогда не изменяются и не удаляются.
type Transaction struct {
	ID          int64
	CreatedAt   time.Time
	OwnerID     int64
	Amount      int64
	Type        TransactionType
	Description string
	ReferenceID string
}

// PremiumService — позиция каталога платных услуг. Для ядра каталог
// доступен только на чтение.
type PremiumService struct {
	ID           int64
	Name         string
	CreditCost   int64
	DurationDays *int32
	IsActive     bool
}

// ServiceGrant — активированная услуга на профиле. EndDate == nil означает
// бессрочную услугу.
type ServiceGrant struct {
	ID            int64
	CreatedAt     time.Time
	OwnerID       int64
	ProfileID     int64
	ServiceID     int64
	TransactionID int64
	EndDate       *time.Time
}

// Boost — временное продвижение профиля. Статус переводит в expired только
// свипер, он же единственный пишет в профиль производный флаг featured.
type Boost struct {
	ID        int64
	ProfileID int64
	Status    BoostStatus
	EndDate   time.Time
}

// Earnings — накопленный к выплате заработок профиля, в сентаво.
type Earnings struct {
	ProfileID     int64
	PendingPayout int64
}

// PayoutRequest — заявка на выплату. Ядро создает заявку в статусе pending,
// дальнейшие переходы статуса принадлежат внешнему процессу модерации.
type PayoutRequest struct {
	ID        int64
	PublicID  string
	CreatedAt time.Time
	ProfileID int64
	Amount    int64
	PixKey    string
	Status    PayoutStatus
}

// Affiliate — партнер реферальной программы.
type Affiliate struct {
	ID       int64
	Code     string
	IsActive bool
}

// AffiliateReferral — факт регистрации по партнерской ссылке. На пару
// (AffiliateID, ReferredUserID) допускается не более одной записи.
type AffiliateReferral struct {
	ID             int64
	CreatedAt      time.Time
	AffiliateID    int64
	ReferredUserID int64
	Status         ReferralStatus
}

// Story — эфемерный контент профиля с медиа в объектном хранилище.
type Story struct {
	ID        int64
	ProfileID int64
	MediaURL  string
	ExpiresAt time.Time
}
