package service

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/vitrine/pkg/uow"
)

type AppServices struct {
	Ledger   *LedgerService
	Premium  *PremiumActivationService
	Payout   *PayoutService
	Referral *ReferralService
}

// Factory собирает сервисный слой. notifier может быть nil — тогда события
// баланса никуда не отправляются.
func Factory(unitOfWork uow.UOW, notifier Notifier, minimumPayout int64, l *logrus.Logger) (*AppServices, error) {
	ledger, ledgerErr := NewLedgerService(unitOfWork, notifier, l)
	if ledgerErr != nil {
		return nil, fmt.Errorf("service factory: %s", ledgerErr.Error())
	}

	premium, premiumErr := NewPremiumActivationService(unitOfWork, ledger)
	if premiumErr != nil {
		return nil, fmt.Errorf("service factory: %s", premiumErr.Error())
	}

	payout, payoutErr := NewPayoutService(unitOfWork, minimumPayout)
	if payoutErr != nil {
		return nil, fmt.Errorf("service factory: %s", payoutErr.Error())
	}

	referral, referralErr := NewReferralService(unitOfWork)
	if referralErr != nil {
		return nil, fmt.Errorf("service factory: %s", referralErr.Error())
	}

	return &AppServices{
		Ledger:   ledger,
		Premium:  premium,
		Payout:   payout,
		Referral: referral,
	}, nil
}
