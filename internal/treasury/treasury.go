package treasury

import (
	"sync"

	"go.uber.org/zap"
)

// Payer performs the outbound value transfer to an external recipient. It is
// the only point where value leaves the marketplace, so callers must have
// committed their own state changes before invoking it.
type Payer interface {
	Pay(to string, amount uint64) error
}

// Treasury holds the marketplace pot. Every attached value enters through
// Deposit; the listing fee is moved to the operator's fee balance through
// CollectFee; refunds and payouts leave through PayOut.
type Treasury interface {
	Deposit(amount uint64)
	CollectFee(amount uint64)
	PayOut(to string, amount uint64) error
	Balance() int64
	FeeBalance() uint64
}

type treasury struct {
	mu         sync.Mutex
	payer      Payer
	balance    int64
	feeBalance uint64
}

func NewTreasury(payer Payer) Treasury {
	if payer == nil {
		payer = logPayer{}
	}

	return &treasury{payer: payer}
}

func (t *treasury) Deposit(amount uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.balance += int64(amount)
}

func (t *treasury) CollectFee(amount uint64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.balance -= int64(amount)
	t.feeBalance += amount

	if t.balance < 0 {
		zap.L().With(zap.Int64("balance", t.balance)).Warn("Treasury: Pot overdrawn")
	}
}

// PayOut debits the pot before handing the value to the payer. If the payer
// fails the debit is restored, so a failed payout leaves the pot untouched.
func (t *treasury) PayOut(to string, amount uint64) error {
	t.mu.Lock()
	t.balance -= int64(amount)
	if t.balance < 0 {
		zap.L().With(
			zap.Int64("balance", t.balance),
			zap.String("to", to),
		).Warn("Treasury: Pot overdrawn")
	}
	t.mu.Unlock()

	if err := t.payer.Pay(to, amount); err != nil {
		t.mu.Lock()
		t.balance += int64(amount)
		t.mu.Unlock()

		zap.L().With(
			zap.Error(err),
			zap.String("to", to),
			zap.Uint64("amount", amount),
		).Error("Treasury: Payout failed")

		return err
	}

	return nil
}

func (t *treasury) Balance() int64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.balance
}

func (t *treasury) FeeBalance() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()

	return t.feeBalance
}

type logPayer struct{}

func (p logPayer) Pay(to string, amount uint64) error {
	zap.L().With(
		zap.String("to", to),
		zap.Uint64("amount", amount),
	).Info("Treasury: Paid out")

	return nil
}
