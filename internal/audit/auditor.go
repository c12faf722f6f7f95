// Package audit периодически сверяет журнал: общую сумму проводок и баланс каждого перевода.
package audit

import (
	"context"
	"time"

	pkgerrors "github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/fsdevblog/groph-ledger/internal/domain"
)

const (
	defaultServiceTimeout       = 10 * time.Second
	defaultInterval             = time.Minute
	defaultUnbalancedLimit uint = 100
	intervalJitterPercent       = 0.1
)

// Report результат одной сверки.
type Report struct {
	CheckedAt  time.Time
	Balanced   bool
	Unbalanced []domain.TransferImbalance
}

// Healthy true, если журнал сходится целиком и по каждому переводу.
func (r *Report) Healthy() bool {
	return r.Balanced && len(r.Unbalanced) == 0
}

// Auditor запускает сверку журнала по расписанию. Сам ничего не исправляет, только поднимает алерт в логе.
type Auditor struct {
	svs             Servicer
	l               *logrus.Entry
	interval        time.Duration
	unbalancedLimit uint
	now             func() time.Time
}

func New(svs Servicer, l *logrus.Logger) *Auditor {
	return &Auditor{
		svs: svs,
		l: l.WithFields(logrus.Fields{
			"component": "audit",
			"module":    "auditor",
		}),
		interval:        defaultInterval,
		unbalancedLimit: defaultUnbalancedLimit,
		now:             time.Now,
	}
}

// SetInterval устанавливает паузу между сверками. Фактическая пауза рассыпается на 10% в обе стороны,
// чтобы несколько экземпляров не били в базу одновременно.
func (a *Auditor) SetInterval(interval time.Duration) *Auditor {
	if interval > 0 {
		a.interval = interval
	}
	return a
}

// SetUnbalancedLimit ограничивает число несбалансированных переводов в одном отчете.
func (a *Auditor) SetUnbalancedLimit(limit uint) *Auditor {
	if limit > 0 {
		a.unbalancedLimit = limit
	}
	return a
}

// Run выполняет сверку сразу и далее по расписанию до отмены контекста.
func (a *Auditor) Run(ctx context.Context) {
	a.l.WithFields(logrus.Fields{
		"interval":        a.interval.String(),
		"unbalancedLimit": a.unbalancedLimit,
	}).Info("Starting")

	for {
		if _, err := a.Check(ctx); err != nil && ctx.Err() == nil {
			a.l.WithError(err).Error("audit check error")
		}

		pause := time.Duration(jitter(float64(a.interval), intervalJitterPercent, intervalJitterPercent))
		select {
		case <-ctx.Done():
			a.l.Info("Got stop signal, exiting...")
			return
		case <-time.After(pause):
		}
	}
}

// Check выполняет одну сверку. Ошибка возвращается только при сбое чтения, расхождения попадают в отчет
// и логируются как алерт.
func (a *Auditor) Check(ctx context.Context) (*Report, error) {
	checkCtx, cancel := context.WithTimeout(ctx, defaultServiceTimeout)
	defer cancel()

	balanced, err := a.svs.VerifyLedgerInvariant(checkCtx)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "audit check")
	}
	unbalanced, err := a.svs.FindUnbalancedTransfers(checkCtx, a.unbalancedLimit)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "audit check")
	}

	report := &Report{
		CheckedAt:  a.now(),
		Balanced:   balanced,
		Unbalanced: unbalanced,
	}
	if report.Healthy() {
		a.l.Debug("ledger is balanced")
		return report, nil
	}

	a.alert(report)
	return report, nil
}

func (a *Auditor) alert(report *Report) {
	ids := make([]string, len(report.Unbalanced))
	for i, u := range report.Unbalanced {
		ids[i] = u.TransferID.String()
	}
	a.l.WithError(pkgerrors.WithStack(ErrLedgerUnbalanced)).
		WithFields(logrus.Fields{
			"globalBalanced":  report.Balanced,
			"unbalancedCount": len(report.Unbalanced),
			"transferIDs":     ids,
		}).
		Error("ALERT: ledger invariant violated")
}
