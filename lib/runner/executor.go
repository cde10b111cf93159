package runner

import (
	"sync"
	"time"

	"stakegate.io/stakegate/lib/common"
	"stakegate.io/stakegate/lib/errors"
	"stakegate.io/stakegate/lib/ledger"
	"stakegate.io/stakegate/lib/metrics"
	"stakegate.io/stakegate/lib/operation"
	"stakegate.io/stakegate/lib/storage"
	"stakegate.io/stakegate/lib/transfer"
)

// Executor applies signed envelopes to the ledger, one at a time.
// Every envelope runs inside a storage transaction: either all of its
// operations land, or none of them. Observers hear about the writes
// only after the transaction has committed.
type Executor struct {
	st    *storage.LevelDBBackend
	agent transfer.Agent
	guard *ledger.Guard
	conf  common.Config

	mutex sync.Mutex
}

func NewExecutor(st *storage.LevelDBBackend, agent transfer.Agent, conf common.Config) *Executor {
	return &Executor{
		st:    st,
		agent: agent,
		guard: ledger.NewGuard(),
		conf:  conf,
	}
}

func (ex *Executor) Guard() *ledger.Guard {
	return ex.guard
}

func (ex *Executor) Storage() *storage.LevelDBBackend {
	return ex.st
}

// Execute validates and applies the envelope. On success it returns
// one receipt per operation and the collected notifications have been
// fired; on failure the transaction is discarded and the ledger is as
// it was.
func (ex *Executor) Execute(ev operation.Envelope) ([]ledger.Receipt, error) {
	begin := time.Now()

	// Checked before taking the executor lock: a submission arriving
	// out of an in-flight transfer would otherwise wait forever on
	// the lock its own initiator holds.
	if ex.guard.Held() {
		metrics.Executor.AddError()
		return nil, errors.Reentrant
	}

	ex.mutex.Lock()
	defer ex.mutex.Unlock()

	ts, err := ex.st.OpenTransaction()
	if err != nil {
		return nil, err
	}

	result, err := ex.applyEnvelope(ts, ev)
	if err != nil {
		ts.Discard()
		metrics.Executor.AddError()
		log.Error("envelope rejected", "envelope", ev.GetHash(), "source", ev.Source(), "error", err)
		return nil, err
	}

	if err := ts.Commit(); err != nil {
		ts.Discard()
		metrics.Executor.AddError()
		return nil, err
	}

	result.announce()
	observeApplied(begin, ev, result)

	log.Info("envelope applied",
		"envelope", ev.GetHash(),
		"source", ev.Source(),
		"operations", len(ev.B.Operations),
	)

	return result.receipts, nil
}

// observeApplied updates the executor counters and the registry
// gauges from what a committed envelope produced.
func observeApplied(begin time.Time, ev operation.Envelope, result *applyResult) {
	metrics.Executor.AddEnvelope()
	for _, op := range ev.B.Operations {
		metrics.Executor.AddOperation(string(op.H.Type))
	}
	metrics.Executor.ObserveDurationSeconds(begin)

	metrics.Registry.AddReceipts(len(result.receipts))
	for _, n := range result.notifications {
		switch n.Event {
		case ledger.EventJoined:
			metrics.Registry.AddMembers(1)
		case ledger.EventLeft:
			metrics.Registry.AddMembers(-1)
		case ledger.EventGlobalRequirementSet:
			metrics.Registry.SetGlobalRequirement(uint64(n.Requirement))
		}
	}
}

// applyResult carries what one envelope produced: receipts to return,
// accounts whose saves are still to be announced, notifications to
// fire after commit.
type applyResult struct {
	receipts      []ledger.Receipt
	accounts      map[string]*ledger.Account
	notifications []ledger.Notification
}

func (result *applyResult) saved(ac *ledger.Account) {
	if result.accounts == nil {
		result.accounts = map[string]*ledger.Account{}
	}
	result.accounts[ac.Address] = ac
}

// notify records the event name on the receipt and queues the
// notification for after commit.
func (result *applyResult) notify(n ledger.Notification, receipt *ledger.Receipt) {
	receipt.RecordEvent(n.Event)
	result.notifications = append(result.notifications, n)
}

func (result *applyResult) announce() {
	for _, ac := range result.accounts {
		ledger.TriggerAccountSaved(ac)
	}
	for i := range result.receipts {
		ledger.TriggerReceiptSaved(&result.receipts[i])
	}
	for _, n := range result.notifications {
		n.Trigger()
	}
}

func (ex *Executor) applyEnvelope(ts *storage.LevelDBBackend, ev operation.Envelope) (*applyResult, error) {
	checker := &ExecuteChecker{
		DefaultChecker: common.DefaultChecker{Funcs: ExecuteCheckerFuncs},
		Storage:        ts,
		Envelope:       ev,
		Conf:           ex.conf,
	}
	if err := common.RunChecker(checker, common.DefaultDeferFunc); err != nil {
		return nil, err
	}

	result := &applyResult{}
	for _, op := range ev.B.Operations {
		receipt, err := ex.applyOperation(ts, ev, op, result)
		if err != nil {
			return nil, err
		}
		result.receipts = append(result.receipts, receipt)
	}

	source, err := ledger.GetOrNewAccount(ts, ev.Source())
	if err != nil {
		return nil, err
	}
	source.SequenceID++
	if err := source.Save(ts); err != nil {
		return nil, err
	}
	result.saved(source)

	if err := ledger.MarkEnvelopeApplied(ts, ev.GetHash()); err != nil {
		return nil, err
	}

	return result, nil
}

// transferOut performs the latched outbound transfer. The latch is
// held for exactly this call and released on every path out of it.
func (ex *Executor) transferOut(to string, amount common.Amount) (err error) {
	if ex.agent == nil {
		return errors.TransferAgentNotReady
	}

	if err = ex.guard.TryAcquire(); err != nil {
		return
	}
	defer ex.guard.Release()

	if err = ex.agent.Transfer(to, amount); err != nil {
		log.Error("outbound transfer failed", "to", to, "amount", amount, "error", err)
		return errors.TransferFailed.Clone().SetData("cause", err.Error())
	}

	return
}
