package orderdoc

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

// SaveState is the orchestrator's position in one save invocation.
type SaveState int

const (
	StateIdle SaveState = iota
	StateValidating
	StateSavingMaster
	StateSavingDetails
	StateReconciling
	StateFailed
)

func (s SaveState) String() string {
	switch s {
	case StateValidating:
		return "Validating"
	case StateSavingMaster:
		return "SavingMaster"
	case StateSavingDetails:
		return "SavingDetails"
	case StateReconciling:
		return "Reconciling"
	case StateFailed:
		return "Failed"
	default:
		return "Idle"
	}
}

var (
	// ErrSaveInFlight guards against re-entrant saves while a previous
	// one is still awaiting the server.
	ErrSaveInFlight = errors.New("a save is already in progress")
	// ErrNothingToSave is returned when neither the master nor any line
	// has unsaved edits.
	ErrNothingToSave = errors.New("nothing to save")
	// ErrNoStore is returned when no store has been selected.
	ErrNoStore = errors.New("a store must be selected")
	// ErrBadOrderDate is returned when the order date does not parse.
	ErrBadOrderDate = errors.New("order date is not a valid date")
	// ErrBadRequiredDate is returned when the required-shipment date
	// does not parse.
	ErrBadRequiredDate = errors.New("required-shipment date is not a valid date")
	// ErrRequiredBeforeOrder is returned when the required-shipment
	// date precedes the order date.
	ErrRequiredBeforeOrder = errors.New("required-shipment date precedes order date")
)

// maxReportMessages bounds how many per-line failure messages a report
// carries; further failures only raise the error count.
const maxReportMessages = 5

// SaveReport summarises one save invocation: what the master phase did,
// per-line success/failure counts with a bounded set of messages, and
// the reconciliation outcome. Per-line failures and a failed
// reconciliation do not fail the save itself.
type SaveReport struct {
	MasterCreated bool
	MasterUpdated bool
	SuccessCount  int
	ErrorCount    int
	Messages      []string
	Reconciled    bool
	ReconcileErr  error
}

// Summary renders the report as the operator-facing outcome message.
func (r *SaveReport) Summary() string {
	switch {
	case r.ErrorCount == 0 && r.SuccessCount == 0:
		return "order saved"
	case r.ErrorCount == 0:
		return fmt.Sprintf("%d line(s) saved", r.SuccessCount)
	default:
		return fmt.Sprintf("%d line(s) saved, %d failed", r.SuccessCount, r.ErrorCount)
	}
}

// Saver drives the multi-phase save sequence: validate, persist the
// master, persist the dirty lines, then reconcile against the server.
// One Saver serves one document-owning goroutine; the per-line
// persistence calls are the only concurrent part and never touch the
// document directly.
type Saver struct {
	gw     Gateway
	rec    *Reconciler
	userID string

	state SaveState
}

// NewSaver creates a saver persisting through gw on behalf of userID.
func NewSaver(gw Gateway, rec *Reconciler, userID string) *Saver {
	return &Saver{gw: gw, rec: rec, userID: userID}
}

// State returns the orchestrator's current phase.
func (s *Saver) State() SaveState {
	return s.state
}

// Save runs one full save cycle over the document. Validation failures
// and master persistence failures abort the save with an error and no
// detail calls. Per-line failures are collected into the report;
// successful lines commit, receive their server line id and lose their
// dirty flag independently of the others. Reconciliation runs whenever
// at least one persistence call succeeded; its failure is reported in
// the result, not as a save error. Once the master phase has started
// the save cannot be aborted.
func (s *Saver) Save(ctx context.Context, doc *Document) (*SaveReport, error) {
	if s.state != StateIdle && s.state != StateFailed {
		return nil, ErrSaveInFlight
	}

	s.state = StateValidating
	if err := s.validate(doc); err != nil {
		s.state = StateFailed
		return nil, err
	}

	report := &SaveReport{}

	s.state = StateSavingMaster
	masterSaved, err := s.saveMaster(ctx, doc, report)
	if err != nil {
		s.state = StateIdle
		return nil, err
	}

	s.state = StateSavingDetails
	s.saveDetails(ctx, doc, report)

	if masterSaved || report.SuccessCount > 0 {
		s.state = StateReconciling
		if err := s.rec.Reconcile(ctx, doc, doc.Master.OrderNo, masterSaved); err != nil {
			report.ReconcileErr = err
		} else {
			report.Reconciled = true
		}
	}

	s.state = StateIdle
	return report, nil
}

func (s *Saver) validate(doc *Document) error {
	orderDate, err := time.Parse(DateLayout, doc.Master.OrderDate)
	if err != nil {
		return ErrBadOrderDate
	}
	requiredDate, err := time.Parse(DateLayout, doc.Master.RequiredDate)
	if err != nil {
		return ErrBadRequiredDate
	}
	if requiredDate.Before(orderDate) {
		return ErrRequiredBeforeOrder
	}
	if doc.Master.StoreID == "" {
		return ErrNoStore
	}
	newWithLines := !doc.Master.Persisted() && len(doc.Lines) > 0
	if !doc.masterDirty && doc.dirty.Len() == 0 && !newWithLines {
		return ErrNothingToSave
	}
	return nil
}

// saveMaster runs the master phase. A master failure is fatal to the
// whole save. Returns whether the master was created or updated.
func (s *Saver) saveMaster(ctx context.Context, doc *Document, report *SaveReport) (bool, error) {
	m := &doc.Master
	switch {
	case !m.Persisted():
		res, err := s.gw.CreateMaster(ctx, CreateMasterRequest{
			OrderDate:    m.OrderDate,
			RequiredDate: m.RequiredDate,
			RecvAddr:     m.RecvAddr,
			RecvTel:      m.RecvTel,
			RecvPerson:   m.RecvPerson,
			RecvMemo:     m.RecvMemo,
			StoreID:      m.StoreID,
			UserID:       s.userID,
		})
		if err != nil {
			return false, fmt.Errorf("create order master: %w", err)
		}
		m.OrderSequ = res.OrderSequ
		m.OrderNo = res.OrderNo
		doc.masterDirty = false
		report.MasterCreated = true
		return true, nil

	case doc.masterDirty:
		err := s.gw.UpdateMaster(ctx, UpdateMasterRequest{
			OrderNo:      m.OrderNo,
			OrderSequ:    m.OrderSequ,
			OrderDate:    m.OrderDate,
			RequiredDate: m.RequiredDate,
			RecvAddr:     m.RecvAddr,
			RecvTel:      m.RecvTel,
			RecvPerson:   m.RecvPerson,
			RecvMemo:     m.RecvMemo,
			UserID:       s.userID,
		})
		if err != nil {
			return false, fmt.Errorf("update order master: %w", err)
		}
		doc.masterDirty = false
		report.MasterUpdated = true
		return true, nil

	default:
		// Only lines changed; the master phase is skipped entirely.
		return false, nil
	}
}

type detailOutcome struct {
	key   string
	seqNo int64
	err   error
}

// saveDetails persists every dirty line, one call per line. The calls
// are independent of each other and issued concurrently; the document
// is only mutated after all of them have returned, on the calling
// goroutine.
func (s *Saver) saveDetails(ctx context.Context, doc *Document, report *SaveReport) {
	keys := doc.dirty.Keys()
	if len(keys) == 0 {
		return
	}

	outcomes := make([]detailOutcome, len(keys))
	var wg sync.WaitGroup
	for i, key := range keys {
		line, ok := doc.LineByKey(key)
		if !ok {
			// Stale dirty entry; the line is gone from the document.
			doc.dirty.Unmark(key)
			continue
		}
		wg.Add(1)
		go func(i int, line Line) {
			defer wg.Done()
			outcomes[i] = s.persistLine(ctx, doc.Master, line)
		}(i, *line)
	}
	wg.Wait()

	for _, out := range outcomes {
		if out.key == "" {
			continue
		}
		if out.err != nil {
			report.ErrorCount++
			if len(report.Messages) < maxReportMessages {
				report.Messages = append(report.Messages, out.err.Error())
			}
			continue
		}
		line, ok := doc.LineByKey(out.key)
		if !ok {
			continue
		}
		if line.SeqNo == 0 && out.seqNo != 0 {
			// A created line adopts its server id so the next save of
			// the same line becomes an update.
			line.SeqNo = out.seqNo
		}
		doc.dirty.Unmark(out.key)
		report.SuccessCount++
	}
}

func (s *Saver) persistLine(ctx context.Context, master Master, line Line) detailOutcome {
	if line.SeqNo == 0 {
		res, err := s.gw.CreateDetail(ctx, CreateDetailRequest{
			OrderDate:    master.OrderDate,
			OrderSequ:    master.OrderSequ,
			OrderTypeID:  int(master.OrderType),
			ClaimID:      line.ClaimID,
			VendorID:     line.VendorID,
			BrandID:      line.BrandID,
			GoodsID:      line.GoodsID,
			Quantity:     line.Quantity,
			UnitPrice:    line.ConsumerPrice,
			DiscountRate: line.DiscountRate,
			Memo:         line.Memo,
			UserID:       s.userID,
		})
		if err != nil {
			return detailOutcome{key: line.Key, err: fmt.Errorf("create line %s: %w", line.GoodsID, err)}
		}
		return detailOutcome{key: line.Key, seqNo: res.SeqNo}
	}

	res, err := s.gw.UpdateDetail(ctx, UpdateDetailRequest{
		OrderDate:    master.OrderDate,
		OrderSequ:    master.OrderSequ,
		LineNo:       line.SeqNo,
		OrderTypeID:  int(master.OrderType),
		ClaimID:      line.ClaimID,
		VendorID:     line.VendorID,
		BrandID:      line.BrandID,
		GoodsID:      line.GoodsID,
		Quantity:     line.Quantity,
		UnitPrice:    line.ConsumerPrice,
		DiscountRate: line.DiscountRate,
		Memo:         line.Memo,
		UserID:       s.userID,
	})
	if err != nil {
		return detailOutcome{key: line.Key, err: fmt.Errorf("update line %s: %w", line.GoodsID, err)}
	}
	return detailOutcome{key: line.Key, seqNo: res.SeqNo}
}

// DeleteLine removes a line. Unsaved lines are dropped locally; saved
// lines are deleted server-side first and the document is reconciled
// afterwards.
func (s *Saver) DeleteLine(ctx context.Context, doc *Document, key string) error {
	if s.state != StateIdle && s.state != StateFailed {
		return ErrSaveInFlight
	}
	line, ok := doc.LineByKey(key)
	if !ok {
		return ErrLineNotFound
	}
	if line.SeqNo == 0 {
		return doc.RemoveLine(key)
	}
	err := s.gw.DeleteDetail(ctx, DeleteDetailRequest{
		OrderDate:   doc.Master.OrderDate,
		OrderSequ:   doc.Master.OrderSequ,
		LineOrderNo: line.SeqNo,
		UserID:      s.userID,
	})
	if err != nil {
		return fmt.Errorf("delete line %s: %w", line.GoodsID, err)
	}
	return s.rec.Reconcile(ctx, doc, doc.Master.OrderNo, false)
}

// DeleteOrder removes the whole order server-side and resets the
// document to a fresh sale.
func (s *Saver) DeleteOrder(ctx context.Context, doc *Document) error {
	if s.state != StateIdle && s.state != StateFailed {
		return ErrSaveInFlight
	}
	if !doc.Master.Persisted() {
		doc.Reset()
		return nil
	}
	err := s.gw.DeleteMaster(ctx, DeleteMasterRequest{
		OrderDate: doc.Master.OrderDate,
		OrderSequ: doc.Master.OrderSequ,
		UserID:    s.userID,
	})
	if err != nil {
		return fmt.Errorf("delete order %s: %w", doc.Master.OrderNo, err)
	}
	doc.Reset()
	return nil
}
