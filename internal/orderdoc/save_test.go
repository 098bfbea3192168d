package orderdoc

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orderdesk/orderdesk-api/internal/domain/enum"
)

// fakeGateway is an in-memory order server. It keeps the authoritative
// copy the reconciler fetches back, assigns sequence ids, and can be
// told to fail individual calls.
type fakeGateway struct {
	mu       sync.Mutex
	nextSequ int64
	nextSeq  int64
	master   *FetchedMaster
	lines    []FetchedLine
	calls    []string

	failCreateMaster bool
	failUpdateMaster bool
	failFetch        bool
	failGoods        map[string]bool
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{failGoods: make(map[string]bool)}
}

func (g *fakeGateway) record(call string) {
	g.mu.Lock()
	g.calls = append(g.calls, call)
	g.mu.Unlock()
}

func (g *fakeGateway) CreateMaster(_ context.Context, req CreateMasterRequest) (CreateMasterResult, error) {
	g.record("createMaster")
	if g.failCreateMaster {
		return CreateMasterResult{}, errors.New("store is closed for ordering")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.nextSequ++
	g.master = &FetchedMaster{
		OrderNo:      fmt.Sprintf("SO-%04d", g.nextSequ),
		OrderSequ:    g.nextSequ,
		OrderDate:    req.OrderDate,
		RequiredDate: req.RequiredDate,
		StoreID:      req.StoreID,
		OrderTypeID:  int(enum.OrderTypeNormal),
		RecvPerson:   req.RecvPerson,
		RecvAddr:     req.RecvAddr,
		RecvTel:      req.RecvTel,
		RecvMemo:     req.RecvMemo,
	}
	return CreateMasterResult{OrderSequ: g.master.OrderSequ, OrderNo: g.master.OrderNo}, nil
}

func (g *fakeGateway) UpdateMaster(_ context.Context, req UpdateMasterRequest) error {
	g.record("updateMaster")
	if g.failUpdateMaster {
		return errors.New("order is being picked")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.master != nil {
		g.master.OrderDate = req.OrderDate
		g.master.RequiredDate = req.RequiredDate
		g.master.RecvPerson = req.RecvPerson
		g.master.RecvAddr = req.RecvAddr
		g.master.RecvTel = req.RecvTel
		g.master.RecvMemo = req.RecvMemo
	}
	return nil
}

func (g *fakeGateway) CreateDetail(_ context.Context, req CreateDetailRequest) (DetailResult, error) {
	g.record("createDetail:" + req.GoodsID)
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failGoods[req.GoodsID] {
		return DetailResult{}, errors.New("goods " + req.GoodsID + " is discontinued")
	}
	g.nextSeq++
	g.lines = append(g.lines, FetchedLine{
		SeqNo:        g.nextSeq,
		GoodsID:      req.GoodsID,
		BrandID:      req.BrandID,
		VendorID:     req.VendorID,
		ClaimID:      req.ClaimID,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		DiscountRate: req.DiscountRate,
		Memo:         req.Memo,
	})
	return DetailResult{SeqNo: g.nextSeq}, nil
}

func (g *fakeGateway) UpdateDetail(_ context.Context, req UpdateDetailRequest) (DetailResult, error) {
	g.record("updateDetail:" + req.GoodsID)
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.failGoods[req.GoodsID] {
		return DetailResult{}, errors.New("goods " + req.GoodsID + " is discontinued")
	}
	for i := range g.lines {
		if g.lines[i].SeqNo == req.LineNo {
			g.lines[i].Quantity = req.Quantity
			g.lines[i].UnitPrice = req.UnitPrice
			g.lines[i].DiscountRate = req.DiscountRate
			g.lines[i].Memo = req.Memo
			return DetailResult{SeqNo: req.LineNo}, nil
		}
	}
	return DetailResult{}, errors.New("line not found")
}

func (g *fakeGateway) DeleteDetail(_ context.Context, req DeleteDetailRequest) error {
	g.record("deleteDetail")
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.lines {
		if g.lines[i].SeqNo == req.LineOrderNo {
			g.lines = append(g.lines[:i], g.lines[i+1:]...)
			return nil
		}
	}
	return errors.New("line not found")
}

func (g *fakeGateway) DeleteMaster(_ context.Context, _ DeleteMasterRequest) error {
	g.record("deleteMaster")
	g.mu.Lock()
	defer g.mu.Unlock()
	g.master = nil
	g.lines = nil
	return nil
}

func (g *fakeGateway) FetchDetails(_ context.Context, _ string) (FetchedOrder, error) {
	g.record("fetchDetails")
	if g.failFetch {
		return FetchedOrder{}, errors.New("order service unavailable")
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	out := FetchedOrder{Master: g.master}
	out.Lines = append(out.Lines, g.lines...)
	return out, nil
}

func newTestSaver(gw *fakeGateway) *Saver {
	return NewSaver(gw, NewReconciler(gw), "U100")
}

func newDocWithDates(storeID string) *Document {
	doc := NewSale(storeID, enum.OrderTypeNormal)
	doc.Master.OrderDate = "2026-08-31"
	doc.Master.RequiredDate = "2026-09-05"
	return doc
}

func TestSaveCreatesMasterBeforeDetails(t *testing.T) {
	gw := newFakeGateway()
	saver := newTestSaver(gw)
	doc := newDocWithDates("S001")

	doc.MergeIncoming(scanCandidate("G1", 10000, 10))
	doc.MergeIncoming(scanCandidate("G2", 5000, 0))

	report, err := saver.Save(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, report.MasterCreated)
	assert.Equal(t, 2, report.SuccessCount)
	assert.Equal(t, 0, report.ErrorCount)
	assert.True(t, report.Reconciled)

	// Master persistence completes before any detail call is issued.
	require.NotEmpty(t, gw.calls)
	assert.Equal(t, "createMaster", gw.calls[0])

	assert.Equal(t, "SO-0001", doc.Master.OrderNo)
	assert.True(t, doc.Master.Persisted())

	// Reconciliation replaced the lines with server truth; each line
	// carries its own server id and no dirty flags remain.
	require.Len(t, doc.Lines, 2)
	seqs := map[int64]bool{}
	for _, l := range doc.Lines {
		assert.True(t, l.Saved())
		seqs[l.SeqNo] = true
	}
	assert.Len(t, seqs, 2)
	assert.Equal(t, 0, doc.Dirty().Len())
	assert.Equal(t, StateIdle, saver.State())
}

func TestSaveValidationFailures(t *testing.T) {
	gw := newFakeGateway()
	saver := newTestSaver(gw)

	doc := newDocWithDates("S001")
	doc.MergeIncoming(scanCandidate("G1", 10000, 0))

	doc.Master.OrderDate = "not-a-date"
	_, err := saver.Save(context.Background(), doc)
	assert.ErrorIs(t, err, ErrBadOrderDate)
	assert.Equal(t, StateFailed, saver.State())

	doc.Master.OrderDate = "2026-08-31"
	doc.Master.RequiredDate = "2026-08-01"
	_, err = saver.Save(context.Background(), doc)
	assert.ErrorIs(t, err, ErrRequiredBeforeOrder)

	doc.Master.RequiredDate = "2026-09-05"
	doc.Master.StoreID = ""
	_, err = saver.Save(context.Background(), doc)
	assert.ErrorIs(t, err, ErrNoStore)

	// No network call was made for any validation failure.
	assert.Empty(t, gw.calls)
}

func TestSaveRejectsWhenNothingChanged(t *testing.T) {
	gw := newFakeGateway()
	saver := newTestSaver(gw)
	doc := newDocWithDates("S001")

	_, err := saver.Save(context.Background(), doc)
	assert.ErrorIs(t, err, ErrNothingToSave)
}

func TestSaveMasterFailureIsFatal(t *testing.T) {
	gw := newFakeGateway()
	gw.failCreateMaster = true
	saver := newTestSaver(gw)
	doc := newDocWithDates("S001")
	res := doc.MergeIncoming(scanCandidate("G1", 10000, 0))

	_, err := saver.Save(context.Background(), doc)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store is closed")

	// No detail phase ran and the line is still dirty.
	assert.Equal(t, []string{"createMaster"}, gw.calls)
	assert.True(t, doc.Dirty().IsDirty(res.Key))
	assert.False(t, doc.Master.Persisted())
	assert.Equal(t, StateIdle, saver.State())
}

func TestSavePartialDetailFailure(t *testing.T) {
	gw := newFakeGateway()
	gw.failGoods["G2"] = true
	saver := newTestSaver(gw)
	doc := newDocWithDates("S001")
	doc.MergeIncoming(scanCandidate("G1", 10000, 0))
	doc.MergeIncoming(scanCandidate("G2", 5000, 0))

	report, err := saver.Save(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 1, report.SuccessCount)
	assert.Equal(t, 1, report.ErrorCount)
	require.Len(t, report.Messages, 1)
	assert.Contains(t, report.Messages[0], "G2")
	assert.Equal(t, "1 line(s) saved, 1 failed", report.Summary())

	// Reconciliation still ran (one call succeeded) and the document
	// now mirrors the server: only the persisted line remains.
	assert.True(t, report.Reconciled)
	require.Len(t, doc.Lines, 1)
	assert.Equal(t, "G1", doc.Lines[0].GoodsID)
	assert.Equal(t, 0, doc.Dirty().Len())
}

func TestSaveAllDetailsFailKeepsDirtyState(t *testing.T) {
	gw := newFakeGateway()
	saver := newTestSaver(gw)
	doc := newDocWithDates("S001")
	doc.MergeIncoming(scanCandidate("G1", 10000, 0))

	_, err := saver.Save(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, doc.Lines, 1)
	key := doc.Lines[0].Key

	// Edit the persisted line, then make its update fail.
	require.NoError(t, doc.SetQuantity(key, 7))
	gw.failGoods["G1"] = true
	callsBefore := len(gw.calls)

	report, err := saver.Save(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 0, report.SuccessCount)
	assert.Equal(t, 1, report.ErrorCount)

	// Nothing succeeded, so no reconciliation was triggered and the
	// failed line keeps both its edit and its dirty flag.
	assert.False(t, report.Reconciled)
	assert.True(t, doc.Dirty().IsDirty(key))
	line, _ := doc.LineByKey(key)
	assert.Equal(t, int64(7), line.Quantity)

	var fetched int
	for _, c := range gw.calls[callsBefore:] {
		if c == "fetchDetails" {
			fetched++
		}
	}
	assert.Zero(t, fetched)
}

func TestSecondSaveUpdatesInsteadOfCreates(t *testing.T) {
	gw := newFakeGateway()
	saver := newTestSaver(gw)
	doc := newDocWithDates("S001")
	doc.MergeIncoming(scanCandidate("G1", 10000, 0))

	_, err := saver.Save(context.Background(), doc)
	require.NoError(t, err)

	require.NoError(t, doc.SetQuantity(doc.Lines[0].Key, 4))
	callsBefore := len(gw.calls)
	report, err := saver.Save(context.Background(), doc)
	require.NoError(t, err)
	assert.Equal(t, 1, report.SuccessCount)
	assert.False(t, report.MasterCreated)
	assert.False(t, report.MasterUpdated)

	// Only lines changed: the master phase was skipped entirely.
	assert.Equal(t, "updateDetail:G1", gw.calls[callsBefore])

	require.Len(t, doc.Lines, 1)
	assert.Equal(t, int64(4), doc.Lines[0].Quantity)
}

func TestMasterOnlyUpdateSkipsDetails(t *testing.T) {
	gw := newFakeGateway()
	saver := newTestSaver(gw)
	doc := newDocWithDates("S001")
	doc.MergeIncoming(scanCandidate("G1", 10000, 0))
	_, err := saver.Save(context.Background(), doc)
	require.NoError(t, err)

	doc.SetRecipient("Kim", "12 Harbor Rd", "010-1234-5678", "leave at door")
	callsBefore := len(gw.calls)
	report, err := saver.Save(context.Background(), doc)
	require.NoError(t, err)
	assert.True(t, report.MasterUpdated)
	assert.Equal(t, 0, report.SuccessCount)

	assert.Equal(t, "updateMaster", gw.calls[callsBefore])
	for _, c := range gw.calls[callsBefore:] {
		assert.NotContains(t, c, "Detail:")
	}
	assert.False(t, doc.MasterDirty())
}

func TestSaveRejectsReentry(t *testing.T) {
	gw := newFakeGateway()
	saver := newTestSaver(gw)
	doc := newDocWithDates("S001")
	doc.MergeIncoming(scanCandidate("G1", 10000, 0))

	saver.state = StateSavingDetails
	_, err := saver.Save(context.Background(), doc)
	assert.ErrorIs(t, err, ErrSaveInFlight)
	assert.ErrorIs(t, saver.DeleteLine(context.Background(), doc, doc.Lines[0].Key), ErrSaveInFlight)
	assert.ErrorIs(t, saver.DeleteOrder(context.Background(), doc), ErrSaveInFlight)
}

func TestDeleteLineLocalAndRemote(t *testing.T) {
	gw := newFakeGateway()
	saver := newTestSaver(gw)
	doc := newDocWithDates("S001")
	doc.MergeIncoming(scanCandidate("G1", 10000, 0))
	doc.MergeIncoming(scanCandidate("G2", 5000, 0))

	// Unsaved line: dropped locally, no server call.
	require.NoError(t, saver.DeleteLine(context.Background(), doc, doc.Lines[1].Key))
	assert.Empty(t, gw.calls)
	require.Len(t, doc.Lines, 1)

	_, err := saver.Save(context.Background(), doc)
	require.NoError(t, err)
	require.Len(t, doc.Lines, 1)

	// Saved line: deleted server-side, then reconciled away.
	require.NoError(t, saver.DeleteLine(context.Background(), doc, doc.Lines[0].Key))
	assert.Empty(t, doc.Lines)
	assert.Empty(t, gw.lines)
}

func TestDeleteOrderResetsDocument(t *testing.T) {
	gw := newFakeGateway()
	saver := newTestSaver(gw)
	doc := newDocWithDates("S001")
	doc.MergeIncoming(scanCandidate("G1", 10000, 0))
	_, err := saver.Save(context.Background(), doc)
	require.NoError(t, err)

	require.NoError(t, saver.DeleteOrder(context.Background(), doc))
	assert.False(t, doc.Master.Persisted())
	assert.Empty(t, doc.Lines)
	assert.Nil(t, gw.master)
}
