package orderdoc

import (
	"context"
	"fmt"

	"github.com/orderdesk/orderdesk-api/internal/domain/enum"
)

// Reconciler replaces the in-memory document with the server's
// authoritative copy after a successful persistence step, or when the
// user opens a previously saved order.
type Reconciler struct {
	gw Gateway

	// ClearSelection, when set, is invoked before the fetch so the host
	// grid can drop any row selection it maintains.
	ClearSelection func()
}

// NewReconciler creates a reconciler over the given gateway.
func NewReconciler(gw Gateway) *Reconciler {
	return &Reconciler{gw: gw}
}

// Reconcile fetches the authoritative order for orderNo and replaces
// the document's line collection with it, clearing all dirty state. The
// master fields are adopted from the server only when adoptMaster is
// set (the master save itself changed them, or the caller is loading a
// previous order); otherwise the in-memory master is kept as is.
//
// An empty fetch result is a valid state (a brand-new order with no
// persisted details) and leaves the line collection empty. A fetch
// failure is never retried; the document is restored to its
// pre-reconciliation state, stale but not corrupted.
func (r *Reconciler) Reconcile(ctx context.Context, doc *Document, orderNo string, adoptMaster bool) error {
	prevLines := doc.Lines
	prevSummary := doc.Summary
	prevDirty := doc.dirty.snapshot()
	prevMasterDirty := doc.masterDirty

	doc.Lines = nil
	doc.dirty.Clear()
	if r.ClearSelection != nil {
		r.ClearSelection()
	}

	fetched, err := r.gw.FetchDetails(ctx, orderNo)
	if err != nil {
		doc.Lines = prevLines
		doc.Summary = prevSummary
		doc.dirty.restore(prevDirty)
		doc.masterDirty = prevMasterDirty
		return fmt.Errorf("fetch order %s: %w", orderNo, err)
	}

	if adoptMaster && fetched.Master != nil {
		m := fetched.Master
		doc.Master = Master{
			OrderNo:      m.OrderNo,
			OrderSequ:    m.OrderSequ,
			OrderDate:    m.OrderDate,
			RequiredDate: m.RequiredDate,
			StoreID:      m.StoreID,
			OrderType:    enum.OrderType(m.OrderTypeID),
			Remarks:      m.Remarks,
			RecvPerson:   m.RecvPerson,
			RecvAddr:     m.RecvAddr,
			RecvTel:      m.RecvTel,
			RecvMemo:     m.RecvMemo,
		}
	}
	doc.masterDirty = false

	for i, rec := range fetched.Lines {
		line := &Line{
			Key:            reloadLineKey(rec.GoodsID, rec.SeqNo, i),
			SeqNo:          rec.SeqNo,
			GoodsID:        rec.GoodsID,
			GoodsName:      rec.GoodsName,
			BrandID:        rec.BrandID,
			BrandName:      rec.BrandName,
			VendorID:       rec.VendorID,
			VendorName:     rec.VendorName,
			ClaimID:        rec.ClaimID,
			Quantity:       rec.Quantity,
			ConsumerPrice:  rec.UnitPrice,
			DiscountRate:   rec.DiscountRate,
			Memo:           rec.Memo,
			ShipOutDate:    rec.ShipOutDate,
			ExpectedInDate: rec.ExpectedInDate,
			ActualInDate:   rec.ActualInDate,
		}
		line.rederive()
		doc.Lines = append(doc.Lines, line)
	}
	doc.recompute()
	return nil
}

// Load opens a previously saved order into the document, adopting the
// server master wholesale.
func (r *Reconciler) Load(ctx context.Context, doc *Document, orderNo string) error {
	return r.Reconcile(ctx, doc, orderNo, true)
}
