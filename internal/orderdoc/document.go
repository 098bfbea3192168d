// Package orderdoc implements the in-memory order document that backs
// the order-registration screen: the master record, its line items, the
// derived summary, dirty-row tracking, identity-based merging of scanned
// or searched items, and the save/reconcile cycle against the order API.
//
// A Document is owned by a single goroutine (the screen's event loop);
// it performs no internal locking. The Saver issues its per-line
// persistence calls concurrently but applies every document mutation
// from the calling goroutine.
package orderdoc

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/orderdesk/orderdesk-api/internal/domain/enum"
)

// DateLayout is the wire and display format for all order dates.
const DateLayout = "2006-01-02"

var (
	// ErrLineNotFound is returned when a line key does not resolve.
	ErrLineNotFound = errors.New("order line not found")
	// ErrLineLocked is returned when editing a line that is already in
	// fulfillment (any of its fulfillment dates is set).
	ErrLineLocked = errors.New("order line is in fulfillment and cannot be edited")
	// ErrDiscountRange is returned for discount rates outside [0, 100].
	ErrDiscountRange = errors.New("discount rate must be between 0 and 100")
)

// Master is the order header. OrderNo and OrderSequ are assigned by the
// server on the first successful master save; both are zero until then.
type Master struct {
	OrderNo      string
	OrderSequ    int64
	OrderDate    string
	RequiredDate string
	StoreID      string
	OrderType    enum.OrderType
	Remarks      string
	RecvPerson   string
	RecvAddr     string
	RecvTel      string
	RecvMemo     string
}

// Persisted reports whether the master exists server-side.
func (m *Master) Persisted() bool {
	return m.OrderSequ != 0
}

// Line is one product line in the order. Key is assigned at creation
// and never changes for the life of the line in memory. SeqNo is the
// server line id; zero means the line has not been persisted yet.
type Line struct {
	Key        string
	SeqNo      int64
	GoodsID    string
	GoodsName  string
	BrandID    string
	BrandName  string
	VendorID   string
	VendorName string
	ClaimID    string

	Quantity      int64
	ConsumerPrice int64
	DiscountRate  float64
	Memo          string

	Derived

	ShipOutDate    string
	ExpectedInDate string
	ActualInDate   string
}

// Saved reports whether the line exists server-side.
func (l *Line) Saved() bool {
	return l.SeqNo != 0
}

// Locked reports whether the line is already in fulfillment. Locked
// lines reject quantity, price and memo edits.
func (l *Line) Locked() bool {
	return l.ShipOutDate != "" || l.ExpectedInDate != "" || l.ActualInDate != ""
}

func (l *Line) rederive() {
	l.Derived = Derive(l.ConsumerPrice, l.Quantity, l.DiscountRate)
}

// Summary is the aggregate over all lines. It is recomputed after every
// document mutation and never edited directly.
type Summary struct {
	TotalQuantity       int64
	TotalSupply         int64
	TotalVat            int64
	TotalAmount         int64
	TotalConsumerAmount int64
}

// Document is the in-memory order aggregate: master, ordered lines,
// derived summary and the dirty bookkeeping for both.
type Document struct {
	Master  Master
	Lines   []*Line
	Summary Summary

	dirty       *DirtySet
	masterDirty bool
}

// NewSale creates a fresh document for a new order on the given store.
// The order date defaults to today.
func NewSale(storeID string, orderType enum.OrderType) *Document {
	today := time.Now().Format(DateLayout)
	return &Document{
		Master: Master{
			OrderDate:    today,
			RequiredDate: today,
			StoreID:      storeID,
			OrderType:    orderType,
		},
		dirty: NewDirtySet(),
	}
}

// Reset discards all in-memory state and starts a fresh sale, keeping
// the selected store and order type.
func (d *Document) Reset() {
	fresh := NewSale(d.Master.StoreID, d.Master.OrderType)
	*d = *fresh
}

// Dirty exposes the document's dirty-row tracker.
func (d *Document) Dirty() *DirtySet {
	return d.dirty
}

// MasterDirty reports whether any master field changed since the last
// load or save.
func (d *Document) MasterDirty() bool {
	return d.masterDirty
}

// LineByKey resolves a line by identity key.
func (d *Document) LineByKey(key string) (*Line, bool) {
	for _, l := range d.Lines {
		if l.Key == key {
			return l, true
		}
	}
	return nil, false
}

// newLineKey builds a line identity key from the product id, the server
// line id (or a placeholder for unsaved lines) and a unique suffix, so
// two lines for the same product never collide even before either has a
// server id.
func newLineKey(goodsID string, seqNo int64) string {
	seqPart := "-"
	if seqNo != 0 {
		seqPart = strconv.FormatInt(seqNo, 10)
	}
	return goodsID + "|" + seqPart + "|" + uuid.New().String()[:8]
}

// reloadLineKey builds a deterministic key for a server-fetched line:
// server line id + product id + array position, unique even if the
// server returns duplicate records.
func reloadLineKey(goodsID string, seqNo int64, index int) string {
	return fmt.Sprintf("%s|%d|%d", goodsID, seqNo, index)
}

// --- master edits -----------------------------------------------------

// SetOrderDate updates the master order date and marks the master dirty.
func (d *Document) SetOrderDate(date string) {
	d.Master.OrderDate = date
	d.masterDirty = true
}

// SetRequiredDate updates the required-shipment date.
func (d *Document) SetRequiredDate(date string) {
	d.Master.RequiredDate = date
	d.masterDirty = true
}

// SetStore selects the store the order belongs to.
func (d *Document) SetStore(storeID string) {
	d.Master.StoreID = storeID
	d.masterDirty = true
}

// SetRemarks updates the free-form master remarks.
func (d *Document) SetRemarks(remarks string) {
	d.Master.Remarks = remarks
	d.masterDirty = true
}

// SetRecipient updates the shipping recipient block.
func (d *Document) SetRecipient(person, addr, tel, memo string) {
	d.Master.RecvPerson = person
	d.Master.RecvAddr = addr
	d.Master.RecvTel = tel
	d.Master.RecvMemo = memo
	d.masterDirty = true
}

// SetOrderType switches between normal and return. Existing line
// quantities keep their current sign; the sign convention is enforced
// on the next quantity edit of each line.
func (d *Document) SetOrderType(t enum.OrderType) {
	d.Master.OrderType = t
	d.masterDirty = true
}

// --- line edits -------------------------------------------------------

// SetQuantity replaces a line's quantity. The sign is forced to the
// order type's convention regardless of the sign passed in, derived
// fields are recomputed and the line is marked dirty.
func (d *Document) SetQuantity(key string, quantity int64) error {
	line, ok := d.LineByKey(key)
	if !ok {
		return ErrLineNotFound
	}
	if line.Locked() {
		return ErrLineLocked
	}
	abs := quantity
	if abs < 0 {
		abs = -abs
	}
	line.Quantity = d.Master.OrderType.Sign() * abs
	line.rederive()
	d.dirty.Mark(key)
	d.recompute()
	return nil
}

// SetConsumerPrice replaces a line's consumer unit price.
func (d *Document) SetConsumerPrice(key string, price int64) error {
	line, ok := d.LineByKey(key)
	if !ok {
		return ErrLineNotFound
	}
	if line.Locked() {
		return ErrLineLocked
	}
	line.ConsumerPrice = price
	line.rederive()
	d.dirty.Mark(key)
	d.recompute()
	return nil
}

// SetDiscountRate replaces a line's discount rate. The rate is
// validated here; Derive itself does not clamp.
func (d *Document) SetDiscountRate(key string, rate float64) error {
	if rate < 0 || rate > 100 {
		return ErrDiscountRange
	}
	line, ok := d.LineByKey(key)
	if !ok {
		return ErrLineNotFound
	}
	if line.Locked() {
		return ErrLineLocked
	}
	line.DiscountRate = rate
	line.rederive()
	d.dirty.Mark(key)
	d.recompute()
	return nil
}

// SetMemo replaces a line's memo.
func (d *Document) SetMemo(key, memo string) error {
	line, ok := d.LineByKey(key)
	if !ok {
		return ErrLineNotFound
	}
	if line.Locked() {
		return ErrLineLocked
	}
	line.Memo = memo
	d.dirty.Mark(key)
	return nil
}

// SetLineChecked mirrors the grid's change-indicator checkbox. Checking
// marks the line dirty; unchecking unmarks it without reverting any
// field values.
func (d *Document) SetLineChecked(key string, checked bool) error {
	if _, ok := d.LineByKey(key); !ok {
		return ErrLineNotFound
	}
	if checked {
		d.dirty.Mark(key)
	} else {
		d.dirty.Unmark(key)
	}
	return nil
}

// RemoveLine drops a line from the document and its dirty entry. Lines
// already persisted server-side are deleted through the Saver instead.
func (d *Document) RemoveLine(key string) error {
	for i, l := range d.Lines {
		if l.Key == key {
			d.Lines = append(d.Lines[:i], d.Lines[i+1:]...)
			d.dirty.Unmark(key)
			d.recompute()
			return nil
		}
	}
	return ErrLineNotFound
}

// recompute rebuilds the summary from the lines. The summary is a pure
// function of the line collection.
func (d *Document) recompute() {
	var s Summary
	for _, l := range d.Lines {
		s.TotalQuantity += l.Quantity
		s.TotalSupply += l.OrderSupply
		s.TotalVat += l.OrderVat
		s.TotalAmount += l.OrderTotal
		s.TotalConsumerAmount += l.ConsumerTotal
	}
	d.Summary = s
}
