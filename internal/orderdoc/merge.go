package orderdoc

// Source tags where a candidate product record came from. Field
// presence varies by source, so the candidate is resolved into the
// canonical Line shape once, here at the merge boundary.
type Source int

const (
	// SourceScan is a barcode scan on the register.
	SourceScan Source = iota
	// SourceSearch is a pick from the item-search popup.
	SourceSearch
	// SourceReload is a record of an already-persisted order line.
	SourceReload
)

// Candidate is an incoming product record from a scan, a search pick or
// an order reload. Scan and search candidates carry catalog data only;
// reload candidates additionally carry the server line id, the stored
// quantity, discount and fulfillment dates.
type Candidate struct {
	Source     Source
	GoodsID    string
	GoodsName  string
	BrandID    string
	BrandName  string
	VendorID   string
	VendorName string
	ClaimID    string

	ConsumerPrice int64
	// CatalogRate is the goods catalog discount rate, used as the
	// initial rate for newly appended scan/search lines.
	CatalogRate float64

	// Reload-only fields.
	SeqNo          int64
	Quantity       int64
	DiscountRate   float64
	Memo           string
	ShipOutDate    string
	ExpectedInDate string
	ActualInDate   string
}

// MergeAction says what MergeIncoming did with the candidate.
type MergeAction int

const (
	// ActionIncremented means an existing line's quantity changed.
	ActionIncremented MergeAction = iota
	// ActionAppended means a new line was added.
	ActionAppended
)

// MergeResult reports the outcome of a merge and the affected line key.
type MergeResult struct {
	Action MergeAction
	Key    string
}

// MergeIncoming folds a candidate into the document. Existing lines are
// scanned from last to first so that repeated scans of the same barcode
// keep hitting the most recently touched line. Scan and search
// candidates match on product id alone; reload candidates match on
// product id and server line id together, which keeps genuinely
// distinct lines of the same product apart. Lines already in
// fulfillment never match; the candidate lands on a new line instead.
//
// A match increments the quantity by one unit in the order type's sign
// and recomputes the derived fields with the line's unchanged discount
// rate. No match appends a new line with an initial quantity of one
// unit (or the reload candidate's stored quantity).
func (d *Document) MergeIncoming(c Candidate) MergeResult {
	step := d.Master.OrderType.Sign()

	for i := len(d.Lines) - 1; i >= 0; i-- {
		line := d.Lines[i]
		if line.GoodsID != c.GoodsID || line.Locked() {
			continue
		}
		if c.Source == SourceReload && line.SeqNo != c.SeqNo {
			continue
		}
		line.Quantity += step
		line.rederive()
		d.dirty.Mark(line.Key)
		d.recompute()
		return MergeResult{Action: ActionIncremented, Key: line.Key}
	}

	line := &Line{
		Key:        newLineKey(c.GoodsID, c.SeqNo),
		SeqNo:      c.SeqNo,
		GoodsID:    c.GoodsID,
		GoodsName:  c.GoodsName,
		BrandID:    c.BrandID,
		BrandName:  c.BrandName,
		VendorID:   c.VendorID,
		VendorName: c.VendorName,
		ClaimID:    c.ClaimID,

		Quantity:      step,
		ConsumerPrice: c.ConsumerPrice,
		DiscountRate:  c.CatalogRate,
	}
	if c.Source == SourceReload {
		if c.Quantity != 0 {
			line.Quantity = c.Quantity
		}
		line.DiscountRate = c.DiscountRate
		line.Memo = c.Memo
		line.ShipOutDate = c.ShipOutDate
		line.ExpectedInDate = c.ExpectedInDate
		line.ActualInDate = c.ActualInDate
	}
	line.rederive()
	d.Lines = append(d.Lines, line)

	// Reload candidates that mirror a persisted line carry no unsaved
	// edits; everything else starts dirty.
	if line.SeqNo == 0 {
		d.dirty.Mark(line.Key)
	}
	d.recompute()
	return MergeResult{Action: ActionAppended, Key: line.Key}
}
