// Command desk is the terminal order-entry client: sign in, scan or
// search products into an order document, edit lines, then save the
// document against the order API.
package main

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/orderdesk/orderdesk-api/internal/config"
	"github.com/orderdesk/orderdesk-api/internal/domain/enum"
	"github.com/orderdesk/orderdesk-api/internal/gateway"
	"github.com/orderdesk/orderdesk-api/internal/orderdoc"
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	client := gateway.NewClient(cfg.Desk.APIBaseURL)
	login, err := client.Login(ctx, cfg.Desk.Username, cfg.Desk.Password)
	if err != nil {
		log.Fatalf("login failed: %v", err)
	}

	storeID := login.StoreID
	if storeID == "" {
		storeID = cfg.Desk.StoreID
	}

	doc := orderdoc.NewSale(storeID, enum.OrderTypeNormal)
	rec := orderdoc.NewReconciler(client)
	saver := orderdoc.NewSaver(client, rec, login.Username)

	fmt.Printf("signed in as %s, store %s\n", login.Username, storeID)
	fmt.Println("commands: scan <barcode> | find <query> | qty <line> <n> | rate <line> <r> | memo <line> <text> | del <line> | show | save | load <orderNo> | drop | new | quit")

	session := &deskSession{client: client, doc: doc, saver: saver, rec: rec}
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("> ")
		if !scanner.Scan() {
			break
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if line == "quit" || line == "exit" {
			break
		}
		session.handle(ctx, line)
	}
}

type deskSession struct {
	client *gateway.Client
	doc    *orderdoc.Document
	saver  *orderdoc.Saver
	rec    *orderdoc.Reconciler
}

func (s *deskSession) handle(ctx context.Context, input string) {
	fields := strings.Fields(input)
	cmd, args := fields[0], fields[1:]

	switch cmd {
	case "scan":
		if len(args) != 1 {
			fmt.Println("usage: scan <barcode>")
			return
		}
		s.scan(ctx, args[0])
	case "find":
		if len(args) == 0 {
			fmt.Println("usage: find <query>")
			return
		}
		s.find(ctx, strings.Join(args, " "))
	case "qty":
		s.editInt(args, "qty <line> <quantity>", s.doc.SetQuantity)
	case "rate":
		s.editFloat(args, "rate <line> <rate>", s.doc.SetDiscountRate)
	case "memo":
		if len(args) < 2 {
			fmt.Println("usage: memo <line> <text>")
			return
		}
		key, ok := s.lineKey(args[0])
		if !ok {
			return
		}
		if err := s.doc.SetMemo(key, strings.Join(args[1:], " ")); err != nil {
			fmt.Println(err)
			return
		}
		s.show()
	case "del":
		if len(args) != 1 {
			fmt.Println("usage: del <line>")
			return
		}
		key, ok := s.lineKey(args[0])
		if !ok {
			return
		}
		if err := s.saver.DeleteLine(ctx, s.doc, key); err != nil {
			fmt.Println(err)
			return
		}
		s.show()
	case "show":
		s.show()
	case "save":
		s.save(ctx)
	case "load":
		if len(args) != 1 {
			fmt.Println("usage: load <orderNo>")
			return
		}
		if err := s.rec.Load(ctx, s.doc, args[0]); err != nil {
			fmt.Println(err)
			return
		}
		s.show()
	case "drop":
		if err := s.saver.DeleteOrder(ctx, s.doc); err != nil {
			fmt.Println(err)
			return
		}
		fmt.Println("order deleted")
	case "new":
		s.doc.Reset()
		fmt.Println("started a new sale")
	default:
		fmt.Printf("unknown command %q\n", cmd)
	}
}

// scan resolves a barcode and merges the hit into the document. A
// failed lookup still lands a placeholder line carrying the raw
// barcode, so the operator can fix it up instead of losing the scan.
func (s *deskSession) scan(ctx context.Context, barcode string) {
	cand := orderdoc.Candidate{Source: orderdoc.SourceScan, GoodsID: barcode}
	goods, err := s.client.GetGoodsByBarcode(ctx, barcode)
	if err != nil {
		fmt.Printf("barcode lookup failed (%v), keeping scan as placeholder\n", err)
	} else {
		cand.GoodsID = goods.GoodsID
		cand.GoodsName = goods.GoodsName
		cand.BrandID = goods.BrandID
		cand.BrandName = goods.BrandName
		cand.VendorID = goods.VendorID
		cand.VendorName = goods.VendorName
		cand.ConsumerPrice = goods.ConsumerPrice
		cand.CatalogRate = goods.DiscountRate
	}
	s.doc.MergeIncoming(cand)
	s.show()
}

func (s *deskSession) find(ctx context.Context, query string) {
	results, err := s.client.SearchGoods(ctx, query, 20)
	if err != nil {
		fmt.Println(err)
		return
	}
	if len(results) == 0 {
		fmt.Println("no matches")
		return
	}
	for i, g := range results {
		fmt.Printf("%2d. %-10s %-30s %8d won\n", i+1, g.GoodsID, g.GoodsName, g.ConsumerPrice)
	}
	fmt.Print("pick: ")
	reader := bufio.NewReader(os.Stdin)
	picked, _ := reader.ReadString('\n')
	idx, err := strconv.Atoi(strings.TrimSpace(picked))
	if err != nil || idx < 1 || idx > len(results) {
		fmt.Println("cancelled")
		return
	}
	g := results[idx-1]
	s.doc.MergeIncoming(orderdoc.Candidate{
		Source:        orderdoc.SourceSearch,
		GoodsID:       g.GoodsID,
		GoodsName:     g.GoodsName,
		BrandID:       g.BrandID,
		BrandName:     g.BrandName,
		VendorID:      g.VendorID,
		VendorName:    g.VendorName,
		ConsumerPrice: g.ConsumerPrice,
		CatalogRate:   g.DiscountRate,
	})
	s.show()
}

func (s *deskSession) save(ctx context.Context) {
	report, err := s.saver.Save(ctx, s.doc)
	if err != nil {
		fmt.Printf("save failed: %v\n", err)
		return
	}
	fmt.Println(report.Summary())
	for _, msg := range report.Messages {
		fmt.Println("  " + msg)
	}
	if report.ReconcileErr != nil {
		fmt.Printf("  refresh failed: %v\n", report.ReconcileErr)
	}
	s.show()
}

// lineKey resolves a 1-based display index to the line's identity key.
func (s *deskSession) lineKey(arg string) (string, bool) {
	idx, err := strconv.Atoi(arg)
	if err != nil || idx < 1 || idx > len(s.doc.Lines) {
		fmt.Println("no such line")
		return "", false
	}
	return s.doc.Lines[idx-1].Key, true
}

func (s *deskSession) editInt(args []string, usage string, set func(string, int64) error) {
	if len(args) != 2 {
		fmt.Println("usage: " + usage)
		return
	}
	key, ok := s.lineKey(args[0])
	if !ok {
		return
	}
	value, err := strconv.ParseInt(args[1], 10, 64)
	if err != nil {
		fmt.Println("usage: " + usage)
		return
	}
	if err := set(key, value); err != nil {
		fmt.Println(err)
		return
	}
	s.show()
}

func (s *deskSession) editFloat(args []string, usage string, set func(string, float64) error) {
	if len(args) != 2 {
		fmt.Println("usage: " + usage)
		return
	}
	key, ok := s.lineKey(args[0])
	if !ok {
		return
	}
	value, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		fmt.Println("usage: " + usage)
		return
	}
	if err := set(key, value); err != nil {
		fmt.Println(err)
		return
	}
	s.show()
}

func (s *deskSession) show() {
	m := s.doc.Master
	orderNo := m.OrderNo
	if orderNo == "" {
		orderNo = "(unsaved)"
	}
	fmt.Printf("order %s  store %s  %s -> %s\n", orderNo, m.StoreID, m.OrderDate, m.RequiredDate)
	for i, l := range s.doc.Lines {
		flag := " "
		if s.doc.Dirty().IsDirty(l.Key) {
			flag = "*"
		}
		if l.Locked() {
			flag = "L"
		}
		fmt.Printf("%s%2d. %-10s %-24s qty %4d  @%7d  -%4.1f%%  = %8d\n",
			flag, i+1, l.GoodsID, l.GoodsName, l.Quantity, l.ConsumerPrice, l.DiscountRate, l.OrderTotal)
	}
	sum := s.doc.Summary
	fmt.Printf("   total qty %d  supply %d  vat %d  amount %d\n",
		sum.TotalQuantity, sum.TotalSupply, sum.TotalVat, sum.TotalAmount)
}
