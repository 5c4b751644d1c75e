// Package invoice lays out a bill as a one-page receipt (more pages when the
// service list runs long) and renders it to PDF.
package invoice

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Positions are kept in tenths of a point so page breaks do not depend on
// floating point accumulation. US Letter, one-inch margins.
const (
	pageWidthPt  = 612.0
	pageHeightPt = 792.0

	marginX     = 720
	marginTop   = 720
	bottomLimit = 7920 - 720

	titleY    = 720
	subtitleY = 936
	billIDY   = 1440
	dateY     = 1656
	customerY = 2016
	servicesY = 2880
	firstLine = 3096
	lineStep  = 216
	totalGap  = 144
	statusGap = 360
)

// Font is a core PDF font choice.
type Font struct {
	Family string
	Bold   bool
	Size   float64
}

var (
	fontTitle    = Font{Family: "Helvetica", Bold: true, Size: 24}
	fontSubtitle = Font{Family: "Helvetica", Size: 10}
	fontHeading  = Font{Family: "Helvetica", Bold: true, Size: 12}
	fontLine     = Font{Family: "Helvetica", Size: 11}
	fontTotal    = Font{Family: "Helvetica", Bold: true, Size: 14}
)

// TextItem is one string drawn with its baseline at Y points from the top of
// page Page (zero based).
type TextItem struct {
	Page int
	X, Y float64
	Font Font
	Text string
}

// Layout is the backend-neutral description of an invoice.
type Layout struct {
	Title     string
	CreatedAt time.Time
	Pages     int
	Items     []TextItem
}

// PageItems returns the items on page p in drawing order.
func (l Layout) PageItems(p int) []TextItem {
	var out []TextItem
	for _, it := range l.Items {
		if it.Page == p {
			out = append(out, it)
		}
	}
	return out
}

// Texts returns every drawn string in order.
func (l Layout) Texts() []string {
	out := make([]string, len(l.Items))
	for i, it := range l.Items {
		out[i] = it.Text
	}
	return out
}

// Invoice is a bill with its references resolved for printing.
type Invoice struct {
	SalonName     string
	BillID        string
	CreatedAt     time.Time
	CustomerName  string
	CustomerPhone string
	Lines         []Line
	// Total is the amount stored on the bill, not a sum of Lines.
	Total  decimal.Decimal
	Status string
}

// Line is one printed service row. Amount is the current price times quantity.
type Line struct {
	Name     string
	Quantity int
	Amount   decimal.Decimal
}

type builder struct {
	page  int
	items []TextItem
}

func (b *builder) add(y int, f Font, text string) {
	b.items = append(b.items, TextItem{
		Page: b.page,
		X:    float64(marginX) / 10,
		Y:    float64(y) / 10,
		Font: f,
		Text: text,
	})
}

// BuildLayout positions every string of the invoice. It is pure: equal input
// gives an equal layout.
func BuildLayout(inv Invoice) Layout {
	b := &builder{}
	b.add(titleY, fontTitle, inv.SalonName)
	b.add(subtitleY, fontSubtitle, "Invoice / Receipt")
	b.add(billIDY, fontHeading, "Bill ID: "+inv.BillID)
	b.add(dateY, fontHeading, "Date: "+inv.CreatedAt.Format("2006-01-02 15:04"))
	b.add(customerY, fontHeading, fmt.Sprintf("Customer: %s (%s)", inv.CustomerName, inv.CustomerPhone))
	b.add(servicesY, fontHeading, "Services:")

	y := firstLine
	for _, l := range inv.Lines {
		if y > bottomLimit {
			b.page++
			y = marginTop
		}
		b.add(y, fontLine, fmt.Sprintf("%s x %d - Rs. %s", l.Name, l.Quantity, l.Amount.String()))
		y += lineStep
	}

	if y+statusGap > bottomLimit {
		b.page++
		y = marginTop - totalGap
	}
	b.add(y+totalGap, fontTotal, "Total: Rs. "+inv.Total.String())
	b.add(y+statusGap, fontTotal, "Status: "+cases.Upper(language.Und).String(inv.Status))

	return Layout{
		Title:     fmt.Sprintf("%s invoice %s", inv.SalonName, inv.BillID),
		CreatedAt: inv.CreatedAt,
		Pages:     b.page + 1,
		Items:     b.items,
	}
}
