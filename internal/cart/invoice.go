package cart

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/noah-isme/toko-pos/internal/money"
)

const (
	invoiceDelimiter = "+------------------------------------------------+----------+\n"
	invoiceRow       = "| %-40s %5s | %8s |\n"
	amountWidth      = 5
)

// InvoicePrinter formats a cart as a fixed-width text table.
type InvoicePrinter struct {
	cart *Cart
	out  strings.Builder
}

// NewInvoicePrinter binds a printer to cart.
func NewInvoicePrinter(c *Cart) *InvoicePrinter {
	return &InvoicePrinter{cart: c}
}

// String renders the invoice. It only reads the cart.
func (p *InvoicePrinter) String() string {
	p.out.Reset()
	p.printHeader()
	p.printItems()
	p.printTotal()
	return p.out.String()
}

func (p *InvoicePrinter) printHeader() {
	p.printDelimiter()
	p.printRow("Name", "qty", "price")
	p.printDelimiter()
}

func (p *InvoicePrinter) printItems() {
	for _, item := range p.cart.items {
		p.printRow(item.product.Name(), strconv.Itoa(item.count), amount(item.PriceWithoutDiscount()))
		if item.Discounted() {
			text := fmt.Sprintf("  (%s)", item.product.Promotion().InvoiceText())
			p.printRow(text, "", amount(item.Discount().Neg()))
		}
	}

	if discount := p.cart.CouponDiscount(); !discount.IsZero() {
		c := p.cart.coupon
		name := fmt.Sprintf("Coupon %s - %s", c.Name(), c.Description())
		p.printRow(name, "", amount(discount.Neg()))
	}
}

func (p *InvoicePrinter) printTotal() {
	p.printDelimiter()
	p.printRow("TOTAL", "", amount(p.cart.Total()))
	p.printDelimiter()
}

func (p *InvoicePrinter) printDelimiter() {
	p.out.WriteString(invoiceDelimiter)
}

func (p *InvoicePrinter) printRow(name, qty, price string) {
	fmt.Fprintf(&p.out, invoiceRow, name, qty, price)
}

func amount(m money.Money) string {
	return m.Pad(amountWidth)
}
