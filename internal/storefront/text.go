package storefront

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// TextRenderer draws the storefront as plain text for a terminal.
type TextRenderer struct {
	W io.Writer
}

func NewTextRenderer(w io.Writer) *TextRenderer {
	return &TextRenderer{W: w}
}

func (t *TextRenderer) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(t.W, format, args...)
}

func (t *TextRenderer) Loading(what string) {
	t.printf("Loading %s...\n", what)
}

func (t *TextRenderer) Products(cards []ProductCard) {
	if len(cards) == 0 {
		t.printf("No products available\n")
		return
	}

	tw := tabwriter.NewWriter(t.W, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tPRICE")
	for _, c := range cards {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t$%s\n", c.ID, c.Name, c.Price.StringFixed(2))
		_, _ = fmt.Fprintf(tw, "\t  %s\t\n", c.Summary)
	}
	_ = tw.Flush()
	t.printf("Type 'show <id>' for details.\n")
}

func (t *TextRenderer) Detail(v DetailView) {
	p := v.Product
	status := "In Stock"
	if !p.InStock {
		status = "Out of Stock"
	}

	t.printf("%s\n%s\n", p.Name, strings.Repeat("=", len([]rune(p.Name))))
	t.printf("$%s\n", p.Price.StringFixed(2))
	if p.Image != "" {
		t.printf("Image: %s\n", p.Image)
	}
	t.printf("%s\n", p.Description)
	t.printf("Category: %s\n", p.Category)
	t.printf("Status: %s\n", status)
	t.printf("Quantity: [-] %d [+]\n", v.Quantity)
	if v.CanAdd() {
		t.printf("Type 'add' to add to cart.\n")
	} else {
		t.printf("(Add to Cart unavailable)\n")
	}
}

func (t *TextRenderer) Cart(v CartView) {
	t.printf("Shopping Cart\n")
	if len(v.Lines) == 0 {
		t.printf("Your cart is empty\n")
		return
	}

	tw := tabwriter.NewWriter(t.W, 0, 4, 2, ' ', 0)
	_, _ = fmt.Fprintln(tw, "ID\tNAME\tEACH\tQTY\tSUBTOTAL")
	for _, l := range v.Lines {
		_, _ = fmt.Fprintf(tw, "%s\t%s\t$%s\t%d\t$%s\n",
			l.ProductRef, l.Name, l.Price.StringFixed(2), l.Quantity, l.Subtotal().StringFixed(2))
	}
	_ = tw.Flush()
	t.printf("Total: $%s\n", v.Total.StringFixed(2))
	t.printf("Use 'inc <id>', 'dec <id>', 'rm <id>' or 'checkout'.\n")
}

func (t *TextRenderer) Badge(label string) {
	t.printf("[%s]\n", label)
}

func (t *TextRenderer) Notice(msg string) {
	t.printf("%s\n", msg)
}

func (t *TextRenderer) Error(msg string) {
	t.printf("Error: %s\n", msg)
}

func (t *TextRenderer) NotFound(id string) {
	t.printf("Product not found: %s\n", id)
}

func (t *TextRenderer) Prompt() {
	t.printf("> ")
}
