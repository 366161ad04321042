// Package terminal implements the line-oriented storefront client.
package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/noah-isme/farmer-shop/internal/cart"
	"github.com/noah-isme/farmer-shop/internal/catalog"
	"github.com/noah-isme/farmer-shop/internal/checkout"
	"github.com/noah-isme/farmer-shop/internal/pricing"
	"github.com/noah-isme/farmer-shop/internal/session"
)

const helpText = `Commands:
  list            show all products
  search <text>   filter products by name
  add <id>        add one unit of a product to the cart
  cart            show the cart
  checkout        print the invoice and empty the cart
  help            show this help
  quit            exit
`

// Shell reads commands from In and writes the storefront to Out.
type Shell struct {
	Session *session.Session
	In      io.Reader
	Out     io.Writer
	Prompt  string
}

// Run processes commands until quit, EOF or ctx cancellation.
func (s *Shell) Run(ctx context.Context) error {
	if s.Session == nil {
		return errors.New("terminal: session not configured")
	}
	prompt := s.Prompt
	if prompt == "" {
		prompt = "> "
	}
	if notice := s.Session.Notice(); notice != "" {
		fmt.Fprintln(s.Out, notice)
	}
	scanner := bufio.NewScanner(s.In)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		fmt.Fprint(s.Out, prompt)
		if !scanner.Scan() {
			fmt.Fprintln(s.Out)
			return scanner.Err()
		}
		if quit := s.Exec(ctx, scanner.Text()); quit {
			return nil
		}
	}
}

// Exec runs one command line and reports whether the shell should exit.
func (s *Shell) Exec(ctx context.Context, line string) bool {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	switch strings.ToLower(cmd) {
	case "":
	case "list":
		s.printProducts(s.Session.Catalog(""))
	case "search":
		s.printProducts(s.Session.Catalog(arg))
	case "add":
		id := strings.TrimSpace(arg)
		if id == "" {
			fmt.Fprintln(s.Out, "usage: add <id>")
			return false
		}
		view, _ := s.Session.AddItem(catalog.ProductID(id))
		fmt.Fprintf(s.Out, "Cart: %d item(s), total %s\n", view.TotalQuantity, pricing.Format(view.GrandTotal))
	case "cart":
		s.printCart(s.Session.View())
	case "checkout":
		s.checkout(ctx)
	case "help":
		fmt.Fprint(s.Out, helpText)
	case "quit", "exit":
		return true
	default:
		fmt.Fprintf(s.Out, "unknown command %q, type help\n", cmd)
	}
	return false
}

func (s *Shell) checkout(ctx context.Context) {
	doc, err := s.Session.Checkout(ctx)
	switch {
	case errors.Is(err, checkout.ErrCartEmpty):
		fmt.Fprintln(s.Out, "Your cart is empty!")
	case err != nil:
		fmt.Fprintf(s.Out, "checkout failed: %v\n", err)
	default:
		inv := doc.Invoice
		fmt.Fprintf(s.Out, "%s\nPrinted on: %s\n", inv.Vendor, inv.Timestamp())
		s.printLines(inv.Lines)
		fmt.Fprintf(s.Out, "Subtotal: %s\nGST (%s%%): %s\nGrand Total: %s\n",
			pricing.Format(inv.Subtotal), pricing.Percent(inv.TaxRate),
			pricing.Format(inv.Tax), pricing.Format(inv.GrandTotal))
		fmt.Fprintf(s.Out, "Invoice %s sent to printer.\n", inv.ID)
	}
}

func (s *Shell) printProducts(products []catalog.Product) {
	if len(products) == 0 {
		fmt.Fprintln(s.Out, "No products found.")
		return
	}
	tw := tabwriter.NewWriter(s.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tName\tPrice")
	for _, p := range products {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", p.ID, p.Name, pricing.Format(p.Price))
	}
	_ = tw.Flush()
}

func (s *Shell) printCart(view cart.View) {
	if view.Empty() {
		fmt.Fprintln(s.Out, "Your cart is empty.")
		return
	}
	s.printLines(view.Lines)
	fmt.Fprintf(s.Out, "Items: %d\nSubtotal: %s\nGST (%s%%): %s\nGrand Total: %s\n",
		view.TotalQuantity, pricing.Format(view.Subtotal), pricing.Percent(view.TaxRate),
		pricing.Format(view.Tax), pricing.Format(view.GrandTotal))
}

func (s *Shell) printLines(lines []cart.LineView) {
	tw := tabwriter.NewWriter(s.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "Product Name\tQuantity\tPrice\tTotal")
	for _, l := range lines {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\n", l.Name, l.Quantity, pricing.Format(l.UnitPrice), pricing.Format(l.LineTotal))
	}
	_ = tw.Flush()
}
