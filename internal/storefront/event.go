package storefront

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

type EventKind int

const (
	ShowProducts EventKind = iota + 1
	ShowProduct
	StepUp
	StepDown
	AddToCart
	ShowCart
	IncrementLine
	DecrementLine
	RemoveLine
	Checkout
)

var eventNames = map[EventKind]string{
	ShowProducts:  "show_products",
	ShowProduct:   "show_product",
	StepUp:        "step_up",
	StepDown:      "step_down",
	AddToCart:     "add_to_cart",
	ShowCart:      "show_cart",
	IncrementLine: "increment_line",
	DecrementLine: "decrement_line",
	RemoveLine:    "remove_line",
	Checkout:      "checkout",
}

func (k EventKind) String() string {
	if s, ok := eventNames[k]; ok {
		return s
	}
	return "event(" + strconv.Itoa(int(k)) + ")"
}

// Event is one user interaction. ID names a product where the kind needs
// one; Quantity is only read by AddToCart with an explicit ID.
type Event struct {
	Kind     EventKind
	ID       string
	Quantity int
}

var (
	ErrQuit = errors.New("quit")
	ErrHelp = errors.New("help")
)

const HelpText = `Commands:
  products | ls        list products
  show <id>            open product details
  + / -                change quantity of the open product
  add                  add the open product at the chosen quantity
  add <id> [qty]       add a product directly
  cart                 show the cart
  inc <id> / dec <id>  change a cart line quantity
  rm <id>              remove a cart line
  checkout             place the (demo) order
  help | quit`

// ParseCommand maps one line of interactive input to an Event.
func ParseCommand(line string) (Event, error) {
	f := strings.Fields(line)
	if len(f) == 0 {
		return Event{}, ErrHelp
	}

	cmd, args := strings.ToLower(f[0]), f[1:]
	switch cmd {
	case "products", "ls", "list":
		return Event{Kind: ShowProducts}, nil
	case "show", "details":
		id, err := oneArg(cmd, args)
		return Event{Kind: ShowProduct, ID: id}, err
	case "+":
		return Event{Kind: StepUp}, nil
	case "-":
		return Event{Kind: StepDown}, nil
	case "add":
		return parseAdd(args)
	case "cart":
		return Event{Kind: ShowCart}, nil
	case "inc":
		id, err := oneArg(cmd, args)
		return Event{Kind: IncrementLine, ID: id}, err
	case "dec":
		id, err := oneArg(cmd, args)
		return Event{Kind: DecrementLine, ID: id}, err
	case "rm", "remove":
		id, err := oneArg(cmd, args)
		return Event{Kind: RemoveLine, ID: id}, err
	case "checkout":
		return Event{Kind: Checkout}, nil
	case "help", "?":
		return Event{}, ErrHelp
	case "quit", "exit", "q":
		return Event{}, ErrQuit
	default:
		return Event{}, fmt.Errorf("unknown command %q (try 'help')", cmd)
	}
}

func oneArg(cmd string, args []string) (string, error) {
	if len(args) != 1 {
		return "", fmt.Errorf("usage: %s <id>", cmd)
	}
	return args[0], nil
}

// parseAdd accepts "add" for the open product and "add <id> [qty]".
func parseAdd(args []string) (Event, error) {
	switch len(args) {
	case 0:
		return Event{Kind: AddToCart}, nil
	case 1:
		return Event{Kind: AddToCart, ID: args[0], Quantity: 1}, nil
	case 2:
		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return Event{}, fmt.Errorf("quantity must be a positive integer, got %q", args[1])
		}
		return Event{Kind: AddToCart, ID: args[0], Quantity: n}, nil
	default:
		return Event{}, errors.New("usage: add [<id> [qty]]")
	}
}
