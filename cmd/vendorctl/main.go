// vendorctl lets a vendor sign in and work through incoming orders from a
// terminal.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/joho/godotenv"

	"kisan-be/internal/apperror"
	"kisan-be/internal/client"
	"kisan-be/internal/fulfillment"
	"kisan-be/internal/logger"
	"kisan-be/internal/money"
	"kisan-be/internal/order"
	"kisan-be/internal/session"
	"kisan-be/internal/utils"
)

const usage = `usage: vendorctl <command> [flags]

commands:
  login -email <email> -password <password>
  logout
  whoami
  orders
  advance <order-id> <status>
`

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))
	defer logger.Sync()

	if err := run(context.Background(), os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		if apperror.KindOf(err) == apperror.KindNotFound {
			fmt.Fprintln(os.Stderr, "run `vendorctl login` first")
		}
		os.Exit(1)
	}
}

type env struct {
	sessions *session.Manager
	api      *client.Client
	out      io.Writer
}

func run(ctx context.Context, args []string, out io.Writer) error {
	if len(args) == 0 {
		fmt.Fprint(out, usage)
		return errors.New("missing command")
	}

	store, err := session.OpenBoltStore(sessionPath())
	if err != nil {
		return err
	}
	defer store.Close()

	sessions, err := session.NewManager(store)
	if err != nil {
		return err
	}

	e := &env{
		sessions: sessions,
		api:      client.New(apiURL(), sessions, nil),
		out:      out,
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "login":
		return e.login(ctx, rest)
	case "logout":
		return e.logout()
	case "whoami":
		return e.whoami(ctx)
	case "orders":
		return e.orders(ctx)
	case "advance":
		return e.advance(ctx, rest)
	default:
		fmt.Fprint(out, usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func apiURL() string {
	if v := os.Getenv("KISAN_API_URL"); v != "" {
		return v
	}
	return "http://localhost:8080"
}

func sessionPath() string {
	if v := os.Getenv("KISAN_SESSION_FILE"); v != "" {
		return v
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "vendorctl-session.db"
	}
	_ = os.MkdirAll(filepath.Join(dir, "kisan"), 0o700)
	return filepath.Join(dir, "kisan", "session.db")
}

func (e *env) login(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ContinueOnError)
	fs.SetOutput(e.out)
	email := fs.String("email", "", "vendor email")
	password := fs.String("password", os.Getenv("KISAN_PASSWORD"), "vendor password")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sess, err := e.api.VendorLogin(ctx, *email, *password)
	if err != nil {
		return err
	}
	if err := e.sessions.Login(sess); err != nil {
		return err
	}
	fmt.Fprintf(e.out, "signed in as %s (%s)\n", sess.Name, sess.Email)
	return nil
}

func (e *env) logout() error {
	if err := e.sessions.Logout(); err != nil {
		return err
	}
	fmt.Fprintln(e.out, "signed out")
	return nil
}

func (e *env) whoami(ctx context.Context) error {
	sess, err := e.sessions.Current()
	if err != nil {
		return err
	}
	v, err := e.api.VendorMe(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(e.out, "%s <%s> vendor #%d, GST %s\n", v.FullName, v.Email, sess.VendorID, v.GSTID)
	return nil
}

func (e *env) orders(ctx context.Context) error {
	board := fulfillment.NewBoard(e.api)
	if err := board.Load(ctx); err != nil {
		return err
	}
	printOrders(e.out, board.Orders())
	return nil
}

func (e *env) advance(ctx context.Context, args []string) error {
	if len(args) != 2 {
		return apperror.Validation("usage: advance <order-id> <status>", nil)
	}
	id, err := utils.ToUint(args[0])
	if err != nil {
		return apperror.Validation("invalid order id", map[string]string{"order_id": err.Error()})
	}
	target, err := order.ParseTarget(args[1])
	if err != nil {
		return err
	}

	board := fulfillment.NewBoard(e.api)
	if err := board.Load(ctx); err != nil {
		return err
	}
	o, err := board.Advance(ctx, id, target)
	if err != nil {
		if o.ID != 0 {
			fmt.Fprintf(e.out, "order #%d unchanged (%s)\n", id, o.Status)
		}
		return err
	}
	fmt.Fprintf(e.out, "order #%d is now %s\n", o.ID, o.Status)
	return nil
}

func printOrders(out io.Writer, orders []order.Order) {
	if len(orders) == 0 {
		fmt.Fprintln(out, "no orders yet")
		return
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRODUCT\tQTY\tTOTAL\tSTATUS\tPLACED")
	for _, o := range orders {
		fmt.Fprintf(w, "#%d\t%s\t%d\t%s\t%s\t%s\n",
			o.ID, o.ProductName, o.Quantity, money.Format(o.Total), o.Status, o.CreatedAt.Format(time.DateTime))
	}
	_ = w.Flush()
}
