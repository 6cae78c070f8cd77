package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/iudanet/inkboard/internal/client/storage"
	clientsync "github.com/iudanet/inkboard/internal/client/sync"
	"github.com/iudanet/inkboard/internal/geometry"
	"github.com/iudanet/inkboard/internal/models"
)

type documentView struct {
	UpdatedAt  time.Time
	Title      string
	ID         string
	Background string
	LastOrder  int64
	Elements   int
	Pending    int
	Offline    bool
}

func newDocumentView(sess *clientsync.Session) documentView {
	info := sess.Info()
	return documentView{
		UpdatedAt:  info.UpdatedAt,
		Title:      info.Title,
		ID:         sess.DocumentID(),
		Background: sess.Store().Background(),
		LastOrder:  sess.LastOrder(),
		Elements:   len(sess.Store().Elements()),
		Pending:    sess.Pending(),
		Offline:    sess.Offline(),
	}
}

func (c *Cli) render(text string, data any) error {
	tmpl, err := template.New("view").Parse(text)
	if err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	if err := tmpl.Execute(c.io, data); err != nil {
		return fmt.Errorf("failed to render: %w", err)
	}
	return nil
}

func (c *Cli) runNew(ctx context.Context, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return fmt.Errorf("%w: missing title. Usage: inkboard new <title>", ErrUsage)
	}

	sess, err := c.service.Create(ctx, title)
	if err != nil {
		return fmt.Errorf("failed to create document: %w", err)
	}
	defer c.closeSession(ctx, sess)

	if sess.Offline() {
		c.io.Println("⚠️  Server unavailable: the document exists only in this session")
		return nil
	}

	c.io.Println("✓ Document created")
	c.io.Printf("ID: %s\n", sess.DocumentID())
	return nil
}

func (c *Cli) runShow(ctx context.Context, args []string) error {
	id := ""
	if len(args) > 0 {
		id = args[0]
	}
	sess, err := c.openSession(ctx, id)
	if err != nil {
		return err
	}
	defer c.closeSession(ctx, sess)

	return c.render(documentTemplate, newDocumentView(sess))
}

func (c *Cli) runList(ctx context.Context, args []string) error {
	id := ""
	if len(args) > 0 {
		id = args[0]
	}
	sess, err := c.openSession(ctx, id)
	if err != nil {
		return err
	}
	defer c.closeSession(ctx, sess)

	c.printElements(sess.Store().Elements())
	return nil
}

// printElements выводит элементы от заднего плана к переднему.
func (c *Cli) printElements(elements []models.Element) {
	if len(elements) == 0 {
		c.io.Println("No elements.")
		return
	}

	c.io.Printf("Found %d element(s):\n\n", len(elements))
	for i, el := range elements {
		c.io.Printf("%3d. %-8s %s  %s\n", i+1, el.Kind(), el.ID, describe(el))
	}
}

func describe(el models.Element) string {
	bb := geometry.BoundingBox(el)
	var b strings.Builder
	fmt.Fprintf(&b, "x=%g y=%g w=%g h=%g", bb.X, bb.Y, bb.Width, bb.Height)

	switch s := el.Shape.(type) {
	case models.Text:
		fmt.Fprintf(&b, " text=%q", s.Text)
	case models.Image:
		fmt.Fprintf(&b, " src=%s", s.Src)
	case models.Freehand:
		fmt.Fprintf(&b, " points=%d", len(s.Points))
	case models.Arrow:
		if !s.HasHead() {
			b.WriteString(" line")
		}
	}

	if el.Style.StrokeColor != "" {
		fmt.Fprintf(&b, " stroke=%s", el.Style.StrokeColor)
	}
	if el.Style.Filled() {
		fmt.Fprintf(&b, " fill=%s", el.Style.FillColor)
	}
	return b.String()
}

func (c *Cli) runTitle(ctx context.Context, args []string) error {
	title := strings.TrimSpace(strings.Join(args, " "))
	if title == "" {
		return fmt.Errorf("%w: missing title. Usage: inkboard title <title>", ErrUsage)
	}

	return c.withSession(ctx, func(sess *clientsync.Session) error {
		if err := sess.SetTitle(ctx, title); err != nil {
			if errors.Is(err, clientsync.ErrOffline) {
				return fmt.Errorf("cannot rename: server unavailable")
			}
			return err
		}
		c.io.Printf("✓ Title changed to %q\n", title)
		return nil
	})
}

func (c *Cli) runStatus(ctx context.Context) error {
	c.io.Println("=== Status ===")
	c.io.Println()

	if c.health != nil {
		resp, err := c.health.Health(ctx)
		switch {
		case err != nil:
			c.io.Printf("Server:   unreachable (%v)\n", err)
		case resp.Version != "":
			c.io.Printf("Server:   %s (version %s)\n", resp.Status, resp.Version)
		default:
			c.io.Printf("Server:   %s\n", resp.Status)
		}
	}

	id := c.documentID
	if id == "" && c.metadata != nil {
		last, err := c.metadata.GetLastDocumentID(ctx)
		if err != nil && !errors.Is(err, storage.ErrNoDocument) {
			return fmt.Errorf("failed to get last document: %w", err)
		}
		id = last
	}
	if id == "" {
		c.io.Println("Document: none")
		return nil
	}
	c.io.Printf("Document: %s\n", id)

	if c.outbox == nil {
		return nil
	}
	pending, err := c.outbox.Pending(ctx, id)
	if err != nil {
		// не прерываем вывод статуса
		c.io.Printf("\nWarning: failed to read local queue: %v\n", err)
		return nil
	}

	c.io.Println()
	if len(pending) > 0 {
		c.io.Printf("⚠️  Pending: %d event(s) waiting to be sent\n", len(pending))
		c.io.Println("Open the document to retry sending.")
	} else {
		c.io.Println("✓ All changes sent to server")
	}
	return nil
}
