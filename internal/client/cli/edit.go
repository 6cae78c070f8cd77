package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/iudanet/inkboard/internal/client/realtime"
	clientsync "github.com/iudanet/inkboard/internal/client/sync"
	"github.com/iudanet/inkboard/internal/document"
	"github.com/iudanet/inkboard/internal/models"
	"github.com/iudanet/inkboard/internal/validation"
	"github.com/iudanet/inkboard/pkg/api"
)

const (
	defaultStrokeColor = "#1e1e1e"
	defaultStrokeWidth = 2

	editPrompt = "inkboard> "
)

// editCommands команды, которые можно выполнить и отдельно, и внутри edit
var editCommands = map[string]struct{}{
	"draw":    {},
	"update":  {},
	"move":    {},
	"resize":  {},
	"reorder": {},
	"delete":  {},
	"rm":      {},
	"erase":   {},
	"bg":      {},
	"clear":   {},
}

// exec выполняет команду редактирования над открытым документом.
// quit=true завершает интерактивную сессию.
func (c *Cli) exec(sess *clientsync.Session, command string, args []string) (quit bool, err error) {
	store := sess.Store()

	switch command {
	case "draw":
		return false, c.draw(store, args)
	case "update":
		return false, c.update(store, args)
	case "move":
		return false, c.move(store, args)
	case "resize":
		return false, c.resize(store, args)
	case "reorder":
		return false, c.reorder(store, args)
	case "delete", "rm":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: delete <element-id>", ErrUsage)
		}
		if !store.DeleteElement(args[0]) {
			return false, fmt.Errorf("element %s: %w", args[0], document.ErrElementNotFound)
		}
		c.io.Printf("✓ Deleted %s\n", args[0])
	case "erase":
		return false, c.erase(store, args)
	case "bg":
		if len(args) != 1 {
			return false, fmt.Errorf("%w: bg <color>", ErrUsage)
		}
		if err := store.ChangeBackground(args[0]); err != nil {
			return false, err
		}
		c.io.Printf("✓ Background set to %s\n", args[0])
	case "clear":
		store.ClearCanvas()
		c.io.Println("✓ Canvas cleared")
	case "undo":
		if !store.Undo() {
			c.io.Println("Nothing to undo.")
		}
	case "redo":
		if !store.Redo() {
			c.io.Println("Nothing to redo.")
		}
	case "list", "ls":
		c.printElements(store.Elements())
	case "show":
		return false, c.render(documentTemplate, newDocumentView(sess))
	case "help":
		c.printEditHelp()
	case "quit", "exit", "q":
		return true, nil
	default:
		return false, fmt.Errorf("%w: unknown command %q, type 'help'", ErrUsage, command)
	}
	return false, nil
}

func (c *Cli) printEditHelp() {
	c.io.Println(`Commands:
  draw, update, move, resize, reorder, delete, erase, bg, clear
  undo, redo     step through local history
  list, show     print elements or document summary
  quit           send pending changes and exit`)
}

func (c *Cli) draw(store *document.Store, args []string) error {
	style := models.Style{
		StrokeColor: defaultStrokeColor,
		StrokeWidth: defaultStrokeWidth,
		StrokeStyle: models.StrokeSolid,
		Opacity:     models.DefaultOpacity,
	}
	var strokeStyle string

	fs := flag.NewFlagSet("draw", flag.ContinueOnError)
	fs.SetOutput(c.io)
	fs.StringVar(&style.StrokeColor, "stroke", style.StrokeColor, "stroke color")
	fs.StringVar(&style.FillColor, "fill", "", "fill color")
	fs.Float64Var(&style.StrokeWidth, "width", style.StrokeWidth, "stroke width")
	fs.StringVar(&strokeStyle, "style", string(models.StrokeSolid), "solid, dashed or dotted")
	fs.IntVar(&style.Opacity, "opacity", style.Opacity, "opacity 0-100")
	fs.Float64Var(&style.Roughness, "roughness", 0, "roughness")
	fs.StringVar(&style.EdgeStyle, "edge", "", "rounded or sharp")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	style.StrokeStyle = models.StrokeStyle(strokeStyle)
	if err := validateStyle(style); err != nil {
		return err
	}

	shape, err := parseShape(fs.Args())
	if err != nil {
		return err
	}

	el, ok := store.AddElement(models.Element{Style: style, Shape: shape})
	if !ok {
		return errors.New("element is too small to draw")
	}
	c.io.Printf("✓ Added %s %s\n", el.Kind(), el.ID)
	return nil
}

func validateStyle(s models.Style) error {
	if err := validation.ValidateColor(s.StrokeColor); err != nil {
		return fmt.Errorf("stroke: %w", err)
	}
	if s.FillColor != "" && s.FillColor != models.FillNone {
		if err := validation.ValidateColor(s.FillColor); err != nil {
			return fmt.Errorf("fill: %w", err)
		}
	}
	switch s.StrokeStyle {
	case models.StrokeSolid, models.StrokeDashed, models.StrokeDotted:
	default:
		return fmt.Errorf("unknown stroke style %q", s.StrokeStyle)
	}
	if s.Opacity < 0 || s.Opacity > 100 {
		return fmt.Errorf("opacity must be between 0 and 100, got %d", s.Opacity)
	}
	if s.StrokeWidth < 0 {
		return fmt.Errorf("stroke width must not be negative")
	}
	return nil
}

func (c *Cli) update(store *document.Store, args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("%w: update <element-id> key=value ...", ErrUsage)
	}
	patch, err := parsePatch(args[1:])
	if err != nil {
		return err
	}
	if err := store.UpdateElement(args[0], patch); err != nil {
		return err
	}
	c.io.Printf("✓ Updated %s\n", args[0])
	return nil
}

// move и resize выполняют жест одним кадром и сразу фиксируют его.
func (c *Cli) move(store *document.Store, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: move <element-id> dx dy", ErrUsage)
	}
	d, err := parseNumbers(args[1:])
	if err != nil {
		return err
	}
	if err := store.MoveElement(args[0], d[0], d[1]); err != nil {
		return err
	}
	if !store.CommitMove(args[0]) {
		return fmt.Errorf("failed to commit move of %s", args[0])
	}
	c.io.Printf("✓ Moved %s\n", args[0])
	return nil
}

func (c *Cli) resize(store *document.Store, args []string) error {
	if len(args) != 5 {
		return fmt.Errorf("%w: resize <element-id> x y w h", ErrUsage)
	}
	n, err := parseNumbers(args[1:])
	if err != nil {
		return err
	}
	box := models.Box{X: n[0], Y: n[1], Width: n[2], Height: n[3]}
	if err := store.ResizeElement(args[0], box); err != nil {
		return err
	}
	if !store.CommitResize(args[0]) {
		return fmt.Errorf("failed to commit resize of %s", args[0])
	}
	c.io.Printf("✓ Resized %s\n", args[0])
	return nil
}

func (c *Cli) reorder(store *document.Store, args []string) error {
	if len(args) != 2 {
		return fmt.Errorf("%w: reorder <element-id> forward|backward|front|back", ErrUsage)
	}
	if err := store.ReorderElement(args[0], models.Direction(args[1])); err != nil {
		return err
	}
	c.io.Printf("✓ Moved %s %s\n", args[0], args[1])
	return nil
}

func (c *Cli) erase(store *document.Store, args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("%w: erase x y radius", ErrUsage)
	}
	n, err := parseNumbers(args)
	if err != nil {
		return err
	}
	if n[2] <= 0 {
		return fmt.Errorf("radius must be positive")
	}
	if store.Erase(n[0], n[1], n[2]) == 0 {
		c.io.Println("Nothing to erase.")
		return nil
	}
	c.io.Println("✓ Erased")
	return nil
}

// runEdit интерактивный режим: история undo/redo живёт только в памяти,
// поэтому доступна в пределах одной сессии.
func (c *Cli) runEdit(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("edit", flag.ContinueOnError)
	fs.SetOutput(c.io)
	live := fs.Bool("live", false, "receive changes of other participants")
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}

	sess, err := c.openSession(ctx, fs.Arg(0))
	if err != nil {
		return err
	}

	subscribed := false
	defer func() {
		c.closeSession(ctx, sess)
		if subscribed {
			c.live.Unsubscribe(sess.DocumentID())
		}
	}()

	switch {
	case sess.Offline():
		c.io.Println("⚠️  Server unavailable: working offline, changes will not be saved")
	case *live:
		if c.live == nil {
			return errors.New("live editing is not configured")
		}
		if err := c.live.Subscribe(ctx, sess.DocumentID(), c.remoteHandler(sess)); err != nil {
			return fmt.Errorf("failed to join live session: %w", err)
		}
		subscribed = true
	}

	c.io.Printf("Editing %q (%s). Type 'help' for commands.\n", sess.Info().Title, sess.DocumentID())
	for {
		if ctx.Err() != nil {
			return nil
		}
		line, err := c.io.ReadLine(editPrompt)
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read command: %w", err)
		}

		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		quit, err := c.exec(sess, fields[0], fields[1:])
		if err != nil {
			c.io.Printf("Error: %v\n", err)
			continue
		}
		if quit {
			return nil
		}
	}
}

func (c *Cli) remoteHandler(sess *clientsync.Session) realtime.Handler {
	return func(msg api.PeerMessage) {
		// ошибки уже залогированы сессией
		_ = sess.ApplyRemote(msg)
	}
}
