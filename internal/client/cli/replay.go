package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/iudanet/inkboard/internal/models"
	"github.com/iudanet/inkboard/internal/replay"
)

// eventLog экспортированный журнал документа
type eventLog struct {
	Snapshot *models.Snapshot `json:"snapshot,omitempty"`
	Events   []models.Event   `json:"events"`
}

type replayView struct {
	Background    string
	SnapshotOrder int64
	LastOrder     int64
	Applied       int
	Skipped       int
	Duplicates    int
	Elements      int
}

// runReplay восстанавливает документ из файла без обращения к серверу.
func (c *Cli) runReplay(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: replay <file>", ErrUsage)
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read event log: %w", err)
	}
	var log eventLog
	if err := json.Unmarshal(data, &log); err != nil {
		return fmt.Errorf("failed to parse event log: %w", err)
	}

	base := models.EmptySnapshot()
	if log.Snapshot != nil {
		base = *log.Snapshot
	}

	res := replay.Replay(base, log.Events, replay.WithDiagnostics(func(ev models.Event, err error) {
		c.io.Printf("⚠️  skipped event %d (%s): %v\n", ev.Order, ev.Type, err)
	}))

	if err := c.render(replayTemplate, replayView{
		Background:    res.Document.BackgroundColor,
		SnapshotOrder: base.LastEventOrder,
		LastOrder:     res.LastEventOrder,
		Applied:       res.Applied,
		Skipped:       res.Skipped,
		Duplicates:    res.Duplicates,
		Elements:      len(res.Document.Elements),
	}); err != nil {
		return err
	}
	c.io.Println()
	c.printElements(res.Document.Elements)
	return nil
}
