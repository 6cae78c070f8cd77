package api

import (
	"encoding/json"
	"fmt"

	"github.com/iudanet/inkboard/internal/crypto"
	"github.com/iudanet/inkboard/internal/models"
	"github.com/iudanet/inkboard/pkg/api"
)

func eventsToWire(events []models.Event) []api.Event {
	out := make([]api.Event, 0, len(events))
	for _, ev := range events {
		out = append(out, api.Event{
			EventType:  string(ev.Type),
			EventData:  ev.Payload,
			EventOrder: ev.Order,
		})
	}
	return out
}

func eventsFromWire(events []api.Event) []models.Event {
	out := make([]models.Event, 0, len(events))
	for _, ev := range events {
		out = append(out, models.Event{
			Type:    models.EventType(ev.EventType),
			Payload: ev.EventData,
			Order:   ev.EventOrder,
		})
	}
	return out
}

func infoFromResponse(resp api.DocumentResponse) models.DocumentInfo {
	return models.DocumentInfo{
		ID:        resp.ID,
		Title:     resp.Title,
		CreatedAt: resp.CreatedAt,
		UpdatedAt: resp.UpdatedAt,
	}
}

func snapshotToWire(s models.Snapshot) (api.Snapshot, error) {
	elements := s.Elements
	if elements == nil {
		elements = []models.Element{}
	}
	data, err := json.Marshal(elements)
	if err != nil {
		return api.Snapshot{}, fmt.Errorf("failed to marshal snapshot elements: %w", err)
	}
	return api.Snapshot{
		Elements:        data,
		BackgroundColor: s.BackgroundColor,
		LastEventOrder:  s.LastEventOrder,
		Checksum:        crypto.Checksum(data),
	}, nil
}

// snapshotFromWire проверяет контрольную сумму (если есть) и разбирает элементы.
func snapshotFromWire(s api.Snapshot) (models.Snapshot, error) {
	if s.Checksum != "" {
		if err := crypto.VerifyChecksum(s.Elements, s.Checksum); err != nil {
			return models.Snapshot{}, err
		}
	}
	elements := []models.Element{}
	if len(s.Elements) > 0 {
		if err := json.Unmarshal(s.Elements, &elements); err != nil {
			return models.Snapshot{}, fmt.Errorf("failed to decode snapshot elements: %w", err)
		}
	}
	return models.Snapshot{
		Elements:        elements,
		BackgroundColor: s.BackgroundColor,
		LastEventOrder:  s.LastEventOrder,
	}, nil
}
