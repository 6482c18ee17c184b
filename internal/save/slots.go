// Package save maps full game-state snapshots to durable per-slot records on
// local disk. Three independent slots; corrupted or absent records degrade to
// empty-slot semantics instead of crashing.
package save

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"encore/internal/game"
)

var (
	ErrEmptySlot   = errors.New("save slot is empty")
	ErrCorruptSlot = errors.New("save slot is corrupted")
)

// SlotInfo is the listing view of one save slot.
type SlotInfo struct {
	Slot       int    `json:"slot"`
	Empty      bool   `json:"empty"`
	StageName  string `json:"stage_name,omitempty"`
	Week       int    `json:"week,omitempty"`
	Year       int    `json:"year,omitempty"`
	Level      int    `json:"level,omitempty"`
	LastPlayed string `json:"last_played,omitempty"`
}

// Manager owns the save directory. All methods are safe for concurrent use.
type Manager struct {
	mu  sync.Mutex
	dir string
}

// DefaultDir is ~/.encore.
func DefaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".encore"), nil
}

func NewManager(dir string) (*Manager, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create save dir: %w", err)
	}
	return &Manager{dir: dir}, nil
}

func (m *Manager) slotPath(slot int) string {
	return filepath.Join(m.dir, fmt.Sprintf("slot%d.json", slot))
}

func validSlot(slot int) error {
	if slot < 1 || slot > game.SaveSlots {
		return game.ErrInvalidSlot
	}
	return nil
}

// Save writes one slot atomically (temp file + rename) so a crash mid-write
// never corrupts the previous save.
func (m *Manager) Save(slot int, s game.State) error {
	if err := validSlot(slot); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	body, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	tmp := m.slotPath(slot) + ".tmp"
	if err := os.WriteFile(tmp, body, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, m.slotPath(slot))
}

// SaveSnapshot implements game.Saver: the snapshot carries its own slot.
func (m *Manager) SaveSnapshot(s game.State) error {
	return m.Save(s.Slot, s)
}

// Load reads one slot. A missing file is ErrEmptySlot; an unparseable file is
// ErrCorruptSlot. Callers treat both as "empty" for new-game purposes.
func (m *Manager) Load(slot int) (game.State, error) {
	if err := validSlot(slot); err != nil {
		return game.State{}, err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := os.ReadFile(m.slotPath(slot))
	if err != nil {
		if os.IsNotExist(err) {
			return game.State{}, ErrEmptySlot
		}
		return game.State{}, err
	}
	var s game.State
	if err := json.Unmarshal(raw, &s); err != nil {
		return game.State{}, fmt.Errorf("%w: %v", ErrCorruptSlot, err)
	}
	if !s.GameStarted {
		return game.State{}, ErrEmptySlot
	}
	s.Slot = slot
	return s, nil
}

// Delete clears one slot. Deleting an empty slot is a no-op.
func (m *Manager) Delete(slot int) error {
	if err := validSlot(slot); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, err := os.Stat(m.slotPath(slot)); err != nil {
		return nil
	}
	return os.Remove(m.slotPath(slot))
}

// List summarizes all three slots, tolerating corrupt records.
func (m *Manager) List() []SlotInfo {
	out := make([]SlotInfo, 0, game.SaveSlots)
	for slot := 1; slot <= game.SaveSlots; slot++ {
		s, err := m.Load(slot)
		if err != nil {
			out = append(out, SlotInfo{Slot: slot, Empty: true})
			continue
		}
		out = append(out, SlotInfo{
			Slot:       slot,
			StageName:  s.Player.StageName,
			Week:       s.Player.Week,
			Year:       s.Player.Year,
			Level:      game.CurrentLevel(s.Player.Fame, s.Player.Reputation).ID,
			LastPlayed: s.LastPlayed.Format("2006-01-02 15:04"),
		})
	}
	return out
}

func (m *Manager) activePath() string {
	return filepath.Join(m.dir, "active.json")
}

type activeRecord struct {
	Slot int `json:"slot"`
}

// ActiveSlot reports which slot the session plays in; defaults to 1.
func (m *Manager) ActiveSlot() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, err := os.ReadFile(m.activePath())
	if err != nil {
		return 1
	}
	var rec activeRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return 1
	}
	if rec.Slot < 1 || rec.Slot > game.SaveSlots {
		return 1
	}
	return rec.Slot
}

// SetActiveSlot records the session's slot binding.
func (m *Manager) SetActiveSlot(slot int) error {
	if err := validSlot(slot); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	body, err := json.MarshalIndent(activeRecord{Slot: slot}, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(m.activePath(), body, 0o600)
}
