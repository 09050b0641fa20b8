package wallet

import (
	"errors"
	"testing"

	"github.com/vovakirdan/skytower/internal/config"
	"github.com/vovakirdan/skytower/internal/core"
)

type memStore struct {
	items   map[string][]byte
	loadErr error
	saveErr error
	saves   int
}

func newMemStore() *memStore {
	return &memStore{items: make(map[string][]byte)}
}

func (m *memStore) LoadItem(key string) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.items[key], nil
}

func (m *memStore) SaveItem(key string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.items[key] = append([]byte(nil), data...)
	return nil
}

func catalog() []config.SkinConfig {
	return config.DefaultTowerConfig().Skins
}

func TestFreshWallet(t *testing.T) {
	w := New(newMemStore(), catalog(), nil)

	if w.Balance() != 0 {
		t.Errorf("Balance() = %d, expected 0", w.Balance())
	}
	if cur := w.Current(); cur.ID != "default" {
		t.Errorf("Current() = %q, expected default", cur.ID)
	}
	if !w.Owns("default") || w.Owns("gold") {
		t.Errorf("Owned() = %v", w.Owned())
	}
	if w.CurrentColor() != core.ColorBrightCyan {
		t.Errorf("CurrentColor() = %v", w.CurrentColor())
	}
}

func TestCorruptBlobFallsBack(t *testing.T) {
	tests := []struct {
		name  string
		store *memStore
	}{
		{"garbage", &memStore{items: map[string][]byte{itemKey: []byte("{not json")}}},
		{"load error", &memStore{items: map[string][]byte{}, loadErr: errors.New("disk gone")}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := New(tc.store, catalog(), nil)
			if w.Balance() != 0 || w.Current().ID != "default" {
				t.Errorf("fallback wallet = %d coins, skin %q", w.Balance(), w.Current().ID)
			}
		})
	}
}

func TestLoadSanitizesBlob(t *testing.T) {
	store := newMemStore()
	store.items[itemKey] = []byte(`{"coins":-5,"owned":["retired","moss"],"current":"retired"}`)

	w := New(store, catalog(), nil)
	if w.Balance() != 0 {
		t.Errorf("negative balance kept: %d", w.Balance())
	}
	if w.Owns("retired") {
		t.Error("skins outside the catalog should be dropped")
	}
	if !w.Owns("default") || !w.Owns("moss") {
		t.Errorf("Owned() = %v", w.Owned())
	}
	if w.Current().ID != "default" {
		t.Errorf("Current() = %q, expected default", w.Current().ID)
	}
}

func TestCreditRun(t *testing.T) {
	store := newMemStore()
	w := New(store, catalog(), nil)

	tests := []struct {
		floor int
		coins int
	}{
		{0, 0}, {9, 0}, {10, 1}, {57, 5}, {100, 10},
	}
	total := 0
	for _, tc := range tests {
		got, err := w.CreditRun(core.RunSummary{Floor: tc.floor}, 10)
		if err != nil {
			t.Fatalf("CreditRun(%d) failed: %v", tc.floor, err)
		}
		if got != tc.coins {
			t.Errorf("CreditRun(floor %d) = %d coins, expected %d", tc.floor, got, tc.coins)
		}
		total += tc.coins
	}
	if w.Balance() != total {
		t.Errorf("Balance() = %d, expected %d", w.Balance(), total)
	}

	// Persisted and reloaded
	if again := New(store, catalog(), nil); again.Balance() != total {
		t.Errorf("reloaded balance = %d, expected %d", again.Balance(), total)
	}
}

func TestCreditPracticeRun(t *testing.T) {
	tests := []struct {
		name  string
		run   core.RunSummary
		coins int
	}{
		{"idle at start floor", core.RunSummary{Floor: 1000, StartFloor: 1000}, 0},
		{"nine floors climbed", core.RunSummary{Floor: 59, StartFloor: 50}, 0},
		{"ten floors climbed", core.RunSummary{Floor: 60, StartFloor: 50}, 1},
		{"from floor one", core.RunSummary{Floor: 31, StartFloor: 1}, 3},
		{"normal run", core.RunSummary{Floor: 30}, 3},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := New(newMemStore(), catalog(), nil)
			got, err := w.CreditRun(tc.run, 10)
			if err != nil {
				t.Fatalf("CreditRun failed: %v", err)
			}
			if got != tc.coins || w.Balance() != tc.coins {
				t.Errorf("CreditRun(%+v) = %d coins (balance %d), expected %d", tc.run, got, w.Balance(), tc.coins)
			}
		})
	}
}

func TestBuyAndEquip(t *testing.T) {
	store := newMemStore()
	w := New(store, catalog(), nil)
	if err := w.Credit(60); err != nil {
		t.Fatalf("Credit failed: %v", err)
	}

	if err := w.Buy("moss"); err != nil {
		t.Fatalf("Buy(moss) failed: %v", err)
	}
	if w.Balance() != 10 {
		t.Errorf("Balance() after buying moss = %d, expected 10", w.Balance())
	}
	if err := w.Buy("moss"); err != nil || w.Balance() != 10 {
		t.Errorf("buying an owned skin should be a free no-op: err=%v balance=%d", err, w.Balance())
	}

	if err := w.Equip("moss"); err != nil {
		t.Fatalf("Equip(moss) failed: %v", err)
	}
	if w.CurrentColor() != core.ColorBrightGreen {
		t.Errorf("CurrentColor() = %v, expected bright green", w.CurrentColor())
	}

	reloaded := New(store, catalog(), nil)
	if reloaded.Current().ID != "moss" || !reloaded.Owns("moss") {
		t.Error("purchase and equip should persist")
	}
}

func TestBuyFailuresLeaveWalletUnchanged(t *testing.T) {
	store := newMemStore()
	w := New(store, catalog(), nil)
	w.Credit(20)
	saves := store.saves

	tests := []struct {
		id   string
		want error
	}{
		{"ember", ErrInsufficientFunds},
		{"rainbow", ErrUnknownSkin},
	}
	for _, tc := range tests {
		err := w.Buy(tc.id)
		if !errors.Is(err, tc.want) {
			t.Errorf("Buy(%q) = %v, expected %v", tc.id, err, tc.want)
		}
	}
	if w.Balance() != 20 || len(w.Owned()) != 1 || store.saves != saves {
		t.Errorf("failed purchases mutated the wallet: balance=%d owned=%v", w.Balance(), w.Owned())
	}

	if err := w.Equip("gold"); !errors.Is(err, ErrNotOwned) {
		t.Errorf("Equip(gold) = %v, expected ErrNotOwned", err)
	}
	if err := w.Equip("rainbow"); !errors.Is(err, ErrUnknownSkin) {
		t.Errorf("Equip(rainbow) = %v, expected ErrUnknownSkin", err)
	}
}

func TestSaveFailureKeepsState(t *testing.T) {
	store := newMemStore()
	w := New(store, catalog(), nil)
	w.Credit(100)

	store.saveErr = errors.New("read-only")
	if err := w.Buy("royal"); err == nil {
		t.Fatal("Buy should report the save failure")
	}
	if w.Balance() != 100 || w.Owns("royal") {
		t.Error("a failed save must not change the wallet")
	}
}
