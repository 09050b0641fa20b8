// Package wallet keeps the player's coins and cosmetic skins between runs.
// Nothing here feeds back into the simulation; renderers only read the
// current skin color.
package wallet

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/quasilyte/gdata"

	"github.com/vovakirdan/skytower/internal/config"
	"github.com/vovakirdan/skytower/internal/core"
)

// AppName names the gdata storage directory.
const AppName = "skytower"

const itemKey = "wallet"

var (
	// ErrInsufficientFunds is returned when a skin costs more than the balance.
	ErrInsufficientFunds = errors.New("wallet: insufficient funds")
	// ErrUnknownSkin is returned for skin ids missing from the catalog.
	ErrUnknownSkin = errors.New("wallet: unknown skin")
	// ErrNotOwned is returned when equipping a skin that was never bought.
	ErrNotOwned = errors.New("wallet: skin not owned")
)

// ItemStore persists opaque blobs by key. *gdata.Manager satisfies it.
type ItemStore interface {
	LoadItem(key string) ([]byte, error)
	SaveItem(key string, data []byte) error
}

// OpenStore opens the gdata store for the application.
func OpenStore() (ItemStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		return nil, fmt.Errorf("wallet: cannot open store: %w", err)
	}
	return m, nil
}

// savedWallet is the persisted blob.
type savedWallet struct {
	Coins   int      `json:"coins"`
	Owned   []string `json:"owned"`
	Current string   `json:"current"`
}

// Wallet is safe for concurrent use.
type Wallet struct {
	mu      sync.Mutex
	store   ItemStore
	catalog []config.SkinConfig
	state   savedWallet
	logger  *log.Logger
}

// New loads the wallet from store. A missing, unreadable or corrupt blob
// yields a fresh wallet owning only the first catalog skin.
func New(store ItemStore, catalog []config.SkinConfig, logger *log.Logger) *Wallet {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	w := &Wallet{
		store:   store,
		catalog: catalog,
		logger:  logger,
	}
	w.state = w.load()
	return w
}

func (w *Wallet) fresh() savedWallet {
	st := savedWallet{}
	if len(w.catalog) > 0 {
		st.Owned = []string{w.catalog[0].ID}
		st.Current = w.catalog[0].ID
	}
	return st
}

func (w *Wallet) load() savedWallet {
	data, err := w.store.LoadItem(itemKey)
	if err != nil {
		w.logger.Warn("wallet unreadable, starting fresh", "err", err)
		return w.fresh()
	}
	if data == nil {
		return w.fresh()
	}

	var st savedWallet
	if err := json.Unmarshal(data, &st); err != nil {
		w.logger.Warn("wallet corrupt, starting fresh", "err", err)
		return w.fresh()
	}
	if st.Coins < 0 {
		w.logger.Warn("wallet has negative balance, resetting it", "coins", st.Coins)
		st.Coins = 0
	}

	// Forget skins that left the catalog and keep the default owned.
	def := w.fresh()
	st.Owned = slices.DeleteFunc(st.Owned, func(id string) bool {
		_, ok := w.skin(id)
		return !ok
	})
	for _, id := range def.Owned {
		if !slices.Contains(st.Owned, id) {
			st.Owned = append([]string{id}, st.Owned...)
		}
	}
	if !slices.Contains(st.Owned, st.Current) {
		st.Current = def.Current
	}
	return st
}

// commit persists next and adopts it only when the save succeeds.
func (w *Wallet) commit(next savedWallet) error {
	data, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("wallet: cannot encode: %w", err)
	}
	if err := w.store.SaveItem(itemKey, data); err != nil {
		return fmt.Errorf("wallet: cannot save: %w", err)
	}
	w.state = next
	return nil
}

func (w *Wallet) skin(id string) (config.SkinConfig, bool) {
	for _, s := range w.catalog {
		if s.ID == id {
			return s, true
		}
	}
	return config.SkinConfig{}, false
}

func (w *Wallet) clone() savedWallet {
	next := w.state
	next.Owned = slices.Clone(w.state.Owned)
	return next
}

// Catalog returns the purchasable skins in display order.
func (w *Wallet) Catalog() []config.SkinConfig {
	return slices.Clone(w.catalog)
}

// Balance returns the coin balance.
func (w *Wallet) Balance() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.state.Coins
}

// Credit adds coins. Non-positive amounts are ignored.
func (w *Wallet) Credit(coins int) error {
	if coins <= 0 {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	next := w.clone()
	next.Coins += coins
	return w.commit(next)
}

// CreditRun credits the coins earned by a finished run and returns them.
func (w *Wallet) CreditRun(run core.RunSummary, floorsPerCoin int) (int, error) {
	coins := CoinsForRun(run, floorsPerCoin)
	if err := w.Credit(coins); err != nil {
		return 0, err
	}
	if coins > 0 {
		w.logger.Info("coins credited", "coins", coins, "floor", run.Floor)
	}
	return coins, nil
}

// CoinsForRun is one coin per floorsPerCoin floors climbed. A practice run
// only earns for the floors above its start floor.
func CoinsForRun(run core.RunSummary, floorsPerCoin int) int {
	climbed := run.Floor - run.StartFloor
	if floorsPerCoin <= 0 || climbed <= 0 {
		return 0
	}
	return climbed / floorsPerCoin
}

// Owned returns the owned skin ids.
func (w *Wallet) Owned() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Clone(w.state.Owned)
}

// Owns reports whether the skin is owned.
func (w *Wallet) Owns(id string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return slices.Contains(w.state.Owned, id)
}

// Buy purchases a skin. Buying an owned skin does nothing.
// On error the wallet is unchanged.
func (w *Wallet) Buy(id string) error {
	s, ok := w.skin(id)
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSkin, id)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if slices.Contains(w.state.Owned, id) {
		return nil
	}
	if w.state.Coins < s.Price {
		return fmt.Errorf("%w: %s costs %d, balance %d", ErrInsufficientFunds, id, s.Price, w.state.Coins)
	}

	next := w.clone()
	next.Coins -= s.Price
	next.Owned = append(next.Owned, id)
	if err := w.commit(next); err != nil {
		return err
	}
	w.logger.Info("skin bought", "skin", id, "price", s.Price, "balance", next.Coins)
	return nil
}

// Equip makes an owned skin current.
func (w *Wallet) Equip(id string) error {
	if _, ok := w.skin(id); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownSkin, id)
	}

	w.mu.Lock()
	defer w.mu.Unlock()

	if !slices.Contains(w.state.Owned, id) {
		return fmt.Errorf("%w: %q", ErrNotOwned, id)
	}
	if w.state.Current == id {
		return nil
	}
	next := w.clone()
	next.Current = id
	return w.commit(next)
}

// Current returns the equipped skin.
func (w *Wallet) Current() config.SkinConfig {
	w.mu.Lock()
	defer w.mu.Unlock()
	s, _ := w.skin(w.state.Current)
	return s
}

// CurrentColor returns the equipped skin's color, or bright cyan when the
// skin names no known color.
func (w *Wallet) CurrentColor() core.Color {
	if c, ok := core.ParseColor(w.Current().Color); ok {
		return c
	}
	return core.ColorBrightCyan
}
