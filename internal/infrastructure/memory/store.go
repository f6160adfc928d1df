// Package memory implementa los repositorios y el TxRunner en memoria.
// Se usa en tests y con STORE_DRIVER=memory para desarrollo local.
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/tienda-api/internal/application/ports"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

type state struct {
	products    map[string]entity.Product
	providers   map[string]entity.Provider
	movements   []entity.StockMovement
	adjustments []entity.InventoryAdjustment
	orders      map[string]entity.OrderBuy
	orderSeq    []string
	sessions    map[string]entity.CashRegister
	sessionSeq  []string
	sales       []entity.Sale
}

func newState() *state {
	return &state{
		products:  make(map[string]entity.Product),
		providers: make(map[string]entity.Provider),
		orders:    make(map[string]entity.OrderBuy),
		sessions:  make(map[string]entity.CashRegister),
	}
}

// clone copia mapas y slices; los punteros internos apuntan a valores que nunca se mutan en sitio.
func (s *state) clone() *state {
	c := &state{
		products:    make(map[string]entity.Product, len(s.products)),
		providers:   make(map[string]entity.Provider, len(s.providers)),
		movements:   append([]entity.StockMovement(nil), s.movements...),
		adjustments: append([]entity.InventoryAdjustment(nil), s.adjustments...),
		orders:      make(map[string]entity.OrderBuy, len(s.orders)),
		orderSeq:    append([]string(nil), s.orderSeq...),
		sessions:    make(map[string]entity.CashRegister, len(s.sessions)),
		sessionSeq:  append([]string(nil), s.sessionSeq...),
		sales:       append([]entity.Sale(nil), s.sales...),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.providers {
		c.providers[k] = v
	}
	for k, v := range s.orders {
		c.orders[k] = v
	}
	for k, v := range s.sessions {
		c.sessions[k] = v
	}
	return c
}

// Store almacén en memoria protegido por un único mutex.
// Run trabaja sobre una copia del estado y la publica solo si fn no falla.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// SeedProduct registra o reemplaza un producto del catálogo.
func (s *Store) SeedProduct(p entity.Product) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.products[p.ID] = p
}

// SeedProvider registra o reemplaza un proveedor.
func (s *Store) SeedProvider(p entity.Provider) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.st.providers[p.ID] = p
}

// Repositories devuelve repositorios fuera de transacción (cada llamada toma el mutex).
func (s *Store) Repositories() repository.Repositories {
	return bind(view{store: s})
}

// Run ejecuta fn de forma atómica y aislada respecto de cualquier otra operación del almacén.
func (s *Store) Run(ctx context.Context, fn func(r repository.Repositories) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	tx := s.st.clone()
	if err := fn(bind(view{store: s, tx: tx})); err != nil {
		return err
	}
	s.st = tx
	return nil
}

type view struct {
	store *Store
	tx    *state
}

func (v view) read(fn func(st *state)) {
	if v.tx != nil {
		fn(v.tx)
		return
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	fn(v.store.st)
}

func (v view) write(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.st)
}

func bind(v view) repository.Repositories {
	return repository.Repositories{
		Products:      productRepo{v},
		Movements:     movementRepo{v},
		Adjustments:   adjustmentRepo{v},
		Orders:        orderRepo{v},
		CashRegisters: cashRegisterRepo{v},
		Sales:         saleRepo{v},
		Providers:     providerRepo{v},
	}
}

// page recorta [offset, offset+limit) sobre n elementos; limit <= 0 significa sin límite.
func page(n, limit, offset int) (int, int) {
	if offset < 0 {
		offset = 0
	}
	if offset > n {
		offset = n
	}
	end := n
	if limit > 0 && offset+limit < n {
		end = offset + limit
	}
	return offset, end
}
