package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var (
	_ repository.OrderBuyRepository     = orderRepo{}
	_ repository.CashRegisterRepository = cashRegisterRepo{}
	_ repository.SaleRepository         = saleRepo{}
)

func sortProviders(list []*entity.Provider) {
	sort.Slice(list, func(i, j int) bool { return list[i].BusinessName < list[j].BusinessName })
}

type orderRepo struct{ v view }

func copyOrder(o entity.OrderBuy) *entity.OrderBuy {
	o.Lines = append([]entity.OrderBuyLine(nil), o.Lines...)
	return &o
}

func (r orderRepo) Create(_ context.Context, o *entity.OrderBuy) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.orders[o.ID]; ok {
			return domain.Persistence("insert order_buy", fmt.Errorf("id duplicado %s", o.ID))
		}
		st.orders[o.ID] = *copyOrder(*o)
		st.orderSeq = append(st.orderSeq, o.ID)
		return nil
	})
}

func (r orderRepo) GetByID(_ context.Context, id string) (*entity.OrderBuy, error) {
	var out *entity.OrderBuy
	r.v.read(func(st *state) {
		if o, ok := st.orders[id]; ok {
			out = copyOrder(o)
		}
	})
	return out, nil
}

func (r orderRepo) List(_ context.Context, f repository.OrderFilter) ([]*entity.OrderBuy, error) {
	var matched []*entity.OrderBuy
	r.v.read(func(st *state) {
		for i := len(st.orderSeq) - 1; i >= 0; i-- {
			o := st.orders[st.orderSeq[i]]
			if f.Status != nil && o.Status != *f.Status {
				continue
			}
			if f.ProviderID != "" && o.ProviderID != f.ProviderID {
				continue
			}
			matched = append(matched, copyOrder(o))
		}
	})
	lo, hi := page(len(matched), f.Limit, f.Offset)
	return append([]*entity.OrderBuy{}, matched[lo:hi]...), nil
}

func (r orderRepo) Transition(_ context.Context, id string, from, to entity.OrderStatus, t entity.OrderTransition) error {
	return r.v.write(func(st *state) error {
		o, ok := st.orders[id]
		if !ok {
			return domain.ErrNotFound
		}
		if o.Status != from {
			return fmt.Errorf("%w: orden en estado %s", domain.ErrInvalidStateTransition, o.Status)
		}
		at := t.At
		o.Status = to
		switch to {
		case entity.OrderStatusReceived:
			o.ReceivedAt = &at
		case entity.OrderStatusCancelled:
			o.CancelledAt = &at
			o.CancelReason = t.CancelReason
		}
		st.orders[id] = o
		return nil
	})
}

type cashRegisterRepo struct{ v view }

func openSession(st *state) *entity.CashRegister {
	for _, id := range st.sessionSeq {
		if s := st.sessions[id]; s.Status == entity.CashRegisterOpen {
			return &s
		}
	}
	return nil
}

func (r cashRegisterRepo) Create(_ context.Context, s *entity.CashRegister) error {
	return r.v.write(func(st *state) error {
		if s.Status == entity.CashRegisterOpen && openSession(st) != nil {
			return domain.ErrSessionAlreadyOpen
		}
		st.sessions[s.ID] = *s
		st.sessionSeq = append(st.sessionSeq, s.ID)
		return nil
	})
}

func (r cashRegisterRepo) GetByID(_ context.Context, id string) (*entity.CashRegister, error) {
	var out *entity.CashRegister
	r.v.read(func(st *state) {
		if s, ok := st.sessions[id]; ok {
			out = &s
		}
	})
	return out, nil
}

func (r cashRegisterRepo) GetForUpdate(ctx context.Context, id string) (*entity.CashRegister, error) {
	return r.GetByID(ctx, id)
}

func (r cashRegisterRepo) GetOpen(_ context.Context) (*entity.CashRegister, error) {
	var out *entity.CashRegister
	r.v.read(func(st *state) { out = openSession(st) })
	return out, nil
}

func (r cashRegisterRepo) GetOpenForShare(ctx context.Context) (*entity.CashRegister, error) {
	return r.GetOpen(ctx)
}

func (r cashRegisterRepo) Close(_ context.Context, s *entity.CashRegister) error {
	return r.v.write(func(st *state) error {
		cur, ok := st.sessions[s.ID]
		if !ok {
			return domain.ErrNotFound
		}
		if cur.Status != entity.CashRegisterOpen {
			return domain.ErrInvalidSessionState
		}
		st.sessions[s.ID] = *s
		return nil
	})
}

func (r cashRegisterRepo) List(_ context.Context, limit, offset int) ([]*entity.CashRegister, error) {
	var all []*entity.CashRegister
	r.v.read(func(st *state) {
		for i := len(st.sessionSeq) - 1; i >= 0; i-- {
			s := st.sessions[st.sessionSeq[i]]
			all = append(all, &s)
		}
	})
	lo, hi := page(len(all), limit, offset)
	return append([]*entity.CashRegister{}, all[lo:hi]...), nil
}

type saleRepo struct{ v view }

func (r saleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.sessions[s.CashRegisterID]; !ok {
			return domain.Persistence("insert sale", fmt.Errorf("caja %s inexistente", s.CashRegisterID))
		}
		cp := *s
		cp.Items = append([]entity.SaleItem(nil), s.Items...)
		st.sales = append(st.sales, cp)
		return nil
	})
}

func (r saleRepo) ListByCashRegister(_ context.Context, cashRegisterID string) ([]*entity.Sale, error) {
	list := []*entity.Sale{}
	r.v.read(func(st *state) {
		for _, s := range st.sales {
			if s.CashRegisterID == cashRegisterID {
				s.Items = append([]entity.SaleItem(nil), s.Items...)
				list = append(list, &s)
			}
		}
	})
	return list, nil
}

func (r saleRepo) SumByCashRegister(_ context.Context, cashRegisterID string) (decimal.Decimal, int, error) {
	total := decimal.Zero
	count := 0
	r.v.read(func(st *state) {
		for _, s := range st.sales {
			if s.CashRegisterID == cashRegisterID {
				total = total.Add(s.Total)
				count++
			}
		}
	})
	return total, count, nil
}
