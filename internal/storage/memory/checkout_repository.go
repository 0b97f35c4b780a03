package memory

import (
	"github.com/gamestorelab/gamestore/internal/domain"
)

// checkoutRepositoryInMemory связывает in-memory корзины и заказы: выгребание
// строк и вставка заказа выполняются под замком корзин, частичный результат
// наружу не виден.
type checkoutRepositoryInMemory struct {
	carts  *cartRepositoryInMemory
	orders *orderRepositoryInMemory
}

// NewCheckoutRepository возвращает in-memory реализацию CheckoutRepository.
// Принимает только репозитории из этого пакета.
func NewCheckoutRepository(carts domain.CartRepository, orders domain.OrderRepository) domain.CheckoutRepository {
	c, ok := carts.(*cartRepositoryInMemory)
	if !ok {
		panic("memory checkout repository requires a memory cart repository")
	}
	o, ok := orders.(*orderRepositoryInMemory)
	if !ok {
		panic("memory checkout repository requires a memory order repository")
	}
	return &checkoutRepositoryInMemory{carts: c, orders: o}
}

func (r *checkoutRepositoryInMemory) CreateOrderFromCart(order domain.Order, cartID string, gameIDs []string) (domain.Order, error) {
	if err := r.carts.consumeLines(cartID, gameIDs); err != nil {
		return domain.Order{}, err
	}
	r.orders.put(order)
	return order, nil
}

var _ domain.CheckoutRepository = (*checkoutRepositoryInMemory)(nil)
