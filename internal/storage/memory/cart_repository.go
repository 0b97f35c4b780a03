package memory

import (
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/gamestorelab/gamestore/internal/domain"
)

// cartRepositoryInMemory хранит корзины и их позиции. Снапшот подтягивает
// актуальные цены из репозитория каталога, как это делает SQL-join.
type cartRepositoryInMemory struct {
	mu     sync.RWMutex
	carts  map[string]domain.Cart
	byUser map[string]string
	items  map[string]domain.CartItem

	games domain.GameRepository
}

// NewCartRepository возвращает in-memory репозиторий корзин.
func NewCartRepository(games domain.GameRepository) domain.CartRepository {
	return &cartRepositoryInMemory{
		carts:  make(map[string]domain.Cart),
		byUser: make(map[string]string),
		items:  make(map[string]domain.CartItem),
		games:  games,
	}
}

func (r *cartRepositoryInMemory) EnsureForUser(userID string) (domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cartID, ok := r.byUser[userID]; ok {
		return r.carts[cartID], nil
	}

	cart := domain.Cart{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
	}
	r.carts[cart.ID] = cart
	r.byUser[userID] = cart.ID
	return cart, nil
}

func (r *cartRepositoryInMemory) GetByUser(userID string) (domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cartID, ok := r.byUser[userID]
	if !ok {
		return domain.Cart{}, domain.ErrCartNotFound
	}
	return r.carts[cartID], nil
}

func (r *cartRepositoryInMemory) Get(cartID string) (domain.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[cartID]
	if !ok {
		return domain.Cart{}, domain.ErrCartNotFound
	}
	return cart, nil
}

func (r *cartRepositoryInMemory) Snapshot(userID string) (domain.CartSnapshot, error) {
	cart, err := r.GetByUser(userID)
	if err != nil {
		return domain.CartSnapshot{}, err
	}

	r.mu.RLock()
	cartItems := make([]domain.CartItem, 0)
	for _, item := range r.items {
		if item.CartID == cart.ID {
			cartItems = append(cartItems, item)
		}
	}
	r.mu.RUnlock()

	sort.Slice(cartItems, func(i, j int) bool {
		if !cartItems[i].CreatedAt.Equal(cartItems[j].CreatedAt) {
			return cartItems[i].CreatedAt.Before(cartItems[j].CreatedAt)
		}
		return cartItems[i].ID < cartItems[j].ID
	})

	snapshot := domain.CartSnapshot{
		CartID: cart.ID,
		UserID: cart.UserID,
		Lines:  make([]domain.CartLine, 0, len(cartItems)),
	}
	for _, item := range cartItems {
		game, err := r.games.Get(item.GameID)
		if err != nil {
			if errors.Is(err, domain.ErrGameNotFound) {
				// Игра удалена из каталога после добавления в корзину.
				continue
			}
			return domain.CartSnapshot{}, err
		}
		snapshot.Lines = append(snapshot.Lines, domain.CartLine{
			CartItemID:    item.ID,
			GameID:        game.ID,
			Title:         game.Title,
			Price:         game.Price,
			DiscountPrice: game.DiscountPrice,
		})
	}

	return snapshot, nil
}

func (r *cartRepositoryInMemory) AddItem(cartID, gameID string) (domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		if item.CartID == cartID && item.GameID == gameID {
			return domain.CartItem{}, domain.ErrGameAlreadyInCart
		}
	}

	item := domain.CartItem{
		ID:        uuid.NewString(),
		CartID:    cartID,
		GameID:    gameID,
		CreatedAt: time.Now().UTC(),
	}
	r.items[item.ID] = item
	return item, nil
}

func (r *cartRepositoryInMemory) GetItem(itemID string) (domain.CartItem, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[itemID]
	if !ok {
		return domain.CartItem{}, domain.ErrCartItemNotFound
	}
	return item, nil
}

func (r *cartRepositoryInMemory) ReplaceItemGame(itemID, gameID string) (domain.CartItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[itemID]
	if !ok {
		return domain.CartItem{}, domain.ErrCartItemNotFound
	}
	for id, other := range r.items {
		if id != itemID && other.CartID == item.CartID && other.GameID == gameID {
			return domain.CartItem{}, domain.ErrGameAlreadyInCart
		}
	}
	item.GameID = gameID
	r.items[itemID] = item
	return item, nil
}

func (r *cartRepositoryInMemory) RemoveItem(itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[itemID]; !ok {
		return domain.ErrCartItemNotFound
	}
	delete(r.items, itemID)
	return nil
}

func (r *cartRepositoryInMemory) Clear(cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, item := range r.items {
		if item.CartID == cartID {
			delete(r.items, id)
		}
	}
	return nil
}

// consumeLines атомарно удаляет строки (cartID, gameIDs) под общим замком.
// Используется checkout-репозиторием вместо SQL-транзакции.
func (r *cartRepositoryInMemory) consumeLines(cartID string, gameIDs []string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[cartID]; !ok {
		return domain.ErrCartNotFound
	}

	toDelete := make([]string, 0, len(gameIDs))
	for _, gameID := range gameIDs {
		found := false
		for id, item := range r.items {
			if item.CartID == cartID && item.GameID == gameID {
				toDelete = append(toDelete, id)
				found = true
				break
			}
		}
		if !found {
			return domain.ErrCartLineConsumed
		}
	}
	for _, id := range toDelete {
		delete(r.items, id)
	}
	return nil
}

var _ domain.CartRepository = (*cartRepositoryInMemory)(nil)
