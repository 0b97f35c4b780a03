package domain

import "time"

// UserRepository описывает хранилище учётных записей.
type UserRepository interface {
	// Create сохраняет нового пользователя; ErrDuplicateUsername при занятом имени.
	Create(user User) error
	// Get возвращает пользователя или ErrUserNotFound.
	Get(id string) (User, error)
	// List возвращает пользователей постранично.
	List(limit, offset int) ([]User, error)
	// Update перезаписывает профиль существующего пользователя.
	Update(user User) error
	// Delete удаляет пользователя.
	Delete(id string) error
}

// GameFilter задаёт параметры выборки каталога.
type GameFilter struct {
	Limit  int
	Offset int
	// HotOnly ограничивает выборку играми с флагом is_hot.
	HotOnly bool
	// TitleQuery фильтрует по подстроке названия (без учёта регистра).
	TitleQuery string
	// ByLatestUpdate сортирует по дате обновления (убывание) вместо ID.
	ByLatestUpdate bool
}

// GameRepository описывает хранилище каталога.
type GameRepository interface {
	Create(game Game) error
	// Get возвращает игру с жанрами, платформами и изображениями или ErrGameNotFound.
	Get(id string) (Game, error)
	List(filter GameFilter) ([]Game, error)
	Update(game Game) error
	Delete(id string) error
}

// GenreRepository описывает хранилище жанров.
type GenreRepository interface {
	Create(genre Genre) error
	Get(id string) (Genre, error)
	List() ([]Genre, error)
	Update(genre Genre) error
	Delete(id string) error
}

// PlatformRepository описывает хранилище платформ.
type PlatformRepository interface {
	Create(platform Platform) error
	Get(id string) (Platform, error)
	List() ([]Platform, error)
	Update(platform Platform) error
	Delete(id string) error
}

// CartRepository описывает хранилище корзин.
type CartRepository interface {
	// EnsureForUser возвращает корзину пользователя, создавая её при первом обращении.
	EnsureForUser(userID string) (Cart, error)
	// GetByUser возвращает корзину или ErrCartNotFound.
	GetByUser(userID string) (Cart, error)
	// Snapshot возвращает корзину с позициями и актуальными ценами каталога.
	Snapshot(userID string) (CartSnapshot, error)
	// AddItem добавляет игру; ErrGameAlreadyInCart при нарушении уникальности.
	AddItem(cartID, gameID string) (CartItem, error)
	// GetItem возвращает позицию корзины или ErrCartItemNotFound.
	GetItem(itemID string) (CartItem, error)
	// Get возвращает корзину по идентификатору (нужна владельцу позиции).
	Get(cartID string) (Cart, error)
	// ReplaceItemGame меняет игру в позиции с той же проверкой уникальности.
	ReplaceItemGame(itemID, gameID string) (CartItem, error)
	// RemoveItem удаляет позицию.
	RemoveItem(itemID string) error
	// Clear удаляет все позиции корзины.
	Clear(cartID string) error
}

// PromotionRepository описывает хранилище промоакций.
type PromotionRepository interface {
	// Create сохраняет промоакцию; ErrDuplicatePromotionCode при занятом коде.
	Create(promotion Promotion) error
	Get(id string) (Promotion, error)
	// GetByCode возвращает промоакцию по коду или ErrPromotionNotFound.
	GetByCode(code string) (Promotion, error)
	List() ([]Promotion, error)
	Update(promotion Promotion) error
	Delete(id string) error
}

// OrderRepository описывает хранилище заказов. Создание заказа сюда намеренно
// не входит: заказ появляется только атомарно из корзины через CheckoutRepository.
type OrderRepository interface {
	// Get возвращает заказ с позициями или ErrOrderNotFound.
	Get(id string) (Order, error)
	// List возвращает все заказы (админский просмотр).
	List(limit int) ([]Order, error)
	// ListByUser возвращает заказы пользователя, свежие первыми.
	ListByUser(userID string, limit int) ([]Order, error)
	// UpdateStatusNotes применяет новый статус и заметки к существующему заказу.
	UpdateStatusNotes(id string, status OrderStatus, notes string) error
	// Delete удаляет заказ вместе с позициями.
	Delete(id string) error
}

// CheckoutRepository выполняет атомарный блок чекаута: вставка заказа, вставка
// позиций, удаление потреблённых строк корзины — всё в одной транзакции.
// Частично применённый результат наблюдаем быть не должен.
type CheckoutRepository interface {
	// CreateOrderFromCart фиксирует заказ и выгребает из корзины cartID строки
	// по gameIDs. Если какую-то строку успел забрать конкурентный чекаут,
	// транзакция откатывается с ErrCartLineConsumed.
	CreateOrderFromCart(order Order, cartID string, gameIDs []string) (Order, error)
}

// OrderHistoryRepository хранит историю переходов статуса заказа.
type OrderHistoryRepository interface {
	Append(change StatusChange) error
	List(orderID string) ([]StatusChange, error)
}

// PaymentRepository описывает хранилище платежей.
type PaymentRepository interface {
	Create(payment Payment) error
	Get(id string) (Payment, error)
	List(limit int) ([]Payment, error)
	// ListByUser возвращает платежи по заказам пользователя.
	ListByUser(userID string) ([]Payment, error)
	Update(payment Payment) error
	Delete(id string) error
}

// ReviewRepository описывает хранилище отзывов.
type ReviewRepository interface {
	// Create сохраняет отзыв; ErrDuplicateReview при повторном отзыве на игру.
	Create(review Review) error
	Get(id string) (Review, error)
	List(filter ReviewFilter) ([]Review, error)
	Update(review Review) error
	Delete(id string) error
}

// WishlistRepository описывает хранилище wishlist.
type WishlistRepository interface {
	// Add сохраняет запись; ErrAlreadyInWishlist при дубле.
	Add(item WishlistItem) error
	Get(id string) (WishlistItem, error)
	ListByUser(userID string) ([]WishlistItem, error)
	Delete(id string) error
}

// IdempotencyRepository хранит состояние обработки чекаутов по idempotency-key.
type IdempotencyRepository interface {
	// CreateProcessing регистрирует ключ; ErrCheckoutInFlight, если ключ занят
	// активной или успешной обработкой. Failed-запись перезаписывается заново.
	CreateProcessing(key, requestHash string, ttlAt time.Time) (IdempotencyRecord, error)
	// Get возвращает запись или ErrIdempotencyKeyNotFound.
	Get(key string) (IdempotencyRecord, error)
	// MarkDone фиксирует успешный чекаут с идентификатором созданного заказа.
	MarkDone(key, orderID string) error
	// MarkFailed фиксирует неуспех; ключ можно использовать повторно.
	MarkFailed(key string) error
	// DeleteExpired удаляет записи с истёкшим TTL, не больше limit за проход.
	DeleteExpired(before time.Time, limit int) (int, error)
}
