package domain

import (
	"errors"
	"fmt"
)

// ErrorKind классифицирует доменные ошибки витрины для внешнего слоя.
// Вызывающая сторона получает вид ошибки и человекочитаемое сообщение,
// внутренние детали наружу не выносятся.
type ErrorKind string

const (
	// KindNotFound — запрошенный ресурс (корзина, промокод, заказ, игра) не существует.
	KindNotFound ErrorKind = "not_found"
	// KindInvalidInput — некорректный запрос: пустой выбор, неизвестные позиции, битые идентификаторы.
	KindInvalidInput ErrorKind = "invalid_input"
	// KindInvalidState — операция не применима к текущему состоянию ресурса.
	KindInvalidState ErrorKind = "invalid_state"
	// KindConflict — нарушение уникальности или гонка за общий ресурс.
	KindConflict ErrorKind = "conflict"
	// KindForbidden — актор не имеет права на операцию над чужим ресурсом.
	KindForbidden ErrorKind = "forbidden"
	// KindInternal — неожиданная ошибка хранилища или арифметики.
	KindInternal ErrorKind = "internal"
)

// Error — классифицированная ошибка доменного слоя.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is позволяет errors.Is сопоставлять обёрнутые копии с sentinel-значениями ниже.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// NewError создаёт классифицированную ошибку без причины.
func NewError(kind ErrorKind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// WrapError заворачивает причину в классифицированную ошибку.
func WrapError(kind ErrorKind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf возвращает вид ошибки; для неклассифицированных ошибок считаем KindInternal.
func KindOf(err error) ErrorKind {
	if err == nil {
		return ""
	}
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return KindInternal
}

// IsKind проверяет принадлежность ошибки заданному виду.
func IsKind(err error, kind ErrorKind) bool {
	return KindOf(err) == kind
}

// Sentinel-ошибки сервисного слоя.
var (
	// ErrCartNotFound возвращается, если у пользователя нет корзины.
	ErrCartNotFound = NewError(KindNotFound, "cart not found")
	// ErrCartItemNotFound возвращается, если позиция корзины не существует.
	ErrCartItemNotFound = NewError(KindNotFound, "cart item not found")
	// ErrGameNotFound возвращается, если игра не найдена в каталоге.
	ErrGameNotFound = NewError(KindNotFound, "game not found")
	// ErrGenreNotFound возвращается, если жанр не существует.
	ErrGenreNotFound = NewError(KindNotFound, "genre not found")
	// ErrPlatformNotFound возвращается, если платформа не существует.
	ErrPlatformNotFound = NewError(KindNotFound, "platform not found")
	// ErrOrderNotFound возвращается, если заказ не найден.
	ErrOrderNotFound = NewError(KindNotFound, "order not found")
	// ErrPromotionNotFound возвращается, если промокод не существует.
	ErrPromotionNotFound = NewError(KindNotFound, "promotion not found")
	// ErrPaymentNotFound возвращается, если платёж не найден.
	ErrPaymentNotFound = NewError(KindNotFound, "payment not found")
	// ErrUserNotFound возвращается, если пользователь не существует.
	ErrUserNotFound = NewError(KindNotFound, "user not found")
	// ErrReviewNotFound возвращается, если отзыв не найден.
	ErrReviewNotFound = NewError(KindNotFound, "review not found")
	// ErrWishlistItemNotFound возвращается, если записи в wishlist нет.
	ErrWishlistItemNotFound = NewError(KindNotFound, "wishlist item not found")
	// ErrIdempotencyKeyNotFound возвращается, если idempotency-ключ не зарегистрирован.
	ErrIdempotencyKeyNotFound = NewError(KindNotFound, "idempotency key not found")

	// ErrEmptySelection — чекаут без единой выбранной позиции.
	ErrEmptySelection = NewError(KindInvalidInput, "at least one game must be selected")
	// ErrSelectionMismatch — среди выбранных игр есть отсутствующие в корзине.
	ErrSelectionMismatch = NewError(KindInvalidInput, "some selected games are not in the cart")
	// ErrPaymentAmountMismatch — сумма платежа не совпадает с суммой к оплате.
	ErrPaymentAmountMismatch = NewError(KindInvalidInput, "payment amount does not match the amount due")
	// ErrIdempotencyKeyReused — ключ уже использован с другим содержимым запроса.
	ErrIdempotencyKeyReused = NewError(KindInvalidInput, "idempotency key reused with a different request")

	// ErrPromotionInactive — промокод выключен администратором.
	ErrPromotionInactive = NewError(KindInvalidState, "promotion is not active")
	// ErrPromotionNotStarted — окно действия промокода ещё не началось.
	ErrPromotionNotStarted = NewError(KindInvalidState, "promotion has not started yet")
	// ErrPromotionExpired — окно действия промокода уже закончилось.
	ErrPromotionExpired = NewError(KindInvalidState, "promotion has expired")
	// ErrBelowMinimumOrder — сумма заказа меньше минимального порога промокода.
	ErrBelowMinimumOrder = NewError(KindInvalidState, "subtotal is below the promotion minimum order")
	// ErrOrderNotAwaitingPayment — платёж подан по заказу не в ожидающем оплату статусе.
	ErrOrderNotAwaitingPayment = NewError(KindInvalidState, "order is not awaiting payment")
	// ErrStatusTransitionDenied — запрошенный переход статуса запрещён таблицей переходов.
	ErrStatusTransitionDenied = NewError(KindInvalidState, "order status transition is not allowed")

	// ErrGameAlreadyInCart — игра уже лежит в корзине (уникальность пары корзина+игра).
	ErrGameAlreadyInCart = NewError(KindConflict, "game is already in the cart")
	// ErrDuplicateReview — у пользователя уже есть отзыв на эту игру.
	ErrDuplicateReview = NewError(KindConflict, "user has already reviewed this game")
	// ErrAlreadyInWishlist — игра уже добавлена в wishlist.
	ErrAlreadyInWishlist = NewError(KindConflict, "game is already in the wishlist")
	// ErrCartLineConsumed — позицию корзины успел забрать конкурентный чекаут.
	ErrCartLineConsumed = NewError(KindConflict, "cart line was consumed by a concurrent checkout")
	// ErrCheckoutInFlight — чекаут с этим idempotency-ключом ещё обрабатывается.
	ErrCheckoutInFlight = NewError(KindConflict, "checkout with this idempotency key is already in progress")
	// ErrDuplicateUsername — имя пользователя уже занято.
	ErrDuplicateUsername = NewError(KindConflict, "username is already taken")
	// ErrDuplicatePromotionCode — промокод с таким кодом уже существует.
	ErrDuplicatePromotionCode = NewError(KindConflict, "promotion code already exists")
	// ErrDuplicateGenreName — жанр с таким именем уже существует.
	ErrDuplicateGenreName = NewError(KindConflict, "genre name already exists")
	// ErrDuplicatePlatformName — платформа с таким именем уже существует.
	ErrDuplicatePlatformName = NewError(KindConflict, "platform name already exists")

	// ErrAccessDenied — операция над чужим ресурсом без прав администратора.
	ErrAccessDenied = NewError(KindForbidden, "operation is not allowed for this actor")
	// ErrAdminOnly — операция доступна только администратору.
	ErrAdminOnly = NewError(KindForbidden, "operation requires the admin role")
)

// Ошибки валидации сущностей (возвращаются списками из Validate-методов).
var (
	// Ошибка отсутствующего идентификатора пользователя.
	ErrUserIDRequired = errors.New("user_id is required")
	// Ошибка отсутствующего имени пользователя.
	ErrUsernameRequired = errors.New("username is required")
	// Ошибка отсутствующего e-mail.
	ErrEmailRequired = errors.New("email is required")
	// Ошибка неподдерживаемой роли.
	ErrRoleInvalid = errors.New("role must be ADMIN or CUSTOMER")
	// Ошибка отсутствующего названия игры.
	ErrTitleRequired = errors.New("title is required")
	// Ошибка отрицательной цены.
	ErrPriceNegative = errors.New("price must be non-negative")
	// Ошибка скидочной цены выше базовой.
	ErrDiscountAbovePrice = errors.New("discount price must not exceed price")
	// Ошибка отсутствующего кода промоакции.
	ErrPromotionCodeRequired = errors.New("promotion code is required")
	// Ошибка неподдерживаемого типа скидки.
	ErrDiscountTypeInvalid = errors.New("discount type must be PERCENTAGE or FIXED_AMOUNT")
	// Ошибка некорректного значения скидки.
	ErrDiscountValueInvalid = errors.New("discount value must be positive")
	// Ошибка процентной скидки больше 100.
	ErrPercentageTooLarge = errors.New("percentage discount must not exceed 100")
	// Ошибка перепутанных дат окна действия.
	ErrPromotionWindowInverted = errors.New("start_date must not be after end_date")
	// Ошибка отсутствия хотя бы одной позиции в заказе.
	ErrOrderItemsRequired = errors.New("order must contain at least one item")
	// Ошибка отрицательной суммы заказа.
	ErrOrderAmountNegative = errors.New("total amount must be non-negative")
	// Ошибка несоответствия суммы заказа и сумм позиций.
	ErrOrderAmountMismatch = errors.New("order amount does not match items sum")
	// Ошибка отсутствующего идентификатора заказа в платеже.
	ErrOrderIDRequired = errors.New("order_id is required")
	// Ошибка отрицательной суммы платежа.
	ErrPaymentAmountNegative = errors.New("payment amount must be non-negative")
	// Ошибка неподдерживаемого способа оплаты.
	ErrPaymentMethodInvalid = errors.New("payment method is not supported")
	// Ошибка рейтинга вне диапазона 1..5.
	ErrRatingOutOfRange = errors.New("rating must be between 1 and 5")
	// Ошибка отсутствующего идентификатора игры.
	ErrGameIDRequired = errors.New("game_id is required")
)
