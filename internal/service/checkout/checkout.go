package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"

	"github.com/gamestorelab/gamestore/internal/domain"
)

// Checkout превращает выбранные позиции корзины в заказ.
//
// Все проверки выполняются до единственного пишущего блока: сама запись
// (заказ + позиции + вычистка корзины) атомарна на стороне CheckoutRepository,
// поэтому частично применённых состояний, требующих восстановления, нет.
func (s *Service) Checkout(req Request) (domain.Order, error) {
	start := time.Now()
	if s.metrics != nil {
		s.metrics.RecordCheckoutStarted()
	}

	order, err := s.run(req)

	if s.metrics != nil {
		s.metrics.RecordCheckoutDuration(time.Since(start))
		if err != nil {
			s.metrics.RecordCheckoutFailed(string(domain.KindOf(err)))
		} else {
			s.metrics.RecordCheckoutCompleted(order.PayableAmount())
		}
	}

	return order, err
}

func (s *Service) run(req Request) (domain.Order, error) {
	if req.IdempotencyKey != "" && s.idempotency != nil {
		if order, replayed, err := s.beginIdempotent(req); replayed || err != nil {
			return order, err
		}
	}

	order, err := s.createOrder(req)

	if req.IdempotencyKey != "" && s.idempotency != nil {
		s.finishIdempotent(req.IdempotencyKey, order, err)
	}

	return order, err
}

func (s *Service) createOrder(req Request) (domain.Order, error) {
	// Шаг 1: снапшот корзины с актуальными ценами каталога.
	snapshot, err := s.carts.Snapshot(req.Actor.UserID)
	if err != nil {
		return domain.Order{}, err
	}

	// Шаг 2: пустой выбор отклоняется до каких-либо расчётов.
	if len(req.SelectedGameIDs) == 0 {
		return domain.Order{}, domain.ErrEmptySelection
	}

	// Шаг 3: выбор обязан точно совпасть со строками корзины. Фильтруем строки
	// снапшота по выбору и сверяем количества: неизвестный или повторённый
	// идентификатор даёт расхождение. Частичный чекаут не выполняется.
	selected := make(map[string]struct{}, len(req.SelectedGameIDs))
	for _, gameID := range req.SelectedGameIDs {
		selected[gameID] = struct{}{}
	}
	lines := make([]domain.CartLine, 0, len(selected))
	for _, line := range snapshot.Lines {
		if _, ok := selected[line.GameID]; ok {
			lines = append(lines, line)
		}
	}
	if len(lines) != len(req.SelectedGameIDs) {
		return domain.Order{}, domain.ErrSelectionMismatch
	}

	// Шаг 4: subtotal — точная десятичная сумма действующих цен.
	subtotal := decimal.Zero
	for _, line := range lines {
		subtotal = subtotal.Add(line.EffectiveUnitPrice())
	}

	// Шаги 5–6: валидация промокода и расчёт итога со скидкой.
	terms, err := s.validatePromotion(req.PromotionCode)
	if err != nil {
		return domain.Order{}, err
	}
	total, err := applyDiscount(subtotal, terms)
	if err != nil {
		return domain.Order{}, err
	}

	now := time.Now().UTC()
	order := domain.Order{
		ID:          uuid.NewString(),
		UserID:      req.Actor.UserID,
		TotalAmount: subtotal,
		Status:      domain.OrderStatusDelivered,
		Notes:       req.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	// NULL в discounted_amount означает "скидка не применялась".
	if !total.Equal(subtotal) {
		order.DiscountedAmount = &total
	}
	for _, line := range lines {
		order.Items = append(order.Items, domain.OrderItem{
			ID:      uuid.NewString(),
			OrderID: order.ID,
			GameID:  line.GameID,
			Title:   line.Title,
			// Цена фиксируется здесь: дальнейшие изменения каталога
			// не меняют сумму исторического заказа.
			UnitPrice: line.EffectiveUnitPrice(),
			CreatedAt: now,
		})
	}

	if errs := order.ValidateInvariants(); len(errs) > 0 {
		return domain.Order{}, domain.WrapError(domain.KindInternal, "order invariants violated", errs[0])
	}

	// Шаг 7: атомарный блок — вставка заказа и позиций, удаление потреблённых
	// строк корзины. Либо применяется всё, либо ничего.
	created, err := s.checkout.CreateOrderFromCart(order, snapshot.CartID, req.SelectedGameIDs)
	if err != nil {
		return domain.Order{}, err
	}

	s.afterCommit(created, terms)

	return created, nil
}

// afterCommit выполняет side-эффекты после коммита: история статуса, событие
// нотификации, метрики скидок. Ошибки здесь только логируются — заказ уже создан.
func (s *Service) afterCommit(order domain.Order, terms *domain.DiscountTerms) {
	if s.history != nil {
		change := domain.StatusChange{
			OrderID:  order.ID,
			To:       order.Status,
			Reason:   "checkout",
			Occurred: order.CreatedAt,
		}
		if err := s.history.Append(change); err != nil {
			s.logger.WithError(err).WithField("order_id", order.ID).Warn("append status history failed")
		}
	}

	if terms != nil && s.metrics != nil {
		s.metrics.RecordDiscountApplied(string(terms.Type))
	}

	if s.publisher != nil {
		if err := s.publisher.OrderCreated(order); err != nil {
			s.logger.WithError(err).WithField("order_id", order.ID).Warn("publish order.created failed")
		}
	}

	s.logger.WithFields(log.Fields{
		"order_id": order.ID,
		"user_id":  order.UserID,
		"items":    len(order.Items),
		"amount":   order.PayableAmount().String(),
	}).Info("order created from cart")
}
