package checkout

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/gamestorelab/gamestore/internal/domain"
)

// idempotencyTTL задаёт срок хранения исхода чекаута по ключу.
const idempotencyTTL = 24 * time.Hour

// beginIdempotent регистрирует idempotency-ключ или возвращает уже известный
// исход. replayed=true означает, что выполнять чекаут не нужно.
func (s *Service) beginIdempotent(req Request) (domain.Order, bool, error) {
	hash := requestHash(req)

	record, err := s.idempotency.Get(req.IdempotencyKey)
	switch {
	case err == nil:
		switch record.Status {
		case domain.IdempotencyStatusDone:
			if record.RequestHash != hash {
				return domain.Order{}, true, domain.ErrIdempotencyKeyReused
			}
			order, err := s.orders.Get(record.OrderID)
			return order, true, err
		case domain.IdempotencyStatusProcessing:
			return domain.Order{}, true, domain.ErrCheckoutInFlight
		default:
			// failed: ключ освобождается для повторной попытки.
		}
	case errors.Is(err, domain.ErrIdempotencyKeyNotFound):
		// первый запрос с этим ключом
	default:
		return domain.Order{}, true, err
	}

	if _, err := s.idempotency.CreateProcessing(req.IdempotencyKey, hash, time.Now().UTC().Add(idempotencyTTL)); err != nil {
		return domain.Order{}, true, err
	}
	return domain.Order{}, false, nil
}

// finishIdempotent фиксирует исход чекаута по ключу; ошибки записи не влияют
// на уже принятое решение и только логируются.
func (s *Service) finishIdempotent(key string, order domain.Order, checkoutErr error) {
	if checkoutErr != nil {
		if err := s.idempotency.MarkFailed(key); err != nil {
			s.logger.WithError(err).WithField("idempotency_key", key).Warn("mark idempotency failed")
		}
		return
	}
	if err := s.idempotency.MarkDone(key, order.ID); err != nil {
		s.logger.WithError(err).WithField("idempotency_key", key).Warn("mark idempotency done")
	}
}

// requestHash детерминированно сворачивает содержимое запроса: повтор ключа с
// другим составом корзины или промокодом отклоняется как переиспользование.
func requestHash(req Request) string {
	ids := append([]string(nil), req.SelectedGameIDs...)
	sort.Strings(ids)

	h := sha256.New()
	h.Write([]byte(req.Actor.UserID))
	h.Write([]byte{0})
	h.Write([]byte(strings.Join(ids, ",")))
	h.Write([]byte{0})
	h.Write([]byte(req.PromotionCode))
	h.Write([]byte{0})
	h.Write([]byte(req.Notes))
	return hex.EncodeToString(h.Sum(nil))
}
