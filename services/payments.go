package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/bagenigilbert77664/mizizzi-go-client/apierrors"
	"github.com/bagenigilbert77664/mizizzi-go-client/config"
	"github.com/bagenigilbert77664/mizizzi-go-client/models"
	logctx "github.com/bagenigilbert77664/mizizzi-go-client/pkg/log"
	"github.com/bagenigilbert77664/mizizzi-go-client/pkg/redact"
)

// PaymentsService — M-PESA STK push и Pesapal.
//
// Оба провайдера асинхронны: инициирование возвращает идентификатор,
// статус добирается поллингом. Поллинг ограничен двумя пределами —
// числом попыток и wall-clock countdown — и самоотменяется по первому
// из них с ErrPollExhausted.
type PaymentsService struct {
	c       Caller
	polling config.PollingConfig
}

// InitiateSTKPush — отправить STK push на телефон покупателя.
func (s *PaymentsService) InitiateSTKPush(ctx context.Context, req models.STKPushRequest) (*models.STKPushResponse, error) {
	const op = "services.payments.InitiateSTKPush"

	logctx.From(ctx).Info("stk_push_initiate",
		slog.String("op", op),
		slog.String("order_id", req.OrderID),
		slog.String("phone", redact.Phone(req.Phone)),
	)

	var out models.STKPushResponse
	if err := s.c.Call(ctx, http.MethodPost, "/payments/mpesa/stkpush", req, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// STKStatus — разовая проверка статуса STK push.
func (s *PaymentsService) STKStatus(ctx context.Context, checkoutRequestID string) (*models.PaymentStatus, error) {
	const op = "services.payments.STKStatus"

	var out models.PaymentStatus
	err := s.c.Call(ctx, http.MethodGet,
		"/payments/mpesa/status/"+url.PathEscape(checkoutRequestID), nil, &out)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// WaitForSTKResult — поллинг статуса STK push до терминального статуса
// или исчерпания пределов.
func (s *PaymentsService) WaitForSTKResult(ctx context.Context, checkoutRequestID string) (*models.PaymentStatus, error) {
	return s.poll(ctx, func(ctx context.Context) (*models.PaymentStatus, error) {
		return s.STKStatus(ctx, checkoutRequestID)
	})
}

// SubmitPesapalOrder — создать платёжную сессию Pesapal.
func (s *PaymentsService) SubmitPesapalOrder(ctx context.Context, req models.PesapalOrderRequest) (*models.PesapalOrderResponse, error) {
	const op = "services.payments.SubmitPesapalOrder"

	var out models.PesapalOrderResponse
	if err := s.c.Call(ctx, http.MethodPost, "/payments/pesapal/orders", req, &out); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// PesapalStatus — разовая проверка статуса транзакции Pesapal.
func (s *PaymentsService) PesapalStatus(ctx context.Context, orderTrackingID string) (*models.PaymentStatus, error) {
	const op = "services.payments.PesapalStatus"

	var out models.PaymentStatus
	err := s.c.Call(ctx, http.MethodGet,
		"/payments/pesapal/status/"+url.PathEscape(orderTrackingID), nil, &out)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &out, nil
}

// WaitForPesapalResult — поллинг статуса Pesapal-транзакции.
func (s *PaymentsService) WaitForPesapalResult(ctx context.Context, orderTrackingID string) (*models.PaymentStatus, error) {
	return s.poll(ctx, func(ctx context.Context) (*models.PaymentStatus, error) {
		return s.PesapalStatus(ctx, orderTrackingID)
	})
}

// poll — общий цикл: первая проверка сразу, дальше раз в Interval.
//
// Завершение:
//   - терминальный статус -> результат;
//   - MaxAttempts исчерпан или Countdown истёк -> ErrPollExhausted
//     с последним известным статусом (если был);
//   - отмена внешнего контекста -> его ошибка.
//
// Сетевые ошибки отдельных проверок не прерывают цикл: следующая
// попытка может пройти. Терминальны только ErrAuthFailed и ErrSuperseded.
func (s *PaymentsService) poll(ctx context.Context, check func(context.Context) (*models.PaymentStatus, error)) (*models.PaymentStatus, error) {
	const op = "services.payments.poll"

	lg := logctx.From(ctx)

	// parent сохраняется до навешивания countdown: по нему отличается
	// внешняя отмена вызывающего от истечения собственного лимита.
	parent := ctx
	if s.polling.Countdown > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.polling.Countdown)
		defer cancel()
	}

	ticker := time.NewTicker(s.polling.Interval)
	defer ticker.Stop()

	var last *models.PaymentStatus

	for attempt := 1; attempt <= s.polling.MaxAttempts; attempt++ {
		st, err := check(ctx)
		switch {
		case err == nil:
			if st.Terminal() {
				return st, nil
			}
			last = st
		case isTerminalPollErr(err):
			return nil, fmt.Errorf("%s: %w", op, err)
		default:
			lg.Warn("poll_check_failed",
				slog.String("op", op),
				slog.Int("attempt", attempt),
				slog.String("err", err.Error()),
			)
		}

		if attempt == s.polling.MaxAttempts {
			break
		}

		select {
		case <-ticker.C:
		case <-ctx.Done():
			if parent.Err() != nil {
				return last, fmt.Errorf("%s: %w", op, parent.Err())
			}
			return last, fmt.Errorf("%s: %w", op, apierrors.ErrPollExhausted)
		}
	}

	return last, fmt.Errorf("%s: %w", op, apierrors.ErrPollExhausted)
}

func isTerminalPollErr(err error) bool {
	return errors.Is(err, apierrors.ErrAuthFailed) || errors.Is(err, apierrors.ErrSuperseded)
}
