// apierrors — таксономия ошибок клиентского слоя.
// На вход — ответ бэкенда (HTTP-статус + тело) или транспортная ошибка,
// на выход — классифицированная ошибка с sentinel-обёрткой, пригодная
// для errors.Is на стороне вызывающего.
//
// Политика распространения:
//   - ErrNetwork и ErrServer уходят вызывающему как есть, без ретраев;
//   - ErrUnauthorized перехватывается протоколом refresh внутри клиента
//     и наружу попадает только как ErrAuthFailed;
//   - ErrSuperseded означает, что вызов вытеснен более новым запросом
//     к тому же логическому эндпойнту — вызывающий может его игнорировать.
package apierrors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrNetwork — запрос не дошёл до сервера или истёк таймаут.
	// Этот слой такие ошибки не ретраит.
	ErrNetwork = errors.New("network failure")

	// ErrUnauthorized — первый 401 по access-токену; внутренний сигнал
	// для запуска протокола refresh. Наружу не маппится.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrAuthFailed — терминальный отказ аутентификации: 401 после ретрая
	// либо провал самого refresh. Сессия к этому моменту очищена.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrServer — любой другой не-2xx ответ бэкенда.
	ErrServer = errors.New("server error")

	// ErrSuperseded — запрос отменён, потому что к тому же эндпойнту
	// ушёл более новый вызов.
	ErrSuperseded = errors.New("request superseded")

	// ErrPollExhausted — поллинг статуса платежа исчерпал лимит попыток
	// или countdown, не дождавшись терминального статуса.
	ErrPollExhausted = errors.New("payment status poll exhausted")
)

// APIError — машиночитаемая ошибка бэкенда в едином формате
// {"error":{"code","message","request_id"}}.
type APIError struct {
	Status    int
	Code      string
	Message   string
	RequestID string

	sentinel error
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api error: status=%d code=%s: %s", e.Status, e.Code, e.Message)
	}

	return fmt.Sprintf("api error: status=%d", e.Status)
}

func (e *APIError) Unwrap() error { return e.sentinel }

// errorBody — формат тела ошибки бэкенда.
type errorBody struct {
	Error struct {
		Code      string `json:"code"`
		Message   string `json:"message"`
		RequestID string `json:"request_id,omitempty"`
	} `json:"error"`
}

// FromResponse классифицирует не-2xx ответ бэкенда.
//
// Поведение:
//   - 401 -> APIError{sentinel: ErrUnauthorized} — дальше решает протокол refresh;
//   - всё прочее -> APIError{sentinel: ErrServer};
//   - тело парсится best-effort: битый/пустой JSON не считается ошибкой,
//     Code/Message остаются пустыми.
func FromResponse(status int, body []byte, requestID string) error {
	e := &APIError{
		Status:    status,
		RequestID: requestID,
		sentinel:  ErrServer,
	}
	if status == http.StatusUnauthorized {
		e.sentinel = ErrUnauthorized
	}

	var eb errorBody
	if len(body) > 0 && json.Unmarshal(body, &eb) == nil {
		e.Code = eb.Error.Code
		e.Message = eb.Error.Message
		if e.RequestID == "" {
			e.RequestID = eb.Error.RequestID
		}
	}

	return e
}

// AuthFailed оборачивает причину терминального отказа аутентификации.
// cause может быть nil (например, отсутствие refresh-токена в хранилище).
func AuthFailed(cause error, requestID string) error {
	if cause == nil {
		return &APIError{
			Status:    http.StatusUnauthorized,
			Code:      "auth_failed",
			Message:   "authentication failed",
			RequestID: requestID,
			sentinel:  ErrAuthFailed,
		}
	}

	return fmt.Errorf("%w: %w", ErrAuthFailed, cause)
}
