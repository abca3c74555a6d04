package contracts

import "errors"

// Error taxonomy of the overview pipeline.
// ⭐ SSOT: 요청 단위 오류 분류는 여기서만 정의
var (
	// ErrStoreUnavailable: report store connectivity/query failure.
	// Fatal to the current request - an empty result set is NOT this error.
	ErrStoreUnavailable = errors.New("report store unavailable")

	// ErrQuoteUnavailable: every provider in the chain failed for a stock.
	// Fatal to a single-stock request; drops the member in a sector request.
	ErrQuoteUnavailable = errors.New("quote unavailable from all providers")

	// ErrStockNotFound: user-visible terminal state of a single-stock
	// request whose quote could not be resolved.
	ErrStockNotFound = errors.New("존재하지 않는 종목입니다")
)
