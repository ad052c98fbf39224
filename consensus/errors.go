package consensus

import "fmt"

type ErrorCode string

const (
	TARGET_ERR_NEGATIVE  ErrorCode = "TARGET_ERR_NEGATIVE"
	TARGET_ERR_OVERFLOW  ErrorCode = "TARGET_ERR_OVERFLOW"
	TARGET_ERR_ABOVE_MAX ErrorCode = "TARGET_ERR_ABOVE_MAX"

	MERKLE_ERR_EMPTY             ErrorCode = "MERKLE_ERR_EMPTY"
	MERKLE_ERR_DUPLICATE_SIBLING ErrorCode = "MERKLE_ERR_DUPLICATE_SIBLING"

	BLOCK_ERR_HASH_INVALID           ErrorCode = "BLOCK_ERR_HASH_INVALID"
	BLOCK_ERR_TARGET_UNEXPECTED      ErrorCode = "BLOCK_ERR_TARGET_UNEXPECTED"
	BLOCK_ERR_POW_INSUFFICIENT       ErrorCode = "BLOCK_ERR_POW_INSUFFICIENT"
	BLOCK_ERR_TIMESTAMP_OLD          ErrorCode = "BLOCK_ERR_TIMESTAMP_OLD"
	BLOCK_ERR_BODY_REQUIRED          ErrorCode = "BLOCK_ERR_BODY_REQUIRED"
	BLOCK_ERR_COINBASE_MISSING       ErrorCode = "BLOCK_ERR_COINBASE_MISSING"
	BLOCK_ERR_COINBASE_MISPLACED     ErrorCode = "BLOCK_ERR_COINBASE_MISPLACED"
	BLOCK_ERR_COINBASE_INPUT_INVALID ErrorCode = "BLOCK_ERR_COINBASE_INPUT_INVALID"
	BLOCK_ERR_COINBASE_OVERPAY       ErrorCode = "BLOCK_ERR_COINBASE_OVERPAY"

	TX_ERR_FEE_OVERFLOW       ErrorCode = "TX_ERR_FEE_OVERFLOW"
	TX_ERR_UTXO               ErrorCode = "TX_ERR_UTXO"
	TX_ERR_MISSING_UTXO       ErrorCode = "TX_ERR_MISSING_UTXO"
	TX_ERR_VALUE_CONSERVATION ErrorCode = "TX_ERR_VALUE_CONSERVATION"

	WIRE_ERR_PARSE          ErrorCode = "WIRE_ERR_PARSE"
	STATE_ERR_ENCODING      ErrorCode = "STATE_ERR_ENCODING"
	STATE_ERR_WORK_OVERFLOW ErrorCode = "STATE_ERR_WORK_OVERFLOW"
)

// ChainError is the error type surfaced by every consensus operation. Code is
// the stable contract; Msg carries expected/actual context for diagnostics;
// Err holds a wrapped collaborator error, if any.
type ChainError struct {
	Code ErrorCode
	Msg  string
	Err  error
}

func (e *ChainError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.Msg == "" && e.Err == nil:
		return string(e.Code)
	case e.Err == nil:
		return fmt.Sprintf("%s: %s", e.Code, e.Msg)
	case e.Msg == "":
		return fmt.Sprintf("%s: %v", e.Code, e.Err)
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Msg, e.Err)
}

func (e *ChainError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func cerr(code ErrorCode, msg string) error {
	return &ChainError{Code: code, Msg: msg}
}

func cerrf(code ErrorCode, format string, args ...any) error {
	return &ChainError{Code: code, Msg: fmt.Sprintf(format, args...)}
}

func cwrap(code ErrorCode, msg string, err error) error {
	return &ChainError{Code: code, Msg: msg, Err: err}
}

// IsCode reports whether err is a ChainError carrying the given code.
func IsCode(err error, code ErrorCode) bool {
	ce, ok := err.(*ChainError)
	return ok && ce.Code == code
}
