package response

import "fmt"

type Error struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func (e *Error) Error() string {
	return fmt.Sprintf("exchange api error %d: %s", e.Code, e.Msg)
}

const InvalidTimestampCode = -1021
const PrecisionOverMaxCode = -1111
const UnknownOrderCode = -2011
const MarginInsufficientCode = -2019
