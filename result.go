package totalconnect

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/tidwall/gjson"
)

type ResultCode int

const (
	ResultSuccess              ResultCode = 0
	ResultCommandSucceeded     ResultCode = 4500
	ResultConnectionError      ResultCode = 4101
	ResultFailedToConnect      ResultCode = -4104
	ResultInvalidSession       ResultCode = -102
	ResultAuthenticationFailed ResultCode = -100
	ResultBadUserOrPassword    ResultCode = -50004
	ResultFeatureNotSupported  ResultCode = -4002
	ResultUserCodeInvalid      ResultCode = -4106
	ResultUserCodeUnavailable  ResultCode = -4114
	ResultCommandFailed        ResultCode = -4502
)

func (c ResultCode) String() string {
	switch c {
	case ResultSuccess:
		return "success"
	case ResultCommandSucceeded:
		return "command succeeded"
	case ResultConnectionError:
		return "connection error"
	case ResultFailedToConnect:
		return "failed to connect"
	case ResultInvalidSession:
		return "invalid session"
	case ResultAuthenticationFailed:
		return "authentication failed"
	case ResultBadUserOrPassword:
		return "bad username or password"
	case ResultFeatureNotSupported:
		return "feature not supported"
	case ResultUserCodeInvalid:
		return "user code invalid"
	case ResultUserCodeUnavailable:
		return "user code unavailable"
	case ResultCommandFailed:
		return "command failed"
	default:
		return fmt.Sprintf("unknown result code %d", int(c))
	}
}

// Outcome is what a result code means for the request flow.
type Outcome uint8

const (
	OutcomeUnknown Outcome = iota
	OutcomeSuccess
	OutcomeRetriable
	OutcomeSessionInvalid
	OutcomeFeatureUnsupported
	OutcomeAuthenticationFailure
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSuccess:
		return "success"
	case OutcomeRetriable:
		return "retriable"
	case OutcomeSessionInvalid:
		return "session-invalid"
	case OutcomeFeatureUnsupported:
		return "feature-unsupported"
	case OutcomeAuthenticationFailure:
		return "authentication-failure"
	default:
		return "unknown"
	}
}

var outcomes = map[ResultCode]Outcome{
	ResultSuccess:              OutcomeSuccess,
	ResultCommandSucceeded:     OutcomeSuccess,
	ResultConnectionError:      OutcomeRetriable,
	ResultFailedToConnect:      OutcomeRetriable,
	ResultInvalidSession:       OutcomeSessionInvalid,
	ResultFeatureNotSupported:  OutcomeFeatureUnsupported,
	ResultBadUserOrPassword:    OutcomeAuthenticationFailure,
	ResultAuthenticationFailed: OutcomeAuthenticationFailure,
}

// Classify maps a result code to its outcome. Codes outside the protocol
// table are OutcomeUnknown, which callers must treat as a failure.
func Classify(code ResultCode) Outcome {
	if o, ok := outcomes[code]; ok {
		return o
	}
	return OutcomeUnknown
}

// RawResult is a single reply from the remote service.
// Payload holds the complete JSON reply object.
type RawResult struct {
	ResultCode ResultCode
	ResultData string
	Payload    []byte
}

func (r RawResult) Outcome() Outcome {
	return Classify(r.ResultCode)
}

// ParseRawResult validates the reply envelope and extracts the result code.
func ParseRawResult(body []byte) (RawResult, error) {
	if !gjson.ValidBytes(body) {
		return RawResult{}, errors.New("invalid reply: not a json document")
	}
	reply := gjson.ParseBytes(body)
	if !reply.IsObject() {
		return RawResult{}, fmt.Errorf("invalid reply: expected an object, got %s", reply.Type)
	}
	code := reply.Get("ResultCode")
	if code.Type != gjson.Number {
		return RawResult{}, errors.New("invalid reply: missing ResultCode")
	}
	return RawResult{
		ResultCode: ResultCode(code.Int()),
		ResultData: reply.Get("ResultData").String(),
		Payload:    body,
	}, nil
}

// checkComplete rejects replies that claim success but lack the given
// fields. Paths use gjson syntax, e.g. "ZoneStatus.Zones".
func checkComplete(operation string, payload []byte, required ...string) error {
	var missing []string
	for _, path := range required {
		if isEmpty(gjson.GetBytes(payload, path)) {
			missing = append(missing, path)
		}
	}
	if len(missing) > 0 {
		return &PartialResponseError{
			Operation: operation,
			Missing:   missing,
		}
	}
	return nil
}

func isEmpty(r gjson.Result) bool {
	switch {
	case !r.Exists(), r.Type == gjson.Null:
		return true
	case r.IsObject():
		return len(r.Map()) == 0
	case r.IsArray():
		return len(r.Array()) == 0
	case r.Type == gjson.String:
		return strings.TrimSpace(r.Str) == ""
	default:
		return false
	}
}

func decodePayload(operation string, res RawResult, v any, required ...string) error {
	if err := checkComplete(operation, res.Payload, required...); err != nil {
		return err
	}
	if err := sonic.Unmarshal(res.Payload, v); err != nil {
		return &PartialResponseError{
			Operation: operation,
			Err:       err,
		}
	}
	return nil
}
