package totalconnect

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	for code, outcome := range map[ResultCode]Outcome{
		ResultSuccess:              OutcomeSuccess,
		ResultCommandSucceeded:     OutcomeSuccess,
		ResultConnectionError:      OutcomeRetriable,
		ResultFailedToConnect:      OutcomeRetriable,
		ResultInvalidSession:       OutcomeSessionInvalid,
		ResultFeatureNotSupported:  OutcomeFeatureUnsupported,
		ResultBadUserOrPassword:    OutcomeAuthenticationFailure,
		ResultAuthenticationFailed: OutcomeAuthenticationFailure,
		ResultUserCodeInvalid:      OutcomeUnknown,
		ResultUserCodeUnavailable:  OutcomeUnknown,
		ResultCommandFailed:        OutcomeUnknown,
		ResultCode(1):              OutcomeUnknown,
		ResultCode(-999999):        OutcomeUnknown,
	} {
		t.Run(code.String(), func(t *testing.T) {
			require.Equal(t, outcome, Classify(code))
		})
	}
}

func TestParseRawResult(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		res, err := ParseRawResult([]byte(responseInvalidSession))
		require.NoError(t, err)
		require.Equal(t, ResultInvalidSession, res.ResultCode)
		require.Equal(t, "Invalid Session", res.ResultData)
		require.Equal(t, OutcomeSessionInvalid, res.Outcome())
		require.JSONEq(t, responseInvalidSession, string(res.Payload))
	})

	t.Run("missing result code", func(t *testing.T) {
		_, err := ParseRawResult([]byte(`{"ResultData":"Success"}`))
		require.EqualError(t, err, "invalid reply: missing ResultCode")
	})

	t.Run("result code is not a number", func(t *testing.T) {
		_, err := ParseRawResult([]byte(`{"ResultCode":"0"}`))
		require.Error(t, err)
	})

	t.Run("not an object", func(t *testing.T) {
		_, err := ParseRawResult([]byte(`[0]`))
		require.Error(t, err)
	})

	t.Run("not json", func(t *testing.T) {
		_, err := ParseRawResult([]byte(`<soap:Envelope/>`))
		require.EqualError(t, err, "invalid reply: not a json document")
	})
}

func TestCheckComplete(t *testing.T) {
	payload := []byte(`{
		"ResultCode": 0,
		"Name": "home",
		"Blank": "  ",
		"Null": null,
		"EmptyObject": {},
		"EmptyList": [],
		"Zero": 0,
		"False": false,
		"Nested": {"List": [1]}
	}`)

	require.NoError(t, checkComplete("op", payload, "Name", "Zero", "False", "Nested", "Nested.List"))

	err := checkComplete("op", payload, "Name", "Blank", "Null", "EmptyObject", "EmptyList", "Missing", "Nested.Missing")
	var partial *PartialResponseError
	require.ErrorAs(t, err, &partial)
	require.Equal(t, "op", partial.Operation)
	require.Equal(t, []string{"Blank", "Null", "EmptyObject", "EmptyList", "Missing", "Nested.Missing"}, partial.Missing)
	require.EqualError(t, err, "op: partial response, missing Blank, Null, EmptyObject, EmptyList, Missing, Nested.Missing")
}

func TestResultCodeString(t *testing.T) {
	require.Equal(t, "invalid session", ResultInvalidSession.String())
	require.Equal(t, "unknown result code 42", ResultCode(42).String())
	require.Equal(t, "session-invalid", OutcomeSessionInvalid.String())
}

func TestBadResultCodeError(t *testing.T) {
	err := &BadResultCodeError{Operation: opArm, Code: ResultUserCodeInvalid, Data: "Invalid user code"}
	require.EqualError(t, err, "ArmSecuritySystem: bad result code -4106 (user code invalid): Invalid user code")
}
