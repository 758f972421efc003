package totalconnect

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

const (
	testLocationID = 123456
	testDeviceID   = 7654321
	testToken      = "12345"
	testNewToken   = "67890"
)

const (
	responseAuthenticate        = `{"ResultCode":0,"ResultData":"Success","SessionID":"12345"}`
	responseSessionInitiated    = `{"ResultCode":4500,"ResultData":"Session initiated","SessionID":"67890"}`
	responseBadUserOrPassword   = `{"ResultCode":-50004,"ResultData":"Invalid username or password"}`
	responseInvalidSession      = `{"ResultCode":-102,"ResultData":"Invalid Session"}`
	responseConnectionError     = `{"ResultCode":4101,"ResultData":"Unable to connect to panel"}`
	responseFailedToConnect     = `{"ResultCode":-4104,"ResultData":"Failed to connect with security system"}`
	responseFeatureNotSupported = `{"ResultCode":-4002,"ResultData":"The requested feature is not supported"}`
	responseUnknown             = `{"ResultCode":-123456,"ResultData":"Unknown result code"}`
	responseUserCodeInvalid     = `{"ResultCode":-4106,"ResultData":"Invalid user code"}`
	responseCommandSucceeded    = `{"ResultCode":4500,"ResultData":"Command succeeded"}`
	responseLogout              = `{"ResultCode":0,"ResultData":"Logged out"}`
	responseSessionDetails      = `{
		"ResultCode": 0,
		"ResultData": "Success",
		"Locations": {
			"LocationInfoBasic": [
				{"LocationID": 123456, "LocationName": "Home", "SecurityDeviceID": 7654321}
			]
		}
	}`
	responsePartitionDetails = `{
		"ResultCode": 0,
		"ResultData": "Success",
		"PartitionsInfoList": {
			"PartitionDetails": [
				{"PartitionID": 1, "PartitionName": "Main", "ArmingState": 10200}
			]
		}
	}`
	responseZoneDetails = `{
		"ResultCode": 0,
		"ResultData": "Success",
		"ZoneStatus": {
			"Zones": [
				{"ZoneID": 1, "ZoneDescription": "Front Door", "ZoneStatus": 0, "PartitionId": 1, "ZoneTypeId": 1, "CanBeBypassed": 1, "Batterylevel": 5, "Signalstrength": 4},
				{"ZoneID": 2, "ZoneDescription": "Hallway Motion", "ZoneStatus": 64, "PartitionId": 1, "ZoneTypeId": 3, "CanBeBypassed": 0, "Batterylevel": 1, "Signalstrength": 2}
			]
		}
	}`
	responseZoneDetailsNone       = `{"ResultCode":0,"ResultData":"Success","ZoneStatus":{}}`
	responseFullStatusNone        = `{"ResultCode":0}`
	responseFullStatusEmptyStatus = `{"ResultCode":0,"ResultData":"Success","ArmingState":10201,"PanelMetadataAndStatus":{}}`
)

var (
	responseDisarmed       = fullStatus(ArmingStateDisarmed, ZoneStatusNormal)
	responseArmedAway      = fullStatus(ArmingStateArmedAway, ZoneStatusNormal)
	responseArmedStay      = fullStatus(ArmingStateArmedStay, ZoneStatusNormal)
	responseArmedStayNight = fullStatus(ArmingStateArmedStayNight, ZoneStatusNormal)
)

func fullStatus(state ArmingState, zone2 ZoneStatus) string {
	return fmt.Sprintf(`{
		"ResultCode": 0,
		"ResultData": "Success",
		"ArmingState": %[1]d,
		"PanelMetadataAndStatus": {
			"IsInACLoss": false,
			"IsInLowBattery": false,
			"IsCoverTampered": false,
			"Partitions": {
				"PartitionInfo": [{"PartitionID": 1, "ArmingState": %[1]d}]
			},
			"Zones": {
				"ZoneInfo": [
					{"ZoneID": 1, "ZoneDescription": "Front Door", "ZoneStatus": 0, "PartitionId": 1},
					{"ZoneID": 2, "ZoneDescription": "Hallway Motion", "ZoneStatus": %[2]d, "PartitionId": 1}
				]
			}
		}
	}`, int(state), int(zone2))
}

type call struct {
	operation string
	params    []any
}

type reply struct {
	body string
	err  error
}

// fakeTransport replays scripted replies in order and records every call.
type fakeTransport struct {
	t       *testing.T
	replies []reply
	calls   []call
}

func newFakeTransport(t *testing.T, bodies ...string) *fakeTransport {
	t.Helper()
	f := &fakeTransport{t: t}
	f.push(bodies...)
	return f
}

func (f *fakeTransport) push(bodies ...string) {
	for _, body := range bodies {
		f.replies = append(f.replies, reply{body: body})
	}
}

func (f *fakeTransport) fail(err error) {
	f.replies = append(f.replies, reply{err: err})
}

func (f *fakeTransport) Call(_ context.Context, operation string, params ...any) (RawResult, error) {
	f.calls = append(f.calls, call{operation: operation, params: params})
	require.NotEmpty(f.t, f.replies, "unexpected call to %s", operation)
	r := f.replies[0]
	f.replies = f.replies[1:]
	if r.err != nil {
		return RawResult{}, r.err
	}
	res, err := ParseRawResult([]byte(r.body))
	require.NoError(f.t, err)
	return res, nil
}

func (f *fakeTransport) count(operation string) int {
	var n int
	for _, c := range f.calls {
		if c.operation == operation {
			n++
		}
	}
	return n
}

func (f *fakeTransport) last(operation string) call {
	for i := len(f.calls) - 1; i >= 0; i-- {
		if f.calls[i].operation == operation {
			return f.calls[i]
		}
	}
	f.t.Fatalf("no call to %s", operation)
	return call{}
}

// newTestClient returns a logged in client with its single location
// loaded and disarmed.
func newTestClient(t *testing.T, opts ...Option) (*Client, *fakeTransport) {
	t.Helper()
	transport := newFakeTransport(
		t,
		responseAuthenticate,
		responseSessionDetails,
		responsePartitionDetails,
		responseDisarmed,
	)
	cli, err := New(
		context.Background(),
		transport,
		"username",
		"password",
		append([]Option{WithRetryDelay(0)}, opts...)...,
	)
	require.NoError(t, err)
	_, err = cli.Locations(context.Background())
	require.NoError(t, err)
	require.Empty(t, transport.replies)
	return cli, transport
}
