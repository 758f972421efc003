package totalconnect

// ArmingState is the security posture of a location or partition, using
// the codes the service reports.
type ArmingState int

const (
	ArmingStateUnknown                ArmingState = 0
	ArmingStateDisarmed               ArmingState = 10200
	ArmingStateArmedAway              ArmingState = 10201
	ArmingStateArmedAwayBypass        ArmingState = 10202
	ArmingStateArmedStay              ArmingState = 10203
	ArmingStateArmedStayBypass        ArmingState = 10204
	ArmingStateArmedAwayInstant       ArmingState = 10205
	ArmingStateArmedAwayInstantBypass ArmingState = 10206
	ArmingStateAlarming               ArmingState = 10207
	ArmingStateArmedStayInstant       ArmingState = 10209
	ArmingStateArmedStayInstantBypass ArmingState = 10210
	ArmingStateDisarmedBypass         ArmingState = 10211
	ArmingStateAlarmingFireSmoke      ArmingState = 10212
	ArmingStateAlarmingCarbonMonoxide ArmingState = 10213
	ArmingStateArmedStayNight         ArmingState = 10218
	ArmingStateArmedCustomBypass      ArmingState = 10223
	ArmingStateArming                 ArmingState = 10307
	ArmingStateDisarming              ArmingState = 10308
)

var armingStateNames = map[ArmingState]string{
	ArmingStateDisarmed:               "Disarmed",
	ArmingStateDisarmedBypass:         "Disarmed (bypass)",
	ArmingStateArmedAway:              "Armed Away",
	ArmingStateArmedAwayBypass:        "Armed Away (bypass)",
	ArmingStateArmedAwayInstant:       "Armed Away Instant",
	ArmingStateArmedAwayInstantBypass: "Armed Away Instant (bypass)",
	ArmingStateArmedStay:              "Armed Stay",
	ArmingStateArmedStayBypass:        "Armed Stay (bypass)",
	ArmingStateArmedStayInstant:       "Armed Stay Instant",
	ArmingStateArmedStayInstantBypass: "Armed Stay Instant (bypass)",
	ArmingStateArmedStayNight:         "Armed Stay Night",
	ArmingStateArmedCustomBypass:      "Armed Custom (bypass)",
	ArmingStateAlarming:               "Alarming",
	ArmingStateAlarmingFireSmoke:      "Alarming Fire/Smoke",
	ArmingStateAlarmingCarbonMonoxide: "Alarming Carbon Monoxide",
	ArmingStateArming:                 "Arming",
	ArmingStateDisarming:              "Disarming",
}

// armingStateFrom maps a reported code to a known state; anything else is
// ArmingStateUnknown.
func armingStateFrom(code int) ArmingState {
	s := ArmingState(code)
	if _, ok := armingStateNames[s]; ok {
		return s
	}
	return ArmingStateUnknown
}

func (s ArmingState) String() string {
	if name, ok := armingStateNames[s]; ok {
		return name
	}
	return "Unknown"
}

func (s ArmingState) IsDisarmed() bool {
	return s == ArmingStateDisarmed || s == ArmingStateDisarmedBypass
}

func (s ArmingState) IsArmedAway() bool {
	switch s {
	case ArmingStateArmedAway,
		ArmingStateArmedAwayBypass,
		ArmingStateArmedAwayInstant,
		ArmingStateArmedAwayInstantBypass:
		return true
	default:
		return false
	}
}

func (s ArmingState) IsArmedStay() bool {
	switch s {
	case ArmingStateArmedStay,
		ArmingStateArmedStayBypass,
		ArmingStateArmedStayInstant,
		ArmingStateArmedStayInstantBypass:
		return true
	default:
		return false
	}
}

func (s ArmingState) IsArmedNight() bool {
	return s == ArmingStateArmedStayNight
}

func (s ArmingState) IsArmedCustom() bool {
	return s == ArmingStateArmedCustomBypass
}

func (s ArmingState) IsArmed() bool {
	return s.IsArmedAway() || s.IsArmedStay() || s.IsArmedNight() || s.IsArmedCustom()
}

// IsPending is true while the panel is transitioning between states.
func (s ArmingState) IsPending() bool {
	return s == ArmingStateArming || s == ArmingStateDisarming
}

func (s ArmingState) IsTriggered() bool {
	switch s {
	case ArmingStateAlarming,
		ArmingStateAlarmingFireSmoke,
		ArmingStateAlarmingCarbonMonoxide:
		return true
	default:
		return false
	}
}
