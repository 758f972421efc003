package totalconnect

import (
	"fmt"
	"math"
	"strings"
)

// ZoneStatus is a bit set of the conditions a zone reports.
type ZoneStatus uint16

const (
	ZoneStatusNormal     ZoneStatus = 0
	ZoneStatusBypassed   ZoneStatus = 1 << 0
	ZoneStatusFault      ZoneStatus = 1 << 1
	ZoneStatusTrouble    ZoneStatus = 1 << 3
	ZoneStatusTamper     ZoneStatus = 1 << 4
	ZoneStatusLowBattery ZoneStatus = 1 << 6
	ZoneStatusTriggered  ZoneStatus = 1 << 8
)

func (z ZoneStatus) IsNormal() bool     { return z == ZoneStatusNormal }
func (z ZoneStatus) IsBypassed() bool   { return z&ZoneStatusBypassed > 0 }
func (z ZoneStatus) IsFaulted() bool    { return z&ZoneStatusFault > 0 }
func (z ZoneStatus) IsTroubled() bool   { return z&ZoneStatusTrouble > 0 }
func (z ZoneStatus) IsTampered() bool   { return z&ZoneStatusTamper > 0 }
func (z ZoneStatus) IsLowBattery() bool { return z&ZoneStatusLowBattery > 0 }
func (z ZoneStatus) IsTriggered() bool  { return z&ZoneStatusTriggered > 0 }

func (z ZoneStatus) String() string {
	if z.IsNormal() {
		return "normal"
	}
	var s []string
	if z.IsBypassed() {
		s = append(s, "bypassed")
	}
	if z.IsFaulted() {
		s = append(s, "faulted")
	}
	if z.IsTroubled() {
		s = append(s, "trouble")
	}
	if z.IsTampered() {
		s = append(s, "tampered")
	}
	if z.IsLowBattery() {
		s = append(s, "low-battery")
	}
	if z.IsTriggered() {
		s = append(s, "triggered")
	}
	if len(s) == 0 {
		return "unknown"
	}
	return strings.Join(s, ",")
}

// zoneStatusFrom converts a reported status code, rejecting values that do
// not fit the flag set.
func zoneStatusFrom(v int) (ZoneStatus, error) {
	if v < 0 || v > math.MaxUint16 {
		return 0, fmt.Errorf("status %d out of range", v)
	}
	return ZoneStatus(v), nil
}
