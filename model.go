package totalconnect

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type Location struct {
	ID               int
	Name             string
	SecurityDeviceID int
	Usercode         string
	ArmingState      ArmingState
	LowBattery       bool
	ACLoss           bool
	CoverTampered    bool
	Partitions       map[int]*Partition
	Zones            map[int]*Zone
}

type Partition struct {
	ID          int
	Name        string
	ArmingState ArmingState
}

type Zone struct {
	ID             int
	Description    string
	Status         ZoneStatus
	PartitionID    int
	TypeID         int
	CanBeBypassed  bool
	BatteryLevel   int
	SignalStrength int
}

func newLocation(info locationInfo, usercode string) *Location {
	if usercode == "" {
		usercode = defaultUsercode
	}
	return &Location{
		ID:               info.LocationID,
		Name:             info.LocationName,
		SecurityDeviceID: info.SecurityDeviceID,
		Usercode:         usercode,
		Partitions:       map[int]*Partition{},
		Zones:            map[int]*Zone{},
	}
}

// Zone returns the zone with the given id, or a *LookupError.
func (l *Location) Zone(id int) (*Zone, error) {
	zone, ok := l.Zones[id]
	if !ok {
		return nil, &LookupError{Kind: "zone", LocationID: l.ID, ID: id}
	}
	return zone, nil
}

// ZoneIDs returns the known zone ids in ascending order.
func (l *Location) ZoneIDs() []int {
	ids := maps.Keys(l.Zones)
	slices.Sort(ids)
	return ids
}

func (l *Location) applyPartitions(parts []partitionInfo) {
	for _, p := range parts {
		part, ok := l.Partitions[p.PartitionID]
		if !ok {
			part = &Partition{ID: p.PartitionID}
			l.Partitions[p.PartitionID] = part
		}
		if p.PartitionName != "" {
			part.Name = p.PartitionName
		}
		part.ArmingState = armingStateFrom(p.ArmingState)
	}
}

// applyStatus folds a complete status reply into the location.
func (l *Location) applyStatus(reply fullStatusReply) {
	status := reply.PanelMetadataAndStatus
	l.ArmingState = armingStateFrom(reply.ArmingState)
	l.LowBattery = status.IsInLowBattery
	l.ACLoss = status.IsInACLoss
	l.CoverTampered = status.IsCoverTampered
	l.applyPartitions(status.Partitions.PartitionInfo)
	for _, z := range status.Zones.ZoneInfo {
		zone := l.zone(z.ZoneID)
		zone.Status = ZoneStatus(z.ZoneStatus)
		if z.ZoneDescription != "" {
			zone.Description = z.ZoneDescription
		}
		if z.PartitionID != 0 {
			zone.PartitionID = z.PartitionID
		}
	}
}

// checkZones validates zone replies before any of them is folded into the
// model.
func checkZones(operation string, zones []zoneInfo) error {
	for _, z := range zones {
		if _, err := zoneStatusFrom(z.ZoneStatus); err != nil {
			return &PartialResponseError{
				Operation: operation,
				Err:       fmt.Errorf("zone %d: %w", z.ZoneID, err),
			}
		}
	}
	return nil
}

func (l *Location) applyZoneDetails(zones []zoneInfo) {
	for _, z := range zones {
		zone := l.zone(z.ZoneID)
		zone.Description = z.ZoneDescription
		zone.Status = ZoneStatus(z.ZoneStatus)
		zone.PartitionID = z.PartitionID
		zone.TypeID = z.ZoneTypeID
		zone.CanBeBypassed = z.CanBeBypassed == 1
		zone.BatteryLevel = z.BatteryLevel
		zone.SignalStrength = z.SignalStrength
	}
}

func (l *Location) zone(id int) *Zone {
	zone, ok := l.Zones[id]
	if !ok {
		zone = &Zone{ID: id}
		l.Zones[id] = zone
	}
	return zone
}
