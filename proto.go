package totalconnect

const (
	opLogin           = "AuthenticateUserLogin"
	opLogout          = "Logout"
	opSessionDetails  = "GetSessionDetails"
	opPartitions      = "GetPartitionsDetails"
	opFullStatus      = "GetPanelMetaDataAndFullStatusEx"
	opZoneDetails     = "GetZonesListInStateEx"
	opArm             = "ArmSecuritySystem"
	opDisarm          = "DisarmSecuritySystem"
	opBypass          = "Bypass"
	defaultUsercode   = "-1"
	defaultAppID      = "14588"
	defaultAppVersion = "1.0.34"
)

// ArmType selects how ArmSecuritySystem arms the panel.
type ArmType int

const (
	ArmTypeAway        ArmType = 0
	ArmTypeStay        ArmType = 1
	ArmTypeStayInstant ArmType = 2
	ArmTypeAwayInstant ArmType = 3
	ArmTypeStayNight   ArmType = 4
)

func (a ArmType) String() string {
	switch a {
	case ArmTypeAway:
		return "away"
	case ArmTypeStay:
		return "stay"
	case ArmTypeStayInstant:
		return "stay-instant"
	case ArmTypeAwayInstant:
		return "away-instant"
	case ArmTypeStayNight:
		return "stay-night"
	default:
		return "unknown"
	}
}

type loginReply struct {
	SessionID string `json:"SessionID"`
}

type sessionDetailsReply struct {
	Locations struct {
		LocationInfoBasic []locationInfo `json:"LocationInfoBasic"`
	} `json:"Locations"`
}

type locationInfo struct {
	LocationID       int    `json:"LocationID"`
	LocationName     string `json:"LocationName"`
	SecurityDeviceID int    `json:"SecurityDeviceID"`
}

type partitionsReply struct {
	PartitionsInfoList struct {
		PartitionDetails []partitionInfo `json:"PartitionDetails"`
	} `json:"PartitionsInfoList"`
}

type partitionInfo struct {
	PartitionID   int    `json:"PartitionID"`
	PartitionName string `json:"PartitionName"`
	ArmingState   int    `json:"ArmingState"`
}

type fullStatusReply struct {
	ArmingState            int `json:"ArmingState"`
	PanelMetadataAndStatus struct {
		IsInACLoss      bool `json:"IsInACLoss"`
		IsInLowBattery  bool `json:"IsInLowBattery"`
		IsCoverTampered bool `json:"IsCoverTampered"`
		Partitions      struct {
			PartitionInfo []partitionInfo `json:"PartitionInfo"`
		} `json:"Partitions"`
		Zones struct {
			ZoneInfo []zoneInfo `json:"ZoneInfo"`
		} `json:"Zones"`
	} `json:"PanelMetadataAndStatus"`
}

type zoneDetailsReply struct {
	ZoneStatus struct {
		Zones []zoneInfo `json:"Zones"`
	} `json:"ZoneStatus"`
}

type zoneInfo struct {
	ZoneID          int    `json:"ZoneID"`
	ZoneDescription string `json:"ZoneDescription"`
	ZoneStatus      int    `json:"ZoneStatus"`
	PartitionID     int    `json:"PartitionId"`
	ZoneTypeID      int    `json:"ZoneTypeId"`
	CanBeBypassed   int    `json:"CanBeBypassed"`
	BatteryLevel    int    `json:"Batterylevel"`
	SignalStrength  int    `json:"Signalstrength"`
}

// required fields per operation reply.
var (
	loginRequired          = []string{"SessionID"}
	sessionDetailsRequired = []string{"Locations.LocationInfoBasic"}
	partitionsRequired     = []string{"PartitionsInfoList.PartitionDetails"}
	fullStatusRequired     = []string{"PanelMetadataAndStatus", "ArmingState"}
	zoneDetailsRequired    = []string{"ZoneStatus.Zones"}
)
