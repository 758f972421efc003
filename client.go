package totalconnect

import (
	"context"
	"fmt"
	"os"
	"time"

	logp "github.com/charmbracelet/log"
)

var log = logp.NewWithOptions(os.Stderr, logp.Options{
	ReportTimestamp: true,
	TimeFormat:      time.Kitchen,
	Prefix:          "totalconnect",
})

// SetLogLevel changes the verbosity of the client logs.
func SetLogLevel(level logp.Level) {
	log.SetLevel(level)
}

// Client talks to the remote panel service and keeps the panel model.
//
// A Client runs one operation at a time: it must not be used from
// multiple goroutines concurrently. Independent clients share no state.
type Client struct {
	exec      *executor
	usercodes map[int]string
	locations map[int]*Location
}

type options struct {
	policy     RetryPolicy
	usercodes  map[int]string
	appID      string
	appVersion string
}

type Option func(*options)

// WithRetryDelay sets the wait between attempts of a failing request.
func WithRetryDelay(d time.Duration) Option {
	return func(o *options) {
		if d >= 0 {
			o.policy.Delay = d
		}
	}
}

// WithMaxRetryAttempts sets how many times a request is tried before
// giving up on transient failures.
func WithMaxRetryAttempts(n int) Option {
	return func(o *options) {
		if n >= 1 {
			o.policy.MaxAttempts = n
		}
	}
}

// WithUsercodes sets the user code used to arm and disarm each location.
func WithUsercodes(codes map[int]string) Option {
	return func(o *options) {
		for id, code := range codes {
			o.usercodes[id] = code
		}
	}
}

// WithApplication sets the application id and version sent on login.
func WithApplication(id, version string) Option {
	return func(o *options) {
		o.appID = id
		o.appVersion = version
	}
}

// New creates a client and logs in.
func New(ctx context.Context, transport Transport, username, password string, opts ...Option) (*Client, error) {
	o := options{
		policy: RetryPolicy{
			MaxAttempts: DefaultMaxRetryAttempts,
			Delay:       DefaultRetryDelay,
		},
		usercodes:  map[int]string{},
		appID:      defaultAppID,
		appVersion: defaultAppVersion,
	}
	for _, opt := range opts {
		opt(&o)
	}

	sess := newSession(transport, credentials{
		username:   username,
		password:   password,
		appID:      o.appID,
		appVersion: o.appVersion,
	})
	cli := &Client{
		exec: &executor{
			transport: transport,
			session:   sess,
			policy:    o.policy,
		},
		usercodes: o.usercodes,
	}
	if err := cli.exec.login(ctx); err != nil {
		return nil, fmt.Errorf("could not init client: %w", err)
	}
	return cli, nil
}

func (c *Client) IsLoggedIn() bool {
	return c.exec.session.isLoggedIn()
}

func (c *Client) IsValidCredentials() bool {
	return c.exec.session.isValidCredentials()
}

func (c *Client) SessionState() SessionState {
	return c.exec.session.state
}

// Locations returns every location of the account. The first call loads
// them, along with their partitions and current status.
func (c *Client) Locations(ctx context.Context) (map[int]*Location, error) {
	if c.locations != nil {
		return c.locations, nil
	}

	res, err := c.exec.execute(ctx, opSessionDetails, c.exec.session.creds.appID, c.exec.session.creds.appVersion)
	if err != nil {
		return nil, fmt.Errorf("could not get locations: %w", err)
	}
	var reply sessionDetailsReply
	if err := decodePayload(opSessionDetails, res, &reply, sessionDetailsRequired...); err != nil {
		return nil, fmt.Errorf("could not get locations: %w", err)
	}

	locations := map[int]*Location{}
	for _, info := range reply.Locations.LocationInfoBasic {
		loc := newLocation(info, c.usercodes[info.LocationID])
		if err := c.loadPartitions(ctx, loc); err != nil {
			return nil, err
		}
		if err := c.refresh(ctx, loc); err != nil {
			return nil, err
		}
		log.Info(
			"loaded location",
			"id", loc.ID,
			"name", loc.Name,
			"state", loc.ArmingState,
			"partitions", len(loc.Partitions),
			"zones", len(loc.Zones),
		)
		locations[loc.ID] = loc
	}
	c.locations = locations
	return c.locations, nil
}

// Location returns a single location, loading locations if needed.
func (c *Client) Location(ctx context.Context, id int) (*Location, error) {
	locations, err := c.Locations(ctx)
	if err != nil {
		return nil, err
	}
	loc, ok := locations[id]
	if !ok {
		return nil, &LookupError{Kind: "location", ID: id}
	}
	return loc, nil
}

// RefreshStatus fetches the panel metadata and full status of a location.
// On any error the location keeps its previous state.
func (c *Client) RefreshStatus(ctx context.Context, locationID int) error {
	loc, err := c.Location(ctx, locationID)
	if err != nil {
		return err
	}
	return c.refresh(ctx, loc)
}

// ZoneStatus returns the last known status of a zone. It does not reach
// the service.
func (c *Client) ZoneStatus(locationID, zoneID int) (ZoneStatus, error) {
	loc, ok := c.locations[locationID]
	if !ok {
		return 0, &LookupError{Kind: "location", ID: locationID}
	}
	zone, err := loc.Zone(zoneID)
	if err != nil {
		return 0, err
	}
	return zone.Status, nil
}

// GetZoneDetails fetches descriptions, battery and signal levels of every
// zone of a location.
func (c *Client) GetZoneDetails(ctx context.Context, locationID int) error {
	loc, err := c.Location(ctx, locationID)
	if err != nil {
		return err
	}
	res, err := c.exec.execute(ctx, opZoneDetails, loc.ID, 0)
	if err != nil {
		return fmt.Errorf("could not get zone details: %w", err)
	}
	var reply zoneDetailsReply
	if err := decodePayload(opZoneDetails, res, &reply, zoneDetailsRequired...); err != nil {
		return fmt.Errorf("could not get zone details: %w", err)
	}
	if err := checkZones(opZoneDetails, reply.ZoneStatus.Zones); err != nil {
		return fmt.Errorf("could not get zone details: %w", err)
	}
	loc.applyZoneDetails(reply.ZoneStatus.Zones)
	return nil
}

func (c *Client) ArmAway(ctx context.Context, locationID int) error {
	return c.Arm(ctx, locationID, ArmTypeAway)
}

func (c *Client) ArmAwayInstant(ctx context.Context, locationID int) error {
	return c.Arm(ctx, locationID, ArmTypeAwayInstant)
}

func (c *Client) ArmStay(ctx context.Context, locationID int) error {
	return c.Arm(ctx, locationID, ArmTypeStay)
}

func (c *Client) ArmStayInstant(ctx context.Context, locationID int) error {
	return c.Arm(ctx, locationID, ArmTypeStayInstant)
}

func (c *Client) ArmStayNight(ctx context.Context, locationID int) error {
	return c.Arm(ctx, locationID, ArmTypeStayNight)
}

// Arm arms a location and refreshes its status, so the model reflects what
// the panel actually did.
func (c *Client) Arm(ctx context.Context, locationID int, armType ArmType) error {
	loc, err := c.Location(ctx, locationID)
	if err != nil {
		return err
	}
	log.Info("arm", "location", loc.ID, "type", armType)
	if _, err := c.exec.execute(ctx, opArm, loc.ID, loc.SecurityDeviceID, int(armType), loc.Usercode); err != nil {
		return fmt.Errorf("could not arm %s: %w", armType, err)
	}
	return c.refresh(ctx, loc)
}

// Disarm disarms a location and refreshes its status.
func (c *Client) Disarm(ctx context.Context, locationID int) error {
	loc, err := c.Location(ctx, locationID)
	if err != nil {
		return err
	}
	log.Info("disarm", "location", loc.ID)
	if _, err := c.exec.execute(ctx, opDisarm, loc.ID, loc.SecurityDeviceID, loc.Usercode); err != nil {
		return fmt.Errorf("could not disarm: %w", err)
	}
	return c.refresh(ctx, loc)
}

// BypassZone bypasses a zone and refreshes the location status.
func (c *Client) BypassZone(ctx context.Context, locationID, zoneID int) error {
	loc, err := c.Location(ctx, locationID)
	if err != nil {
		return err
	}
	if _, err := loc.Zone(zoneID); err != nil {
		return err
	}
	log.Info("bypass", "location", loc.ID, "zone", zoneID)
	if _, err := c.exec.execute(ctx, opBypass, loc.ID, loc.SecurityDeviceID, zoneID, loc.Usercode); err != nil {
		return fmt.Errorf("could not bypass zone %d: %w", zoneID, err)
	}
	return c.refresh(ctx, loc)
}

// Close ends the session.
func (c *Client) Close(ctx context.Context) error {
	return c.exec.session.logout(ctx)
}

func (c *Client) loadPartitions(ctx context.Context, loc *Location) error {
	res, err := c.exec.execute(ctx, opPartitions, loc.ID, loc.SecurityDeviceID)
	if err != nil {
		return fmt.Errorf("could not get partitions: %w", err)
	}
	var reply partitionsReply
	if err := decodePayload(opPartitions, res, &reply, partitionsRequired...); err != nil {
		return fmt.Errorf("could not get partitions: %w", err)
	}
	loc.applyPartitions(reply.PartitionsInfoList.PartitionDetails)
	return nil
}

func (c *Client) refresh(ctx context.Context, loc *Location) error {
	res, err := c.exec.execute(ctx, opFullStatus, loc.ID, 0, 0, -1)
	if err != nil {
		return fmt.Errorf("could not refresh status: %w", err)
	}
	var reply fullStatusReply
	if err := decodePayload(opFullStatus, res, &reply, fullStatusRequired...); err != nil {
		return fmt.Errorf("could not refresh status: %w", err)
	}
	if err := checkZones(opFullStatus, reply.PanelMetadataAndStatus.Zones.ZoneInfo); err != nil {
		return fmt.Errorf("could not refresh status: %w", err)
	}
	prev := loc.ArmingState
	loc.applyStatus(reply)
	if prev != loc.ArmingState {
		log.Info("arming state changed", "location", loc.ID, "from", prev, "to", loc.ArmingState)
	}
	return nil
}
