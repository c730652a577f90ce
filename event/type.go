package event

// EventType represents the type of simulation event
type EventType int

const (
	// EventCollision signals body contact with static geometry above the impact threshold
	// Trigger: CollisionResolver | Payload: CollisionPayload
	EventCollision EventType = iota

	// EventSkidStart signals a wheel crossing the skid slip threshold
	// Trigger: TireModel | Payload: SkidPayload
	EventSkidStart

	// EventSkidEnd signals a wheel regaining grip
	// Trigger: TireModel | Payload: SkidPayload
	EventSkidEnd

	// EventGearChange signals completion of a gear change
	// Trigger: Drivetrain | Payload: GearChangePayload
	EventGearChange

	// EventRevLimiter signals fuel cut engaging at redline
	// Trigger: Drivetrain | Payload: RevLimiterPayload
	EventRevLimiter

	// EventContactChange signals a change of ground contact regime
	// Trigger: GroundContactResolver | Payload: ContactPayload
	EventContactChange

	// EventRespawn signals the vehicle fell below the world and was reset
	// Trigger: Step kill-height check | Payload: RespawnPayload
	EventRespawn

	eventTypeCount
)

var eventTypeNames = [eventTypeCount]string{
	EventCollision:     "collision",
	EventSkidStart:     "skid_start",
	EventSkidEnd:       "skid_end",
	EventGearChange:    "gear_change",
	EventRevLimiter:    "rev_limiter",
	EventContactChange: "contact_change",
	EventRespawn:       "respawn",
}

func (t EventType) String() string {
	if t < 0 || t >= eventTypeCount {
		return "unknown"
	}
	return eventTypeNames[t]
}

// Event is one side-effect request produced by a simulation step
type Event struct {
	Type    EventType
	Payload any
	Tick    uint64
}
