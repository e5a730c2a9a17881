package orders

type Status string

const (
	StatusPending   Status = "pending"
	StatusSent      Status = "sent"
	StatusDelivered Status = "delivered"
)

// Valid reports whether s is one of the enumerated statuses. Any valid
// status may replace any other; there is no transition graph.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusSent, StatusDelivered:
		return true
	}
	return false
}
