// Package events publishes station activity to the office NATS feed so
// dashboards and downstream consumers can react to saves without polling
// the database. Publishing is best-effort; the station works without a
// broker.
package events

import (
	"encoding/json"
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects for the station feed.
const (
	SubjectLoadoutSaved   = "loadtrack.loadout.saved"
	SubjectFlightRecorded = "loadtrack.flight.recorded"
)

// LoadoutSaved announces a replace-all save of a mission's loadout.
type LoadoutSaved struct {
	MissionID int64     `json:"mission_id"`
	Positions int       `json:"positions"`
	Operator  string    `json:"operator"`
	SavedAt   time.Time `json:"saved_at"`
}

// FlightRecorded announces a stored post-flight data row.
type FlightRecorded struct {
	Aircraft      string    `json:"aircraft"`
	FlightNumber  int       `json:"flight_number"`
	MissileStatus string    `json:"missile_status"`
	Operator      string    `json:"operator"`
	RecordedAt    time.Time `json:"recorded_at"`
}

// Publisher emits station events. A nil *Publisher is a no-op, so callers
// never have to branch on whether the feed is configured.
type Publisher struct {
	conn *nats.Conn
}

// Connect dials the broker.
func Connect(url string) (*Publisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("loadtrack"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, err
	}
	return &Publisher{conn: conn}, nil
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	_ = p.conn.Drain()
}

// PublishLoadoutSaved emits a LoadoutSaved event.
func (p *Publisher) PublishLoadoutSaved(ev LoadoutSaved) error {
	return p.publish(SubjectLoadoutSaved, ev)
}

// PublishFlightRecorded emits a FlightRecorded event.
func (p *Publisher) PublishFlightRecorded(ev FlightRecorded) error {
	return p.publish(SubjectFlightRecorded, ev)
}

func (p *Publisher) publish(subject string, v any) error {
	if p == nil || p.conn == nil {
		return nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return p.conn.Publish(subject, data)
}
