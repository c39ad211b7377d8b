package archive

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/qubo"
	"github.com/Euda1mon1a/Autonomous-Assignment-Program-Manager-sub004/schedule"
)

// recordExt is the blob suffix of archived run records.
const recordExt = ".qrec"

// Record is the durable artifact of one solve run.
type Record struct {
	RunID      string    `json:"run_id"`
	ScheduleID string    `json:"schedule_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`

	// Problem snapshot.
	Variables int          `json:"variables"`
	Terms     int          `json:"terms"`
	Entries   []qubo.Entry `json:"entries,omitempty"`

	// Result summary.
	Backend     string                `json:"backend"`
	Status      string                `json:"status"`
	Energy      float64               `json:"energy"`
	ElapsedMS   int64                 `json:"elapsed_ms"`
	Assignments []schedule.Assignment `json:"assignments,omitempty"`
}

// NewRecord stamps a record with a fresh run ID and creation time.
func NewRecord(scheduleID string) *Record {
	return &Record{
		RunID:      uuid.NewString(),
		ScheduleID: scheduleID,
		CreatedAt:  time.Now().UTC(),
	}
}

// Key returns the blob name the record is stored under.
func (r *Record) Key() string {
	return "runs/" + r.RunID + recordExt
}

// EncodeRecord serializes and compresses a record.
func EncodeRecord(r *Record, c Compression) ([]byte, error) {
	data, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return Compress(data, c)
}

// DecodeRecord reverses EncodeRecord.
func DecodeRecord(data []byte) (*Record, error) {
	raw, err := Decompress(data)
	if err != nil {
		return nil, err
	}
	var r Record
	if err := json.Unmarshal(raw, &r); err != nil {
		return nil, err
	}
	return &r, nil
}
