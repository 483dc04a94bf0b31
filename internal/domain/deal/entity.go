package deal

import "time"

// Stage is the pipeline stage of a deal
type Stage string

const (
	StageProspecting Stage = "prospecting"
	StageProposal    Stage = "proposal"
	StageNegotiation Stage = "negotiation"
	StageWon         Stage = "won"
	StageLost        Stage = "lost"
)

var Stages = []Stage{StageProspecting, StageProposal, StageNegotiation, StageWon, StageLost}

func (s Stage) IsValid() bool {
	for _, known := range Stages {
		if s == known {
			return true
		}
	}
	return false
}

// IsOpen reports whether the deal still counts toward the pipeline.
func (s Stage) IsOpen() bool {
	return s != StageWon && s != StageLost
}

type Deal struct {
	ID                string
	Title             string
	Value             float64
	Stage             Stage
	AccountID         *string
	ContactID         *string
	ExpectedCloseDate *time.Time
	AssignedTo        string
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
