// Package hearing holds the judicial-result model and the boxwork
// notification decision engine.
package hearing

import (
	"time"

	"github.com/justiceplatform/courtnotify/internal/calendar"
)

// BoxworkResultDefinitionID is the result-catalog key for "listed for
// boxwork". Results with any other definition ID never trigger a boxwork
// notification.
const BoxworkResultDefinitionID = "1e6cb4f5-8a22-4d11-9a0e-4f2b3c7d8e90"

// CourtCentre identifies where a next hearing will sit. RoomID is set once
// the listing office has allocated a courtroom.
type CourtCentre struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	RoomID   string `json:"roomId,omitempty"`
	RoomName string `json:"roomName,omitempty"`
}

// NextHearing describes the follow-up hearing attached to a judicial
// result. Either a concrete listed start time or a week-commencing date may
// be present; both absent means the hearing is not yet scheduled at all.
type NextHearing struct {
	ListedStartDateTime *time.Time     `json:"listedStartDateTime,omitempty"`
	WeekCommencingDate  *calendar.Date `json:"weekCommencingDate,omitempty"`
	CourtCentre         CourtCentre    `json:"courtCentre"`
}

// JudicialResult is one result entry recorded against a case or application.
type JudicialResult struct {
	ID                 string         `json:"id"`
	ResultDefinitionID string         `json:"resultDefinitionId"`
	Label              string         `json:"label,omitempty"`
	OrderedDate        *calendar.Date `json:"orderedDate,omitempty"`
	NextHearing        *NextHearing   `json:"nextHearing,omitempty"`
}

// listingStatus is the tagged classification of a next hearing's shape.
// Room allocation takes precedence: an allocated room means listing is
// complete and no boxwork action is pending, whatever dates are present.
type listingStatus int

const (
	roomAssigned listingStatus = iota
	dateScheduled
	unscheduled
)

// status classifies h. Precedence: room first, then any date signal.
func (h *NextHearing) status() listingStatus {
	switch {
	case h.CourtCentre.RoomID != "":
		return roomAssigned
	case h.ListedStartDateTime != nil || h.WeekCommencingDate != nil:
		return dateScheduled
	default:
		return unscheduled
	}
}
