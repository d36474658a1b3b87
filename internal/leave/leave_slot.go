package leave

import (
	"fmt"
	"time"
)

const millisPerDay = 86_400_000

// SlotRange is an inclusive range of half-day slots. Slot 2d is the morning of
// day d counted from the unix epoch, slot 2d+1 its afternoon.
type SlotRange struct {
	Start int64
	End   int64
}

func (r SlotRange) Overlaps(o SlotRange) bool {
	return r.Start <= o.End && r.End >= o.Start
}

func dayNumber(t time.Time) int64 {
	ms := t.UnixMilli()
	day := ms / millisPerDay
	if ms < 0 && ms%millisPerDay != 0 {
		day--
	}
	return day
}

func StartSlot(date time.Time, s Session) (int64, error) {
	day := dayNumber(date)
	switch s {
	case SessionSecondHalf:
		return day*2 + 1, nil
	case SessionFullDay, SessionFirstHalf:
		return day * 2, nil
	default:
		return 0, fmt.Errorf("unknown session %q", s)
	}
}

func EndSlot(date time.Time, s Session) (int64, error) {
	day := dayNumber(date)
	switch s {
	case SessionFirstHalf:
		return day * 2, nil
	case SessionFullDay, SessionSecondHalf:
		return day*2 + 1, nil
	default:
		return 0, fmt.Errorf("unknown session %q", s)
	}
}

func NewSlotRange(startDate time.Time, startSession Session, endDate time.Time, endSession Session) (SlotRange, error) {
	start, err := StartSlot(startDate, startSession)
	if err != nil {
		return SlotRange{}, err
	}
	end, err := EndSlot(endDate, endSession)
	if err != nil {
		return SlotRange{}, err
	}
	return SlotRange{Start: start, End: end}, nil
}
