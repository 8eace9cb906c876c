package model

import (
	"fmt"
	"strconv"
)

// ToothID is a two-digit FDI tooth number: quadrant 1-4, position 1-8.
type ToothID int

// NewToothID validates an FDI tooth number.
func NewToothID(n int) (ToothID, error) {
	q, p := n/10, n%10
	if q < 1 || q > 4 || p < 1 || p > 8 {
		return 0, &ValidationError{Field: "tooth", Value: strconv.Itoa(n), Err: ErrInvalidTooth}
	}
	return ToothID(n), nil
}

// ParseToothID parses a tooth number such as "14".
func ParseToothID(s string) (ToothID, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, &ValidationError{Field: "tooth", Value: s, Err: ErrInvalidTooth}
	}
	return NewToothID(n)
}

func (t ToothID) Quadrant() int { return int(t) / 10 }
func (t ToothID) Position() int { return int(t) % 10 }

// IsFront reports whether the tooth is in the front region (13-23, 33-43).
func (t ToothID) IsFront() bool {
	return t.Position() <= 3
}

// Neighbors returns the horizontal neighbours of t. The central incisors
// neighbour each other across the midline; the last molar has no distal
// neighbour.
func (t ToothID) Neighbors() []ToothID {
	q, p := t.Quadrant(), t.Position()
	var out []ToothID
	if p == 1 {
		out = append(out, ToothID(midlinePartner(q)*10+1))
	} else {
		out = append(out, ToothID(q*10+p-1))
	}
	if p < 8 {
		out = append(out, ToothID(q*10+p+1))
	}
	return out
}

func midlinePartner(q int) int {
	switch q {
	case 1:
		return 2
	case 2:
		return 1
	case 3:
		return 4
	default:
		return 3
	}
}

func (t ToothID) String() string { return fmt.Sprintf("%02d", int(t)) }
