package domain

import (
	"encoding/json"
	"fmt"
	"strings"
)

// Action is an operator action that moves equipment between statuses.
// The set is closed; Apply rejects anything outside it.
type Action int

const (
	ActionReserve Action = iota + 1
	ActionRent
	ActionRemoveFromReserve
	ActionRemoveFromRent
	ActionMarkAvailable
)

var actionLabels = map[Action]string{
	ActionReserve:           "Reserve",
	ActionRent:              "Rent",
	ActionRemoveFromReserve: "Remove from Reserve",
	ActionRemoveFromRent:    "Remove from Rent",
	ActionMarkAvailable:     "Mark Available",
}

// transitions is the complete action table keyed by current status.
var transitions = map[EquipmentStatus][]Action{
	EquipmentStatusAvailable:   {ActionReserve, ActionRent},
	EquipmentStatusReserve:     {ActionRent, ActionRemoveFromReserve},
	EquipmentStatusOnRent:      {ActionRemoveFromRent},
	EquipmentStatusMaintenance: {ActionMarkAvailable},
	EquipmentStatusDOS:         {ActionMarkAvailable},
}

func (a Action) String() string {
	if label, ok := actionLabels[a]; ok {
		return label
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// ParseAction maps a label such as "Remove from Rent" to its Action. Matching
// ignores case and surrounding whitespace.
func ParseAction(label string) (Action, error) {
	norm := strings.TrimSpace(label)
	for a, l := range actionLabels {
		if strings.EqualFold(l, norm) {
			return a, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAction, label)
}

func (a Action) MarshalJSON() ([]byte, error) {
	if _, ok := actionLabels[a]; !ok {
		return nil, fmt.Errorf("%w: %d", ErrUnknownAction, int(a))
	}
	return json.Marshal(a.String())
}

func (a *Action) UnmarshalJSON(data []byte) error {
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return err
	}
	parsed, err := ParseAction(label)
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}

// ActionsFor returns the actions an operator may take from status.
// Unknown statuses have none.
func ActionsFor(status EquipmentStatus) []Action {
	allowed := transitions[status]
	out := make([]Action, len(allowed))
	copy(out, allowed)
	return out
}

// Allowed reports whether action is in the table for status.
func Allowed(status EquipmentStatus, action Action) bool {
	for _, a := range transitions[status] {
		if a == action {
			return true
		}
	}
	return false
}

// ActionPayload carries the operator-supplied fields for Reserve and Rent.
// RentalRate is a pointer so "not supplied" differs from an explicit zero.
type ActionPayload struct {
	Customer   string   `json:"customer,omitempty"`
	RentalRate *float64 `json:"rentalRate,omitempty"`
	StartDate  Date     `json:"startDate"`
	EndDate    Date     `json:"endDate"`
}

func (p ActionPayload) validatePeriod() error {
	if p.StartDate.IsZero() || p.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidDates)
	}
	if p.EndDate.Before(p.StartDate) {
		return fmt.Errorf("%w: end date must be >= start date", ErrInvalidDates)
	}
	if p.RentalRate != nil && *p.RentalRate < 0 {
		return ErrInvalidRate
	}
	return nil
}

// Apply returns the record that results from taking action on e. It never
// mutates e. A disallowed action returns ErrActionNotAllowed and e unchanged.
//
// Remove from Reserve clears customer, rate and dates exactly like Remove from
// Rent, so that every AVAILABLE record is free of rental fields.
func Apply(e Equipment, action Action, payload ActionPayload) (Equipment, error) {
	if _, ok := actionLabels[action]; !ok {
		return e, fmt.Errorf("%w: %d", ErrUnknownAction, int(action))
	}
	if !Allowed(e.Status, action) {
		return e, fmt.Errorf("%w: %s from %s", ErrActionNotAllowed, action, e.Status)
	}

	next := e
	switch action {
	case ActionReserve:
		if err := payload.validatePeriod(); err != nil {
			return e, err
		}
		if strings.TrimSpace(payload.Customer) == "" {
			return e, ErrCustomerRequired
		}
		next.Status = EquipmentStatusReserve
		next.Customer = strings.TrimSpace(payload.Customer)
		next.StartDate = payload.StartDate
		next.EndDate = payload.EndDate
		next.RentalRate = 0
		if payload.RentalRate != nil {
			next.RentalRate = *payload.RentalRate
		}
	case ActionRent:
		if err := payload.validatePeriod(); err != nil {
			return e, err
		}
		next.Status = EquipmentStatusOnRent
		next.StartDate = payload.StartDate
		next.EndDate = payload.EndDate
		if c := strings.TrimSpace(payload.Customer); c != "" {
			next.Customer = c
		}
		if payload.RentalRate != nil {
			next.RentalRate = *payload.RentalRate
		}
	case ActionRemoveFromReserve, ActionRemoveFromRent, ActionMarkAvailable:
		next.Status = EquipmentStatusAvailable
		next.ClearRental()
	default:
		return e, fmt.Errorf("%w: %s", ErrUnknownAction, action)
	}
	return next, nil
}
