package services

import (
	"freight/internal/core/domain/model/labor"
	"freight/internal/core/domain/model/order"
)

// ConstraintValidator is the single place the allocation rules live. The
// preview endpoint and the commit path both call it, so a preview can never
// accept what a commit would reject against the same state.
//
// Validate is pure: it reads the aggregates and the ledgers' view of them and
// changes nothing, so it is safe to call any number of times.
type ConstraintValidator struct {
	resources ResourceLedger
	labor     LaborLedger
}

func NewConstraintValidator(resources ResourceLedger, labor LaborLedger) ConstraintValidator {
	return ConstraintValidator{resources: resources, labor: labor}
}

// Validate runs every check in a fixed order and accumulates all violations:
//
//  0. the order is Pending
//  1. the trip arrives in the order's destination city
//  2. the store is in the order's destination city
//  3. the truck belongs to the store and is Available
//  4. the driver belongs to the store, is a Driver and is Active
//  5. the assistant belongs to the store, is an Assistant and is Active
//  6. trip, store and truck can take the order's space units
//  7. the labor rules hold for the driver and for the assistant
//
// The error is reserved for malformed candidates.
func (v ConstraintValidator) Validate(c Candidate) (Violations, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	var violations Violations
	add := func(violation Violation) {
		violations = append(violations, violation)
	}

	o := c.Order
	if o.Status() != order.Pending {
		add(newViolation(ResourceUnavailable, SubjectOrder, o.ID(), "order is %s, not Pending", o.Status()))
	}

	if !c.TrainTrip.ArrivalCity().IsEqual(o.Destination()) {
		add(newViolation(StructuralMismatch, SubjectTrainTrip, c.TrainTrip.ID(),
			"trip arrives in %s, order goes to %s", c.TrainTrip.ArrivalCity(), o.Destination()))
	}

	if !c.Store.City().IsEqual(o.Destination()) {
		add(newViolation(StructuralMismatch, SubjectStore, c.Store.ID(),
			"store is in %s, order goes to %s", c.Store.City(), o.Destination()))
	}

	if !c.Truck.HomeStoreID().IsEqual(c.Store.ID()) {
		add(newViolation(StructuralMismatch, SubjectTruck, c.Truck.ID(),
			"truck is based at store %s, not %s", c.Truck.HomeStoreID(), c.Store.ID()))
	}
	if !c.Truck.IsAvailable() {
		add(newViolation(ResourceUnavailable, SubjectTruck, c.Truck.ID(), "truck is %s", c.Truck.Status()))
	}

	v.checkWorker(c, c.Driver, labor.Driver, SubjectDriver, add)
	v.checkWorker(c, c.Assistant, labor.Assistant, SubjectAssistant, add)

	if violation := v.resources.Check(c.TrainTrip, o.SpaceUnits()); violation != nil {
		add(*violation)
	}
	if violation := v.resources.Check(c.Store, o.SpaceUnits()); violation != nil {
		add(*violation)
	}
	if c.Truck.Capacity() < o.SpaceUnits() {
		add(newViolation(CapacityExceeded, SubjectTruck, c.Truck.ID(),
			"truck holds %d space units, order needs %d", c.Truck.Capacity(), o.SpaceUnits()))
	}

	violations = append(violations, v.labor.CanAssign(c.Driver, SubjectDriver, c.Date, c.Hours)...)
	violations = append(violations, v.labor.CanAssign(c.Assistant, SubjectAssistant, c.Date, c.Hours)...)

	return violations, nil
}

func (v ConstraintValidator) checkWorker(c Candidate, w *labor.Worker, role labor.Role, subject Subject, add func(Violation)) {
	if !w.HomeStoreID().IsEqual(c.Store.ID()) {
		add(newViolation(StructuralMismatch, subject, w.ID(),
			"worker is based at store %s, not %s", w.HomeStoreID(), c.Store.ID()))
	}
	if w.Role() != role {
		add(newViolation(StructuralMismatch, subject, w.ID(), "worker is a %s, not a %s", w.Role(), role))
	}
	if !w.IsActive() {
		add(newViolation(ResourceUnavailable, subject, w.ID(), "worker is %s", w.Status()))
	}
}
