package solver

import (
	"errors"
	"fmt"

	"github.com/nextmv-examples/truckfleet/internal/model"
)

// ErrEmptyTruckPool is a model-construction error: a sub-input with
// packages but no candidate trucks cannot be modeled at all.
var ErrEmptyTruckPool = fmt.Errorf("%w: truck pool is empty", model.ErrModelInvalid)

// InfeasibleDiagnosis names the first package the pre-flight validator
// found no truck fast enough to deliver.
type InfeasibleDiagnosis struct {
	Package model.PackageID
	Reason  string
}

func (d *InfeasibleDiagnosis) Error() string {
	return fmt.Sprintf("no truck is fast enough to deliver package %s: %s", d.Package, d.Reason)
}

// AsInfeasibleDiagnosis unwraps err into an *InfeasibleDiagnosis, if any.
func AsInfeasibleDiagnosis(err error) (*InfeasibleDiagnosis, bool) {
	var d *InfeasibleDiagnosis
	ok := errors.As(err, &d)
	return d, ok
}
