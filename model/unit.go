package model

// UnitError records the failure of one structural unit (a worksheet, slide,
// paragraph, image or table row) that the pipeline degraded rather than
// aborted on. The conversion's result remains usable; the unit is missing or
// replaced by an inline marker.
type UnitError struct {
	Unit string // human-readable unit name, e.g. "slide 3" or "sheet2.xml"
	Err  error
}

func (ue UnitError) Error() string {
	return ue.Unit + ": " + ue.Err.Error()
}

func (ue UnitError) Unwrap() error {
	return ue.Err
}
