package app

import "fmt"

// RecordsInvalidError is returned by validate when at least one record failed.
type RecordsInvalidError struct {
	Invalid int
	Total   int
}

func (e *RecordsInvalidError) Error() string {
	return fmt.Sprintf("%d of %d records are invalid", e.Invalid, e.Total)
}

// FixturesFailedError is returned by check-fixtures when a fixture did not get
// the verdict its name declares.
type FixturesFailedError struct {
	Failed int
}

func (e *FixturesFailedError) Error() string {
	if e.Failed == 1 {
		return "1 fixture failed"
	}
	return fmt.Sprintf("%d fixtures failed", e.Failed)
}
