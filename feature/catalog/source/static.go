package source

import "context"

// Static is an in-memory RecordSource.
type Static struct {
	SetList    []SetRecord
	RecordList []Record
}

// Sets returns the configured sets.
func (s *Static) Sets(ctx context.Context) ([]SetRecord, error) {
	return s.SetList, nil
}

// Records emits the configured records in order.
func (s *Static) Records(ctx context.Context, emit func(*Record) error) error {
	for i := range s.RecordList {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := emit(&s.RecordList[i]); err != nil {
			return err
		}
	}
	return nil
}
