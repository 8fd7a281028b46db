package repositories

import "context"

// Run executes one benchmark query and drains its result set, so the measured
// latency includes row transfer, not just statement dispatch.
func (s *Store) Run(ctx context.Context, sql string, args ...any) (int, error) {
	ctx, cancel := s.roundTrip(ctx)
	defer cancel()

	rows, err := s.pool.Query(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	defer rows.Close()

	count := 0
	for rows.Next() {
		count++
	}
	return count, rows.Err()
}
