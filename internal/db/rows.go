package db

import (
	"github.com/LittleBiggler/pgsanity/pkg/pgsanity"
)

// CollectRows drains a result set into RowRecords, mapping each value to its
// column name in the query's declared column order. The rows are closed
// before returning on every path.
//
// Duplicate column names collapse to the last occurrence, matching how the
// original reporting surface presented rows; check queries avoid duplicate
// output names.
func CollectRows(rows pgsanity.Rows) ([]pgsanity.RowRecord, error) {
	defer rows.Close()

	fields := rows.FieldDescriptions()
	records := make([]pgsanity.RowRecord, 0, 16)

	for rows.Next() {
		values, err := rows.Values()
		if err != nil {
			return nil, err
		}

		record := make(pgsanity.RowRecord, len(fields))
		for i, fd := range fields {
			if i < len(values) {
				record[string(fd.Name)] = values[i]
			}
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return records, nil
}
