package store

// GetHRZones returns the cached heart rate zones ordered by index
func (db *DB) GetHRZones() ([]HRZone, error) {
	rows, err := db.Query(`
		SELECT zone_index, min_bpm, max_bpm
		FROM hr_zones
		ORDER BY zone_index
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var zones []HRZone
	for rows.Next() {
		var z HRZone
		if err := rows.Scan(&z.Index, &z.MinBPM, &z.MaxBPM); err != nil {
			return nil, err
		}
		zones = append(zones, z)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if len(zones) == 0 {
		return nil, ErrNoZones
	}
	return zones, nil
}

// SaveHRZones replaces the cached heart rate zones
func (db *DB) SaveHRZones(zones []HRZone) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM hr_zones`); err != nil {
		return err
	}
	for _, z := range zones {
		_, err := tx.Exec(`
			INSERT INTO hr_zones (zone_index, min_bpm, max_bpm)
			VALUES (?, ?, ?)
		`, z.Index, z.MinBPM, z.MaxBPM)
		if err != nil {
			return err
		}
	}
	return tx.Commit()
}
